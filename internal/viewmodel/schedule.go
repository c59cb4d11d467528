package viewmodel

import (
	"context"
	"fmt"
	"time"

	"pethome/internal/schedule"
)

// ScheduleViewModel expone el feed de próximas actividades ya armado por el
// agregador. No agrega estado propio: delega streams y último valor.
type ScheduleViewModel struct {
	agg *schedule.Aggregator
}

func NewScheduleViewModel(agg *schedule.Aggregator) *ScheduleViewModel {
	return &ScheduleViewModel{agg: agg}
}

// Run mantiene el feed vivo hasta que ctx termine.
func (vm *ScheduleViewModel) Run(ctx context.Context) {
	vm.agg.Run(ctx)
}

func (vm *ScheduleViewModel) Items(ctx context.Context) <-chan []schedule.Item {
	return vm.agg.Items(ctx)
}

func (vm *ScheduleViewModel) ItemsNow() []schedule.Item {
	return vm.agg.ItemsNow()
}

func (vm *ScheduleViewModel) Loading(ctx context.Context) <-chan bool {
	return vm.agg.Loading(ctx)
}

func (vm *ScheduleViewModel) IsLoading() bool {
	return vm.agg.IsLoading()
}

var spanishMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// FormatDate convierte epoch millis al formato corto de la app, "02 ene 2026".
func FormatDate(epochMillis int64) string {
	t := time.UnixMilli(epochMillis)
	return fmt.Sprintf("%02d %s %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}
