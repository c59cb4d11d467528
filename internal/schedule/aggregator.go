package schedule

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"pethome/internal/domain/pets"
	"pethome/internal/domain/services"
	"pethome/internal/state"
)

// Aggregator mantiene el feed vivo de un usuario: se suscribe al stream de
// citas y, en cada emisión, resuelve servicio y mascota por id, arma las
// entradas denormalizadas y publica la lista ordenada de forma atómica.
//
// Una cita cuyo servicio o mascota ya no existe se descarta (inconsistencia
// de datos tolerada), no es un error. Solo un fallo total del pipeline deja
// el feed vacío.
type Aggregator struct {
	pets     pets.Repository
	services *services.Service
	userID   string
	log      *zap.Logger

	items   *state.Value[[]Item]
	loading *state.Value[bool]
}

func NewAggregator(petRepo pets.Repository, svc *services.Service, userID string, log *zap.Logger) *Aggregator {
	return &Aggregator{
		pets:     petRepo,
		services: svc,
		userID:   userID,
		log:      log,
		items:    state.NewValue([]Item{}),
		loading:  state.NewValue(true),
	}
}

// Run consume el stream de citas hasta que ctx termine. La suscripción es
// conflated: si llega una lista nueva mientras todavía se resuelve la
// anterior, la pasada vieja se descarta y gana la última (last write wins
// sobre la lista publicada).
func (a *Aggregator) Run(ctx context.Context) {
	appts := a.services.WatchAppointmentsByUser(ctx, a.userID)

	for list := range appts {
		a.items.Set(a.build(ctx, list))
		a.loading.Set(false)
	}
}

// build resuelve cada cita contra servicio y mascota. Devuelve el subconjunto
// válido ordenado ascendente por fecha.
func (a *Aggregator) build(ctx context.Context, appts []services.Appointment) []Item {
	out := make([]Item, 0, len(appts))

	for _, appt := range appts {
		svc, err := a.services.GetServiceByID(ctx, appt.ServiceID)
		if err != nil {
			a.log.Debug("skipping appointment without service",
				zap.String("appointment_id", appt.ID),
				zap.String("service_id", appt.ServiceID),
			)
			continue
		}

		pet, err := a.pets.GetByID(ctx, appt.PetID)
		if err != nil {
			a.log.Debug("skipping appointment without pet",
				zap.String("appointment_id", appt.ID),
				zap.String("pet_id", appt.PetID),
			)
			continue
		}

		out = append(out, AppointmentEntry{
			ID:                 appt.ID,
			PetID:              pet.ID,
			PetName:            pet.Name,
			ServiceName:        svc.Name,
			ServiceCategory:    svc.Category,
			ServiceDescription: svc.ShortDescription,
			DateTime:           appt.Date,
			Time:               appt.Time,
			Status:             appt.Status,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].When() < out[j].When()
	})
	return out
}

// Items devuelve el stream del feed (replay del último valor al suscribirse).
func (a *Aggregator) Items(ctx context.Context) <-chan []Item {
	return a.items.Watch(ctx)
}

// ItemsNow devuelve la última lista publicada.
func (a *Aggregator) ItemsNow() []Item {
	return a.items.Get()
}

// Loading es true desde el arranque hasta la primera emisión.
func (a *Aggregator) Loading(ctx context.Context) <-chan bool {
	return a.loading.Watch(ctx)
}

func (a *Aggregator) IsLoading() bool {
	return a.loading.Get()
}

// Fail deja el feed vacío y apaga loading; lo usa el view-model cuando el
// pipeline completo falla.
func (a *Aggregator) Fail() {
	a.items.Set([]Item{})
	a.loading.Set(false)
}
