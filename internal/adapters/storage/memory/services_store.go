package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pethome/internal/domain/services"
	"pethome/internal/state"
)

type servicesStore struct {
	mu             sync.RWMutex
	servicesByID   map[string]services.VeterinaryService
	apptsByID      map[string]services.Appointment
	catalogChanges *state.Signal
	apptChanges    *state.Signal
}

// NewServicesStore crea el store local de catálogo + citas.
func NewServicesStore() services.Store {
	return &servicesStore{
		servicesByID:   make(map[string]services.VeterinaryService),
		apptsByID:      make(map[string]services.Appointment),
		catalogChanges: state.NewSignal(),
		apptChanges:    state.NewSignal(),
	}
}

// --- Catálogo ---

func (s *servicesStore) UpsertService(ctx context.Context, svc services.VeterinaryService) error {
	if strings.TrimSpace(svc.ID) == "" {
		return errors.New("service id required")
	}

	s.mu.Lock()
	s.servicesByID[svc.ID] = svc
	s.mu.Unlock()

	s.catalogChanges.Notify()
	return nil
}

func (s *servicesStore) GetService(ctx context.Context, id string) (services.VeterinaryService, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.servicesByID[id]
	if !ok {
		return services.VeterinaryService{}, services.ErrServiceNotFound
	}
	return svc, nil
}

func (s *servicesStore) ListServices(ctx context.Context) ([]services.VeterinaryService, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listServicesLocked(""), nil
}

func (s *servicesStore) ListServicesByCategory(ctx context.Context, category string) ([]services.VeterinaryService, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listServicesLocked(category), nil
}

// listServicesLocked filtra disponibles (y categoría si viene) con orden
// estable por categoría asc, id asc.
func (s *servicesStore) listServicesLocked(category string) []services.VeterinaryService {
	out := make([]services.VeterinaryService, 0)
	for _, svc := range s.servicesByID {
		if !svc.IsAvailable {
			continue
		}
		if category != "" && svc.Category != category {
			continue
		}
		out = append(out, svc)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *servicesStore) WatchServices(ctx context.Context) <-chan []services.VeterinaryService {
	return s.watchCatalog(ctx, "")
}

func (s *servicesStore) WatchServicesByCategory(ctx context.Context, category string) <-chan []services.VeterinaryService {
	return s.watchCatalog(ctx, category)
}

func (s *servicesStore) watchCatalog(ctx context.Context, category string) <-chan []services.VeterinaryService {
	out := make(chan []services.VeterinaryService, 1)
	ticks := s.catalogChanges.Subscribe(ctx)

	go func() {
		defer close(out)

		emit := func() {
			s.mu.RLock()
			list := s.listServicesLocked(category)
			s.mu.RUnlock()
			state.Push(out, list)
		}

		emit()
		for range ticks {
			emit()
		}
	}()

	return out
}

// --- Citas ---

func (s *servicesStore) InsertAppointment(ctx context.Context, a services.Appointment) error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("appointment id required")
	}

	s.mu.Lock()
	s.apptsByID[a.ID] = a
	s.mu.Unlock()

	s.apptChanges.Notify()
	return nil
}

func (s *servicesStore) UpdateAppointment(ctx context.Context, a services.Appointment) error {
	s.mu.Lock()
	if _, exists := s.apptsByID[a.ID]; !exists {
		s.mu.Unlock()
		return services.ErrAppointmentNotFound
	}
	s.apptsByID[a.ID] = a
	s.mu.Unlock()

	s.apptChanges.Notify()
	return nil
}

func (s *servicesStore) GetAppointment(ctx context.Context, id string) (services.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.apptsByID[id]
	if !ok {
		return services.Appointment{}, services.ErrAppointmentNotFound
	}
	return a, nil
}

func (s *servicesStore) ListAppointmentsByUser(ctx context.Context, userID string) ([]services.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listAppointmentsLocked(func(a services.Appointment) bool {
		return a.UserID == userID
	}), nil
}

func (s *servicesStore) ListAppointmentsByPet(ctx context.Context, petID string) ([]services.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listAppointmentsLocked(func(a services.Appointment) bool {
		return a.PetID == petID
	}), nil
}

// listAppointmentsLocked ordena por fecha desc (la cita más nueva primero).
func (s *servicesStore) listAppointmentsLocked(keep func(services.Appointment) bool) []services.Appointment {
	out := make([]services.Appointment, 0)
	for _, a := range s.apptsByID {
		if keep(a) {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *servicesStore) WatchAppointmentsByUser(ctx context.Context, userID string) <-chan []services.Appointment {
	return s.watchAppointments(ctx, func(a services.Appointment) bool {
		return a.UserID == userID
	})
}

func (s *servicesStore) WatchAppointmentsByPet(ctx context.Context, petID string) <-chan []services.Appointment {
	return s.watchAppointments(ctx, func(a services.Appointment) bool {
		return a.PetID == petID
	})
}

func (s *servicesStore) watchAppointments(ctx context.Context, keep func(services.Appointment) bool) <-chan []services.Appointment {
	out := make(chan []services.Appointment, 1)
	ticks := s.apptChanges.Subscribe(ctx)

	go func() {
		defer close(out)

		emit := func() {
			s.mu.RLock()
			list := s.listAppointmentsLocked(keep)
			s.mu.RUnlock()
			state.Push(out, list)
		}

		emit()
		for range ticks {
			emit()
		}
	}()

	return out
}
