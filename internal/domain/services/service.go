package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Service aplica las reglas de negocio sobre catálogo y citas.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// --- Catálogo ---

func (s *Service) WatchServices(ctx context.Context) <-chan []VeterinaryService {
	return s.store.WatchServices(ctx)
}

func (s *Service) GetServiceByID(ctx context.Context, id string) (VeterinaryService, error) {
	return s.store.GetService(ctx, id)
}

func (s *Service) WatchServicesByCategory(ctx context.Context, category string) <-chan []VeterinaryService {
	return s.store.WatchServicesByCategory(ctx, category)
}

// SeedSampleCatalog inserta (o reemplaza) el catálogo fijo de ejemplo.
// Idempotente: es seguro llamarlo en cada arranque.
func (s *Service) SeedSampleCatalog(ctx context.Context) error {
	for _, svc := range SampleCatalog() {
		if err := s.store.UpsertService(ctx, svc); err != nil {
			return err
		}
	}
	return nil
}

// --- Citas ---

func (s *Service) WatchAppointmentsByUser(ctx context.Context, userID string) <-chan []Appointment {
	return s.store.WatchAppointmentsByUser(ctx, userID)
}

func (s *Service) WatchAppointmentsByPet(ctx context.Context, petID string) <-chan []Appointment {
	return s.store.WatchAppointmentsByPet(ctx, petID)
}

func (s *Service) ListAppointmentsByUser(ctx context.Context, userID string) ([]Appointment, error) {
	return s.store.ListAppointmentsByUser(ctx, userID)
}

// CreateAppointment asigna id fresco y fuerza el estado inicial: toda cita
// nace Pendiente sin importar lo que traiga el caller.
func (s *Service) CreateAppointment(ctx context.Context, a Appointment) (Appointment, error) {
	a.ID = uuid.NewString()
	a.Status = StatusPending
	if a.CreatedAt == 0 {
		a.CreatedAt = s.now().UnixMilli()
	}
	if err := s.store.InsertAppointment(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, a Appointment) (Appointment, error) {
	if err := s.store.UpdateAppointment(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// CancelAppointment reescribe solo el estado; la fila queda en storage.
func (s *Service) CancelAppointment(ctx context.Context, id string) error {
	a, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}
	a.Status = StatusCancelled
	return s.store.UpdateAppointment(ctx, a)
}
