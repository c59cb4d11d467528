package services

import (
	"context"
	"errors"
)

var (
	ErrAppointmentNotFound = errors.New("Cita no encontrada")
	ErrServiceNotFound     = errors.New("service not found")
)

// Store es el contrato de almacenamiento local para catálogo y citas
// (memoria o postgres). Los Watch emiten el valor vigente al suscribirse y
// luego en cada cambio; se cierran cuando ctx termina.
type Store interface {
	// Catálogo
	ListServices(ctx context.Context) ([]VeterinaryService, error) // disponibles, orden: categoría asc
	GetService(ctx context.Context, id string) (VeterinaryService, error)
	ListServicesByCategory(ctx context.Context, category string) ([]VeterinaryService, error)
	UpsertService(ctx context.Context, s VeterinaryService) error
	WatchServices(ctx context.Context) <-chan []VeterinaryService
	WatchServicesByCategory(ctx context.Context, category string) <-chan []VeterinaryService

	// Citas
	GetAppointment(ctx context.Context, id string) (Appointment, error)
	ListAppointmentsByUser(ctx context.Context, userID string) ([]Appointment, error) // orden: fecha desc
	ListAppointmentsByPet(ctx context.Context, petID string) ([]Appointment, error)
	InsertAppointment(ctx context.Context, a Appointment) error
	UpdateAppointment(ctx context.Context, a Appointment) error
	WatchAppointmentsByUser(ctx context.Context, userID string) <-chan []Appointment
	WatchAppointmentsByPet(ctx context.Context, petID string) <-chan []Appointment
}
