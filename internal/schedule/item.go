// Package schedule produce el feed de próximas actividades de un usuario:
// citas unidas con su servicio y mascota, ordenadas por fecha.
package schedule

import "pethome/internal/domain/services"

// Item es la unión de actividades del feed. Es un tipo sellado: al renderizar
// se hace type switch exhaustivo sobre MedicineEntry | AppointmentEntry.
type Item interface {
	// When es la clave de orden del feed (epoch millis).
	When() int64
	item()
}

// MedicineEntry es un recordatorio de medicina de una mascota.
type MedicineEntry struct {
	ID           string
	PetID        string
	PetName      string
	MedicineName string
	Dosage       string
	DateTime     int64
	Time         string
}

func (e MedicineEntry) When() int64 { return e.DateTime }
func (MedicineEntry) item()         {}

// AppointmentEntry es una cita denormalizada, lista para mostrar.
type AppointmentEntry struct {
	ID                 string
	PetID              string
	PetName            string
	ServiceName        string
	ServiceCategory    string
	ServiceDescription string
	DateTime           int64
	Time               string
	Status             services.Status
}

func (e AppointmentEntry) When() int64 { return e.DateTime }
func (AppointmentEntry) item()         {}
