// Package services define el catálogo de servicios veterinarios y las citas,
// junto con las reglas de negocio sobre ambos.
package services

// VeterinaryService es una fila del catálogo (read-mostly).
type VeterinaryService struct {
	ID               string
	Name             string
	Description      string
	ShortDescription string
	Price            float64 // >= 0
	Duration         int     // minutos, > 0
	Category         string  // Consulta, Prevención, Cirugía, etc.
	ImageURL         string  // opcional
	IsAvailable      bool
}

// Status es el estado de una cita a lo largo de su ciclo de vida.
// Los valores se persisten tal cual, en español.
type Status string

const (
	StatusPending   Status = "Pendiente"
	StatusConfirmed Status = "Confirmada"
	StatusCancelled Status = "Cancelada"
	StatusCompleted Status = "Completada"
)

// Appointment referencia un servicio y una mascota existentes al crearse.
// La cancelación es una transición de estado, nunca borra la fila.
type Appointment struct {
	ID        string
	ServiceID string
	PetID     string
	UserID    string
	Date      int64  // epoch millis
	Time      string // slot libre, ej. "10:00 AM"
	Status    Status
	Notes     string // opcional
	CreatedAt int64  // epoch millis
}
