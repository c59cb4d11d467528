package pets

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
)

// Mensajes de cara al usuario para el modo remoto (sin fallback local:
// un fallo de red se propaga como fallo, nunca degrada a datos viejos).
var (
	ErrFetchFailed  = errors.New("No se pudo conectar con el servidor. Verifica tu conexión.")
	ErrCreateFailed = errors.New("No se pudo crear la mascota. Verifica tu conexión.")
	ErrUpdateFailed = errors.New("No se pudo actualizar la mascota. Verifica tu conexión.")
	ErrDeleteFailed = errors.New("No se pudo eliminar la mascota. Verifica tu conexión.")
)

// Repository es el contrato que consumen los view-models. Hay dos
// implementaciones excluyentes (se elige una por configuración, nunca se
// componen): la remota contra el API HTTP y la local sobre storage.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Pet, error)
	GetByID(ctx context.Context, id string) (Pet, error)
	ListBySpecies(ctx context.Context, species string) ([]Pet, error)
	Create(ctx context.Context, p Pet) (Pet, error)
	Update(ctx context.Context, p Pet) (Pet, error)
	Delete(ctx context.Context, id string) error
}

// Watcher lo implementa solo el modo local: lista viva ordenada por nombre.
type Watcher interface {
	WatchByUser(ctx context.Context, userID string) <-chan []Pet
}

// Store es el contrato de almacenamiento local (memoria o postgres).
type Store interface {
	ListByUser(ctx context.Context, userID string) ([]Pet, error) // orden: nombre asc
	GetByID(ctx context.Context, id string) (Pet, error)
	ListBySpecies(ctx context.Context, species string) ([]Pet, error)
	Upsert(ctx context.Context, p Pet) error
	DeleteByID(ctx context.Context, id string) error
	WatchByUser(ctx context.Context, userID string) <-chan []Pet
}
