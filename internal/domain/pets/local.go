package pets

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// LocalRepository implementa Repository sobre un Store local. Las mutaciones
// escriben directo al storage dentro de la llamada (write-through) y las
// lecturas por usuario pueden consumirse como stream vivo vía Watcher.
type LocalRepository struct {
	store Store
}

func NewLocalRepository(store Store) *LocalRepository {
	return &LocalRepository{store: store}
}

func (r *LocalRepository) ListByUser(ctx context.Context, userID string) ([]Pet, error) {
	return r.store.ListByUser(ctx, userID)
}

func (r *LocalRepository) GetByID(ctx context.Context, id string) (Pet, error) {
	return r.store.GetByID(ctx, id)
}

func (r *LocalRepository) ListBySpecies(ctx context.Context, species string) ([]Pet, error) {
	return r.store.ListBySpecies(ctx, species)
}

// Create asigna un id local fresco (UUID); en modo remoto lo asigna el backend.
func (r *LocalRepository) Create(ctx context.Context, p Pet) (Pet, error) {
	p.ID = uuid.NewString()
	if err := r.store.Upsert(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (r *LocalRepository) Update(ctx context.Context, p Pet) (Pet, error) {
	if strings.TrimSpace(p.ID) == "" {
		return Pet{}, ErrNotFound
	}
	if _, err := r.store.GetByID(ctx, p.ID); err != nil {
		return Pet{}, err
	}
	if err := r.store.Upsert(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (r *LocalRepository) Delete(ctx context.Context, id string) error {
	return r.store.DeleteByID(ctx, id)
}

func (r *LocalRepository) WatchByUser(ctx context.Context, userID string) <-chan []Pet {
	return r.store.WatchByUser(ctx, userID)
}
