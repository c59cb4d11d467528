// Package memory implementa los stores locales sobre mapas en memoria.
// Útil para dev, tests y el modo local sin base de datos.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pethome/internal/domain/pets"
	"pethome/internal/state"
)

type petStore struct {
	mu      sync.RWMutex
	byID    map[string]pets.Pet
	changes *state.Signal
}

func NewPetStore() pets.Store {
	return &petStore{
		byID:    make(map[string]pets.Pet),
		changes: state.NewSignal(),
	}
}

func (s *petStore) Upsert(ctx context.Context, p pets.Pet) error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}

	s.mu.Lock()
	s.byID[p.ID] = p
	s.mu.Unlock()

	s.changes.Notify()
	return nil
}

func (s *petStore) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.byID, id)
	s.mu.Unlock()

	s.changes.Notify()
	return nil
}

func (s *petStore) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (s *petStore) ListByUser(ctx context.Context, userID string) ([]pets.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range s.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *petStore) ListBySpecies(ctx context.Context, species string) ([]pets.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range s.byID {
		if strings.EqualFold(p.Species, species) {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// WatchByUser emite la lista vigente (orden: nombre asc) y re-emite en cada
// mutación del store.
func (s *petStore) WatchByUser(ctx context.Context, userID string) <-chan []pets.Pet {
	out := make(chan []pets.Pet, 1)
	ticks := s.changes.Subscribe(ctx)

	go func() {
		defer close(out)

		emit := func() {
			list, err := s.ListByUser(ctx, userID)
			if err != nil {
				return
			}
			state.Push(out, list)
		}

		emit()
		for range ticks {
			emit()
		}
	}()

	return out
}
