package pets

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapStore es un Store mínimo para probar el repositorio local sin adapters.
type mapStore struct {
	mu   sync.Mutex
	byID map[string]Pet
}

func newMapStore() *mapStore { return &mapStore{byID: make(map[string]Pet)} }

func (m *mapStore) ListByUser(_ context.Context, userID string) ([]Pet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Pet, 0)
	for _, p := range m.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mapStore) GetByID(_ context.Context, id string) (Pet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (m *mapStore) ListBySpecies(_ context.Context, species string) ([]Pet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Pet, 0)
	for _, p := range m.byID {
		if strings.EqualFold(p.Species, species) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mapStore) Upsert(_ context.Context, p Pet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[p.ID] = p
	return nil
}

func (m *mapStore) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func (m *mapStore) WatchByUser(context.Context, string) <-chan []Pet { return nil }

func TestLocalCreate_AssignsFreshUUID(t *testing.T) {
	repo := NewLocalRepository(newMapStore())

	a, err := repo.Create(context.Background(), Pet{ID: "caller-id", Name: "Milo", UserID: "u1"})
	require.NoError(t, err)
	b, err := repo.Create(context.Background(), Pet{Name: "Misu", UserID: "u1"})
	require.NoError(t, err)

	assert.NotEqual(t, "caller-id", a.ID)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestLocalUpdate_MissingPet(t *testing.T) {
	repo := NewLocalRepository(newMapStore())

	_, err := repo.Update(context.Background(), Pet{ID: "nope", Name: "Milo"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Update(context.Background(), Pet{Name: "sin id"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalUpdate_WritesThrough(t *testing.T) {
	store := newMapStore()
	repo := NewLocalRepository(store)

	created, err := repo.Create(context.Background(), Pet{Name: "Milo", UserID: "u1"})
	require.NoError(t, err)

	created.Name = "Milo II"
	_, err = repo.Update(context.Background(), created)
	require.NoError(t, err)

	got, err := store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milo II", got.Name)
}
