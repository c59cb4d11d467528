package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestStore_SaveAndCurrent(t *testing.T) {
	s, err := NewStore(NewMemoryPersister(), true)
	require.NoError(t, err)

	require.NoError(t, s.Save("u1", "ana@mail.com", "Ana", strPtr("tok-1")))

	cur := s.Current()
	assert.Equal(t, "u1", cur.UserID)
	assert.Equal(t, "ana@mail.com", cur.Email)
	assert.Equal(t, "Ana", cur.Name)
	assert.Equal(t, "tok-1", cur.AuthToken)
}

func TestStore_SaveNilTokenPreservesStored(t *testing.T) {
	s, err := NewStore(NewMemoryPersister(), true)
	require.NoError(t, err)

	require.NoError(t, s.Save("u1", "ana@mail.com", "Ana", strPtr("tok-1")))
	require.NoError(t, s.Save("u1", "ana@mail.com", "Ana María", nil))

	assert.Equal(t, "tok-1", s.AuthToken())
	assert.Equal(t, "Ana María", s.Current().Name)
}

func TestStore_ClearWipesAllFields(t *testing.T) {
	p := NewMemoryPersister()
	s, err := NewStore(p, true)
	require.NoError(t, err)

	require.NoError(t, s.Save("u1", "ana@mail.com", "Ana", strPtr("tok-1")))
	require.NoError(t, s.Clear())

	assert.Equal(t, Session{}, s.Current())

	// También en el persister, no solo en memoria.
	persisted, err := p.Load()
	require.NoError(t, err)
	assert.Equal(t, Session{}, persisted)
}

func TestStore_IsLoggedIn_RequireToken(t *testing.T) {
	s, err := NewStore(NewMemoryPersister(), true)
	require.NoError(t, err)

	assert.False(t, s.IsLoggedIn())

	require.NoError(t, s.Save("u1", "ana@mail.com", "Ana", nil))
	assert.False(t, s.IsLoggedIn(), "sin token no cuenta como logueado")

	require.NoError(t, s.SaveAuthToken("tok-1"))
	assert.True(t, s.IsLoggedIn())
}

func TestStore_IsLoggedIn_UserIDOnly(t *testing.T) {
	s, err := NewStore(NewMemoryPersister(), false)
	require.NoError(t, err)

	require.NoError(t, s.Save("u1", "ana@mail.com", "Ana", nil))
	assert.True(t, s.IsLoggedIn(), "con el flag apagado basta el user id")
}

// brokenPersister falla toda escritura; Load entrega sesión vacía.
type brokenPersister struct{}

func (brokenPersister) Load() (Session, error) { return Session{}, nil }
func (brokenPersister) Store(Session) error    { return os.ErrPermission }

func TestStore_SavePersistFailureKeepsSessionUnchanged(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := NewStore(brokenPersister{}, true)
	require.NoError(t, err)

	ch := s.Watch(ctx)
	<-ch // emisión inicial

	require.Error(t, s.Save("u1", "ana@mail.com", "Ana", strPtr("tok-1")))

	// Nada se publicó: ni los watchers ni Current ven una sesión que nunca
	// llegó al disco.
	select {
	case got := <-ch:
		t.Fatalf("watcher saw unpersisted session: %+v", got)
	default:
	}
	assert.Equal(t, Session{}, s.Current())
	assert.False(t, s.IsLoggedIn())
}

func TestStore_ClearPersistFailureKeepsSession(t *testing.T) {
	p := NewMemoryPersister()
	s, err := NewStore(p, true)
	require.NoError(t, err)
	require.NoError(t, s.Save("u1", "ana@mail.com", "Ana", strPtr("tok-1")))

	s.persist = brokenPersister{}
	require.Error(t, s.Clear())

	assert.Equal(t, "u1", s.Current().UserID)
	assert.True(t, s.IsLoggedIn())
}

func TestStore_WatchLoggedIn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := NewStore(NewMemoryPersister(), true)
	require.NoError(t, err)

	ch := s.WatchLoggedIn(ctx)
	assert.False(t, <-ch)

	require.NoError(t, s.Save("u1", "ana@mail.com", "Ana", strPtr("tok-1")))

	select {
	case got := <-ch:
		assert.True(t, got)
	case <-time.After(time.Second):
		t.Fatal("no emission after login")
	}

	require.NoError(t, s.Clear())

	select {
	case got := <-ch:
		assert.False(t, got)
	case <-time.After(time.Second):
		t.Fatal("no emission after clear")
	}
}

func TestFilePersister_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	p := NewFilePersister(path)

	want := Session{UserID: "u1", Email: "ana@mail.com", Name: "Ana", AuthToken: "tok-1"}
	require.NoError(t, p.Store(want))

	got, err := p.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFilePersister_MissingFileIsEmptySession(t *testing.T) {
	p := NewFilePersister(filepath.Join(t.TempDir(), "nope.json"))

	got, err := p.Load()
	require.NoError(t, err)
	assert.Equal(t, Session{}, got)
}

func TestFilePersister_CorruptFileIsEmptySession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	got, err := NewFilePersister(path).Load()
	require.NoError(t, err)
	assert.Equal(t, Session{}, got)
}
