package remote_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pethome/internal/adapters/remote"
	"pethome/internal/devserver"
	"pethome/internal/domain/auth"
	"pethome/internal/domain/pets"
	"pethome/internal/platform/httpclient"
	"pethome/internal/session"
)

type fixture struct {
	sessions *session.Store
	auth     *remote.AuthRepository
	pets     *remote.PetRepository
}

// newFixture levanta el backend de dev y cablea los repositorios remotos
// contra él, igual que el contenedor de la app en modo remoto.
func newFixture(t *testing.T) fixture {
	t.Helper()

	ts := httptest.NewServer(devserver.New(zap.NewNop(), []byte("test-secret")).Handler())
	t.Cleanup(ts.Close)

	sessions, err := session.NewStore(session.NewMemoryPersister(), true)
	require.NoError(t, err)

	api, err := httpclient.NewWithBaseURL(ts.URL, httpclient.DefaultTimeout)
	require.NoError(t, err)
	api.Tokens = sessions.AuthToken

	log := zap.NewNop()
	return fixture{
		sessions: sessions,
		auth:     remote.NewAuthRepository(api, sessions, log),
		pets:     remote.NewPetRepository(api, log),
	}
}

func TestRegister_PersistsSessionBeforeReturning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.auth.Register(ctx, "ana@mail.com", "secreto1", "Ana")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	cur := f.sessions.Current()
	assert.Equal(t, u.ID, cur.UserID)
	assert.Equal(t, "ana@mail.com", cur.Email)
	assert.NotEmpty(t, cur.AuthToken)
	assert.True(t, f.sessions.IsLoggedIn())

	// La sesión quedó lista: la siguiente llamada autenticada sale con token.
	created, err := f.pets.Create(ctx, pets.Pet{
		Name: "Milo", Species: "Perro", Breed: "Criollo",
		Age: 5, Weight: 12.5, Gender: "Macho", Color: "Café", UserID: u.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestLogin_WrongCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "ana@mail.com", "secreto1", "Ana")
	require.NoError(t, err)
	require.NoError(t, f.auth.Logout(ctx))

	_, err = f.auth.Login(ctx, "ana@mail.com", "incorrecta")
	assert.ErrorIs(t, err, auth.ErrLoginFailed)
	assert.False(t, f.sessions.IsLoggedIn())
}

func TestDuplicateRegisterMapsToRegisterFailed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "ana@mail.com", "secreto1", "Ana")
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, "ana@mail.com", "secreto1", "Ana")
	assert.ErrorIs(t, err, auth.ErrRegisterFailed)
}

func TestPets_RemoteCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.auth.Register(ctx, "ana@mail.com", "secreto1", "Ana")
	require.NoError(t, err)

	created, err := f.pets.Create(ctx, pets.Pet{
		Name: "Milo", Species: "Perro", Breed: "Criollo",
		Age: 5, Weight: 12.5, Gender: "Macho", Color: "Café", UserID: u.ID,
	})
	require.NoError(t, err)

	list, err := f.pets.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, u.ID, list[0].UserID)

	created.Name = "Milo II"
	updated, err := f.pets.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Milo II", updated.Name)

	bySpecies, err := f.pets.ListBySpecies(ctx, "perro")
	require.NoError(t, err)
	assert.Len(t, bySpecies, 1)

	require.NoError(t, f.pets.Delete(ctx, created.ID))

	_, err = f.pets.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestLogout_ClearsSessionAndDropsAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.auth.Register(ctx, "ana@mail.com", "secreto1", "Ana")
	require.NoError(t, err)

	_, err = f.pets.ListByUser(ctx, u.ID)
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx))
	assert.Equal(t, session.Session{}, f.sessions.Current())
	assert.False(t, f.sessions.IsLoggedIn())

	// Sin token el backend rechaza y el repositorio lo mapea a fallo genérico.
	_, err = f.pets.ListByUser(ctx, u.ID)
	assert.ErrorIs(t, err, pets.ErrFetchFailed)
}

func TestResetPassword_NotAvailable(t *testing.T) {
	f := newFixture(t)
	err := f.auth.ResetPassword(context.Background(), "ana@mail.com")
	assert.ErrorIs(t, err, auth.ErrNotAvailable)
	assert.Equal(t, "Funcionalidad no disponible aún", err.Error())
}
