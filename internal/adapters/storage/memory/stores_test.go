package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pethome/internal/domain/pets"
	"pethome/internal/domain/services"
)

func TestPetStore_ListByUserOrderedByName(t *testing.T) {
	ctx := context.Background()
	s := NewPetStore()

	require.NoError(t, s.Upsert(ctx, pets.Pet{ID: "p2", Name: "Zeus", UserID: "u1"}))
	require.NoError(t, s.Upsert(ctx, pets.Pet{ID: "p1", Name: "Aquiles", UserID: "u1"}))
	require.NoError(t, s.Upsert(ctx, pets.Pet{ID: "p3", Name: "Milo", UserID: "u2"}))

	list, err := s.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Aquiles", list[0].Name)
	assert.Equal(t, "Zeus", list[1].Name)
}

func TestPetStore_GetByIDNotFound(t *testing.T) {
	_, err := NewPetStore().GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestPetStore_ListBySpeciesCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := NewPetStore()

	require.NoError(t, s.Upsert(ctx, pets.Pet{ID: "p1", Name: "Milo", Species: "Perro", UserID: "u1"}))
	require.NoError(t, s.Upsert(ctx, pets.Pet{ID: "p2", Name: "Misu", Species: "Gato", UserID: "u1"}))

	list, err := s.ListBySpecies(ctx, "perro")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Milo", list[0].Name)
}

func TestPetStore_WatchByUserEmitsOnMutation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewPetStore()
	ch := s.WatchByUser(ctx, "u1")

	assert.Empty(t, <-ch)

	require.NoError(t, s.Upsert(ctx, pets.Pet{ID: "p1", Name: "Milo", UserID: "u1"}))

	select {
	case list := <-ch:
		require.Len(t, list, 1)
		assert.Equal(t, "Milo", list[0].Name)
	case <-time.After(time.Second):
		t.Fatal("no emission after upsert")
	}

	require.NoError(t, s.DeleteByID(ctx, "p1"))

	select {
	case list := <-ch:
		assert.Empty(t, list)
	case <-time.After(time.Second):
		t.Fatal("no emission after delete")
	}
}

func TestServicesStore_ListOnlyAvailableOrderedByCategory(t *testing.T) {
	ctx := context.Background()
	s := NewServicesStore()

	require.NoError(t, s.UpsertService(ctx, services.VeterinaryService{ID: "s1", Name: "Cirugía Menor", Category: "Cirugía", IsAvailable: true}))
	require.NoError(t, s.UpsertService(ctx, services.VeterinaryService{ID: "s2", Name: "Consulta", Category: "Consulta", IsAvailable: true}))
	require.NoError(t, s.UpsertService(ctx, services.VeterinaryService{ID: "s3", Name: "Oculto", Category: "Consulta", IsAvailable: false}))

	list, err := s.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Cirugía", list[0].Category)
	assert.Equal(t, "Consulta", list[1].Category)
}

func TestServicesStore_AppointmentsOrderedByDateDesc(t *testing.T) {
	ctx := context.Background()
	s := NewServicesStore()

	require.NoError(t, s.InsertAppointment(ctx, services.Appointment{ID: "a1", UserID: "u1", Date: 100}))
	require.NoError(t, s.InsertAppointment(ctx, services.Appointment{ID: "a2", UserID: "u1", Date: 300}))
	require.NoError(t, s.InsertAppointment(ctx, services.Appointment{ID: "a3", UserID: "u1", Date: 200}))

	list, err := s.ListAppointmentsByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a2", list[0].ID)
	assert.Equal(t, "a3", list[1].ID)
	assert.Equal(t, "a1", list[2].ID)
}

func TestServicesStore_UpdateMissingAppointment(t *testing.T) {
	err := NewServicesStore().UpdateAppointment(context.Background(), services.Appointment{ID: "nope"})
	assert.ErrorIs(t, err, services.ErrAppointmentNotFound)
}

func TestServicesStore_WatchAppointmentsByUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewServicesStore()
	ch := s.WatchAppointmentsByUser(ctx, "u1")

	assert.Empty(t, <-ch)

	require.NoError(t, s.InsertAppointment(ctx, services.Appointment{ID: "a1", UserID: "u1", Date: 100}))

	select {
	case list := <-ch:
		require.Len(t, list, 1)
		assert.Equal(t, "a1", list[0].ID)
	case <-time.After(time.Second):
		t.Fatal("no emission after insert")
	}
}
