package viewmodel_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mem "pethome/internal/adapters/storage/memory"
	"pethome/internal/domain/pets"
	"pethome/internal/viewmodel"
)

func newPetVM(t *testing.T) (*viewmodel.PetViewModel, pets.Repository) {
	t.Helper()
	repo := pets.NewLocalRepository(mem.NewPetStore())
	return viewmodel.NewPetViewModel(repo, "u1"), repo
}

func fillValidPetForm(vm *viewmodel.PetViewModel) {
	vm.OnNameChange("Milo")
	vm.OnSpeciesChange("Perro")
	vm.OnBreedChange("Criollo")
	vm.OnAgeChange("5")
	vm.OnWeightChange("12.5")
	vm.OnGenderChange("Macho")
	vm.OnColorChange("Café")
}

func TestPetForm_AgeValidationMessages(t *testing.T) {
	cases := []struct {
		name string
		age  string
		want string
	}{
		{"empty", "", "La edad es requerida"},
		{"not a number", "abc", "La edad debe ser un número"},
		{"out of range", "60", "La edad debe estar entre 0 y 50"},
		{"valid", "5", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vm, _ := newPetVM(t)
			fillValidPetForm(vm)
			vm.OnAgeChange(tc.age)

			vm.SavePet(context.Background())

			assert.Equal(t, tc.want, vm.FormState().AgeError)
		})
	}
}

func TestPetForm_WeightValidationMessages(t *testing.T) {
	cases := []struct {
		name   string
		weight string
		want   string
	}{
		{"empty", "", "El peso es requerido"},
		{"not a number", "pesado", "El peso debe ser un número"},
		{"zero", "0", "El peso debe estar entre 0 y 200 kg"},
		{"too heavy", "250", "El peso debe estar entre 0 y 200 kg"},
		{"valid", "12.5", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vm, _ := newPetVM(t)
			fillValidPetForm(vm)
			vm.OnWeightChange(tc.weight)

			vm.SavePet(context.Background())

			assert.Equal(t, tc.want, vm.FormState().WeightError)
		})
	}
}

func TestPetForm_RequiredTextFields(t *testing.T) {
	vm, _ := newPetVM(t)
	vm.SavePet(context.Background())

	st := vm.FormState()
	assert.Equal(t, "El nombre es requerido", st.NameError)
	assert.Equal(t, "La especie es requerida", st.SpeciesError)
	assert.Equal(t, "La raza es requerida", st.BreedError)
	assert.Equal(t, "El género es requerido", st.GenderError)
	assert.Equal(t, "El color es requerido", st.ColorError)
	assert.False(t, st.IsLoading)
	assert.False(t, st.IsSuccess)
}

func TestSavePet_CreateRefreshesListWithNewPetOnce(t *testing.T) {
	vm, _ := newPetVM(t)
	fillValidPetForm(vm)

	vm.SavePet(context.Background())

	st := vm.FormState()
	require.True(t, st.IsSuccess, "unexpected error: %s", st.ErrorMessage)

	list := vm.Pets()
	require.Len(t, list, 1)
	assert.Equal(t, "Milo", list[0].Name)
	assert.NotEmpty(t, list[0].ID)
	assert.Equal(t, "u1", list[0].UserID)
}

func TestSavePet_UpdateKeepsID(t *testing.T) {
	vm, repo := newPetVM(t)

	created, err := repo.Create(context.Background(), pets.Pet{
		Name: "Milo", Species: "Perro", Breed: "Criollo",
		Age: 5, Weight: 12.5, Gender: "Macho", Color: "Café", UserID: "u1",
	})
	require.NoError(t, err)

	vm.StartEditingPet(created)
	vm.OnNameChange("Milo II")
	vm.SavePet(context.Background())

	require.True(t, vm.FormState().IsSuccess)

	got, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milo II", got.Name)
}

func TestStartEditingPet_PreloadsForm(t *testing.T) {
	vm, _ := newPetVM(t)

	vm.StartEditingPet(pets.Pet{
		ID: "p1", Name: "Milo", Species: "Perro", Breed: "Criollo",
		Age: 5, Weight: 12.5, Gender: "Macho", Color: "Café", UserID: "u1",
	})

	st := vm.FormState()
	assert.Equal(t, "Milo", st.Name)
	assert.Equal(t, "5", st.Age)
	assert.Equal(t, "12.5", st.Weight)
	require.NotNil(t, vm.EditingPet())
	assert.Equal(t, "p1", vm.EditingPet().ID)

	vm.ClearForm()
	assert.Nil(t, vm.EditingPet())
	assert.Empty(t, vm.FormState().Name)
}

func TestDeletePet_RemovesFromListAndStorage(t *testing.T) {
	vm, repo := newPetVM(t)

	created, err := repo.Create(context.Background(), pets.Pet{
		Name: "Milo", Species: "Perro", Breed: "Criollo",
		Age: 5, Weight: 12.5, Gender: "Macho", Color: "Café", UserID: "u1",
	})
	require.NoError(t, err)

	vm.RefreshPets(context.Background())
	require.Len(t, vm.Pets(), 1)

	vm.DeletePet(context.Background(), created.ID)

	assert.Empty(t, vm.Pets())
	_, err = repo.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestPetViewModel_RunFollowsStoreChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := mem.NewPetStore()
	vm := viewmodel.NewPetViewModel(pets.NewLocalRepository(store), "u1")

	ch := vm.WatchPets(ctx)
	go vm.Run(ctx)

	// Mutación directa en storage, sin pasar por el view-model: la lista
	// publicada la tiene que reflejar sola.
	require.NoError(t, store.Upsert(ctx, pets.Pet{ID: "p1", Name: "Milo", UserID: "u1"}))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case list := <-ch:
			if len(list) == 1 && list[0].Name == "Milo" {
				return
			}
		case <-deadline:
			t.Fatal("live list never showed the upserted pet")
		}
	}
}

// staticPetRepo no implementa el stream vivo, como el repositorio remoto.
type staticPetRepo struct {
	pets.Repository
	list []pets.Pet
}

func (r staticPetRepo) ListByUser(context.Context, string) ([]pets.Pet, error) {
	return r.list, nil
}

func TestPetViewModel_RunWithoutStreamLoadsOnce(t *testing.T) {
	repo := staticPetRepo{list: []pets.Pet{{ID: "p1", Name: "Milo", UserID: "u1"}}}
	vm := viewmodel.NewPetViewModel(repo, "u1")

	vm.Run(context.Background())

	list := vm.Pets()
	require.Len(t, list, 1)
	assert.Equal(t, "Milo", list[0].Name)
}

// failingDeleteRepo falla solo en Delete para probar el mensaje de error.
type failingDeleteRepo struct {
	pets.Repository
}

func (f failingDeleteRepo) Delete(context.Context, string) error {
	return pets.ErrDeleteFailed
}

func TestDeletePet_FailureSetsPrefixedMessage(t *testing.T) {
	base := pets.NewLocalRepository(mem.NewPetStore())
	vm := viewmodel.NewPetViewModel(failingDeleteRepo{Repository: base}, "u1")

	vm.DeletePet(context.Background(), "p1")

	assert.Equal(t,
		"Error al eliminar mascota: No se pudo eliminar la mascota. Verifica tu conexión.",
		vm.FormState().ErrorMessage)
}

func TestResetSuccessState(t *testing.T) {
	vm, _ := newPetVM(t)
	fillValidPetForm(vm)
	vm.SavePet(context.Background())
	require.True(t, vm.FormState().IsSuccess)

	vm.ResetSuccessState()
	assert.False(t, vm.FormState().IsSuccess)
}
