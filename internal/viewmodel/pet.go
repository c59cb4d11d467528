package viewmodel

import (
	"context"
	"strconv"

	"pethome/internal/domain/pets"
	"pethome/internal/state"
)

// PetFormState es el estado observable del formulario de mascota.
// Age y Weight se mantienen como texto crudo hasta validar.
type PetFormState struct {
	Name     string
	Species  string
	Breed    string
	Age      string
	Weight   string
	Gender   string
	Color    string
	ImageURL string

	NameError    string
	SpeciesError string
	BreedError   string
	AgeError     string
	WeightError  string
	GenderError  string
	ColorError   string

	IsLoading    bool
	ErrorMessage string
	IsSuccess    bool
}

type PetViewModel struct {
	repo   pets.Repository
	userID string

	form    *state.Value[PetFormState]
	pets    *state.Value[[]pets.Pet]
	editing *state.Value[*pets.Pet]
}

func NewPetViewModel(repo pets.Repository, userID string) *PetViewModel {
	return &PetViewModel{
		repo:    repo,
		userID:  userID,
		form:    state.NewValue(PetFormState{}),
		pets:    state.NewValue([]pets.Pet{}),
		editing: state.NewValue[*pets.Pet](nil),
	}
}

func (vm *PetViewModel) FormState() PetFormState {
	return vm.form.Get()
}

func (vm *PetViewModel) WatchForm(ctx context.Context) <-chan PetFormState {
	return vm.form.Watch(ctx)
}

func (vm *PetViewModel) Pets() []pets.Pet {
	return vm.pets.Get()
}

func (vm *PetViewModel) WatchPets(ctx context.Context) <-chan []pets.Pet {
	return vm.pets.Watch(ctx)
}

func (vm *PetViewModel) EditingPet() *pets.Pet {
	return vm.editing.Get()
}

// Run consume la lista viva del repositorio cuando este la ofrece (modo
// local): cada cambio en storage reemplaza la lista publicada, hasta que ctx
// termine. El repositorio remoto no tiene stream; ahí carga una vez y
// retorna, y las recargas siguientes van por RefreshPets.
func (vm *PetViewModel) Run(ctx context.Context) {
	w, ok := vm.repo.(pets.Watcher)
	if !ok {
		vm.RefreshPets(ctx)
		return
	}
	for list := range w.WatchByUser(ctx, vm.userID) {
		vm.pets.Set(list)
	}
}

// RefreshPets recarga la lista desde la fuente autoritativa (remota o local).
// Ante error deja la lista vacía; nunca muestra datos viejos.
func (vm *PetViewModel) RefreshPets(ctx context.Context) {
	list, err := vm.repo.ListByUser(ctx, vm.userID)
	if err != nil {
		vm.pets.Set([]pets.Pet{})
		return
	}
	vm.pets.Set(list)
}

func (vm *PetViewModel) OnNameChange(v string) {
	vm.form.Update(func(s PetFormState) PetFormState { s.Name = v; s.NameError = ""; return s })
}

func (vm *PetViewModel) OnSpeciesChange(v string) {
	vm.form.Update(func(s PetFormState) PetFormState { s.Species = v; s.SpeciesError = ""; return s })
}

func (vm *PetViewModel) OnBreedChange(v string) {
	vm.form.Update(func(s PetFormState) PetFormState { s.Breed = v; s.BreedError = ""; return s })
}

func (vm *PetViewModel) OnAgeChange(v string) {
	vm.form.Update(func(s PetFormState) PetFormState { s.Age = v; s.AgeError = ""; return s })
}

func (vm *PetViewModel) OnWeightChange(v string) {
	vm.form.Update(func(s PetFormState) PetFormState { s.Weight = v; s.WeightError = ""; return s })
}

func (vm *PetViewModel) OnGenderChange(v string) {
	vm.form.Update(func(s PetFormState) PetFormState { s.Gender = v; s.GenderError = ""; return s })
}

func (vm *PetViewModel) OnColorChange(v string) {
	vm.form.Update(func(s PetFormState) PetFormState { s.Color = v; s.ColorError = ""; return s })
}

func (vm *PetViewModel) OnImageSelected(url string) {
	vm.form.Update(func(s PetFormState) PetFormState { s.ImageURL = url; return s })
}

func (vm *PetViewModel) ClearError() {
	vm.form.Update(func(s PetFormState) PetFormState { s.ErrorMessage = ""; return s })
}

// StartEditingPet precarga el formulario con una mascota existente.
func (vm *PetViewModel) StartEditingPet(p pets.Pet) {
	vm.editing.Set(&p)
	vm.form.Set(PetFormState{
		Name:     p.Name,
		Species:  p.Species,
		Breed:    p.Breed,
		Age:      strconv.Itoa(p.Age),
		Weight:   strconv.FormatFloat(p.Weight, 'f', -1, 64),
		Gender:   p.Gender,
		Color:    p.Color,
		ImageURL: p.ImageURL,
	})
}

func (vm *PetViewModel) ClearForm() {
	vm.editing.Set(nil)
	vm.form.Set(PetFormState{})
}

func (vm *PetViewModel) ResetSuccessState() {
	vm.form.Update(func(s PetFormState) PetFormState { s.IsSuccess = false; return s })
}

// SavePet valida y crea o actualiza según haya mascota en edición.
// Tras guardar con éxito recarga la lista desde la fuente autoritativa.
func (vm *PetViewModel) SavePet(ctx context.Context) {
	if !vm.validateForm() {
		return
	}

	vm.form.Update(func(s PetFormState) PetFormState { s.IsLoading = true; return s })

	cur := vm.form.Get()
	age, _ := strconv.Atoi(cur.Age)
	weight, _ := strconv.ParseFloat(cur.Weight, 64)

	p := pets.Pet{
		Name:     cur.Name,
		Species:  cur.Species,
		Breed:    cur.Breed,
		Age:      age,
		Weight:   weight,
		Gender:   cur.Gender,
		Color:    cur.Color,
		ImageURL: cur.ImageURL,
		UserID:   vm.userID,
	}

	var err error
	if editing := vm.editing.Get(); editing != nil {
		p.ID = editing.ID
		_, err = vm.repo.Update(ctx, p)
	} else {
		_, err = vm.repo.Create(ctx, p)
	}

	vm.form.Update(func(s PetFormState) PetFormState {
		s.IsLoading = false
		if err != nil {
			s.ErrorMessage = err.Error()
			return s
		}
		s.IsSuccess = true
		s.ErrorMessage = ""
		return s
	})

	if err == nil {
		vm.RefreshPets(ctx)
	}
}

// DeletePet borra en la fuente autoritativa. La lista local se filtra de
// inmediato (update optimista para la UI) y luego se recarga para asegurar
// consistencia.
func (vm *PetViewModel) DeletePet(ctx context.Context, petID string) {
	if err := vm.repo.Delete(ctx, petID); err != nil {
		vm.form.Update(func(s PetFormState) PetFormState {
			s.ErrorMessage = "Error al eliminar mascota: " + err.Error()
			return s
		})
		return
	}

	vm.pets.Update(func(list []pets.Pet) []pets.Pet {
		out := make([]pets.Pet, 0, len(list))
		for _, p := range list {
			if p.ID != petID {
				out = append(out, p)
			}
		}
		return out
	})
	vm.RefreshPets(ctx)
}

func (vm *PetViewModel) validateForm() bool {
	valid := true

	set := func(fn func(*PetFormState)) {
		vm.form.Update(func(s PetFormState) PetFormState {
			fn(&s)
			return s
		})
	}

	cur := vm.form.Get()

	if isBlank(cur.Name) {
		set(func(s *PetFormState) { s.NameError = "El nombre es requerido" })
		valid = false
	}

	if isBlank(cur.Species) {
		set(func(s *PetFormState) { s.SpeciesError = "La especie es requerida" })
		valid = false
	}

	if isBlank(cur.Breed) {
		set(func(s *PetFormState) { s.BreedError = "La raza es requerida" })
		valid = false
	}

	if isBlank(cur.Age) {
		set(func(s *PetFormState) { s.AgeError = "La edad es requerida" })
		valid = false
	} else if age, err := strconv.Atoi(cur.Age); err != nil {
		set(func(s *PetFormState) { s.AgeError = "La edad debe ser un número" })
		valid = false
	} else if age < 0 || age > 50 {
		set(func(s *PetFormState) { s.AgeError = "La edad debe estar entre 0 y 50" })
		valid = false
	}

	if isBlank(cur.Weight) {
		set(func(s *PetFormState) { s.WeightError = "El peso es requerido" })
		valid = false
	} else if weight, err := strconv.ParseFloat(cur.Weight, 64); err != nil {
		set(func(s *PetFormState) { s.WeightError = "El peso debe ser un número" })
		valid = false
	} else if weight <= 0 || weight > 200 {
		set(func(s *PetFormState) { s.WeightError = "El peso debe estar entre 0 y 200 kg" })
		valid = false
	}

	if isBlank(cur.Gender) {
		set(func(s *PetFormState) { s.GenderError = "El género es requerido" })
		valid = false
	}

	if isBlank(cur.Color) {
		set(func(s *PetFormState) { s.ColorError = "El color es requerido" })
		valid = false
	}

	return valid
}
