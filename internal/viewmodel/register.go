package viewmodel

import (
	"context"

	"pethome/internal/domain/auth"
	"pethome/internal/state"
)

// RegisterState es el estado observable de la pantalla de registro.
type RegisterState struct {
	Name                     string
	Email                    string
	Password                 string
	ConfirmPassword          string
	IsPasswordVisible        bool
	IsConfirmPasswordVisible bool
	IsLoading                bool
	IsRegisterSuccessful     bool
	NameError                string
	EmailError               string
	PasswordError            string
	ConfirmPasswordError     string
	ErrorMessage             string
}

type RegisterViewModel struct {
	repo  auth.Repository
	state *state.Value[RegisterState]
}

func NewRegisterViewModel(repo auth.Repository) *RegisterViewModel {
	return &RegisterViewModel{
		repo:  repo,
		state: state.NewValue(RegisterState{}),
	}
}

func (vm *RegisterViewModel) State() RegisterState {
	return vm.state.Get()
}

func (vm *RegisterViewModel) Watch(ctx context.Context) <-chan RegisterState {
	return vm.state.Watch(ctx)
}

func (vm *RegisterViewModel) OnNameChange(name string) {
	vm.state.Update(func(s RegisterState) RegisterState {
		s.Name = name
		s.NameError = ""
		return s
	})
}

func (vm *RegisterViewModel) OnEmailChange(email string) {
	vm.state.Update(func(s RegisterState) RegisterState {
		s.Email = email
		s.EmailError = ""
		return s
	})
}

func (vm *RegisterViewModel) OnPasswordChange(password string) {
	vm.state.Update(func(s RegisterState) RegisterState {
		s.Password = password
		s.PasswordError = ""
		return s
	})
}

func (vm *RegisterViewModel) OnConfirmPasswordChange(confirm string) {
	vm.state.Update(func(s RegisterState) RegisterState {
		s.ConfirmPassword = confirm
		s.ConfirmPasswordError = ""
		return s
	})
}

func (vm *RegisterViewModel) TogglePasswordVisibility() {
	vm.state.Update(func(s RegisterState) RegisterState {
		s.IsPasswordVisible = !s.IsPasswordVisible
		return s
	})
}

func (vm *RegisterViewModel) ToggleConfirmPasswordVisibility() {
	vm.state.Update(func(s RegisterState) RegisterState {
		s.IsConfirmPasswordVisible = !s.IsConfirmPasswordVisible
		return s
	})
}

func (vm *RegisterViewModel) ClearError() {
	vm.state.Update(func(s RegisterState) RegisterState {
		s.ErrorMessage = ""
		return s
	})
}

// Register valida y, si pasa, llama al repositorio una sola vez.
func (vm *RegisterViewModel) Register(ctx context.Context) {
	if !vm.validate() {
		return
	}

	vm.state.Update(func(s RegisterState) RegisterState {
		s.IsLoading = true
		return s
	})

	cur := vm.state.Get()
	_, err := vm.repo.Register(ctx, cur.Email, cur.Password, cur.Name)

	vm.state.Update(func(s RegisterState) RegisterState {
		s.IsLoading = false
		if err != nil {
			s.ErrorMessage = err.Error()
			return s
		}
		s.IsRegisterSuccessful = true
		s.ErrorMessage = ""
		return s
	})
}

func (vm *RegisterViewModel) validate() bool {
	valid := true

	set := func(fn func(*RegisterState)) {
		vm.state.Update(func(s RegisterState) RegisterState {
			fn(&s)
			return s
		})
	}

	cur := vm.state.Get()

	if isBlank(cur.Name) {
		set(func(s *RegisterState) { s.NameError = "El nombre es requerido" })
		valid = false
	} else if len(cur.Name) < 2 {
		set(func(s *RegisterState) { s.NameError = "El nombre debe tener al menos 2 caracteres" })
		valid = false
	}

	if isBlank(cur.Email) {
		set(func(s *RegisterState) { s.EmailError = "El correo es requerido" })
		valid = false
	} else if !isValidEmail(cur.Email) {
		set(func(s *RegisterState) { s.EmailError = "Correo inválido" })
		valid = false
	}

	if isBlank(cur.Password) {
		set(func(s *RegisterState) { s.PasswordError = "La contraseña es requerida" })
		valid = false
	} else if len(cur.Password) < 6 {
		set(func(s *RegisterState) { s.PasswordError = "La contraseña debe tener al menos 6 caracteres" })
		valid = false
	}

	if isBlank(cur.ConfirmPassword) {
		set(func(s *RegisterState) { s.ConfirmPasswordError = "Confirma tu contraseña" })
		valid = false
	} else if cur.Password != cur.ConfirmPassword {
		set(func(s *RegisterState) { s.ConfirmPasswordError = "Las contraseñas no coinciden" })
		valid = false
	}

	return valid
}
