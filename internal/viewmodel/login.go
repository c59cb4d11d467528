package viewmodel

import (
	"context"

	"pethome/internal/domain/auth"
	"pethome/internal/state"
)

// LoginState es el estado observable de la pantalla de login.
// Los errores por campo en "" significan sin error.
type LoginState struct {
	Email             string
	Password          string
	IsPasswordVisible bool
	IsLoading         bool
	IsLoginSuccessful bool
	EmailError        string
	PasswordError     string
	ErrorMessage      string
}

type LoginViewModel struct {
	repo  auth.Repository
	state *state.Value[LoginState]
}

func NewLoginViewModel(repo auth.Repository) *LoginViewModel {
	return &LoginViewModel{
		repo:  repo,
		state: state.NewValue(LoginState{}),
	}
}

func (vm *LoginViewModel) State() LoginState {
	return vm.state.Get()
}

func (vm *LoginViewModel) Watch(ctx context.Context) <-chan LoginState {
	return vm.state.Watch(ctx)
}

// Los handlers de cambio actualizan el valor y limpian el error de ese campo.

func (vm *LoginViewModel) OnEmailChange(email string) {
	vm.state.Update(func(s LoginState) LoginState {
		s.Email = email
		s.EmailError = ""
		return s
	})
}

func (vm *LoginViewModel) OnPasswordChange(password string) {
	vm.state.Update(func(s LoginState) LoginState {
		s.Password = password
		s.PasswordError = ""
		return s
	})
}

func (vm *LoginViewModel) TogglePasswordVisibility() {
	vm.state.Update(func(s LoginState) LoginState {
		s.IsPasswordVisible = !s.IsPasswordVisible
		return s
	})
}

func (vm *LoginViewModel) ClearError() {
	vm.state.Update(func(s LoginState) LoginState {
		s.ErrorMessage = ""
		return s
	})
}

// Login valida y, si pasa, hace exactamente una llamada al repositorio.
// Si la validación falla no hay llamada y el loading queda en false.
func (vm *LoginViewModel) Login(ctx context.Context) {
	if !vm.validate() {
		return
	}

	vm.state.Update(func(s LoginState) LoginState {
		s.IsLoading = true
		return s
	})

	cur := vm.state.Get()
	_, err := vm.repo.Login(ctx, cur.Email, cur.Password)

	vm.state.Update(func(s LoginState) LoginState {
		s.IsLoading = false
		if err != nil {
			s.ErrorMessage = err.Error()
			return s
		}
		s.IsLoginSuccessful = true
		s.ErrorMessage = ""
		return s
	})
}

func (vm *LoginViewModel) validate() bool {
	valid := true

	cur := vm.state.Get()

	if isBlank(cur.Email) {
		vm.setEmailError("El correo es requerido")
		valid = false
	} else if !isValidEmail(cur.Email) {
		vm.setEmailError("Correo inválido")
		valid = false
	}

	if isBlank(cur.Password) {
		vm.setPasswordError("La contraseña es requerida")
		valid = false
	} else if len(cur.Password) < 6 {
		vm.setPasswordError("La contraseña debe tener al menos 6 caracteres")
		valid = false
	}

	return valid
}

func (vm *LoginViewModel) setEmailError(msg string) {
	vm.state.Update(func(s LoginState) LoginState {
		s.EmailError = msg
		return s
	})
}

func (vm *LoginViewModel) setPasswordError(msg string) {
	vm.state.Update(func(s LoginState) LoginState {
		s.PasswordError = msg
		return s
	})
}
