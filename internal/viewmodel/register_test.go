package viewmodel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"pethome/internal/domain/auth"
	"pethome/internal/viewmodel"
)

func TestRegister_ConfirmMismatchBlocksRepositoryCall(t *testing.T) {
	repo := &fakeAuthRepo{}
	vm := viewmodel.NewRegisterViewModel(repo)

	vm.OnNameChange("Ana")
	vm.OnEmailChange("ana@mail.com")
	vm.OnPasswordChange("secreto1")
	vm.OnConfirmPasswordChange("secreto2")
	vm.Register(context.Background())

	st := vm.State()
	assert.Equal(t, "Las contraseñas no coinciden", st.ConfirmPasswordError)
	assert.False(t, st.IsRegisterSuccessful)
	assert.Zero(t, repo.registerCalls)
}

func TestRegister_ShortName(t *testing.T) {
	repo := &fakeAuthRepo{}
	vm := viewmodel.NewRegisterViewModel(repo)

	vm.OnNameChange("A")
	vm.OnEmailChange("ana@mail.com")
	vm.OnPasswordChange("secreto1")
	vm.OnConfirmPasswordChange("secreto1")
	vm.Register(context.Background())

	assert.Equal(t, "El nombre debe tener al menos 2 caracteres", vm.State().NameError)
	assert.Zero(t, repo.registerCalls)
}

func TestRegister_EmptyConfirm(t *testing.T) {
	vm := viewmodel.NewRegisterViewModel(&fakeAuthRepo{})

	vm.OnNameChange("Ana")
	vm.OnEmailChange("ana@mail.com")
	vm.OnPasswordChange("secreto1")
	vm.Register(context.Background())

	assert.Equal(t, "Confirma tu contraseña", vm.State().ConfirmPasswordError)
}

func TestRegister_Success(t *testing.T) {
	repo := &fakeAuthRepo{}
	vm := viewmodel.NewRegisterViewModel(repo)

	vm.OnNameChange("Ana")
	vm.OnEmailChange("ana@mail.com")
	vm.OnPasswordChange("secreto1")
	vm.OnConfirmPasswordChange("secreto1")
	vm.Register(context.Background())

	st := vm.State()
	assert.True(t, st.IsRegisterSuccessful)
	assert.Empty(t, st.ErrorMessage)
	assert.Equal(t, 1, repo.registerCalls)
}

func TestRegister_RepositoryFailureSetsMessage(t *testing.T) {
	repo := &fakeAuthRepo{registerErr: auth.ErrRegisterFailed}
	vm := viewmodel.NewRegisterViewModel(repo)

	vm.OnNameChange("Ana")
	vm.OnEmailChange("ana@mail.com")
	vm.OnPasswordChange("secreto1")
	vm.OnConfirmPasswordChange("secreto1")
	vm.Register(context.Background())

	st := vm.State()
	assert.False(t, st.IsRegisterSuccessful)
	assert.Equal(t, "Error al registrar. El correo puede estar ya registrado.", st.ErrorMessage)
}
