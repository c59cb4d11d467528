// Package auth define la identidad de usuario y el contrato del repositorio
// de autenticación.
package auth

import (
	"context"
	"errors"
)

// User es la identidad que devuelve el backend al autenticar.
type User struct {
	ID    string
	Email string
	Name  string
}

// Mensajes de cara al usuario. Los repositorios nunca devuelven el error de
// transporte crudo: lo loguean y devuelven uno de estos.
var (
	ErrLoginFailed    = errors.New("Correo o contraseña incorrectos. Verifica tu conexión.")
	ErrRegisterFailed = errors.New("Error al registrar. El correo puede estar ya registrado.")
	ErrNotAvailable   = errors.New("Funcionalidad no disponible aún")
)

// Repository autentica contra el backend y mantiene la sesión local.
// Login/Register persisten identidad + token en el session store ANTES de
// devolver éxito, para que la siguiente llamada autenticada ya salga con token.
type Repository interface {
	Login(ctx context.Context, email, password string) (User, error)
	Register(ctx context.Context, email, password, name string) (User, error)
	Logout(ctx context.Context) error
	ResetPassword(ctx context.Context, email string) error
}
