// Package localauth simula autenticación sin backend: usuarios en memoria con
// hash bcrypt. Es el repositorio de auth del modo local.
package localauth

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pethome/internal/domain/auth"
	"pethome/internal/session"
)

type account struct {
	ID           string
	Name         string
	PasswordHash []byte
}

type AuthRepository struct {
	sessions *session.Store
	log      *zap.Logger

	mu    sync.Mutex
	users map[string]account // por email normalizado
}

func NewAuthRepository(sessions *session.Store, log *zap.Logger) *AuthRepository {
	return &AuthRepository{
		sessions: sessions,
		log:      log,
		users:    make(map[string]account),
	}
}

func (r *AuthRepository) Login(_ context.Context, email, password string) (auth.User, error) {
	key := normalize(email)

	r.mu.Lock()
	acc, ok := r.users[key]
	r.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)) != nil {
		return auth.User{}, auth.ErrLoginFailed
	}

	u := auth.User{ID: acc.ID, Email: key, Name: acc.Name}
	if err := r.sessions.Save(u.ID, u.Email, u.Name, nil); err != nil {
		r.log.Warn("persisting session", zap.Error(err))
		return auth.User{}, auth.ErrLoginFailed
	}
	return u, nil
}

// Register falla con el mensaje de registro genérico cuando el correo ya
// existe (conflicto de dominio, no de transporte).
func (r *AuthRepository) Register(_ context.Context, email, password, name string) (auth.User, error) {
	key := normalize(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return auth.User{}, auth.ErrRegisterFailed
	}

	r.mu.Lock()
	if _, exists := r.users[key]; exists {
		r.mu.Unlock()
		return auth.User{}, auth.ErrRegisterFailed
	}
	acc := account{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
	}
	r.users[key] = acc
	r.mu.Unlock()

	u := auth.User{ID: acc.ID, Email: key, Name: acc.Name}
	if err := r.sessions.Save(u.ID, u.Email, u.Name, nil); err != nil {
		r.log.Warn("persisting session", zap.Error(err))
		return auth.User{}, auth.ErrRegisterFailed
	}
	return u, nil
}

func (r *AuthRepository) Logout(_ context.Context) error {
	return r.sessions.Clear()
}

func (r *AuthRepository) ResetPassword(_ context.Context, _ string) error {
	return auth.ErrNotAvailable
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
