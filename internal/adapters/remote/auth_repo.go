package remote

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"pethome/internal/domain/auth"
	"pethome/internal/platform/httpclient"
	"pethome/internal/session"
)

// AuthRepository autentica contra el backend y mantiene la sesión local.
type AuthRepository struct {
	api      *httpclient.Client
	sessions *session.Store
	log      *zap.Logger
}

func NewAuthRepository(api *httpclient.Client, sessions *session.Store, log *zap.Logger) *AuthRepository {
	return &AuthRepository{api: api, sessions: sessions, log: log}
}

func (r *AuthRepository) Login(ctx context.Context, email, password string) (auth.User, error) {
	var resp authResponse
	err := r.api.DoJSON(ctx, http.MethodPost, "/api/auth/login", loginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		// La causa real solo queda en el log; al usuario le llega el
		// mensaje genérico, sin detalles de transporte.
		r.log.Warn("login failed",
			zap.String("email", email),
			zap.String("server_message", serverMessage(err)),
			zap.Error(err),
		)
		return auth.User{}, auth.ErrLoginFailed
	}

	// Persistir token + identidad ANTES de reportar éxito: la siguiente
	// llamada autenticada ya debe salir con Authorization.
	if err := r.sessions.Save(resp.ID, resp.Email, resp.Name, &resp.Token); err != nil {
		r.log.Error("saving session after login", zap.Error(err))
		return auth.User{}, auth.ErrLoginFailed
	}

	r.log.Debug("login successful", zap.String("user_id", resp.ID))
	return auth.User{ID: resp.ID, Email: resp.Email, Name: resp.Name}, nil
}

func (r *AuthRepository) Register(ctx context.Context, email, password, name string) (auth.User, error) {
	var resp authResponse
	err := r.api.DoJSON(ctx, http.MethodPost, "/api/auth/register", registerRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		r.log.Warn("register failed",
			zap.String("email", email),
			zap.String("server_message", serverMessage(err)),
			zap.Error(err),
		)
		return auth.User{}, auth.ErrRegisterFailed
	}

	if err := r.sessions.Save(resp.ID, resp.Email, resp.Name, &resp.Token); err != nil {
		r.log.Error("saving session after register", zap.Error(err))
		return auth.User{}, auth.ErrRegisterFailed
	}

	r.log.Debug("register successful", zap.String("user_id", resp.ID))
	return auth.User{ID: resp.ID, Email: resp.Email, Name: resp.Name}, nil
}

func (r *AuthRepository) Logout(ctx context.Context) error {
	r.log.Debug("logging out")
	return r.sessions.Clear()
}

// ResetPassword queda pendiente de endpoint en el backend.
func (r *AuthRepository) ResetPassword(ctx context.Context, email string) error {
	return auth.ErrNotAvailable
}
