// Package session persiste la identidad del usuario autenticado y su token,
// y los expone como streams reactivos para el resto de la app.
package session

import (
	"context"
	"strings"

	"pethome/internal/state"
)

// Session es el registro local de la sesión vigente.
// Token vacío => sin credencial (según el modo, puede igual contar como logueado).
type Session struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AuthToken string `json:"auth_token"`
}

// Persister guarda y recupera la sesión en almacenamiento local.
type Persister interface {
	Load() (Session, error)
	Store(Session) error
}

// Store mantiene la sesión en un valor reactivo con escritura atómica.
//
// requireToken resuelve la ambigüedad de "isLoggedIn" entre variantes:
// true => exige user id + token; false => basta el user id.
type Store struct {
	value        *state.Value[Session]
	persist      Persister
	requireToken bool
}

func NewStore(p Persister, requireToken bool) (*Store, error) {
	s, err := p.Load()
	if err != nil {
		return nil, err
	}
	return &Store{
		value:        state.NewValue(s),
		persist:      p,
		requireToken: requireToken,
	}, nil
}

// Current devuelve la sesión vigente (lectura sincrónica del último valor).
func (s *Store) Current() Session {
	return s.value.Get()
}

// AuthToken devuelve el token vigente; "" si no hay.
func (s *Store) AuthToken() string {
	return s.value.Get().AuthToken
}

// Save hace upsert de los campos de sesión. Persiste primero y recién
// entonces publica: los watchers solo ven sesiones ya guardadas en disco.
// token == nil conserva el token ya guardado: login/register lo pasan,
// actualizaciones de perfil no.
func (s *Store) Save(userID, email, name string, token *string) error {
	next := s.value.Get()
	next.UserID = userID
	next.Email = email
	next.Name = name
	if token != nil {
		next.AuthToken = *token
	}
	if err := s.persist.Store(next); err != nil {
		return err
	}
	s.value.Set(next)
	return nil
}

// SaveAuthToken reemplaza solo el token, con el mismo orden
// persistir-luego-publicar de Save.
func (s *Store) SaveAuthToken(token string) error {
	next := s.value.Get()
	next.AuthToken = token
	if err := s.persist.Store(next); err != nil {
		return err
	}
	s.value.Set(next)
	return nil
}

// Clear borra todos los campos de la sesión. Si el persister falla, la
// sesión en memoria queda intacta.
func (s *Store) Clear() error {
	if err := s.persist.Store(Session{}); err != nil {
		return err
	}
	s.value.Set(Session{})
	return nil
}

// Watch emite la sesión vigente al suscribirse y luego cada escritura.
func (s *Store) Watch(ctx context.Context) <-chan Session {
	return s.value.Watch(ctx)
}

// IsLoggedIn indica si hay sesión activa según el modo configurado.
func (s *Store) IsLoggedIn() bool {
	return s.loggedIn(s.value.Get())
}

// WatchLoggedIn es el stream derivado de IsLoggedIn.
func (s *Store) WatchLoggedIn(ctx context.Context) <-chan bool {
	out := make(chan bool, 1)
	in := s.value.Watch(ctx)

	go func() {
		defer close(out)
		for sess := range in {
			state.Push(out, s.loggedIn(sess))
		}
	}()

	return out
}

func (s *Store) loggedIn(sess Session) bool {
	if strings.TrimSpace(sess.UserID) == "" {
		return false
	}
	if s.requireToken && strings.TrimSpace(sess.AuthToken) == "" {
		return false
	}
	return true
}
