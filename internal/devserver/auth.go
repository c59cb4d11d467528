package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type ctxKey int

const claimsKey ctxKey = 0

type authClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	Type  string `json:"type"`
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (s *Server) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid json")
			return
		}

		s.mu.Lock()
		u, ok := s.users[strings.ToLower(req.Email)]
		s.mu.Unlock()

		if !ok || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
			writeError(w, r, http.StatusUnauthorized, "Credenciales inválidas")
			return
		}

		token, err := s.issueToken(u)
		if err != nil {
			s.log.Error("issuing token", zap.Error(err))
			writeError(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, authResponse{
			Token: token,
			Type:  "Bearer",
			ID:    u.ID,
			Email: u.Email,
			Name:  u.Name,
			Role:  u.Role,
		})
	}
}

func (s *Server) registerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid json")
			return
		}

		fields := map[string]string{}
		if strings.TrimSpace(req.Name) == "" {
			fields["name"] = "required"
		}
		if strings.TrimSpace(req.Email) == "" {
			fields["email"] = "required"
		}
		if len(req.Password) < 6 {
			fields["password"] = "must be at least 6 characters"
		}
		if len(fields) > 0 {
			writeErrorWithFields(w, r, http.StatusBadRequest, "validation failed", fields)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		s.mu.Lock()
		if _, exists := s.users[email]; exists {
			s.mu.Unlock()
			writeError(w, r, http.StatusConflict, "El correo ya está registrado")
			return
		}
		s.nextID++
		u := &user{
			ID:           strconv.Itoa(s.nextID),
			Name:         strings.TrimSpace(req.Name),
			Email:        email,
			Role:         "USER",
			PasswordHash: hash,
		}
		s.users[email] = u
		s.mu.Unlock()

		token, err := s.issueToken(u)
		if err != nil {
			s.log.Error("issuing token", zap.Error(err))
			writeError(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, authResponse{
			Token: token,
			Type:  "Bearer",
			ID:    u.ID,
			Email: u.Email,
			Name:  u.Name,
			Role:  u.Role,
		})
	}
}

func (s *Server) issueToken(u *user) (string, error) {
	now := time.Now()
	claims := authClaims{
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// requireAuth valida el bearer token y deja los claims en el contexto.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(raw) == "" {
			writeError(w, r, http.StatusUnauthorized, "missing bearer token")
			return
		}

		var claims authClaims
		_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.jwtSecret, nil
		})
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, &claims)))
	})
}

func getClaims(ctx context.Context) (*authClaims, bool) {
	c, ok := ctx.Value(claimsKey).(*authClaims)
	return c, ok
}
