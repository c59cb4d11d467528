// Package remote implementa los repositorios de auth y mascotas contra el
// API HTTP del backend. Sin fallback local y sin cache: un fallo de red se
// propaga como fallo de dominio.
package remote

import (
	"encoding/json"
	"errors"

	"pethome/internal/platform/httpclient"
)

// ---- auth ----

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

// ---- pets ----

type petRequest struct {
	Name     string  `json:"name"`
	Species  string  `json:"species"`
	Breed    string  `json:"breed"`
	Age      int     `json:"age"`
	Weight   float64 `json:"weight"`
	Gender   string  `json:"gender"`
	Color    string  `json:"color"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

type petResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	Breed     string  `json:"breed"`
	Age       int     `json:"age"`
	Weight    float64 `json:"weight"`
	Gender    string  `json:"gender"`
	Color     string  `json:"color"`
	ImageURL  *string `json:"imageUrl"`
	UserID    string  `json:"userId"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// errorResponse es el envelope de error del backend.
type errorResponse struct {
	Timestamp        string            `json:"timestamp"`
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Message          string            `json:"message"`
	Path             string            `json:"path"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// serverMessage extrae el mensaje del envelope de error si la respuesta lo
// trae; "" si no se pudo decodificar (errores de red, body no-JSON, etc.).
func serverMessage(err error) string {
	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Body == "" {
		return ""
	}
	var envelope errorResponse
	if json.Unmarshal([]byte(httpErr.Body), &envelope) != nil {
		return ""
	}
	return envelope.Message
}
