// Package devserver es un backend de desarrollo autocontenido: implementa la
// misma superficie HTTP que el backend real (auth + mascotas) sobre estado en
// memoria, para correr la app en modo remoto sin infraestructura.
package devserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	log       *zap.Logger
	jwtSecret []byte

	mu     sync.Mutex
	users  map[string]*user // por email
	pets   map[string]pet
	nextID int
}

type user struct {
	ID           string
	Name         string
	Email        string
	Role         string
	PasswordHash []byte
}

type pet struct {
	ID        string
	Name      string
	Species   string
	Breed     string
	Age       int
	Weight    float64
	Gender    string
	Color     string
	ImageURL  *string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(log *zap.Logger, jwtSecret []byte) *Server {
	return &Server{
		log:       log,
		jwtSecret: jwtSecret,
		users:     make(map[string]*user),
		pets:      make(map[string]pet),
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", s.loginHandler())
		api.Post("/auth/register", s.registerHandler())

		api.Group(func(pr chi.Router) {
			pr.Use(s.requireAuth)

			pr.Route("/pets", func(p chi.Router) {
				p.Get("/", s.listPetsHandler())
				p.Post("/", s.createPetHandler())
				p.Get("/species/{species}", s.listPetsBySpeciesHandler())
				p.Get("/{petID}", s.getPetHandler())
				p.Put("/{petID}", s.updatePetHandler())
				p.Delete("/{petID}", s.deletePetHandler())
			})
		})
	})

	return r
}

// errorEnvelope replica el formato de error del backend real para que el
// cliente pueda decodificarlo igual en dev y en producción.
type errorEnvelope struct {
	Timestamp        string            `json:"timestamp"`
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Message          string            `json:"message"`
	Path             string            `json:"path"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeErrorWithFields(w, r, status, message, nil)
}

func writeErrorWithFields(w http.ResponseWriter, r *http.Request, status int, message string, fields map[string]string) {
	writeJSON(w, status, errorEnvelope{
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		Status:           status,
		Error:            http.StatusText(status),
		Message:          message,
		Path:             r.URL.Path,
		ValidationErrors: fields,
	})
}
