package devserver

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

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

func (s *Server) listPetsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := getClaims(r.Context())
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "unauthorized")
			return
		}

		s.mu.Lock()
		out := make([]petResponse, 0)
		for _, p := range s.pets {
			if p.UserID == claims.Subject {
				out = append(out, toPetResponse(p))
			}
		}
		s.mu.Unlock()

		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) listPetsBySpeciesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := getClaims(r.Context())
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "unauthorized")
			return
		}

		species := chi.URLParam(r, "species")

		s.mu.Lock()
		out := make([]petResponse, 0)
		for _, p := range s.pets {
			if p.UserID == claims.Subject && strings.EqualFold(p.Species, species) {
				out = append(out, toPetResponse(p))
			}
		}
		s.mu.Unlock()

		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) getPetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := getClaims(r.Context())
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "unauthorized")
			return
		}

		petID := chi.URLParam(r, "petID")

		s.mu.Lock()
		p, exists := s.pets[petID]
		s.mu.Unlock()

		if !exists || p.UserID != claims.Subject {
			writeError(w, r, http.StatusNotFound, "Mascota no encontrada")
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func (s *Server) createPetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := getClaims(r.Context())
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid json")
			return
		}

		if fields := validatePet(req); len(fields) > 0 {
			writeErrorWithFields(w, r, http.StatusBadRequest, "validation failed", fields)
			return
		}

		now := time.Now().UTC()
		p := pet{
			ID:        uuid.NewString(),
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Age:       req.Age,
			Weight:    req.Weight,
			Gender:    req.Gender,
			Color:     req.Color,
			ImageURL:  req.ImageURL,
			UserID:    claims.Subject,
			CreatedAt: now,
			UpdatedAt: now,
		}

		s.mu.Lock()
		s.pets[p.ID] = p
		s.mu.Unlock()

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func (s *Server) updatePetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := getClaims(r.Context())
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "unauthorized")
			return
		}

		petID := chi.URLParam(r, "petID")

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid json")
			return
		}

		if fields := validatePet(req); len(fields) > 0 {
			writeErrorWithFields(w, r, http.StatusBadRequest, "validation failed", fields)
			return
		}

		s.mu.Lock()
		p, exists := s.pets[petID]
		if !exists || p.UserID != claims.Subject {
			s.mu.Unlock()
			writeError(w, r, http.StatusNotFound, "Mascota no encontrada")
			return
		}
		p.Name = req.Name
		p.Species = req.Species
		p.Breed = req.Breed
		p.Age = req.Age
		p.Weight = req.Weight
		p.Gender = req.Gender
		p.Color = req.Color
		p.ImageURL = req.ImageURL
		p.UpdatedAt = time.Now().UTC()
		s.pets[petID] = p
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func (s *Server) deletePetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := getClaims(r.Context())
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "unauthorized")
			return
		}

		petID := chi.URLParam(r, "petID")

		s.mu.Lock()
		p, exists := s.pets[petID]
		if !exists || p.UserID != claims.Subject {
			s.mu.Unlock()
			writeError(w, r, http.StatusNotFound, "Mascota no encontrada")
			return
		}
		delete(s.pets, petID)
		s.mu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	}
}

func validatePet(req petRequest) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "required"
	}
	if strings.TrimSpace(req.Species) == "" {
		fields["species"] = "required"
	}
	if req.Age < 0 || req.Age > 50 {
		fields["age"] = "must be between 0 and 50"
	}
	if req.Weight <= 0 || req.Weight > 200 {
		fields["weight"] = "must be between 0 and 200"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func toPetResponse(p pet) petResponse {
	return petResponse{
		ID:        p.ID,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		Age:       p.Age,
		Weight:    p.Weight,
		Gender:    p.Gender,
		Color:     p.Color,
		ImageURL:  p.ImageURL,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}
