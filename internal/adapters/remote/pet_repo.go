package remote

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"pethome/internal/domain/pets"
	"pethome/internal/platform/httpclient"
)

// PetRepository implementa pets.Repository contra el API HTTP.
// Todas las operaciones son llamadas de red puras: sin cache y sin escritura
// local parcial (una mutación fallida no toca nada).
type PetRepository struct {
	api *httpclient.Client
	log *zap.Logger
}

func NewPetRepository(api *httpclient.Client, log *zap.Logger) *PetRepository {
	return &PetRepository{api: api, log: log}
}

func (r *PetRepository) ListByUser(ctx context.Context, userID string) ([]pets.Pet, error) {
	var resp []petResponse
	if err := r.api.DoJSON(ctx, http.MethodGet, "/api/pets", nil, &resp); err != nil {
		r.log.Warn("fetching pets failed", zap.Error(err))
		return nil, pets.ErrFetchFailed
	}

	out := make([]pets.Pet, 0, len(resp))
	for _, p := range resp {
		// El backend lista las mascotas del usuario autenticado; el
		// ownerUserID del modelo local es el del caller.
		out = append(out, toPet(p, userID))
	}
	return out, nil
}

func (r *PetRepository) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	var resp petResponse
	if err := r.api.DoJSON(ctx, http.MethodGet, "/api/pets/"+url.PathEscape(id), nil, &resp); err != nil {
		r.log.Warn("fetching pet failed", zap.String("pet_id", id), zap.Error(err))
		return pets.Pet{}, pets.ErrNotFound
	}
	return toPet(resp, resp.UserID), nil
}

func (r *PetRepository) ListBySpecies(ctx context.Context, species string) ([]pets.Pet, error) {
	var resp []petResponse
	path := "/api/pets/species/" + url.PathEscape(species)
	if err := r.api.DoJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		r.log.Warn("fetching pets by species failed", zap.String("species", species), zap.Error(err))
		return nil, pets.ErrFetchFailed
	}

	out := make([]pets.Pet, 0, len(resp))
	for _, p := range resp {
		out = append(out, toPet(p, p.UserID))
	}
	return out, nil
}

// Create deja que el backend asigne el id.
func (r *PetRepository) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	var resp petResponse
	if err := r.api.DoJSON(ctx, http.MethodPost, "/api/pets", toPetRequest(p), &resp); err != nil {
		r.log.Warn("creating pet failed", zap.String("name", p.Name), zap.Error(err))
		return pets.Pet{}, pets.ErrCreateFailed
	}
	r.log.Debug("pet created", zap.String("pet_id", resp.ID))
	return toPet(resp, p.UserID), nil
}

func (r *PetRepository) Update(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	var resp petResponse
	path := "/api/pets/" + url.PathEscape(p.ID)
	if err := r.api.DoJSON(ctx, http.MethodPut, path, toPetRequest(p), &resp); err != nil {
		r.log.Warn("updating pet failed", zap.String("pet_id", p.ID), zap.Error(err))
		return pets.Pet{}, pets.ErrUpdateFailed
	}
	return toPet(resp, p.UserID), nil
}

func (r *PetRepository) Delete(ctx context.Context, id string) error {
	if err := r.api.DoJSON(ctx, http.MethodDelete, "/api/pets/"+url.PathEscape(id), nil, nil); err != nil {
		r.log.Warn("deleting pet failed", zap.String("pet_id", id), zap.Error(err))
		return pets.ErrDeleteFailed
	}
	return nil
}

func toPet(p petResponse, userID string) pets.Pet {
	img := ""
	if p.ImageURL != nil {
		img = *p.ImageURL
	}
	return pets.Pet{
		ID:       p.ID,
		Name:     p.Name,
		Species:  p.Species,
		Breed:    p.Breed,
		Age:      p.Age,
		Weight:   p.Weight,
		Gender:   p.Gender,
		Color:    p.Color,
		ImageURL: img,
		UserID:   userID,
	}
}

func toPetRequest(p pets.Pet) petRequest {
	var img *string
	if p.ImageURL != "" {
		img = &p.ImageURL
	}
	return petRequest{
		Name:     p.Name,
		Species:  p.Species,
		Breed:    p.Breed,
		Age:      p.Age,
		Weight:   p.Weight,
		Gender:   p.Gender,
		Color:    p.Color,
		ImageURL: img,
	}
}
