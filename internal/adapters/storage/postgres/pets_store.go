package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pethome/internal/domain/pets"
	"pethome/internal/state"
)

type PetStore struct {
	db *sql.DB
	// Los Watch de este proceso se despiertan con las mutaciones hechas a
	// través de este store (todas las escrituras de la app pasan por acá).
	changes *state.Signal
}

func NewPetStore(db *sql.DB) *PetStore {
	return &PetStore{db: db, changes: state.NewSignal()}
}

func (s *PetStore) Upsert(ctx context.Context, p pets.Pet) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, name, species, breed,
			age, weight, gender, color,
			image_url, user_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			species = EXCLUDED.species,
			breed = EXCLUDED.breed,
			age = EXCLUDED.age,
			weight = EXCLUDED.weight,
			gender = EXCLUDED.gender,
			color = EXCLUDED.color,
			image_url = EXCLUDED.image_url
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Breed,
		p.Age,
		p.Weight,
		p.Gender,
		p.Color,
		toNullString(p.ImageURL),
		p.UserID,
	)
	if err != nil {
		return err
	}

	s.changes.Notify()
	return nil
}

func (s *PetStore) DeleteByID(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id); err != nil {
		return err
	}
	s.changes.Notify()
	return nil
}

func (s *PetStore) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT
			id, name, species, breed,
			age, weight, gender, color,
			image_url, user_id
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err == sql.ErrNoRows {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (s *PetStore) ListByUser(ctx context.Context, userID string) ([]pets.Pet, error) {
	return s.list(ctx, `
		SELECT
			id, name, species, breed,
			age, weight, gender, color,
			image_url, user_id
		FROM pets
		WHERE user_id = $1
		ORDER BY name ASC
	`, userID)
}

func (s *PetStore) ListBySpecies(ctx context.Context, species string) ([]pets.Pet, error) {
	return s.list(ctx, `
		SELECT
			id, name, species, breed,
			age, weight, gender, color,
			image_url, user_id
		FROM pets
		WHERE LOWER(species) = LOWER($1)
		ORDER BY name ASC
	`, species)
}

func (s *PetStore) list(ctx context.Context, query string, arg any) ([]pets.Pet, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PetStore) WatchByUser(ctx context.Context, userID string) <-chan []pets.Pet {
	out := make(chan []pets.Pet, 1)
	ticks := s.changes.Subscribe(ctx)

	go func() {
		defer close(out)

		emit := func() {
			list, err := s.ListByUser(ctx, userID)
			if err != nil {
				return
			}
			state.Push(out, list)
		}

		emit()
		for range ticks {
			emit()
		}
	}()

	return out
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(row scanner) (pets.Pet, error) {
	var p pets.Pet
	var img sql.NullString
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Age,
		&p.Weight,
		&p.Gender,
		&p.Color,
		&img,
		&p.UserID,
	); err != nil {
		return pets.Pet{}, err
	}
	p.ImageURL = img.String
	return p, nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
