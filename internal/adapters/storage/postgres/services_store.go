package postgres

import (
	"context"
	"database/sql"

	"pethome/internal/domain/services"
	"pethome/internal/state"
)

type ServicesStore struct {
	db             *sql.DB
	catalogChanges *state.Signal
	apptChanges    *state.Signal
}

func NewServicesStore(db *sql.DB) *ServicesStore {
	return &ServicesStore{
		db:             db,
		catalogChanges: state.NewSignal(),
		apptChanges:    state.NewSignal(),
	}
}

// --- Catálogo ---

func (s *ServicesStore) UpsertService(ctx context.Context, svc services.VeterinaryService) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO veterinary_services (
			id, name, description, short_description,
			price, duration, category, image_url, is_available
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			short_description = EXCLUDED.short_description,
			price = EXCLUDED.price,
			duration = EXCLUDED.duration,
			category = EXCLUDED.category,
			image_url = EXCLUDED.image_url,
			is_available = EXCLUDED.is_available
	`,
		svc.ID,
		svc.Name,
		svc.Description,
		svc.ShortDescription,
		svc.Price,
		svc.Duration,
		svc.Category,
		toNullString(svc.ImageURL),
		svc.IsAvailable,
	)
	if err != nil {
		return err
	}

	s.catalogChanges.Notify()
	return nil
}

func (s *ServicesStore) GetService(ctx context.Context, id string) (services.VeterinaryService, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT
			id, name, description, short_description,
			price, duration, category, image_url, is_available
		FROM veterinary_services
		WHERE id = $1
	`, id)

	svc, err := scanService(row)
	if err == sql.ErrNoRows {
		return services.VeterinaryService{}, services.ErrServiceNotFound
	}
	return svc, err
}

func (s *ServicesStore) ListServices(ctx context.Context) ([]services.VeterinaryService, error) {
	return s.listServices(ctx, `
		SELECT
			id, name, description, short_description,
			price, duration, category, image_url, is_available
		FROM veterinary_services
		WHERE is_available
		ORDER BY category ASC, id ASC
	`)
}

func (s *ServicesStore) ListServicesByCategory(ctx context.Context, category string) ([]services.VeterinaryService, error) {
	return s.listServices(ctx, `
		SELECT
			id, name, description, short_description,
			price, duration, category, image_url, is_available
		FROM veterinary_services
		WHERE is_available AND category = $1
		ORDER BY id ASC
	`, category)
}

func (s *ServicesStore) listServices(ctx context.Context, query string, args ...any) ([]services.VeterinaryService, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]services.VeterinaryService, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, svc)
	}
	return out, rows.Err()
}

func (s *ServicesStore) WatchServices(ctx context.Context) <-chan []services.VeterinaryService {
	return s.watchCatalog(ctx, func(c context.Context) ([]services.VeterinaryService, error) {
		return s.ListServices(c)
	})
}

func (s *ServicesStore) WatchServicesByCategory(ctx context.Context, category string) <-chan []services.VeterinaryService {
	return s.watchCatalog(ctx, func(c context.Context) ([]services.VeterinaryService, error) {
		return s.ListServicesByCategory(c, category)
	})
}

func (s *ServicesStore) watchCatalog(ctx context.Context, query func(context.Context) ([]services.VeterinaryService, error)) <-chan []services.VeterinaryService {
	out := make(chan []services.VeterinaryService, 1)
	ticks := s.catalogChanges.Subscribe(ctx)

	go func() {
		defer close(out)

		emit := func() {
			list, err := query(ctx)
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

// --- Citas ---

func (s *ServicesStore) InsertAppointment(ctx context.Context, a services.Appointment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, service_id, pet_id, user_id,
			date, time, status, notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		a.ID,
		a.ServiceID,
		a.PetID,
		a.UserID,
		a.Date,
		a.Time,
		string(a.Status),
		toNullString(a.Notes),
		a.CreatedAt,
	)
	if err != nil {
		return err
	}

	s.apptChanges.Notify()
	return nil
}

func (s *ServicesStore) UpdateAppointment(ctx context.Context, a services.Appointment) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE appointments
		SET
			service_id = $2,
			pet_id = $3,
			date = $4,
			time = $5,
			status = $6,
			notes = $7
		WHERE id = $1
	`,
		a.ID,
		a.ServiceID,
		a.PetID,
		a.Date,
		a.Time,
		string(a.Status),
		toNullString(a.Notes),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return services.ErrAppointmentNotFound
	}

	s.apptChanges.Notify()
	return nil
}

func (s *ServicesStore) GetAppointment(ctx context.Context, id string) (services.Appointment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT
			id, service_id, pet_id, user_id,
			date, time, status, notes, created_at
		FROM appointments
		WHERE id = $1
	`, id)

	a, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return services.Appointment{}, services.ErrAppointmentNotFound
	}
	return a, err
}

func (s *ServicesStore) ListAppointmentsByUser(ctx context.Context, userID string) ([]services.Appointment, error) {
	return s.listAppointments(ctx, `
		SELECT
			id, service_id, pet_id, user_id,
			date, time, status, notes, created_at
		FROM appointments
		WHERE user_id = $1
		ORDER BY date DESC, id ASC
	`, userID)
}

func (s *ServicesStore) ListAppointmentsByPet(ctx context.Context, petID string) ([]services.Appointment, error) {
	return s.listAppointments(ctx, `
		SELECT
			id, service_id, pet_id, user_id,
			date, time, status, notes, created_at
		FROM appointments
		WHERE pet_id = $1
		ORDER BY date DESC, id ASC
	`, petID)
}

func (s *ServicesStore) listAppointments(ctx context.Context, query string, arg any) ([]services.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]services.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *ServicesStore) WatchAppointmentsByUser(ctx context.Context, userID string) <-chan []services.Appointment {
	return s.watchAppointments(ctx, func(c context.Context) ([]services.Appointment, error) {
		return s.ListAppointmentsByUser(c, userID)
	})
}

func (s *ServicesStore) WatchAppointmentsByPet(ctx context.Context, petID string) <-chan []services.Appointment {
	return s.watchAppointments(ctx, func(c context.Context) ([]services.Appointment, error) {
		return s.ListAppointmentsByPet(c, petID)
	})
}

func (s *ServicesStore) watchAppointments(ctx context.Context, query func(context.Context) ([]services.Appointment, error)) <-chan []services.Appointment {
	out := make(chan []services.Appointment, 1)
	ticks := s.apptChanges.Subscribe(ctx)

	go func() {
		defer close(out)

		emit := func() {
			list, err := query(ctx)
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

func scanService(row scanner) (services.VeterinaryService, error) {
	var svc services.VeterinaryService
	var img sql.NullString
	if err := row.Scan(
		&svc.ID,
		&svc.Name,
		&svc.Description,
		&svc.ShortDescription,
		&svc.Price,
		&svc.Duration,
		&svc.Category,
		&img,
		&svc.IsAvailable,
	); err != nil {
		return services.VeterinaryService{}, err
	}
	svc.ImageURL = img.String
	return svc, nil
}

func scanAppointment(row scanner) (services.Appointment, error) {
	var a services.Appointment
	var notes sql.NullString
	var status string
	if err := row.Scan(
		&a.ID,
		&a.ServiceID,
		&a.PetID,
		&a.UserID,
		&a.Date,
		&a.Time,
		&status,
		&notes,
		&a.CreatedAt,
	); err != nil {
		return services.Appointment{}, err
	}
	a.Status = services.Status(status)
	a.Notes = notes.String
	return a, nil
}
