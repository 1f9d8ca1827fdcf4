package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/shootplan/internal/domain"
)

type PhotographerRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *PhotographerRepo) With(db DB) *PhotographerRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *PhotographerRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *PhotographerRepo) Create(ctx context.Context, p domain.Photographer) error {
	const op = "postgres.PhotographerRepo.Create"

	_, err := r.handle().Exec(ctx,
		`INSERT INTO photographers(id, name, availability) VALUES ($1, $2, $3)`,
		p.ID, p.Name, p.Availability,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

func (r *PhotographerRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Photographer, error) {
	const op = "postgres.PhotographerRepo.Get"

	var p domain.Photographer
	err := r.handle().QueryRow(ctx,
		`SELECT id, name, availability FROM photographers WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Availability)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &p, nil
}

func (r *PhotographerRepo) List(ctx context.Context) ([]domain.Photographer, error) {
	const op = "postgres.PhotographerRepo.List"

	rows, err := r.handle().Query(ctx,
		`SELECT id, name, availability FROM photographers ORDER BY name, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Photographer, error) {
		var p domain.Photographer
		err := row.Scan(&p.ID, &p.Name, &p.Availability)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (r *PhotographerRepo) SetAvailability(ctx context.Context, id uuid.UUID, a domain.Availability) error {
	const op = "postgres.PhotographerRepo.SetAvailability"

	err := expectOne(r.handle().Exec(ctx,
		`UPDATE photographers SET availability = $2 WHERE id = $1`, id, a,
	))
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

type LeadRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *LeadRepo) With(db DB) *LeadRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *LeadRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *LeadRepo) Create(ctx context.Context, l domain.Lead) error {
	const op = "postgres.LeadRepo.Create"

	_, err := r.handle().Exec(ctx,
		`INSERT INTO leads(id, name, contact, status, created_at) VALUES ($1, $2, $3, $4, $5)`,
		l.ID, l.Name, l.Contact, l.Status, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

func (r *LeadRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	const op = "postgres.LeadRepo.Get"

	var l domain.Lead
	err := r.handle().QueryRow(ctx,
		`SELECT id, name, contact, status, created_at FROM leads WHERE id = $1`, id,
	).Scan(&l.ID, &l.Name, &l.Contact, &l.Status, &l.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &l, nil
}

func (r *LeadRepo) SetStatus(ctx context.Context, id uuid.UUID, s domain.LeadStatus) error {
	const op = "postgres.LeadRepo.SetStatus"

	err := expectOne(r.handle().Exec(ctx,
		`UPDATE leads SET status = $2 WHERE id = $1`, id, s,
	))
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

type ProjectRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *ProjectRepo) With(db DB) *ProjectRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ProjectRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const projectColumns = `id, lead_id, status, booking_id, payment_completed, payment_intent_id, created_at`

func scanProject(row pgx.Row) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.LeadID, &p.Status, &p.BookingID,
		&p.PaymentCompleted, &p.PaymentIntentID, &p.CreatedAt)
	return p, err
}

func (r *ProjectRepo) Create(ctx context.Context, p domain.Project) error {
	const op = "postgres.ProjectRepo.Create"

	_, err := r.handle().Exec(ctx,
		`INSERT INTO projects(`+projectColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.LeadID, p.Status, p.BookingID, p.PaymentCompleted, p.PaymentIntentID, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

func (r *ProjectRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	const op = "postgres.ProjectRepo.Get"

	p, err := scanProject(r.handle().QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &p, nil
}

func (r *ProjectRepo) ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.Project, error) {
	const op = "postgres.ProjectRepo.ListByLead"

	rows, err := r.handle().Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE lead_id = $1 ORDER BY created_at DESC`,
		leadID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Project, error) {
		return scanProject(row)
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (r *ProjectRepo) SetStatus(ctx context.Context, id uuid.UUID, s domain.ProjectStatus) error {
	const op = "postgres.ProjectRepo.SetStatus"

	err := expectOne(r.handle().Exec(ctx,
		`UPDATE projects SET status = $2 WHERE id = $1`, id, s,
	))
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// SetPayment records the payment flag. An empty intentID keeps the stored
// one.
func (r *ProjectRepo) SetPayment(ctx context.Context, id uuid.UUID, completed bool, intentID string) error {
	const op = "postgres.ProjectRepo.SetPayment"

	err := expectOne(r.handle().Exec(ctx,
		`UPDATE projects
		 SET payment_completed = $2,
			payment_intent_id = COALESCE(NULLIF($3, ''), payment_intent_id)
		 WHERE id = $1`,
		id, completed, intentID,
	))
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (r *ProjectRepo) AttachBooking(ctx context.Context, id uuid.UUID, bookingID uuid.UUID) error {
	const op = "postgres.ProjectRepo.AttachBooking"

	err := expectOne(r.handle().Exec(ctx,
		`UPDATE projects SET booking_id = $2 WHERE id = $1`, id, bookingID,
	))
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}
