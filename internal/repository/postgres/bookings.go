package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/shootplan/internal/domain"
)

const bookingColumns = `id, starts_at, ends_at, photographer_ids::text[], status,
	location, customer_ref, project_id, created_at, updated_at`

type BookingRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *BookingRepo) With(db DB) *BookingRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *BookingRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *BookingRepo) Create(ctx context.Context, b domain.Booking) error {
	const op = "postgres.BookingRepo.Create"

	_, err := r.handle().Exec(ctx,
		`INSERT INTO bookings(id, starts_at, ends_at, photographer_ids, status,
			location, customer_ref, project_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4::uuid[], $5, $6, $7, $8, $9, $10)`,
		b.ID, b.Start, b.End, uuidStrings(b.Photographers), b.Status,
		b.Location, b.CustomerRef, b.ProjectID, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// Update overwrites every mutable column. Concurrent edits resolve as last
// write wins.
func (r *BookingRepo) Update(ctx context.Context, b domain.Booking) error {
	const op = "postgres.BookingRepo.Update"

	err := expectOne(r.handle().Exec(ctx,
		`UPDATE bookings
		 SET starts_at = $2, ends_at = $3, photographer_ids = $4::uuid[], status = $5,
			location = $6, customer_ref = $7, project_id = $8, updated_at = $9
		 WHERE id = $1`,
		b.ID, b.Start, b.End, uuidStrings(b.Photographers), b.Status,
		b.Location, b.CustomerRef, b.ProjectID, b.UpdatedAt,
	))
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (r *BookingRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.Get"

	b, err := scanBooking(r.handle().QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &b, nil
}

// ListBetween returns bookings whose interval intersects [from, to), ordered
// by start.
func (r *BookingRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	const op = "postgres.BookingRepo.ListBetween"

	rows, err := r.handle().Query(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings
		 WHERE starts_at < $2 AND ends_at > $1
		 ORDER BY starts_at, id`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func scanBooking(row pgx.Row) (domain.Booking, error) {
	var (
		b   domain.Booking
		ids []string
	)

	err := row.Scan(&b.ID, &b.Start, &b.End, &ids, &b.Status,
		&b.Location, &b.CustomerRef, &b.ProjectID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return domain.Booking{}, err
	}

	b.Photographers, err = parseUUIDs(ids)
	if err != nil {
		return domain.Booking{}, err
	}

	return b, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseUUIDs(ss []string) ([]uuid.UUID, error) {
	if len(ss) == 0 {
		return nil, nil
	}
	out := make([]uuid.UUID, len(ss))
	for i, s := range ss {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}
