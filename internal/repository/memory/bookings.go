package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/shootplan/internal/domain"
	"github.com/kirinyoku/shootplan/internal/repository"
	"github.com/kirinyoku/shootplan/internal/timeslot"
)

type BookingRepo struct {
	v *view
}

func (r *BookingRepo) Create(ctx context.Context, b domain.Booking) error {
	const op = "memory.BookingRepo.Create"

	return r.v.write(func(d *dataset) error {
		if _, ok := d.bookings[b.ID]; ok {
			return fmt.Errorf("%s:%w", op, repository.ErrConflict)
		}
		d.bookings[b.ID] = b.Clone()
		return nil
	})
}

func (r *BookingRepo) Update(ctx context.Context, b domain.Booking) error {
	const op = "memory.BookingRepo.Update"

	return r.v.write(func(d *dataset) error {
		cur, ok := d.bookings[b.ID]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		next := b.Clone()
		next.CreatedAt = cur.CreatedAt
		d.bookings[b.ID] = next
		return nil
	})
}

func (r *BookingRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const op = "memory.BookingRepo.Get"

	var out domain.Booking
	err := r.v.read(func(d *dataset) error {
		b, ok := d.bookings[id]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		out = b.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *BookingRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	_ = r.v.read(func(d *dataset) error {
		for _, b := range d.bookings {
			if timeslot.Overlaps(from, to, b.Start, b.End) {
				out = append(out, b.Clone())
			}
		}
		return nil
	})

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	return out, nil
}
