package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/shootplan/internal/domain"
)

type BookingRepo interface {
	Create(ctx context.Context, b domain.Booking) error
	// Update replaces every mutable field of the stored booking. Concurrent
	// updates of the same booking are last-write-wins.
	Update(ctx context.Context, b domain.Booking) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	// ListBetween returns the bookings overlapping [from, to), ordered by start.
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
}

type PhotographerRepo interface {
	Create(ctx context.Context, p domain.Photographer) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Photographer, error)
	List(ctx context.Context) ([]domain.Photographer, error)
	SetAvailability(ctx context.Context, id uuid.UUID, a domain.Availability) error
}

type LeadRepo interface {
	Create(ctx context.Context, l domain.Lead) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	SetStatus(ctx context.Context, id uuid.UUID, s domain.LeadStatus) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p domain.Project) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	// ListByLead returns the projects of a lead, newest first.
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.Project, error)
	SetStatus(ctx context.Context, id uuid.UUID, s domain.ProjectStatus) error
	SetPayment(ctx context.Context, id uuid.UUID, completed bool, intentID string) error
	AttachBooking(ctx context.Context, id uuid.UUID, bookingID uuid.UUID) error
}

// Tx exposes the repositories bound to one transaction.
type Tx interface {
	Bookings() BookingRepo
	Photographers() PhotographerRepo
	Leads() LeadRepo
	Projects() ProjectRepo
}

// Store is the record store. Repositories obtained directly from the Store
// run outside any transaction.
type Store interface {
	Tx
	RunTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
