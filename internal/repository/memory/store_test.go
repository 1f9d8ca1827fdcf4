package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/shootplan/internal/domain"
	"github.com/kirinyoku/shootplan/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(start time.Time, hours int, photographers ...uuid.UUID) domain.Booking {
	return domain.Booking{
		ID:            uuid.New(),
		Start:         start,
		End:           start.Add(time.Duration(hours) * time.Hour),
		Photographers: photographers,
		Status:        domain.BookingReserved,
	}
}

func TestBookingRepo_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := uuid.New()

	b := booking(time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC), 3, p)
	require.NoError(t, s.Bookings().Create(ctx, b))
	assert.ErrorIs(t, s.Bookings().Create(ctx, b), repository.ErrConflict)

	got, err := s.Bookings().Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Photographers, got.Photographers)

	// callers cannot reach into stored state through returned values
	got.Photographers[0] = uuid.New()
	again, err := s.Bookings().Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, p, again.Photographers[0])

	b.Status = domain.BookingEnRoute
	require.NoError(t, s.Bookings().Update(ctx, b))
	again, err = s.Bookings().Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingEnRoute, again.Status)

	_, err = s.Bookings().Get(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, s.Bookings().Update(ctx, booking(time.Now(), 1)), repository.ErrNotFound)
}

func TestBookingRepo_ListBetween(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	late := booking(day.Add(15*time.Hour), 2)
	early := booking(day.Add(9*time.Hour), 2)
	overnight := booking(day.Add(-2*time.Hour), 4)
	nextDay := booking(day.Add(24*time.Hour), 2)
	for _, b := range []domain.Booking{late, early, overnight, nextDay} {
		require.NoError(t, s.Bookings().Create(ctx, b))
	}

	got, err := s.Bookings().ListBetween(ctx, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, overnight.ID, got[0].ID)
	assert.Equal(t, early.ID, got[1].ID)
	assert.Equal(t, late.ID, got[2].ID)
}

func TestRunTx_CommitAndRollback(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	committed := booking(time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC), 1)
	err := s.RunTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		return tx.Bookings().Create(ctx, committed)
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	discarded := booking(time.Date(2025, 6, 15, 11, 0, 0, 0, time.UTC), 1)
	err = s.RunTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		require.NoError(t, tx.Bookings().Create(ctx, discarded))

		// visible inside the transaction
		_, err := tx.Bookings().Get(ctx, discarded.ID)
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Bookings().Get(ctx, committed.ID)
	assert.NoError(t, err)
	_, err = s.Bookings().Get(ctx, discarded.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRunTx_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewStore().RunTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestPhotographerRepo(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	kim := domain.Photographer{ID: uuid.New(), Name: "Kim", Availability: domain.Available}
	lee := domain.Photographer{ID: uuid.New(), Name: "Lee", Availability: domain.Available}
	require.NoError(t, s.Photographers().Create(ctx, lee))
	require.NoError(t, s.Photographers().Create(ctx, kim))

	list, err := s.Photographers().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Kim", list[0].Name)

	require.NoError(t, s.Photographers().SetAvailability(ctx, kim.ID, domain.OnLeave))
	got, err := s.Photographers().Get(ctx, kim.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OnLeave, got.Availability)

	assert.ErrorIs(t, s.Photographers().SetAvailability(ctx, uuid.New(), domain.Busy), repository.ErrNotFound)
}

func TestProjectRepo(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	lead := domain.Lead{ID: uuid.New(), Name: "Park", Status: domain.LeadInquiry, CreatedAt: time.Now()}
	require.NoError(t, s.Leads().Create(ctx, lead))

	orphan := domain.Project{ID: uuid.New(), LeadID: uuid.New(), Status: domain.ProjectScheduled}
	assert.ErrorIs(t, s.Projects().Create(ctx, orphan), repository.ErrNotFound)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	older := domain.Project{ID: uuid.New(), LeadID: lead.ID, Status: domain.ProjectScheduled, CreatedAt: base}
	newer := domain.Project{ID: uuid.New(), LeadID: lead.ID, Status: domain.ProjectScheduled, CreatedAt: base.Add(time.Hour)}
	require.NoError(t, s.Projects().Create(ctx, older))
	require.NoError(t, s.Projects().Create(ctx, newer))

	list, err := s.Projects().ListByLead(ctx, lead.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)

	bookingID := uuid.New()
	require.NoError(t, s.Projects().AttachBooking(ctx, newer.ID, bookingID))
	require.NoError(t, s.Projects().SetPayment(ctx, newer.ID, true, "pi_123"))
	require.NoError(t, s.Projects().SetStatus(ctx, newer.ID, domain.ProjectEditing))

	got, err := s.Projects().Get(ctx, newer.ID)
	require.NoError(t, err)
	require.NotNil(t, got.BookingID)
	assert.Equal(t, bookingID, *got.BookingID)
	assert.True(t, got.PaymentCompleted)
	assert.Equal(t, "pi_123", got.PaymentIntentID)
	assert.Equal(t, domain.ProjectEditing, got.Status)

	require.NoError(t, s.Leads().SetStatus(ctx, lead.ID, domain.LeadContracted))
	l, err := s.Leads().Get(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadContracted, l.Status)
}
