package intake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kirinyoku/shootplan/internal/domain"
	"github.com/kirinyoku/shootplan/internal/repository/memory"
	"github.com/kirinyoku/shootplan/internal/timeslot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*Service, *memory.Store, *time.Location) {
	t.Helper()

	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	store := memory.NewStore()
	return New(store, nil, nil, nil, Config{Location: seoul, SessionLength: 3 * time.Hour}), store, seoul
}

func TestNormalize(t *testing.T) {
	svc, _, _ := newService(t)

	p, err := svc.Normalize("2025년 6월 15일", "오후 2시반")
	require.NoError(t, err)
	assert.True(t, p.Decided())
	assert.Equal(t, "2025-06-15", p.Date.String())
	assert.Equal(t, "14:30", p.Time.String())

	p, err = svc.Normalize("2025-06-15", "미정")
	require.NoError(t, err)
	assert.False(t, p.Decided())
	assert.True(t, p.Time.IsUndecided())

	_, err = svc.Normalize("2025-02-30", "")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.ErrorIs(t, err, timeslot.ErrInvalidDate)

	_, err = svc.Normalize("", "25:00")
	assert.ErrorIs(t, err, ErrInvalidTime)

	var pe *timeslot.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "25:00", pe.Input)
}

func TestSubmit_DecidedCreatesBooking(t *testing.T) {
	ctx := context.Background()
	svc, store, seoul := newService(t)

	rec, err := svc.Submit(ctx, Inquiry{
		Name:          " Park ",
		Contact:       "park@example.com",
		PreferredDate: "2025.06.15 (일)",
		PreferredTime: "오전 10시",
		Location:      "Seoul Forest",
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "Park", rec.Lead.Name)
	require.NotNil(t, rec.Booking)
	assert.Equal(t, time.Date(2025, 6, 15, 10, 0, 0, 0, seoul), rec.Booking.Start)
	assert.Equal(t, time.Date(2025, 6, 15, 13, 0, 0, 0, seoul), rec.Booking.End)
	assert.Equal(t, domain.BookingReserved, rec.Booking.Status)
	assert.Empty(t, rec.Booking.Photographers)

	project, err := store.Projects().Get(ctx, rec.Project.ID)
	require.NoError(t, err)
	require.NotNil(t, project.BookingID)
	assert.Equal(t, rec.Booking.ID, *project.BookingID)

	b, err := store.Bookings().Get(ctx, rec.Booking.ID)
	require.NoError(t, err)
	require.NotNil(t, b.ProjectID)
	assert.Equal(t, rec.Project.ID, *b.ProjectID)
}

func TestSubmit_ZonedTimestampsUseStudioClock(t *testing.T) {
	ctx := context.Background()
	svc, _, seoul := newService(t)

	for _, in := range []string{"2025-06-15T05:00:00Z", "2025-06-15T14:00:00+09:00"} {
		t.Run(in, func(t *testing.T) {
			p, err := svc.Normalize(in, in)
			require.NoError(t, err)
			assert.Equal(t, "2025-06-15", p.Date.String())
			assert.Equal(t, "14:00", p.Time.String())

			rec, err := svc.Submit(ctx, Inquiry{Name: "Jung", PreferredDate: in, PreferredTime: in}, "")
			require.NoError(t, err)
			require.NotNil(t, rec.Booking)
			assert.True(t, rec.Booking.Start.Equal(time.Date(2025, 6, 15, 14, 0, 0, 0, seoul)))
		})
	}
}

func TestSubmit_UndecidedSkipsBooking(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t)

	rec, err := svc.Submit(ctx, Inquiry{Name: "Lee", PreferredDate: "2025-06-15", PreferredTime: "시간 미정"}, "")
	require.NoError(t, err)
	assert.Nil(t, rec.Booking)
	assert.True(t, rec.Preferred.Time.IsUndecided())

	project, err := store.Projects().Get(ctx, rec.Project.ID)
	require.NoError(t, err)
	assert.Nil(t, project.BookingID)

	_, err = store.Leads().Get(ctx, rec.Lead.ID)
	assert.NoError(t, err)
}

func TestSubmit_Rejects(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t)

	_, err := svc.Submit(ctx, Inquiry{Name: ""}, "")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Submit(ctx, Inquiry{Name: "Choi", PreferredDate: "next friday"}, "")
	assert.ErrorIs(t, err, ErrInvalidDate)

	list, err := store.Bookings().ListBetween(ctx, time.Time{}, time.Now().AddDate(10, 0, 0))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRateLimitedError(t *testing.T) {
	err := error(&RateLimitedError{RetryAfter: 30 * time.Second})
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Contains(t, err.Error(), "30s")
}
