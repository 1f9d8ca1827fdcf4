package schedule

import (
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/shootplan/internal/domain"
	"github.com/kirinyoku/shootplan/internal/timeslot"
)

type Availability struct {
	BookedCount int  `json:"booked_count"`
	IsFree      bool `json:"is_free"`
}

// AvailabilityForDate counts, for every photographer in pool flagged
// available, the bookings assigned to them that overlap the local calendar day
// of date (midnight to midnight in date's location). Photographers flagged
// busy or on leave are left out of the result entirely, so they are never
// reported free. Looking up an id that is not in the result means "not in the
// pool".
func AvailabilityForDate(
	date time.Time,
	pool []domain.Photographer,
	all []domain.Booking,
) map[uuid.UUID]Availability {
	dayStart, dayEnd := timeslot.DayBounds(date)

	out := make(map[uuid.UUID]Availability, len(pool))
	for _, p := range pool {
		if p.Availability != domain.Available {
			continue
		}
		out[p.ID] = Availability{IsFree: true}
	}

	for _, b := range all {
		if !timeslot.Overlaps(dayStart, dayEnd, b.Start, b.End) {
			continue
		}
		// a booking listing the same photographer twice still counts once
		seen := make(map[uuid.UUID]struct{}, len(b.Photographers))
		for _, id := range b.Photographers {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}

			a, ok := out[id]
			if !ok {
				continue
			}
			a.BookedCount++
			a.IsFree = false
			out[id] = a
		}
	}

	return out
}
