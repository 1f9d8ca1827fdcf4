package schedule

import (
	"github.com/google/uuid"
	"github.com/kirinyoku/shootplan/internal/domain"
	"github.com/kirinyoku/shootplan/internal/timeslot"
)

// FindConflicts returns every booking in all that shares at least one
// photographer with target and overlaps it in time. The target itself is
// skipped by id, so the same call validates both new and edited bookings.
// A booking without photographers never conflicts. No status filtering is
// applied; see WithoutStatus.
func FindConflicts(target domain.Booking, all []domain.Booking) []domain.Booking {
	if len(target.Photographers) == 0 {
		return nil
	}

	assigned := make(map[uuid.UUID]struct{}, len(target.Photographers))
	for _, id := range target.Photographers {
		assigned[id] = struct{}{}
	}

	var out []domain.Booking
	for _, b := range all {
		if b.ID == target.ID {
			continue
		}
		if !sharesPhotographer(assigned, b.Photographers) {
			continue
		}
		if timeslot.Overlaps(target.Start, target.End, b.Start, b.End) {
			out = append(out, b)
		}
	}

	return out
}

func sharesPhotographer(assigned map[uuid.UUID]struct{}, ids []uuid.UUID) bool {
	for _, id := range ids {
		if _, ok := assigned[id]; ok {
			return true
		}
	}
	return false
}

// WithoutStatus returns the bookings whose status is not one of statuses.
// Callers use it to decide whether cancelled bookings still occupy time.
func WithoutStatus(all []domain.Booking, statuses ...domain.BookingStatus) []domain.Booking {
	if len(statuses) == 0 {
		return all
	}

	out := make([]domain.Booking, 0, len(all))
	for _, b := range all {
		skip := false
		for _, s := range statuses {
			if b.Status == s {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, b)
		}
	}

	return out
}

// Annotated is a booking together with the ids of the bookings it conflicts
// with at read time.
type Annotated struct {
	domain.Booking
	ConflictsWith []uuid.UUID `json:"conflicts_with"`
}

// Annotate runs FindConflicts for every booking in view against all.
func Annotate(view, all []domain.Booking) []Annotated {
	out := make([]Annotated, 0, len(view))
	for _, b := range view {
		ids := []uuid.UUID{}
		for _, c := range FindConflicts(b, all) {
			ids = append(ids, c.ID)
		}
		out = append(out, Annotated{Booking: b, ConflictsWith: ids})
	}
	return out
}
