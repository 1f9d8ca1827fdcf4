package schedule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kirinyoku/shootplan/internal/domain"
)

var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrBookingConflict      = errors.New("booking already exists")
	ErrPhotographerNotFound = errors.New("photographer not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrInvalidInterval      = errors.New("booking start must precede end")
	ErrInvalidStatus        = errors.New("unknown booking status")
	ErrFinalStatus          = errors.New("booking status is final")
	ErrDoubleBooking        = errors.New("photographer double-booked")
)

// DoubleBookingError lists the stored bookings that would overlap a change
// for at least one shared photographer.
type DoubleBookingError struct {
	Conflicts []domain.Booking
}

func (e *DoubleBookingError) Error() string {
	ids := make([]string, 0, len(e.Conflicts))
	for _, b := range e.Conflicts {
		ids = append(ids, b.ID.String())
	}
	return fmt.Sprintf("%s: conflicts with %s", ErrDoubleBooking, strings.Join(ids, ", "))
}

func (e *DoubleBookingError) Is(target error) bool {
	return target == ErrDoubleBooking
}
