package timeslot

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid time")
	ErrUndecided   = errors.New("value not decided yet")
)

// ParseError carries the rejected input. It unwraps to ErrInvalidDate or
// ErrInvalidTime.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
