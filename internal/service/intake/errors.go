package intake

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNameRequired = errors.New("name is required")
	ErrInvalidDate  = errors.New("preferred date not understood")
	ErrInvalidTime  = errors.New("preferred time not understood")
	ErrRateLimited  = errors.New("rate limited")
)

type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%s, retry in %s", ErrRateLimited, e.RetryAfter)
}

func (e *RateLimitedError) Is(target error) bool {
	return target == ErrRateLimited
}
