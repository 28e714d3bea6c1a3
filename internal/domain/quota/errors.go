package quota

import (
	stderrors "errors"
	"fmt"
	"time"
)

// Window identifies which quota window rejected a request.
type Window string

const (
	WindowDaily  Window = "daily"
	WindowHourly Window = "hourly"
)

// LimitExceededError reports that an identity's request budget for one
// window is exhausted. ResetAt tells the caller when to retry: the next UTC
// midnight for the daily window, one wall-clock hour from the check for the
// hourly window.
type LimitExceededError struct {
	Window  Window
	Limit   int
	ResetAt time.Time
}

// Error implements the error interface
func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("%s limit of %d exceeded, resets at %s", e.Window, e.Limit, e.ResetAt.Format(time.RFC3339))
}

// AsLimitExceeded extracts a LimitExceededError from an error chain.
func AsLimitExceeded(err error) (*LimitExceededError, bool) {
	var limitErr *LimitExceededError
	if stderrors.As(err, &limitErr) {
		return limitErr, true
	}
	return nil, false
}

// IsLimitExceeded checks whether the error chain contains a quota rejection.
func IsLimitExceeded(err error) bool {
	_, ok := AsLimitExceeded(err)
	return ok
}
