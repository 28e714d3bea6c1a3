package restoration

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// FailureCategory classifies upstream failures so callers can map them onto
// client-facing status codes without parsing error strings.
type FailureCategory string

const (
	// FailureRateLimited marks upstream throttling or exhausted upstream quota.
	FailureRateLimited FailureCategory = "rate_limited"
	// FailureInvalidInput marks images the model refused to process.
	FailureInvalidInput FailureCategory = "invalid_input"
	// FailureUnavailable marks transient upstream faults.
	FailureUnavailable FailureCategory = "unavailable"
)

// ProviderError reports a classified upstream rejection.
type ProviderError struct {
	Provider string
	Category FailureCategory
	Status   int
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s returned status %d (%s)", e.Provider, e.Status, e.Category)
}

// AsProviderError extracts a ProviderError from an error chain.
func AsProviderError(err error) (*ProviderError, bool) {
	var provErr *ProviderError
	if stderrors.As(err, &provErr) {
		return provErr, true
	}
	return nil, false
}

// classifyStatus buckets an upstream status code. Auth failures (401/403)
// land in unavailable: they mean our key is bad, not the caller's image.
func classifyStatus(status int) FailureCategory {
	switch status {
	case http.StatusTooManyRequests, http.StatusPaymentRequired:
		return FailureRateLimited
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge,
		http.StatusUnsupportedMediaType, http.StatusUnprocessableEntity:
		return FailureInvalidInput
	default:
		return FailureUnavailable
	}
}
