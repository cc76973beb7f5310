package providers

import (
	"errors"
	"fmt"
)

// ErrorCategory is the coarse reason an index lookup failed. It doubles as
// the "result" label on index metrics.
type ErrorCategory string

const (
	ErrorTimeout        ErrorCategory = "timeout"         // no answer before the fan-out deadline
	ErrorBadData        ErrorCategory = "bad_data"        // unparseable body, blocks missing or negative
	ErrorProviderOutage ErrorCategory = "provider_outage" // network failure or non-2xx status
	ErrorNotFound       ErrorCategory = "not_found"       // index holds no captures for the domain
	ErrorRateLimited    ErrorCategory = "rate_limited"
	ErrorInternal       ErrorCategory = "internal"
)

// ProviderError is a categorised failure from one index.
type ProviderError struct {
	Category ErrorCategory
	Index    string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("index %s [%s]: %s", e.Index, e.Category, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError builds a ProviderError; err may be nil.
func NewProviderError(category ErrorCategory, index, message string, err error) *ProviderError {
	return &ProviderError{Category: category, Index: index, Message: message, Err: err}
}

// CategoryOf returns the category of the first ProviderError in err's chain.
// ok is false, and the category ErrorInternal, when there is none.
func CategoryOf(err error) (category ErrorCategory, ok bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category, true
	}
	return ErrorInternal, false
}
