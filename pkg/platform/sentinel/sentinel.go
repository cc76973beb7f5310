package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Fetchers and clients return these
// (wrapped) so callers can translate them into domain errors.
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	// ErrUnavailable: a remote host could not be reached or did not answer.
	ErrUnavailable = errors.New("unavailable")
)
