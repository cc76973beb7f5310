package providers

//go:generate mockgen -source=provider.go -destination=mocks/mocks.go -package=mocks Provider

import (
	"context"

	"crawlreceipt/pkg/domain"
)

// Provider is one crawl-index snapshot the estimator can ask for coverage of a domain.
type Provider interface {
	// ID returns the index identifier, e.g. "CC-MAIN-2025-13".
	ID() string

	// BlockCount returns the number of index blocks covering *.domain.
	// Failures are returned as *ProviderError; callers treat them as zero signal.
	BlockCount(ctx context.Context, key domain.Key) (int, error)
}
