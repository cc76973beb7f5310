// Package contract holds reusable checks every index provider must pass.
package contract

import (
	"context"
	"testing"

	"crawlreceipt/internal/estimate/providers"
	"crawlreceipt/pkg/domain"
)

// Case is one provider behaviour to verify.
type Case struct {
	Name   string
	Domain domain.Key
	// Setup runs before the lookup, e.g. to program a fake upstream.
	Setup      func(t *testing.T)
	WantBlocks int
	// WantCategory is empty when the lookup must succeed.
	WantCategory providers.ErrorCategory
}

// Suite is a collection of contract cases for one provider.
type Suite struct {
	ProviderID string
	Provider   providers.Provider
	Cases      []Case
}

// Run executes all cases. Besides the per-case expectations it enforces the
// provider-wide rules: the ID is stable, counts are never negative, and a
// failure always carries a normalized category and a zero count.
func (s *Suite) Run(t *testing.T) {
	t.Helper()
	if got := s.Provider.ID(); got != s.ProviderID {
		t.Fatalf("expected provider ID %s, got %s", s.ProviderID, got)
	}

	for _, tc := range s.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			if tc.Setup != nil {
				tc.Setup(t)
			}

			blocks, err := s.Provider.BlockCount(context.Background(), tc.Domain)

			if blocks < 0 {
				t.Fatalf("block count %d is negative", blocks)
			}
			if tc.WantCategory == "" {
				if err != nil {
					t.Fatalf("provider lookup failed: %v", err)
				}
				if blocks != tc.WantBlocks {
					t.Errorf("expected %d blocks, got %d", tc.WantBlocks, blocks)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected %s failure, got %d blocks", tc.WantCategory, blocks)
			}
			if blocks != 0 {
				t.Errorf("failed lookup returned %d blocks", blocks)
			}
			got, ok := providers.CategoryOf(err)
			if !ok {
				t.Errorf("failure is not a ProviderError: %v", err)
			}
			if got != tc.WantCategory {
				t.Errorf("expected category %s, got %s (%v)", tc.WantCategory, got, err)
			}
		})
	}
}
