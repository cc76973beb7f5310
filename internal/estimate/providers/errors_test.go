package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderError(t *testing.T) {
	t.Run("message includes index and category", func(t *testing.T) {
		err := NewProviderError(ErrorBadData, "CC-MAIN-2025-13", "missing blocks field", nil)
		assert.Equal(t, "index CC-MAIN-2025-13 [bad_data]: missing blocks field", err.Error())
	})

	t.Run("unwraps underlying cause", func(t *testing.T) {
		err := NewProviderError(ErrorTimeout, "CC-MAIN-2025-13", "request cancelled", context.DeadlineExceeded)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
		assert.Contains(t, err.Error(), "context deadline exceeded")
	})
}

func TestCategoryOf(t *testing.T) {
	got, ok := CategoryOf(fmt.Errorf("query: %w", NewProviderError(ErrorRateLimited, "idx", "429", nil)))
	assert.True(t, ok)
	assert.Equal(t, ErrorRateLimited, got)

	got, ok = CategoryOf(errors.New("boom"))
	assert.False(t, ok)
	assert.Equal(t, ErrorInternal, got)
}
