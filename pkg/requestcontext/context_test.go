package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessors(t *testing.T) {
	t.Run("empty context", func(t *testing.T) {
		ctx := context.Background()
		assert.Empty(t, ClientIP(ctx))
		assert.Empty(t, UserAgent(ctx))
		assert.Empty(t, Crawler(ctx))
		assert.Empty(t, RequestID(ctx))
		assert.WithinDuration(t, time.Now(), Now(ctx), time.Second)
	})

	t.Run("round trip", func(t *testing.T) {
		at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		ctx := WithClientMetadata(context.Background(), "192.0.2.7", "GPTBot/1.2")
		ctx = WithCrawler(ctx, "GPTBot")
		ctx = WithRequestID(ctx, "req-1")
		ctx = WithTime(ctx, at)

		assert.Equal(t, "192.0.2.7", ClientIP(ctx))
		assert.Equal(t, "GPTBot/1.2", UserAgent(ctx))
		assert.Equal(t, "GPTBot", Crawler(ctx))
		assert.Equal(t, "req-1", RequestID(ctx))
		assert.Equal(t, at, Now(ctx))
	})
}
