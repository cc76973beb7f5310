package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crawlreceipt/internal/estimate/providers/commoncrawl"
	"crawlreceipt/internal/platform/config"
	"crawlreceipt/pkg/domain"
)

func TestIndexProvidersUserAgent(t *testing.T) {
	gotUA := &atomic.Value{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.UserAgent())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pages": 1, "pageSize": 5, "blocks": 2}`))
	}))
	t.Cleanup(srv.Close)

	cfg := config.Server{IndexBaseURL: srv.URL, RobotsUserAgent: "robots-only/1.0"}
	indexes := indexProviders(cfg, []string{"CC-MAIN-2025-13", "CC-MAIN-2025-08"})
	require.Len(t, indexes, 2)
	assert.Equal(t, "CC-MAIN-2025-13", indexes[0].ID())

	blocks, err := indexes[0].BlockCount(context.Background(), domain.Key("example.com"))
	require.NoError(t, err)
	assert.Equal(t, 2, blocks)
	assert.Equal(t, commoncrawl.DefaultUserAgent, gotUA.Load())
}
