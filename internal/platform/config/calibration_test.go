package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCalibration(t *testing.T) {
	cal, err := DefaultCalibration()
	require.NoError(t, err)

	assert.Equal(t, 12, cal.Pricing.CrawlsPerYear)
	assert.InDelta(t, 0.01, cal.Pricing.PricePerPage, 1e-12)
	assert.Equal(t, 50, cal.Pages.Min)
	assert.GreaterOrEqual(t, cal.Pages.Max, 2_000_000, "max must admit the largest floor")
	assert.Len(t, cal.Index.IDs, 4)
	assert.Equal(t, 8*time.Second, cal.Index.Timeout)
	assert.Equal(t, 2_000_000, cal.Floors["x.com"])
	assert.Len(t, cal.Crawlers, 15)
	assert.Equal(t, "GPTBot", cal.Crawlers[0].Name)
	assert.Equal(t, []string{"ClaudeBot", "Claude-Web"}, cal.Crawlers[3].UserAgents)
}

func TestParseCalibration(t *testing.T) {
	valid := `
pricing: {crawls_per_year: 12, price_per_page: 0.01}
pages: {min: 50, max: 1000}
index:
  ids: [" CC-MAIN-2025-13 ", "CC-MAIN-2025-13", "", "CC-MAIN-2024-51"]
  block_multiplier: 10
  timeout: 250ms
floors:
  "HTTPS://Example.COM/": 500
crawlers:
  - {name: GPTBot, company: OpenAI, user_agents: [GPTBot, GPTBot]}
`

	t.Run("normalizes ids floors and patterns", func(t *testing.T) {
		cal, err := ParseCalibration([]byte(valid))
		require.NoError(t, err)
		assert.Equal(t, []string{"CC-MAIN-2025-13", "CC-MAIN-2024-51"}, cal.Index.IDs)
		assert.Equal(t, map[string]int{"example.com": 500}, cal.Floors)
		assert.Equal(t, []string{"GPTBot"}, cal.Crawlers[0].UserAgents)
		assert.Equal(t, 250*time.Millisecond, cal.Index.Timeout)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := ParseCalibration([]byte("pricing: ["))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse calibration")
	})

	t.Run("collects every invariant violation", func(t *testing.T) {
		_, err := ParseCalibration([]byte(`
pricing: {crawls_per_year: 0, price_per_page: -1}
pages: {min: 100, max: 10}
index: {ids: [], block_multiplier: 0, timeout: 0s}
floors: {x.com: 0}
`))
		require.Error(t, err)
		for _, msg := range []string{
			"crawls_per_year", "price_per_page", "pages.max", "index.ids",
			"block_multiplier", "index.timeout", "floors.x.com", "crawlers must list",
		} {
			assert.Contains(t, err.Error(), msg)
		}
	})
}

func TestCalibrationFloorAboveMax(t *testing.T) {
	_, err := ParseCalibration([]byte(`
pricing: {crawls_per_year: 12, price_per_page: 0.01}
pages: {min: 50, max: 1000}
index: {ids: [CC-MAIN-2025-13], block_multiplier: 10, timeout: 1s}
floors: {big.example: 1001, ok.example: 1000}
crawlers:
  - {name: GPTBot, company: OpenAI, user_agents: [GPTBot]}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floors.big.example 1001 exceeds pages.max 1000")
	assert.NotContains(t, err.Error(), "ok.example")
}

func TestLoadCalibration(t *testing.T) {
	t.Run("empty path uses compiled default", func(t *testing.T) {
		cal, err := LoadCalibration("")
		require.NoError(t, err)
		assert.Len(t, cal.Crawlers, 15)
	})

	t.Run("reads override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "calibration.yaml")
		doc := `
pricing: {crawls_per_year: 6, price_per_page: 0.02}
pages: {min: 10, max: 100}
index: {ids: [CC-MAIN-2024-51], block_multiplier: 5, timeout: 1s}
crawlers: [{name: GPTBot, company: OpenAI}]
`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		cal, err := LoadCalibration(path)
		require.NoError(t, err)
		assert.Equal(t, 6, cal.Pricing.CrawlsPerYear)
		assert.Empty(t, cal.Floors)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadCalibration(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CRAWLRECEIPT_ADDR", "")
		t.Setenv("CRAWLRECEIPT_INDEX_BASE_URL", "")
		cfg := FromEnv()
		assert.Equal(t, DefaultAddr, cfg.Addr)
		assert.Equal(t, DefaultIndexBaseURL, cfg.IndexBaseURL)
		assert.Equal(t, DefaultPublicURL, cfg.PublicURL)
	})

	t.Run("overrides trim trailing slashes", func(t *testing.T) {
		t.Setenv("CRAWLRECEIPT_ADDR", ":9090")
		t.Setenv("CRAWLRECEIPT_INDEX_BASE_URL", "http://localhost:1234/")
		t.Setenv("CRAWLRECEIPT_PUBLIC_URL", "https://receipts.example/")
		cfg := FromEnv()
		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, "http://localhost:1234", cfg.IndexBaseURL)
		assert.Equal(t, "https://receipts.example", cfg.PublicURL)
	})
}
