package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crawlreceipt/internal/catalog"
	"crawlreceipt/internal/estimate"
	"crawlreceipt/internal/platform/config"
)

var defaultPricing = Pricing{CrawlsPerYear: 12, PricePerPage: 0.01}

func testCrawlers() []catalog.Crawler {
	return []catalog.Crawler{
		{Name: "GPTBot", Company: "OpenAI"},
		{Name: "ClaudeBot", Company: "Anthropic"},
		{Name: "Bytespider", Company: "ByteDance"},
	}
}

func TestCompose(t *testing.T) {
	outcome := estimate.Outcome{PageCount: 12_000, Provenance: estimate.ProvenanceMeasured, Basis: estimate.BasisMeasured}

	r := Compose("smallblog.example", outcome, testCrawlers(), defaultPricing)

	assert.Equal(t, "smallblog.example", r.Domain)
	assert.Equal(t, 12_000, r.Pages)
	assert.True(t, r.IsMeasured())
	assert.Equal(t, estimate.BasisMeasured, r.Basis)
	require.Len(t, r.Lines, 3)
	assert.Equal(t, "GPTBot", r.Lines[0].Name)
	assert.Equal(t, "ClaudeBot", r.Lines[1].Name)
	assert.Equal(t, "Anthropic", r.Lines[1].Company)
	assert.Equal(t, "Bytespider", r.Lines[2].Name)
	for _, line := range r.Lines {
		assert.Equal(t, 12_000, line.Pages)
		assert.Equal(t, 12, line.CrawlsPerYear)
		assert.InDelta(t, 1440.0, line.Subtotal, 1e-9)
	}
	assert.InDelta(t, 4320.0, r.Total, 1e-9)
}

func TestComposeTotalsMatchSubtotals(t *testing.T) {
	cal, err := config.DefaultCalibration()
	require.NoError(t, err)
	crawlers := catalog.FromCalibration(cal.Crawlers).All()
	pricing := PricingFromCalibration(cal.Pricing)

	for _, pages := range []int{50, 3500, 4232, 12_000, 1_234_567, 2_000_000, 50_000_000} {
		r := Compose("example.com", estimate.Outcome{PageCount: pages, Provenance: estimate.ProvenanceEstimated}, crawlers, pricing)

		var sum float64
		for _, line := range r.Lines {
			sum += line.Subtotal
		}
		assert.InDelta(t, sum, r.Total, 1e-6, "pages %d", pages)
		assert.Len(t, r.Lines, len(crawlers))
		assert.False(t, r.IsMeasured())
	}
}

func TestComposeEmptyCatalog(t *testing.T) {
	r := Compose("example.com", estimate.Outcome{PageCount: 3500}, nil, defaultPricing)
	assert.NotNil(t, r.Lines)
	assert.Empty(t, r.Lines)
	assert.Zero(t, r.Total)
}

func TestPricingFromCalibration(t *testing.T) {
	p := PricingFromCalibration(config.Pricing{CrawlsPerYear: 12, PricePerPage: 0.01})
	assert.Equal(t, defaultPricing, p)
}
