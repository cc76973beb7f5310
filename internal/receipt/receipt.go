// Package receipt prices an estimated page count against the crawler catalog.
package receipt

import (
	"crawlreceipt/internal/catalog"
	"crawlreceipt/internal/estimate"
	"crawlreceipt/internal/platform/config"
	"crawlreceipt/pkg/domain"
)

// Pricing is the hypothetical fee schedule applied to every crawler.
type Pricing struct {
	CrawlsPerYear int
	PricePerPage  float64
}

// PricingFromCalibration converts the calibration pricing section.
func PricingFromCalibration(p config.Pricing) Pricing {
	return Pricing{CrawlsPerYear: p.CrawlsPerYear, PricePerPage: p.PricePerPage}
}

// LineItem is one crawler's share of the bill. Subtotal is unrounded.
type LineItem struct {
	Name          string  `json:"name"`
	Company       string  `json:"company"`
	Pages         int     `json:"pages"`
	CrawlsPerYear int     `json:"crawls_per_year"`
	Subtotal      float64 `json:"subtotal"`
}

// Receipt is the priced breakdown for one domain. Amounts are unrounded;
// rounding to cents happens when the receipt is rendered.
type Receipt struct {
	Domain     string              `json:"domain"`
	Pages      int                 `json:"pages"`
	Provenance estimate.Provenance `json:"provenance"`
	Basis      estimate.Basis      `json:"basis"`
	Lines      []LineItem          `json:"lines"`
	Total      float64             `json:"total"`
}

// IsMeasured reports whether the page count came from index data.
func (r Receipt) IsMeasured() bool {
	return r.Provenance == estimate.ProvenanceMeasured
}

// Compose builds one line item per crawler, in catalog order, and totals them.
func Compose(key domain.Key, outcome estimate.Outcome, crawlers []catalog.Crawler, pricing Pricing) Receipt {
	lines := make([]LineItem, 0, len(crawlers))
	var total float64
	for _, c := range crawlers {
		subtotal := float64(outcome.PageCount) * float64(pricing.CrawlsPerYear) * pricing.PricePerPage
		lines = append(lines, LineItem{
			Name:          c.Name,
			Company:       c.Company,
			Pages:         outcome.PageCount,
			CrawlsPerYear: pricing.CrawlsPerYear,
			Subtotal:      subtotal,
		})
		total += subtotal
	}
	return Receipt{
		Domain:     key.String(),
		Pages:      outcome.PageCount,
		Provenance: outcome.Provenance,
		Basis:      outcome.Basis,
		Lines:      lines,
		Total:      total,
	}
}
