// Package catalog holds the static list of known AI crawlers that appear on
// every receipt. The list is built once at startup and never mutated.
package catalog

import (
	"slices"
	"strings"

	"crawlreceipt/internal/platform/config"
)

// Crawler is one catalogued AI crawler.
type Crawler struct {
	Name    string
	Company string
	// UserAgentPatterns are matched case-insensitively as substrings of a User-Agent.
	UserAgentPatterns []string
}

// Catalog is an ordered, read-only crawler list.
type Catalog struct {
	crawlers []Crawler
}

// New copies crawlers into a catalog so later changes to the slice are not observed.
func New(crawlers []Crawler) *Catalog {
	out := make([]Crawler, len(crawlers))
	for i, c := range crawlers {
		out[i] = Crawler{
			Name:              c.Name,
			Company:           c.Company,
			UserAgentPatterns: slices.Clone(c.UserAgentPatterns),
		}
	}
	return &Catalog{crawlers: out}
}

// FromCalibration builds the catalog from the crawler section of the calibration file.
// A crawler without explicit patterns is matched by its name.
func FromCalibration(entries []config.CrawlerEntry) *Catalog {
	crawlers := make([]Crawler, 0, len(entries))
	for _, e := range entries {
		patterns := e.UserAgents
		if len(patterns) == 0 {
			patterns = []string{e.Name}
		}
		crawlers = append(crawlers, Crawler{Name: e.Name, Company: e.Company, UserAgentPatterns: patterns})
	}
	return New(crawlers)
}

// All returns the crawlers in catalog order. The result is a copy.
func (c *Catalog) All() []Crawler {
	return New(c.crawlers).crawlers
}

// Len returns the number of catalogued crawlers.
func (c *Catalog) Len() int {
	return len(c.crawlers)
}

// Match returns the first crawler whose pattern occurs in userAgent.
func (c *Catalog) Match(userAgent string) (Crawler, bool) {
	ua := strings.ToLower(userAgent)
	if ua == "" {
		return Crawler{}, false
	}
	for _, cr := range c.crawlers {
		for _, p := range cr.UserAgentPatterns {
			if p != "" && strings.Contains(ua, strings.ToLower(p)) {
				return cr, true
			}
		}
	}
	return Crawler{}, false
}
