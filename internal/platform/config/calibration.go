package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"crawlreceipt/pkg/domain"
	strutil "crawlreceipt/pkg/platform/strings"
)

//go:embed calibration.yaml
var defaultCalibration []byte

// Calibration holds the estimator and pricing constants. It is loaded once at
// startup and treated as immutable afterwards.
type Calibration struct {
	Pricing  Pricing        `yaml:"pricing"`
	Pages    PageBounds     `yaml:"pages"`
	Index    IndexSettings  `yaml:"index"`
	Floors   map[string]int `yaml:"floors"`
	Crawlers []CrawlerEntry `yaml:"crawlers"`
}

// Pricing is the hypothetical fee schedule applied to every catalogued crawler.
type Pricing struct {
	CrawlsPerYear int     `yaml:"crawls_per_year"`
	PricePerPage  float64 `yaml:"price_per_page"`
}

// PageBounds clamps every page count the estimator returns.
type PageBounds struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// IndexSettings configures the crawl-index fan-out.
type IndexSettings struct {
	IDs             []string      `yaml:"ids"`
	BlockMultiplier int           `yaml:"block_multiplier"`
	Timeout         time.Duration `yaml:"timeout"`
}

// CrawlerEntry is one catalogued AI crawler.
type CrawlerEntry struct {
	Name       string   `yaml:"name"`
	Company    string   `yaml:"company"`
	UserAgents []string `yaml:"user_agents"`
}

// DefaultCalibration returns the calibration compiled into the binary.
func DefaultCalibration() (*Calibration, error) {
	return ParseCalibration(defaultCalibration)
}

// LoadCalibration reads the calibration file at path, or the compiled-in
// default when path is empty.
func LoadCalibration(path string) (*Calibration, error) {
	if path == "" {
		return DefaultCalibration()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calibration file: %w", err)
	}
	return ParseCalibration(data)
}

// ParseCalibration decodes and validates a YAML calibration document.
func ParseCalibration(data []byte) (*Calibration, error) {
	var cal Calibration
	if err := yaml.Unmarshal(data, &cal); err != nil {
		return nil, fmt.Errorf("parse calibration: %w", err)
	}
	cal.normalize()
	if err := cal.Validate(); err != nil {
		return nil, err
	}
	return &cal, nil
}

// normalize canonicalises floor keys the same way request domains are, and
// drops blank or repeated index IDs and user-agent patterns.
func (c *Calibration) normalize() {
	c.Index.IDs = strutil.Compact(c.Index.IDs)

	floors := make(map[string]int, len(c.Floors))
	for host, pages := range c.Floors {
		if key := domain.Normalize(host); key != "" {
			floors[key] = pages
		}
	}
	c.Floors = floors

	for i := range c.Crawlers {
		c.Crawlers[i].Name = strings.TrimSpace(c.Crawlers[i].Name)
		c.Crawlers[i].Company = strings.TrimSpace(c.Crawlers[i].Company)
		c.Crawlers[i].UserAgents = strutil.CompactFold(c.Crawlers[i].UserAgents)
	}
}

// Validate enforces the invariants the estimator and composer rely on.
func (c *Calibration) Validate() error {
	var errs []error
	if c.Pricing.CrawlsPerYear <= 0 {
		errs = append(errs, errors.New("pricing.crawls_per_year must be positive"))
	}
	if c.Pricing.PricePerPage < 0 {
		errs = append(errs, errors.New("pricing.price_per_page must not be negative"))
	}
	if c.Pages.Min <= 0 {
		errs = append(errs, errors.New("pages.min must be positive"))
	}
	if c.Pages.Max < c.Pages.Min {
		errs = append(errs, errors.New("pages.max must be >= pages.min"))
	}
	if len(c.Index.IDs) == 0 {
		errs = append(errs, errors.New("index.ids must list at least one index"))
	}
	if c.Index.BlockMultiplier <= 0 {
		errs = append(errs, errors.New("index.block_multiplier must be positive"))
	}
	if c.Index.Timeout <= 0 {
		errs = append(errs, errors.New("index.timeout must be positive"))
	}
	for host, pages := range c.Floors {
		if pages <= 0 {
			errs = append(errs, fmt.Errorf("floors.%s must be positive", host))
		}
		if pages > c.Pages.Max {
			errs = append(errs, fmt.Errorf("floors.%s %d exceeds pages.max %d", host, pages, c.Pages.Max))
		}
	}
	if len(c.Crawlers) == 0 {
		errs = append(errs, errors.New("crawlers must list at least one crawler"))
	}
	for i, cr := range c.Crawlers {
		if cr.Name == "" {
			errs = append(errs, fmt.Errorf("crawlers[%d].name is required", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid calibration: %w", errors.Join(errs...))
	}
	return nil
}
