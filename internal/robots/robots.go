// Package robots reports which catalogued AI crawlers a site's robots.txt
// shuts out. It only reads the file; nothing is enforced.
package robots

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/temoto/robotstxt"

	"crawlreceipt/internal/catalog"
	"crawlreceipt/internal/platform/logger"
	"crawlreceipt/pkg/domain"
	dErrors "crawlreceipt/pkg/domain-errors"
	"crawlreceipt/pkg/platform/sentinel"
)

const maxRobotsBytes = 512 << 10

// Verdict is one crawler's access to the site root.
type Verdict struct {
	Crawler string `json:"crawler"`
	Company string `json:"company"`
	Allowed bool   `json:"allowed"`
}

// Report is the robots.txt summary for one domain.
type Report struct {
	Domain    string    `json:"domain"`
	RobotsURL string    `json:"robots_url"`
	Status    int       `json:"status"`
	Blocked   int       `json:"blocked"`
	Crawlers  []Verdict `json:"crawlers"`
	CheckedAt time.Time `json:"checked_at"`
}

// Checker fetches and evaluates robots.txt files.
type Checker struct {
	crawlers   *catalog.Catalog
	httpClient *http.Client
	userAgent  string
	robotsURL  func(domain.Key) string
	logger     *slog.Logger
}

type Option func(*Checker)

// WithHTTPClient replaces the public-address-only client. Redirects are still
// limited to the requested host unless c sets its own CheckRedirect.
func WithHTTPClient(c *http.Client) Option {
	return func(ch *Checker) {
		ch.httpClient = c
	}
}

func WithUserAgent(ua string) Option {
	return func(ch *Checker) {
		ch.userAgent = ua
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(ch *Checker) {
		ch.logger = l
	}
}

// WithRobotsURL overrides where the robots.txt of a domain is fetched from.
func WithRobotsURL(fn func(domain.Key) string) Option {
	return func(ch *Checker) {
		ch.robotsURL = fn
	}
}

// DefaultRobotsURL is https://{domain}/robots.txt.
func DefaultRobotsURL(key domain.Key) string {
	return "https://" + key.String() + "/robots.txt"
}

// New creates a checker for the given crawler catalog.
func New(crawlers *catalog.Catalog, opts ...Option) *Checker {
	c := &Checker{
		crawlers:   crawlers,
		httpClient: NewPublicClient(10 * time.Second),
		userAgent:  "crawlreceipt-robots/1.0",
		robotsURL:  DefaultRobotsURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Discard()
	}
	if c.httpClient.CheckRedirect == nil {
		guarded := *c.httpClient
		guarded.CheckRedirect = sameHostRedirects
		c.httpClient = &guarded
	}
	return c
}

// Check fetches robots.txt for key and evaluates every catalogued crawler
// against "/". A 4xx answer means the site allows everything and a 5xx
// answer means it allows nothing. Network failures return a
// CodeUpstreamUnavailable error.
func (c *Checker) Check(ctx context.Context, key domain.Key) (*Report, error) {
	target := c.robotsURL(key)
	status, body, err := c.fetch(ctx, target)
	if err != nil {
		c.logger.DebugContext(ctx, "robots.txt fetch failed", "domain", key.String(), "url", target, "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "robots.txt could not be fetched")
	}

	data, err := robotstxt.FromStatusAndBytes(status, body)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, fmt.Sprintf("robots.txt answered with status %d", status))
	}

	report := &Report{
		Domain:    key.String(),
		RobotsURL: target,
		Status:    status,
		Crawlers:  make([]Verdict, 0, c.crawlers.Len()),
		CheckedAt: time.Now().UTC(),
	}
	for _, cr := range c.crawlers.All() {
		allowed := true
		for _, agent := range cr.UserAgentPatterns {
			if !data.TestAgent("/", agent) {
				allowed = false
				break
			}
		}
		if !allowed {
			report.Blocked++
		}
		report.Crawlers = append(report.Crawlers, Verdict{Crawler: cr.Name, Company: cr.Company, Allowed: allowed})
	}
	return report, nil
}

func (c *Checker) fetch(ctx context.Context, target string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read robots.txt: %w", sentinel.ErrUnavailable, err)
	}
	return resp.StatusCode, body, nil
}
