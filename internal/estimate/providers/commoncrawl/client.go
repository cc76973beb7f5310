// Package commoncrawl queries a Common Crawl CDX index server for the number of
// index blocks that cover a domain.
package commoncrawl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"crawlreceipt/internal/estimate/providers"
	"crawlreceipt/pkg/domain"
)

// maxBodyBytes caps the showNumPages response; a real answer is a few dozen bytes.
const maxBodyBytes = 64 << 10

// DefaultUserAgent identifies index lookups.
const DefaultUserAgent = "crawlreceipt/1.0 (+https://crawlerreceipt.com)"

// numPagesResponse is the body returned for showNumPages=true queries.
type numPagesResponse struct {
	Pages    *int64 `json:"pages"`
	PageSize *int64 `json:"pageSize"`
	Blocks   *int64 `json:"blocks"`
}

// Client is a providers.Provider for one CDX index snapshot.
type Client struct {
	baseURL    string
	indexID    string
	httpClient *http.Client
	userAgent  string
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithUserAgent sets the User-Agent sent to the index server.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// New creates a client for indexID served under baseURL (no trailing slash).
func New(baseURL, indexID string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		indexID:    indexID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewSet builds one client per index ID, preserving order. The clients share
// a single HTTP client.
func NewSet(baseURL string, indexIDs []string, opts ...Option) []providers.Provider {
	out := make([]providers.Provider, 0, len(indexIDs))
	for _, id := range indexIDs {
		out = append(out, New(baseURL, id, opts...))
	}
	return out
}

// ID returns the index identifier.
func (c *Client) ID() string {
	return c.indexID
}

// LookupURL returns the showNumPages query for key.
func (c *Client) LookupURL(key domain.Key) string {
	q := url.Values{}
	q.Set("url", "*."+key.String())
	q.Set("output", "json")
	q.Set("showNumPages", "true")
	return fmt.Sprintf("%s/%s-index?%s", c.baseURL, c.indexID, q.Encode())
}

// BlockCount implements providers.Provider.
func (c *Client) BlockCount(ctx context.Context, key domain.Key) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.LookupURL(key), nil)
	if err != nil {
		return 0, c.fail(providers.ErrorInternal, "build request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
			return 0, c.fail(providers.ErrorTimeout, "request cancelled", err)
		}
		return 0, c.fail(providers.ErrorProviderOutage, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return 0, c.fail(providers.ErrorNotFound, "no captures", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return 0, c.fail(providers.ErrorRateLimited, resp.Status, nil)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return 0, c.fail(providers.ErrorProviderOutage, "unexpected status "+resp.Status, nil)
	}

	var body numPagesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		if ctx.Err() != nil {
			return 0, c.fail(providers.ErrorTimeout, "body read cancelled", err)
		}
		return 0, c.fail(providers.ErrorBadData, "decode response", err)
	}
	if body.Blocks == nil {
		return 0, c.fail(providers.ErrorBadData, "missing blocks field", nil)
	}
	if *body.Blocks < 0 {
		return 0, c.fail(providers.ErrorBadData, fmt.Sprintf("negative blocks %d", *body.Blocks), nil)
	}
	return int(*body.Blocks), nil
}

func (c *Client) fail(category providers.ErrorCategory, msg string, err error) error {
	return providers.NewProviderError(category, c.indexID, msg, err)
}
