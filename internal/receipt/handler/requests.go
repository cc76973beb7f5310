package handler

import (
	"net/http"
	"net/url"

	"crawlreceipt/pkg/domain"
	dErrors "crawlreceipt/pkg/domain-errors"
)

// parseQueryDomain reads ?domain= for the data API.
func parseQueryDomain(r *http.Request) (domain.Key, error) {
	return parseDomain(r.URL.Query().Get("domain"), "domain parameter is required")
}

// parsePathDomain reads the path remainder of /receipt/{domain}. The
// remainder may still be percent-encoded; undecodable input is used as is.
func parsePathDomain(raw string) (domain.Key, error) {
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return parseDomain(raw, "domain is required")
}

// parseDomain normalizes raw. Empty input is a bad request; other problems
// keep the normalizer's own code and message.
func parseDomain(raw, missing string) (domain.Key, error) {
	if domain.Normalize(raw) == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, missing)
	}
	return domain.ParseKey(raw)
}
