package domain

import (
	"strings"

	dErrors "crawlreceipt/pkg/domain-errors"
)

// Key is a canonical hostname: lowercase, no scheme, path, query, fragment,
// userinfo or port. It is the only form of a site name the estimator accepts.
type Key string

// Normalize reduces arbitrary user input to a bare lowercase host.
// It returns "" when nothing usable remains.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = stripScheme(s)
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "@"); i >= 0 {
		s = s[i+1:]
	}
	s = stripPort(s)
	s = strings.ToLower(s)
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".")
	return strings.TrimSpace(s)
}

// ParseKey normalizes raw and rejects input that leaves nothing behind.
func ParseKey(raw string) (Key, error) {
	s := Normalize(raw)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "domain is required")
	}
	if len(s) > 253 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "domain must be at most 253 characters")
	}
	return Key(s), nil
}

// String returns the key as a plain string.
func (k Key) String() string {
	return string(k)
}

// IsNil reports whether the key is empty.
func (k Key) IsNil() bool {
	return k == ""
}

func stripScheme(s string) string {
	lower := strings.ToLower(s)
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, scheme) {
			return s[len(scheme):]
		}
	}
	return s
}

// stripPort drops a trailing ":digits". Bare IPv6 literals are left alone.
func stripPort(s string) string {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return s
	}
	host, port := s[:i], s[i+1:]
	if strings.Contains(host, ":") && !strings.HasSuffix(host, "]") {
		return s
	}
	for _, c := range port {
		if c < '0' || c > '9' {
			return s
		}
	}
	return host
}
