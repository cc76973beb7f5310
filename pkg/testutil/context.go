package testutil

import (
	"net/http"
	"time"

	"crawlreceipt/pkg/requestcontext"
)

// WithRequestTime pins the request-scoped clock, as the requesttime
// middleware would, so rendered years and timestamps are stable.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
