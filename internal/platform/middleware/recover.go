package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	dErrors "crawlreceipt/pkg/domain-errors"
	"crawlreceipt/pkg/platform/httputil"
	"crawlreceipt/pkg/requestcontext"
)

// Recover turns a handler panic into a 500 JSON response.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				ctx := r.Context()
				logger.ErrorContext(ctx, "handler panic",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "internal error"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
