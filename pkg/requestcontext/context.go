// Package requestcontext carries request-scoped values through context.Context
// so handlers, the estimator and loggers can read them without net/http.
//
// Middleware writes them; tests inject them directly:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithRequestID(ctx, "req-1")
package requestcontext

import (
	"context"
	"time"
)

type (
	clientIPKey    struct{}
	userAgentKey   struct{}
	crawlerKey     struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

func value[T any](ctx context.Context, key any) (T, bool) {
	v, ok := ctx.Value(key).(T)
	return v, ok
}

func ClientIP(ctx context.Context) string {
	ip, _ := value[string](ctx, clientIPKey{})
	return ip
}

func UserAgent(ctx context.Context) string {
	ua, _ := value[string](ctx, userAgentKey{})
	return ua
}

// WithClientMetadata stores the caller's address and User-Agent.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey{}, clientIP)
	return context.WithValue(ctx, userAgentKey{}, userAgent)
}

// Crawler is the catalogued AI crawler making the request, or "".
func Crawler(ctx context.Context) string {
	name, _ := value[string](ctx, crawlerKey{})
	return name
}

func WithCrawler(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, crawlerKey{}, name)
}

func RequestID(ctx context.Context) string {
	id, _ := value[string](ctx, requestIDKey{})
	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now is the time the request arrived, falling back to the wall clock outside
// an HTTP request.
func Now(ctx context.Context) time.Time {
	if t, ok := value[time.Time](ctx, requestTimeKey{}); ok {
		return t
	}
	return time.Now()
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
