// internal/app/system/ratelimit/middleware.go
package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/gridleapp/gridle/internal/app/system/httpx"
)

// Middleware wraps a handler with this limiter's policy, keyed by client
// address + route path. Limit metadata is advertised on every response;
// over-budget requests get a 429 envelope and the handler never runs.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := ClientIP(r) + ":" + r.URL.Path

		allowed, remaining, reset := l.Check(key)
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.max))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.UnixMilli(), 10))

		if !allowed {
			httpx.Fail(w, http.StatusTooManyRequests, l.message, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
