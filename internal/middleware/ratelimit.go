package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/sakif/portfolio-api/internal/ratelimit"
)

// RateLimit refuses requests once a client address exceeds the limiter's
// budget. The key is the host part of r.RemoteAddr, so run it after
// chi's RealIP when the server sits behind a proxy.
//
// Every response carries X-RateLimit-Limit/Remaining/Reset; refused ones
// also get Retry-After and are answered by onLimited.
//
// A limiter error is logged and the request is let through.
func RateLimit(limiter ratelimit.Limiter, logger *slog.Logger, onLimited http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			d, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Error("rate limiter failed",
					slog.String("key", key),
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

			if !d.Allowed {
				retry := int(math.Ceil(time.Until(d.ResetAt).Seconds()))
				h.Set("Retry-After", strconv.Itoa(max(retry, 1)))

				logger.Warn("rate limit exceeded",
					slog.String("key", key),
					slog.String("path", r.URL.Path),
				)
				onLimited.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
