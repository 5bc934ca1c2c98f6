package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
)

// getRateLimitForEndpoint picks the limit bucket: writes are throttled harder
// than public reads.
func (mw *Middleware) getRateLimitForEndpoint(method string) (int, time.Duration) {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return mw.cfg.RateLimit.WriteLimit, mw.cfg.RateLimit.WriteWindow
	}
	return mw.cfg.RateLimit.GeneralLimit, mw.cfg.RateLimit.GeneralWindow
}

// getClientIP extracts the real client IP from request headers
func (mw *Middleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	return ip
}

// normalizeEndpoint groups dynamic routes under their base path so the cache
// key space stays bounded.
func normalizeEndpoint(path string) string {
	path = strings.TrimSuffix(path, "/")
	for _, base := range []string{"/categories/", "/products/", "/projects/", "/services/"} {
		if strings.HasPrefix(path, base) {
			return base + ":id"
		}
	}
	return path
}

// RateLimitMiddleware implements sliding window rate limiting backed by
// Redis, failing open on cache errors.
func (mw *Middleware) RateLimitMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mw.cfg.RateLimit.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			if strings.HasPrefix(r.URL.Path, "/health") || r.URL.Path == "/" || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := mw.getClientIP(r)
			limit, window := mw.getRateLimitForEndpoint(r.Method)
			endpoint := normalizeEndpoint(r.URL.Path)

			count, err := mw.cacheService.IncrementRateLimit(clientIP, endpoint, window)
			if err != nil {
				mw.logger.Warn("Rate limit cache error, allowing request",
					gecho.Field("error", err),
					gecho.Field("ip", clientIP),
					gecho.Field("endpoint", endpoint),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(window).Unix()))

			if count > limit {
				mw.logger.Warn("Rate limit exceeded",
					gecho.Field("ip", clientIP),
					gecho.Field("endpoint", endpoint),
					gecho.Field("count", count),
					gecho.Field("limit", limit),
				)

				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))

				gecho.TooManyRequests(w,
					gecho.WithMessage("Rate limit exceeded. Please try again later."),
					gecho.Send(),
				)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", max(0, limit-count)))

			next.ServeHTTP(w, r)
		})
	}
}
