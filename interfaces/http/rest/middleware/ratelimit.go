package middleware

import (
	"net/http"
	"strings"

	"notehub-backend/pkg/auth"
	"notehub-backend/pkg/common"
)

// RateLimit throttles requests per client IP using a token bucket. It
// guards the webhook path against a runaway automation caller.
func RateLimit(limiter *auth.TokenBucketLimiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				common.RespondJSON(w, http.StatusTooManyRequests, common.ErrorResponse{
					Error: common.ErrorInfo{
						Type:    "RATE_LIMIT",
						Message: "rate limit exceeded",
					},
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client IP address
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
