package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/brand-insights/internal/server/ratelimit"
	"github.com/sirupsen/logrus"
)

// RateLimit rejects requests over the client's budget with 429 and sets the
// X-RateLimit-* headers on every limited response.
func RateLimit(limiter *ratelimit.Limiter, log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, info := limiter.Allow(ClientID(r), r.URL.Path, r.Method)
			setRateLimitHeaders(w, info)
			if !allowed {
				Logger(r, log).WithFields(logrus.Fields{
					"limit":     info.Limit,
					"remaining": info.Remaining,
					"reset":     info.ResetTime.Format(time.RFC3339),
				}).Warn("rate limit exceeded")
				rateLimitResponse(w, info)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientID extracts the client identifier from the request. Behind chi's
// RealIP middleware RemoteAddr already holds the forwarded address.
func ClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

func rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(response)
}
