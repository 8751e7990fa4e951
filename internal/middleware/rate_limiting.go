package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/2beens/coachdesk/internal/telemetry/metrics"

	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit limits all requests passing through, sharing one budget under key.
func RateLimit(
	rateLimiter RequestRateLimiter,
	key string,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limit(w, r, next, rateLimiter, key, allowedPerMin, metricsManager)
		})
	}
}

// RateLimitRoute limits only requests matched to the named mux route.
func RateLimitRoute(
	rateLimiter RequestRateLimiter,
	routeName string,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := mux.CurrentRoute(r)
			if route == nil || route.GetName() != routeName {
				next.ServeHTTP(w, r)
				return
			}
			limit(w, r, next, rateLimiter, routeName, allowedPerMin, metricsManager)
		})
	}
}

func limit(
	w http.ResponseWriter,
	r *http.Request,
	next http.Handler,
	rateLimiter RequestRateLimiter,
	key string,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) {
	res, err := rateLimiter.Allow(r.Context(), key, redis_rate.PerMinute(allowedPerMin))
	if err != nil {
		log.Errorf("rate limiter [%s]: %s", key, err)
		http.Error(w, "rate limit internal error", http.StatusInternalServerError)
		return
	}

	if res.Allowed > 0 {
		next.ServeHTTP(w, r)
		return
	}

	if metricsManager != nil {
		metricsManager.CounterRateLimitedRequests.Inc()
	}
	w.Header().Set("Retry-After", strconv.FormatFloat(res.RetryAfter.Seconds(), 'f', 2, 64))
	http.Error(
		w,
		fmt.Sprintf("retry after %f seconds", res.RetryAfter.Seconds()),
		http.StatusTooManyRequests,
	)
}
