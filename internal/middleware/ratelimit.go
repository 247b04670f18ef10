package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wayfareapp/wayfare-backend/pkg/clientip"
)

const (
	// RateLimitWindow is the fixed counting window per IP.
	RateLimitWindow = 120 * time.Second
	// RateLimitMaxRequests is the maximum number of requests allowed in the window.
	RateLimitMaxRequests = 60
	// rateLimitKeyPrefix is the Redis key prefix for rate limiting.
	rateLimitKeyPrefix = "ratelimit:"
	// blockedIPKeyPrefix is the Redis key prefix for blocked IPs.
	blockedIPKeyPrefix = "blocked_ip:"
	// blockedIPDuration is how long an IP stays blocked.
	blockedIPDuration = 1 * time.Hour
)

// RateLimit counts requests per IP in Redis and blocks IPs that exceed the
// window limit. If Redis is unavailable the request is allowed (fail open).
func RateLimit(rdb *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientip.RealClientIP(r)
			ctx := r.Context()

			blocked, err := rdb.Exists(ctx, blockedIPKeyPrefix+ip).Result()
			if err == nil && blocked > 0 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"success":false,"message":"Your IP has been temporarily blocked due to excessive requests. Please try again later."}`))
				return
			}

			key := rateLimitKeyPrefix + ip
			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rdb.Expire(ctx, key, RateLimitWindow)
			}

			if count > RateLimitMaxRequests {
				rdb.Set(ctx, blockedIPKeyPrefix+ip, "1", blockedIPDuration)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(fmt.Sprintf(`{"success":false,"message":"Rate limit exceeded. Please try again later.","retry_after":%d}`, int(RateLimitWindow.Seconds()))))
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(RateLimitMaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(RateLimitMaxRequests-count, 10))

			next.ServeHTTP(w, r)
		})
	}
}
