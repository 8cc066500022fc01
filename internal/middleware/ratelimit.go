package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"svpportal/internal/metrics"
	"svpportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// FailPolicy defines the behavior when the limiter store is unavailable.
type FailPolicy int

const (
	FailOpen FailPolicy = iota
	FailClosed
)

var errNoRedis = errors.New("redis client is nil")

// CheckRateLimit runs a fixed-window counter. Returns true if the request is allowed.
func CheckRateLimit(ctx context.Context, rdb redis.Cmdable, resource, id string, limit int, window time.Duration) (bool, error) {
	if rdb == nil {
		return false, errNoRedis
	}

	key := fmt.Sprintf("svp:rl:%s:%s", resource, id)

	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return cnt <= int64(limit), nil
}

// RateLimit keys by client IP under the given scope name. A nil client disables limiting.
func RateLimit(rdb redis.Cmdable, scope string, limit int, window time.Duration, policy FailPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 500*time.Millisecond)
		defer cancel()

		allowed, err := CheckRateLimit(ctx, rdb, scope, "ip:"+c.ClientIP(), limit, window)
		if err != nil {
			metrics.RateLimitErrors.Inc()
			if policy == FailClosed {
				log.Printf("rate_limit_unavailable scope=%s policy=closed error=%q", scope, err.Error())
				response.Message(c, http.StatusServiceUnavailable, "Rate limit unavailable")
				c.Abort()
				return
			}
			log.Printf("rate_limit_unavailable scope=%s policy=open error=%q", scope, err.Error())
			c.Next()
			return
		}

		if !allowed {
			metrics.RateLimitRejections.WithLabelValues(scope).Inc()
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			response.Message(c, http.StatusTooManyRequests, "Too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
