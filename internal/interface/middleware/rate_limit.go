package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/vidtube/pkg/response"
)

// ipFromCtx extracts the client IP from Gin context, falling back to "unknown"
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString(CtxRealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func routeOf(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc names the bucket a request is counted in.
type KeyFunc func(c *gin.Context) string

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "ip:" + ipFromCtx(c) }
}

func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string { return "route:" + routeOf(c) + ":ip:" + ipFromCtx(c) }
}

// KeyByUserID counts signed-in users by id and everyone else by address.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		if uid := c.GetString(CtxUserIDKey); uid != "" {
			return "user:" + uid
		}
		return "anon:ip:" + ipFromCtx(c)
	}
}

// AllowFunc returns true to exempt a request from the limit.
type AllowFunc func(*gin.Context) bool

// counter increments key within window and reports the new count and the
// time left before the window resets.
type counter func(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)

// INCR, PEXPIRE on the first hit, and PTTL in one round trip.
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

func redisCounter(rdb *redis.Client) counter {
	return func(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
		res, err := hitScript.Run(ctx, rdb, []string{key}, window.Milliseconds()).Int64Slice()
		if err != nil {
			return 0, 0, err
		}
		if len(res) != 2 {
			return 0, 0, fmt.Errorf("rate limit script returned %d values", len(res))
		}
		return res[0], time.Duration(res[1]) * time.Millisecond, nil
	}
}

// RateLimit allows max requests per window for each key. Buckets are
// namespaced by max and window, so two limiters with the same KeyFunc never
// share a count. Redis errors let the request through.
func RateLimit(rdb *redis.Client, max int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return rateLimit(redisCounter(rdb), max, window, keyFn, allow)
}

func rateLimit(count counter, max int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if count == nil || max <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	prefix := fmt.Sprintf("vidtube:rl:%d/%s:", max, window)
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		n, ttl, err := count(c.Request.Context(), prefix+keyFn(c), window)
		if err != nil {
			c.Next()
			return
		}

		reset := int((ttl + time.Second - 1) / time.Second)
		if reset < 0 {
			reset = 0
		}
		remaining := int64(max) - n
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.Itoa(reset))

		if n > int64(max) {
			if reset > 0 {
				c.Header("Retry-After", strconv.Itoa(reset))
			}
			response.Error[any](c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
