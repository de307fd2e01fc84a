package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/user-order-service/pkg/response"
)

// ipFromCtx prefers the address resolved by RealIP and falls back to gin's ClientIP.
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString(CtxRealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func normalizePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc builds a rate-limit key from the request
type KeyFunc func(c *gin.Context) string

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath limits each route template separately per client.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + normalizePath(c) + ":ip:" + ipFromCtx(c)
	}
}

// KeyBySubject limits by bearer token subject, falling back to the client IP.
func KeyBySubject() KeyFunc {
	return func(c *gin.Context) string {
		sub := c.GetString(CtxTokenSubjectKey)
		if sub == "" {
			return "rl:sub:anon:ip:" + ipFromCtx(c)
		}
		return "rl:sub:" + sub
	}
}

// Returns {count, pttl}. The window starts on the first hit.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

type AllowFunc func(*gin.Context) bool // true bypasses the limit

// RateLimit is a fixed-window limiter backed by redis. Redis errors fail open.
// A nil client or non-positive limit disables it.
func RateLimit(rdb *redis.Client, max int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || max <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if allow != nil && allow(c) {
			c.Next()
			return
		}
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		res, err := incrExpireScript.Run(c.Request.Context(), rdb, []string{keyFn(c)}, window.Milliseconds()).Slice()
		if err != nil || len(res) != 2 {
			c.Next()
			return
		}
		count := toInt(res[0])
		resetSec := 0
		if ttl := time.Duration(toInt(res[1])) * time.Millisecond; ttl > 0 {
			resetSec = int((ttl + time.Second - 1) / time.Second)
		}

		remaining := max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > max {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Abort(c, http.StatusTooManyRequests, "Too many requests!", "rate limit exceeded")
			return
		}
		c.Next()
	}
}

func toInt(v any) int {
	switch x := v.(type) {
	case int64:
		return int(x)
	case int:
		return x
	case string:
		i, _ := strconv.Atoi(x)
		return i
	}
	return 0
}
