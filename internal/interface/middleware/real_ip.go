package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxRealIPKey = "real_ip"

// RealIP stores the client address under CtxRealIPKey.
// CF-Connecting-IP wins, then the left-most X-Forwarded-For entry, then X-Real-IP,
// then gin's ClientIP. Unparseable header values are ignored.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, resolveIP(c))
		c.Next()
	}
}

func resolveIP(c *gin.Context) string {
	candidates := []string{c.GetHeader("CF-Connecting-IP")}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		candidates = append(candidates, first)
	}
	candidates = append(candidates, c.GetHeader("X-Real-IP"))

	for _, v := range candidates {
		if ip := net.ParseIP(strings.TrimSpace(v)); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
