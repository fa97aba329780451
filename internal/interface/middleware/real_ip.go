package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// CtxRealIPKey holds the resolved client address set by RealIP.
const CtxRealIPKey = "real_ip"

// RealIP resolves the client address from CF-Connecting-IP, then the
// left-most X-Forwarded-For entry, then X-Real-IP, then the socket.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, resolveIP(c))
		c.Next()
	}
}

func resolveIP(c *gin.Context) string {
	candidates := []string{c.GetHeader("CF-Connecting-IP")}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		candidates = append(candidates, strings.Split(xff, ",")[0])
	}
	candidates = append(candidates, c.GetHeader("X-Real-IP"))
	for _, raw := range candidates {
		if ip := net.ParseIP(strings.TrimSpace(raw)); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
