package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/vidtube/pkg/response"
)

// AllowPrivateIP exempts loopback and RFC 1918 addresses from a limiter,
// so in-cluster probes never get throttled.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		ip := net.ParseIP(ipFromCtx(c))
		return ip != nil && (ip.IsLoopback() || ip.IsPrivate())
	}
}

// PrivateOnly rejects requests from public addresses with 403.
func PrivateOnly() gin.HandlerFunc {
	private := AllowPrivateIP()
	return func(c *gin.Context) {
		if !private(c) {
			response.Error[any](c, http.StatusForbidden, "forbidden", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
