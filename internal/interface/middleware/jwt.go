package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/vidtube/pkg/helpers"
)

// OptionalAuth sets userID when a valid access token is present and lets
// anonymous requests through untouched. Public reads use it to tell the
// owner apart from other viewers.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerOrCookie(c); token != "" && jwt != nil {
			if claims, err := jwt.ParseAccessToken(token); err == nil {
				c.Set(CtxUserIDKey, claims.UserID)
			}
		}
		c.Next()
	}
}
