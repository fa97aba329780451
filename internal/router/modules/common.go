package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/vidtube/internal/container"
	"github.com/oksasatya/vidtube/internal/interface/middleware"
	"github.com/oksasatya/vidtube/pkg/helpers"
)

// protected returns a group that requires a live session, with a softer
// per-IP limit and a per-user limit on top.
func protected(rg *gin.RouterGroup, jwt *helpers.JWTManager) *gin.RouterGroup {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), jwt))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	return auth
}

// public returns a group open to anonymous callers that still recognises a
// signed-in viewer.
func public(rg *gin.RouterGroup, jwt *helpers.JWTManager) *gin.RouterGroup {
	pub := rg.Group("/")
	pub.Use(middleware.OptionalAuth(jwt))
	pub.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil))
	return pub
}
