package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/vidtube/internal/container"
	handlers "github.com/oksasatya/vidtube/internal/interface/http"
	"github.com/oksasatya/vidtube/internal/interface/middleware"
)

type HealthModule struct {
	Handler *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule { return &HealthModule{Handler: h} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	// probes from inside the cluster are never limited
	rl := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/healthcheck", rl, m.Handler.Check)
}

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	if state := container.GetBreakerState(); state != nil && expvar.Get("asset_breaker") == nil {
		expvar.Publish("asset_breaker", expvar.Func(func() any { return state() }))
	}
	rg.GET("/debug/vars", middleware.PrivateOnly(), gin.WrapH(expvar.Handler()))
}
