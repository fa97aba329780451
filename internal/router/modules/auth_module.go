package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/vidtube/internal/container"
	handlers "github.com/oksasatya/vidtube/internal/interface/http"
	"github.com/oksasatya/vidtube/internal/interface/middleware"
	"github.com/oksasatya/vidtube/pkg/helpers"
)

// AuthModule wires registration and session routes.
// Public: POST /api/users/register, POST /api/login, POST /api/refresh
// Protected: POST /api/logout, POST /api/change-password
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)   // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil) // 60 req/min per IP

	rg.POST("/users/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := protected(rg, m.JWT)
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.POST("/change-password", m.Handler.ChangePassword)
	}
}
