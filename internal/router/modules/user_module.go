package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/vidtube/internal/interface/http"
	"github.com/oksasatya/vidtube/pkg/helpers"
)

// UserModule wires profile routes.
// Public: GET /api/users/c/:username
// Protected: GET|PUT /api/profile, PATCH /api/profile/avatar, PATCH /api/profile/cover, GET /api/users/search
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	public(rg, m.JWT).GET("/users/c/:username", m.Handler.ChannelProfile)

	auth := protected(rg, m.JWT)
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.PATCH("/profile/avatar", m.Handler.UpdateAvatar)
		auth.PATCH("/profile/cover", m.Handler.UpdateCover)
		// Search users via Elasticsearch
		auth.GET("/users/search", m.Handler.Search)
	}
}
