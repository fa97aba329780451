package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/vidtube/internal/interface/http"
	"github.com/oksasatya/vidtube/pkg/helpers"
)

type VideoModule struct {
	Handler *handlers.VideoHandler
	JWT     *helpers.JWTManager
}

func NewVideoModule(h *handlers.VideoHandler, jwt *helpers.JWTManager) *VideoModule {
	return &VideoModule{Handler: h, JWT: jwt}
}

func (m *VideoModule) Register(rg *gin.RouterGroup) {
	pub := public(rg, m.JWT)
	{
		pub.GET("/videos", m.Handler.List)
		pub.GET("/videos/search", m.Handler.Search)
		pub.GET("/videos/:videoId", m.Handler.Get)
	}

	auth := protected(rg, m.JWT)
	{
		auth.POST("/videos", m.Handler.Publish)
		auth.PATCH("/videos/:videoId", m.Handler.Update)
		auth.DELETE("/videos/:videoId", m.Handler.Delete)
		auth.PATCH("/videos/toggle/publish/:videoId", m.Handler.TogglePublish)
	}
}
