package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/vidtube/internal/interface/http"
	"github.com/oksasatya/vidtube/pkg/helpers"
)

type PlaylistModule struct {
	Handler *handlers.PlaylistHandler
	JWT     *helpers.JWTManager
}

func NewPlaylistModule(h *handlers.PlaylistHandler, jwt *helpers.JWTManager) *PlaylistModule {
	return &PlaylistModule{Handler: h, JWT: jwt}
}

func (m *PlaylistModule) Register(rg *gin.RouterGroup) {
	pub := public(rg, m.JWT)
	{
		pub.GET("/playlists/user/:userId", m.Handler.ListByUser)
		pub.GET("/playlists/:playlistId", m.Handler.Get)
	}

	auth := protected(rg, m.JWT)
	{
		auth.POST("/playlists", m.Handler.Create)
		auth.PATCH("/playlists/:playlistId", m.Handler.Update)
		auth.DELETE("/playlists/:playlistId", m.Handler.Delete)
		auth.PATCH("/playlists/add/:videoId/:playlistId", m.Handler.AddVideo)
		auth.PATCH("/playlists/remove/:videoId/:playlistId", m.Handler.RemoveVideo)
	}
}

type DashboardModule struct {
	Handler *handlers.DashboardHandler
	JWT     *helpers.JWTManager
}

func NewDashboardModule(h *handlers.DashboardHandler, jwt *helpers.JWTManager) *DashboardModule {
	return &DashboardModule{Handler: h, JWT: jwt}
}

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.JWT)
	{
		auth.GET("/dashboard/stats/:channelId", m.Handler.Stats)
		auth.GET("/dashboard/videos/:channelId", m.Handler.Videos)
	}
}
