package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	"github.com/oksasatya/vidtube/pkg/response"
)

type DashboardService interface {
	ChannelStats(ctx context.Context, channelID string) (entity.ChannelStats, error)
	ChannelVideos(ctx context.Context, viewerID, channelID string) ([]entity.Video, error)
}

type DashboardHandler struct {
	Svc    DashboardService
	Logger *logrus.Logger
}

func NewDashboardHandler(svc DashboardService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Logger: logger}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.Svc.ChannelStats(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, stats, "Channel stats fetched successfully", nil)
}

func (h *DashboardHandler) Videos(c *gin.Context) {
	videos, err := h.Svc.ChannelVideos(c.Request.Context(), actor(c), c.Param("channelId"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, videos, "Channel videos fetched successfully", nil)
}
