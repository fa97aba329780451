package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/vidtube/internal/application"
	"github.com/oksasatya/vidtube/internal/domain/entity"
	"github.com/oksasatya/vidtube/pkg/response"
)

type SubscriptionService interface {
	Toggle(ctx context.Context, actorID, channelID string) (app.ToggleResult, error)
	Subscribers(ctx context.Context, channelID string) ([]entity.Channel, error)
	SubscribedChannels(ctx context.Context, subscriberID string) ([]entity.Channel, error)
}

type SubscriptionHandler struct {
	Svc    SubscriptionService
	Logger *logrus.Logger
}

func NewSubscriptionHandler(svc SubscriptionService, logger *logrus.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{Svc: svc, Logger: logger}
}

func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	res, err := h.Svc.Toggle(c.Request.Context(), actor(c), c.Param("channelId"))
	toggled(c, h.Logger, res, err, "Subscribed successfully", "Unsubscribed successfully")
}

func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	out, err := h.Svc.Subscribers(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "Subscribers fetched successfully", nil)
}

func (h *SubscriptionHandler) SubscribedChannels(c *gin.Context) {
	out, err := h.Svc.SubscribedChannels(c.Request.Context(), c.Param("subscriberId"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "Subscribed channels fetched successfully", nil)
}
