package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	"github.com/oksasatya/vidtube/pkg/response"
	"github.com/oksasatya/vidtube/pkg/validation"
)

type TweetService interface {
	Create(ctx context.Context, actorID, content string) (*entity.Tweet, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Tweet, error)
	Update(ctx context.Context, actorID, id, content string) (*entity.Tweet, error)
	Delete(ctx context.Context, actorID, id string) error
}

type TweetHandler struct {
	Svc    TweetService
	Logger *logrus.Logger
}

func NewTweetHandler(svc TweetService, logger *logrus.Logger) *TweetHandler {
	return &TweetHandler{Svc: svc, Logger: logger}
}

func (h *TweetHandler) Create(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), actor(c), req.Content)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, t, "Tweet created successfully", nil)
}

func (h *TweetHandler) ListByUser(c *gin.Context) {
	tweets, err := h.Svc.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, tweets, "Tweets fetched successfully", nil)
}

func (h *TweetHandler) Update(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), actor(c), c.Param("tweetId"), req.Content)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, t, "Tweet updated successfully", nil)
}

func (h *TweetHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actor(c), c.Param("tweetId")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "Tweet deleted successfully", nil)
}
