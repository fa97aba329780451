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

type LikeService interface {
	ToggleVideoLike(ctx context.Context, actorID, videoID string) (app.ToggleResult, error)
	ToggleCommentLike(ctx context.Context, actorID, commentID string) (app.ToggleResult, error)
	ToggleTweetLike(ctx context.Context, actorID, tweetID string) (app.ToggleResult, error)
	LikedVideos(ctx context.Context, actorID string) ([]entity.Video, error)
}

type LikeHandler struct {
	Svc    LikeService
	Logger *logrus.Logger
}

func NewLikeHandler(svc LikeService, logger *logrus.Logger) *LikeHandler {
	return &LikeHandler{Svc: svc, Logger: logger}
}

func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	res, err := h.Svc.ToggleVideoLike(c.Request.Context(), actor(c), c.Param("videoId"))
	toggled(c, h.Logger, res, err, "Video liked successfully", "Video unliked successfully")
}

func (h *LikeHandler) ToggleComment(c *gin.Context) {
	res, err := h.Svc.ToggleCommentLike(c.Request.Context(), actor(c), c.Param("commentId"))
	toggled(c, h.Logger, res, err, "Comment liked successfully", "Comment unliked successfully")
}

func (h *LikeHandler) ToggleTweet(c *gin.Context) {
	res, err := h.Svc.ToggleTweetLike(c.Request.Context(), actor(c), c.Param("tweetId"))
	toggled(c, h.Logger, res, err, "Tweet liked successfully", "Tweet unliked successfully")
}

func (h *LikeHandler) LikedVideos(c *gin.Context) {
	videos, err := h.Svc.LikedVideos(c.Request.Context(), actor(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, videos, "Liked videos fetched successfully", nil)
}

// toggled answers 201 when the relation was added and 200 when removed.
func toggled(c *gin.Context, logger *logrus.Logger, res app.ToggleResult, err error, added, removed string) {
	if err != nil {
		fail(c, logger, err)
		return
	}
	if res.Active {
		response.Success(c, http.StatusCreated, res, added, nil)
		return
	}
	response.Success(c, http.StatusOK, res, removed, nil)
}
