package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/vidtube/internal/application"
	"github.com/oksasatya/vidtube/internal/domain/entity"
	"github.com/oksasatya/vidtube/pkg/response"
	"github.com/oksasatya/vidtube/pkg/validation"
)

type CommentService interface {
	ListByVideo(ctx context.Context, videoID string, page, limit int) (*app.CommentPage, error)
	Add(ctx context.Context, actorID, videoID, content string) (*entity.Comment, error)
	Update(ctx context.Context, actorID, id, content string) (*entity.Comment, error)
	Delete(ctx context.Context, actorID, id string) error
}

type CommentHandler struct {
	Svc    CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

// contentRequest is shared by comment and tweet writes.
type contentRequest struct {
	Content string `json:"content" binding:"required,notblank"`
}

func (h *CommentHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	res, err := h.Svc.ListByVideo(c.Request.Context(), c.Param("videoId"), page, limit)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "Comments fetched successfully", response.Page(res.Page, res.Limit, res.Total))
}

func (h *CommentHandler) Add(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cm, err := h.Svc.Add(c.Request.Context(), actor(c), c.Param("videoId"), req.Content)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, cm, "Comment added successfully", nil)
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cm, err := h.Svc.Update(c.Request.Context(), actor(c), c.Param("commentId"), req.Content)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, cm, "Comment updated successfully", nil)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actor(c), c.Param("commentId")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "Comment deleted successfully", nil)
}
