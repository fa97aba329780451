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

type PlaylistService interface {
	Create(ctx context.Context, actorID, name, description string) (*entity.Playlist, error)
	Get(ctx context.Context, id string) (*entity.Playlist, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Playlist, error)
	Update(ctx context.Context, actorID, id, name, description string) (*entity.Playlist, error)
	Delete(ctx context.Context, actorID, id string) error
	AddVideo(ctx context.Context, actorID, playlistID, videoID string) (*entity.Playlist, error)
	RemoveVideo(ctx context.Context, actorID, playlistID, videoID string) (*entity.Playlist, error)
}

type PlaylistHandler struct {
	Svc    PlaylistService
	Logger *logrus.Logger
}

func NewPlaylistHandler(svc PlaylistService, logger *logrus.Logger) *PlaylistHandler {
	return &PlaylistHandler{Svc: svc, Logger: logger}
}

type playlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *PlaylistHandler) Create(c *gin.Context) {
	var req playlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), actor(c), req.Name, req.Description)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "Playlist created successfully", nil)
}

func (h *PlaylistHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("playlistId"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "Playlist fetched successfully", nil)
}

func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	out, err := h.Svc.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "Playlists fetched successfully", nil)
}

func (h *PlaylistHandler) Update(c *gin.Context) {
	var req playlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), actor(c), c.Param("playlistId"), req.Name, req.Description)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "Playlist updated successfully", nil)
}

func (h *PlaylistHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actor(c), c.Param("playlistId")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "Playlist deleted successfully", nil)
}

func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	p, err := h.Svc.AddVideo(c.Request.Context(), actor(c), c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "Video added to playlist successfully", nil)
}

func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	p, err := h.Svc.RemoveVideo(c.Request.Context(), actor(c), c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "Video removed from playlist successfully", nil)
}
