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
)

type VideoService interface {
	Publish(ctx context.Context, actorID string, in app.PublishVideoInput) (*entity.Video, error)
	Get(ctx context.Context, viewerID, id string) (*entity.Video, error)
	List(ctx context.Context, viewerID string, in app.ListVideosInput) (*app.VideoPage, error)
	SearchVideos(ctx context.Context, q string, size int) ([]map[string]any, error)
	Update(ctx context.Context, actorID, id string, in app.UpdateVideoInput) (*entity.Video, error)
	Delete(ctx context.Context, actorID, id string) error
	TogglePublish(ctx context.Context, actorID, id string) (*entity.Video, error)
}

type VideoHandler struct {
	Svc      VideoService
	Logger   *logrus.Logger
	MaxBytes int64
}

func NewVideoHandler(svc VideoService, logger *logrus.Logger, maxBytes int64) *VideoHandler {
	return &VideoHandler{Svc: svc, Logger: logger, MaxBytes: maxBytes}
}

// List GET /api/videos?page=&limit=&query=&sortBy=&sortType=&userId=
func (h *VideoHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	res, err := h.Svc.List(c.Request.Context(), actor(c), app.ListVideosInput{
		Page:     page,
		Limit:    limit,
		Query:    c.Query("query"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
		UserID:   c.Query("userId"),
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "Videos fetched successfully", response.Page(res.Page, res.Limit, res.Total))
}

// Search GET /api/videos/search?q=...&size=10
func (h *VideoHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	res, err := h.Svc.SearchVideos(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "ok", nil)
}

// Publish POST /api/videos (multipart: videoFile, thumbnail)
func (h *VideoHandler) Publish(c *gin.Context) {
	files, closeFiles, err := openFiles(c, h.MaxBytes, "videoFile", "thumbnail")
	if err != nil {
		uploadFail(c, err)
		return
	}
	defer closeFiles()

	var duration float64
	if d := c.PostForm("duration"); d != "" {
		if duration, err = strconv.ParseFloat(d, 64); err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"duration": "must be a number"})
			return
		}
	}

	v, err := h.Svc.Publish(c.Request.Context(), actor(c), app.PublishVideoInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Duration:    duration,
		VideoFile:   files["videoFile"],
		Thumbnail:   files["thumbnail"],
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, v, "Video published successfully", nil)
}

func (h *VideoHandler) Get(c *gin.Context) {
	v, err := h.Svc.Get(c.Request.Context(), actor(c), c.Param("videoId"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "Video fetched successfully", nil)
}

// Update PATCH /api/videos/:videoId (multipart: title, description, videoFile, thumbnail)
func (h *VideoHandler) Update(c *gin.Context) {
	files, closeFiles, err := openFiles(c, h.MaxBytes, "videoFile", "thumbnail")
	if err != nil {
		uploadFail(c, err)
		return
	}
	defer closeFiles()

	v, err := h.Svc.Update(c.Request.Context(), actor(c), c.Param("videoId"), app.UpdateVideoInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		VideoFile:   files["videoFile"],
		Thumbnail:   files["thumbnail"],
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "Video updated successfully", nil)
}

func (h *VideoHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actor(c), c.Param("videoId")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "Video deleted successfully", nil)
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
	v, err := h.Svc.TogglePublish(c.Request.Context(), actor(c), c.Param("videoId"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "Publish status toggled successfully", nil)
}
