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

// ProfileService is the part of the user service behind profile routes.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, in app.UpdateProfileInput) (*entity.User, error)
	UpdateAvatar(ctx context.Context, userID string, up *app.Upload) (*entity.User, error)
	UpdateCover(ctx context.Context, userID string, up *app.Upload) (*entity.User, error)
	ChannelProfile(ctx context.Context, username, viewerID string) (*app.ChannelProfile, error)
	SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error)
}

type UserHandler struct {
	Svc      ProfileService
	Logger   *logrus.Logger
	MaxBytes int64
}

func NewUserHandler(svc ProfileService, logger *logrus.Logger, maxBytes int64) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, MaxBytes: maxBytes}
}

type updateProfileRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email" binding:"omitempty,email"`
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), actor(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), actor(c), app.UpdateProfileInput{FullName: req.FullName, Email: req.Email})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile updated", nil)
}

// UpdateAvatar PATCH /api/profile/avatar (multipart: avatar)
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.replaceImage(c, "avatar", h.Svc.UpdateAvatar, "Avatar updated successfully")
}

// UpdateCover PATCH /api/profile/cover (multipart: coverImage)
func (h *UserHandler) UpdateCover(c *gin.Context) {
	h.replaceImage(c, "coverImage", h.Svc.UpdateCover, "Cover image updated successfully")
}

func (h *UserHandler) replaceImage(c *gin.Context, field string, do func(context.Context, string, *app.Upload) (*entity.User, error), msg string) {
	up, closeFile, err := formFile(c, field, h.MaxBytes)
	if err != nil {
		uploadFail(c, err)
		return
	}
	defer closeFile()
	u, err := do(c.Request.Context(), actor(c), up)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, msg, nil)
}

// ChannelProfile GET /api/users/c/:username
func (h *UserHandler) ChannelProfile(c *gin.Context) {
	p, err := h.Svc.ChannelProfile(c.Request.Context(), c.Param("username"), actor(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "channel fetched successfully", nil)
}

// Search GET /api/users/search?q=...&size=10
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing q", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	res, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("user search failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, res, "ok", nil)
}
