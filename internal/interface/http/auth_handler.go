package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/vidtube/internal/application"
	"github.com/oksasatya/vidtube/internal/domain/entity"
	"github.com/oksasatya/vidtube/pkg/helpers"
	"github.com/oksasatya/vidtube/pkg/response"
	"github.com/oksasatya/vidtube/pkg/validation"
)

// AccountService is the part of the user service behind registration and sessions.
type AccountService interface {
	Register(ctx context.Context, in app.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, identifier, password string) (*app.LoginResponse, app.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (app.TokenPair, string, error)
	Logout(ctx context.Context, userID string)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

type AuthHandler struct {
	Svc      AccountService
	Logger   *logrus.Logger
	Cookies  *helpers.SessionCookies
	MaxBytes int64
}

func NewAuthHandler(svc AccountService, logger *logrus.Logger, cookieDomain string, cookieSecure bool, maxBytes int64) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewSessionCookies(cookieDomain, cookieSecure), MaxBytes: maxBytes}
}

type registerRequest struct {
	FullName string `form:"fullname" binding:"required,notblank"`
	Email    string `form:"email" binding:"required,email"`
	Username string `form:"username" binding:"required,username"`
	Password string `form:"password" binding:"required,pwd"`
}

// Register POST /api/users/register (multipart: avatar, coverImage)
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	files, closeFiles, err := openFiles(c, h.MaxBytes, "avatar", "coverImage")
	if err != nil {
		uploadFail(c, err)
		return
	}
	defer closeFiles()

	u, err := h.Svc.Register(c.Request.Context(), app.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Avatar:   files["avatar"],
		Cover:    files["coverImage"],
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "User registered successfully", nil)
}

func uploadFail(c *gin.Context, err error) {
	if errors.Is(err, errTooLarge) {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "file too large", nil)
		return
	}
	response.Error[any](c, http.StatusBadRequest, "invalid multipart form", nil)
}

type loginRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	identifier := req.Email
	if identifier == "" {
		identifier = req.Username
	}
	if identifier == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"email": "username or email is required"})
		return
	}

	res, pair, err := h.Svc.Login(c.Request.Context(), identifier, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"user": res, "access_token": pair.AccessToken, "refresh_token": pair.RefreshToken},
		"login successful", map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(helpers.RefreshCookie)
	if err != nil || refresh == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.ShouldBindJSON(&body)
		refresh = body.RefreshToken
	}
	if refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, map[string]any{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken},
		"token refreshed", map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), actor(c))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ChangePassword(c.Request.Context(), actor(c), req.OldPassword, req.NewPassword); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"changed": true}, "Password changed successfully", nil)
}
