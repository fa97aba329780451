package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/vidtube/internal/application"
	"github.com/oksasatya/vidtube/internal/interface/middleware"
	"github.com/oksasatya/vidtube/pkg/response"
)

// statusFor maps a service error kind onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, app.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, app.ErrNotFound), errors.Is(err, app.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, app.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, app.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an error envelope. Server-side failures are logged and
// their cause is not echoed to the client.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	status := statusFor(err)
	var details any
	if status >= http.StatusInternalServerError {
		if logger != nil {
			logger.WithError(err).WithField("request_id", c.GetString("request_id")).
				WithField("path", c.FullPath()).Error("request failed")
		}
		if app.IsRetryable(err) {
			details = gin.H{"retryable": true}
		}
	}
	response.Error[any](c, status, app.Message(err), details)
}

func actor(c *gin.Context) string { return c.GetString(middleware.CtxUserIDKey) }
