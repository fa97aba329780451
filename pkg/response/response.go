package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data,omitempty"`
	Meta      any       `json:"meta,omitempty"`
	Error     any       `json:"error,omitempty"`
}

// PageMeta describes one page of a paginated listing.
type PageMeta struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

func Page(page, limit int, total int64) PageMeta {
	return PageMeta{Page: page, Limit: limit, Total: total, HasMore: int64(page*limit) < total}
}

func envelope[T any](c *gin.Context, status int, ok bool, message string) APIResponse[T] {
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: c.GetString("request_id"),
		Success:   ok,
		Message:   message,
	}
}

// Success writes a success envelope. status 0 means 200.
func Success[T any](c *gin.Context, status int, data T, message string, meta any) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := envelope[T](c, status, true, message)
	resp.Data, resp.Meta = data, meta
	c.JSON(status, resp)
	return resp
}

// Error writes a failure envelope. status 0 means 400. Middleware should
// call c.Abort afterwards.
func Error[T any](c *gin.Context, status int, message string, details any) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := envelope[T](c, status, false, message)
	resp.Error = details
	c.JSON(status, resp)
	return resp
}
