package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/vidtube/pkg/response"
)

// Pinger is any dependency that can report its own liveness.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	Checks map[string]Pinger
	// BreakerState reports the asset store circuit breaker, when there is one.
	BreakerState func() string
}

func NewHealthHandler(checks map[string]Pinger, breakerState func() string) *HealthHandler {
	return &HealthHandler{Checks: checks, BreakerState: breakerState}
}

// Check GET /api/healthcheck
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.Checks)+1)
	for name, ping := range h.Checks {
		if err := ping(ctx); err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}
	if h.BreakerState != nil {
		deps["asset_store"] = h.BreakerState()
	}
	if status != http.StatusOK {
		response.Error[any](c, status, "unhealthy", deps)
		return
	}
	response.Success(c, status, deps, "OK", nil)
}
