package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vidtube/pkg/response"
)

// Module registers one feature's routes on the /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

// RegisterAll mounts every module in the order added. Unknown routes get
// the JSON error envelope instead of gin's plain-text 404.
func (r *Registry) RegisterAll(logger *logrus.Logger) {
	for _, m := range r.modules {
		m.Register(r.API)
	}
	r.Engine.NoRoute(func(c *gin.Context) {
		response.Error[any](c, http.StatusNotFound, "route not found", nil)
	})
	if logger != nil {
		logger.WithFields(logrus.Fields{
			"modules": len(r.modules),
			"routes":  len(r.Engine.Routes()),
		}).Info("routes registered")
	}
}
