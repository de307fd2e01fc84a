package router

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-order-service/internal/container"
)

// Registry mounts feature modules under /api with shared middleware.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll applies the middleware to the /api group, then lets each module add its routes.
func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	logger := container.GetLogger()
	for _, m := range r.modules {
		m.Register(r.API)
		if logger != nil {
			logger.WithField("module", m.Name()).Debug("module registered")
		}
	}
}
