package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/bookstore-service/internal/service"
	"github.com/rs/zerolog"
)

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, repo Pinger, categorySvc service.CategoryService) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	RegisterDocs(r)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewCategoryHandler(categorySvc).Register(api)
	}
}

// NewRouter builds the production engine: request ids, access log and panic recovery
// in front of the routes from Register.
func NewRouter(logger zerolog.Logger, repo Pinger, categorySvc service.CategoryService) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), AccessLog(logger), Recovery(logger))
	Register(r, repo, categorySvc)
	return r
}
