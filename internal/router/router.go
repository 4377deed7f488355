package router

import (
	"github.com/gin-gonic/gin"

	"lexdocs/internal/config"
	"lexdocs/internal/handler"
	"lexdocs/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	docH *handler.DocumentHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Document routes are tenant-scoped
	docs := v1.Group("/documents")
	docs.Use(middleware.Tenant())
	docs.POST("", docH.Submit)
	docs.GET("", docH.List)
	docs.GET("/:id/status", docH.GetStatus)
	docs.GET("/:id/result", docH.GetResult)
	docs.GET("/:id/download", docH.GetDownloadURL)
	docs.POST("/:id/reprocess", docH.Reprocess)

	return r
}
