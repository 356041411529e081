package app

import (
	"study_diagnostic_backend/internal/config"
	"study_diagnostic_backend/internal/middleware"
	"study_diagnostic_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/questions", c.diagnostic.GetQuestions)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		authGroup.POST("/diagnostics", c.diagnostic.Submit)
		authGroup.GET("/diagnostics/latest", c.diagnostic.Latest)
		authGroup.GET("/diagnostics/comparison", c.history.Compare)

		authGroup.GET("/diagnostics/history", c.history.List)
		authGroup.DELETE("/diagnostics/history", c.history.Clear)
		authGroup.POST("/diagnostics/history/import", c.history.Import)
		authGroup.GET("/diagnostics/history/:id", c.history.Get)
		authGroup.DELETE("/diagnostics/history/:id", c.history.Delete)

		authGroup.GET("/diagnostics/:id/export", c.export.ExportAttempt)
		authGroup.GET("/diagnostics/:id/prompt", c.export.CoachPrompt)
		authGroup.POST("/diagnostics/:id/archive", c.export.Archive)
	}
}
