package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mguzelocak/TrendyolApiPriceControl/config"
	"github.com/mguzelocak/TrendyolApiPriceControl/internal/observability"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(observability.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		prices := v1.Group("/prices")
		{
			prices.POST("/classify", handler.ClassifyPrice)
			prices.POST("/update", handler.UpdatePrice)
			prices.GET("/batch/:batchId", handler.BatchStatus)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.POST("/reconcile", handler.ReconcileCatalogs)
			catalog.POST("/pull", handler.PullCatalog)
		}

		history := v1.Group("/history")
		{
			history.GET("/month", handler.MonthlyHistory)
		}
	}

	return router
}
