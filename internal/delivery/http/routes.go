package http

import (
	"github.com/gin-gonic/gin"

	"github.com/BeefBowl03/domain-generator/config"
	"github.com/BeefBowl03/domain-generator/internal/logger"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, log logger.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = logger.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(log))
	router.Use(LoggerMiddleware(log))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		v1.POST("/competitors", handler.FindCompetitors)

		niches := v1.Group("/niches")
		{
			niches.GET("/resolve", handler.ResolveNiche)
			niches.GET("/:niche/curated", handler.GetCurated)
		}
	}

	return router
}
