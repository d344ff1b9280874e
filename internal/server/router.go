package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pathforge/roadmap-backend/internal/handlers"
	"github.com/pathforge/roadmap-backend/internal/logger"
	"github.com/pathforge/roadmap-backend/internal/middleware"
)

type RouterConfig struct {
	Log               *logger.Logger
	AuthMiddleware    *middleware.AuthMiddleware
	GoalHandler       *handlers.GoalHandler
	ProgressHandler   *handlers.ProgressHandler
	CategoryHandler   *handlers.CategoryHandler
	SuggestionHandler *handlers.SuggestionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.Metrics())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	{
		api.GET("/categories", cfg.CategoryHandler.List)

		api.GET("/goals", cfg.GoalHandler.Dashboard)
		api.POST("/goals", cfg.GoalHandler.Create)
		api.GET("/goals/:id/roadmap", cfg.GoalHandler.RoadmapDetail)
		api.DELETE("/goals/:id", cfg.GoalHandler.Delete)

		api.POST("/milestones/:id/complete", cfg.ProgressHandler.CompleteMilestone)
		api.POST("/resources/:id/complete", cfg.ProgressHandler.CompleteResource)

		api.GET("/resources/suggestions", cfg.SuggestionHandler.Suggestions)
	}

	return router
}
