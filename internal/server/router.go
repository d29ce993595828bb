package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/sleepintake-backend/internal/handlers"
	"github.com/yungbote/sleepintake-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware    *middleware.AuthMiddleware
	AssessmentHandler *handlers.AssessmentHandler
	CatalogHandler    *handlers.CatalogHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	// Catalog
	api.GET("/catalog/modules", cfg.CatalogHandler.ListModules)
	api.GET("/catalog/modules/:moduleId", cfg.CatalogHandler.GetModule)
	api.GET("/catalog/questions", cfg.CatalogHandler.ListQuestions)
	api.GET("/catalog/days", cfg.CatalogHandler.ListDays)
	// Assessment
	api.POST("/responses", cfg.AssessmentHandler.SaveResponse)
	api.GET("/responses", cfg.AssessmentHandler.GetResponses)
	api.GET("/days/:day/plan", cfg.AssessmentHandler.GetDayPlan)
	api.GET("/days/:day/summary", cfg.AssessmentHandler.GetDaySummary)
	api.GET("/gateways", cfg.AssessmentHandler.GetGatewayStates)

	return router
}
