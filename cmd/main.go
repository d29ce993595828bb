package main

import (
	"fmt"
	"os"

	"github.com/yungbote/sleepintake-backend/internal/catalog"
	"github.com/yungbote/sleepintake-backend/internal/config"
	"github.com/yungbote/sleepintake-backend/internal/db"
	"github.com/yungbote/sleepintake-backend/internal/engine"
	"github.com/yungbote/sleepintake-backend/internal/handlers"
	"github.com/yungbote/sleepintake-backend/internal/logger"
	"github.com/yungbote/sleepintake-backend/internal/middleware"
	"github.com/yungbote/sleepintake-backend/internal/repos"
	"github.com/yungbote/sleepintake-backend/internal/server"
	"github.com/yungbote/sleepintake-backend/internal/services"
	"github.com/yungbote/sleepintake-backend/internal/standardize"
	"github.com/yungbote/sleepintake-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	responseRepo := repos.NewResponseRepo(thePG, log)
	gatewayStateRepo := repos.NewGatewayStateRepo(thePG, log)

	// Catalog configuration
	configDir := utils.GetEnv("CONFIG_DIR", "", log)
	cfg, err := config.Load(configDir, log)
	if err != nil {
		log.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	result := standardize.Standardize(cfg.RawQuestions)
	for _, skipped := range result.Skipped {
		log.Warn("Question skipped during standardization", "questionId", skipped.QuestionID, "reason", skipped.Reason)
	}
	theCatalog, warnings := catalog.New(result.Questions, cfg.Modules)
	for _, warning := range warnings {
		log.Warn("Catalog configuration issue", "warning", warning)
	}
	for _, warning := range theCatalog.ValidateKeywordTargets(engine.KeywordTargets()) {
		log.Warn("Trigger keyword issue", "warning", warning)
	}
	planner := catalog.NewPlanner(theCatalog, cfg.DayAssignments)
	evaluator := engine.NewEvaluator(log)

	// Snapshot cache
	snapshotCache, err := services.NewRedisSnapshotCache(log)
	if err != nil {
		log.Warn("Snapshot cache disabled", "error", err)
		snapshotCache = nil
	}

	// Services
	log.Info("Setting up Services from main...")
	assessmentService := services.NewAssessmentService(
		thePG,
		log,
		responseRepo,
		gatewayStateRepo,
		snapshotCache,
		evaluator,
		cfg.Gateways,
		theCatalog,
		planner,
	)

	// Handlers
	log.Info("Setting up handlers from main...")
	assessmentHandler := handlers.NewAssessmentHandler(assessmentService)
	catalogHandler := handlers.NewCatalogHandler(theCatalog, planner)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:    authMiddleware,
		AssessmentHandler: assessmentHandler,
		CatalogHandler:    catalogHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
