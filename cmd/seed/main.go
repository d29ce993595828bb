package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/sleepintake-backend/internal/config"
	"github.com/yungbote/sleepintake-backend/internal/db"
	"github.com/yungbote/sleepintake-backend/internal/logger"
	"github.com/yungbote/sleepintake-backend/internal/repos"
	"github.com/yungbote/sleepintake-backend/internal/services"
	"github.com/yungbote/sleepintake-backend/internal/utils"
)

// Seeds the question catalog, modules and day plan into the database.
// Safe to re-run; questions and modules upsert in place.
func main() {
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

	configDir := utils.GetEnv("CONFIG_DIR", "", log)
	cfg, err := config.Load(configDir, log)
	if err != nil {
		log.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	questionRepo := repos.NewQuestionRepo(thePG, log)
	moduleRepo := repos.NewModuleRepo(thePG, log)
	seedService := services.NewSeedService(thePG, log, questionRepo, moduleRepo)

	if err := seedService.Seed(context.Background(), cfg); err != nil {
		log.Error("Seed failed", "error", err)
		os.Exit(1)
	}
}
