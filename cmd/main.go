package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/pathforge/roadmap-backend/internal/config"
	"github.com/pathforge/roadmap-backend/internal/db"
	"github.com/pathforge/roadmap-backend/internal/handlers"
	"github.com/pathforge/roadmap-backend/internal/logger"
	"github.com/pathforge/roadmap-backend/internal/middleware"
	"github.com/pathforge/roadmap-backend/internal/repos"
	"github.com/pathforge/roadmap-backend/internal/server"
	"github.com/pathforge/roadmap-backend/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	var log *logger.Logger
	var err error
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		log, err = logger.NewWithFile(logMode, logFile)
	} else {
		log, err = logger.New(logMode)
	}
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Loading configuration...")
	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal("Config load failed", "error", err)
	}

	// Postgres
	postgresService, err := db.NewPostgresService(cfg.Postgres, log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	if err := postgresService.SeedCategories(context.Background()); err != nil {
		log.Warn("Category seed failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(thePG, log)
	categoryRepo := repos.NewCategoryRepo(thePG, log)
	goalRepo := repos.NewGoalRepo(thePG, log)
	roadmapRepo := repos.NewRoadmapRepo(thePG, log)
	milestoneRepo := repos.NewMilestoneRepo(thePG, log)
	resourceRepo := repos.NewResourceRepo(thePG, log)
	progressRepo := repos.NewProgressRepo(thePG, log)

	// Services
	log.Info("Setting up services...")
	geminiClient, err := services.NewGeminiClient(cfg.Gemini, log)
	if err != nil {
		log.Fatal("Could not init GeminiClient", "error", err)
	}
	generator := services.NewRoadmapGenerator(log, geminiClient)
	assembler := services.NewRoadmapAssembler(log, roadmapRepo, milestoneRepo, resourceRepo)
	progressService := services.NewProgressService(thePG, log, milestoneRepo, resourceRepo, progressRepo)
	goalService := services.NewGoalService(
		thePG,
		log,
		goalRepo,
		categoryRepo,
		roadmapRepo,
		milestoneRepo,
		resourceRepo,
		progressRepo,
		generator,
		assembler,
		progressService,
	)
	categoryService := services.NewCategoryService(log, categoryRepo)

	// Handlers
	goalHandler := handlers.NewGoalHandler(log, goalService)
	progressHandler := handlers.NewProgressHandler(log, progressService)
	categoryHandler := handlers.NewCategoryHandler(log, categoryService)
	suggestionHandler := handlers.NewSuggestionHandler(log, generator)

	authMiddleware := middleware.NewAuthMiddleware(log, cfg.Auth.JWTSecret, userRepo)

	router := server.NewRouter(server.RouterConfig{
		Log:               log,
		AuthMiddleware:    authMiddleware,
		GoalHandler:       goalHandler,
		ProgressHandler:   progressHandler,
		CategoryHandler:   categoryHandler,
		SuggestionHandler: suggestionHandler,
	})

	addr := ":" + cfg.Server.Port
	log.Info("Starting server", "addr", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
