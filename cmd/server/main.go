package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mlarina/foodgram-backend/config"
	"github.com/mlarina/foodgram-backend/internal/app/controller"
	"github.com/mlarina/foodgram-backend/internal/app/repository"
	"github.com/mlarina/foodgram-backend/internal/app/service"
	"github.com/mlarina/foodgram-backend/internal/db"
	"github.com/mlarina/foodgram-backend/internal/middleware"
	"github.com/mlarina/foodgram-backend/internal/router"
	"github.com/mlarina/foodgram-backend/internal/scheduler"
	"github.com/mlarina/foodgram-backend/internal/storage"
	"github.com/mlarina/foodgram-backend/pkg/logger"
	"github.com/mlarina/foodgram-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Foodgram Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations and seed the default tags
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Token blacklist, optional
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, logout will not revoke tokens", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redis.Close()

	// Image storage
	imageStorage, err := storage.New(&cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize image storage", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	ingredientRepo := repository.NewIngredientRepository(db.GetDB())
	tagRepo := repository.NewTagRepository(db.GetDB())
	recipeRepo := repository.NewRecipeRepository(db.GetDB())
	favoriteRepo := repository.NewFavoriteRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	subscriptionRepo := repository.NewSubscriptionRepository(db.GetDB())
	resetRepo := repository.NewPasswordResetRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	passwordResetService := service.NewPasswordResetService(resetRepo, userRepo)
	ingredientService := service.NewIngredientService(ingredientRepo)
	tagService := service.NewTagService(tagRepo)
	recipeService := service.NewRecipeService(
		recipeRepo,
		tagRepo,
		ingredientRepo,
		favoriteRepo,
		cartRepo,
		imageStorage,
		db.GetDB(),
	)
	relationService := service.NewRelationService(
		favoriteRepo,
		cartRepo,
		subscriptionRepo,
		recipeRepo,
		userRepo,
	)
	shoppingListService := service.NewShoppingListService(cartRepo, userRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService, passwordResetService)
	userController := controller.NewUserController(authService, relationService)
	ingredientController := controller.NewIngredientController(ingredientService)
	tagController := controller.NewTagController(tagService)
	recipeController := controller.NewRecipeController(recipeService, relationService, shoppingListService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Background cleanup of stale reset tokens
	resetCleanup := scheduler.NewResetCleanupScheduler(passwordResetService)
	if err := resetCleanup.Start(); err != nil {
		logger.Warn("Reset cleanup scheduler not running", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer resetCleanup.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		userController,
		ingredientController,
		tagController,
		recipeController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
