package main

import (
	"fmt"
	"os"

	"github.com/tastebase/backend-go/internal/api"
	"github.com/tastebase/backend-go/internal/config"
	"github.com/tastebase/backend-go/internal/database"
	"github.com/tastebase/backend-go/internal/database/repository"
	"github.com/tastebase/backend-go/internal/database/service"
	"github.com/tastebase/backend-go/internal/handler"
	"github.com/tastebase/backend-go/internal/logger"
	"github.com/tastebase/backend-go/internal/middleware"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Go] Starting recipe API...",
		"environment", cfg.AppEnv,
	)

	// 3. Connect to Database
	if err := database.ConnectDatabase(cfg, appLogger); err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	db := database.GetDatabase()

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewAuthTokenRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)

	// 5. Initialize Services
	authService := service.NewAuthService(userRepo, tokenRepo, appLogger)
	userService := service.NewUserService(userRepo, appLogger)
	recipeService := service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, cfg, appLogger)
	tagService := service.NewTagService(tagRepo, appLogger)
	ingredientService := service.NewIngredientService(ingredientRepo, appLogger)

	// 6. Initialize Handlers & Middleware
	authHandler := handler.NewAuthHandler(authService, appLogger)
	userHandler := handler.NewUserHandler(userService, appLogger)
	recipeHandler := handler.NewRecipeHandler(recipeService, cfg, appLogger)
	tagHandler := handler.NewAttributeHandler(tagService, "tag", appLogger)
	ingredientHandler := handler.NewAttributeHandler(ingredientService, "ingredient", appLogger)
	authMiddleware := middleware.NewAuthMiddleware(authService, appLogger)

	// 7. Initialize Rate Limiter for the credential endpoints
	rateLimiter, err := middleware.NewRateLimiter(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis, using no-op rate limiter", "error", err)
		rateLimiter = middleware.NewNoOpRateLimiter(appLogger)
	}
	defer rateLimiter.Close()

	r := api.SetupRouter(
		cfg,
		authHandler,
		userHandler,
		recipeHandler,
		tagHandler,
		ingredientHandler,
		authMiddleware,
		middleware.Throttle(rateLimiter, appLogger),
	)

	// 8. Start HTTP Server
	addr := fmt.Sprintf(":%s", cfg.ApiServicePort)
	appLogger.Info("🌍 [Go] HTTP Server running on port...", "port", addr)
	if err := r.Run(addr); err != nil {
		appLogger.Error("❌ HTTP Server failed to start", "error", err)
		os.Exit(1)
	}
}
