package main

import (
	"flag"
	"os"

	"github.com/tastebase/backend-go/internal/config"
	"github.com/tastebase/backend-go/internal/database"
	"github.com/tastebase/backend-go/internal/database/repository"
	"github.com/tastebase/backend-go/internal/database/service"
	"github.com/tastebase/backend-go/internal/logger"
)

// Bootstraps an administrative account, the way a fresh deployment seeds
// its first login before any registration traffic exists.
func main() {
	email := flag.String("email", "", "email address for the superuser")
	password := flag.String("password", "", "password for the superuser")
	name := flag.String("name", "Admin", "display name for the superuser")
	flag.Parse()

	cfg := config.LoadConfig()
	appLogger := logger.New(cfg)

	if *email == "" || *password == "" {
		appLogger.Error("❌ Both -email and -password are required")
		os.Exit(1)
	}

	if err := database.ConnectDatabase(cfg, appLogger); err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	db := database.GetDatabase()
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewAuthTokenRepository(db)
	authService := service.NewAuthService(userRepo, tokenRepo, appLogger)

	user, err := authService.CreateSuperuser(*email, *password, *name)
	if err != nil {
		appLogger.Error("❌ Failed to create superuser", "error", err)
		os.Exit(1)
	}

	appLogger.Info("✅ Superuser created", "user_id", user.ID, "email", user.Email)
}
