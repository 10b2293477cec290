package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"budgetbuddy/internal/auth"
	"budgetbuddy/internal/config"
	"budgetbuddy/internal/database"
	"budgetbuddy/internal/logger"
	"budgetbuddy/internal/server"
)

// @title           BudgetBuddy API
// @version         1.0
// @description     BudgetBuddy is a personal expense tracker: register, log in and keep a private list of expenses.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))

	code, err := run()
	if err != nil {
		logger.Get().Errorf("Fatal error: %v", err)
	}
	logger.Sync()
	os.Exit(code)
}

func run() (int, error) {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return 1, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return 1, fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		_ = dbManager.Close()
		return 1, fmt.Errorf("failed to run database migrations: %w", err)
	}

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret: appConfig.JWTSecret,
		TTL:    appConfig.JWTExpirationDur,
		Issuer: appConfig.JWTIssuer,
	})
	if err != nil {
		_ = dbManager.Close()
		return 1, fmt.Errorf("failed to create token service: %w", err)
	}

	router := server.NewRouter(server.Dependencies{
		Config: appConfig,
		DB:     dbManager.DB(),
		Health: dbManager,
		Tokens: tokens,
		Hasher: auth.NewPasswordHasher(appConfig.BcryptCost),
	})
	srv := server.NewHTTPServer(appConfig, router)

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting BudgetBuddy server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		appConfig.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			// The pool is closed after in-flight requests drain.
			"http-server": func(ctx context.Context) error {
				log.Info("Graceful shutdown initiated...")
				shutdownErr := srv.Shutdown(ctx)
				return errors.Join(shutdownErr, dbManager.Close())
			},
		},
	)

	select {
	case err, ok := <-serverErr:
		if ok && err != nil {
			_ = dbManager.Close()
			return 1, fmt.Errorf("server failed: %w", err)
		}
		return <-wait, nil
	case code := <-wait:
		log.Infof("Server exited with code %d", code)
		return code, nil
	}
}
