// File: cmd/server/main.go
package main

import (
	"context"
	"log" // Standard log for critical startup/shutdown messages before/after zap is active
	"os"
	"os/signal"
	"syscall"

	"profolio_backend/internal/app"
	"profolio_backend/internal/auth"
	"profolio_backend/internal/config"
	"profolio_backend/internal/platform/logger"
	"profolio_backend/internal/profile"
	"profolio_backend/internal/store"
	"profolio_backend/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	documentStore, err := store.New(cfg.DatabasePath, cfg.StoreLockTimeout, appLogger.Named("Store"))
	if err != nil {
		log.Fatalf("FATAL: Failed to open document store: %v", err)
	}

	tokenService := auth.NewJWTService(cfg, appLogger.Named("TokenService"))

	userRepo := user.NewStoreRepository(documentStore)
	accountService := user.NewService(userRepo, tokenService, cfg, appLogger.Named("AccountService"))

	profileRepo := profile.NewStoreRepository(documentStore)
	profileService := profile.NewService(profileRepo, appLogger.Named("ProfileService"))

	userHandler := user.NewHandler(accountService, appLogger.Named("UserHandler"))
	authHandler := auth.NewHandler(appLogger.Named("AuthHandler"))
	profileHandler := profile.NewHandler(profileService, appLogger.Named("ProfileHandler"))

	server, err := app.NewServer(cfg, appLogger, tokenService, userHandler, authHandler, profileHandler)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}
