package main

import (
	"context"
	"fmt"
	"itemtracker/internal/client"
	"itemtracker/internal/config"
	"itemtracker/internal/jobs"
	"itemtracker/internal/logging"
	"itemtracker/internal/repository"
	"itemtracker/internal/server"
	"itemtracker/internal/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	itemRepo := repository.NewItemRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	itemService := service.NewItemService(itemRepo, nil, cfg.Items.DefaultPlatform)
	lookupService := service.NewLookupService(lookupRepo)
	userService := service.NewUserService(accountRepo, cfg.Auth)

	digest := jobs.NewDigestJob(itemRepo, nil, logger)
	if cfg.Digest.Enabled {
		if err := digest.Start(cfg.Digest.Schedule); err != nil {
			logger.Fatal("digest schedule invalid", zap.String("schedule", cfg.Digest.Schedule), zap.Error(err))
		}
	}

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(itemService, lookupService, userService, logger)

	logger.Info("starting HTTP server",
		zap.String("addr", serverAddr),
		zap.String("environment", cfg.Environment.Name),
	)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	digest.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}
}
