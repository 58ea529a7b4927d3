package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pageza/recipebook/backend/config"
	"github.com/pageza/recipebook/backend/internal/api"
	"github.com/pageza/recipebook/backend/internal/database"
	"github.com/pageza/recipebook/backend/internal/importer"
	"github.com/pageza/recipebook/backend/internal/logger"
	"github.com/pageza/recipebook/backend/internal/server"
	"github.com/pageza/recipebook/backend/internal/service"
)

func main() {
	// A missing .env file is fine, the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger := logger.New(cfg.Environment)
	defer func() { _ = zapLogger.Sync() }()

	ctx := context.Background()

	st, err := database.Open(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer func() { _ = st.Close(context.Background()) }()

	var archiver service.Archiver
	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		zapLogger.Fatal("Failed to configure S3", zap.Error(err))
	}
	if s3cfg != nil {
		archiver = s3cfg
		zapLogger.Info("Archiving imported recipes", zap.String("bucket", s3cfg.BucketName))
	}

	fetcher := importer.New(importer.NewHTTPClient(cfg.ImportTimeout), cfg.ImportUserAgent, zapLogger.Named("importer"))

	srv := server.New(cfg, api.Services{
		Categories: service.NewCategoryService(st, zapLogger.Named("categories")),
		Recipes:    service.NewRecipeService(st, fetcher, archiver, zapLogger.Named("recipes")),
		Store:      st,
	}, zapLogger)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			zapLogger.Error("Server error", zap.Error(err))
		}
	case sig := <-quit:
		zapLogger.Info("Received signal", zap.String("signal", sig.String()))
	}

	zapLogger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server shutdown error", zap.Error(err))
	}
	zapLogger.Info("Server stopped")
}
