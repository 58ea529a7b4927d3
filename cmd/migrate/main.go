package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pageza/recipebook/backend/config"
	"github.com/pageza/recipebook/backend/internal/database"
	"github.com/pageza/recipebook/backend/internal/logger"
)

func main() {
	driver := flag.String("driver", "", "store driver to migrate (defaults to STORE_DRIVER)")
	flag.Parse()

	_ = godotenv.Load()
	if *driver != "" {
		_ = os.Setenv("STORE_DRIVER", *driver)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zapLogger := logger.New(cfg.Environment)
	defer func() { _ = zapLogger.Sync() }()

	// Opening a store creates its tables or indexes
	ctx := context.Background()
	st, err := database.Open(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Migration failed", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	if err := st.Close(ctx); err != nil {
		zapLogger.Warn("Failed to close store", zap.Error(err))
	}
	zapLogger.Info("Schema is up to date", zap.String("driver", cfg.StoreDriver))
}
