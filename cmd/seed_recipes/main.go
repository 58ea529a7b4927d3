package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pageza/recipebook/backend/config"
	"github.com/pageza/recipebook/backend/internal/database"
	"github.com/pageza/recipebook/backend/internal/importer"
	"github.com/pageza/recipebook/backend/internal/logger"
	"github.com/pageza/recipebook/backend/internal/service"
)

// Imports a list of recipe pages for the default user. URLs come from the
// command line or from -file, one per line; blank lines and # comments are skipped.
func main() {
	file := flag.String("file", "", "file with one recipe URL per line")
	delay := flag.Duration("delay", time.Second, "pause between imports")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zapLogger := logger.New(cfg.Environment)
	defer func() { _ = zapLogger.Sync() }()

	urls := flag.Args()
	if *file != "" {
		fromFile, err := readURLs(*file)
		if err != nil {
			zapLogger.Fatal("Failed to read url file", zap.String("file", *file), zap.Error(err))
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		zapLogger.Fatal("No recipe URLs given")
	}

	ctx := context.Background()
	st, err := database.Open(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to open store", zap.Error(err))
	}
	defer func() { _ = st.Close(ctx) }()

	fetcher := importer.New(importer.NewHTTPClient(cfg.ImportTimeout), cfg.ImportUserAgent, zapLogger)
	recipes := service.NewRecipeService(st, fetcher, nil, zapLogger)

	imported := 0
	for i, url := range urls {
		if i > 0 {
			time.Sleep(*delay)
		}
		if _, err := recipes.ImportRecipe(ctx, cfg.DefaultUserID, url); err != nil {
			zapLogger.Warn("Failed to import recipe", zap.String("url", url), zap.Error(err))
			continue
		}
		imported++
	}
	zapLogger.Info("Seeding finished", zap.Int("imported", imported), zap.Int("total", len(urls)))
}

func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
