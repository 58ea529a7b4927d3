package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store drivers understood by STORE_DRIVER
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// StoreDriver selects the document store backend
	StoreDriver string

	// Database configuration (postgres)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// SQLitePath is the database file used by the sqlite driver
	SQLitePath string

	// Mongo configuration
	MongoURI             string
	MongoDatabase        string
	RecipesCollection    string
	CategoriesCollection string

	// DefaultUserID is the identity every request is served as
	DefaultUserID string

	// Recipe import
	ImportTimeout   time.Duration
	ImportUserAgent string

	// S3BucketName enables archiving of imported recipes when set
	S3BucketName string
	AWSRegion    string

	CORSAllowedOrigins []string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Environment:          GetEnvironment(),
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		ServerHost:           getEnv("SERVER_HOST", "0.0.0.0"),
		StoreDriver:          strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBUser:               getEnv("DB_USER", "postgres"),
		DBPassword:           getEnvOrSecret("DB_PASSWORD", "db_password"),
		DBName:               getEnv("DB_NAME", "recipebook"),
		DBSSLMode:            getEnv("DB_SSL_MODE", "disable"),
		SQLitePath:           getEnv("SQLITE_PATH", "recipebook.db"),
		MongoURI:             getEnvOrSecret("MONGO_URI", "mongo_uri"),
		MongoDatabase:        getEnv("MONGO_DATABASE", "recipebook"),
		RecipesCollection:    getEnv("RECIPES_COLLECTION", "recipes"),
		CategoriesCollection: getEnv("CATEGORIES_COLLECTION", "categories"),
		DefaultUserID:        getEnv("DEFAULT_USER_ID", "00000000-0000-0000-0000-000000000001"),
		ImportUserAgent:      getEnv("IMPORT_USER_AGENT", "RecipeBook/1.0 (+recipe import)"),
		S3BucketName:         os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:            os.Getenv("AWS_REGION"),
		CORSAllowedOrigins:   splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://frontend:5173")),
	}

	timeout, err := time.ParseDuration(getEnv("IMPORT_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid IMPORT_TIMEOUT: %w", err)
	}
	cfg.ImportTimeout = timeout

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// PostgresDSN builds the lib/pq connection string
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// getEnvOrSecret prefers the environment variable and falls back to a Docker secret
func getEnvOrSecret(key, secret string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return readSecret(secret)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
