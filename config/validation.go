package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requiredByDriver lists the settings each store driver cannot run without
var requiredByDriver = map[string][]string{
	DriverPostgres: {"DB_HOST", "DB_PORT", "DB_USER", "DB_NAME"},
	DriverSQLite:   {"SQLITE_PATH"},
	DriverMongo:    {"MONGO_URI", "MONGO_DATABASE", "RECIPES_COLLECTION", "CATEGORIES_COLLECTION"},
}

// ValidateConfig checks that the configuration is usable and reports every problem at once
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"}.Error())
	}
	if cfg.DefaultUserID == "" {
		errs = append(errs, ValidationError{"DEFAULT_USER_ID", "is required"}.Error())
	}
	if cfg.ImportTimeout < 0 {
		errs = append(errs, ValidationError{"IMPORT_TIMEOUT", "must not be negative"}.Error())
	}

	required, ok := requiredByDriver[cfg.StoreDriver]
	if !ok {
		errs = append(errs, ValidationError{"STORE_DRIVER", fmt.Sprintf("unknown driver %q", cfg.StoreDriver)}.Error())
	}
	for _, key := range required {
		if cfg.value(key) == "" {
			errs = append(errs, ValidationError{key, "is required for driver " + cfg.StoreDriver}.Error())
		}
	}

	// In production the database password must come from the environment or a secret
	if cfg.StoreDriver == DriverPostgres && cfg.Environment == Production && cfg.DBPassword == "" {
		errs = append(errs, ValidationError{"DB_PASSWORD", "db_password secret is required in production"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}

func (c *Config) value(key string) string {
	switch key {
	case "DB_HOST":
		return c.DBHost
	case "DB_PORT":
		return c.DBPort
	case "DB_USER":
		return c.DBUser
	case "DB_NAME":
		return c.DBName
	case "SQLITE_PATH":
		return c.SQLitePath
	case "MONGO_URI":
		return c.MongoURI
	case "MONGO_DATABASE":
		return c.MongoDatabase
	case "RECIPES_COLLECTION":
		return c.RecipesCollection
	case "CATEGORIES_COLLECTION":
		return c.CategoriesCollection
	}
	return ""
}
