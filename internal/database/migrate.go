package database

import (
	"fmt"

	"github.com/pageza/recipebook/backend/internal/model"
	"gorm.io/gorm"
)

// Migrate creates or updates the recipes and categories tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Recipe{}, &model.Category{}); err != nil {
		return fmt.Errorf("failed to migrate %s schema: %w", db.Dialector.Name(), err)
	}
	return nil
}
