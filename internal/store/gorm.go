package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/pageza/recipebook/backend/internal/model"
	"gorm.io/gorm"
)

// GormStore keeps recipes and categories in SQL tables
type GormStore struct {
	db         *gorm.DB
	recipes    ownedTable[model.Recipe]
	categories ownedTable[model.Category]
}

// NewGormStore wraps an open gorm connection. The tables must already exist.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:         db,
		recipes:    ownedTable[model.Recipe]{db: db},
		categories: ownedTable[model.Category]{db: db},
	}
}

func (s *GormStore) Recipes() Repository[model.Recipe] {
	return s.recipes
}

func (s *GormStore) Categories() Repository[model.Category] {
	return s.categories
}

// Ping checks the underlying connection
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool
func (s *GormStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type ownedTable[T Entity] struct {
	db *gorm.DB
}

func (t ownedTable[T]) Create(ctx context.Context, v *T) error {
	if err := t.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

func (t ownedTable[T]) Get(ctx context.Context, ownerID, id string) (*T, error) {
	var v T
	err := t.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return &v, nil
}

func (t ownedTable[T]) List(ctx context.Context, ownerID string) ([]T, error) {
	var out []T
	err := t.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return out, nil
}

func (t ownedTable[T]) Update(ctx context.Context, v *T) error {
	ownerID, id := (*v).Key()
	res := t.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Select("*").
		Omit("id", "owner_id", "created_at").
		Updates(v)
	if res.Error != nil {
		return fmt.Errorf("failed to update record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (t ownedTable[T]) Delete(ctx context.Context, ownerID, id string) error {
	res := t.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("failed to delete record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
