package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/store"
	"go.uber.org/zap"
)

// CategoryService handles category operations
type CategoryService struct {
	categories store.Repository[model.Category]
	recipes    store.Repository[model.Recipe]
	logger     *zap.Logger
}

// NewCategoryService creates a new CategoryService instance
func NewCategoryService(s store.Store, logger *zap.Logger) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{
		categories: s.Categories(),
		recipes:    s.Recipes(),
		logger:     logger,
	}
}

// ListCategories returns the owner's categories by display order with their recipe counts
func (s *CategoryService) ListCategories(ctx context.Context, ownerID string) ([]model.CategoryResponse, error) {
	categories, err := s.sortedCategories(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	recipes, err := s.recipes.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	out := make([]model.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toResponse(c, countIn(recipes, c.ID)))
	}
	return out, nil
}

// CreateCategory appends a category after the owner's last one.
// Concurrent creations for one owner can end up with the same display order.
func (s *CategoryService) CreateCategory(ctx context.Context, ownerID string, req *model.CategoryCreateRequest) (*model.CategoryResponse, error) {
	existing, err := s.categories.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	maxOrder := -1
	for _, c := range existing {
		if c.DisplayOrder > maxOrder {
			maxOrder = c.DisplayOrder
		}
	}

	now := time.Now().UTC()
	category := model.Category{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Name:         req.Name,
		Color:        req.Color,
		DisplayOrder: maxOrder + 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.categories.Create(ctx, &category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Debug("category created",
		zap.String("owner_id", ownerID),
		zap.String("category_id", category.ID),
		zap.Int("display_order", category.DisplayOrder),
	)
	resp := toResponse(category, 0)
	return &resp, nil
}

// UpdateCategory overwrites the name, color and display order of a category
func (s *CategoryService) UpdateCategory(ctx context.Context, ownerID, id string, req *model.CategoryUpdateRequest) (*model.CategoryResponse, error) {
	category, err := s.categories.Get(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err, "failed to get category")
	}

	category.Name = req.Name
	category.Color = req.Color
	category.DisplayOrder = req.DisplayOrder
	category.UpdatedAt = time.Now().UTC()
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, notFound(err, "failed to update category")
	}

	count, err := s.countRecipes(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(*category, count)
	return &resp, nil
}

// DeleteCategory removes the category from every recipe filed under it and
// then deletes it. The recipe updates are not atomic: if one fails the
// category is kept and recipes already updated stay updated.
func (s *CategoryService) DeleteCategory(ctx context.Context, ownerID, id string) error {
	if _, err := s.categories.Get(ctx, ownerID, id); err != nil {
		return notFound(err, "failed to get category")
	}

	recipes, err := s.recipes.List(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to list recipes: %w", err)
	}

	updated := 0
	for i := range recipes {
		recipe := &recipes[i]
		if !recipe.CategoryIDs.Contains(id) {
			continue
		}
		recipe.CategoryIDs = recipe.CategoryIDs.Without(id)
		recipe.UpdatedAt = time.Now().UTC()
		if err := s.recipes.Update(ctx, recipe); err != nil {
			s.logger.Error("failed to detach category from recipe",
				zap.String("category_id", id),
				zap.String("recipe_id", recipe.ID),
				zap.Int("detached", updated),
				zap.Error(err),
			)
			return fmt.Errorf("failed to update recipe %s: %w", recipe.ID, err)
		}
		updated++
	}

	if err := s.categories.Delete(ctx, ownerID, id); err != nil {
		return notFound(err, "failed to delete category")
	}

	s.logger.Info("category deleted",
		zap.String("owner_id", ownerID),
		zap.String("category_id", id),
		zap.Int("recipes_updated", updated),
	)
	return nil
}

func (s *CategoryService) sortedCategories(ctx context.Context, ownerID string) ([]model.Category, error) {
	categories, err := s.categories.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	sortByDisplayOrder(categories)
	return categories, nil
}

func (s *CategoryService) countRecipes(ctx context.Context, ownerID, categoryID string) (int, error) {
	recipes, err := s.recipes.List(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to list recipes: %w", err)
	}
	return countIn(recipes, categoryID), nil
}

func countIn(recipes []model.Recipe, categoryID string) int {
	count := 0
	for _, r := range recipes {
		if r.CategoryIDs.Contains(categoryID) {
			count++
		}
	}
	return count
}

func sortByDisplayOrder(categories []model.Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].DisplayOrder < categories[j].DisplayOrder
	})
}

func toResponse(c model.Category, count int) model.CategoryResponse {
	return model.CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Color:        c.Color,
		DisplayOrder: c.DisplayOrder,
		RecipeCount:  count,
	}
}

// notFound maps a store miss to ErrNotFound and wraps anything else
func notFound(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
