package service

import (
	"context"
	"errors"

	"github.com/pageza/recipebook/backend/internal/model"
)

// ErrNotFound is returned when an entity does not exist or belongs to someone else
var ErrNotFound = errors.New("not found")

// RecipeFetcher downloads a page and returns the Recipe JSON embedded in it
type RecipeFetcher interface {
	Import(ctx context.Context, rawURL string) ([]byte, error)
}

// Archiver stores a copy of imported payloads
type Archiver interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// ICategoryService defines the interface for category operations
type ICategoryService interface {
	ListCategories(ctx context.Context, ownerID string) ([]model.CategoryResponse, error)
	CreateCategory(ctx context.Context, ownerID string, req *model.CategoryCreateRequest) (*model.CategoryResponse, error)
	UpdateCategory(ctx context.Context, ownerID, id string, req *model.CategoryUpdateRequest) (*model.CategoryResponse, error)
	DeleteCategory(ctx context.Context, ownerID, id string) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListCards(ctx context.Context, ownerID string) ([]model.RecipeCard, error)
	ListRecipes(ctx context.Context, ownerID, id string) ([]model.Recipe, error)
	DeleteRecipe(ctx context.Context, ownerID, id string) error
	SetCategories(ctx context.Context, ownerID, id string, categoryIDs []string) (*model.RecipeCard, error)
	GroupByCategory(ctx context.Context, ownerID string) (model.RecipeGroups, error)
	ImportRecipe(ctx context.Context, ownerID, rawURL string) ([]byte, error)
}
