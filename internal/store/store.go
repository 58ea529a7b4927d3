// Package store persists recipes and categories. Every lookup is scoped by
// owner and a record owned by someone else is reported as ErrNotFound.
package store

import (
	"context"
	"errors"

	"github.com/pageza/recipebook/backend/internal/model"
)

// ErrNotFound is returned when a record does not exist for the given owner
var ErrNotFound = errors.New("record not found")

// Entity is a record stored under an owner
type Entity interface {
	model.Recipe | model.Category
	Key() (ownerID, id string)
}

// Repository is typed CRUD over one collection
type Repository[T Entity] interface {
	Create(ctx context.Context, v *T) error
	Get(ctx context.Context, ownerID, id string) (*T, error)
	List(ctx context.Context, ownerID string) ([]T, error)
	// Update replaces the stored record with the same owner and id
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, ownerID, id string) error
}

// Store is a document store holding both collections
type Store interface {
	Recipes() Repository[model.Recipe]
	Categories() Repository[model.Category]
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
