package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/store"
	"go.uber.org/zap"
)

// UncategorizedGroup collects recipes that are not filed under any category
const UncategorizedGroup = "Uncategorized"

// RecipeService handles recipe operations
type RecipeService struct {
	recipes    store.Repository[model.Recipe]
	categories store.Repository[model.Category]
	fetcher    RecipeFetcher
	archiver   Archiver
	logger     *zap.Logger
}

// NewRecipeService creates a new RecipeService instance. archiver may be nil.
func NewRecipeService(s store.Store, fetcher RecipeFetcher, archiver Archiver, logger *zap.Logger) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeService{
		recipes:    s.Recipes(),
		categories: s.Categories(),
		fetcher:    fetcher,
		archiver:   archiver,
		logger:     logger,
	}
}

// ListCards projects every recipe of the owner
func (s *RecipeService) ListCards(ctx context.Context, ownerID string) ([]model.RecipeCard, error) {
	recipes, err := s.recipes.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	cards := make([]model.RecipeCard, 0, len(recipes))
	for _, r := range recipes {
		cards = append(cards, ProjectCard(r))
	}
	return cards, nil
}

// ListRecipes returns the owner's stored recipes, or only the one with id when
// id is set. An unknown id yields an empty list.
func (s *RecipeService) ListRecipes(ctx context.Context, ownerID, id string) ([]model.Recipe, error) {
	if id == "" {
		recipes, err := s.recipes.List(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("failed to list recipes: %w", err)
		}
		return recipes, nil
	}

	recipe, err := s.recipes.Get(ctx, ownerID, id)
	if errors.Is(err, store.ErrNotFound) {
		return []model.Recipe{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return []model.Recipe{*recipe}, nil
}

// DeleteRecipe removes one of the owner's recipes
func (s *RecipeService) DeleteRecipe(ctx context.Context, ownerID, id string) error {
	if err := s.recipes.Delete(ctx, ownerID, id); err != nil {
		return notFound(err, "failed to delete recipe")
	}
	return nil
}

// SetCategories replaces the categories a recipe is filed under. Duplicate
// ids are dropped, the first occurrence keeps its position.
func (s *RecipeService) SetCategories(ctx context.Context, ownerID, id string, categoryIDs []string) (*model.RecipeCard, error) {
	recipe, err := s.recipes.Get(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err, "failed to get recipe")
	}

	recipe.CategoryIDs = dedupe(categoryIDs)
	recipe.UpdatedAt = time.Now().UTC()
	if err := s.recipes.Update(ctx, recipe); err != nil {
		return nil, notFound(err, "failed to update recipe")
	}

	card := ProjectCard(*recipe)
	return &card, nil
}

func dedupe(ids []string) model.StringList {
	out := make(model.StringList, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// GroupByCategory files the owner's recipe cards under their category names.
// Groups follow category display order with Uncategorized last, a recipe
// appears once per category it references, and empty groups are dropped.
// Categories sharing a name share a group.
func (s *RecipeService) GroupByCategory(ctx context.Context, ownerID string) (model.RecipeGroups, error) {
	recipes, err := s.recipes.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	categories, err := s.categories.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	sortByDisplayOrder(categories)

	var groups model.RecipeGroups
	groupIndex := make(map[string]int)
	addGroup := func(name string) int {
		if i, ok := groupIndex[name]; ok {
			return i
		}
		groups = append(groups, model.RecipeGroup{Name: name})
		groupIndex[name] = len(groups) - 1
		return len(groups) - 1
	}

	byCategory := make(map[string]int, len(categories))
	for _, c := range categories {
		byCategory[c.ID] = addGroup(c.Name)
	}
	uncategorized := addGroup(UncategorizedGroup)

	for _, r := range recipes {
		card := ProjectCard(r)
		if len(r.CategoryIDs) == 0 {
			groups[uncategorized].Cards = append(groups[uncategorized].Cards, card)
			continue
		}
		filed := make(map[int]bool, len(r.CategoryIDs))
		for _, categoryID := range r.CategoryIDs {
			i, ok := byCategory[categoryID]
			if !ok || filed[i] {
				continue
			}
			filed[i] = true
			groups[i].Cards = append(groups[i].Cards, card)
		}
	}

	nonEmpty := make(model.RecipeGroups, 0, len(groups))
	for _, g := range groups {
		if len(g.Cards) > 0 {
			nonEmpty = append(nonEmpty, g)
		}
	}
	return nonEmpty, nil
}

// ImportRecipe fetches rawURL, stores the Recipe found in it for the owner and
// returns the Recipe JSON as it appeared on the page
func (s *RecipeService) ImportRecipe(ctx context.Context, ownerID, rawURL string) ([]byte, error) {
	raw, err := s.fetcher.Import(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	var content model.Document
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("failed to decode recipe: %w", err)
	}

	now := time.Now().UTC()
	recipe := model.Recipe{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		RawContent:  content,
		CategoryIDs: model.StringList{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.recipes.Create(ctx, &recipe); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	s.logger.Info("recipe imported",
		zap.String("owner_id", ownerID),
		zap.String("recipe_id", recipe.ID),
		zap.String("url", rawURL),
	)

	s.archive(ctx, recipe, raw)
	return raw, nil
}

// archive keeps a copy of the imported payload. Failures are logged only.
func (s *RecipeService) archive(ctx context.Context, recipe model.Recipe, raw []byte) {
	if s.archiver == nil {
		return
	}
	key := path.Join("imports", recipe.OwnerID, recipe.ID+".json")
	if err := s.archiver.Put(ctx, key, raw, "application/json"); err != nil {
		s.logger.Warn("failed to archive imported recipe",
			zap.String("recipe_id", recipe.ID),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
