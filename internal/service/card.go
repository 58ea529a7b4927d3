package service

import (
	"encoding/json"

	"github.com/pageza/recipebook/backend/internal/jsonld"
	"github.com/pageza/recipebook/backend/internal/model"
)

// ProjectCard flattens a stored recipe into its display card. It never fails:
// anything missing or of the wrong shape is left out of the card.
func ProjectCard(recipe model.Recipe) model.RecipeCard {
	raw := map[string]any(recipe.RawContent)

	card := model.RecipeCard{
		ID:           recipe.ID,
		Image:        projectImages(raw["image"]),
		Ingredients:  projectIngredients(raw["recipeIngredient"]),
		Instructions: projectInstructions(raw["recipeInstructions"]),
		Nutrition:    projectNutrition(raw["nutrition"]),
		CategoryIDs:  append([]string{}, recipe.CategoryIDs...),
	}
	card.Name, _ = jsonld.String(raw, "name")
	card.Description, _ = jsonld.String(raw, "description")
	card.URL, _ = jsonld.String(raw, "url")
	return card
}

func projectImages(v any) []model.CardImage {
	items := jsonld.List(v)
	if items == nil {
		return nil
	}
	images := make([]model.CardImage, 0, len(items))
	for _, item := range items {
		switch img := item.(type) {
		case string:
			images = append(images, model.CardImage{URL: img})
		case map[string]any:
			url, ok := jsonld.String(img, "url")
			if !ok {
				continue
			}
			images = append(images, model.CardImage{
				URL:    url,
				Width:  jsonld.Int(img["width"]),
				Height: jsonld.Int(img["height"]),
			})
		}
	}
	return images
}

func projectIngredients(v any) []string {
	items := jsonld.List(v)
	if items == nil {
		return nil
	}
	ingredients := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := stringify(item); ok {
			ingredients = append(ingredients, s)
		}
	}
	return ingredients
}

// stringify renders scalars as text and anything else as compact JSON
func stringify(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	if s, ok := jsonld.Text(v); ok {
		return s, true
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(b), true
}

func projectInstructions(v any) []string {
	items := jsonld.List(v)
	if items == nil {
		return nil
	}
	return appendSteps(make([]string, 0, len(items)), items)
}

// appendSteps keeps plain strings and the text of step objects. Sections are
// flattened into their steps.
func appendSteps(steps []string, items []any) []string {
	for _, item := range items {
		switch step := item.(type) {
		case string:
			steps = append(steps, step)
		case map[string]any:
			if text, ok := jsonld.String(step, "text"); ok {
				steps = append(steps, text)
				continue
			}
			if children, ok := jsonld.Get(step, "itemListElement"); ok {
				steps = appendSteps(steps, jsonld.List(children))
			}
		}
	}
	return steps
}

func projectNutrition(v any) *model.Nutrition {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	field := func(key string) string {
		prop, ok := jsonld.Get(obj, key)
		if !ok {
			return ""
		}
		s, _ := jsonld.Text(prop)
		return s
	}
	return &model.Nutrition{
		Calories:            field("calories"),
		CarbohydrateContent: field("carbohydrateContent"),
		CholesterolContent:  field("cholesterolContent"),
		FatContent:          field("fatContent"),
		FiberContent:        field("fiberContent"),
		ProteinContent:      field("proteinContent"),
		SaturatedFatContent: field("saturatedFatContent"),
		ServingSize:         field("servingSize"),
		SodiumContent:       field("sodiumContent"),
		SugarContent:        field("sugarContent"),
		TransFatContent:     field("transFatContent"),
	}
}
