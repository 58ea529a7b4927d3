package service

import (
	"encoding/json"
	"testing"

	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipeFromJSON(t *testing.T, raw string, categories ...string) model.Recipe {
	t.Helper()
	var doc model.Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return model.Recipe{ID: "r1", OwnerID: "owner", RawContent: doc, CategoryIDs: categories}
}

func TestProjectCardImages(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []model.CardImage
	}{
		{
			name: "bare string",
			raw:  `{"image":"http://x/img.jpg"}`,
			want: []model.CardImage{{URL: "http://x/img.jpg"}},
		},
		{
			name: "numeric string width",
			raw:  `{"image":{"url":"http://x/a.jpg","width":"300","height":200}}`,
			want: []model.CardImage{{URL: "http://x/a.jpg", Width: 300, Height: 200}},
		},
		{
			name: "unparseable width",
			raw:  `{"image":[{"url":"http://x/a.jpg","width":"abc","height":"1.5e2"}]}`,
			want: []model.CardImage{{URL: "http://x/a.jpg", Width: 0, Height: 150}},
		},
		{
			name: "mixed list",
			raw:  `{"image":["http://x/1.jpg",{"url":"http://x/2.jpg"},{"width":10},42]}`,
			want: []model.CardImage{{URL: "http://x/1.jpg"}, {URL: "http://x/2.jpg"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := ProjectCard(recipeFromJSON(t, tt.raw))
			assert.Equal(t, tt.want, card.Image)
		})
	}
}

func TestProjectCardFields(t *testing.T) {
	recipe := recipeFromJSON(t, `{
		"@type": "Recipe",
		"name": "Pancakes",
		"description": "Fluffy",
		"url": "https://example.com/pancakes",
		"recipeIngredient": ["2 eggs", 3, true, {"amount": 1}],
		"recipeInstructions": [
			"Mix",
			{"@type": "HowToStep", "text": "Fry"},
			{"@type": "HowToStep", "name": "no text"},
			{"@type": "HowToSection", "itemListElement": [
				{"@type": "HowToStep", "text": "Flip"},
				"Serve"
			]},
			7
		],
		"nutrition": {"calories": "240 kcal", "proteinContent": 6, "unsaturatedFatContent": "1 g"},
		"unknown": {"deep": [1, 2]}
	}`, "c1", "c2")

	card := ProjectCard(recipe)

	assert.Equal(t, "r1", card.ID)
	assert.Equal(t, "Pancakes", card.Name)
	assert.Equal(t, "Fluffy", card.Description)
	assert.Equal(t, "https://example.com/pancakes", card.URL)
	assert.Equal(t, []string{"2 eggs", "3", "true", `{"amount":1}`}, card.Ingredients)
	assert.Equal(t, []string{"Mix", "Fry", "Flip", "Serve"}, card.Instructions)
	require.NotNil(t, card.Nutrition)
	assert.Equal(t, model.Nutrition{Calories: "240 kcal", ProteinContent: "6"}, *card.Nutrition)
	assert.Equal(t, []string{"c1", "c2"}, card.CategoryIDs)
}

func TestProjectCardMissingFields(t *testing.T) {
	card := ProjectCard(recipeFromJSON(t, `{"name": 5, "nutrition": "lots", "recipeInstructions": "Just cook it"}`))

	assert.Empty(t, card.Name)
	assert.Nil(t, card.Image)
	assert.Nil(t, card.Ingredients)
	assert.Nil(t, card.Nutrition)
	assert.Equal(t, []string{"Just cook it"}, card.Instructions)
	assert.Equal(t, []string{}, card.CategoryIDs)

	b, err := json.Marshal(card)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "nutrition")
	assert.Contains(t, string(b), `"categoryIds":[]`)
}

func TestProjectCardDoesNotMutateInput(t *testing.T) {
	recipe := recipeFromJSON(t, `{"image":{"url":"http://x/a.jpg","width":"300"},"recipeIngredient":["a"]}`, "c1")
	before, err := json.Marshal(recipe)
	require.NoError(t, err)

	first := ProjectCard(recipe)
	first.CategoryIDs[0] = "changed"
	second := ProjectCard(recipe)

	after, err := json.Marshal(recipe)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
	assert.Equal(t, []string{"c1"}, second.CategoryIDs)
}
