package model

import (
	"bytes"
	"encoding/json"
)

// RecipeCard is the display model of a stored recipe
type RecipeCard struct {
	ID           string      `json:"id"`
	Name         string      `json:"name,omitempty"`
	Description  string      `json:"description,omitempty"`
	URL          string      `json:"url,omitempty"`
	Image        []CardImage `json:"image"`
	Ingredients  []string    `json:"ingredients"`
	Instructions []string    `json:"instructions"`
	Nutrition    *Nutrition  `json:"nutrition,omitempty"`
	CategoryIDs  []string    `json:"categoryIds"`
}

// CardImage is one image of a recipe card. Width and Height are 0 when unknown.
type CardImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Nutrition mirrors schema.org NutritionInformation with every value as text
type Nutrition struct {
	Calories            string `json:"calories,omitempty"`
	CarbohydrateContent string `json:"carbohydrateContent,omitempty"`
	CholesterolContent  string `json:"cholesterolContent,omitempty"`
	FatContent          string `json:"fatContent,omitempty"`
	FiberContent        string `json:"fiberContent,omitempty"`
	ProteinContent      string `json:"proteinContent,omitempty"`
	SaturatedFatContent string `json:"saturatedFatContent,omitempty"`
	ServingSize         string `json:"servingSize,omitempty"`
	SodiumContent       string `json:"sodiumContent,omitempty"`
	SugarContent        string `json:"sugarContent,omitempty"`
	TransFatContent     string `json:"transFatContent,omitempty"`
}

// RecipeGroup is the set of cards filed under one category name
type RecipeGroup struct {
	Name  string
	Cards []RecipeCard
}

// RecipeGroups is an ordered name -> cards mapping. It encodes as a JSON
// object whose keys keep the slice order.
type RecipeGroups []RecipeGroup

// Get returns the cards of the named group
func (g RecipeGroups) Get(name string) ([]RecipeCard, bool) {
	for _, group := range g {
		if group.Name == name {
			return group.Cards, true
		}
	}
	return nil, false
}

// Names lists the group names in order
func (g RecipeGroups) Names() []string {
	names := make([]string, len(g))
	for i, group := range g {
		names[i] = group.Name
	}
	return names
}

func (g RecipeGroups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, group := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(group.Name)
		if err != nil {
			return nil, err
		}
		cards := group.Cards
		if cards == nil {
			cards = []RecipeCard{}
		}
		value, err := json.Marshal(cards)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
