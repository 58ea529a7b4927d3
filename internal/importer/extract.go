package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrExtraction is the parent of every failure to find a recipe in a page
var ErrExtraction = errors.New("recipe extraction failed")

var (
	ErrNoScript  = fmt.Errorf("%w: no recipe script block found", ErrExtraction)
	ErrNoRecipe  = fmt.Errorf("%w: no recipe found within script block", ErrExtraction)
	ErrMalformed = fmt.Errorf("%w: malformed recipe json", ErrExtraction)
)

const ldJSONType = "application/ld+json"

// recipeMarkers is a cheap textual filter applied before any JSON parsing.
// It misses other spacings and array-valued @type, and can match a block that
// only mentions a Recipe in a nested object.
var recipeMarkers = []string{`"@type":"Recipe"`, `"@type": "Recipe"`}

// Extract returns the schema.org Recipe object embedded in an HTML page as the
// raw JSON bytes found in the page.
func Extract(page io.Reader) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	var blocks []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if typ, ok := s.Attr("type"); ok && strings.ToLower(typ) == ldJSONType {
			blocks = append(blocks, s.Text())
		}
	})
	if len(blocks) == 0 {
		return nil, ErrNoScript
	}

	for _, block := range blocks {
		if hasRecipeMarker(block) {
			return selectRecipe([]byte(block))
		}
	}
	return nil, ErrNoRecipe
}

func hasRecipeMarker(block string) bool {
	for _, marker := range recipeMarkers {
		if strings.Contains(block, marker) {
			return true
		}
	}
	return false
}

// selectRecipe unwraps a @graph bundle (or a top-level array) down to its
// first Recipe member. A plain object is returned as is.
func selectRecipe(block []byte) ([]byte, error) {
	block = bytes.TrimSpace(block)

	if len(block) > 0 && block[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(block, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return firstRecipe(items)
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(block, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	graph, ok := root["@graph"]
	if !ok || string(graph) == "null" {
		return block, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(graph, &items); err != nil {
		return nil, fmt.Errorf("%w: @graph is not an array", ErrMalformed)
	}
	return firstRecipe(items)
}

func firstRecipe(items []json.RawMessage) ([]byte, error) {
	for _, item := range items {
		var head struct {
			Type any `json:"@type"`
		}
		if err := json.Unmarshal(item, &head); err != nil {
			continue
		}
		if typ, ok := head.Type.(string); ok && typ == "Recipe" {
			return bytes.TrimSpace(item), nil
		}
	}
	return nil, ErrNoRecipe
}
