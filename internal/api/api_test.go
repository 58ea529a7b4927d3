package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebook/backend/internal/importer"
	"github.com/pageza/recipebook/backend/internal/middleware"
	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/service"
	"github.com/pageza/recipebook/backend/internal/store"
	"github.com/pageza/recipebook/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testOwner = "00000000-0000-0000-0000-000000000001"

func init() {
	gin.SetMode(gin.TestMode)
}

const recipePage = `<html><head>
<script type="application/ld+json">{"@context":"https://schema.org","@graph":[
	{"@type":"Organization","name":"Site"},
	{"@type":"Recipe","name":"Shakshuka","image":"http://x/img.jpg","recipeIngredient":["eggs","tomatoes"]}
]}</script>
</head><body></body></html>`

func newRecipeSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/shakshuka", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(recipePage))
	})
	mux.HandleFunc("/blog", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>no recipe here</body></html>`))
	})
	mux.HandleFunc("/down", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupTestRouter(t *testing.T, ownerID string) (*gin.Engine, store.Store) {
	t.Helper()
	s := testhelpers.SetupSQLiteStore(t)
	fetcher := importer.New(importer.NewHTTPClient(5*time.Second), "test", nil)

	router := gin.New()
	if ownerID != "" {
		router.Use(middleware.Owner(ownerID))
	}
	RegisterRoutes(router, Services{
		Categories: service.NewCategoryService(s, nil),
		Recipes:    service.NewRecipeService(s, fetcher, nil, nil),
		Store:      s,
	}, zap.NewNop())
	return router, s
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	router, _ := setupTestRouter(t, testOwner)

	w := doRequest(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCategoryEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t, testOwner)

	w := doRequest(t, router, http.MethodPost, "/categories", map[string]string{"color": "#fff"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPost, "/categories", map[string]string{"name": "Dinner", "color": "#123456"})
	require.Equal(t, http.StatusOK, w.Code)
	dinner := decode[model.CategoryResponse](t, w)
	assert.Equal(t, "Dinner", dinner.Name)
	assert.Equal(t, 0, dinner.DisplayOrder)
	assert.Equal(t, 0, dinner.RecipeCount)

	w = doRequest(t, router, http.MethodPost, "/categories", map[string]string{"name": "Lunch"})
	require.Equal(t, http.StatusOK, w.Code)
	lunch := decode[model.CategoryResponse](t, w)
	assert.Equal(t, 1, lunch.DisplayOrder)

	w = doRequest(t, router, http.MethodPut, "/categories/"+dinner.ID, map[string]any{"name": "Supper", "displayOrder": 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]model.CategoryResponse](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, "Lunch", list[0].Name)
	assert.Equal(t, "Supper", list[1].Name)

	w = doRequest(t, router, http.MethodPut, "/categories/missing", map[string]any{"name": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())

	w = doRequest(t, router, http.MethodPut, "/categories/"+lunch.ID, map[string]any{"displayOrder": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/categories/"+lunch.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, router, http.MethodDelete, "/categories/"+lunch.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportAndBrowse(t *testing.T) {
	site := newRecipeSite(t)
	router, _ := setupTestRouter(t, testOwner)

	w := doRequest(t, router, http.MethodGet, "/recipeimport?url="+url.QueryEscape(site.URL+"/shakshuka"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"@type":"Recipe","name":"Shakshuka","image":"http://x/img.jpg","recipeIngredient":["eggs","tomatoes"]}`, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/recipecards", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cards := decode[[]model.RecipeCard](t, w)
	require.Len(t, cards, 1)
	card := cards[0]
	assert.Equal(t, "Shakshuka", card.Name)
	assert.Equal(t, []model.CardImage{{URL: "http://x/img.jpg"}}, card.Image)
	assert.Equal(t, []string{"eggs", "tomatoes"}, card.Ingredients)

	w = doRequest(t, router, http.MethodGet, "/recipe?id="+card.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	recipes := decode[[]model.Recipe](t, w)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Shakshuka", recipes[0].RawContent["name"])

	w = doRequest(t, router, http.MethodGet, "/recipecards/grouped", nil)
	require.Equal(t, http.StatusOK, w.Code)
	grouped := decode[map[string][]model.RecipeCard](t, w)
	assert.Len(t, grouped[service.UncategorizedGroup], 1)

	w = doRequest(t, router, http.MethodPost, "/categories", map[string]string{"name": "Brunch"})
	require.Equal(t, http.StatusOK, w.Code)
	brunch := decode[model.CategoryResponse](t, w)

	w = doRequest(t, router, http.MethodPut, "/recipecards/"+card.ID+"/categories", []string{brunch.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{brunch.ID}, decode[model.RecipeCard](t, w).CategoryIDs)

	w = doRequest(t, router, http.MethodGet, "/recipecards/grouped", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"Brunch":[`+mustJSON(t, withCategories(card, brunch.ID))+`]}`, w.Body.String())

	w = doRequest(t, router, http.MethodPut, "/recipecards/"+card.ID+"/categories", map[string]string{"not": "a list"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/recipecards/"+card.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, router, http.MethodDelete, "/recipecards/"+card.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doRequest(t, router, http.MethodPut, "/recipecards/"+card.ID+"/categories", []string{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func withCategories(card model.RecipeCard, ids ...string) model.RecipeCard {
	card.CategoryIDs = ids
	return card
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestImportFailures(t *testing.T) {
	site := newRecipeSite(t)
	router, _ := setupTestRouter(t, testOwner)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"missing url", "", http.StatusBadRequest},
		{"not http", "?url=" + url.QueryEscape("ftp://example.com/x"), http.StatusBadRequest},
		{"no recipe", "?url=" + url.QueryEscape(site.URL+"/blog"), http.StatusUnprocessableEntity},
		{"upstream error", "?url=" + url.QueryEscape(site.URL+"/down"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodGet, "/recipeimport"+tt.query, nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, decode[map[string]string](t, w), "error")
		})
	}

	w := doRequest(t, router, http.MethodGet, "/recipecards", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestOwnershipIsolation(t *testing.T) {
	s := testhelpers.SetupSQLiteStore(t)
	services := Services{
		Categories: service.NewCategoryService(s, nil),
		Recipes:    service.NewRecipeService(s, nil, nil, nil),
		Store:      s,
	}
	alice := gin.New()
	alice.Use(middleware.Owner("alice"))
	RegisterRoutes(alice, services, zap.NewNop())
	bob := gin.New()
	bob.Use(middleware.Owner("bob"))
	RegisterRoutes(bob, services, zap.NewNop())

	w := doRequest(t, alice, http.MethodPost, "/categories", map[string]string{"name": "Mine"})
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[model.CategoryResponse](t, w)

	assert.Equal(t, http.StatusNotFound, doRequest(t, bob, http.MethodPut, "/categories/"+mine.ID, map[string]string{"name": "Ours"}).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, bob, http.MethodDelete, "/categories/"+mine.ID, nil).Code)

	w = doRequest(t, bob, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestMissingOwnerIsRejected(t *testing.T) {
	router, _ := setupTestRouter(t, "")

	w := doRequest(t, router, http.MethodGet, "/categories", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) ListCards(ctx context.Context, ownerID string) ([]model.RecipeCard, error) {
	args := m.Called(ctx, ownerID)
	cards, _ := args.Get(0).([]model.RecipeCard)
	return cards, args.Error(1)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, ownerID, id string) ([]model.Recipe, error) {
	args := m.Called(ctx, ownerID, id)
	recipes, _ := args.Get(0).([]model.Recipe)
	return recipes, args.Error(1)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, ownerID, id string) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *MockRecipeService) SetCategories(ctx context.Context, ownerID, id string, categoryIDs []string) (*model.RecipeCard, error) {
	args := m.Called(ctx, ownerID, id, categoryIDs)
	card, _ := args.Get(0).(*model.RecipeCard)
	return card, args.Error(1)
}

func (m *MockRecipeService) GroupByCategory(ctx context.Context, ownerID string) (model.RecipeGroups, error) {
	args := m.Called(ctx, ownerID)
	groups, _ := args.Get(0).(model.RecipeGroups)
	return groups, args.Error(1)
}

func (m *MockRecipeService) ImportRecipe(ctx context.Context, ownerID, rawURL string) ([]byte, error) {
	args := m.Called(ctx, ownerID, rawURL)
	raw, _ := args.Get(0).([]byte)
	return raw, args.Error(1)
}

func TestStoreFailuresAreInternalErrors(t *testing.T) {
	recipes := new(MockRecipeService)
	recipes.On("ListCards", mock.Anything, testOwner).Return(nil, errors.New("connection reset"))
	recipes.On("GroupByCategory", mock.Anything, testOwner).Return(model.RecipeGroups{
		{Name: "B", Cards: []model.RecipeCard{{ID: "1", Name: "Second"}}},
		{Name: "A", Cards: []model.RecipeCard{{ID: "2", Name: "First"}}},
	}, nil)

	router := gin.New()
	router.Use(middleware.Owner(testOwner))
	NewRecipeCardHandler(recipes, zap.NewNop()).RegisterRoutes(router)

	w := doRequest(t, router, http.MethodGet, "/recipecards", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch recipes"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "connection reset")

	w = doRequest(t, router, http.MethodGet, "/recipecards/grouped", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Less(t, bytes.Index(w.Body.Bytes(), []byte(`"B"`)), bytes.Index(w.Body.Bytes(), []byte(`"A"`)))

	recipes.AssertExpectations(t)
}
