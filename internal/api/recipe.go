package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebook/backend/internal/middleware"
	"github.com/pageza/recipebook/backend/internal/service"
	"go.uber.org/zap"
)

// RecipeHandler serves stored recipes as they were imported
type RecipeHandler struct {
	service service.IRecipeService
	logger  *zap.Logger
}

func NewRecipeHandler(svc service.IRecipeService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{service: svc, logger: logger}
}

func (h *RecipeHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/recipe", h.ListRecipes)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	recipes, err := h.service.ListRecipes(c.Request.Context(), ownerID, c.Query("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch recipes")
		return
	}
	c.JSON(http.StatusOK, recipes)
}
