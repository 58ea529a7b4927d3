package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebook/backend/internal/middleware"
	"github.com/pageza/recipebook/backend/internal/service"
	"go.uber.org/zap"
)

type RecipeImportHandler struct {
	service service.IRecipeService
	logger  *zap.Logger
}

func NewRecipeImportHandler(svc service.IRecipeService, logger *zap.Logger) *RecipeImportHandler {
	return &RecipeImportHandler{service: svc, logger: logger}
}

func (h *RecipeImportHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/recipeimport", h.ImportRecipe)
}

// ImportRecipe stores the recipe found at ?url= and echoes its JSON unchanged
func (h *RecipeImportHandler) ImportRecipe(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	raw, err := h.service.ImportRecipe(c.Request.Context(), ownerID, url)
	if err != nil {
		respondError(c, h.logger, err, "Failed to import recipe")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
