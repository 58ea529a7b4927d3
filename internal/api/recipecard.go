package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebook/backend/internal/middleware"
	"github.com/pageza/recipebook/backend/internal/service"
	"go.uber.org/zap"
)

type RecipeCardHandler struct {
	service service.IRecipeService
	logger  *zap.Logger
}

func NewRecipeCardHandler(svc service.IRecipeService, logger *zap.Logger) *RecipeCardHandler {
	return &RecipeCardHandler{service: svc, logger: logger}
}

func (h *RecipeCardHandler) RegisterRoutes(router gin.IRouter) {
	cards := router.Group("/recipecards")
	{
		cards.GET("", h.ListCards)
		cards.GET("/grouped", h.GroupedCards)
		cards.DELETE("/:id", h.DeleteRecipe)
		cards.PUT("/:id/categories", h.SetCategories)
	}
}

func (h *RecipeCardHandler) ListCards(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	cards, err := h.service.ListCards(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch recipes")
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (h *RecipeCardHandler) GroupedCards(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	groups, err := h.service.GroupByCategory(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to group recipes")
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (h *RecipeCardHandler) DeleteRecipe(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRecipe(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Failed to delete recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
	})
}

// SetCategories takes a JSON array of category ids
func (h *RecipeCardHandler) SetCategories(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	var categoryIDs []string
	if err := c.ShouldBindJSON(&categoryIDs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, err := h.service.SetCategories(c.Request.Context(), ownerID, c.Param("id"), categoryIDs)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update recipe categories")
		return
	}
	c.JSON(http.StatusOK, card)
}
