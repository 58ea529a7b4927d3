package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebook/backend/internal/importer"
	"github.com/pageza/recipebook/backend/internal/service"
	"github.com/pageza/recipebook/backend/internal/store"
	"go.uber.org/zap"
)

// Services bundles what the handlers depend on
type Services struct {
	Categories service.ICategoryService
	Recipes    service.IRecipeService
	Store      store.Store
}

// RegisterRoutes mounts every handler on router
func RegisterRoutes(router gin.IRouter, svc Services, logger *zap.Logger) {
	NewHealthHandler(svc.Store).RegisterRoutes(router)
	NewCategoryHandler(svc.Categories, logger).RegisterRoutes(router)
	NewRecipeCardHandler(svc.Recipes, logger).RegisterRoutes(router)
	NewRecipeHandler(svc.Recipes, logger).RegisterRoutes(router)
	NewRecipeImportHandler(svc.Recipes, logger).RegisterRoutes(router)
}

// respondError maps service errors to status codes. Anything unexpected is
// logged and reported as a generic failure.
func respondError(c *gin.Context, logger *zap.Logger, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, importer.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, importer.ErrExtraction):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, importer.ErrFetch):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		logger.Error(msg,
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
