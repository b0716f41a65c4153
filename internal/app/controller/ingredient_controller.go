package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mlarina/foodgram-backend/internal/app/service"
	apperrors "github.com/mlarina/foodgram-backend/internal/errors"
	"github.com/mlarina/foodgram-backend/internal/middleware"
)

type IngredientController struct {
	ingredientService service.IngredientService
}

func NewIngredientController(ingredientService service.IngredientService) *IngredientController {
	return &IngredientController{ingredientService: ingredientService}
}

// ListIngredients returns the ingredient catalog, optionally narrowed by
// a case-insensitive name prefix
// GET /api/v1/ingredients?name=<prefix>
func (ctrl *IngredientController) ListIngredients(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ingredients, err := ctrl.ingredientService.ListIngredients(c.Query("name"))
	if err != nil {
		log.Error("Failed to list ingredients", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, ingredients)
}

// GetIngredient returns one catalog entry
// GET /api/v1/ingredients/:id
func (ctrl *IngredientController) GetIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ingredient, err := ctrl.ingredientService.GetIngredient(id)
	if err != nil {
		if errors.Is(err, service.ErrIngredientNotFound) {
			apperrors.NotFound(c, apperrors.IngredientNotFound, "Ingredient not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, ingredient)
}
