package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mlarina/foodgram-backend/internal/app/model"
	"github.com/mlarina/foodgram-backend/internal/app/repository"
	"github.com/mlarina/foodgram-backend/internal/app/service"
	apperrors "github.com/mlarina/foodgram-backend/internal/errors"
	"github.com/mlarina/foodgram-backend/internal/middleware"
)

const defaultPageSize = 6

type RecipeController struct {
	recipeService       service.RecipeService
	relationService     service.RelationService
	shoppingListService service.ShoppingListService
}

func NewRecipeController(
	recipeService service.RecipeService,
	relationService service.RelationService,
	shoppingListService service.ShoppingListService,
) *RecipeController {
	return &RecipeController{
		recipeService:       recipeService,
		relationService:     relationService,
		shoppingListService: shoppingListService,
	}
}

// ListRecipes returns a filtered, paginated recipe listing
// GET /api/v1/recipes?tags=breakfast&tags=lunch&author=3&is_favorited=1&is_in_shopping_cart=1&page=1&limit=6
func (ctrl *RecipeController) ListRecipes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	filter := repository.RecipeFilter{
		TagSlugs: c.QueryArray("tags"),
		UserID:   userID,
	}

	if raw := c.Query("author"); raw != "" {
		authorID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "author must be a user ID")
			return
		}
		filter.AuthorID = uint(authorID)
	}

	var ok bool
	if filter.Favorited, ok = parseBoolFlag(c, "is_favorited"); !ok {
		return
	}
	if filter.InCart, ok = parseBoolFlag(c, "is_in_shopping_cart"); !ok {
		return
	}

	page, limit, ok := parsePagination(c)
	if !ok {
		return
	}
	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	details, total, err := ctrl.recipeService.ListRecipes(filter)
	if err != nil {
		log.Error("Failed to list recipes", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	subscribed, err := ctrl.relationService.SubscribedAuthorSet(userID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	results := make([]gin.H, 0, len(details))
	for i := range details {
		results = append(results, recipePayload(&details[i], subscribed[details[i].Recipe.AuthorID]))
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   total,
		"page":    page,
		"limit":   limit,
		"results": results,
	})
}

// GetRecipe returns one recipe with the viewer's relation flags
// GET /api/v1/recipes/:id
func (ctrl *RecipeController) GetRecipe(c *gin.Context) {
	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	detail, err := ctrl.recipeService.GetRecipe(recipeID, userID)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	isSubscribed, err := ctrl.relationService.IsSubscribed(userID, detail.Recipe.AuthorID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, recipePayload(detail, isSubscribed))
}

// CreateRecipe adds a recipe authored by the authenticated user
// POST /api/v1/recipes
func (ctrl *RecipeController) CreateRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var input service.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid recipe data")
		return
	}

	recipe, err := ctrl.recipeService.CreateRecipe(userID, input)
	if err != nil {
		if respondRecipeValidationError(c, err) {
			return
		}
		log.Error("Failed to create recipe", err, map[string]interface{}{
			"user_id": userID,
			"name":    input.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "recipe create")
		return
	}

	c.JSON(http.StatusCreated, recipePayload(&service.RecipeDetail{Recipe: recipe}, false))
}

// UpdateRecipe replaces a recipe's fields, tags and ingredients
// PATCH /api/v1/recipes/:id
func (ctrl *RecipeController) UpdateRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid recipe data")
		return
	}

	role, _ := middleware.GetUserRole(c)
	recipe, err := ctrl.recipeService.UpdateRecipe(userID, recipeID, input, role == model.RoleAdmin)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
		case errors.Is(err, service.ErrNotRecipeOwner):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzAuthorOnly, "Only the author can edit this recipe")
		default:
			if respondRecipeValidationError(c, err) {
				return
			}
			log.Error("Failed to update recipe", err, map[string]interface{}{
				"user_id":   userID,
				"recipe_id": recipeID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "recipe update")
		}
		return
	}

	detail, err := ctrl.recipeService.GetRecipe(recipe.ID, userID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, recipePayload(detail, false))
}

// DeleteRecipe removes a recipe together with its relation rows
// DELETE /api/v1/recipes/:id
func (ctrl *RecipeController) DeleteRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role, _ := middleware.GetUserRole(c)
	if err := ctrl.recipeService.DeleteRecipe(userID, recipeID, role == model.RoleAdmin); err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
		case errors.Is(err, service.ErrNotRecipeOwner):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzAuthorOnly, "Only the author can delete this recipe")
		default:
			log.Error("Failed to delete recipe", err, map[string]interface{}{
				"user_id":   userID,
				"recipe_id": recipeID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// AddFavorite marks a recipe as favorite
// POST /api/v1/recipes/:id/favorite
func (ctrl *RecipeController) AddFavorite(c *gin.Context) {
	ctrl.toggleRelation(c, service.RelationFavorite, true)
}

// RemoveFavorite unmarks a favorite recipe
// DELETE /api/v1/recipes/:id/favorite
func (ctrl *RecipeController) RemoveFavorite(c *gin.Context) {
	ctrl.toggleRelation(c, service.RelationFavorite, false)
}

// AddToShoppingCart puts a recipe into the shopping cart
// POST /api/v1/recipes/:id/shopping_cart
func (ctrl *RecipeController) AddToShoppingCart(c *gin.Context) {
	ctrl.toggleRelation(c, service.RelationShoppingCart, true)
}

// RemoveFromShoppingCart takes a recipe out of the shopping cart
// DELETE /api/v1/recipes/:id/shopping_cart
func (ctrl *RecipeController) RemoveFromShoppingCart(c *gin.Context) {
	ctrl.toggleRelation(c, service.RelationShoppingCart, false)
}

// DownloadShoppingCart renders the aggregated shopping list as a text
// attachment
// GET /api/v1/recipes/download_shopping_cart
func (ctrl *RecipeController) DownloadShoppingCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	report, err := ctrl.shoppingListService.BuildReport(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
			return
		}
		log.Error("Failed to build shopping list", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+report.Filename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report.Content))
}

func (ctrl *RecipeController) toggleRelation(c *gin.Context, kind service.RelationKind, add bool) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var err error
	if add {
		err = ctrl.relationService.Add(kind, userID, recipeID)
	} else {
		err = ctrl.relationService.Remove(kind, userID, recipeID)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
		case errors.Is(err, service.ErrRelationExists):
			apperrors.Conflict(c, apperrors.RelationAlreadyExists, "Recipe is already added")
		case errors.Is(err, service.ErrRelationNotFound):
			apperrors.NotFound(c, apperrors.RelationNotFound, "Recipe was not added")
		default:
			log.Error("Relation toggle failed", err, map[string]interface{}{
				"kind":      string(kind),
				"user_id":   userID,
				"recipe_id": recipeID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	if !add {
		c.JSON(http.StatusNoContent, nil)
		return
	}

	detail, err := ctrl.recipeService.GetRecipe(recipeID, userID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, recipePreviewPayload(detail.Recipe))
}

// respondRecipeValidationError maps the recipe validation sentinels to
// their error codes. Returns false if err is not one of them.
func respondRecipeValidationError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrEmptyRecipeName):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Recipe name is required")
	case errors.Is(err, service.ErrRecipeNameTaken):
		apperrors.BadRequest(c, apperrors.RecipeNameExists, "You already have a recipe with this name")
	case errors.Is(err, service.ErrNoTags):
		apperrors.BadRequest(c, apperrors.RecipeNoTags, "Recipe needs at least one tag")
	case errors.Is(err, service.ErrDuplicateTag):
		apperrors.BadRequest(c, apperrors.RecipeDuplicateTag, "Recipe tags must be unique")
	case errors.Is(err, service.ErrTagNotFound):
		apperrors.NotFound(c, apperrors.TagNotFound, "One of the tags does not exist")
	case errors.Is(err, service.ErrNoIngredients):
		apperrors.BadRequest(c, apperrors.RecipeNoIngredients, "Recipe needs at least one ingredient")
	case errors.Is(err, service.ErrDuplicateIngredient):
		apperrors.BadRequest(c, apperrors.RecipeDuplicateIngredient, "Recipe ingredients must be unique")
	case errors.Is(err, service.ErrIngredientNotFound):
		apperrors.NotFound(c, apperrors.IngredientNotFound, "One of the ingredients does not exist")
	case errors.Is(err, service.ErrAmountOutOfRange):
		apperrors.BadRequest(c, apperrors.RecipeAmountOutOfRange, "Ingredient amounts must be between 1 and 32000")
	case errors.Is(err, service.ErrCookingTimeOutOfRange):
		apperrors.BadRequest(c, apperrors.RecipeCookingTimeOutOfRange, "Cooking time must be between 1 and 32000 minutes")
	case errors.Is(err, service.ErrInvalidImage):
		apperrors.BadRequest(c, apperrors.RecipeInvalidImage, "Image must be a base64 data URI")
	default:
		return false
	}
	return true
}

// parseBoolFlag reads an optional 0/1/true/false query flag. The second
// return value is false when the flag is present but malformed, in which
// case a 400 has already been written.
func parseBoolFlag(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	switch raw {
	case "1", "true":
		v := true
		return &v, true
	case "0", "false":
		v := false
		return &v, true
	}
	apperrors.BadRequest(c, apperrors.ValidationInvalidInput, name+" must be 0, 1, true or false")
	return nil, false
}

func parsePagination(c *gin.Context) (page, limit int, ok bool) {
	page, limit = 1, defaultPageSize
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "page must be a positive integer")
			return 0, 0, false
		}
		page = parsed
	}
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "limit must be between 1 and 100")
			return 0, 0, false
		}
		limit = parsed
	}
	return page, limit, true
}
