package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/mlarina/foodgram-backend/internal/app/model"
	"github.com/mlarina/foodgram-backend/internal/app/service"
)

// Shared response shapes. Controllers build these instead of serializing
// models directly so list and detail endpoints stay consistent.

func userPayload(user *model.User, isSubscribed bool) gin.H {
	return gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"username":      user.Username,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"is_subscribed": isSubscribed,
	}
}

func recipePreviewPayload(recipe *model.Recipe) gin.H {
	return gin.H{
		"id":           recipe.ID,
		"name":         recipe.Name,
		"image":        recipe.Image,
		"cooking_time": recipe.CookingTime,
	}
}

func recipePayload(detail *service.RecipeDetail, isSubscribed bool) gin.H {
	recipe := detail.Recipe

	tags := make([]gin.H, 0, len(recipe.Tags))
	for i := range recipe.Tags {
		tags = append(tags, gin.H{
			"id":    recipe.Tags[i].ID,
			"name":  recipe.Tags[i].Name,
			"color": recipe.Tags[i].Color,
			"slug":  recipe.Tags[i].Slug,
		})
	}

	ingredients := make([]gin.H, 0, len(recipe.Ingredients))
	for i := range recipe.Ingredients {
		item := &recipe.Ingredients[i]
		ingredients = append(ingredients, gin.H{
			"id":               item.IngredientID,
			"name":             item.Ingredient.Name,
			"measurement_unit": item.Ingredient.MeasurementUnit,
			"amount":           item.Amount,
		})
	}

	payload := gin.H{
		"id":                  recipe.ID,
		"name":                recipe.Name,
		"text":                recipe.Text,
		"image":               recipe.Image,
		"cooking_time":        recipe.CookingTime,
		"tags":                tags,
		"ingredients":         ingredients,
		"is_favorited":        detail.IsFavorited,
		"is_in_shopping_cart": detail.IsInShoppingCart,
		"created_at":          recipe.CreatedAt,
	}
	if recipe.Author != nil {
		payload["author"] = userPayload(recipe.Author, isSubscribed)
	}
	return payload
}
