package repository

import (
	"github.com/mlarina/foodgram-backend/internal/app/model"
	"github.com/mlarina/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

// ShoppingListItem is one aggregated line of a shopping list: all cart
// recipes' amounts for the same (name, unit) ingredient summed together.
type ShoppingListItem struct {
	Name            string
	MeasurementUnit string
	Total           int
}

type CartRepository interface {
	Create(entry *model.ShoppingCartEntry) error
	Delete(userID, recipeID uint) (int64, error)
	Exists(userID, recipeID uint) (bool, error)
	ListRecipeIDs(userID uint) ([]uint, error)
	SumIngredients(userID uint) ([]ShoppingListItem, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(entry *model.ShoppingCartEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		logger.Error("Failed to create shopping cart entry in database", err, map[string]interface{}{
			"user_id":   entry.UserID,
			"recipe_id": entry.RecipeID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) Delete(userID, recipeID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.ShoppingCartEntry{})
	if result.Error != nil {
		logger.Error("Failed to delete shopping cart entry in database", result.Error, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *cartRepository) Exists(userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.ShoppingCartEntry{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *cartRepository) ListRecipeIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.ShoppingCartEntry{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *cartRepository) SumIngredients(userID uint) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := r.db.
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_cart_entries ON shopping_cart_entries.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_cart_entries.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error
	if err != nil {
		logger.Error("Failed to aggregate shopping list in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return items, nil
}
