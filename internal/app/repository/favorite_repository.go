package repository

import (
	"github.com/mlarina/foodgram-backend/internal/app/model"
	"github.com/mlarina/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Create(favorite *model.Favorite) error
	Delete(userID, recipeID uint) (int64, error)
	Exists(userID, recipeID uint) (bool, error)
	ListRecipeIDs(userID uint) ([]uint, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(favorite *model.Favorite) error {
	if err := r.db.Create(favorite).Error; err != nil {
		logger.Error("Failed to create favorite in database", err, map[string]interface{}{
			"user_id":   favorite.UserID,
			"recipe_id": favorite.RecipeID,
		})
		return err
	}
	return nil
}

func (r *favoriteRepository) Delete(userID, recipeID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.Favorite{})
	if result.Error != nil {
		logger.Error("Failed to delete favorite in database", result.Error, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *favoriteRepository) Exists(userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) ListRecipeIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
