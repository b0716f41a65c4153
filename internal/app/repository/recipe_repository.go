package repository

import (
	"github.com/mlarina/foodgram-backend/internal/app/model"
	"github.com/mlarina/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

// RecipeFilter narrows recipe listings. Favorited and InCart are only
// honored when UserID is set; anonymous requests ignore them.
type RecipeFilter struct {
	TagSlugs  []string
	AuthorID  uint
	Favorited *bool
	InCart    *bool
	UserID    uint
	Limit     int
	Offset    int
}

type RecipeRepository interface {
	Create(tx *gorm.DB, recipe *model.Recipe) error
	Update(tx *gorm.DB, recipe *model.Recipe) error
	FindByID(id uint) (*model.Recipe, error)
	FindWithFilter(filter RecipeFilter) ([]model.Recipe, int64, error)
	FindPreviewsByAuthor(authorID uint, limit int) ([]model.Recipe, error)
	CountByAuthor(authorID uint) (int64, error)
	ExistsByAuthorAndName(authorID uint, name string) (bool, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(tx *gorm.DB, recipe *model.Recipe) error {
	if err := tx.Create(recipe).Error; err != nil {
		logger.Error("Failed to create recipe in database", err, map[string]interface{}{
			"name":      recipe.Name,
			"author_id": recipe.AuthorID,
		})
		return err
	}
	return nil
}

func (r *recipeRepository) Update(tx *gorm.DB, recipe *model.Recipe) error {
	if err := tx.Model(recipe).Updates(map[string]interface{}{
		"name":         recipe.Name,
		"text":         recipe.Text,
		"image":        recipe.Image,
		"cooking_time": recipe.CookingTime,
	}).Error; err != nil {
		logger.Error("Failed to update recipe in database", err, map[string]interface{}{
			"recipe_id": recipe.ID,
		})
		return err
	}
	return nil
}

func (r *recipeRepository) FindByID(id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) FindWithFilter(filter RecipeFilter) ([]model.Recipe, int64, error) {
	query := r.db.Model(&model.Recipe{})

	tagFiltered := len(filter.TagSlugs) > 0
	if tagFiltered {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
	}

	if filter.AuthorID > 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}

	if filter.UserID > 0 && filter.Favorited != nil {
		sub := "SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?"
		if *filter.Favorited {
			query = query.Where("EXISTS ("+sub+")", filter.UserID)
		} else {
			query = query.Where("NOT EXISTS ("+sub+")", filter.UserID)
		}
	}

	if filter.UserID > 0 && filter.InCart != nil {
		sub := "SELECT 1 FROM shopping_cart_entries WHERE shopping_cart_entries.recipe_id = recipes.id AND shopping_cart_entries.user_id = ?"
		if *filter.InCart {
			query = query.Where("EXISTS ("+sub+")", filter.UserID)
		} else {
			query = query.Where("NOT EXISTS ("+sub+")", filter.UserID)
		}
	}

	// The tag join can yield one row per matching tag, so both the count
	// and the listing collapse to distinct recipe IDs.
	var total int64
	countQuery := query.Session(&gorm.Session{})
	if tagFiltered {
		countQuery = countQuery.Distinct("recipes.id")
	}
	if err := countQuery.Count(&total).Error; err != nil {
		logger.Error("Failed to count recipes in database", err, nil)
		return nil, 0, err
	}

	if tagFiltered {
		query = query.Distinct("recipes.*")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var recipes []model.Recipe
	err := query.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		Order("recipes.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		logger.Error("Failed to list recipes in database", err, nil)
		return nil, 0, err
	}

	return recipes, total, nil
}

func (r *recipeRepository) FindPreviewsByAuthor(authorID uint, limit int) ([]model.Recipe, error) {
	var recipes []model.Recipe
	query := r.db.
		Where("author_id = ?", authorID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		logger.Error("Failed to list author recipes in database", err, map[string]interface{}{
			"author_id": authorID,
		})
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (r *recipeRepository) ExistsByAuthorAndName(authorID uint, name string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Recipe{}).
		Where("author_id = ? AND name = ?", authorID, name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
