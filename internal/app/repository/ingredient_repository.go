package repository

import (
	"strings"

	"github.com/mlarina/foodgram-backend/internal/app/model"
	"github.com/mlarina/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

type IngredientRepository interface {
	FindAll(namePrefix string) ([]model.Ingredient, error)
	FindByID(id uint) (*model.Ingredient, error)
	GetOrCreate(name, measurementUnit string) (*model.Ingredient, bool, error)
}

// likeEscaper neutralizes LIKE metacharacters in user-supplied search
// prefixes so they match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// FindAll lists the catalog, optionally narrowed to names starting with namePrefix
func (r *ingredientRepository) FindAll(namePrefix string) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	query := r.db.Order("name")
	if namePrefix != "" {
		// Case-insensitive on both Postgres and the sqlite test driver
		prefix := likeEscaper.Replace(strings.ToLower(namePrefix))
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, prefix+"%")
	}
	if err := query.Find(&ingredients).Error; err != nil {
		logger.Error("Failed to list ingredients in database", err, map[string]interface{}{
			"name_prefix": namePrefix,
		})
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) FindByID(id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.First(&ingredient, id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// GetOrCreate resolves an ingredient by (name, unit), inserting it when absent.
// Used by the seed command; the bool reports whether a row was created.
func (r *ingredientRepository) GetOrCreate(name, measurementUnit string) (*model.Ingredient, bool, error) {
	var ingredient model.Ingredient
	err := r.db.Where("name = ? AND measurement_unit = ?", name, measurementUnit).
		First(&ingredient).Error
	if err == nil {
		return &ingredient, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	ingredient = model.Ingredient{Name: name, MeasurementUnit: measurementUnit}
	if err := r.db.Create(&ingredient).Error; err != nil {
		logger.Error("Failed to create ingredient in database", err, map[string]interface{}{
			"name": name,
			"unit": measurementUnit,
		})
		return nil, false, err
	}
	return &ingredient, true, nil
}
