package model

import (
	"time"

	"gorm.io/gorm"
)

// Bounds shared by ingredient amounts and cooking time
const (
	MinAmount      = 1
	MaxAmount      = 32000
	MinCookingTime = 1
	MaxCookingTime = 32000
)

type Recipe struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(200);not null;index" json:"name"`
	AuthorID    uint           `gorm:"not null;index" json:"author_id"`
	Text        string         `gorm:"type:text;not null" json:"text"`
	Image       string         `json:"image"`
	CookingTime int            `gorm:"not null" json:"cooking_time"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Author      *User              `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Tags        []Tag              `gorm:"many2many:recipe_tags" json:"tags,omitempty"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient holds one ingredient of a recipe with its amount.
// One row per distinct ingredient in a recipe.
type RecipeIngredient struct {
	ID           uint `gorm:"primarykey" json:"-"`
	RecipeID     uint `gorm:"not null;index;uniqueIndex:idx_recipe_ingredients_pair" json:"-"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredients_pair" json:"id"`
	Amount       int  `gorm:"not null" json:"amount"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
