package model

import "regexp"

// Tag is a predefined label recipes can be filtered by
type Tag struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
	Color string `gorm:"type:varchar(7);not null" json:"color"`
	Slug  string `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
}

func (Tag) TableName() string {
	return "tags"
}

var hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// ValidHexColor reports whether s is a #RGB or #RRGGBB color code
func ValidHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// RecipeTag is the join row between recipes and tags, unique per pair
type RecipeTag struct {
	RecipeID uint `gorm:"primaryKey;index" json:"recipe_id"`
	TagID    uint `gorm:"primaryKey;index" json:"tag_id"`

	Recipe Recipe `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Tag    Tag    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}
