package model

// Ingredient is read-mostly catalog data loaded by cmd/seed.
// The same name may appear with several measurement units (e.g. "salt" in
// grams and in pinches), so uniqueness is on the (name, unit) pair.
type Ingredient struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	Name            string `gorm:"type:varchar(200);not null;index;uniqueIndex:idx_ingredients_name_unit" json:"name"`
	MeasurementUnit string `gorm:"type:varchar(100);not null;uniqueIndex:idx_ingredients_name_unit" json:"measurement_unit"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
