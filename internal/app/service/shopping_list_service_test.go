package service

import (
	"strings"
	"testing"

	"github.com/mlarina/foodgram-backend/internal/app/model"
	"github.com/mlarina/foodgram-backend/internal/app/repository"
	"github.com/mlarina/foodgram-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type shoppingListFixture struct {
	db      *gorm.DB
	service ShoppingListService
}

func setupShoppingListServiceTest(t *testing.T) *shoppingListFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	return &shoppingListFixture{
		db:      testDB,
		service: NewShoppingListService(repository.NewCartRepository(testDB), repository.NewUserRepository(testDB)),
	}
}

func addRecipeWithIngredients(t *testing.T, testDB *gorm.DB, authorID uint, name string, items map[uint]int) *model.Recipe {
	recipe := createTestRecipe(t, testDB, authorID, name)
	for ingredientID, amount := range items {
		require.NoError(t, testDB.Create(&model.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: ingredientID,
			Amount:       amount,
		}).Error)
	}
	return recipe
}

func putInCart(t *testing.T, testDB *gorm.DB, userID, recipeID uint) {
	require.NoError(t, testDB.Create(&model.ShoppingCartEntry{UserID: userID, RecipeID: recipeID}).Error)
}

func TestShoppingListService_AggregatesSameIngredient(t *testing.T) {
	f := setupShoppingListServiceTest(t)

	user := createTestUser(t, f.db, "fan@example.com", "fan")
	cook := createTestUser(t, f.db, "cook@example.com", "cook")
	salt := createTestIngredient(t, f.db, "Salt", "g")

	soup := addRecipeWithIngredients(t, f.db, cook.ID, "Soup", map[uint]int{salt.ID: 5})
	stew := addRecipeWithIngredients(t, f.db, cook.ID, "Stew", map[uint]int{salt.ID: 10})
	putInCart(t, f.db, user.ID, soup.ID)
	putInCart(t, f.db, user.ID, stew.ID)

	report, err := f.service.BuildReport(user.ID)
	require.NoError(t, err)

	assert.Equal(t, "fan_cart.txt", report.Filename)
	assert.Contains(t, report.Content, "Salt - 15 g")
	assert.NotContains(t, report.Content, "Salt - 5 g")
}

func TestShoppingListService_UnitsStaySeparate(t *testing.T) {
	f := setupShoppingListServiceTest(t)

	user := createTestUser(t, f.db, "fan@example.com", "fan")
	cook := createTestUser(t, f.db, "cook@example.com", "cook")
	saltGrams := createTestIngredient(t, f.db, "Salt", "g")
	saltPinch := createTestIngredient(t, f.db, "Salt", "pinch")

	recipe := addRecipeWithIngredients(t, f.db, cook.ID, "Soup", map[uint]int{
		saltGrams.ID: 5,
		saltPinch.ID: 2,
	})
	putInCart(t, f.db, user.ID, recipe.ID)

	report, err := f.service.BuildReport(user.ID)
	require.NoError(t, err)

	assert.Contains(t, report.Content, "Salt - 5 g")
	assert.Contains(t, report.Content, "Salt - 2 pinch")
}

func TestShoppingListService_SortedByName(t *testing.T) {
	f := setupShoppingListServiceTest(t)

	user := createTestUser(t, f.db, "fan@example.com", "fan")
	cook := createTestUser(t, f.db, "cook@example.com", "cook")
	zucchini := createTestIngredient(t, f.db, "Zucchini", "pcs")
	apple := createTestIngredient(t, f.db, "Apple", "pcs")

	recipe := addRecipeWithIngredients(t, f.db, cook.ID, "Salad", map[uint]int{
		zucchini.ID: 1,
		apple.ID:    2,
	})
	putInCart(t, f.db, user.ID, recipe.ID)

	report, err := f.service.BuildReport(user.ID)
	require.NoError(t, err)

	appleIdx := strings.Index(report.Content, "Apple")
	zucchiniIdx := strings.Index(report.Content, "Zucchini")
	require.GreaterOrEqual(t, appleIdx, 0)
	require.GreaterOrEqual(t, zucchiniIdx, 0)
	assert.Less(t, appleIdx, zucchiniIdx)
}

func TestShoppingListService_EmptyCart(t *testing.T) {
	f := setupShoppingListServiceTest(t)

	user := createTestUser(t, f.db, "fan@example.com", "fan")

	report, err := f.service.BuildReport(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shopping list:\n\n", report.Content)

	_, err = f.service.BuildReport(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
