package service

import (
	"testing"

	"github.com/mlarina/foodgram-backend/internal/app/model"
	"github.com/mlarina/foodgram-backend/internal/app/repository"
	"github.com/mlarina/foodgram-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type relationFixture struct {
	db      *gorm.DB
	service RelationService
}

func setupRelationServiceTest(t *testing.T) *relationFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	return &relationFixture{
		db: testDB,
		service: NewRelationService(
			repository.NewFavoriteRepository(testDB),
			repository.NewCartRepository(testDB),
			repository.NewSubscriptionRepository(testDB),
			repository.NewRecipeRepository(testDB),
			repository.NewUserRepository(testDB),
		),
	}
}

func createTestRecipe(t *testing.T, testDB *gorm.DB, authorID uint, name string) *model.Recipe {
	recipe := &model.Recipe{
		Name:        name,
		AuthorID:    authorID,
		Text:        "steps",
		Image:       "/uploads/x.png",
		CookingTime: 10,
	}
	require.NoError(t, testDB.Create(recipe).Error)
	return recipe
}

func TestRelationService_AddRemoveStateMachine(t *testing.T) {
	for _, kind := range []RelationKind{RelationFavorite, RelationShoppingCart} {
		t.Run(string(kind), func(t *testing.T) {
			f := setupRelationServiceTest(t)

			user := createTestUser(t, f.db, "fan@example.com", "fan")
			author := createTestUser(t, f.db, "cook@example.com", "cook")
			recipe := createTestRecipe(t, f.db, author.ID, "Soup")

			// Remove before add
			assert.ErrorIs(t, f.service.Remove(kind, user.ID, recipe.ID), ErrRelationNotFound)

			// Add, then add again
			require.NoError(t, f.service.Add(kind, user.ID, recipe.ID))
			assert.ErrorIs(t, f.service.Add(kind, user.ID, recipe.ID), ErrRelationExists)

			// Remove, then remove again
			require.NoError(t, f.service.Remove(kind, user.ID, recipe.ID))
			assert.ErrorIs(t, f.service.Remove(kind, user.ID, recipe.ID), ErrRelationNotFound)

			// Add is possible again after a remove
			assert.NoError(t, f.service.Add(kind, user.ID, recipe.ID))
		})
	}
}

func TestRelationService_MissingTargets(t *testing.T) {
	f := setupRelationServiceTest(t)

	user := createTestUser(t, f.db, "fan@example.com", "fan")

	assert.ErrorIs(t, f.service.Add(RelationFavorite, user.ID, 9999), ErrRecipeNotFound)
	assert.ErrorIs(t, f.service.Remove(RelationShoppingCart, user.ID, 9999), ErrRecipeNotFound)
	assert.ErrorIs(t, f.service.Add(RelationSubscription, user.ID, 9999), ErrUserNotFound)
	assert.ErrorIs(t, f.service.Add("bogus", user.ID, 1), ErrUnknownRelation)
}

func TestRelationService_SelfSubscription(t *testing.T) {
	f := setupRelationServiceTest(t)

	user := createTestUser(t, f.db, "solo@example.com", "solo")

	assert.ErrorIs(t, f.service.Add(RelationSubscription, user.ID, user.ID), ErrSelfSubscription)
}

func TestRelationService_Subscriptions(t *testing.T) {
	f := setupRelationServiceTest(t)

	user := createTestUser(t, f.db, "fan@example.com", "fan")
	author := createTestUser(t, f.db, "cook@example.com", "cook")
	quiet := createTestUser(t, f.db, "quiet@example.com", "quiet")

	for i := 0; i < 3; i++ {
		createTestRecipe(t, f.db, author.ID, "Recipe "+string(rune('A'+i)))
	}

	require.NoError(t, f.service.Add(RelationSubscription, user.ID, author.ID))
	require.NoError(t, f.service.Add(RelationSubscription, user.ID, quiet.ID))

	subscribed, err := f.service.IsSubscribed(user.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	subscribed, err = f.service.IsSubscribed(quiet.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)

	set, err := f.service.SubscribedAuthorSet(user.ID)
	require.NoError(t, err)
	assert.True(t, set[author.ID])
	assert.True(t, set[quiet.ID])
	assert.False(t, set[user.ID])

	// recipes_limit caps the preview but not the count
	entries, err := f.service.ListSubscriptions(user.ID, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byAuthor := map[uint]SubscribedAuthor{}
	for _, entry := range entries {
		byAuthor[entry.Author.ID] = entry
	}
	assert.Len(t, byAuthor[author.ID].Recipes, 2)
	assert.Equal(t, int64(3), byAuthor[author.ID].RecipesCount)
	assert.Len(t, byAuthor[quiet.ID].Recipes, 0)
	assert.Equal(t, int64(0), byAuthor[quiet.ID].RecipesCount)

	// Unsubscribe shrinks the list
	require.NoError(t, f.service.Remove(RelationSubscription, user.ID, quiet.ID))
	entries, err = f.service.ListSubscriptions(user.ID, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
