package service

import (
	"testing"

	"github.com/mlarina/foodgram-backend/internal/app/repository"
	"github.com/mlarina/foodgram-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTagServiceTest(t *testing.T) TagService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	return NewTagService(repository.NewTagRepository(testDB))
}

func TestTagService_CreateTag(t *testing.T) {
	tagService := setupTagServiceTest(t)

	tag, err := tagService.CreateTag("Breakfast", "#e26c2d", "breakfast")
	require.NoError(t, err)
	assert.NotZero(t, tag.ID)
	// Color is normalized to upper case
	assert.Equal(t, "#E26C2D", tag.Color)

	_, err = tagService.CreateTag("Dinner", "orange", "dinner")
	assert.ErrorIs(t, err, ErrInvalidTagColor)

	_, err = tagService.CreateTag("Breakfast", "#138808", "breakfast-2")
	assert.ErrorIs(t, err, ErrTagExists)

	_, err = tagService.CreateTag("Brunch", "#138808", "breakfast")
	assert.ErrorIs(t, err, ErrTagExists)
}

func TestTagService_ListAndGet(t *testing.T) {
	tagService := setupTagServiceTest(t)

	_, err := tagService.CreateTag("Dinner", "#960A08", "dinner")
	require.NoError(t, err)
	created, err := tagService.CreateTag("Breakfast", "#E26C2D", "breakfast")
	require.NoError(t, err)

	tags, err := tagService.ListTags()
	require.NoError(t, err)
	require.Len(t, tags, 2)
	// Ordered by name
	assert.Equal(t, "Breakfast", tags[0].Name)
	assert.Equal(t, "Dinner", tags[1].Name)

	tag, err := tagService.GetTag(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "breakfast", tag.Slug)

	_, err = tagService.GetTag(9999)
	assert.ErrorIs(t, err, ErrTagNotFound)
}
