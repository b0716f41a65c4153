package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/mlarina/foodgram-backend/internal/app/model"
	"github.com/mlarina/foodgram-backend/internal/app/repository"
	"github.com/mlarina/foodgram-backend/internal/storage"
	"github.com/mlarina/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrRecipeNotFound        = errors.New("recipe not found")
	ErrEmptyRecipeName       = errors.New("recipe name is required")
	ErrRecipeNameTaken       = errors.New("recipe name already used by this author")
	ErrNoTags                = errors.New("recipe needs at least one tag")
	ErrDuplicateTag          = errors.New("duplicate tag in recipe")
	ErrTagNotFound           = errors.New("tag not found")
	ErrNoIngredients         = errors.New("recipe needs at least one ingredient")
	ErrDuplicateIngredient   = errors.New("duplicate ingredient in recipe")
	ErrIngredientNotFound    = errors.New("ingredient not found")
	ErrAmountOutOfRange      = errors.New("ingredient amount out of range")
	ErrCookingTimeOutOfRange = errors.New("cooking time out of range")
	ErrInvalidImage          = errors.New("invalid image payload")
	ErrNotRecipeOwner        = errors.New("recipe belongs to another user")
)

// Amount and CookingTime carry no binding rules so a literal zero
// reaches the service and fails with its range-specific error.
type RecipeIngredientInput struct {
	IngredientID uint `json:"id" binding:"required"`
	Amount       int  `json:"amount"`
}

type RecipeInput struct {
	Name        string                  `json:"name" binding:"required"`
	Text        string                  `json:"text" binding:"required"`
	Image       string                  `json:"image"`
	CookingTime int                     `json:"cooking_time"`
	TagIDs      []uint                  `json:"tags"`
	Ingredients []RecipeIngredientInput `json:"ingredients"`
}

// RecipeDetail pairs a recipe with the requesting user's relation flags.
// Both flags are false for anonymous requests.
type RecipeDetail struct {
	Recipe           *model.Recipe
	IsFavorited      bool
	IsInShoppingCart bool
}

type RecipeService interface {
	CreateRecipe(authorID uint, input RecipeInput) (*model.Recipe, error)
	UpdateRecipe(userID, recipeID uint, input RecipeInput, isAdmin bool) (*model.Recipe, error)
	DeleteRecipe(userID, recipeID uint, isAdmin bool) error
	GetRecipe(recipeID, userID uint) (*RecipeDetail, error)
	ListRecipes(filter repository.RecipeFilter) ([]RecipeDetail, int64, error)
}

type recipeService struct {
	recipeRepo     repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
	favoriteRepo   repository.FavoriteRepository
	cartRepo       repository.CartRepository
	images         storage.ImageStorage
	db             *gorm.DB
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	favoriteRepo repository.FavoriteRepository,
	cartRepo repository.CartRepository,
	images storage.ImageStorage,
	db *gorm.DB,
) RecipeService {
	return &recipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		favoriteRepo:   favoriteRepo,
		cartRepo:       cartRepo,
		images:         images,
		db:             db,
	}
}

func (s *recipeService) CreateRecipe(authorID uint, input RecipeInput) (*model.Recipe, error) {
	logger.Info("Creating recipe", map[string]interface{}{
		"author_id": authorID,
		"name":      input.Name,
	})

	if err := s.validateInput(authorID, true, input); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Image) == "" {
		return nil, ErrInvalidImage
	}
	imageURL, err := s.storeImage(input.Image)
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		Name:        strings.TrimSpace(input.Name),
		AuthorID:    authorID,
		Text:        input.Text,
		Image:       imageURL,
		CookingTime: input.CookingTime,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			s.discardImage(imageURL)
			logger.Error("Panic during recipe creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"author_id": authorID,
			})
		}
	}()

	if err := s.recipeRepo.Create(tx, recipe); err != nil {
		tx.Rollback()
		s.discardImage(imageURL)
		return nil, err
	}

	if err := s.writeAssociations(tx, recipe.ID, input); err != nil {
		tx.Rollback()
		s.discardImage(imageURL)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit recipe creation", err, map[string]interface{}{
			"author_id": authorID,
		})
		s.discardImage(imageURL)
		return nil, err
	}

	return s.recipeRepo.FindByID(recipe.ID)
}

func (s *recipeService) UpdateRecipe(userID, recipeID uint, input RecipeInput, isAdmin bool) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if recipe.AuthorID != userID && !isAdmin {
		logger.Warn("Recipe update denied: not owner", map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return nil, ErrNotRecipeOwner
	}

	if err := s.validateInput(recipe.AuthorID, false, input); err != nil {
		return nil, err
	}

	// An omitted image keeps the current one.
	imageURL := recipe.Image
	newImage := strings.TrimSpace(input.Image) != ""
	if newImage {
		imageURL, err = s.storeImage(input.Image)
		if err != nil {
			return nil, err
		}
	}

	recipe.Name = strings.TrimSpace(input.Name)
	recipe.Text = input.Text
	recipe.Image = imageURL
	recipe.CookingTime = input.CookingTime

	tx := s.db.Begin()

	// A freshly stored image must not outlive a failed transaction.
	discard := func() {
		if newImage {
			s.discardImage(imageURL)
		}
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			discard()
			logger.Error("Panic during recipe update, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"recipe_id": recipeID,
			})
		}
	}()

	if err := s.recipeRepo.Update(tx, recipe); err != nil {
		tx.Rollback()
		discard()
		return nil, err
	}

	// Replace semantics: the tag and ingredient sets become exactly the
	// sets named in the input.
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeTag{}).Error; err != nil {
		tx.Rollback()
		discard()
		return nil, err
	}
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeIngredient{}).Error; err != nil {
		tx.Rollback()
		discard()
		return nil, err
	}
	if err := s.writeAssociations(tx, recipeID, input); err != nil {
		tx.Rollback()
		discard()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit recipe update", err, map[string]interface{}{
			"recipe_id": recipeID,
		})
		discard()
		return nil, err
	}

	return s.recipeRepo.FindByID(recipeID)
}

func (s *recipeService) DeleteRecipe(userID, recipeID uint, isAdmin bool) error {
	recipe, err := s.recipeRepo.FindByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	if recipe.AuthorID != userID && !isAdmin {
		logger.Warn("Recipe deletion denied: not owner", map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return ErrNotRecipeOwner
	}

	logger.Info("Deleting recipe", map[string]interface{}{
		"recipe_id": recipeID,
		"user_id":   userID,
	})

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during recipe deletion, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"recipe_id": recipeID,
			})
		}
	}()

	// Dependent rows go first so no favorite or cart entry points at a
	// deleted recipe.
	for _, target := range []interface{}{
		&model.Favorite{},
		&model.ShoppingCartEntry{},
		&model.RecipeTag{},
		&model.RecipeIngredient{},
	} {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(target).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Delete(&model.Recipe{}, recipeID).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit recipe deletion", err, map[string]interface{}{
			"recipe_id": recipeID,
		})
		return err
	}

	return nil
}

func (s *recipeService) GetRecipe(recipeID, userID uint) (*RecipeDetail, error) {
	recipe, err := s.recipeRepo.FindByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	detail := &RecipeDetail{Recipe: recipe}
	if userID > 0 {
		if detail.IsFavorited, err = s.favoriteRepo.Exists(userID, recipeID); err != nil {
			return nil, err
		}
		if detail.IsInShoppingCart, err = s.cartRepo.Exists(userID, recipeID); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

func (s *recipeService) ListRecipes(filter repository.RecipeFilter) ([]RecipeDetail, int64, error) {
	recipes, total, err := s.recipeRepo.FindWithFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	var favoriteIDs, cartIDs map[uint]bool
	if filter.UserID > 0 {
		if favoriteIDs, err = s.relationSet(s.favoriteRepo.ListRecipeIDs, filter.UserID); err != nil {
			return nil, 0, err
		}
		if cartIDs, err = s.relationSet(s.cartRepo.ListRecipeIDs, filter.UserID); err != nil {
			return nil, 0, err
		}
	}

	details := make([]RecipeDetail, 0, len(recipes))
	for i := range recipes {
		details = append(details, RecipeDetail{
			Recipe:           &recipes[i],
			IsFavorited:      favoriteIDs[recipes[i].ID],
			IsInShoppingCart: cartIDs[recipes[i].ID],
		})
	}
	return details, total, nil
}

func (s *recipeService) relationSet(list func(uint) ([]uint, error), userID uint) (map[uint]bool, error) {
	ids, err := list(userID)
	if err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// validateInput checks a recipe payload in a fixed order: name first,
// then tags, then ingredients, then cooking time. The first failure wins.
// The per-author name uniqueness check applies on creation only, so an
// update may rename a recipe after an existing sibling.
func (s *recipeService) validateInput(authorID uint, isCreate bool, input RecipeInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrEmptyRecipeName
	}
	if isCreate {
		taken, err := s.recipeRepo.ExistsByAuthorAndName(authorID, name)
		if err != nil {
			return err
		}
		if taken {
			logger.Warn("Recipe name already taken", map[string]interface{}{
				"author_id": authorID,
				"name":      name,
			})
			return ErrRecipeNameTaken
		}
	}

	if len(input.TagIDs) == 0 {
		return ErrNoTags
	}
	seenTags := make(map[uint]bool, len(input.TagIDs))
	for _, id := range input.TagIDs {
		if seenTags[id] {
			return ErrDuplicateTag
		}
		seenTags[id] = true
	}
	tags, err := s.tagRepo.FindByIDs(input.TagIDs)
	if err != nil {
		return err
	}
	if len(tags) != len(input.TagIDs) {
		return ErrTagNotFound
	}

	if len(input.Ingredients) == 0 {
		return ErrNoIngredients
	}
	// Per item: resolve the ingredient, then duplication, then amount.
	seenIngredients := make(map[uint]bool, len(input.Ingredients))
	for _, item := range input.Ingredients {
		if _, err := s.ingredientRepo.FindByID(item.IngredientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIngredientNotFound
			}
			return err
		}
		if seenIngredients[item.IngredientID] {
			return ErrDuplicateIngredient
		}
		seenIngredients[item.IngredientID] = true
		if item.Amount < model.MinAmount || item.Amount > model.MaxAmount {
			return ErrAmountOutOfRange
		}
	}

	if input.CookingTime < model.MinCookingTime || input.CookingTime > model.MaxCookingTime {
		return ErrCookingTimeOutOfRange
	}

	return nil
}

func (s *recipeService) writeAssociations(tx *gorm.DB, recipeID uint, input RecipeInput) error {
	for _, tagID := range input.TagIDs {
		if err := tx.Create(&model.RecipeTag{RecipeID: recipeID, TagID: tagID}).Error; err != nil {
			return err
		}
	}
	for _, item := range input.Ingredients {
		if err := tx.Create(&model.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: item.IngredientID,
			Amount:       item.Amount,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

// storeImage decodes a base64 data URI and hands the bytes to the
// configured image storage.
func (s *recipeService) storeImage(payload string) (string, error) {
	data, ext, err := decodeImagePayload(payload)
	if err != nil {
		return "", err
	}
	url, err := s.images.Save(data, ext)
	if err != nil {
		logger.Error("Failed to store recipe image", err, nil)
		return "", err
	}
	return url, nil
}

// discardImage removes a stored image whose recipe row never committed.
func (s *recipeService) discardImage(url string) {
	if url == "" {
		return
	}
	if err := s.images.Remove(url); err != nil {
		logger.Warn("Failed to remove orphaned recipe image", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
	}
}

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func decodeImagePayload(payload string) ([]byte, string, error) {
	if !strings.HasPrefix(payload, "data:") {
		return nil, "", ErrInvalidImage
	}
	rest := strings.TrimPrefix(payload, "data:")
	parts := strings.SplitN(rest, ";base64,", 2)
	if len(parts) != 2 {
		return nil, "", ErrInvalidImage
	}
	ext, ok := imageExtensions[parts[0]]
	if !ok {
		return nil, "", ErrInvalidImage
	}
	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil || len(data) == 0 {
		return nil, "", ErrInvalidImage
	}
	return data, ext, nil
}
