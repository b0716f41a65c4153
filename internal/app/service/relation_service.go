package service

import (
	"errors"

	"github.com/mlarina/foodgram-backend/internal/app/model"
	"github.com/mlarina/foodgram-backend/internal/app/repository"
	apperrors "github.com/mlarina/foodgram-backend/internal/errors"
	"github.com/mlarina/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrRelationExists   = errors.New("relation already exists")
	ErrRelationNotFound = errors.New("relation not found")
	ErrSelfSubscription = errors.New("cannot subscribe to yourself")
	ErrUnknownRelation  = errors.New("unknown relation kind")
)

// RelationKind names one of the user-to-target toggles. All three share
// the same add/remove contract, so they dispatch through one table.
type RelationKind string

const (
	RelationFavorite     RelationKind = "favorite"
	RelationShoppingCart RelationKind = "shopping_cart"
	RelationSubscription RelationKind = "subscription"
)

type relationHandler struct {
	checkTarget func(userID, targetID uint) error
	exists      func(userID, targetID uint) (bool, error)
	create      func(userID, targetID uint) error
	remove      func(userID, targetID uint) (int64, error)
}

// SubscribedAuthor is one entry of a user's subscription page: the
// author plus a bounded preview of their recipes.
type SubscribedAuthor struct {
	Author       *model.User
	Recipes      []model.Recipe
	RecipesCount int64
}

type RelationService interface {
	Add(kind RelationKind, userID, targetID uint) error
	Remove(kind RelationKind, userID, targetID uint) error
	IsSubscribed(userID, authorID uint) (bool, error)
	SubscribedAuthorSet(userID uint) (map[uint]bool, error)
	ListSubscriptions(userID uint, recipesLimit int) ([]SubscribedAuthor, error)
}

type relationService struct {
	favoriteRepo     repository.FavoriteRepository
	cartRepo         repository.CartRepository
	subscriptionRepo repository.SubscriptionRepository
	recipeRepo       repository.RecipeRepository
	userRepo         repository.UserRepository
	handlers         map[RelationKind]relationHandler
}

func NewRelationService(
	favoriteRepo repository.FavoriteRepository,
	cartRepo repository.CartRepository,
	subscriptionRepo repository.SubscriptionRepository,
	recipeRepo repository.RecipeRepository,
	userRepo repository.UserRepository,
) RelationService {
	s := &relationService{
		favoriteRepo:     favoriteRepo,
		cartRepo:         cartRepo,
		subscriptionRepo: subscriptionRepo,
		recipeRepo:       recipeRepo,
		userRepo:         userRepo,
	}

	s.handlers = map[RelationKind]relationHandler{
		RelationFavorite: {
			checkTarget: s.checkRecipe,
			exists:      favoriteRepo.Exists,
			create: func(userID, recipeID uint) error {
				return favoriteRepo.Create(&model.Favorite{UserID: userID, RecipeID: recipeID})
			},
			remove: favoriteRepo.Delete,
		},
		RelationShoppingCart: {
			checkTarget: s.checkRecipe,
			exists:      cartRepo.Exists,
			create: func(userID, recipeID uint) error {
				return cartRepo.Create(&model.ShoppingCartEntry{UserID: userID, RecipeID: recipeID})
			},
			remove: cartRepo.Delete,
		},
		RelationSubscription: {
			checkTarget: s.checkAuthor,
			exists:      subscriptionRepo.Exists,
			create: func(userID, authorID uint) error {
				return subscriptionRepo.Create(&model.Subscription{UserID: userID, AuthorID: authorID})
			},
			remove: subscriptionRepo.Delete,
		},
	}

	return s
}

func (s *relationService) Add(kind RelationKind, userID, targetID uint) error {
	handler, ok := s.handlers[kind]
	if !ok {
		return ErrUnknownRelation
	}

	if err := handler.checkTarget(userID, targetID); err != nil {
		return err
	}

	exists, err := handler.exists(userID, targetID)
	if err != nil {
		return err
	}
	if exists {
		logger.Warn("Relation already exists", map[string]interface{}{
			"kind":      string(kind),
			"user_id":   userID,
			"target_id": targetID,
		})
		return ErrRelationExists
	}

	if err := handler.create(userID, targetID); err != nil {
		// The unique index catches a concurrent add between the exists
		// check and the insert.
		if apperrors.IsUniqueViolation(err) {
			return ErrRelationExists
		}
		return err
	}

	logger.Info("Relation added", map[string]interface{}{
		"kind":      string(kind),
		"user_id":   userID,
		"target_id": targetID,
	})
	return nil
}

func (s *relationService) Remove(kind RelationKind, userID, targetID uint) error {
	handler, ok := s.handlers[kind]
	if !ok {
		return ErrUnknownRelation
	}

	if err := handler.checkTarget(userID, targetID); err != nil {
		return err
	}

	affected, err := handler.remove(userID, targetID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRelationNotFound
	}

	logger.Info("Relation removed", map[string]interface{}{
		"kind":      string(kind),
		"user_id":   userID,
		"target_id": targetID,
	})
	return nil
}

func (s *relationService) IsSubscribed(userID, authorID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.subscriptionRepo.Exists(userID, authorID)
}

// SubscribedAuthorSet returns the IDs of all authors the user follows,
// for stamping is_subscribed onto recipe listings in one query.
func (s *relationService) SubscribedAuthorSet(userID uint) (map[uint]bool, error) {
	set := make(map[uint]bool)
	if userID == 0 {
		return set, nil
	}
	ids, err := s.subscriptionRepo.ListAuthorIDs(userID)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (s *relationService) ListSubscriptions(userID uint, recipesLimit int) ([]SubscribedAuthor, error) {
	authorIDs, err := s.subscriptionRepo.ListAuthorIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(authorIDs) == 0 {
		return []SubscribedAuthor{}, nil
	}

	authors, err := s.userRepo.FindByIDs(authorIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*model.User, len(authors))
	for i := range authors {
		byID[authors[i].ID] = &authors[i]
	}

	result := make([]SubscribedAuthor, 0, len(authorIDs))
	for _, authorID := range authorIDs {
		author, ok := byID[authorID]
		if !ok {
			continue
		}
		recipes, err := s.recipeRepo.FindPreviewsByAuthor(authorID, recipesLimit)
		if err != nil {
			return nil, err
		}
		count, err := s.recipeRepo.CountByAuthor(authorID)
		if err != nil {
			return nil, err
		}
		result = append(result, SubscribedAuthor{
			Author:       author,
			Recipes:      recipes,
			RecipesCount: count,
		})
	}
	return result, nil
}

func (s *relationService) checkRecipe(_, recipeID uint) error {
	if _, err := s.recipeRepo.FindByID(recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	return nil
}

func (s *relationService) checkAuthor(userID, authorID uint) error {
	if userID == authorID {
		return ErrSelfSubscription
	}
	if _, err := s.userRepo.FindByID(authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
