package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mlarina/foodgram-backend/internal/app/service"
	apperrors "github.com/mlarina/foodgram-backend/internal/errors"
	"github.com/mlarina/foodgram-backend/internal/middleware"
)

type UserController struct {
	authService     service.AuthService
	relationService service.RelationService
}

func NewUserController(authService service.AuthService, relationService service.RelationService) *UserController {
	return &UserController{
		authService:     authService,
		relationService: relationService,
	}
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// GetMe returns the authenticated user's profile
// GET /api/v1/users/me
func (ctrl *UserController) GetMe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, userPayload(user, false))
}

// UpdateMe updates the authenticated user's profile
// PATCH /api/v1/users/me
func (ctrl *UserController) UpdateMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid profile data")
		return
	}

	user, err := ctrl.authService.UpdateProfile(userID, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
			return
		}
		log.Error("Profile update failed", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, userPayload(user, false))
}

// GetUser returns a user's public profile
// GET /api/v1/users/:id
func (ctrl *UserController) GetUser(c *gin.Context) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := ctrl.authService.GetUserByID(targetID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	// is_subscribed is false for guests.
	viewerID, _ := middleware.GetUserID(c)
	isSubscribed, err := ctrl.relationService.IsSubscribed(viewerID, targetID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, userPayload(user, isSubscribed))
}

// ListSubscriptions returns the authors the user follows, each with a
// recipe preview capped by the recipes_limit query parameter
// GET /api/v1/users/subscriptions
func (ctrl *UserController) ListSubscriptions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	recipesLimit := 0
	if raw := c.Query("recipes_limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "recipes_limit must be a non-negative integer")
			return
		}
		recipesLimit = parsed
	}

	subscriptions, err := ctrl.relationService.ListSubscriptions(userID, recipesLimit)
	if err != nil {
		log.Error("Failed to list subscriptions", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	results := make([]gin.H, 0, len(subscriptions))
	for i := range subscriptions {
		entry := &subscriptions[i]
		recipes := make([]gin.H, 0, len(entry.Recipes))
		for j := range entry.Recipes {
			recipes = append(recipes, recipePreviewPayload(&entry.Recipes[j]))
		}
		author := userPayload(entry.Author, true)
		author["recipes"] = recipes
		author["recipes_count"] = entry.RecipesCount
		results = append(results, author)
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"results": results,
	})
}

// Subscribe follows an author
// POST /api/v1/users/:id/subscribe
func (ctrl *UserController) Subscribe(c *gin.Context) {
	ctrl.toggleSubscription(c, true)
}

// Unsubscribe unfollows an author
// DELETE /api/v1/users/:id/subscribe
func (ctrl *UserController) Unsubscribe(c *gin.Context) {
	ctrl.toggleSubscription(c, false)
}

func (ctrl *UserController) toggleSubscription(c *gin.Context, add bool) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	authorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var err error
	if add {
		err = ctrl.relationService.Add(service.RelationSubscription, userID, authorID)
	} else {
		err = ctrl.relationService.Remove(service.RelationSubscription, userID, authorID)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfSubscription):
			apperrors.BadRequest(c, apperrors.SelfSubscription, "You cannot subscribe to yourself")
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
		case errors.Is(err, service.ErrRelationExists):
			apperrors.Conflict(c, apperrors.RelationAlreadyExists, "Already subscribed to this author")
		case errors.Is(err, service.ErrRelationNotFound):
			apperrors.NotFound(c, apperrors.RelationNotFound, "You are not subscribed to this author")
		default:
			log.Error("Subscription toggle failed", err, map[string]interface{}{
				"user_id":   userID,
				"author_id": authorID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	if !add {
		c.JSON(http.StatusNoContent, nil)
		return
	}

	author, err := ctrl.authService.GetUserByID(authorID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, userPayload(author, true))
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(parsed), true
}
