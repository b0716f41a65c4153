package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// IsUniqueViolation reports whether err is a unique-constraint violation from
// the datastore. Covers both Postgres ("duplicate key ... unique constraint")
// and the sqlite driver used in tests ("UNIQUE constraint failed"). Used as the
// backstop for check-then-insert races on relation rows.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

// IsRecordNotFound reports whether err is GORM's missing-row error
func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ParseError maps a storage error to a code and a message safe to show users.
// context is a short tag ("recipe create", "user") used to pick wording.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if IsUniqueViolation(err) {
		return parseDuplicateKeyError(errStrLower)
	}

	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStrLower)
	}

	if strings.Contains(errStrLower, "null value") &&
		strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The service is temporarily unavailable, please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "Something went wrong, please try again later",
	}
}

// ParseAndRespond maps err through ParseError and writes the response.
// statusCode is used as-is except for not-found errors, which become 404.
func ParseAndRespond(c *gin.Context, statusCode int, err error, context string) {
	info := ParseError(err, context)
	if IsRecordNotFound(err) {
		statusCode = http.StatusNotFound
	}
	RespondWithError(c, statusCode, info.Code, info.Message)
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "users.email") || strings.Contains(errLower, "idx_users_email"):
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "This email is already registered"}
	case strings.Contains(errLower, "users.username") || strings.Contains(errLower, "idx_users_username"):
		return ErrorInfo{Code: AuthUsernameExists, Message: "This username is already taken"}
	case strings.Contains(errLower, "idx_favorites_user_recipe") ||
		strings.Contains(errLower, "idx_cart_user_recipe") ||
		strings.Contains(errLower, "idx_subscriptions_user_author"):
		return ErrorInfo{Code: RelationAlreadyExists, Message: "Already added"}
	case strings.Contains(errLower, "tags.name") || strings.Contains(errLower, "tags.slug") ||
		strings.Contains(errLower, "idx_tags"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "A tag with this name or slug already exists"}
	case strings.Contains(errLower, "idx_ingredients_name_unit"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "This ingredient is already in the catalog"}
	case strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "The record already exists, please retry"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "The record already exists"}
}

func parseForeignKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "still referenced") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "The record is referenced by other data and cannot be deleted",
		}
	}
	switch {
	case strings.Contains(errLower, "author_id") || strings.Contains(errLower, "user_id"):
		return ErrorInfo{Code: UserNotFound, Message: "The referenced user does not exist"}
	case strings.Contains(errLower, "recipe_id"):
		return ErrorInfo{Code: RecipeNotFound, Message: "The referenced recipe does not exist"}
	case strings.Contains(errLower, "ingredient_id"):
		return ErrorInfo{Code: IngredientNotFound, Message: "The referenced ingredient does not exist"}
	case strings.Contains(errLower, "tag_id"):
		return ErrorInfo{Code: TagNotFound, Message: "The referenced tag does not exist"}
	}
	return ErrorInfo{Code: ResourceNotFound, Message: "A referenced record does not exist"}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)
	switch {
	case strings.Contains(contextLower, "recipe"):
		return "Recipe not found"
	case strings.Contains(contextLower, "ingredient"):
		return "Ingredient not found"
	case strings.Contains(contextLower, "tag"):
		return "Tag not found"
	case strings.Contains(contextLower, "user") || strings.Contains(contextLower, "author"):
		return "User not found"
	case strings.Contains(contextLower, "subscription"):
		return "Subscription not found"
	}
	return "The requested record was not found"
}
