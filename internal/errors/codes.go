package errors

// Error code constants returned in the `error` field of failure responses.
// Format: CATEGORY_SPECIFIC_DETAIL; the frontend maps these to messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"
	AuthResetTokenInvalid  = "AUTH_RESET_TOKEN_INVALID"
	AuthResetTokenExpired  = "AUTH_RESET_TOKEN_EXPIRED"
	AuthWrongPassword      = "AUTH_WRONG_PASSWORD"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"
	AuthzAuthorOnly   = "AUTHZ_AUTHOR_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Generic resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Recipes (RECIPE_) ====================
	RecipeNotFound              = "RECIPE_NOT_FOUND"
	RecipeNameExists            = "RECIPE_NAME_EXISTS"
	RecipeNoTags                = "RECIPE_NO_TAGS"
	RecipeDuplicateTag          = "RECIPE_DUPLICATE_TAG"
	RecipeNoIngredients         = "RECIPE_NO_INGREDIENTS"
	RecipeDuplicateIngredient   = "RECIPE_DUPLICATE_INGREDIENT"
	RecipeAmountOutOfRange      = "RECIPE_AMOUNT_OUT_OF_RANGE"
	RecipeCookingTimeOutOfRange = "RECIPE_COOKING_TIME_OUT_OF_RANGE"
	RecipeInvalidImage          = "RECIPE_INVALID_IMAGE"

	// ==================== Catalog (INGREDIENT_ / TAG_) ====================
	IngredientNotFound = "INGREDIENT_NOT_FOUND"
	TagNotFound        = "TAG_NOT_FOUND"
	TagInvalidColor    = "TAG_INVALID_COLOR"

	// ==================== Relations (RELATION_) ====================
	RelationAlreadyExists = "RELATION_ALREADY_EXISTS"
	RelationNotFound      = "RELATION_NOT_FOUND"
	SelfSubscription      = "RELATION_SELF_SUBSCRIPTION"

	// ==================== Users (USER_) ====================
	UserNotFound = "USER_NOT_FOUND"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalStorageError  = "INTERNAL_STORAGE_ERROR"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
