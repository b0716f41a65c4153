package service

import (
	"testing"
	"time"

	"github.com/mlarina/foodgram-backend/internal/app/repository"
	"github.com/mlarina/foodgram-backend/internal/db"
	"github.com/mlarina/foodgram-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, testJWTSecret, 15*time.Minute, 7*24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, tokens, err := authService.Register("anna@example.com", "anna", "secret123", "Anna", "Smith")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, tokens)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.Equal(t, "anna", user.Username)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := util.ValidateToken(tokens.AccessToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// Duplicate email
	_, _, err = authService.Register("anna@example.com", "anna2", "secret123", "Anna", "Smith")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	// Duplicate username
	_, _, err = authService.Register("anna2@example.com", "anna", "secret123", "Anna", "Smith")
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Register("anna@example.com", "anna", "secret123", "Anna", "Smith")
	require.NoError(t, err)

	user, tokens, err := authService.Login("anna@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "anna", user.Username)
	assert.NotEmpty(t, tokens.AccessToken)

	_, _, err = authService.Login("anna@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, _, err := authService.Register("anna@example.com", "anna", "secret123", "Anna", "Smith")
	require.NoError(t, err)

	updated, err := authService.UpdateProfile(user.ID, "Annie", "Jones")
	require.NoError(t, err)
	assert.Equal(t, "Annie", updated.FirstName)
	assert.Equal(t, "Jones", updated.LastName)

	_, err = authService.UpdateProfile(9999, "X", "Y")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_ChangePassword(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, _, err := authService.Register("anna@example.com", "anna", "secret123", "Anna", "Smith")
	require.NoError(t, err)

	err = authService.ChangePassword(user.ID, "wrong", "newpass123")
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, authService.ChangePassword(user.ID, "secret123", "newpass123"))

	_, _, err = authService.Login("anna@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.Login("anna@example.com", "newpass123")
	assert.NoError(t, err)
}
