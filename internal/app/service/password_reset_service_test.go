package service

import (
	"testing"
	"time"

	"github.com/mlarina/foodgram-backend/internal/app/model"
	"github.com/mlarina/foodgram-backend/internal/app/repository"
	"github.com/mlarina/foodgram-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type passwordResetFixture struct {
	db      *gorm.DB
	service PasswordResetService
	auth    AuthService
}

func setupPasswordResetServiceTest(t *testing.T) *passwordResetFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	resetRepo := repository.NewPasswordResetRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	return &passwordResetFixture{
		db:      testDB,
		service: NewPasswordResetService(resetRepo, userRepo),
		auth:    NewAuthService(userRepo, testJWTSecret, 15*time.Minute, time.Hour),
	}
}

func (f *passwordResetFixture) latestToken(t *testing.T, email string) string {
	var reset model.PasswordReset
	require.NoError(t, f.db.Where("email = ?", email).Order("id DESC").First(&reset).Error)
	return reset.Token
}

func TestPasswordResetService_FullFlow(t *testing.T) {
	f := setupPasswordResetServiceTest(t)

	_, _, err := f.auth.Register("anna@example.com", "anna", "secret123", "Anna", "Smith")
	require.NoError(t, err)

	require.NoError(t, f.service.RequestReset("anna@example.com"))
	token := f.latestToken(t, "anna@example.com")
	require.NotEmpty(t, token)

	require.NoError(t, f.service.ResetPassword(token, "newpass123"))

	_, _, err = f.auth.Login("anna@example.com", "newpass123")
	assert.NoError(t, err)
	_, _, err = f.auth.Login("anna@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// The token is single-use
	assert.ErrorIs(t, f.service.ResetPassword(token, "another123"), ErrResetTokenUsed)
}

func TestPasswordResetService_UnknownEmailIsSilent(t *testing.T) {
	f := setupPasswordResetServiceTest(t)

	// No user, still no error
	assert.NoError(t, f.service.RequestReset("ghost@example.com"))

	var count int64
	f.db.Model(&model.PasswordReset{}).Count(&count)
	assert.Zero(t, count)
}

func TestPasswordResetService_ExpiredToken(t *testing.T) {
	f := setupPasswordResetServiceTest(t)

	_, _, err := f.auth.Register("anna@example.com", "anna", "secret123", "Anna", "Smith")
	require.NoError(t, err)

	require.NoError(t, f.service.RequestReset("anna@example.com"))
	token := f.latestToken(t, "anna@example.com")

	require.NoError(t, f.db.Model(&model.PasswordReset{}).
		Where("token = ?", token).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	assert.ErrorIs(t, f.service.ResetPassword(token, "newpass123"), ErrResetTokenExpired)

	assert.ErrorIs(t, f.service.ResetPassword("bogus-token", "newpass123"), ErrInvalidResetToken)
}

func TestPasswordResetService_PurgeExpired(t *testing.T) {
	f := setupPasswordResetServiceTest(t)

	_, _, err := f.auth.Register("anna@example.com", "anna", "secret123", "Anna", "Smith")
	require.NoError(t, err)

	require.NoError(t, f.service.RequestReset("anna@example.com"))
	require.NoError(t, f.service.RequestReset("anna@example.com"))
	token := f.latestToken(t, "anna@example.com")

	// One expired, one still live
	require.NoError(t, f.db.Model(&model.PasswordReset{}).
		Where("token <> ?", token).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	purged, err := f.service.PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	var count int64
	f.db.Model(&model.PasswordReset{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
