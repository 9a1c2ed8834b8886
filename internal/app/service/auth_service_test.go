package service

import (
	"testing"
	"time"

	"github.com/serg-shkviro/eshop/internal/app/model"
	"github.com/serg-shkviro/eshop/internal/app/repository"
	"github.com/serg-shkviro/eshop/internal/db"
	"github.com/serg-shkviro/eshop/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	authService := NewAuthService(userRepo, "test-secret", time.Hour)

	return authService, testDB
}

func TestAuthService_Register_Success(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, err := authService.Register("new@example.com", "password123", "New User", "010-1234", "Somewhere 1")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "new@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Register("dup@example.com", "password123", "First", "", "")
	require.NoError(t, err)

	_, err = authService.Register("dup@example.com", "password456", "Second", "", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Register("login@example.com", "password123", "Login User", "", "")
	require.NoError(t, err)

	user, token, err := authService.Login("login@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "login@example.com", user.Email)

	claims, err := util.ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Register("login@example.com", "password123", "Login User", "", "")
	require.NoError(t, err)

	_, _, err = authService.Login("login@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	user, err := authService.Register("inactive@example.com", "password123", "Inactive", "", "")
	require.NoError(t, err)

	testDB.Model(&model.User{}).Where("id = ?", user.ID).Update("is_active", false)

	_, _, err = authService.Login("inactive@example.com", "password123")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, err := authService.Register("profile@example.com", "password123", "Old Name", "", "")
	require.NoError(t, err)

	updated, err := authService.UpdateProfile(user.ID, "New Name", "010-9999", "New Address 5")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "010-9999", updated.Phone)
	assert.Equal(t, "New Address 5", updated.Address)
}

func TestAuthService_ChangePassword(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, err := authService.Register("pw@example.com", "oldpassword", "PW User", "", "")
	require.NoError(t, err)

	err = authService.ChangePassword(user.ID, "wrongpassword", "newpassword")
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = authService.ChangePassword(user.ID, "oldpassword", "newpassword")
	require.NoError(t, err)

	_, _, err = authService.Login("pw@example.com", "oldpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.Login("pw@example.com", "newpassword")
	assert.NoError(t, err)
}
