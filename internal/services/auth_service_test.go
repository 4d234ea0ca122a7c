package services

import (
	"testing"
	"time"

	"apartment_booking_backend/internal/models"
	"apartment_booking_backend/internal/repositories"
	"apartment_booking_backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	utils.InitSessionAuth("test-secret", time.Hour)
	return NewAuthService(repositories.NewMemoryAuthRepository())
}

func TestRegisterUserDefaults(t *testing.T) {
	svc := newAuthService(t)

	user, token, err := svc.RegisterUser(RegisterUserRequest{Username: "dana", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, "dana", user.Username)
	assert.Equal(t, "dana", user.Name)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Empty(t, user.PasswordHash)

	claims, err := utils.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "dana", claims.Username)
}

func TestRegisterUserRejectsUnknownRole(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.RegisterUser(RegisterUserRequest{Username: "dana", Password: "secret1", Role: "owner"})
	assert.ErrorIs(t, err, ErrUserValidation)
}

func TestRegisterUserDuplicateUsername(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.RegisterUser(RegisterUserRequest{Username: "dana", Password: "secret1"})
	require.NoError(t, err)

	_, _, err = svc.RegisterUser(RegisterUserRequest{Username: "dana", Password: "other12"})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestLoginUser(t *testing.T) {
	svc := newAuthService(t)

	registered, _, err := svc.RegisterUser(RegisterUserRequest{Username: "dana", Password: "secret1"})
	require.NoError(t, err)

	user, token, err := svc.LoginUser(LoginRequest{Username: "dana", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	// Wrong password and unknown username yield the same error.
	_, _, err = svc.LoginUser(LoginRequest{Username: "dana", Password: "wrong12"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.LoginUser(LoginRequest{Username: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUserProfile(t *testing.T) {
	svc := newAuthService(t)

	registered, _, err := svc.RegisterUser(RegisterUserRequest{Username: "dana", Password: "secret1"})
	require.NoError(t, err)

	user, err := svc.GetUserProfile(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "dana", user.Username)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.GetUserProfile(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEnsureDefaultAdmin(t *testing.T) {
	svc := newAuthService(t)

	require.NoError(t, svc.EnsureDefaultAdmin("admin", "admin123", "System Administrator"))

	user, _, err := svc.LoginUser(LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	// A second call must not fail or reset the password.
	require.NoError(t, svc.EnsureDefaultAdmin("admin", "changed", "System Administrator"))
	_, _, err = svc.LoginUser(LoginRequest{Username: "admin", Password: "admin123"})
	assert.NoError(t, err)
}
