package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tastebase/backend-go/internal/database/models"
	"github.com/tastebase/backend-go/internal/database/repository"
)

func strPtr(s string) *string { return &s }

func TestUserService_UpdateProfile(t *testing.T) {
	current := func() *models.User {
		return &models.User{ID: 1, Email: "me@example.com", Name: "Me", Password: "old-hash", IsActive: true}
	}

	t.Run("name only", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", uint(1)).Return(current(), nil)
		userRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil)

		svc := NewUserService(userRepo, testLogger())
		user, err := svc.UpdateProfile(1, ProfileUpdate{Name: strPtr("New Name")})

		require.NoError(t, err)
		assert.Equal(t, "New Name", user.Name)
		assert.Equal(t, "me@example.com", user.Email)
		assert.Equal(t, "old-hash", user.Password)
	})

	t.Run("password is rehashed", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", uint(1)).Return(current(), nil)
		userRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil)

		svc := NewUserService(userRepo, testLogger())
		user, err := svc.UpdateProfile(1, ProfileUpdate{Password: strPtr("new-password")})

		require.NoError(t, err)
		assert.NotEqual(t, "new-password", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("new-password")))
	})

	t.Run("short password rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", uint(1)).Return(current(), nil)

		svc := NewUserService(userRepo, testLogger())
		_, err := svc.UpdateProfile(1, ProfileUpdate{Password: strPtr("pw")})
		assert.ErrorIs(t, err, ErrPasswordTooShort)
		userRepo.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("email change to taken address", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", uint(1)).Return(current(), nil)
		userRepo.On("FindByEmail", "taken@example.com").
			Return(&models.User{ID: 2, Email: "taken@example.com"}, nil)

		svc := NewUserService(userRepo, testLogger())
		_, err := svc.UpdateProfile(1, ProfileUpdate{Email: strPtr("taken@example.com")})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("resubmitting own email skips the uniqueness check", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", uint(1)).Return(current(), nil)
		userRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil)

		svc := NewUserService(userRepo, testLogger())
		user, err := svc.UpdateProfile(1, ProfileUpdate{Email: strPtr("me@example.com")})

		require.NoError(t, err)
		assert.Equal(t, "me@example.com", user.Email)
		userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything)
	})

	t.Run("email is normalized before the change", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", uint(1)).Return(current(), nil)
		userRepo.On("FindByEmail", "fresh@example.com").Return(nil, repository.ErrUserNotFound)
		userRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil)

		svc := NewUserService(userRepo, testLogger())
		user, err := svc.UpdateProfile(1, ProfileUpdate{Email: strPtr("fresh@EXAMPLE.com")})

		require.NoError(t, err)
		assert.Equal(t, "fresh@example.com", user.Email)
	})
}
