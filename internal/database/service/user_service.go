package service

import (
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/tastebase/backend-go/internal/database/models"
	"github.com/tastebase/backend-go/internal/database/repository"
)

// ProfileUpdate carries the optional profile changes. A nil field means
// "leave as is".
type ProfileUpdate struct {
	Email    *string
	Name     *string
	Password *string
}

// UserService defines the interface for profile business logic. It only
// ever operates on the authenticated user's own row.
type UserService interface {
	GetUser(userID uint) (*models.User, error)
	UpdateProfile(userID uint, update ProfileUpdate) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repository.UserRepository, logger *slog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *userService) GetUser(userID uint) (*models.User, error) {
	return s.userRepo.FindByID(userID)
}

func (s *userService) UpdateProfile(userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if update.Email != nil {
		email, err := NormalizeEmail(*update.Email)
		if err != nil {
			return nil, err
		}
		if email != user.Email {
			existing, err := s.userRepo.FindByEmail(email)
			if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
				return nil, err
			}
			if existing != nil {
				return nil, ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}

	if update.Name != nil {
		user.Name = *update.Name
	}

	if update.Password != nil {
		if len(*update.Password) < MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		s.logger.Error("❌ [UserService] Failed to update profile", "user_id", userID, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [UserService] Profile updated", "user_id", userID)
	return user, nil
}
