package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/tastebase/backend-go/internal/database/models"
	"github.com/tastebase/backend-go/internal/database/repository"
)

// MinPasswordLength applies to registration and profile updates alike.
const MinPasswordLength = 5

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(email, password, name string) (*models.User, error)
	CreateSuperuser(email, password, name string) (*models.User, error)
	// Login verifies credentials and returns the user's bearer token key.
	// The key is minted on first login and reused afterwards.
	Login(email, password string) (string, *models.User, error)
	// ResolveToken maps a bearer token key back to its active user.
	ResolveToken(key string) (*models.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.AuthTokenRepository
	logger    *slog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.AuthTokenRepository,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		logger:    logger,
	}
}

func (s *authService) Register(email, password, name string) (*models.User, error) {
	return s.createUser(email, password, name, false)
}

func (s *authService) CreateSuperuser(email, password, name string) (*models.User, error) {
	return s.createUser(email, password, name, true)
}

func (s *authService) createUser(email, password, name string, superuser bool) (*models.User, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, err
	}
	if existing != nil {
		s.logger.Warn("⚠️ [AuthService] Email already registered", "email", email)
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		Email:       email,
		Password:    string(hashedPassword),
		Name:        name,
		IsActive:    true,
		IsStaff:     superuser,
		IsSuperuser: superuser,
	}

	if err := s.userRepo.Create(user); err != nil {
		s.logger.Error("❌ [AuthService] Failed to create user", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AuthService] User registered", "user_id", user.ID)
	return user, nil
}

func (s *authService) Login(email, password string) (string, *models.User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(normalized)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [AuthService] Unknown email on login", "email", normalized)
			return "", nil, ErrInvalidCredentials
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return "", nil, err
	}

	if !user.IsActive {
		s.logger.Warn("⚠️ [AuthService] Login attempt for inactive user", "user_id", user.ID)
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("⚠️ [AuthService] Invalid password", "user_id", user.ID)
		return "", nil, ErrInvalidCredentials
	}

	key, err := generateTokenKey()
	if err != nil {
		return "", nil, err
	}

	// Reuses the existing token row if the user already has one; the fresh
	// key is only used on a user's very first login.
	token, err := s.tokenRepo.GetOrCreate(user.ID, key)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to issue token", "user_id", user.ID, "error", err)
		return "", nil, err
	}

	s.logger.Info("✅ [AuthService] User logged in", "user_id", user.ID)
	return token.Key, user, nil
}

func (s *authService) ResolveToken(key string) (*models.User, error) {
	token, err := s.tokenRepo.FindByKey(key)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !token.User.IsActive {
		return nil, ErrInvalidToken
	}
	return &token.User, nil
}

// NormalizeEmail lowercases the domain part of the address, leaving the
// local part untouched.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrEmailRequired
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", ErrEmailInvalid
	}
	return email[:at+1] + strings.ToLower(email[at+1:]), nil
}

func generateTokenKey() (string, error) {
	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(keyBytes), nil
}

// Service errors
var (
	ErrEmailRequired      = errors.New("email address is required")
	ErrEmailInvalid       = errors.New("email address is invalid")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrPasswordTooShort   = errors.New("password must be at least 5 characters")
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
