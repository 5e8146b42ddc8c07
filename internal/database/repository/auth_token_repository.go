package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tastebase/backend-go/internal/database/models"
)

// AuthTokenRepository defines the interface for bearer token operations
type AuthTokenRepository interface {
	// GetOrCreate returns the user's existing token, minting one with the
	// supplied key only when the user has none yet.
	GetOrCreate(userID uint, key string) (*models.AuthToken, error)
	FindByKey(key string) (*models.AuthToken, error)
	DeleteByUser(userID uint) error
}

type authTokenRepository struct {
	db *gorm.DB
}

// NewAuthTokenRepository creates a new auth token repository instance
func NewAuthTokenRepository(db *gorm.DB) AuthTokenRepository {
	return &authTokenRepository{db: db}
}

func (r *authTokenRepository) GetOrCreate(userID uint, key string) (*models.AuthToken, error) {
	var token models.AuthToken
	err := r.db.Where(models.AuthToken{UserID: userID}).
		Attrs(models.AuthToken{Key: key}).
		FirstOrCreate(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *authTokenRepository) FindByKey(key string) (*models.AuthToken, error) {
	var token models.AuthToken
	err := r.db.Where("key = ?", key).Preload("User").First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *authTokenRepository) DeleteByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error
}

// Repository errors
var (
	ErrTokenNotFound = errors.New("token not found")
)
