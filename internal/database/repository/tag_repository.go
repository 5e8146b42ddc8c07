package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tastebase/backend-go/internal/database/models"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	// GetOrCreate resolves a tag by its (user, name) natural key, creating
	// it when absent. Invoked from the recipe write path; tags have no
	// direct create endpoint.
	GetOrCreate(userID uint, name string) (*models.Tag, error)
	ListByOwner(userID uint, assignedOnly bool) ([]models.Tag, error)
	FindByOwnerAndID(userID, id uint) (*models.Tag, error)
	Update(tag *models.Tag) error
	Delete(userID, id uint) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository instance
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetOrCreate(userID uint, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where(models.Tag{UserID: userID, Name: name}).FirstOrCreate(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) ListByOwner(userID uint, assignedOnly bool) ([]models.Tag, error) {
	query := r.db.Where("user_id = ?", userID)
	if assignedOnly {
		query = query.Where("id IN (SELECT tag_id FROM recipe_tags)")
	}

	var tags []models.Tag
	err := query.Order("name DESC").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) FindByOwnerAndID(userID, id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("user_id = ?", userID).First(&tag, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) Update(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

func (r *tagRepository) Delete(userID, id uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Tag{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}

// Repository errors
var (
	ErrTagNotFound = errors.New("tag not found")
)
