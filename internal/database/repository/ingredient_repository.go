package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tastebase/backend-go/internal/database/models"
)

// IngredientRepository mirrors TagRepository for the ingredient table.
type IngredientRepository interface {
	GetOrCreate(userID uint, name string) (*models.Ingredient, error)
	ListByOwner(userID uint, assignedOnly bool) ([]models.Ingredient, error)
	FindByOwnerAndID(userID, id uint) (*models.Ingredient, error)
	Update(ingredient *models.Ingredient) error
	Delete(userID, id uint) error
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository instance
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) GetOrCreate(userID uint, name string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.Where(models.Ingredient{UserID: userID, Name: name}).FirstOrCreate(&ingredient).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) ListByOwner(userID uint, assignedOnly bool) ([]models.Ingredient, error) {
	query := r.db.Where("user_id = ?", userID)
	if assignedOnly {
		query = query.Where("id IN (SELECT ingredient_id FROM recipe_ingredients)")
	}

	var ingredients []models.Ingredient
	err := query.Order("name DESC").Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepository) FindByOwnerAndID(userID, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.Where("user_id = ?", userID).First(&ingredient, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) Update(ingredient *models.Ingredient) error {
	return r.db.Save(ingredient).Error
}

func (r *ingredientRepository) Delete(userID, id uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Ingredient{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIngredientNotFound
	}
	return nil
}

// Repository errors
var (
	ErrIngredientNotFound = errors.New("ingredient not found")
)
