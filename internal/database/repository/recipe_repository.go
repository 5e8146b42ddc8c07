package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tastebase/backend-go/internal/database/models"
)

// RecipeRepository defines the interface for recipe data operations.
// Every query is constrained to the owning user; a recipe belonging to
// someone else is indistinguishable from one that does not exist.
type RecipeRepository interface {
	Create(recipe *models.Recipe) error
	FindByOwnerAndID(userID, id uint) (*models.Recipe, error)
	ListByOwner(userID uint, tagIDs, ingredientIDs []uint) ([]models.Recipe, error)
	UpdateFields(recipe *models.Recipe) error
	ReplaceTags(recipe *models.Recipe, tags []models.Tag) error
	ReplaceIngredients(recipe *models.Recipe, ingredients []models.Ingredient) error
	Delete(userID, id uint) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository instance
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(recipe *models.Recipe) error {
	// gorm creates the join rows for pre-resolved tags/ingredients in the
	// same transaction as the recipe row.
	return r.db.Create(recipe).Error
}

func (r *recipeRepository) FindByOwnerAndID(userID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.Where("user_id = ?", userID).
		Preload("Tags").
		Preload("Ingredients").
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) ListByOwner(userID uint, tagIDs, ingredientIDs []uint) ([]models.Recipe, error) {
	query := r.db.Model(&models.Recipe{}).Where("recipes.user_id = ?", userID)

	// OR within a filter (IN), AND across the two filters (stacked joins).
	// A recipe matching several filter values would come back once per
	// match without the DISTINCT.
	if len(tagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", tagIDs)
	}
	if len(ingredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", ingredientIDs)
	}

	var recipes []models.Recipe
	err := query.Distinct("recipes.*").
		Order("recipes.id DESC").
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) UpdateFields(recipe *models.Recipe) error {
	// Associations are replaced explicitly through ReplaceTags /
	// ReplaceIngredients, never implicitly on save.
	return r.db.Omit("Tags", "Ingredients").Save(recipe).Error
}

func (r *recipeRepository) ReplaceTags(recipe *models.Recipe, tags []models.Tag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
}

func (r *recipeRepository) ReplaceIngredients(recipe *models.Recipe, ingredients []models.Ingredient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(recipe).Association("Ingredients").Replace(ingredients)
	})
}

func (r *recipeRepository) Delete(userID, id uint) error {
	// Join rows go; the tag and ingredient rows stay.
	return r.db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("user_id = ?", userID).First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// Repository errors
var (
	ErrRecipeNotFound = errors.New("recipe not found")
)
