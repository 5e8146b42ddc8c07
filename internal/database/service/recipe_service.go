package service

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tastebase/backend-go/internal/config"
	"github.com/tastebase/backend-go/internal/database/models"
	"github.com/tastebase/backend-go/internal/database/repository"
)

// AttributeInput names a tag or ingredient inside a recipe payload.
type AttributeInput struct {
	Name string
}

// RecipeInput is a full recipe description for create and full update.
type RecipeInput struct {
	Title       string
	Description string
	TimeMinutes int
	Price       decimal.Decimal
	Link        string
	Tags        []AttributeInput
	Ingredients []AttributeInput
}

// RecipeUpdate carries a partial update. Nil means "leave untouched";
// a present but empty Tags/Ingredients slice means "clear all".
type RecipeUpdate struct {
	Title       *string
	Description *string
	TimeMinutes *int
	Price       *decimal.Decimal
	Link        *string
	Tags        *[]AttributeInput
	Ingredients *[]AttributeInput
}

// RecipeService defines the interface for recipe business logic. Every
// operation is scoped to the calling user.
type RecipeService interface {
	List(userID uint, tagIDs, ingredientIDs []uint) ([]models.Recipe, error)
	Get(userID, id uint) (*models.Recipe, error)
	Create(userID uint, input RecipeInput) (*models.Recipe, error)
	Update(userID, id uint, update RecipeUpdate) (*models.Recipe, error)
	Delete(userID, id uint) error
	// SaveImage stores the upload under a fresh collision-resistant name
	// and keeps only the relative reference on the recipe.
	SaveImage(userID, id uint, filename string, src io.Reader) (*models.Recipe, error)
}

type recipeService struct {
	recipeRepo     repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
	cfg            *config.Config
	logger         *slog.Logger
}

// NewRecipeService creates a new recipe service instance
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	cfg *config.Config,
	logger *slog.Logger,
) RecipeService {
	return &recipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		cfg:            cfg,
		logger:         logger,
	}
}

func (s *recipeService) List(userID uint, tagIDs, ingredientIDs []uint) ([]models.Recipe, error) {
	return s.recipeRepo.ListByOwner(userID, tagIDs, ingredientIDs)
}

func (s *recipeService) Get(userID, id uint) (*models.Recipe, error) {
	return s.recipeRepo.FindByOwnerAndID(userID, id)
}

func (s *recipeService) Create(userID uint, input RecipeInput) (*models.Recipe, error) {
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(userID, input.Tags)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.resolveIngredients(userID, input.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Link:        input.Link,
		Tags:        tags,
		Ingredients: ingredients,
	}

	if err := s.recipeRepo.Create(recipe); err != nil {
		s.logger.Error("❌ [RecipeService] Failed to create recipe", "user_id", userID, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [RecipeService] Recipe created", "user_id", userID, "recipe_id", recipe.ID)
	return recipe, nil
}

func (s *recipeService) Update(userID, id uint, update RecipeUpdate) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.FindByOwnerAndID(userID, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		recipe.Title = *update.Title
	}
	if update.Description != nil {
		recipe.Description = *update.Description
	}
	if update.TimeMinutes != nil {
		recipe.TimeMinutes = *update.TimeMinutes
	}
	if update.Price != nil {
		if err := validatePrice(*update.Price); err != nil {
			return nil, err
		}
		recipe.Price = *update.Price
	}
	if update.Link != nil {
		recipe.Link = *update.Link
	}

	if err := s.recipeRepo.UpdateFields(recipe); err != nil {
		s.logger.Error("❌ [RecipeService] Failed to update recipe", "recipe_id", id, "error", err)
		return nil, err
	}

	// An absent key leaves the association set alone; a present key, empty
	// list included, replaces it wholesale.
	if update.Tags != nil {
		tags, err := s.resolveTags(userID, *update.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.recipeRepo.ReplaceTags(recipe, tags); err != nil {
			return nil, err
		}
		recipe.Tags = tags
	}
	if update.Ingredients != nil {
		ingredients, err := s.resolveIngredients(userID, *update.Ingredients)
		if err != nil {
			return nil, err
		}
		if err := s.recipeRepo.ReplaceIngredients(recipe, ingredients); err != nil {
			return nil, err
		}
		recipe.Ingredients = ingredients
	}

	s.logger.Info("✅ [RecipeService] Recipe updated", "user_id", userID, "recipe_id", id)
	return recipe, nil
}

func (s *recipeService) Delete(userID, id uint) error {
	if err := s.recipeRepo.Delete(userID, id); err != nil {
		return err
	}
	s.logger.Info("✅ [RecipeService] Recipe deleted", "user_id", userID, "recipe_id", id)
	return nil
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func (s *recipeService) SaveImage(userID, id uint, filename string, src io.Reader) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.FindByOwnerAndID(userID, id)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !imageExtensions[ext] {
		return nil, ErrInvalidImage
	}

	// Original name is discarded entirely; only the extension survives.
	relPath := filepath.Join("uploads", "recipe", uuid.New().String()+ext)
	absPath := filepath.Join(s.cfg.MediaDir, relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, err
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(absPath)
		return nil, err
	}
	if err := dst.Close(); err != nil {
		return nil, err
	}

	oldImage := recipe.Image
	recipe.Image = &relPath
	if err := s.recipeRepo.UpdateFields(recipe); err != nil {
		os.Remove(absPath)
		return nil, err
	}

	if oldImage != nil {
		// Best effort; a stale file is not worth failing the request over.
		os.Remove(filepath.Join(s.cfg.MediaDir, *oldImage))
	}

	s.logger.Info("✅ [RecipeService] Recipe image stored", "recipe_id", id, "path", relPath)
	return recipe, nil
}

func (s *recipeService) resolveTags(userID uint, inputs []AttributeInput) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(inputs))
	for _, input := range inputs {
		tag, err := s.tagRepo.GetOrCreate(userID, input.Name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *recipeService) resolveIngredients(userID uint, inputs []AttributeInput) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0, len(inputs))
	for _, input := range inputs {
		ingredient, err := s.ingredientRepo.GetOrCreate(userID, input.Name)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, *ingredient)
	}
	return ingredients, nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	if price.Exponent() < -2 {
		return ErrInvalidPrice
	}
	// NUMERIC(5,2): three integer digits at most.
	if price.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return ErrInvalidPrice
	}
	return nil
}

// Service errors
var (
	ErrInvalidPrice = errors.New("price must be non-negative with at most 2 decimal places and 5 digits")
	ErrInvalidImage = errors.New("uploaded file is not a supported image type")
)
