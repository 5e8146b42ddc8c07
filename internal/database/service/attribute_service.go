package service

import (
	"errors"
	"log/slog"

	"github.com/tastebase/backend-go/internal/database/repository"
)

// Attribute is the neutral shape shared by tags and ingredients on the
// API surface.
type Attribute struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// AttributeService is the common contract for the two recipe attribute
// kinds. There is deliberately no Create: attributes only come into
// existence through recipe writes.
type AttributeService interface {
	List(userID uint, assignedOnly bool) ([]Attribute, error)
	Rename(userID, id uint, name string) (*Attribute, error)
	Delete(userID, id uint) error
}

type tagService struct {
	repo   repository.TagRepository
	logger *slog.Logger
}

// NewTagService creates the tag-backed attribute service
func NewTagService(repo repository.TagRepository, logger *slog.Logger) AttributeService {
	return &tagService{repo: repo, logger: logger}
}

func (s *tagService) List(userID uint, assignedOnly bool) ([]Attribute, error) {
	tags, err := s.repo.ListByOwner(userID, assignedOnly)
	if err != nil {
		return nil, err
	}
	attrs := make([]Attribute, 0, len(tags))
	for _, tag := range tags {
		attrs = append(attrs, Attribute{ID: tag.ID, Name: tag.Name})
	}
	return attrs, nil
}

func (s *tagService) Rename(userID, id uint, name string) (*Attribute, error) {
	tag, err := s.repo.FindByOwnerAndID(userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return nil, ErrAttributeNotFound
		}
		return nil, err
	}
	tag.Name = name
	if err := s.repo.Update(tag); err != nil {
		s.logger.Error("❌ [AttributeService] Failed to rename tag", "tag_id", id, "error", err)
		return nil, err
	}
	return &Attribute{ID: tag.ID, Name: tag.Name}, nil
}

func (s *tagService) Delete(userID, id uint) error {
	err := s.repo.Delete(userID, id)
	if errors.Is(err, repository.ErrTagNotFound) {
		return ErrAttributeNotFound
	}
	return err
}

type ingredientService struct {
	repo   repository.IngredientRepository
	logger *slog.Logger
}

// NewIngredientService creates the ingredient-backed attribute service
func NewIngredientService(repo repository.IngredientRepository, logger *slog.Logger) AttributeService {
	return &ingredientService{repo: repo, logger: logger}
}

func (s *ingredientService) List(userID uint, assignedOnly bool) ([]Attribute, error) {
	ingredients, err := s.repo.ListByOwner(userID, assignedOnly)
	if err != nil {
		return nil, err
	}
	attrs := make([]Attribute, 0, len(ingredients))
	for _, ingredient := range ingredients {
		attrs = append(attrs, Attribute{ID: ingredient.ID, Name: ingredient.Name})
	}
	return attrs, nil
}

func (s *ingredientService) Rename(userID, id uint, name string) (*Attribute, error) {
	ingredient, err := s.repo.FindByOwnerAndID(userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrIngredientNotFound) {
			return nil, ErrAttributeNotFound
		}
		return nil, err
	}
	ingredient.Name = name
	if err := s.repo.Update(ingredient); err != nil {
		s.logger.Error("❌ [AttributeService] Failed to rename ingredient", "ingredient_id", id, "error", err)
		return nil, err
	}
	return &Attribute{ID: ingredient.ID, Name: ingredient.Name}, nil
}

func (s *ingredientService) Delete(userID, id uint) error {
	err := s.repo.Delete(userID, id)
	if errors.Is(err, repository.ErrIngredientNotFound) {
		return ErrAttributeNotFound
	}
	return err
}

// Service errors
var (
	ErrAttributeNotFound = errors.New("attribute not found")
)
