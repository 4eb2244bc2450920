package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pantry/internal/models"
	"pantry/internal/repositories"
)

const ingredientSearchLimit = 50

type IngredientService struct {
	ingredientRepo IngredientStore
}

func NewIngredientService(ingredientRepo IngredientStore) *IngredientService {
	return &IngredientService{ingredientRepo: ingredientRepo}
}

type IngredientRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Category    *string `json:"category" binding:"omitempty,max=50"`
	DefaultUnit *string `json:"default_unit" binding:"omitempty,max=20"`
}

func (s *IngredientService) SearchIngredients(ctx context.Context, q string) ([]models.Ingredient, error) {
	ingredients, err := s.ingredientRepo.Search(ctx, strings.TrimSpace(q), ingredientSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search ingredients: %w", err)
	}
	return ingredients, nil
}

func (s *IngredientService) CreateIngredient(ctx context.Context, req IngredientRequest) (*models.Ingredient, error) {
	ingredient := &models.Ingredient{
		Name:        req.Name,
		Category:    req.Category,
		DefaultUnit: req.DefaultUnit,
	}
	ingredient.Prepare()
	if ingredient.Name == "" {
		return nil, fmt.Errorf("name must not be blank: %w", ErrInvalidInput)
	}

	if err := s.ingredientRepo.Create(ctx, ingredient); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, fmt.Errorf("ingredient %q already exists: %w", ingredient.Name, ErrConflict)
		}
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *IngredientService) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	ingredient, err := s.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}
	if ingredient == nil {
		return nil, fmt.Errorf("ingredient %s: %w", id, ErrNotFound)
	}
	return ingredient, nil
}

func (s *IngredientService) UpdateIngredient(ctx context.Context, id uuid.UUID, req IngredientRequest) (*models.Ingredient, error) {
	ingredient, err := s.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}
	ingredient.Name = req.Name
	ingredient.Category = req.Category
	ingredient.DefaultUnit = req.DefaultUnit
	ingredient.Prepare()
	if ingredient.Name == "" {
		return nil, fmt.Errorf("name must not be blank: %w", ErrInvalidInput)
	}

	if err := s.ingredientRepo.Update(ctx, ingredient); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, fmt.Errorf("ingredient %q already exists: %w", ingredient.Name, ErrConflict)
		}
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}
	return ingredient, nil
}

// DeleteIngredient refuses ingredients still used by stock or recipes.
func (s *IngredientService) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetIngredient(ctx, id); err != nil {
		return err
	}
	if err := s.ingredientRepo.Delete(ctx, id); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return fmt.Errorf("ingredient is still in use: %w", ErrConflict)
		}
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}
	return nil
}

// requireIngredients loads ids and fails with ErrInvalidInput naming the
// first unknown one.
func (s *IngredientService) requireIngredients(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Ingredient, error) {
	found, err := s.ingredientRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}
	byID := make(map[uuid.UUID]models.Ingredient, len(found))
	for _, ing := range found {
		byID[ing.ID] = ing
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("unknown ingredient %s: %w", id, ErrInvalidInput)
		}
	}
	return byID, nil
}
