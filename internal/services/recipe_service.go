package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pantry/internal/models"
)

type RecipeService struct {
	recipeRepo  RecipeStore
	ingredients *IngredientService
}

func NewRecipeService(recipeRepo RecipeStore, ingredients *IngredientService) *RecipeService {
	return &RecipeService{recipeRepo: recipeRepo, ingredients: ingredients}
}

type RecipeIngredientRequest struct {
	IngredientID uuid.UUID           `json:"ingredient_id" binding:"required"`
	Quantity     decimal.NullDecimal `json:"quantity"`
	Unit         *string             `json:"unit" binding:"omitempty,max=20"`
	Optional     bool                `json:"optional"`
	Note         *string             `json:"note" binding:"omitempty,max=200"`
}

type RecipeRequest struct {
	Title        string                    `json:"title" binding:"required,max=200"`
	Description  *string                   `json:"description"`
	Servings     *int                      `json:"servings" binding:"omitempty,min=1,max=100"`
	PrepMinutes  *int                      `json:"prep_minutes" binding:"omitempty,min=0"`
	CookMinutes  *int                      `json:"cook_minutes" binding:"omitempty,min=0"`
	ImageURL     *string                   `json:"image_url" binding:"omitempty,url"`
	Ingredients  []RecipeIngredientRequest `json:"ingredients" binding:"dive"`
	Instructions []string                  `json:"instructions" binding:"dive,required"`
}

// toRecipe validates the request and resolves ingredient names.
func (s *RecipeService) toRecipe(ctx context.Context, req RecipeRequest) (*models.Recipe, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title must not be blank: %w", ErrInvalidInput)
	}

	ids := make([]uuid.UUID, 0, len(req.Ingredients))
	seen := make(map[uuid.UUID]bool, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if seen[ing.IngredientID] {
			return nil, fmt.Errorf("ingredient %s listed twice: %w", ing.IngredientID, ErrInvalidInput)
		}
		if ing.Quantity.Valid && !ing.Quantity.Decimal.IsPositive() {
			return nil, fmt.Errorf("ingredient quantity must be positive: %w", ErrInvalidInput)
		}
		seen[ing.IngredientID] = true
		ids = append(ids, ing.IngredientID)
	}

	byID, err := s.ingredients.requireIngredients(ctx, ids)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:        req.Title,
		Description:  req.Description,
		Servings:     req.Servings,
		PrepMinutes:  req.PrepMinutes,
		CookMinutes:  req.CookMinutes,
		ImageURL:     req.ImageURL,
		Ingredients:  make([]models.RecipeIngredient, 0, len(req.Ingredients)),
		Instructions: make([]models.RecipeInstruction, 0, len(req.Instructions)),
	}
	for _, ing := range req.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			IngredientID:   ing.IngredientID,
			Quantity:       ing.Quantity,
			Unit:           ing.Unit,
			Optional:       ing.Optional,
			Note:           ing.Note,
			IngredientName: byID[ing.IngredientID].Name,
		})
	}
	for _, text := range req.Instructions {
		if strings.TrimSpace(text) == "" {
			continue
		}
		recipe.Instructions = append(recipe.Instructions, models.RecipeInstruction{Text: text})
	}
	return recipe, nil
}

func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req RecipeRequest) (*models.Recipe, error) {
	recipe, err := s.toRecipe(ctx, req)
	if err != nil {
		return nil, err
	}
	recipe.CreatedBy = userID

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return recipe, nil
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	if recipe == nil {
		return nil, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	return recipe, nil
}

func (s *RecipeService) ListRecipes(ctx context.Context, q string) ([]models.Recipe, error) {
	recipes, err := s.recipeRepo.List(ctx, strings.TrimSpace(q))
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

func (s *RecipeService) ownRecipe(ctx context.Context, id, userID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.CreatedBy != userID {
		return nil, fmt.Errorf("only the author may change a recipe: %w", ErrForbidden)
	}
	return recipe, nil
}

// UpdateRecipe replaces the recipe including its ingredient and step lists.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, userID uuid.UUID, req RecipeRequest) (*models.Recipe, error) {
	existing, err := s.ownRecipe(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	recipe, err := s.toRecipe(ctx, req)
	if err != nil {
		return nil, err
	}
	recipe.ID = existing.ID
	recipe.CreatedBy = existing.CreatedBy
	recipe.CreatedAt = existing.CreatedAt

	if err := s.recipeRepo.Replace(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return recipe, nil
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.ownRecipe(ctx, id, userID); err != nil {
		return err
	}
	if err := s.recipeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}
