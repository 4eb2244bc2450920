package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pantry/internal/models"
	"pantry/internal/responses"
	"pantry/internal/services"
)

type RecipeManager interface {
	CreateRecipe(ctx context.Context, userID uuid.UUID, req services.RecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	ListRecipes(ctx context.Context, q string) ([]models.Recipe, error)
	UpdateRecipe(ctx context.Context, id, userID uuid.UUID, req services.RecipeRequest) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error
}

type RecipeMatcher interface {
	Matches(ctx context.Context, userID uuid.UUID, houseID *uuid.UUID, opts services.MatchOptions) ([]services.RecipeMatch, error)
	MatchOne(ctx context.Context, userID, recipeID uuid.UUID, houseID *uuid.UUID) (*services.RecipeMatch, error)
}

type MissingItemAdder interface {
	AddMissingFromRecipe(ctx context.Context, houseID, userID, recipeID uuid.UUID) ([]models.ShoppingListItem, error)
}

type RecipeHandler struct {
	recipeService RecipeManager
	matchService  RecipeMatcher
	listService   MissingItemAdder
}

func NewRecipeHandler(recipeService RecipeManager, matchService RecipeMatcher, listService MissingItemAdder) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		matchService:  matchService,
		listService:   listService,
	}
}

// ListRecipes handles GET /api/v1/recipes?q=
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, "Failed to retrieve recipes")
		return
	}

	responses.Success(c, http.StatusOK, recipes, "Recipes retrieved successfully")
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create recipe")
		return
	}

	responses.Success(c, http.StatusCreated, recipe, "Recipe created successfully")
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := paramUUID(c, "id", "recipe")
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Recipe not found")
		return
	}

	responses.Success(c, http.StatusOK, recipe, "Recipe retrieved successfully")
}

// UpdateRecipe handles PUT /api/v1/recipes/:id
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id", "recipe")
	if !ok {
		return
	}

	var req services.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, userID, req)
	if err != nil {
		respondError(c, err, "Failed to update recipe")
		return
	}

	responses.Success(c, http.StatusOK, recipe, "Recipe updated successfully")
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id", "recipe")
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		respondError(c, err, "Failed to delete recipe")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Recipe deleted successfully")
}

// ListMatches handles GET /api/v1/recipes/matches?house_id&min_percent&makeable_only
func (h *RecipeHandler) ListMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	houseID, ok := optionalQueryUUID(c, "house_id")
	if !ok {
		return
	}

	var opts services.MatchOptions
	if raw := c.Query("min_percent"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > 100 {
			responses.Fail(c, http.StatusBadRequest, nil, "min_percent must be between 0 and 100")
			return
		}
		opts.MinPercent = v
	}
	if raw := c.Query("makeable_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			responses.Fail(c, http.StatusBadRequest, nil, "Invalid makeable_only")
			return
		}
		opts.MakeableOnly = v
	}

	matches, err := h.matchService.Matches(c.Request.Context(), userID, houseID, opts)
	if err != nil {
		respondError(c, err, "Failed to match recipes")
		return
	}

	responses.Success(c, http.StatusOK, matches, "Recipe matches retrieved successfully")
}

// GetMatch handles GET /api/v1/recipes/:id/match?house_id
func (h *RecipeHandler) GetMatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id", "recipe")
	if !ok {
		return
	}
	houseID, ok := optionalQueryUUID(c, "house_id")
	if !ok {
		return
	}

	match, err := h.matchService.MatchOne(c.Request.Context(), userID, id, houseID)
	if err != nil {
		respondError(c, err, "Failed to match recipe")
		return
	}

	responses.Success(c, http.StatusOK, match, "Recipe match retrieved successfully")
}

// AddMissingToShoppingList handles POST /api/v1/recipes/:id/shopping-list?house_id
func (h *RecipeHandler) AddMissingToShoppingList(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id", "recipe")
	if !ok {
		return
	}
	houseID, ok := optionalQueryUUID(c, "house_id")
	if !ok {
		return
	}
	if houseID == nil {
		responses.Fail(c, http.StatusBadRequest, nil, "house_id is required")
		return
	}

	items, err := h.listService.AddMissingFromRecipe(c.Request.Context(), *houseID, userID, id)
	if err != nil {
		respondError(c, err, "Failed to add missing ingredients")
		return
	}

	responses.Success(c, http.StatusCreated, items, "Missing ingredients added to shopping list")
}
