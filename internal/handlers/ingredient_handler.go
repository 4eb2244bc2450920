package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pantry/internal/models"
	"pantry/internal/responses"
	"pantry/internal/services"
)

type IngredientManager interface {
	SearchIngredients(ctx context.Context, q string) ([]models.Ingredient, error)
	CreateIngredient(ctx context.Context, req services.IngredientRequest) (*models.Ingredient, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
	UpdateIngredient(ctx context.Context, id uuid.UUID, req services.IngredientRequest) (*models.Ingredient, error)
	DeleteIngredient(ctx context.Context, id uuid.UUID) error
}

type IngredientHandler struct {
	ingredientService IngredientManager
}

func NewIngredientHandler(ingredientService IngredientManager) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// ListIngredients handles GET /api/v1/ingredients?q=
func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.ingredientService.SearchIngredients(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, "Failed to retrieve ingredients")
		return
	}

	responses.Success(c, http.StatusOK, ingredients, "Ingredients retrieved successfully")
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	var req services.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	ingredient, err := h.ingredientService.CreateIngredient(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create ingredient")
		return
	}

	responses.Success(c, http.StatusCreated, ingredient, "Ingredient created successfully")
}

func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	id, ok := paramUUID(c, "id", "ingredient")
	if !ok {
		return
	}

	ingredient, err := h.ingredientService.GetIngredient(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Ingredient not found")
		return
	}

	responses.Success(c, http.StatusOK, ingredient, "Ingredient retrieved successfully")
}

func (h *IngredientHandler) UpdateIngredient(c *gin.Context) {
	id, ok := paramUUID(c, "id", "ingredient")
	if !ok {
		return
	}

	var req services.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	ingredient, err := h.ingredientService.UpdateIngredient(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to update ingredient")
		return
	}

	responses.Success(c, http.StatusOK, ingredient, "Ingredient updated successfully")
}

func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	id, ok := paramUUID(c, "id", "ingredient")
	if !ok {
		return
	}

	if err := h.ingredientService.DeleteIngredient(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete ingredient")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Ingredient deleted successfully")
}
