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

type ShoppingListManager interface {
	ListItems(ctx context.Context, houseID uuid.UUID) ([]models.ShoppingListItem, error)
	AddItem(ctx context.Context, houseID, userID uuid.UUID, req services.ShoppingItemRequest) (*models.ShoppingListItem, error)
	UpdateItem(ctx context.Context, houseID, itemID uuid.UUID, req services.ShoppingItemUpdateRequest) (*models.ShoppingListItem, error)
	DeleteItem(ctx context.Context, houseID, itemID uuid.UUID) error
	ClearChecked(ctx context.Context, houseID uuid.UUID) (int64, error)
	ReorderItems(ctx context.Context, houseID uuid.UUID, ids []uuid.UUID) ([]models.ShoppingListItem, error)
	Suggestions(ctx context.Context, houseID uuid.UUID) ([]services.Suggestion, error)
	AcceptSuggestions(ctx context.Context, houseID, userID uuid.UUID, ingredientIDs []uuid.UUID) ([]models.ShoppingListItem, error)
}

type ShoppingListHandler struct {
	listService ShoppingListManager
}

func NewShoppingListHandler(listService ShoppingListManager) *ShoppingListHandler {
	return &ShoppingListHandler{listService: listService}
}

func (h *ShoppingListHandler) ListItems(c *gin.Context) {
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}

	items, err := h.listService.ListItems(c.Request.Context(), houseID)
	if err != nil {
		respondError(c, err, "Failed to retrieve shopping list")
		return
	}

	responses.Success(c, http.StatusOK, items, "Shopping list retrieved successfully")
}

func (h *ShoppingListHandler) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}

	var req services.ShoppingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	item, err := h.listService.AddItem(c.Request.Context(), houseID, userID, req)
	if err != nil {
		respondError(c, err, "Failed to add item")
		return
	}

	responses.Success(c, http.StatusCreated, item, "Item added successfully")
}

// UpdateItem handles PATCH /api/v1/houses/:house_id/shopping-list/items/:item_id
func (h *ShoppingListHandler) UpdateItem(c *gin.Context) {
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}
	itemID, ok := paramUUID(c, "item_id", "item")
	if !ok {
		return
	}

	var req services.ShoppingItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	item, err := h.listService.UpdateItem(c.Request.Context(), houseID, itemID, req)
	if err != nil {
		respondError(c, err, "Failed to update item")
		return
	}

	responses.Success(c, http.StatusOK, item, "Item updated successfully")
}

func (h *ShoppingListHandler) DeleteItem(c *gin.Context) {
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}
	itemID, ok := paramUUID(c, "item_id", "item")
	if !ok {
		return
	}

	if err := h.listService.DeleteItem(c.Request.Context(), houseID, itemID); err != nil {
		respondError(c, err, "Failed to delete item")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Item deleted successfully")
}

func (h *ShoppingListHandler) ReorderItems(c *gin.Context) {
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}

	var req services.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	items, err := h.listService.ReorderItems(c.Request.Context(), houseID, req.IDs)
	if err != nil {
		respondError(c, err, "Failed to reorder shopping list")
		return
	}

	responses.Success(c, http.StatusOK, items, "Shopping list reordered successfully")
}

// ClearChecked handles POST /api/v1/houses/:house_id/shopping-list/clear-checked
func (h *ShoppingListHandler) ClearChecked(c *gin.Context) {
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}

	n, err := h.listService.ClearChecked(c.Request.Context(), houseID)
	if err != nil {
		respondError(c, err, "Failed to clear checked items")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"deleted": n}, "Checked items cleared")
}

func (h *ShoppingListHandler) Suggestions(c *gin.Context) {
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}

	suggestions, err := h.listService.Suggestions(c.Request.Context(), houseID)
	if err != nil {
		respondError(c, err, "Failed to compute suggestions")
		return
	}

	responses.Success(c, http.StatusOK, suggestions, "Suggestions retrieved successfully")
}

// AcceptSuggestions handles POST /api/v1/houses/:house_id/shopping-list/suggestions/accept.
// An empty body accepts every suggestion.
func (h *ShoppingListHandler) AcceptSuggestions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}

	var req services.AcceptSuggestionsRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
			return
		}
	}

	items, err := h.listService.AcceptSuggestions(c.Request.Context(), houseID, userID, req.IngredientIDs)
	if err != nil {
		respondError(c, err, "Failed to accept suggestions")
		return
	}

	responses.Success(c, http.StatusCreated, items, "Suggestions added to shopping list")
}
