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

type StorageManager interface {
	ListStorages(ctx context.Context, houseID uuid.UUID) ([]models.Storage, error)
	CreateStorage(ctx context.Context, houseID uuid.UUID, req services.StorageRequest) (*models.Storage, error)
	UpdateStorage(ctx context.Context, houseID, storageID uuid.UUID, req services.StorageRequest) (*models.Storage, error)
	DeleteStorage(ctx context.Context, houseID, storageID uuid.UUID) error
	ReorderStorages(ctx context.Context, houseID uuid.UUID, ids []uuid.UUID) ([]models.Storage, error)
}

// StorageHandler serves routes nested under a house; RequireHouseMember
// has already resolved the house.
type StorageHandler struct {
	storageService StorageManager
}

func NewStorageHandler(storageService StorageManager) *StorageHandler {
	return &StorageHandler{storageService: storageService}
}

func (h *StorageHandler) ListStorages(c *gin.Context) {
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}

	storages, err := h.storageService.ListStorages(c.Request.Context(), houseID)
	if err != nil {
		respondError(c, err, "Failed to retrieve storages")
		return
	}

	responses.Success(c, http.StatusOK, storages, "Storages retrieved successfully")
}

func (h *StorageHandler) CreateStorage(c *gin.Context) {
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}

	var req services.StorageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	storage, err := h.storageService.CreateStorage(c.Request.Context(), houseID, req)
	if err != nil {
		respondError(c, err, "Failed to create storage")
		return
	}

	responses.Success(c, http.StatusCreated, storage, "Storage created successfully")
}

func (h *StorageHandler) UpdateStorage(c *gin.Context) {
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}
	storageID, ok := paramUUID(c, "storage_id", "storage")
	if !ok {
		return
	}

	var req services.StorageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	storage, err := h.storageService.UpdateStorage(c.Request.Context(), houseID, storageID, req)
	if err != nil {
		respondError(c, err, "Failed to update storage")
		return
	}

	responses.Success(c, http.StatusOK, storage, "Storage updated successfully")
}

func (h *StorageHandler) DeleteStorage(c *gin.Context) {
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}
	storageID, ok := paramUUID(c, "storage_id", "storage")
	if !ok {
		return
	}

	if err := h.storageService.DeleteStorage(c.Request.Context(), houseID, storageID); err != nil {
		respondError(c, err, "Failed to delete storage")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Storage deleted successfully")
}

// ReorderStorages handles PUT /api/v1/houses/:house_id/storages/order
func (h *StorageHandler) ReorderStorages(c *gin.Context) {
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}

	var req services.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	storages, err := h.storageService.ReorderStorages(c.Request.Context(), houseID, req.IDs)
	if err != nil {
		respondError(c, err, "Failed to reorder storages")
		return
	}

	responses.Success(c, http.StatusOK, storages, "Storages reordered successfully")
}
