package handlers

import (
	"context"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pantry/internal/models"
	"pantry/internal/responses"
	"pantry/internal/services"
)

type StockManager interface {
	ListStock(ctx context.Context, houseID uuid.UUID, q services.StockQuery) ([]models.Stock, error)
	PutStock(ctx context.Context, houseID, storageID uuid.UUID, req services.StockRequest) (*models.Stock, error)
	UpdateStock(ctx context.Context, houseID, stockID uuid.UUID, req services.StockUpdateRequest) (*models.Stock, error)
	AdjustStock(ctx context.Context, houseID, stockID uuid.UUID, delta decimal.Decimal) (*models.Stock, error)
	DeleteStock(ctx context.Context, houseID, stockID uuid.UUID) error
}

type StockHandler struct {
	stockService StockManager
}

func NewStockHandler(stockService StockManager) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// ListStock handles GET /api/v1/houses/:house_id/stock?storage_id&status
func (h *StockHandler) ListStock(c *gin.Context) {
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}
	storageID, ok := optionalQueryUUID(c, "storage_id")
	if !ok {
		return
	}
	status := c.Query("status")
	if status != "" && !slices.Contains(models.StockStatuses, status) {
		responses.Fail(c, http.StatusBadRequest, nil, "Invalid status")
		return
	}

	stock, err := h.stockService.ListStock(c.Request.Context(), houseID, services.StockQuery{
		StorageID: storageID,
		Status:    status,
	})
	if err != nil {
		respondError(c, err, "Failed to retrieve stock")
		return
	}

	responses.Success(c, http.StatusOK, stock, "Stock retrieved successfully")
}

// PutStock handles POST /api/v1/houses/:house_id/storages/:storage_id/stock
func (h *StockHandler) PutStock(c *gin.Context) {
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}
	storageID, ok := paramUUID(c, "storage_id", "storage")
	if !ok {
		return
	}

	var req services.StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	stock, err := h.stockService.PutStock(c.Request.Context(), houseID, storageID, req)
	if err != nil {
		respondError(c, err, "Failed to save stock")
		return
	}

	responses.Success(c, http.StatusOK, stock, "Stock saved successfully")
}

func (h *StockHandler) UpdateStock(c *gin.Context) {
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}
	stockID, ok := paramUUID(c, "stock_id", "stock")
	if !ok {
		return
	}

	var req services.StockUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	stock, err := h.stockService.UpdateStock(c.Request.Context(), houseID, stockID, req)
	if err != nil {
		respondError(c, err, "Failed to update stock")
		return
	}

	responses.Success(c, http.StatusOK, stock, "Stock updated successfully")
}

// AdjustStock handles POST /api/v1/houses/:house_id/stock/:stock_id/adjust
func (h *StockHandler) AdjustStock(c *gin.Context) {
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}
	stockID, ok := paramUUID(c, "stock_id", "stock")
	if !ok {
		return
	}

	var req services.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	stock, err := h.stockService.AdjustStock(c.Request.Context(), houseID, stockID, req.Delta)
	if err != nil {
		respondError(c, err, "Failed to adjust stock")
		return
	}

	responses.Success(c, http.StatusOK, stock, "Stock adjusted successfully")
}

func (h *StockHandler) DeleteStock(c *gin.Context) {
	houseID, ok := currentHouseID(c)
	if !ok {
		return
	}
	stockID, ok := paramUUID(c, "stock_id", "stock")
	if !ok {
		return
	}

	if err := h.stockService.DeleteStock(c.Request.Context(), houseID, stockID); err != nil {
		respondError(c, err, "Failed to delete stock")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Stock deleted successfully")
}
