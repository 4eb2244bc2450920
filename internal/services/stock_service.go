package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pantry/internal/models"
	"pantry/internal/repositories"
)

// StockService manages stock rows inside a house whose membership has
// already been checked.
type StockService struct {
	stockRepo   StockStore
	storages    *StorageService
	ingredients *IngredientService
}

func NewStockService(stockRepo StockStore, storages *StorageService, ingredients *IngredientService) *StockService {
	return &StockService{
		stockRepo:   stockRepo,
		storages:    storages,
		ingredients: ingredients,
	}
}

type StockRequest struct {
	IngredientID uuid.UUID           `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal     `json:"quantity"`
	Unit         *string             `json:"unit" binding:"omitempty,max=20"`
	LowThreshold decimal.NullDecimal `json:"low_threshold"`
	ExpiresAt    *time.Time          `json:"expires_at"`
	Status       string              `json:"status" binding:"omitempty,stock_status"`
}

type StockUpdateRequest struct {
	Quantity          *decimal.Decimal `json:"quantity"`
	Unit              *string          `json:"unit" binding:"omitempty,max=20"`
	LowThreshold      *decimal.Decimal `json:"low_threshold"`
	ClearLowThreshold bool             `json:"clear_low_threshold"`
	ExpiresAt         *time.Time       `json:"expires_at"`
	ClearExpiresAt    bool             `json:"clear_expires_at"`
	Status            *string          `json:"status" binding:"omitempty,stock_status"`
}

type AdjustStockRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

type StockQuery struct {
	StorageID *uuid.UUID
	Status    string
}

func checkQuantities(quantity decimal.Decimal, threshold decimal.NullDecimal) error {
	if quantity.IsNegative() {
		return fmt.Errorf("quantity must not be negative: %w", ErrInvalidInput)
	}
	if threshold.Valid && threshold.Decimal.IsNegative() {
		return fmt.Errorf("low_threshold must not be negative: %w", ErrInvalidInput)
	}
	return nil
}

func (s *StockService) ListStock(ctx context.Context, houseID uuid.UUID, q StockQuery) ([]models.Stock, error) {
	stock, err := s.stockRepo.ListByHouses(ctx, []uuid.UUID{houseID}, repositories.StockFilter{
		StorageID: q.StorageID,
		Status:    q.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}
	return stock, nil
}

// PutStock creates the stock row for (storage, ingredient) or replaces it.
func (s *StockService) PutStock(ctx context.Context, houseID, storageID uuid.UUID, req StockRequest) (*models.Stock, error) {
	if err := checkQuantities(req.Quantity, req.LowThreshold); err != nil {
		return nil, err
	}
	storage, err := s.storages.GetStorage(ctx, houseID, storageID)
	if err != nil {
		return nil, err
	}
	ingredient, err := s.ingredients.GetIngredient(ctx, req.IngredientID)
	if err != nil {
		return nil, err
	}

	unit := req.Unit
	if unit == nil {
		unit = ingredient.DefaultUnit
	}
	stock := &models.Stock{
		StorageID:      storage.ID,
		IngredientID:   ingredient.ID,
		Quantity:       req.Quantity,
		Unit:           unit,
		Status:         req.Status,
		LowThreshold:   req.LowThreshold,
		ExpiresAt:      req.ExpiresAt,
		IngredientName: ingredient.Name,
		StorageName:    storage.Name,
		HouseID:        houseID,
	}
	if err := s.stockRepo.Upsert(ctx, stock); err != nil {
		return nil, fmt.Errorf("failed to save stock: %w", err)
	}
	return stock, nil
}

func (s *StockService) GetStock(ctx context.Context, houseID, stockID uuid.UUID) (*models.Stock, error) {
	stock, err := s.stockRepo.GetByID(ctx, houseID, stockID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}
	if stock == nil {
		return nil, fmt.Errorf("stock %s: %w", stockID, ErrNotFound)
	}
	return stock, nil
}

func (s *StockService) UpdateStock(ctx context.Context, houseID, stockID uuid.UUID, req StockUpdateRequest) (*models.Stock, error) {
	stock, err := s.GetStock(ctx, houseID, stockID)
	if err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		stock.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		stock.Unit = req.Unit
	}
	switch {
	case req.ClearLowThreshold:
		stock.LowThreshold = decimal.NullDecimal{}
	case req.LowThreshold != nil:
		stock.LowThreshold = decimal.NewNullDecimal(*req.LowThreshold)
	}
	switch {
	case req.ClearExpiresAt:
		stock.ExpiresAt = nil
	case req.ExpiresAt != nil:
		stock.ExpiresAt = req.ExpiresAt
	}
	if req.Status != nil {
		stock.Status = *req.Status
	}
	if err := checkQuantities(stock.Quantity, stock.LowThreshold); err != nil {
		return nil, err
	}

	stock.Normalize()
	if err := s.stockRepo.Update(ctx, stock); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}
	return stock, nil
}

// AdjustStock adds delta to the quantity, clamping at zero.
func (s *StockService) AdjustStock(ctx context.Context, houseID, stockID uuid.UUID, delta decimal.Decimal) (*models.Stock, error) {
	stock, err := s.GetStock(ctx, houseID, stockID)
	if err != nil {
		return nil, err
	}
	s.applyDelta(stock, delta)
	if err := s.stockRepo.Update(ctx, stock); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}
	return stock, nil
}

func (s *StockService) applyDelta(stock *models.Stock, delta decimal.Decimal) {
	stock.Quantity = decimal.Max(decimal.Zero, stock.Quantity.Add(delta))
	// A restock clears a manual "low" flag.
	if delta.IsPositive() && stock.Status == models.StockStatusLow {
		stock.Status = models.StockStatusInStock
	}
	stock.Normalize()
}

// CheckRestock reports the error Restock would fail with before anything
// is written.
func (s *StockService) CheckRestock(ctx context.Context, houseID, storageID, ingredientID uuid.UUID, unit *string) error {
	_, _, err := s.restockTarget(ctx, houseID, storageID, ingredientID, unit)
	return err
}

// restockTarget resolves the storage and the current stock row, which is
// nil when the storage does not hold the ingredient yet. A row kept in a
// different unit is refused.
func (s *StockService) restockTarget(ctx context.Context, houseID, storageID, ingredientID uuid.UUID, unit *string) (*models.Storage, *models.Stock, error) {
	storage, err := s.storages.GetStorage(ctx, houseID, storageID)
	if err != nil {
		return nil, nil, err
	}

	stock, err := s.stockRepo.GetByStorageAndIngredient(ctx, storage.ID, ingredientID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get stock: %w", err)
	}
	if stock != nil && unit != nil && stock.Unit != nil && !models.SameUnit(unit, stock.Unit) {
		return nil, nil, fmt.Errorf("cannot add %s to stock kept in %s: %w", *unit, *stock.Unit, ErrInvalidInput)
	}
	return storage, stock, nil
}

// Restock adds quantity of an ingredient to a storage, creating the row
// when the storage does not hold the ingredient yet.
func (s *StockService) Restock(ctx context.Context, houseID, storageID, ingredientID uuid.UUID, quantity decimal.Decimal, unit *string) (*models.Stock, error) {
	storage, stock, err := s.restockTarget(ctx, houseID, storageID, ingredientID, unit)
	if err != nil {
		return nil, err
	}

	if stock == nil {
		stock = &models.Stock{
			StorageID:    storage.ID,
			IngredientID: ingredientID,
			Quantity:     quantity,
			Unit:         unit,
		}
		if err := s.stockRepo.Upsert(ctx, stock); err != nil {
			return nil, fmt.Errorf("failed to save stock: %w", err)
		}
		return stock, nil
	}

	s.applyDelta(stock, quantity)
	if err := s.stockRepo.Update(ctx, stock); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}
	return stock, nil
}

func (s *StockService) DeleteStock(ctx context.Context, houseID, stockID uuid.UUID) error {
	if _, err := s.GetStock(ctx, houseID, stockID); err != nil {
		return err
	}
	if err := s.stockRepo.Delete(ctx, stockID); err != nil {
		return fmt.Errorf("failed to delete stock: %w", err)
	}
	return nil
}
