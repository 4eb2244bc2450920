package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pantry/internal/models"
)

type stockFixture struct {
	stock       *mockStockStore
	storages    *mockStorageStore
	ingredients *mockIngredientStore
	svc         *StockService
}

func newStockFixture() stockFixture {
	f := stockFixture{
		stock:       new(mockStockStore),
		storages:    new(mockStorageStore),
		ingredients: new(mockIngredientStore),
	}
	f.svc = NewStockService(f.stock, NewStorageService(f.storages), NewIngredientService(f.ingredients))
	return f
}

func TestStockService_PutStockDefaultsUnit(t *testing.T) {
	ctx := context.Background()
	f := newStockFixture()
	houseID := uuid.New()
	storage := &models.Storage{ID: uuid.New(), HouseID: houseID, Name: "Fridge"}
	milk := &models.Ingredient{ID: uuid.New(), Name: "Milk", DefaultUnit: ptr("l")}

	f.storages.On("GetByID", ctx, houseID, storage.ID).Return(storage, nil)
	f.ingredients.On("GetByID", ctx, milk.ID).Return(milk, nil)
	f.stock.On("Upsert", ctx, mock.AnythingOfType("*models.Stock")).Return(nil)

	got, err := f.svc.PutStock(ctx, houseID, storage.ID, StockRequest{
		IngredientID: milk.ID,
		Quantity:     decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	require.NotNil(t, got.Unit)
	assert.Equal(t, "l", *got.Unit)
	assert.Equal(t, "Fridge", got.StorageName)
}

func TestStockService_PutStockRejectsNegative(t *testing.T) {
	f := newStockFixture()

	_, err := f.svc.PutStock(context.Background(), uuid.New(), uuid.New(), StockRequest{
		IngredientID: uuid.New(),
		Quantity:     decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStockService_PutStockUnknownStorage(t *testing.T) {
	ctx := context.Background()
	f := newStockFixture()
	houseID, storageID := uuid.New(), uuid.New()
	f.storages.On("GetByID", ctx, houseID, storageID).Return(nil, nil)

	_, err := f.svc.PutStock(ctx, houseID, storageID, StockRequest{IngredientID: uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStockService_AdjustStock(t *testing.T) {
	tests := []struct {
		name       string
		quantity   string
		threshold  decimal.NullDecimal
		status     string
		delta      string
		wantQty    string
		wantStatus string
	}{
		{"clamps at zero", "2", decimal.NullDecimal{}, models.StockStatusInStock, "-5", "0", models.StockStatusOut},
		{"drops under threshold", "5", qty("2"), models.StockStatusInStock, "-3", "2", models.StockStatusLow},
		{"restock clears manual low", "1", decimal.NullDecimal{}, models.StockStatusLow, "1", "2", models.StockStatusInStock},
		{"using keeps manual low", "3", decimal.NullDecimal{}, models.StockStatusLow, "-1", "2", models.StockStatusLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newStockFixture()
			houseID := uuid.New()
			row := &models.Stock{
				ID:           uuid.New(),
				Quantity:     decimal.RequireFromString(tt.quantity),
				LowThreshold: tt.threshold,
				Status:       tt.status,
			}
			f.stock.On("GetByID", ctx, houseID, row.ID).Return(row, nil)
			f.stock.On("Update", ctx, row).Return(nil)

			got, err := f.svc.AdjustStock(ctx, houseID, row.ID, decimal.RequireFromString(tt.delta))
			require.NoError(t, err)
			assert.True(t, got.Quantity.Equal(decimal.RequireFromString(tt.wantQty)), "quantity %s", got.Quantity)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestStockService_UpdateStockClearsThreshold(t *testing.T) {
	ctx := context.Background()
	f := newStockFixture()
	houseID := uuid.New()
	row := &models.Stock{
		ID:           uuid.New(),
		Quantity:     decimal.NewFromInt(1),
		LowThreshold: qty("2"),
		Status:       models.StockStatusLow,
	}
	f.stock.On("GetByID", ctx, houseID, row.ID).Return(row, nil)
	f.stock.On("Update", ctx, row).Return(nil)

	got, err := f.svc.UpdateStock(ctx, houseID, row.ID, StockUpdateRequest{
		ClearLowThreshold: true,
		Status:            ptr(models.StockStatusInStock),
	})
	require.NoError(t, err)
	assert.False(t, got.LowThreshold.Valid)
	assert.Equal(t, models.StockStatusInStock, got.Status)
}

func TestStockService_Restock(t *testing.T) {
	houseID := uuid.New()
	storage := &models.Storage{ID: uuid.New(), HouseID: houseID}
	flour := uuid.New()

	t.Run("creates missing row", func(t *testing.T) {
		ctx := context.Background()
		f := newStockFixture()
		f.storages.On("GetByID", ctx, houseID, storage.ID).Return(storage, nil)
		f.stock.On("GetByStorageAndIngredient", ctx, storage.ID, flour).Return(nil, nil)
		f.stock.On("Upsert", ctx, mock.AnythingOfType("*models.Stock")).Return(nil)

		got, err := f.svc.Restock(ctx, houseID, storage.ID, flour, decimal.NewFromInt(2), ptr("kg"))
		require.NoError(t, err)
		assert.True(t, got.Quantity.Equal(decimal.NewFromInt(2)))
		assert.Equal(t, "kg", *got.Unit)
	})

	t.Run("same unit ignoring case", func(t *testing.T) {
		ctx := context.Background()
		f := newStockFixture()
		current := &models.Stock{ID: uuid.New(), StorageID: storage.ID, IngredientID: flour, Quantity: decimal.NewFromInt(1), Unit: ptr("KG")}
		f.storages.On("GetByID", ctx, houseID, storage.ID).Return(storage, nil)
		f.stock.On("GetByStorageAndIngredient", ctx, storage.ID, flour).Return(current, nil)
		f.stock.On("Update", ctx, current).Return(nil)

		got, err := f.svc.Restock(ctx, houseID, storage.ID, flour, decimal.NewFromInt(2), ptr("kg"))
		require.NoError(t, err)
		assert.True(t, got.Quantity.Equal(decimal.NewFromInt(3)))
	})

	t.Run("refuses a different unit", func(t *testing.T) {
		ctx := context.Background()
		f := newStockFixture()
		current := &models.Stock{ID: uuid.New(), StorageID: storage.ID, IngredientID: flour, Quantity: decimal.NewFromInt(1), Unit: ptr("kg")}
		f.storages.On("GetByID", ctx, houseID, storage.ID).Return(storage, nil)
		f.stock.On("GetByStorageAndIngredient", ctx, storage.ID, flour).Return(current, nil)

		_, err := f.svc.Restock(ctx, houseID, storage.ID, flour, decimal.NewFromInt(500), ptr("g"))
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.True(t, current.Quantity.Equal(decimal.NewFromInt(1)))
		f.stock.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
