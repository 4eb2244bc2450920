package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pantry/internal/models"
	"pantry/internal/repositories"
)

type listFixture struct {
	list        *mockShoppingListStore
	stock       *mockStockStore
	storages    *mockStorageStore
	ingredients *mockIngredientStore
	houses      *mockHouseStore
	recipes     *mockRecipeStore
	svc         *ShoppingListService
}

func newListFixture() listFixture {
	f := listFixture{
		list:        new(mockShoppingListStore),
		stock:       new(mockStockStore),
		storages:    new(mockStorageStore),
		ingredients: new(mockIngredientStore),
		houses:      new(mockHouseStore),
		recipes:     new(mockRecipeStore),
	}
	ingredientSvc := NewIngredientService(f.ingredients)
	stockSvc := NewStockService(f.stock, NewStorageService(f.storages), ingredientSvc)
	matchSvc := NewMatchService(f.recipes, f.stock, NewHouseService(f.houses, new(mockUserStore)))
	f.svc = NewShoppingListService(f.list, f.stock, ingredientSvc, stockSvc, matchSvc, zap.NewNop())
	return f
}

func TestShoppingListService_AddItemFillsNameFromCatalog(t *testing.T) {
	ctx := context.Background()
	f := newListFixture()
	houseID, userID := uuid.New(), uuid.New()
	eggs := &models.Ingredient{ID: uuid.New(), Name: "Eggs", DefaultUnit: ptr("pcs")}

	f.ingredients.On("GetByID", ctx, eggs.ID).Return(eggs, nil)
	f.list.On("ListByHouse", ctx, houseID).Return([]models.ShoppingListItem{}, nil)
	f.list.On("Create", ctx, mock.AnythingOfType("*models.ShoppingListItem")).Return(nil)

	item, err := f.svc.AddItem(ctx, houseID, userID, ShoppingItemRequest{IngredientID: &eggs.ID, Quantity: qty("6")})
	require.NoError(t, err)
	assert.Equal(t, "Eggs", item.Name)
	assert.Equal(t, "pcs", *item.Unit)
	assert.Equal(t, userID, *item.AddedBy)
	f.list.AssertExpectations(t)
}

func TestShoppingListService_AddItemMergesSameUnit(t *testing.T) {
	ctx := context.Background()
	f := newListFixture()
	houseID := uuid.New()
	milk := &models.Ingredient{ID: uuid.New(), Name: "Milk"}
	existing := models.ShoppingListItem{ID: uuid.New(), HouseID: houseID, IngredientID: &milk.ID, Name: "Milk", Quantity: qty("1"), Unit: ptr("L")}

	f.ingredients.On("GetByID", ctx, milk.ID).Return(milk, nil)
	f.list.On("ListByHouse", ctx, houseID).Return([]models.ShoppingListItem{existing}, nil)
	f.list.On("Update", ctx, mock.AnythingOfType("*models.ShoppingListItem")).Return(nil)

	item, err := f.svc.AddItem(ctx, houseID, uuid.New(), ShoppingItemRequest{IngredientID: &milk.ID, Quantity: qty("2"), Unit: ptr("l")})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, item.ID)
	assert.True(t, item.Quantity.Decimal.Equal(decimal.NewFromInt(3)))
	f.list.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestShoppingListService_AddItemDifferentUnitAddsRow(t *testing.T) {
	ctx := context.Background()
	f := newListFixture()
	houseID := uuid.New()
	milk := &models.Ingredient{ID: uuid.New(), Name: "Milk"}
	existing := models.ShoppingListItem{ID: uuid.New(), IngredientID: &milk.ID, Name: "Milk", Quantity: qty("1"), Unit: ptr("l")}
	checked := models.ShoppingListItem{ID: uuid.New(), IngredientID: &milk.ID, Name: "Milk", Unit: ptr("ml"), Checked: true}

	f.ingredients.On("GetByID", ctx, milk.ID).Return(milk, nil)
	f.list.On("ListByHouse", ctx, houseID).Return([]models.ShoppingListItem{existing, checked}, nil)
	f.list.On("Create", ctx, mock.AnythingOfType("*models.ShoppingListItem")).Return(nil)

	item, err := f.svc.AddItem(ctx, houseID, uuid.New(), ShoppingItemRequest{IngredientID: &milk.ID, Quantity: qty("500"), Unit: ptr("ml")})
	require.NoError(t, err)
	assert.NotEqual(t, existing.ID, item.ID)
	assert.NotEqual(t, checked.ID, item.ID)
	f.list.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestShoppingListService_AddItemFreeText(t *testing.T) {
	ctx := context.Background()
	f := newListFixture()
	houseID := uuid.New()
	f.list.On("Create", ctx, mock.AnythingOfType("*models.ShoppingListItem")).Return(nil)

	item, err := f.svc.AddItem(ctx, houseID, uuid.New(), ShoppingItemRequest{Name: "  Candles "})
	require.NoError(t, err)
	assert.Equal(t, "Candles", item.Name)
	assert.Nil(t, item.IngredientID)

	_, err = f.svc.AddItem(ctx, houseID, uuid.New(), ShoppingItemRequest{Name: "x", Quantity: qty("0")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestShoppingListService_CheckingWithRestockAddsStock(t *testing.T) {
	ctx := context.Background()
	f := newListFixture()
	houseID := uuid.New()
	storage := &models.Storage{ID: uuid.New(), HouseID: houseID}
	rice := uuid.New()
	item := &models.ShoppingListItem{ID: uuid.New(), HouseID: houseID, IngredientID: &rice, Name: "Rice", Quantity: qty("2"), Unit: ptr("kg")}
	current := &models.Stock{ID: uuid.New(), StorageID: storage.ID, IngredientID: rice, Quantity: decimal.NewFromInt(1), Status: models.StockStatusLow}

	f.list.On("GetByID", ctx, houseID, item.ID).Return(item, nil)
	f.list.On("Update", ctx, item).Return(nil)
	f.storages.On("GetByID", ctx, houseID, storage.ID).Return(storage, nil)
	f.stock.On("GetByStorageAndIngredient", ctx, storage.ID, rice).Return(current, nil)
	f.stock.On("Update", ctx, current).Return(nil)

	got, err := f.svc.UpdateItem(ctx, houseID, item.ID, ShoppingItemUpdateRequest{
		Checked:   ptr(true),
		Restock:   true,
		StorageID: &storage.ID,
	})
	require.NoError(t, err)
	assert.True(t, got.Checked)
	assert.True(t, current.Quantity.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, models.StockStatusInStock, current.Status)
	f.stock.AssertExpectations(t)
}

func TestShoppingListService_RestockFailureLeavesItemUnchecked(t *testing.T) {
	houseID := uuid.New()
	rice := uuid.New()
	storageID := uuid.New()
	newItem := func() *models.ShoppingListItem {
		return &models.ShoppingListItem{ID: uuid.New(), HouseID: houseID, IngredientID: &rice, Name: "Rice", Quantity: qty("500"), Unit: ptr("g")}
	}
	checkReq := ShoppingItemUpdateRequest{Checked: ptr(true), Restock: true, StorageID: &storageID}

	t.Run("unknown storage", func(t *testing.T) {
		ctx := context.Background()
		f := newListFixture()
		item := newItem()
		f.list.On("GetByID", ctx, houseID, item.ID).Return(item, nil)
		f.storages.On("GetByID", ctx, houseID, storageID).Return(nil, nil)

		_, err := f.svc.UpdateItem(ctx, houseID, item.ID, checkReq)
		assert.ErrorIs(t, err, ErrNotFound)
		f.list.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("stock kept in another unit", func(t *testing.T) {
		ctx := context.Background()
		f := newListFixture()
		item := newItem()
		storage := &models.Storage{ID: storageID, HouseID: houseID}
		current := &models.Stock{ID: uuid.New(), StorageID: storageID, IngredientID: rice, Quantity: decimal.NewFromInt(1), Unit: ptr("kg")}
		f.list.On("GetByID", ctx, houseID, item.ID).Return(item, nil)
		f.storages.On("GetByID", ctx, houseID, storageID).Return(storage, nil)
		f.stock.On("GetByStorageAndIngredient", ctx, storageID, rice).Return(current, nil)

		_, err := f.svc.UpdateItem(ctx, houseID, item.ID, checkReq)
		assert.ErrorIs(t, err, ErrInvalidInput)
		f.list.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.stock.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("stock write fails", func(t *testing.T) {
		ctx := context.Background()
		f := newListFixture()
		item := newItem()
		storage := &models.Storage{ID: storageID, HouseID: houseID}
		current := &models.Stock{ID: uuid.New(), StorageID: storageID, IngredientID: rice, Quantity: decimal.NewFromInt(100), Unit: ptr("g")}

		var saved []bool
		f.list.On("GetByID", ctx, houseID, item.ID).Return(item, nil)
		f.list.On("Update", ctx, item).Run(func(args mock.Arguments) {
			saved = append(saved, args.Get(1).(*models.ShoppingListItem).Checked)
		}).Return(nil)
		f.storages.On("GetByID", ctx, houseID, storageID).Return(storage, nil)
		f.stock.On("GetByStorageAndIngredient", ctx, storageID, rice).Return(current, nil)
		f.stock.On("Update", ctx, current).Return(errors.New("connection reset"))

		_, err := f.svc.UpdateItem(ctx, houseID, item.ID, checkReq)
		require.Error(t, err)
		assert.Equal(t, []bool{true, false}, saved)
		assert.False(t, item.Checked)
	})
}

func TestShoppingListService_CheckingWithoutStorageSkipsRestock(t *testing.T) {
	ctx := context.Background()
	f := newListFixture()
	houseID := uuid.New()
	rice := uuid.New()
	item := &models.ShoppingListItem{ID: uuid.New(), HouseID: houseID, IngredientID: &rice, Name: "Rice"}

	f.list.On("GetByID", ctx, houseID, item.ID).Return(item, nil)
	f.list.On("Update", ctx, item).Return(nil)

	_, err := f.svc.UpdateItem(ctx, houseID, item.ID, ShoppingItemUpdateRequest{Checked: ptr(true), Restock: true})
	require.NoError(t, err)
	f.stock.AssertNotCalled(t, "GetByStorageAndIngredient", mock.Anything, mock.Anything, mock.Anything)
}

func TestShoppingListService_AcceptSelectedSuggestions(t *testing.T) {
	ctx := context.Background()
	f := newListFixture()
	houseID, userID := uuid.New(), uuid.New()
	flour := &models.Ingredient{ID: uuid.New(), Name: "Flour"}
	sugar := &models.Ingredient{ID: uuid.New(), Name: "Sugar"}

	f.stock.On("ListByHouses", ctx, []uuid.UUID{houseID}, repositories.StockFilter{}).Return([]models.Stock{
		{IngredientID: flour.ID, IngredientName: "Flour", Status: models.StockStatusOut},
		{IngredientID: sugar.ID, IngredientName: "Sugar", Status: models.StockStatusOut},
	}, nil)
	f.list.On("ListByHouse", ctx, houseID).Return([]models.ShoppingListItem{}, nil)
	f.ingredients.On("GetByID", ctx, sugar.ID).Return(sugar, nil)
	f.list.On("Create", ctx, mock.AnythingOfType("*models.ShoppingListItem")).Return(nil).Once()

	added, err := f.svc.AcceptSuggestions(ctx, houseID, userID, []uuid.UUID{sugar.ID})
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "Sugar", added[0].Name)
	f.ingredients.AssertNotCalled(t, "GetByID", mock.Anything, flour.ID)
}

func TestShoppingListService_AddMissingFromRecipe(t *testing.T) {
	ctx := context.Background()
	f := newListFixture()
	houseID, userID, recipeID := uuid.New(), uuid.New(), uuid.New()
	basil := &models.Ingredient{ID: uuid.New(), Name: "Basil"}
	pasta := uuid.New()

	f.houses.On("GetMember", mock.Anything, houseID, userID).Return(&models.HouseMember{Role: models.RoleMember}, nil)
	f.stock.On("ListByHouses", mock.Anything, []uuid.UUID{houseID}, repositories.StockFilter{}).Return([]models.Stock{
		{IngredientID: pasta, Status: models.StockStatusInStock},
	}, nil)
	f.recipes.On("GetByID", mock.Anything, recipeID).Return(&models.Recipe{ID: recipeID, Title: "Pesto", Ingredients: []models.RecipeIngredient{
		{IngredientID: pasta, IngredientName: "Pasta"},
		{IngredientID: basil.ID, IngredientName: "Basil", Quantity: qty("30"), Unit: ptr("g")},
	}}, nil)
	f.ingredients.On("GetByID", ctx, basil.ID).Return(basil, nil)
	f.list.On("ListByHouse", ctx, houseID).Return([]models.ShoppingListItem{}, nil)
	f.list.On("Create", ctx, mock.AnythingOfType("*models.ShoppingListItem")).Return(nil).Once()

	added, err := f.svc.AddMissingFromRecipe(ctx, houseID, userID, recipeID)
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "Basil", added[0].Name)
	assert.True(t, added[0].Quantity.Decimal.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, "g", *added[0].Unit)
}
