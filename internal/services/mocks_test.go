package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pantry/internal/models"
	"pantry/internal/repositories"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserStore) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserStore) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *mockUserStore) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockBlacklist struct{ mock.Mock }

func (m *mockBlacklist) Blacklist(ctx context.Context, jti string, ttl time.Duration) error {
	return m.Called(ctx, jti, ttl).Error(0)
}

func (m *mockBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

type mockHouseStore struct{ mock.Mock }

func (m *mockHouseStore) Create(ctx context.Context, house *models.House) error {
	return m.Called(ctx, house).Error(0)
}

func (m *mockHouseStore) GetByID(ctx context.Context, id uuid.UUID) (*models.House, error) {
	args := m.Called(ctx, id)
	h, _ := args.Get(0).(*models.House)
	return h, args.Error(1)
}

func (m *mockHouseStore) ListByMember(ctx context.Context, userID uuid.UUID) ([]models.House, error) {
	args := m.Called(ctx, userID)
	h, _ := args.Get(0).([]models.House)
	return h, args.Error(1)
}

func (m *mockHouseStore) ListHouseIDsByMember(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func (m *mockHouseStore) Update(ctx context.Context, house *models.House) error {
	return m.Called(ctx, house).Error(0)
}

func (m *mockHouseStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockHouseStore) GetMember(ctx context.Context, houseID, userID uuid.UUID) (*models.HouseMember, error) {
	args := m.Called(ctx, houseID, userID)
	hm, _ := args.Get(0).(*models.HouseMember)
	return hm, args.Error(1)
}

func (m *mockHouseStore) ListMembers(ctx context.Context, houseID uuid.UUID) ([]models.HouseMember, error) {
	args := m.Called(ctx, houseID)
	hm, _ := args.Get(0).([]models.HouseMember)
	return hm, args.Error(1)
}

func (m *mockHouseStore) AddMember(ctx context.Context, member *models.HouseMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *mockHouseStore) RemoveMember(ctx context.Context, houseID, userID uuid.UUID) error {
	return m.Called(ctx, houseID, userID).Error(0)
}

func (m *mockHouseStore) CountOwners(ctx context.Context, houseID uuid.UUID) (int, error) {
	args := m.Called(ctx, houseID)
	return args.Int(0), args.Error(1)
}

type mockStorageStore struct{ mock.Mock }

func (m *mockStorageStore) Create(ctx context.Context, storage *models.Storage) error {
	return m.Called(ctx, storage).Error(0)
}

func (m *mockStorageStore) GetByID(ctx context.Context, houseID, id uuid.UUID) (*models.Storage, error) {
	args := m.Called(ctx, houseID, id)
	s, _ := args.Get(0).(*models.Storage)
	return s, args.Error(1)
}

func (m *mockStorageStore) ListByHouse(ctx context.Context, houseID uuid.UUID) ([]models.Storage, error) {
	args := m.Called(ctx, houseID)
	s, _ := args.Get(0).([]models.Storage)
	return s, args.Error(1)
}

func (m *mockStorageStore) Update(ctx context.Context, storage *models.Storage) error {
	return m.Called(ctx, storage).Error(0)
}

func (m *mockStorageStore) Delete(ctx context.Context, houseID, id uuid.UUID) error {
	return m.Called(ctx, houseID, id).Error(0)
}

func (m *mockStorageStore) Reorder(ctx context.Context, houseID uuid.UUID, ids []uuid.UUID) error {
	return m.Called(ctx, houseID, ids).Error(0)
}

type mockIngredientStore struct{ mock.Mock }

func (m *mockIngredientStore) Create(ctx context.Context, ingredient *models.Ingredient) error {
	return m.Called(ctx, ingredient).Error(0)
}

func (m *mockIngredientStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	args := m.Called(ctx, id)
	i, _ := args.Get(0).(*models.Ingredient)
	return i, args.Error(1)
}

func (m *mockIngredientStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Ingredient, error) {
	args := m.Called(ctx, ids)
	i, _ := args.Get(0).([]models.Ingredient)
	return i, args.Error(1)
}

func (m *mockIngredientStore) Search(ctx context.Context, q string, limit int) ([]models.Ingredient, error) {
	args := m.Called(ctx, q, limit)
	i, _ := args.Get(0).([]models.Ingredient)
	return i, args.Error(1)
}

func (m *mockIngredientStore) Update(ctx context.Context, ingredient *models.Ingredient) error {
	return m.Called(ctx, ingredient).Error(0)
}

func (m *mockIngredientStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockStockStore struct{ mock.Mock }

func (m *mockStockStore) Upsert(ctx context.Context, stock *models.Stock) error {
	return m.Called(ctx, stock).Error(0)
}

func (m *mockStockStore) GetByID(ctx context.Context, houseID, id uuid.UUID) (*models.Stock, error) {
	args := m.Called(ctx, houseID, id)
	s, _ := args.Get(0).(*models.Stock)
	return s, args.Error(1)
}

func (m *mockStockStore) GetByStorageAndIngredient(ctx context.Context, storageID, ingredientID uuid.UUID) (*models.Stock, error) {
	args := m.Called(ctx, storageID, ingredientID)
	s, _ := args.Get(0).(*models.Stock)
	return s, args.Error(1)
}

func (m *mockStockStore) ListByHouses(ctx context.Context, houseIDs []uuid.UUID, filter repositories.StockFilter) ([]models.Stock, error) {
	args := m.Called(ctx, houseIDs, filter)
	s, _ := args.Get(0).([]models.Stock)
	return s, args.Error(1)
}

func (m *mockStockStore) Update(ctx context.Context, stock *models.Stock) error {
	return m.Called(ctx, stock).Error(0)
}

func (m *mockStockStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockRecipeStore struct{ mock.Mock }

func (m *mockRecipeStore) Create(ctx context.Context, recipe *models.Recipe) error {
	return m.Called(ctx, recipe).Error(0)
}

func (m *mockRecipeStore) Replace(ctx context.Context, recipe *models.Recipe) error {
	return m.Called(ctx, recipe).Error(0)
}

func (m *mockRecipeStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Recipe)
	return r, args.Error(1)
}

func (m *mockRecipeStore) List(ctx context.Context, q string) ([]models.Recipe, error) {
	args := m.Called(ctx, q)
	r, _ := args.Get(0).([]models.Recipe)
	return r, args.Error(1)
}

func (m *mockRecipeStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockShoppingListStore struct{ mock.Mock }

func (m *mockShoppingListStore) Create(ctx context.Context, item *models.ShoppingListItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockShoppingListStore) GetByID(ctx context.Context, houseID, id uuid.UUID) (*models.ShoppingListItem, error) {
	args := m.Called(ctx, houseID, id)
	i, _ := args.Get(0).(*models.ShoppingListItem)
	return i, args.Error(1)
}

func (m *mockShoppingListStore) ListByHouse(ctx context.Context, houseID uuid.UUID) ([]models.ShoppingListItem, error) {
	args := m.Called(ctx, houseID)
	i, _ := args.Get(0).([]models.ShoppingListItem)
	return i, args.Error(1)
}

func (m *mockShoppingListStore) Update(ctx context.Context, item *models.ShoppingListItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockShoppingListStore) Delete(ctx context.Context, houseID, id uuid.UUID) error {
	return m.Called(ctx, houseID, id).Error(0)
}

func (m *mockShoppingListStore) DeleteChecked(ctx context.Context, houseID uuid.UUID) (int64, error) {
	args := m.Called(ctx, houseID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockShoppingListStore) Reorder(ctx context.Context, houseID uuid.UUID, ids []uuid.UUID) error {
	return m.Called(ctx, houseID, ids).Error(0)
}
