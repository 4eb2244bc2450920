package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pantry/internal/models"
	"pantry/internal/repositories"
)

// The interfaces below are what services need from persistence; the pgx
// repositories satisfy them.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

type TokenBlacklist interface {
	Blacklist(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

type HouseStore interface {
	Create(ctx context.Context, house *models.House) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.House, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]models.House, error)
	ListHouseIDsByMember(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Update(ctx context.Context, house *models.House) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetMember(ctx context.Context, houseID, userID uuid.UUID) (*models.HouseMember, error)
	ListMembers(ctx context.Context, houseID uuid.UUID) ([]models.HouseMember, error)
	AddMember(ctx context.Context, member *models.HouseMember) error
	RemoveMember(ctx context.Context, houseID, userID uuid.UUID) error
	CountOwners(ctx context.Context, houseID uuid.UUID) (int, error)
}

type StorageStore interface {
	Create(ctx context.Context, storage *models.Storage) error
	GetByID(ctx context.Context, houseID, id uuid.UUID) (*models.Storage, error)
	ListByHouse(ctx context.Context, houseID uuid.UUID) ([]models.Storage, error)
	Update(ctx context.Context, storage *models.Storage) error
	Delete(ctx context.Context, houseID, id uuid.UUID) error
	Reorder(ctx context.Context, houseID uuid.UUID, ids []uuid.UUID) error
}

type IngredientStore interface {
	Create(ctx context.Context, ingredient *models.Ingredient) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Ingredient, error)
	Search(ctx context.Context, q string, limit int) ([]models.Ingredient, error)
	Update(ctx context.Context, ingredient *models.Ingredient) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type StockStore interface {
	Upsert(ctx context.Context, stock *models.Stock) error
	GetByID(ctx context.Context, houseID, id uuid.UUID) (*models.Stock, error)
	GetByStorageAndIngredient(ctx context.Context, storageID, ingredientID uuid.UUID) (*models.Stock, error)
	ListByHouses(ctx context.Context, houseIDs []uuid.UUID, filter repositories.StockFilter) ([]models.Stock, error)
	Update(ctx context.Context, stock *models.Stock) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RecipeStore interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	Replace(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	List(ctx context.Context, q string) ([]models.Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ShoppingListStore interface {
	Create(ctx context.Context, item *models.ShoppingListItem) error
	GetByID(ctx context.Context, houseID, id uuid.UUID) (*models.ShoppingListItem, error)
	ListByHouse(ctx context.Context, houseID uuid.UUID) ([]models.ShoppingListItem, error)
	Update(ctx context.Context, item *models.ShoppingListItem) error
	Delete(ctx context.Context, houseID, id uuid.UUID) error
	DeleteChecked(ctx context.Context, houseID uuid.UUID) (int64, error)
	Reorder(ctx context.Context, houseID uuid.UUID, ids []uuid.UUID) error
}
