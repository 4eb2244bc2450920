package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pantry/internal/models"
	"pantry/internal/repositories"
)

func TestMatchService_MatchesAcrossAllHouses(t *testing.T) {
	ctx := context.Background()
	houses, stock, recipes := new(mockHouseStore), new(mockStockStore), new(mockRecipeStore)
	svc := NewMatchService(recipes, stock, NewHouseService(houses, new(mockUserStore)))

	userID := uuid.New()
	homeA, homeB := uuid.New(), uuid.New()
	flour, eggs := uuid.New(), uuid.New()

	houses.On("ListHouseIDsByMember", mock.Anything, userID).Return([]uuid.UUID{homeA, homeB}, nil)
	stock.On("ListByHouses", mock.Anything, []uuid.UUID{homeA, homeB}, repositories.StockFilter{}).Return([]models.Stock{
		{IngredientID: flour, Status: models.StockStatusInStock},
		{IngredientID: eggs, Status: models.StockStatusOut},
	}, nil)
	recipes.On("List", mock.Anything, "").Return([]models.Recipe{
		{ID: uuid.New(), Title: "Bread", Ingredients: []models.RecipeIngredient{{IngredientID: flour}}},
		{ID: uuid.New(), Title: "Omelette", Ingredients: []models.RecipeIngredient{{IngredientID: eggs}}},
	}, nil)

	got, err := svc.Matches(ctx, userID, nil, MatchOptions{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bread", got[0].Title)
	assert.True(t, got[0].Makeable)
	assert.Equal(t, 0, got[1].MatchPercent)
}

func TestMatchService_ForeignHouseIsNotFound(t *testing.T) {
	ctx := context.Background()
	houses, recipes := new(mockHouseStore), new(mockRecipeStore)
	svc := NewMatchService(recipes, new(mockStockStore), NewHouseService(houses, new(mockUserStore)))
	userID, houseID := uuid.New(), uuid.New()

	houses.On("GetMember", mock.Anything, houseID, userID).Return(nil, nil)
	recipes.On("List", mock.Anything, "").Return([]models.Recipe{}, nil).Maybe()

	_, err := svc.Matches(ctx, userID, &houseID, MatchOptions{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMatchService_MatchOne(t *testing.T) {
	ctx := context.Background()
	houses, stock, recipes := new(mockHouseStore), new(mockStockStore), new(mockRecipeStore)
	svc := NewMatchService(recipes, stock, NewHouseService(houses, new(mockUserStore)))
	userID, houseID, recipeID := uuid.New(), uuid.New(), uuid.New()

	houses.On("GetMember", mock.Anything, houseID, userID).Return(&models.HouseMember{Role: models.RoleMember}, nil)
	stock.On("ListByHouses", mock.Anything, []uuid.UUID{houseID}, repositories.StockFilter{}).Return([]models.Stock{}, nil)

	t.Run("missing recipe", func(t *testing.T) {
		recipes.On("GetByID", mock.Anything, recipeID).Return(nil, nil).Once()
		_, err := svc.MatchOne(ctx, userID, recipeID, &houseID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		recipes.On("GetByID", mock.Anything, recipeID).Return(nil, errors.New("boom")).Once()
		_, err := svc.MatchOne(ctx, userID, recipeID, &houseID)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("match", func(t *testing.T) {
		salt := uuid.New()
		recipes.On("GetByID", mock.Anything, recipeID).Return(&models.Recipe{
			ID:          recipeID,
			Title:       "Soup",
			Ingredients: []models.RecipeIngredient{{IngredientID: salt, IngredientName: "Salt"}},
		}, nil).Once()

		got, err := svc.MatchOne(ctx, userID, recipeID, &houseID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.MatchPercent)
		require.Len(t, got.Missing, 1)
		assert.Equal(t, "Salt", got.Missing[0].Name)
	})
}
