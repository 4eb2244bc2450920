package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"pantry/internal/models"
	"pantry/internal/repositories"
)

// MatchService answers "what can I cook" against the caller's inventory.
type MatchService struct {
	recipeRepo RecipeStore
	stockRepo  StockStore
	houses     *HouseService
}

func NewMatchService(recipeRepo RecipeStore, stockRepo StockStore, houses *HouseService) *MatchService {
	return &MatchService{
		recipeRepo: recipeRepo,
		stockRepo:  stockRepo,
		houses:     houses,
	}
}

// Inventory loads what is on hand in the selected houses.
func (s *MatchService) Inventory(ctx context.Context, userID uuid.UUID, houseID *uuid.UUID) (Inventory, error) {
	houseIDs, err := s.houses.HouseScope(ctx, userID, houseID)
	if err != nil {
		return nil, err
	}
	stock, err := s.stockRepo.ListByHouses(ctx, houseIDs, repositories.StockFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	return BuildInventory(stock), nil
}

func (s *MatchService) Matches(ctx context.Context, userID uuid.UUID, houseID *uuid.UUID, opts MatchOptions) ([]RecipeMatch, error) {
	var (
		recipes []models.Recipe
		inv     Inventory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipes, err = s.recipeRepo.List(gctx, "")
		if err != nil {
			return fmt.Errorf("failed to load recipes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		inv, err = s.Inventory(gctx, userID, houseID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return MatchRecipes(recipes, inv, opts), nil
}

func (s *MatchService) MatchOne(ctx context.Context, userID, recipeID uuid.UUID, houseID *uuid.UUID) (*RecipeMatch, error) {
	var (
		recipe *models.Recipe
		inv    Inventory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipe, err = s.recipeRepo.GetByID(gctx, recipeID)
		if err != nil {
			return fmt.Errorf("failed to load recipe: %w", err)
		}
		if recipe == nil {
			return fmt.Errorf("recipe %s: %w", recipeID, ErrNotFound)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		inv, err = s.Inventory(gctx, userID, houseID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := MatchRecipe(*recipe, inv)
	return &m, nil
}
