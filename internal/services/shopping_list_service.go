package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pantry/internal/models"
	"pantry/internal/repositories"
)

// ShoppingListService manages a house's shopping list. House membership is
// checked by the caller.
type ShoppingListService struct {
	listRepo    ShoppingListStore
	stockRepo   StockStore
	ingredients *IngredientService
	stock       *StockService
	matches     *MatchService
	log         *zap.Logger
}

func NewShoppingListService(
	listRepo ShoppingListStore,
	stockRepo StockStore,
	ingredients *IngredientService,
	stock *StockService,
	matches *MatchService,
	log *zap.Logger,
) *ShoppingListService {
	return &ShoppingListService{
		listRepo:    listRepo,
		stockRepo:   stockRepo,
		ingredients: ingredients,
		stock:       stock,
		matches:     matches,
		log:         log,
	}
}

type ShoppingItemRequest struct {
	IngredientID *uuid.UUID          `json:"ingredient_id"`
	Name         string              `json:"name" binding:"required_without=IngredientID,max=100"`
	Quantity     decimal.NullDecimal `json:"quantity"`
	Unit         *string             `json:"unit" binding:"omitempty,max=20"`
}

type ShoppingItemUpdateRequest struct {
	Name      *string          `json:"name" binding:"omitempty,max=100"`
	Quantity  *decimal.Decimal `json:"quantity"`
	Unit      *string          `json:"unit" binding:"omitempty,max=20"`
	Checked   *bool            `json:"checked"`
	Restock   bool             `json:"restock"`
	StorageID *uuid.UUID       `json:"storage_id"`
}

type AcceptSuggestionsRequest struct {
	IngredientIDs []uuid.UUID `json:"ingredient_ids"`
}

func (s *ShoppingListService) ListItems(ctx context.Context, houseID uuid.UUID) ([]models.ShoppingListItem, error) {
	items, err := s.listRepo.ListByHouse(ctx, houseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping list: %w", err)
	}
	return items, nil
}

// AddItem appends an item. An unchecked item for the same ingredient and
// unit absorbs the new quantity instead of adding a second row.
func (s *ShoppingListService) AddItem(ctx context.Context, houseID, userID uuid.UUID, req ShoppingItemRequest) (*models.ShoppingListItem, error) {
	if req.Quantity.Valid && !req.Quantity.Decimal.IsPositive() {
		return nil, fmt.Errorf("quantity must be positive: %w", ErrInvalidInput)
	}

	item := &models.ShoppingListItem{
		HouseID:  houseID,
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		AddedBy:  &userID,
	}

	if req.IngredientID != nil {
		ingredient, err := s.ingredients.GetIngredient(ctx, *req.IngredientID)
		if err != nil {
			return nil, err
		}
		item.IngredientID = &ingredient.ID
		if item.Name == "" {
			item.Name = ingredient.Name
		}
		if item.Unit == nil {
			item.Unit = ingredient.DefaultUnit
		}

		items, err := s.ListItems(ctx, houseID)
		if err != nil {
			return nil, err
		}
		if existing := findMergeTarget(items, ingredient.ID, item.Unit); existing != nil {
			existing.Quantity = addQuantities(existing.Quantity, item.Quantity)
			if err := s.listRepo.Update(ctx, existing); err != nil {
				return nil, fmt.Errorf("failed to update shopping list item: %w", err)
			}
			return existing, nil
		}
	}

	item.Prepare()
	if item.Name == "" {
		return nil, fmt.Errorf("name must not be blank: %w", ErrInvalidInput)
	}
	if err := s.listRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add shopping list item: %w", err)
	}
	return item, nil
}

func findMergeTarget(items []models.ShoppingListItem, ingredientID uuid.UUID, unit *string) *models.ShoppingListItem {
	for i := range items {
		it := &items[i]
		if it.Checked || it.IngredientID == nil || *it.IngredientID != ingredientID {
			continue
		}
		if models.SameUnit(it.Unit, unit) {
			return it
		}
	}
	return nil
}

// addQuantities sums two optional quantities; unknown plus known stays known.
func addQuantities(a, b decimal.NullDecimal) decimal.NullDecimal {
	switch {
	case a.Valid && b.Valid:
		return decimal.NewNullDecimal(a.Decimal.Add(b.Decimal))
	case b.Valid:
		return b
	default:
		return a
	}
}

func (s *ShoppingListService) GetItem(ctx context.Context, houseID, itemID uuid.UUID) (*models.ShoppingListItem, error) {
	item, err := s.listRepo.GetByID(ctx, houseID, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shopping list item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("shopping list item %s: %w", itemID, ErrNotFound)
	}
	return item, nil
}

// UpdateItem edits an item. Checking it with Restock and a StorageID set
// moves its quantity into that storage.
func (s *ShoppingListService) UpdateItem(ctx context.Context, houseID, itemID uuid.UUID, req ShoppingItemUpdateRequest) (*models.ShoppingListItem, error) {
	item, err := s.GetItem(ctx, houseID, itemID)
	if err != nil {
		return nil, err
	}
	wasChecked := item.Checked

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Quantity != nil {
		if !req.Quantity.IsPositive() {
			return nil, fmt.Errorf("quantity must be positive: %w", ErrInvalidInput)
		}
		item.Quantity = decimal.NewNullDecimal(*req.Quantity)
	}
	if req.Unit != nil {
		item.Unit = req.Unit
	}
	if req.Checked != nil {
		item.Checked = *req.Checked
	}
	item.Prepare()
	if item.Name == "" {
		return nil, fmt.Errorf("name must not be blank: %w", ErrInvalidInput)
	}

	restock := req.Restock && req.StorageID != nil && item.Checked && !wasChecked
	if restock {
		if item.IngredientID == nil {
			return nil, fmt.Errorf("only catalog ingredients can be restocked: %w", ErrInvalidInput)
		}
		if err := s.stock.CheckRestock(ctx, houseID, *req.StorageID, *item.IngredientID, item.Unit); err != nil {
			return nil, err
		}
	}

	if err := s.listRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update shopping list item: %w", err)
	}

	if restock {
		qty := decimal.NewFromInt(1)
		if item.Quantity.Valid {
			qty = item.Quantity.Decimal
		}
		if _, err := s.stock.Restock(ctx, houseID, *req.StorageID, *item.IngredientID, qty, item.Unit); err != nil {
			// A retry must find the item unchecked.
			item.Checked = wasChecked
			if rerr := s.listRepo.Update(ctx, item); rerr != nil {
				s.log.Error("failed to uncheck item after restock error",
					zap.String("item_id", item.ID.String()),
					zap.Error(rerr),
				)
			}
			return nil, err
		}
		s.log.Info("restocked from shopping list",
			zap.String("house_id", houseID.String()),
			zap.String("ingredient_id", item.IngredientID.String()),
			zap.String("quantity", qty.String()),
		)
	}
	return item, nil
}

func (s *ShoppingListService) DeleteItem(ctx context.Context, houseID, itemID uuid.UUID) error {
	if _, err := s.GetItem(ctx, houseID, itemID); err != nil {
		return err
	}
	if err := s.listRepo.Delete(ctx, houseID, itemID); err != nil {
		return fmt.Errorf("failed to delete shopping list item: %w", err)
	}
	return nil
}

func (s *ShoppingListService) ClearChecked(ctx context.Context, houseID uuid.UUID) (int64, error) {
	n, err := s.listRepo.DeleteChecked(ctx, houseID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear checked items: %w", err)
	}
	return n, nil
}

func (s *ShoppingListService) ReorderItems(ctx context.Context, houseID uuid.UUID, ids []uuid.UUID) ([]models.ShoppingListItem, error) {
	items, err := s.ListItems(ctx, houseID)
	if err != nil {
		return nil, err
	}
	existing := make([]uuid.UUID, len(items))
	for i, it := range items {
		existing[i] = it.ID
	}
	if err := validateOrder(existing, ids); err != nil {
		return nil, err
	}
	if err := s.listRepo.Reorder(ctx, houseID, ids); err != nil {
		return nil, fmt.Errorf("failed to reorder shopping list: %w", err)
	}
	return s.ListItems(ctx, houseID)
}

func (s *ShoppingListService) Suggestions(ctx context.Context, houseID uuid.UUID) ([]Suggestion, error) {
	stock, err := s.stockRepo.ListByHouses(ctx, []uuid.UUID{houseID}, repositories.StockFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}
	items, err := s.ListItems(ctx, houseID)
	if err != nil {
		return nil, err
	}
	return SuggestPurchases(stock, items), nil
}

// AcceptSuggestions adds the selected suggestions, or all of them when
// ingredientIDs is empty.
func (s *ShoppingListService) AcceptSuggestions(ctx context.Context, houseID, userID uuid.UUID, ingredientIDs []uuid.UUID) ([]models.ShoppingListItem, error) {
	suggestions, err := s.Suggestions(ctx, houseID)
	if err != nil {
		return nil, err
	}

	wanted := make(map[uuid.UUID]bool, len(ingredientIDs))
	for _, id := range ingredientIDs {
		wanted[id] = true
	}

	added := []models.ShoppingListItem{}
	for _, sug := range suggestions {
		if len(wanted) > 0 && !wanted[sug.IngredientID] {
			continue
		}
		id := sug.IngredientID
		item, err := s.AddItem(ctx, houseID, userID, ShoppingItemRequest{
			IngredientID: &id,
			Name:         sug.Name,
			Quantity:     sug.Quantity,
			Unit:         sug.Unit,
		})
		if err != nil {
			return nil, err
		}
		added = append(added, *item)
	}
	return added, nil
}

// AddMissingFromRecipe puts the recipe's missing required ingredients, as
// seen from this house's inventory, on the house's list.
func (s *ShoppingListService) AddMissingFromRecipe(ctx context.Context, houseID, userID, recipeID uuid.UUID) ([]models.ShoppingListItem, error) {
	match, err := s.matches.MatchOne(ctx, userID, recipeID, &houseID)
	if err != nil {
		return nil, err
	}

	added := []models.ShoppingListItem{}
	for _, missing := range match.Missing {
		id := missing.IngredientID
		item, err := s.AddItem(ctx, houseID, userID, ShoppingItemRequest{
			IngredientID: &id,
			Name:         missing.Name,
			Quantity:     missing.Quantity,
			Unit:         missing.Unit,
		})
		if err != nil {
			return nil, err
		}
		added = append(added, *item)
	}
	return added, nil
}
