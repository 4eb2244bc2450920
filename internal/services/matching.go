package services

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pantry/internal/models"
)

// Inventory is the set of ingredients on hand.
type Inventory map[uuid.UUID]bool

// BuildInventory collects every ingredient with at least one stock row
// that is not out.
func BuildInventory(stock []models.Stock) Inventory {
	inv := make(Inventory, len(stock))
	for i := range stock {
		if stock[i].Available() {
			inv[stock[i].IngredientID] = true
		}
	}
	return inv
}

type MissingIngredient struct {
	IngredientID uuid.UUID           `json:"ingredient_id"`
	Name         string              `json:"name"`
	Quantity     decimal.NullDecimal `json:"quantity"`
	Unit         *string             `json:"unit,omitempty"`
}

type RecipeMatch struct {
	RecipeID          uuid.UUID           `json:"recipe_id"`
	Title             string              `json:"title"`
	ImageURL          *string             `json:"image_url,omitempty"`
	RequiredCount     int                 `json:"required_count"`
	MatchedCount      int                 `json:"matched_count"`
	MatchPercent      int                 `json:"match_percent"`
	OptionalAvailable int                 `json:"optional_available"`
	Missing           []MissingIngredient `json:"missing"`
	Makeable          bool                `json:"makeable"`
}

// MatchRecipe intersects the recipe's required ingredients with inv.
// Optional ingredients never lower the percentage. A recipe without
// required ingredients is fully matched.
func MatchRecipe(recipe models.Recipe, inv Inventory) RecipeMatch {
	m := RecipeMatch{
		RecipeID: recipe.ID,
		Title:    recipe.Title,
		ImageURL: recipe.ImageURL,
		Missing:  []MissingIngredient{},
	}

	for _, ing := range recipe.Ingredients {
		onHand := inv[ing.IngredientID]
		if ing.Optional {
			if onHand {
				m.OptionalAvailable++
			}
			continue
		}
		m.RequiredCount++
		if onHand {
			m.MatchedCount++
			continue
		}
		m.Missing = append(m.Missing, MissingIngredient{
			IngredientID: ing.IngredientID,
			Name:         ing.IngredientName,
			Quantity:     ing.Quantity,
			Unit:         ing.Unit,
		})
	}

	m.Makeable = len(m.Missing) == 0
	m.MatchPercent = matchPercent(m.MatchedCount, m.RequiredCount)
	return m
}

// matchPercent rounds half up but only reports 100 for a complete match.
func matchPercent(matched, required int) int {
	if required == 0 {
		return 100
	}
	p := (200*matched + required) / (2 * required)
	if p == 100 && matched < required {
		p = 99
	}
	return p
}

type MatchOptions struct {
	MinPercent   int
	MakeableOnly bool
}

// MatchRecipes matches every recipe, filters by opts and sorts by
// percentage, then fewest missing, then title.
func MatchRecipes(recipes []models.Recipe, inv Inventory, opts MatchOptions) []RecipeMatch {
	out := make([]RecipeMatch, 0, len(recipes))
	for _, r := range recipes {
		m := MatchRecipe(r, inv)
		if m.MatchPercent < opts.MinPercent {
			continue
		}
		if opts.MakeableOnly && !m.Makeable {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.MatchPercent != b.MatchPercent {
			return a.MatchPercent > b.MatchPercent
		}
		if len(a.Missing) != len(b.Missing) {
			return len(a.Missing) < len(b.Missing)
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
	return out
}

type Suggestion struct {
	IngredientID uuid.UUID           `json:"ingredient_id"`
	Name         string              `json:"name"`
	Status       string              `json:"status"`
	Quantity     decimal.NullDecimal `json:"quantity"`
	Unit         *string             `json:"unit,omitempty"`
}

// SuggestPurchases proposes one item per ingredient that is low or out in
// every storage holding it. Ingredients already waiting unchecked on the
// list are skipped. The quantity is the summed shortfall against the low
// thresholds, when there is one.
func SuggestPurchases(stock []models.Stock, list []models.ShoppingListItem) []Suggestion {
	pending := make(map[uuid.UUID]bool, len(list))
	for _, item := range list {
		if item.IngredientID != nil && !item.Checked {
			pending[*item.IngredientID] = true
		}
	}

	type group struct {
		s         Suggestion
		inStock   bool
		shortfall decimal.Decimal
	}
	groups := make(map[uuid.UUID]*group)
	var order []uuid.UUID

	for i := range stock {
		st := &stock[i]
		if pending[st.IngredientID] {
			continue
		}
		g, ok := groups[st.IngredientID]
		if !ok {
			g = &group{s: Suggestion{
				IngredientID: st.IngredientID,
				Name:         st.IngredientName,
				Status:       models.StockStatusOut,
			}}
			groups[st.IngredientID] = g
			order = append(order, st.IngredientID)
		}

		switch st.Status {
		case models.StockStatusInStock:
			g.inStock = true
		case models.StockStatusLow:
			g.s.Status = models.StockStatusLow
		}
		g.shortfall = g.shortfall.Add(st.Shortfall())
		if g.s.Unit == nil {
			g.s.Unit = st.Unit
		}
	}

	out := make([]Suggestion, 0, len(order))
	for _, id := range order {
		g := groups[id]
		if g.inStock {
			continue
		}
		if g.shortfall.IsPositive() {
			g.s.Quantity = decimal.NewNullDecimal(g.shortfall)
		}
		out = append(out, g.s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Status != out[j].Status {
			return out[i].Status == models.StockStatusOut
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
