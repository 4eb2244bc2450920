package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"pantry/internal/models"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func ptr[T any](v T) *T { return &v }

func qty(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestMatchPercent(t *testing.T) {
	tests := []struct {
		matched, required, want int
	}{
		{0, 0, 100},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13},
		{199, 200, 99},
		{3, 3, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchPercent(tt.matched, tt.required), "%d/%d", tt.matched, tt.required)
	}
}

func TestBuildInventory_SkipsOutRows(t *testing.T) {
	flour, eggs, milk := uuid.New(), uuid.New(), uuid.New()
	inv := BuildInventory([]models.Stock{
		{IngredientID: flour, Status: models.StockStatusInStock},
		{IngredientID: eggs, Status: models.StockStatusLow},
		{IngredientID: milk, Status: models.StockStatusOut},
	})

	assert.True(t, inv[flour])
	assert.True(t, inv[eggs])
	assert.False(t, inv[milk])
}

func TestMatchRecipe(t *testing.T) {
	flour, eggs, milk, salt := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	recipeID := uuid.New()

	tests := []struct {
		name   string
		recipe models.Recipe
		inv    Inventory
		want   RecipeMatch
	}{
		{
			name: "partial match lists missing with quantities",
			recipe: models.Recipe{ID: recipeID, Title: "Pancakes", Ingredients: []models.RecipeIngredient{
				{IngredientID: flour, IngredientName: "Flour", Quantity: qty("200"), Unit: ptr("g")},
				{IngredientID: eggs, IngredientName: "Eggs", Quantity: qty("2")},
				{IngredientID: milk, IngredientName: "Milk", Quantity: qty("0.3"), Unit: ptr("l")},
				{IngredientID: salt, IngredientName: "Salt", Optional: true},
			}},
			inv: Inventory{flour: true, salt: true},
			want: RecipeMatch{
				RecipeID:          recipeID,
				Title:             "Pancakes",
				RequiredCount:     3,
				MatchedCount:      1,
				MatchPercent:      33,
				OptionalAvailable: 1,
				Missing: []MissingIngredient{
					{IngredientID: eggs, Name: "Eggs", Quantity: qty("2")},
					{IngredientID: milk, Name: "Milk", Quantity: qty("0.3"), Unit: ptr("l")},
				},
			},
		},
		{
			name: "optional ingredients do not block",
			recipe: models.Recipe{ID: recipeID, Title: "Toast", Ingredients: []models.RecipeIngredient{
				{IngredientID: flour, IngredientName: "Flour"},
				{IngredientID: salt, IngredientName: "Salt", Optional: true},
			}},
			inv: Inventory{flour: true},
			want: RecipeMatch{
				RecipeID:      recipeID,
				Title:         "Toast",
				RequiredCount: 1,
				MatchedCount:  1,
				MatchPercent:  100,
				Missing:       []MissingIngredient{},
				Makeable:      true,
			},
		},
		{
			name:   "no ingredients is fully matched",
			recipe: models.Recipe{ID: recipeID, Title: "Water"},
			inv:    Inventory{},
			want: RecipeMatch{
				RecipeID:     recipeID,
				Title:        "Water",
				MatchPercent: 100,
				Missing:      []MissingIngredient{},
				Makeable:     true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchRecipe(tt.recipe, tt.inv)
			if diff := cmp.Diff(tt.want, got, decimalEqual); diff != "" {
				t.Errorf("MatchRecipe() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatchRecipes_SortAndFilter(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	inv := Inventory{a: true, b: true}
	recipes := []models.Recipe{
		{ID: uuid.New(), Title: "half", Ingredients: []models.RecipeIngredient{{IngredientID: a}, {IngredientID: c}}},
		{ID: uuid.New(), Title: "zucchini bread", Ingredients: []models.RecipeIngredient{{IngredientID: a}}},
		{ID: uuid.New(), Title: "apple pie", Ingredients: []models.RecipeIngredient{{IngredientID: a}, {IngredientID: b}}},
		{ID: uuid.New(), Title: "none", Ingredients: []models.RecipeIngredient{{IngredientID: c}}},
	}

	titles := func(ms []RecipeMatch) []string {
		out := make([]string, len(ms))
		for i, m := range ms {
			out[i] = m.Title
		}
		return out
	}

	got := MatchRecipes(recipes, inv, MatchOptions{})
	assert.Equal(t, []string{"apple pie", "zucchini bread", "half", "none"}, titles(got))

	got = MatchRecipes(recipes, inv, MatchOptions{MinPercent: 50})
	assert.Equal(t, []string{"apple pie", "zucchini bread", "half"}, titles(got))

	got = MatchRecipes(recipes, inv, MatchOptions{MakeableOnly: true})
	assert.Equal(t, []string{"apple pie", "zucchini bread"}, titles(got))
}

func TestSuggestPurchases(t *testing.T) {
	butter, rice, oil, salt, sugar := uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()

	stock := []models.Stock{
		// low in the fridge, out in the pantry: summed shortfall
		{IngredientID: butter, IngredientName: "Butter", Status: models.StockStatusLow,
			Quantity: decimal.RequireFromString("1"), LowThreshold: qty("3"), Unit: ptr("pcs")},
		{IngredientID: butter, IngredientName: "Butter", Status: models.StockStatusOut,
			Quantity: decimal.Zero, LowThreshold: qty("1")},
		// out but in stock elsewhere: no suggestion
		{IngredientID: rice, IngredientName: "Rice", Status: models.StockStatusOut},
		{IngredientID: rice, IngredientName: "Rice", Status: models.StockStatusInStock, Quantity: decimal.NewFromInt(2)},
		// out with no threshold: no quantity
		{IngredientID: oil, IngredientName: "oil", Status: models.StockStatusOut},
		// already on the list
		{IngredientID: salt, IngredientName: "Salt", Status: models.StockStatusOut},
		// manual low without threshold
		{IngredientID: sugar, IngredientName: "Sugar", Status: models.StockStatusLow, Quantity: decimal.NewFromInt(5)},
	}
	list := []models.ShoppingListItem{
		{IngredientID: &salt, Name: "Salt"},
		{IngredientID: &sugar, Name: "Sugar", Checked: true},
	}

	want := []Suggestion{
		{IngredientID: oil, Name: "oil", Status: models.StockStatusOut},
		{IngredientID: butter, Name: "Butter", Status: models.StockStatusLow, Quantity: qty("3"), Unit: ptr("pcs")},
		{IngredientID: sugar, Name: "Sugar", Status: models.StockStatusLow},
	}

	got := SuggestPurchases(stock, list)
	if diff := cmp.Diff(want, got, decimalEqual, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("SuggestPurchases() mismatch (-want +got):\n%s", diff)
	}
}
