package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestStockNormalize(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		threshold decimal.NullDecimal
		status    string
		want      string
	}{
		{"empty is out", "0", decimal.NullDecimal{}, StockStatusInStock, StockStatusOut},
		{"empty beats manual low", "0", decimal.NullDecimal{}, StockStatusLow, StockStatusOut},
		{"at threshold is low", "2", decimal.NewNullDecimal(dec("2")), StockStatusInStock, StockStatusLow},
		{"above threshold", "2.5", decimal.NewNullDecimal(dec("2")), "", StockStatusInStock},
		{"above threshold keeps manual low", "5", decimal.NewNullDecimal(dec("2")), StockStatusLow, StockStatusLow},
		{"manual low kept", "3", decimal.NullDecimal{}, StockStatusLow, StockStatusLow},
		{"out with quantity recovers", "1", decimal.NullDecimal{}, StockStatusOut, StockStatusInStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Stock{Quantity: dec(tt.quantity), LowThreshold: tt.threshold, Status: tt.status}
			s.Normalize()
			assert.Equal(t, tt.want, s.Status)
		})
	}
}

func TestStockShortfall(t *testing.T) {
	s := Stock{Quantity: dec("0.5"), LowThreshold: decimal.NewNullDecimal(dec("2"))}
	assert.True(t, s.Shortfall().Equal(dec("1.5")))

	s.Quantity = dec("3")
	assert.True(t, s.Shortfall().IsZero())

	s.LowThreshold = decimal.NullDecimal{}
	assert.True(t, s.Shortfall().IsZero())
}

func TestStockJSONQuantitiesAreNumbers(t *testing.T) {
	b, err := json.Marshal(Stock{Quantity: dec("1.25"), LowThreshold: decimal.NewNullDecimal(dec("0.5"))})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"quantity":1.25`)
	assert.Contains(t, string(b), `"low_threshold":0.5`)
}

func TestSameUnit(t *testing.T) {
	g, kg, upper := "g", "kg", " G "
	assert.True(t, SameUnit(nil, nil))
	assert.True(t, SameUnit(&g, &upper))
	assert.False(t, SameUnit(&g, &kg))
	assert.False(t, SameUnit(&g, nil))
}

func TestRecipePrepareRenumbersSteps(t *testing.T) {
	r := Recipe{
		Title:        "  Soup ",
		Ingredients:  []RecipeIngredient{{}},
		Instructions: []RecipeInstruction{{StepNumber: 7, Text: " boil "}, {StepNumber: 3, Text: "serve"}},
	}
	r.Prepare()

	assert.Equal(t, "Soup", r.Title)
	assert.Equal(t, r.ID, r.Ingredients[0].RecipeID)
	assert.Equal(t, 1, r.Instructions[0].StepNumber)
	assert.Equal(t, "boil", r.Instructions[0].Text)
	assert.Equal(t, 2, r.Instructions[1].StepNumber)
}

func TestUserPrepareNormalizesEmail(t *testing.T) {
	u := User{Email: "  Cook@Example.COM "}
	u.Prepare()
	assert.Equal(t, "cook@example.com", u.Email)
}

func TestStoragePrepareDefaultsKind(t *testing.T) {
	s := Storage{Name: " Shelf "}
	s.Prepare()
	assert.Equal(t, StorageKindOther, s.Kind)
	assert.Equal(t, "Shelf", s.Name)
}
