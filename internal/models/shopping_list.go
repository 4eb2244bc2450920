package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ShoppingListItem struct {
	ID           uuid.UUID           `json:"id"`
	HouseID      uuid.UUID           `json:"house_id"`
	IngredientID *uuid.UUID          `json:"ingredient_id,omitempty"`
	Name         string              `json:"name"`
	Quantity     decimal.NullDecimal `json:"quantity"`
	Unit         *string             `json:"unit,omitempty"`
	Checked      bool                `json:"checked"`
	Position     int                 `json:"position"`
	AddedBy      *uuid.UUID          `json:"added_by,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

func (i *ShoppingListItem) Prepare() {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	i.Name = strings.TrimSpace(i.Name)
}

// SameUnit reports whether two optional units are equal, treating
// missing units as equal to each other only.
func SameUnit(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return strings.EqualFold(strings.TrimSpace(*a), strings.TrimSpace(*b))
}
