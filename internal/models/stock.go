package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StockStatusInStock = "in_stock"
	StockStatusLow     = "low"
	StockStatusOut     = "out"
)

var StockStatuses = []string{StockStatusInStock, StockStatusLow, StockStatusOut}

func init() {
	// Quantities are plain JSON numbers for clients.
	decimal.MarshalJSONWithoutQuotes = true
}

// Stock is the quantity of one ingredient held in one storage.
type Stock struct {
	ID           uuid.UUID           `json:"id"`
	StorageID    uuid.UUID           `json:"storage_id"`
	IngredientID uuid.UUID           `json:"ingredient_id"`
	Quantity     decimal.Decimal     `json:"quantity"`
	Unit         *string             `json:"unit,omitempty"`
	Status       string              `json:"status"`
	LowThreshold decimal.NullDecimal `json:"low_threshold"`
	ExpiresAt    *time.Time          `json:"expires_at,omitempty"`
	UpdatedAt    time.Time           `json:"updated_at"`

	// Joined for listings.
	IngredientName string    `json:"ingredient_name,omitempty"`
	StorageName    string    `json:"storage_name,omitempty"`
	HouseID        uuid.UUID `json:"house_id"`
}

func (s *Stock) Prepare() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.Normalize()
}

// Normalize derives Status from the quantity and threshold. An explicit
// "low" survives only while the quantity is positive and not under the
// threshold rules.
func (s *Stock) Normalize() {
	switch {
	case !s.Quantity.IsPositive():
		s.Status = StockStatusOut
	case s.LowThreshold.Valid && s.Quantity.LessThanOrEqual(s.LowThreshold.Decimal):
		s.Status = StockStatusLow
	case s.Status == StockStatusLow:
	default:
		s.Status = StockStatusInStock
	}
}

// Available reports whether the stock counts as on hand for matching.
func (s *Stock) Available() bool {
	return s.Status != StockStatusOut
}

// Shortfall is how much is needed to get back over the threshold. It is
// zero when no threshold is set or the quantity already exceeds it.
func (s *Stock) Shortfall() decimal.Decimal {
	if !s.LowThreshold.Valid || s.Quantity.GreaterThanOrEqual(s.LowThreshold.Decimal) {
		return decimal.Zero
	}
	return s.LowThreshold.Decimal.Sub(s.Quantity)
}
