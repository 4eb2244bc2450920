package services

import (
	"fmt"

	"github.com/google/uuid"
)

// ReorderRequest carries the complete new order of a house's rows.
type ReorderRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

// validateOrder checks that ids is a permutation of existing.
func validateOrder(existing, ids []uuid.UUID) error {
	if len(existing) != len(ids) {
		return fmt.Errorf("expected %d ids, got %d: %w", len(existing), len(ids), ErrInvalidInput)
	}

	known := make(map[uuid.UUID]bool, len(existing))
	for _, id := range existing {
		known[id] = false
	}
	for _, id := range ids {
		seen, ok := known[id]
		if !ok {
			return fmt.Errorf("unknown id %s: %w", id, ErrInvalidInput)
		}
		if seen {
			return fmt.Errorf("duplicate id %s: %w", id, ErrInvalidInput)
		}
		known[id] = true
	}
	return nil
}
