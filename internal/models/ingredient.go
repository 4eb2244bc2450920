package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Ingredient struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    *string   `json:"category,omitempty"`
	DefaultUnit *string   `json:"default_unit,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (i *Ingredient) Prepare() {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	i.Name = strings.TrimSpace(i.Name)
}
