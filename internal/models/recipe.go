package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Recipe struct {
	ID          uuid.UUID `json:"id"`
	CreatedBy   uuid.UUID `json:"created_by"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Servings    *int      `json:"servings,omitempty"`
	PrepMinutes *int      `json:"prep_minutes,omitempty"`
	CookMinutes *int      `json:"cook_minutes,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	Ingredients  []RecipeIngredient  `json:"ingredients"`
	Instructions []RecipeInstruction `json:"instructions,omitempty"`
}

func (r *Recipe) Prepare() {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.Title = strings.TrimSpace(r.Title)
	for i := range r.Ingredients {
		r.Ingredients[i].RecipeID = r.ID
	}
	// Steps are renumbered densely in submitted order.
	for i := range r.Instructions {
		r.Instructions[i].RecipeID = r.ID
		r.Instructions[i].StepNumber = i + 1
		r.Instructions[i].Text = strings.TrimSpace(r.Instructions[i].Text)
	}
}

type RecipeIngredient struct {
	RecipeID     uuid.UUID           `json:"recipe_id"`
	IngredientID uuid.UUID           `json:"ingredient_id"`
	Quantity     decimal.NullDecimal `json:"quantity"`
	Unit         *string             `json:"unit,omitempty"`
	Optional     bool                `json:"optional"`
	Note         *string             `json:"note,omitempty"`

	IngredientName string `json:"ingredient_name,omitempty"`
}

type RecipeInstruction struct {
	RecipeID   uuid.UUID `json:"recipe_id"`
	StepNumber int       `json:"step_number"`
	Text       string    `json:"text"`
}
