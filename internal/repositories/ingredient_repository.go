package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pantry/internal/models"
)

type IngredientRepository struct {
	pool *pgxpool.Pool
}

func NewIngredientRepository(pool *pgxpool.Pool) *IngredientRepository {
	return &IngredientRepository{pool: pool}
}

const ingredientColumns = `id, name, category, default_unit, created_at`

func scanIngredient(row pgx.Row) (models.Ingredient, error) {
	var i models.Ingredient
	err := row.Scan(&i.ID, &i.Name, &i.Category, &i.DefaultUnit, &i.CreatedAt)
	return i, err
}

func (r *IngredientRepository) Create(ctx context.Context, ingredient *models.Ingredient) error {
	ingredient.Prepare()
	ingredient.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO ingredients (id, name, category, default_unit, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		ingredient.ID,
		ingredient.Name,
		ingredient.Category,
		ingredient.DefaultUnit,
		ingredient.CreatedAt,
	)
	return err
}

func (r *IngredientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	i, err := scanIngredient(r.pool.QueryRow(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

func (r *IngredientRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return []models.Ingredient{}, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id = ANY($1::uuid[])`,
		uuidStrings(ids),
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Ingredient, error) {
		return scanIngredient(row)
	})
}

// Search matches names case-insensitively; prefix matches sort first.
func (r *IngredientRepository) Search(ctx context.Context, q string, limit int) ([]models.Ingredient, error) {
	query := `
		SELECT ` + ingredientColumns + `
		FROM ingredients
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
		ORDER BY (name ILIKE $1 || '%') DESC, LOWER(name) ASC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, escapeLike(q), limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Ingredient, error) {
		return scanIngredient(row)
	})
}

func (r *IngredientRepository) Update(ctx context.Context, ingredient *models.Ingredient) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE ingredients SET name = $2, category = $3, default_unit = $4 WHERE id = $1`,
		ingredient.ID, ingredient.Name, ingredient.Category, ingredient.DefaultUnit,
	)
	return err
}

func (r *IngredientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	return err
}
