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

type ShoppingListRepository struct {
	pool *pgxpool.Pool
}

func NewShoppingListRepository(pool *pgxpool.Pool) *ShoppingListRepository {
	return &ShoppingListRepository{pool: pool}
}

const shoppingItemColumns = `id, house_id, ingredient_id, name, quantity, unit, checked, position, added_by, created_at`

func scanShoppingItem(row pgx.Row) (models.ShoppingListItem, error) {
	var item models.ShoppingListItem
	err := row.Scan(
		&item.ID,
		&item.HouseID,
		&item.IngredientID,
		&item.Name,
		&item.Quantity,
		&item.Unit,
		&item.Checked,
		&item.Position,
		&item.AddedBy,
		&item.CreatedAt,
	)
	return item, err
}

// Create appends the item to the end of the house's list.
func (r *ShoppingListRepository) Create(ctx context.Context, item *models.ShoppingListItem) error {
	item.Prepare()
	item.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO shopping_list_items (id, house_id, ingredient_id, name, quantity, unit, checked, position, added_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM shopping_list_items WHERE house_id = $2),
			$8, $9)
		RETURNING position
	`
	return r.pool.QueryRow(ctx, query,
		item.ID,
		item.HouseID,
		item.IngredientID,
		item.Name,
		item.Quantity,
		item.Unit,
		item.Checked,
		item.AddedBy,
		item.CreatedAt,
	).Scan(&item.Position)
}

func (r *ShoppingListRepository) GetByID(ctx context.Context, houseID, id uuid.UUID) (*models.ShoppingListItem, error) {
	item, err := scanShoppingItem(r.pool.QueryRow(ctx,
		`SELECT `+shoppingItemColumns+` FROM shopping_list_items WHERE id = $1 AND house_id = $2`,
		id, houseID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *ShoppingListRepository) ListByHouse(ctx context.Context, houseID uuid.UUID) ([]models.ShoppingListItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+shoppingItemColumns+` FROM shopping_list_items WHERE house_id = $1 ORDER BY position ASC, created_at ASC`,
		houseID,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ShoppingListItem, error) {
		return scanShoppingItem(row)
	})
}

func (r *ShoppingListRepository) Update(ctx context.Context, item *models.ShoppingListItem) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE shopping_list_items SET name = $3, quantity = $4, unit = $5, checked = $6
		WHERE id = $1 AND house_id = $2`,
		item.ID, item.HouseID, item.Name, item.Quantity, item.Unit, item.Checked,
	)
	return err
}

func (r *ShoppingListRepository) Delete(ctx context.Context, houseID, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM shopping_list_items WHERE id = $1 AND house_id = $2`, id, houseID)
	return err
}

// DeleteChecked removes ticked items and reports how many went.
func (r *ShoppingListRepository) DeleteChecked(ctx context.Context, houseID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM shopping_list_items WHERE house_id = $1 AND checked`, houseID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *ShoppingListRepository) Reorder(ctx context.Context, houseID uuid.UUID, ids []uuid.UUID) error {
	return reorder(ctx, r.pool, `UPDATE shopping_list_items SET position = $3 WHERE id = $1 AND house_id = $2`, houseID, ids)
}
