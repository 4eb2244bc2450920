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

type StockRepository struct {
	pool *pgxpool.Pool
}

func NewStockRepository(pool *pgxpool.Pool) *StockRepository {
	return &StockRepository{pool: pool}
}

// StockFilter narrows ListByHouses. Zero values mean no filter.
type StockFilter struct {
	StorageID *uuid.UUID
	Status    string
}

const stockSelect = `
	SELECT st.id, st.storage_id, st.ingredient_id, st.quantity, st.unit, st.status,
		st.low_threshold, st.expires_at, st.updated_at, i.name, s.name, s.house_id
	FROM stock st
	JOIN storages s ON s.id = st.storage_id
	JOIN ingredients i ON i.id = st.ingredient_id
`

func scanStock(row pgx.Row) (models.Stock, error) {
	var st models.Stock
	err := row.Scan(
		&st.ID,
		&st.StorageID,
		&st.IngredientID,
		&st.Quantity,
		&st.Unit,
		&st.Status,
		&st.LowThreshold,
		&st.ExpiresAt,
		&st.UpdatedAt,
		&st.IngredientName,
		&st.StorageName,
		&st.HouseID,
	)
	return st, err
}

// Upsert inserts the row or replaces the existing one for the same
// (storage, ingredient) pair; stock.ID is set to the surviving row.
func (r *StockRepository) Upsert(ctx context.Context, stock *models.Stock) error {
	stock.Prepare()
	stock.UpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO stock (id, storage_id, ingredient_id, quantity, unit, status, low_threshold, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (storage_id, ingredient_id) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			unit = EXCLUDED.unit,
			status = EXCLUDED.status,
			low_threshold = EXCLUDED.low_threshold,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`
	return r.pool.QueryRow(ctx, query,
		stock.ID,
		stock.StorageID,
		stock.IngredientID,
		stock.Quantity,
		stock.Unit,
		stock.Status,
		stock.LowThreshold,
		stock.ExpiresAt,
		stock.UpdatedAt,
	).Scan(&stock.ID)
}

// GetByID only finds stock held in one of the house's storages.
func (r *StockRepository) GetByID(ctx context.Context, houseID, id uuid.UUID) (*models.Stock, error) {
	st, err := scanStock(r.pool.QueryRow(ctx, stockSelect+` WHERE st.id = $1 AND s.house_id = $2`, id, houseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

func (r *StockRepository) GetByStorageAndIngredient(ctx context.Context, storageID, ingredientID uuid.UUID) (*models.Stock, error) {
	st, err := scanStock(r.pool.QueryRow(ctx,
		stockSelect+` WHERE st.storage_id = $1 AND st.ingredient_id = $2`,
		storageID, ingredientID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

// ListByHouses lists stock across the given houses ordered by storage
// position then ingredient name.
func (r *StockRepository) ListByHouses(ctx context.Context, houseIDs []uuid.UUID, filter StockFilter) ([]models.Stock, error) {
	if len(houseIDs) == 0 {
		return []models.Stock{}, nil
	}

	query := stockSelect + `
		WHERE s.house_id = ANY($1::uuid[])
			AND ($2::uuid IS NULL OR st.storage_id = $2)
			AND ($3 = '' OR st.status = $3)
		ORDER BY s.position ASC, LOWER(i.name) ASC
	`
	rows, err := r.pool.Query(ctx, query, uuidStrings(houseIDs), filter.StorageID, filter.Status)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Stock, error) {
		return scanStock(row)
	})
}

func (r *StockRepository) Update(ctx context.Context, stock *models.Stock) error {
	stock.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE stock SET quantity = $2, unit = $3, status = $4, low_threshold = $5,
			expires_at = $6, updated_at = $7
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		stock.ID,
		stock.Quantity,
		stock.Unit,
		stock.Status,
		stock.LowThreshold,
		stock.ExpiresAt,
		stock.UpdatedAt,
	)
	return err
}

func (r *StockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM stock WHERE id = $1`, id)
	return err
}
