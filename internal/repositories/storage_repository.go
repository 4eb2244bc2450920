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

type StorageRepository struct {
	pool *pgxpool.Pool
}

func NewStorageRepository(pool *pgxpool.Pool) *StorageRepository {
	return &StorageRepository{pool: pool}
}

// Create appends the storage after the house's last one.
func (r *StorageRepository) Create(ctx context.Context, storage *models.Storage) error {
	storage.Prepare()
	storage.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO storages (id, house_id, name, kind, position, created_at)
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM storages WHERE house_id = $2),
			$5)
		RETURNING position
	`
	return r.pool.QueryRow(ctx, query,
		storage.ID,
		storage.HouseID,
		storage.Name,
		storage.Kind,
		storage.CreatedAt,
	).Scan(&storage.Position)
}

func (r *StorageRepository) GetByID(ctx context.Context, houseID, id uuid.UUID) (*models.Storage, error) {
	query := `
		SELECT id, house_id, name, kind, position, created_at
		FROM storages WHERE id = $1 AND house_id = $2
	`
	var s models.Storage
	err := r.pool.QueryRow(ctx, query, id, houseID).Scan(
		&s.ID,
		&s.HouseID,
		&s.Name,
		&s.Kind,
		&s.Position,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *StorageRepository) ListByHouse(ctx context.Context, houseID uuid.UUID) ([]models.Storage, error) {
	query := `
		SELECT id, house_id, name, kind, position, created_at
		FROM storages WHERE house_id = $1
		ORDER BY position ASC, created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, houseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	storages := []models.Storage{}
	for rows.Next() {
		var s models.Storage
		if err := rows.Scan(&s.ID, &s.HouseID, &s.Name, &s.Kind, &s.Position, &s.CreatedAt); err != nil {
			return nil, err
		}
		storages = append(storages, s)
	}
	return storages, rows.Err()
}

func (r *StorageRepository) Update(ctx context.Context, storage *models.Storage) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE storages SET name = $3, kind = $4 WHERE id = $1 AND house_id = $2`,
		storage.ID, storage.HouseID, storage.Name, storage.Kind,
	)
	return err
}

func (r *StorageRepository) Delete(ctx context.Context, houseID, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM storages WHERE id = $1 AND house_id = $2`, id, houseID)
	return err
}

// Reorder writes positions 0..n-1 following ids.
func (r *StorageRepository) Reorder(ctx context.Context, houseID uuid.UUID, ids []uuid.UUID) error {
	return reorder(ctx, r.pool, `UPDATE storages SET position = $3 WHERE id = $1 AND house_id = $2`, houseID, ids)
}

func reorder(ctx context.Context, pool *pgxpool.Pool, query string, houseID uuid.UUID, ids []uuid.UUID) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for pos, id := range ids {
			batch.Queue(query, id, houseID, pos)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}
