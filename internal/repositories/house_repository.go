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

type HouseRepository struct {
	pool *pgxpool.Pool
}

func NewHouseRepository(pool *pgxpool.Pool) *HouseRepository {
	return &HouseRepository{pool: pool}
}

// Create inserts the house and its owner membership in one transaction.
func (r *HouseRepository) Create(ctx context.Context, house *models.House) error {
	house.Prepare()
	house.CreatedAt = time.Now().UTC()

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO houses (id, owner_id, name, address, latitude, longitude, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			house.ID,
			house.OwnerID,
			house.Name,
			house.Address,
			house.Latitude,
			house.Longitude,
			house.CreatedAt,
		)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO house_members (house_id, user_id, role, created_at)
			VALUES ($1, $2, $3, $4)`,
			house.ID, house.OwnerID, models.RoleOwner, house.CreatedAt,
		)
		return err
	})
}

func (r *HouseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.House, error) {
	query := `
		SELECT id, owner_id, name, address, latitude, longitude, created_at
		FROM houses WHERE id = $1
	`
	var house models.House
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&house.ID,
		&house.OwnerID,
		&house.Name,
		&house.Address,
		&house.Latitude,
		&house.Longitude,
		&house.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &house, nil
}

// ListByMember returns the houses the user belongs to, with the user's role.
func (r *HouseRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]models.House, error) {
	query := `
		SELECT h.id, h.owner_id, h.name, h.address, h.latitude, h.longitude, h.created_at, m.role
		FROM houses h
		JOIN house_members m ON m.house_id = h.id
		WHERE m.user_id = $1
		ORDER BY h.created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	houses := []models.House{}
	for rows.Next() {
		var house models.House
		if err := rows.Scan(
			&house.ID,
			&house.OwnerID,
			&house.Name,
			&house.Address,
			&house.Latitude,
			&house.Longitude,
			&house.CreatedAt,
			&house.Role,
		); err != nil {
			return nil, err
		}
		houses = append(houses, house)
	}
	return houses, rows.Err()
}

func (r *HouseRepository) Update(ctx context.Context, house *models.House) error {
	query := `
		UPDATE houses SET name = $2, address = $3, latitude = $4, longitude = $5
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		house.ID,
		house.Name,
		house.Address,
		house.Latitude,
		house.Longitude,
	)
	return err
}

func (r *HouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM houses WHERE id = $1`, id)
	return err
}

// GetMember returns nil when the user is not a member of the house.
func (r *HouseRepository) GetMember(ctx context.Context, houseID, userID uuid.UUID) (*models.HouseMember, error) {
	query := `
		SELECT m.house_id, m.user_id, m.role, u.email, u.name, m.created_at
		FROM house_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.house_id = $1 AND m.user_id = $2
	`
	var member models.HouseMember
	err := r.pool.QueryRow(ctx, query, houseID, userID).Scan(
		&member.HouseID,
		&member.UserID,
		&member.Role,
		&member.Email,
		&member.Name,
		&member.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *HouseRepository) ListMembers(ctx context.Context, houseID uuid.UUID) ([]models.HouseMember, error) {
	query := `
		SELECT m.house_id, m.user_id, m.role, u.email, u.name, m.created_at
		FROM house_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.house_id = $1
		ORDER BY m.created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, houseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.HouseMember{}
	for rows.Next() {
		var member models.HouseMember
		if err := rows.Scan(
			&member.HouseID,
			&member.UserID,
			&member.Role,
			&member.Email,
			&member.Name,
			&member.CreatedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (r *HouseRepository) AddMember(ctx context.Context, member *models.HouseMember) error {
	member.CreatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO house_members (house_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)`,
		member.HouseID, member.UserID, member.Role, member.CreatedAt,
	)
	return err
}

func (r *HouseRepository) RemoveMember(ctx context.Context, houseID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM house_members WHERE house_id = $1 AND user_id = $2`, houseID, userID)
	return err
}

func (r *HouseRepository) CountOwners(ctx context.Context, houseID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM house_members WHERE house_id = $1 AND role = $2`,
		houseID, models.RoleOwner,
	).Scan(&n)
	return n, err
}

// ListHouseIDsByMember is the cheap variant of ListByMember used for
// inventory scoping.
func (r *HouseRepository) ListHouseIDsByMember(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT house_id FROM house_members WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}
