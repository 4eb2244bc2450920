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

type RecipeRepository struct {
	pool *pgxpool.Pool
}

func NewRecipeRepository(pool *pgxpool.Pool) *RecipeRepository {
	return &RecipeRepository{pool: pool}
}

const recipeColumns = `id, created_by, title, description, servings, prep_minutes, cook_minutes, image_url, created_at`

func scanRecipe(row pgx.Row) (models.Recipe, error) {
	var rec models.Recipe
	err := row.Scan(
		&rec.ID,
		&rec.CreatedBy,
		&rec.Title,
		&rec.Description,
		&rec.Servings,
		&rec.PrepMinutes,
		&rec.CookMinutes,
		&rec.ImageURL,
		&rec.CreatedAt,
	)
	return rec, err
}

// Create stores the recipe with its ingredients and instructions.
func (r *RecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	recipe.Prepare()
	recipe.CreatedAt = time.Now().UTC()

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO recipes (`+recipeColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			recipe.ID,
			recipe.CreatedBy,
			recipe.Title,
			recipe.Description,
			recipe.Servings,
			recipe.PrepMinutes,
			recipe.CookMinutes,
			recipe.ImageURL,
			recipe.CreatedAt,
		)
		if err != nil {
			return err
		}
		return insertRecipeChildren(ctx, tx, recipe)
	})
}

// Replace overwrites the recipe fields and swaps its children wholesale.
func (r *RecipeRepository) Replace(ctx context.Context, recipe *models.Recipe) error {
	recipe.Prepare()

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			UPDATE recipes SET title = $2, description = $3, servings = $4,
				prep_minutes = $5, cook_minutes = $6, image_url = $7
			WHERE id = $1`,
			recipe.ID,
			recipe.Title,
			recipe.Description,
			recipe.Servings,
			recipe.PrepMinutes,
			recipe.CookMinutes,
			recipe.ImageURL,
		)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipe.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM recipe_instructions WHERE recipe_id = $1`, recipe.ID); err != nil {
			return err
		}
		return insertRecipeChildren(ctx, tx, recipe)
	})
}

func insertRecipeChildren(ctx context.Context, tx pgx.Tx, recipe *models.Recipe) error {
	batch := &pgx.Batch{}
	for pos, ing := range recipe.Ingredients {
		batch.Queue(`
			INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity, unit, optional, note, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			recipe.ID, ing.IngredientID, ing.Quantity, ing.Unit, ing.Optional, ing.Note, pos,
		)
	}
	for _, step := range recipe.Instructions {
		batch.Queue(`
			INSERT INTO recipe_instructions (recipe_id, step_number, text)
			VALUES ($1, $2, $3)`,
			recipe.ID, step.StepNumber, step.Text,
		)
	}
	if batch.Len() == 0 {
		return nil
	}
	return tx.SendBatch(ctx, batch).Close()
}

// GetByID loads the recipe with ingredients and instructions.
func (r *RecipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	rec, err := scanRecipe(r.pool.QueryRow(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	byRecipe, err := r.ingredientsFor(ctx, []uuid.UUID{rec.ID})
	if err != nil {
		return nil, err
	}
	rec.Ingredients = byRecipe[rec.ID]
	if rec.Ingredients == nil {
		rec.Ingredients = []models.RecipeIngredient{}
	}

	rows, err := r.pool.Query(ctx,
		`SELECT recipe_id, step_number, text FROM recipe_instructions WHERE recipe_id = $1 ORDER BY step_number`,
		rec.ID,
	)
	if err != nil {
		return nil, err
	}
	rec.Instructions, err = pgx.CollectRows(rows, pgx.RowToStructByPos[models.RecipeInstruction])
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns recipes whose title matches q (all when empty) with their
// ingredients attached. Instructions are not loaded.
func (r *RecipeRepository) List(ctx context.Context, q string) ([]models.Recipe, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recipeColumns+` FROM recipes
		WHERE $1 = '' OR title ILIKE '%' || $1 || '%'
		ORDER BY LOWER(title) ASC`,
		escapeLike(q),
	)
	if err != nil {
		return nil, err
	}
	recipes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Recipe, error) {
		return scanRecipe(row)
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(recipes))
	for i := range recipes {
		ids[i] = recipes[i].ID
	}
	byRecipe, err := r.ingredientsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		recipes[i].Ingredients = byRecipe[recipes[i].ID]
		if recipes[i].Ingredients == nil {
			recipes[i].Ingredients = []models.RecipeIngredient{}
		}
	}
	return recipes, nil
}

func (r *RecipeRepository) ingredientsFor(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]models.RecipeIngredient, error) {
	out := make(map[uuid.UUID][]models.RecipeIngredient, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT ri.recipe_id, ri.ingredient_id, ri.quantity, ri.unit, ri.optional, ri.note, i.name
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ANY($1::uuid[])
		ORDER BY ri.recipe_id, ri.position`,
		uuidStrings(recipeIDs),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ri models.RecipeIngredient
		if err := rows.Scan(
			&ri.RecipeID,
			&ri.IngredientID,
			&ri.Quantity,
			&ri.Unit,
			&ri.Optional,
			&ri.Note,
			&ri.IngredientName,
		); err != nil {
			return nil, err
		}
		out[ri.RecipeID] = append(out[ri.RecipeID], ri)
	}
	return out, rows.Err()
}

func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	return err
}
