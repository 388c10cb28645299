package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

func scanIngredient(row pgx.Row) (Ingredient, error) {
	var i Ingredient
	err := row.Scan(&i.ID, &i.Name, &i.MeasurementUnit)
	return i, err
}

const createIngredientIgnoreConflict = `
INSERT INTO ingredients (name, measurement_unit) VALUES ($1, $2)
ON CONFLICT ON CONSTRAINT unique_name_measurement_unit DO NOTHING`

// CreateIngredientIgnoreConflict reports whether a row was inserted.
func (q *Queries) CreateIngredientIgnoreConflict(ctx context.Context, arg CreateIngredientParams) (bool, error) {
	tag, err := q.db.Exec(ctx, createIngredientIgnoreConflict, arg.Name, arg.MeasurementUnit)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const getIngredient = `SELECT id, name, measurement_unit FROM ingredients WHERE id = $1`

func (q *Queries) GetIngredient(ctx context.Context, id int64) (Ingredient, error) {
	return scanIngredient(q.db.QueryRow(ctx, getIngredient, id))
}

// The prefix is matched literally; LIKE metacharacters are escaped.
const listIngredients = `
SELECT id, name, measurement_unit
FROM ingredients
WHERE lower(name) LIKE replace(replace(replace(lower($1), '\', '\\'), '%', '\%'), '_', '\_') || '%'
ORDER BY name, measurement_unit`

func (q *Queries) ListIngredients(ctx context.Context, namePrefix string) ([]Ingredient, error) {
	rows, err := q.db.Query(ctx, listIngredients, namePrefix)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Ingredient, error) {
		return scanIngredient(row)
	})
}

const listRecipeIngredients = `
SELECT i.id, i.name, i.measurement_unit, ri.amount
FROM recipe_ingredients ri
JOIN ingredients i ON i.id = ri.ingredient_id
WHERE ri.recipe_id = $1
ORDER BY ri.id`

func (q *Queries) ListRecipeIngredients(ctx context.Context, recipeID int64) ([]RecipeIngredient, error) {
	rows, err := q.db.Query(ctx, listRecipeIngredients, recipeID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (RecipeIngredient, error) {
		var ri RecipeIngredient
		err := row.Scan(&ri.IngredientID, &ri.Name, &ri.MeasurementUnit, &ri.Amount)
		return ri, err
	})
}

const deleteRecipeIngredients = `DELETE FROM recipe_ingredients WHERE recipe_id = $1`

func (q *Queries) DeleteRecipeIngredients(ctx context.Context, recipeID int64) error {
	_, err := q.db.Exec(ctx, deleteRecipeIngredients, recipeID)
	return err
}

func (q *Queries) InsertRecipeIngredients(
	ctx context.Context, recipeID int64, items []RecipeIngredientParams,
) (int64, error) {
	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, []any{recipeID, item.IngredientID, item.Amount})
	}
	return q.db.CopyFrom(ctx,
		pgx.Identifier{"recipe_ingredients"},
		[]string{"recipe_id", "ingredient_id", "amount"},
		pgx.CopyFromRows(rows),
	)
}
