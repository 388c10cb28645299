package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const recipeColumns = `r.id, r.author_id, r.name, r.text, r.image_key, r.cooking_time, r.pub_date`

func scanRecipe(row pgx.Row) (Recipe, error) {
	var r Recipe
	err := row.Scan(
		&r.ID,
		&r.AuthorID,
		&r.Name,
		&r.Text,
		&r.ImageKey,
		&r.CookingTime,
		&r.PubDate,
	)
	return r, err
}

func collectRecipes(rows pgx.Rows) ([]Recipe, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Recipe, error) {
		return scanRecipe(row)
	})
}

const createRecipe = `
INSERT INTO recipes AS r (author_id, name, text, image_key, cooking_time)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + recipeColumns

func (q *Queries) CreateRecipe(ctx context.Context, arg CreateRecipeParams) (Recipe, error) {
	row := q.db.QueryRow(ctx, createRecipe,
		arg.AuthorID,
		arg.Name,
		arg.Text,
		arg.ImageKey,
		arg.CookingTime,
	)
	return scanRecipe(row)
}

const getRecipe = `SELECT ` + recipeColumns + ` FROM recipes r WHERE r.id = $1`

func (q *Queries) GetRecipe(ctx context.Context, id int64) (Recipe, error) {
	return scanRecipe(q.db.QueryRow(ctx, getRecipe, id))
}

const lockRecipe = getRecipe + ` FOR UPDATE`

// LockRecipe reads a recipe and holds its row lock until the surrounding
// transaction ends.
func (q *Queries) LockRecipe(ctx context.Context, id int64) (Recipe, error) {
	return scanRecipe(q.db.QueryRow(ctx, lockRecipe, id))
}

const updateRecipe = `
UPDATE recipes AS r
SET name = COALESCE($2::varchar, r.name),
    text = COALESCE($3::text, r.text),
    image_key = COALESCE($4::text, r.image_key),
    cooking_time = COALESCE($5::integer, r.cooking_time)
WHERE r.id = $1
RETURNING ` + recipeColumns

func (q *Queries) UpdateRecipe(ctx context.Context, arg UpdateRecipeParams) (Recipe, error) {
	row := q.db.QueryRow(ctx, updateRecipe,
		arg.ID,
		arg.Name,
		arg.Text,
		arg.ImageKey,
		arg.CookingTime,
	)
	return scanRecipe(row)
}

const deleteRecipe = `DELETE FROM recipes AS r WHERE r.id = $1 RETURNING ` + recipeColumns

func (q *Queries) DeleteRecipe(ctx context.Context, id int64) (Recipe, error) {
	return scanRecipe(q.db.QueryRow(ctx, deleteRecipe, id))
}

const recipeFilter = `
WHERE ($1::bigint IS NULL OR r.author_id = $1)
  AND (COALESCE(cardinality($2::text[]), 0) = 0 OR EXISTS (
        SELECT 1 FROM recipe_tags rt
        JOIN tags t ON t.id = rt.tag_id
        WHERE rt.recipe_id = r.id AND t.slug = ANY($2::text[])))
  AND ($3::bigint IS NULL OR EXISTS (
        SELECT 1 FROM favorites f WHERE f.recipe_id = r.id AND f.user_id = $3))
  AND ($4::bigint IS NULL OR EXISTS (
        SELECT 1 FROM shopping_cart c WHERE c.recipe_id = r.id AND c.user_id = $4))`

const listRecipes = `SELECT ` + recipeColumns + ` FROM recipes r ` + recipeFilter + `
ORDER BY r.pub_date DESC, r.id DESC
LIMIT $5 OFFSET $6`

func (q *Queries) ListRecipes(ctx context.Context, arg ListRecipesParams) ([]Recipe, error) {
	rows, err := q.db.Query(ctx, listRecipes,
		arg.AuthorID,
		arg.TagSlugs,
		arg.FavoritedBy,
		arg.InCartOf,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	return collectRecipes(rows)
}

const countRecipes = `SELECT count(*) FROM recipes r ` + recipeFilter

func (q *Queries) CountRecipes(ctx context.Context, arg RecipeFilterParams) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countRecipes,
		arg.AuthorID,
		arg.TagSlugs,
		arg.FavoritedBy,
		arg.InCartOf,
	).Scan(&count)
	return count, err
}

const listRecipesByAuthor = `
SELECT ` + recipeColumns + `
FROM recipes r
WHERE r.author_id = $1
ORDER BY r.pub_date DESC, r.id DESC
LIMIT $2`

func (q *Queries) ListRecipesByAuthor(ctx context.Context, arg ListRecipesByAuthorParams) ([]Recipe, error) {
	rows, err := q.db.Query(ctx, listRecipesByAuthor, arg.AuthorID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectRecipes(rows)
}

const countRecipesByAuthor = `SELECT count(*) FROM recipes WHERE author_id = $1`

func (q *Queries) CountRecipesByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countRecipesByAuthor, authorID).Scan(&count)
	return count, err
}
