package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

func scanTag(row pgx.Row) (Tag, error) {
	var t Tag
	err := row.Scan(&t.ID, &t.Name, &t.Color, &t.Slug)
	return t, err
}

func collectTags(rows pgx.Rows) ([]Tag, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Tag, error) {
		return scanTag(row)
	})
}

const createTag = `
INSERT INTO tags (name, color, slug) VALUES ($1, $2, $3)
RETURNING id, name, color, slug`

func (q *Queries) CreateTag(ctx context.Context, arg CreateTagParams) (Tag, error) {
	return scanTag(q.db.QueryRow(ctx, createTag, arg.Name, arg.Color, arg.Slug))
}

const createTagIgnoreConflict = `
INSERT INTO tags (name, color, slug) VALUES ($1, $2, $3)
ON CONFLICT DO NOTHING`

// CreateTagIgnoreConflict reports whether a row was inserted.
func (q *Queries) CreateTagIgnoreConflict(ctx context.Context, arg CreateTagParams) (bool, error) {
	tag, err := q.db.Exec(ctx, createTagIgnoreConflict, arg.Name, arg.Color, arg.Slug)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const getTag = `SELECT id, name, color, slug FROM tags WHERE id = $1`

func (q *Queries) GetTag(ctx context.Context, id int64) (Tag, error) {
	return scanTag(q.db.QueryRow(ctx, getTag, id))
}

const listTags = `SELECT id, name, color, slug FROM tags ORDER BY name`

func (q *Queries) ListTags(ctx context.Context) ([]Tag, error) {
	rows, err := q.db.Query(ctx, listTags)
	if err != nil {
		return nil, err
	}
	return collectTags(rows)
}

const listRecipeTags = `
SELECT t.id, t.name, t.color, t.slug
FROM recipe_tags rt
JOIN tags t ON t.id = rt.tag_id
WHERE rt.recipe_id = $1
ORDER BY rt.id`

func (q *Queries) ListRecipeTags(ctx context.Context, recipeID int64) ([]Tag, error) {
	rows, err := q.db.Query(ctx, listRecipeTags, recipeID)
	if err != nil {
		return nil, err
	}
	return collectTags(rows)
}

const deleteRecipeTags = `DELETE FROM recipe_tags WHERE recipe_id = $1`

func (q *Queries) DeleteRecipeTags(ctx context.Context, recipeID int64) error {
	_, err := q.db.Exec(ctx, deleteRecipeTags, recipeID)
	return err
}

func (q *Queries) InsertRecipeTags(ctx context.Context, recipeID int64, tagIDs []int64) (int64, error) {
	rows := make([][]any, 0, len(tagIDs))
	for _, id := range tagIDs {
		rows = append(rows, []any{recipeID, id})
	}
	return q.db.CopyFrom(ctx,
		pgx.Identifier{"recipe_tags"},
		[]string{"recipe_id", "tag_id"},
		pgx.CopyFromRows(rows),
	)
}
