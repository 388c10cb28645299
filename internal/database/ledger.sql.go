package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

func ledgerTable(ledger Ledger) (string, error) {
	if !ledger.Valid() {
		return "", fmt.Errorf("unknown ledger %q", ledger)
	}
	return pgx.Identifier{string(ledger)}.Sanitize(), nil
}

// InsertLedgerEntry fails with a unique violation when the pair is present.
func (q *Queries) InsertLedgerEntry(ctx context.Context, ledger Ledger, arg LedgerEntryParams) error {
	table, err := ledgerTable(ledger)
	if err != nil {
		return err
	}
	_, err = q.db.Exec(ctx,
		`INSERT INTO `+table+` (user_id, recipe_id) VALUES ($1, $2)`,
		arg.UserID, arg.RecipeID)
	return err
}

func (q *Queries) DeleteLedgerEntry(ctx context.Context, ledger Ledger, arg LedgerEntryParams) (int64, error) {
	table, err := ledgerTable(ledger)
	if err != nil {
		return 0, err
	}
	tag, err := q.db.Exec(ctx,
		`DELETE FROM `+table+` WHERE user_id = $1 AND recipe_id = $2`,
		arg.UserID, arg.RecipeID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (q *Queries) LedgerEntryExists(ctx context.Context, ledger Ledger, arg LedgerEntryParams) (bool, error) {
	table, err := ledgerTable(ledger)
	if err != nil {
		return false, err
	}
	var exists bool
	err = q.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE user_id = $1 AND recipe_id = $2)`,
		arg.UserID, arg.RecipeID).Scan(&exists)
	return exists, err
}

const listCartIngredients = `
SELECT r.id, r.name, r.cooking_time, r.text, i.id, i.name, i.measurement_unit, ri.amount
FROM shopping_cart c
JOIN recipes r ON r.id = c.recipe_id
LEFT JOIN recipe_ingredients ri ON ri.recipe_id = r.id
LEFT JOIN ingredients i ON i.id = ri.ingredient_id
WHERE c.user_id = $1
ORDER BY c.created_at, c.id, ri.id`

// ListCartIngredients returns the cart in insertion order, each recipe's
// ingredients in the order they were attached.
func (q *Queries) ListCartIngredients(ctx context.Context, userID int64) ([]CartIngredientRow, error) {
	rows, err := q.db.Query(ctx, listCartIngredients, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (CartIngredientRow, error) {
		var c CartIngredientRow
		err := row.Scan(
			&c.RecipeID,
			&c.RecipeName,
			&c.CookingTime,
			&c.RecipeText,
			&c.IngredientID,
			&c.IngredientName,
			&c.MeasurementUnit,
			&c.Amount,
		)
		return c, err
	})
}
