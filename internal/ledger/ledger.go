// Package ledger manages the favorite and shopping cart memberships of
// (user, recipe) pairs.
package ledger

import (
	"context"
	"fmt"

	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/domain"
	"github.com/matt-dz/foodgram/internal/metrics"
	"github.com/matt-dz/foodgram/internal/principal"
)

// Ledger is a set of (user, recipe) pairs. The unique constraint on the
// backing table decides concurrent adds of the same pair.
type Ledger struct {
	kind database.Ledger
	q    database.Querier
}

func New(kind database.Ledger, q database.Querier) *Ledger {
	return &Ledger{kind: kind, q: q}
}

func NewFavorites(q database.Querier) *Ledger {
	return New(database.LedgerFavorites, q)
}

func NewShoppingCart(q database.Querier) *Ledger {
	return New(database.LedgerShoppingCart, q)
}

func (l *Ledger) Kind() database.Ledger {
	return l.kind
}

// Add records the pair and returns the recipe it refers to.
func (l *Ledger) Add(ctx context.Context, p principal.Principal, recipeID int64) (database.Recipe, error) {
	recipe, err := l.add(ctx, p, recipeID)
	l.observe("add", err)
	return recipe, err
}

func (l *Ledger) add(ctx context.Context, p principal.Principal, recipeID int64) (database.Recipe, error) {
	if !p.IsAuthenticated() {
		return database.Recipe{}, domain.ErrUnauthenticated
	}

	recipe, err := l.q.GetRecipe(ctx, recipeID)
	if database.IsNoRows(err) {
		return database.Recipe{}, domain.NotFound("recipe", recipeID)
	} else if err != nil {
		return database.Recipe{}, fmt.Errorf("getting recipe: %w", err)
	}

	err = l.q.InsertLedgerEntry(ctx, l.kind, database.LedgerEntryParams{
		UserID:   p.UserID,
		RecipeID: recipeID,
	})
	switch {
	case database.IsUniqueViolation(err):
		return database.Recipe{}, fmt.Errorf("recipe %d in %s: %w", recipeID, l.kind, domain.ErrAlreadyExists)
	case database.IsForeignKeyViolation(err):
		// The recipe was deleted after it was read.
		return database.Recipe{}, domain.NotFound("recipe", recipeID)
	case err != nil:
		return database.Recipe{}, fmt.Errorf("inserting into %s: %w", l.kind, err)
	}

	return recipe, nil
}

// Remove deletes the pair. It fails with domain.ErrNotFound when the recipe
// or the pair does not exist.
func (l *Ledger) Remove(ctx context.Context, p principal.Principal, recipeID int64) error {
	err := l.remove(ctx, p, recipeID)
	l.observe("remove", err)
	return err
}

func (l *Ledger) remove(ctx context.Context, p principal.Principal, recipeID int64) error {
	if !p.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}

	if _, err := l.q.GetRecipe(ctx, recipeID); database.IsNoRows(err) {
		return domain.NotFound("recipe", recipeID)
	} else if err != nil {
		return fmt.Errorf("getting recipe: %w", err)
	}

	n, err := l.q.DeleteLedgerEntry(ctx, l.kind, database.LedgerEntryParams{
		UserID:   p.UserID,
		RecipeID: recipeID,
	})
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", l.kind, err)
	}
	if n == 0 {
		return fmt.Errorf("recipe %d in %s: %w", recipeID, l.kind, domain.ErrNotFound)
	}
	return nil
}

// Contains is false for anonymous callers.
func (l *Ledger) Contains(ctx context.Context, p principal.Principal, recipeID int64) (bool, error) {
	if !p.IsAuthenticated() {
		return false, nil
	}
	ok, err := l.q.LedgerEntryExists(ctx, l.kind, database.LedgerEntryParams{
		UserID:   p.UserID,
		RecipeID: recipeID,
	})
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", l.kind, err)
	}
	return ok, nil
}

func (l *Ledger) observe(op string, err error) {
	metrics.LedgerOperations.WithLabelValues(string(l.kind), op, metrics.Outcome(err)).Inc()
}
