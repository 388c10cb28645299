package recipe

import (
	"context"
	"fmt"

	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/domain"
	"github.com/matt-dz/foodgram/internal/validate"
)

// IngredientAmount is one ingredient line of a recipe.
type IngredientAmount struct {
	ID     int64
	Amount int32
}

func validateIngredients(items []IngredientAmount) error {
	if len(items) == 0 {
		return domain.Invalid("ingredients", "at least one ingredient is required")
	}
	seen := make(map[int64]bool, len(items))
	for _, it := range items {
		if seen[it.ID] {
			return domain.Invalidf("ingredients", "ingredient %d is listed more than once", it.ID)
		}
		seen[it.ID] = true
		if err := validate.Amount(it.Amount); err != nil {
			return err
		}
	}
	return nil
}

func validateTags(tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return domain.Invalid("tags", "at least one tag is required")
	}
	seen := make(map[int64]bool, len(tagIDs))
	for _, id := range tagIDs {
		if seen[id] {
			return domain.Invalidf("tags", "tag %d is listed more than once", id)
		}
		seen[id] = true
	}
	return nil
}

// ReplaceIngredients swaps the full ingredient list of a recipe. It must run
// inside the transaction that holds the recipe's row lock; on error the
// caller rolls back and the previous list survives.
func ReplaceIngredients(ctx context.Context, q database.Querier, recipeID int64, items []IngredientAmount) error {
	if err := validateIngredients(items); err != nil {
		return err
	}

	if err := q.DeleteRecipeIngredients(ctx, recipeID); err != nil {
		return fmt.Errorf("deleting ingredients of recipe %d: %w", recipeID, err)
	}

	params := make([]database.RecipeIngredientParams, len(items))
	for i, it := range items {
		params[i] = database.RecipeIngredientParams{IngredientID: it.ID, Amount: it.Amount}
	}

	_, err := q.InsertRecipeIngredients(ctx, recipeID, params)
	switch {
	case database.IsForeignKeyViolation(err):
		return domain.Invalid("ingredients", "unknown ingredient")
	case database.IsUniqueViolation(err):
		return domain.Invalid("ingredients", "ingredient listed more than once")
	case database.IsCheckViolation(err):
		return domain.Invalidf("amount", "must be between %d and %d", validate.MinAmount, validate.MaxAmount)
	case err != nil:
		return fmt.Errorf("inserting ingredients of recipe %d: %w", recipeID, err)
	}
	return nil
}

// ReplaceTags swaps the full tag set of a recipe under the same rules as
// ReplaceIngredients.
func ReplaceTags(ctx context.Context, q database.Querier, recipeID int64, tagIDs []int64) error {
	if err := validateTags(tagIDs); err != nil {
		return err
	}

	if err := q.DeleteRecipeTags(ctx, recipeID); err != nil {
		return fmt.Errorf("deleting tags of recipe %d: %w", recipeID, err)
	}

	_, err := q.InsertRecipeTags(ctx, recipeID, tagIDs)
	switch {
	case database.IsForeignKeyViolation(err):
		return domain.Invalid("tags", "unknown tag")
	case database.IsUniqueViolation(err):
		return domain.Invalid("tags", "tag listed more than once")
	case err != nil:
		return fmt.Errorf("inserting tags of recipe %d: %w", recipeID, err)
	}
	return nil
}
