// Package shoppinglist builds the downloadable shopping list for a user's cart.
package shoppinglist

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/domain"
	"github.com/matt-dz/foodgram/internal/metrics"
	"github.com/matt-dz/foodgram/internal/principal"
)

const Filename = "shopping_cart.txt"

// Line is one ingredient summed over every cart recipe that uses it.
type Line struct {
	IngredientID int64
	Name         string
	Unit         string
	Amount       int64
}

func (l Line) String() string {
	return fmt.Sprintf("%s: %d %s", l.Name, l.Amount, l.Unit)
}

type RecipeBlock struct {
	ID          int64
	Name        string
	CookingTime int32
	Text        string
}

type Report struct {
	Lines   []Line
	Recipes []RecipeBlock
}

func (r Report) Empty() bool {
	return len(r.Recipes) == 0
}

// Aggregate folds cart rows into a report. Lines and recipes keep the order
// in which they first appear in rows.
func Aggregate(rows []database.CartIngredientRow) Report {
	var report Report
	lineIdx := make(map[int64]int)
	seenRecipe := make(map[int64]bool)

	for _, row := range rows {
		if !seenRecipe[row.RecipeID] {
			seenRecipe[row.RecipeID] = true
			report.Recipes = append(report.Recipes, RecipeBlock{
				ID:          row.RecipeID,
				Name:        row.RecipeName,
				CookingTime: row.CookingTime,
				Text:        row.RecipeText,
			})
		}

		if !row.IngredientID.Valid {
			continue
		}
		id := row.IngredientID.Int64
		if i, ok := lineIdx[id]; ok {
			report.Lines[i].Amount += int64(row.Amount.Int32)
			continue
		}
		lineIdx[id] = len(report.Lines)
		report.Lines = append(report.Lines, Line{
			IngredientID: id,
			Name:         row.IngredientName.String,
			Unit:         row.MeasurementUnit.String,
			Amount:       int64(row.Amount.Int32),
		})
	}

	return report
}

// WriteTo renders the report as plain text.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	if r.Empty() {
		_, _ = fmt.Fprintln(bw, "Shopping cart is empty.")
		err := bw.Flush()
		return cw.n, err
	}

	_, _ = fmt.Fprintln(bw, "Shopping list:")
	for _, line := range r.Lines {
		_, _ = fmt.Fprintf(bw, " - %s\n", line)
	}

	_, _ = fmt.Fprintln(bw)
	_, _ = fmt.Fprintln(bw, "Recipes:")
	for _, recipe := range r.Recipes {
		_, _ = fmt.Fprintln(bw)
		_, _ = fmt.Fprintf(bw, "Recipe: %s\n", recipe.Name)
		_, _ = fmt.Fprintf(bw, "Cooking Time: %d minutes\n", recipe.CookingTime)
		_, _ = fmt.Fprintf(bw, "Description: %s\n", recipe.Text)
	}

	err := bw.Flush()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type Service struct {
	q database.Querier
}

func NewService(q database.Querier) *Service {
	return &Service{q: q}
}

// Build reads the caller's cart and aggregates it.
func (s *Service) Build(ctx context.Context, p principal.Principal) (Report, error) {
	if !p.IsAuthenticated() {
		return Report{}, domain.ErrUnauthenticated
	}

	rows, err := s.q.ListCartIngredients(ctx, p.UserID)
	if err != nil {
		return Report{}, fmt.Errorf("listing cart ingredients: %w", err)
	}

	report := Aggregate(rows)
	metrics.ShoppingListLines.Observe(float64(len(report.Lines)))
	return report, nil
}
