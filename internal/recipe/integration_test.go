//go:build integration

package recipe_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/domain"
	"github.com/matt-dz/foodgram/internal/filestore/filestoretest"
	"github.com/matt-dz/foodgram/internal/ledger"
	"github.com/matt-dz/foodgram/internal/log"
	"github.com/matt-dz/foodgram/internal/principal"
	"github.com/matt-dz/foodgram/internal/recipe"
	"github.com/matt-dz/foodgram/internal/role"
	"github.com/matt-dz/foodgram/internal/shoppinglist"
	"github.com/matt-dz/foodgram/internal/subscription"
	"github.com/matt-dz/foodgram/internal/testinfra"
)

const pixelPNG = "data:image/png;base64," +
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

type fixture struct {
	db          *database.Database
	alice, bob  principal.Principal
	ingredients map[string]int64
	tag         int64
}

func seed(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	db := testinfra.Database(t)

	newUser := func(name string) principal.Principal {
		u, err := db.CreateUser(ctx, database.CreateUserParams{
			Email:        name + "@example.com",
			Username:     name,
			FirstName:    name,
			LastName:     name,
			PasswordHash: "x",
			Role:         database.RoleUser,
		})
		require.NoError(t, err)
		return principal.User(u.ID, role.RoleUser)
	}

	for _, ing := range [][2]string{{"oats", "g"}, {"milk", "ml"}, {"salt", "g"}} {
		_, err := db.CreateIngredientIgnoreConflict(ctx, database.CreateIngredientParams{Name: ing[0], MeasurementUnit: ing[1]})
		require.NoError(t, err)
	}
	all, err := db.ListIngredients(ctx, "")
	require.NoError(t, err)
	ids := make(map[string]int64, len(all))
	for _, ing := range all {
		ids[ing.Name] = ing.ID
	}

	tag, err := db.CreateTag(ctx, database.CreateTagParams{Name: "Breakfast", Color: "#ffa500", Slug: "breakfast"})
	require.NoError(t, err)

	return fixture{db: db, alice: newUser("alice"), bob: newUser("bob"), ingredients: ids, tag: tag.ID}
}

func (f fixture) create(t *testing.T, svc *recipe.Service, name string, items ...recipe.IngredientAmount) recipe.Detail {
	t.Helper()
	d, err := svc.Create(context.Background(), f.alice, recipe.CreateInput{
		Name:        name,
		Text:        "Cook it.",
		CookingTime: 10,
		Image:       pixelPNG,
		Ingredients: items,
		Tags:        []int64{f.tag},
	})
	require.NoError(t, err)
	return d
}

func TestIntegration_CompositionIsAtomic(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	svc := recipe.NewService(f.db, filestoretest.NewMemory(), log.NullLogger())

	created := f.create(t, svc, "Porridge",
		recipe.IngredientAmount{ID: f.ingredients["oats"], Amount: 50},
		recipe.IngredientAmount{ID: f.ingredients["milk"], Amount: 200})
	require.Len(t, created.Ingredients, 2)

	broken := []recipe.IngredientAmount{{ID: f.ingredients["salt"], Amount: 1}, {ID: 999999, Amount: 1}}
	newName := "Salty porridge"
	_, err := svc.Update(ctx, f.alice, created.ID, recipe.UpdateInput{Name: &newName, Ingredients: &broken})
	require.ErrorIs(t, err, domain.ErrValidationFailed)

	after, err := svc.Get(ctx, f.alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Porridge", after.Name)
	assert.Equal(t, created.Ingredients, after.Ingredients)

	_, err = svc.Update(ctx, f.bob, created.ID, recipe.UpdateInput{Name: &newName})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestIntegration_LedgersAndShoppingList(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	svc := recipe.NewService(f.db, filestoretest.NewMemory(), log.NullLogger())

	porridge := f.create(t, svc, "Porridge",
		recipe.IngredientAmount{ID: f.ingredients["oats"], Amount: 50},
		recipe.IngredientAmount{ID: f.ingredients["milk"], Amount: 200})
	cookies := f.create(t, svc, "Cookies",
		recipe.IngredientAmount{ID: f.ingredients["oats"], Amount: 100})

	favorites := ledger.NewFavorites(f.db)
	_, err := favorites.Add(ctx, f.bob, porridge.ID)
	require.NoError(t, err)
	_, err = favorites.Add(ctx, f.bob, porridge.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	require.NoError(t, favorites.Remove(ctx, f.bob, porridge.ID))
	assert.ErrorIs(t, favorites.Remove(ctx, f.bob, porridge.ID), domain.ErrNotFound)

	cart := ledger.NewShoppingCart(f.db)
	for _, id := range []int64{porridge.ID, cookies.ID} {
		_, err := cart.Add(ctx, f.bob, id)
		require.NoError(t, err)
	}

	report, err := shoppinglist.NewService(f.db).Build(ctx, f.bob)
	require.NoError(t, err)
	lines := make(map[string]int64, len(report.Lines))
	for _, l := range report.Lines {
		lines[l.Name] = l.Amount
	}
	assert.Equal(t, map[string]int64{"oats": 150, "milk": 200}, lines)

	require.NoError(t, svc.Delete(ctx, f.alice, cookies.ID))
	inCart, err := cart.Contains(ctx, f.bob, cookies.ID)
	require.NoError(t, err)
	assert.False(t, inCart)
}

func TestIntegration_Subscriptions(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	subs := subscription.NewService(f.db)

	_, err := subs.Follow(ctx, f.bob, f.bob.UserID, 0)
	assert.ErrorIs(t, err, domain.ErrSelfSubscription)

	author, err := subs.Follow(ctx, f.bob, f.alice.UserID, 0)
	require.NoError(t, err)
	assert.True(t, author.IsSubscribed)

	_, err = subs.Follow(ctx, f.bob, f.alice.UserID, 0)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	following, total, err := subs.ListFollowing(ctx, f.bob, 10, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, following, 1)
	assert.Equal(t, f.alice.UserID, following[0].User.ID)

	require.NoError(t, subs.Unfollow(ctx, f.bob, f.alice.UserID))
	assert.ErrorIs(t, subs.Unfollow(ctx, f.bob, f.alice.UserID), domain.ErrNotFound)

	following, total, err = subs.ListFollowing(ctx, f.bob, 10, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, following)

	subscribed, err := subs.IsSubscribed(ctx, f.bob, f.alice.UserID)
	require.NoError(t, err)
	assert.False(t, subscribed)
}

func sameItems(a, b []recipe.IngredientAmount) bool {
	if len(a) != len(b) {
		return false
	}
	amounts := make(map[int64]int32, len(a))
	for _, it := range a {
		amounts[it.ID] = it.Amount
	}
	for _, it := range b {
		if amount, ok := amounts[it.ID]; !ok || amount != it.Amount {
			return false
		}
	}
	return true
}

// runConcurrently starts n calls of fn at once and returns their errors in
// call order.
func runConcurrently(n int, fn func(i int) error) []error {
	errs := make([]error, n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs[i] = fn(i)
		}()
	}
	close(start)
	wg.Wait()
	return errs
}

func TestIntegration_ConcurrentLedgerAdd(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	svc := recipe.NewService(f.db, filestoretest.NewMemory(), log.NullLogger())
	porridge := f.create(t, svc, "Porridge", recipe.IngredientAmount{ID: f.ingredients["oats"], Amount: 50})

	for _, l := range []*ledger.Ledger{ledger.NewFavorites(f.db), ledger.NewShoppingCart(f.db)} {
		t.Run(string(l.Kind()), func(t *testing.T) {
			const callers = 8
			errs := runConcurrently(callers, func(int) error {
				_, err := l.Add(ctx, f.bob, porridge.ID)
				return err
			})

			var succeeded, duplicates int
			for _, err := range errs {
				switch {
				case err == nil:
					succeeded++
				case errors.Is(err, domain.ErrAlreadyExists):
					duplicates++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}
			assert.Equal(t, 1, succeeded)
			assert.Equal(t, callers-1, duplicates)

			require.NoError(t, l.Remove(ctx, f.bob, porridge.ID))
			assert.ErrorIs(t, l.Remove(ctx, f.bob, porridge.ID), domain.ErrNotFound, "more than one row was stored")
		})
	}
}

func TestIntegration_ConcurrentIngredientReplace(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	svc := recipe.NewService(f.db, filestoretest.NewMemory(), log.NullLogger())
	created := f.create(t, svc, "Porridge", recipe.IngredientAmount{ID: f.ingredients["salt"], Amount: 1})

	lists := [][]recipe.IngredientAmount{
		{{ID: f.ingredients["oats"], Amount: 50}, {ID: f.ingredients["milk"], Amount: 200}},
		{{ID: f.ingredients["oats"], Amount: 80}, {ID: f.ingredients["salt"], Amount: 2}},
	}

	for round := range 5 {
		errs := runConcurrently(len(lists), func(i int) error {
			items := lists[i]
			_, err := svc.Update(ctx, f.alice, created.ID, recipe.UpdateInput{Ingredients: &items})
			return err
		})
		var succeeded int
		for _, err := range errs {
			if err == nil {
				succeeded++
			}
		}
		require.Positive(t, succeeded, "round %d: %v", round, errs)

		after, err := svc.Get(ctx, f.alice, created.ID)
		require.NoError(t, err)
		got := make([]recipe.IngredientAmount, 0, len(after.Ingredients))
		for _, ing := range after.Ingredients {
			got = append(got, recipe.IngredientAmount{ID: ing.IngredientID, Amount: ing.Amount})
		}

		matches := false
		for _, want := range lists {
			if sameItems(want, got) {
				matches = true
			}
		}
		assert.True(t, matches, "round %d: ingredients %v are not exactly one of the submitted lists", round, got)
	}
}
