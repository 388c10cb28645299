package recipe

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/domain"
	"github.com/matt-dz/foodgram/internal/principal"
)

type Author struct {
	database.User
	IsSubscribed bool
}

// Detail is a recipe as seen by one caller.
type Detail struct {
	database.Recipe
	ImageURL         string
	Author           Author
	Tags             []database.Tag
	Ingredients      []database.RecipeIngredient
	IsFavorited      bool
	IsInShoppingCart bool
}

// Filter narrows List. Favorited and InShoppingCart are ignored for
// anonymous callers. Tags match any of the given slugs.
type Filter struct {
	AuthorID       int64
	Tags           []string
	Favorited      bool
	InShoppingCart bool
	Limit          int32
	Offset         int32
}

func (f Filter) params(p principal.Principal) database.RecipeFilterParams {
	params := database.RecipeFilterParams{
		AuthorID: pgtype.Int8{Int64: f.AuthorID, Valid: f.AuthorID != 0},
		TagSlugs: f.Tags,
	}
	if p.IsAuthenticated() {
		params.FavoritedBy = pgtype.Int8{Int64: p.UserID, Valid: f.Favorited}
		params.InCartOf = pgtype.Int8{Int64: p.UserID, Valid: f.InShoppingCart}
	}
	return params
}

// ImageURL resolves a stored image key to the URL clients download it from.
func (s *Service) ImageURL(key string) string {
	return s.files.FileURL(key)
}

func (s *Service) Get(ctx context.Context, p principal.Principal, id int64) (Detail, error) {
	r, err := s.db.GetRecipe(ctx, id)
	if database.IsNoRows(err) {
		return Detail{}, domain.NotFound("recipe", id)
	} else if err != nil {
		return Detail{}, fmt.Errorf("getting recipe: %w", err)
	}
	return s.detail(ctx, p, r)
}

// List returns one page of recipes, newest first, and the number of recipes
// matching the filter.
func (s *Service) List(ctx context.Context, p principal.Principal, f Filter) ([]Detail, int64, error) {
	params := f.params(p)

	total, err := s.db.CountRecipes(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("counting recipes: %w", err)
	}

	recipes, err := s.db.ListRecipes(ctx, database.ListRecipesParams{
		RecipeFilterParams: params,
		Limit:              f.Limit,
		Offset:             f.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("listing recipes: %w", err)
	}

	details := make([]Detail, 0, len(recipes))
	for _, r := range recipes {
		d, err := s.detail(ctx, p, r)
		if err != nil {
			return nil, 0, err
		}
		details = append(details, d)
	}
	return details, total, nil
}

func (s *Service) detail(ctx context.Context, p principal.Principal, r database.Recipe) (Detail, error) {
	author, err := s.db.GetUserByID(ctx, r.AuthorID)
	if err != nil {
		return Detail{}, fmt.Errorf("getting author of recipe %d: %w", r.ID, err)
	}
	subscribed, err := s.subscriptions.IsSubscribed(ctx, p, r.AuthorID)
	if err != nil {
		return Detail{}, err
	}

	tags, err := s.db.ListRecipeTags(ctx, r.ID)
	if err != nil {
		return Detail{}, fmt.Errorf("listing tags of recipe %d: %w", r.ID, err)
	}
	ingredients, err := s.db.ListRecipeIngredients(ctx, r.ID)
	if err != nil {
		return Detail{}, fmt.Errorf("listing ingredients of recipe %d: %w", r.ID, err)
	}

	favorited, err := s.favorites.Contains(ctx, p, r.ID)
	if err != nil {
		return Detail{}, err
	}
	inCart, err := s.cart.Contains(ctx, p, r.ID)
	if err != nil {
		return Detail{}, err
	}

	return Detail{
		Recipe:           r,
		ImageURL:         s.files.FileURL(r.ImageKey),
		Author:           Author{User: author, IsSubscribed: subscribed},
		Tags:             tags,
		Ingredients:      ingredients,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
	}, nil
}
