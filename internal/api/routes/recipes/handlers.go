// Package recipes contains handlers for recipes and the per-user favorite
// and shopping cart ledgers.
package recipes

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/matt-dz/foodgram/internal/api/pagination"
	"github.com/matt-dz/foodgram/internal/api/respond"
	"github.com/matt-dz/foodgram/internal/api/schema"
	"github.com/matt-dz/foodgram/internal/env"
	"github.com/matt-dz/foodgram/internal/ledger"
	"github.com/matt-dz/foodgram/internal/principal"
	"github.com/matt-dz/foodgram/internal/shoppinglist"
)

// HandleListRecipes godoc
//
//	@Summary		List recipes.
//	@Description	Newest first. The favorite and cart filters are ignored for anonymous callers.
//	@Tags			Recipe
//
//	@Produce		json
//	@Param			page				query		int		false	"Page number"
//	@Param			limit				query		int		false	"Page size"
//	@Param			author				query		int		false	"Author ID"
//	@Param			tags				query		[]string	false	"Tag slugs"	collectionFormat(multi)
//	@Param			is_favorited		query		int		false	"Only favorites (1)"
//	@Param			is_in_shopping_cart	query		int		false	"Only recipes in the cart (1)"
//	@Success		200					{object}	pagination.Response[schema.Recipe]
//	@Failure		400					{object}	apiError.Error	"Invalid filter"
//	@Router			/api/recipes/ [GET]
func HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	page, err := pagination.FromRequest(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	filter, err := filterFromRequest(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	filter.Limit = page.Limit
	filter.Offset = page.Offset()

	env.Logger.DebugContext(ctx, "Listing recipes")
	details, count, err := env.Recipes.List(ctx, principal.FromCtx(ctx), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, pagination.NewResponse(r, page, count, schema.NewRecipes(details)))
}

// HandleGetRecipe godoc
//
//	@Summary	Get a recipe.
//	@Tags		Recipe
//
//	@Produce	json
//	@Param		id	path		int	true	"Recipe ID"
//	@Success	200	{object}	schema.Recipe
//	@Failure	404	{object}	apiError.Error	"Not found"
//	@Router		/api/recipes/{id}/ [GET]
func HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	id, ok := respond.PathID(w, r, "id", "recipe")
	if !ok {
		return
	}

	env.Logger.DebugContext(ctx, "Retrieving recipe", slog.Int64("id", id))
	detail, err := env.Recipes.Get(ctx, principal.FromCtx(ctx), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, schema.NewRecipe(detail))
}

// HandleCreateRecipe godoc
//
//	@Summary	Create a recipe.
//	@Tags		Recipe
//
//	@Accept		json
//	@Produce	json
//	@Security	TokenAuth
//	@Param		request	body		CreateRecipeRequest	true	"Create Recipe Request"
//	@Success	201		{object}	schema.Recipe
//	@Failure	400		{object}	apiError.Error	"Validation failed"
//	@Failure	401		{object}	apiError.Error	"Not authenticated"
//	@Router		/api/recipes/ [POST]
func HandleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	var request CreateRecipeRequest
	if !respond.Decode(w, r, &request) {
		return
	}

	env.Logger.DebugContext(ctx, "Creating recipe")
	detail, err := env.Recipes.Create(ctx, principal.FromCtx(ctx), request.input())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, schema.NewRecipe(detail))
}

// HandleUpdateRecipe godoc
//
//	@Summary		Update a recipe.
//	@Description	Partial update. A provided ingredients or tags list replaces the stored one.
//	@Tags			Recipe
//
//	@Accept			json
//	@Produce		json
//	@Security		TokenAuth
//	@Param			id		path		int					true	"Recipe ID"
//	@Param			request	body		UpdateRecipeRequest	true	"Update Recipe Request"
//	@Success		200		{object}	schema.Recipe
//	@Failure		400		{object}	apiError.Error	"Validation failed"
//	@Failure		403		{object}	apiError.Error	"Not the author"
//	@Failure		404		{object}	apiError.Error	"Not found"
//	@Router			/api/recipes/{id}/ [PATCH]
func HandleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	id, ok := respond.PathID(w, r, "id", "recipe")
	if !ok {
		return
	}

	var request UpdateRecipeRequest
	if !respond.Decode(w, r, &request) {
		return
	}
	input, err := request.input()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	env.Logger.DebugContext(ctx, "Updating recipe", slog.Int64("id", id))
	detail, err := env.Recipes.Update(ctx, principal.FromCtx(ctx), id, input)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, schema.NewRecipe(detail))
}

// HandleDeleteRecipe godoc
//
//	@Summary	Delete a recipe.
//	@Tags		Recipe
//
//	@Security	TokenAuth
//	@Param		id	path	int	true	"Recipe ID"
//	@Success	204
//	@Failure	403	{object}	apiError.Error	"Not the author"
//	@Failure	404	{object}	apiError.Error	"Not found"
//	@Router		/api/recipes/{id}/ [DELETE]
func HandleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	id, ok := respond.PathID(w, r, "id", "recipe")
	if !ok {
		return
	}

	env.Logger.DebugContext(ctx, "Deleting recipe", slog.Int64("id", id))
	if err := env.Recipes.Delete(ctx, principal.FromCtx(ctx), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func addToLedger(w http.ResponseWriter, r *http.Request, l *ledger.Ledger) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	id, ok := respond.PathID(w, r, "id", "recipe")
	if !ok {
		return
	}

	env.Logger.DebugContext(ctx, "Adding recipe", slog.String("ledger", string(l.Kind())), slog.Int64("id", id))
	added, err := l.Add(ctx, principal.FromCtx(ctx), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, schema.NewRecipeMinified(added, env.Recipes.ImageURL))
}

func removeFromLedger(w http.ResponseWriter, r *http.Request, l *ledger.Ledger) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	id, ok := respond.PathID(w, r, "id", "recipe")
	if !ok {
		return
	}

	env.Logger.DebugContext(ctx, "Removing recipe", slog.String("ledger", string(l.Kind())), slog.Int64("id", id))
	if err := l.Remove(ctx, principal.FromCtx(ctx), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleAddFavorite godoc
//
//	@Summary	Add a recipe to favorites.
//	@Tags		Favorite
//
//	@Produce	json
//	@Security	TokenAuth
//	@Param		id	path		int	true	"Recipe ID"
//	@Success	201	{object}	schema.RecipeMinified
//	@Failure	400	{object}	apiError.Error	"Already in favorites"
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Router		/api/recipes/{id}/favorite/ [POST]
func HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	addToLedger(w, r, env.EnvFromCtx(r.Context()).Favorites)
}

// HandleRemoveFavorite godoc
//
//	@Summary	Remove a recipe from favorites.
//	@Tags		Favorite
//
//	@Security	TokenAuth
//	@Param		id	path	int	true	"Recipe ID"
//	@Success	204
//	@Failure	404	{object}	apiError.Error	"Recipe not found or not a favorite"
//	@Router		/api/recipes/{id}/favorite/ [DELETE]
func HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	removeFromLedger(w, r, env.EnvFromCtx(r.Context()).Favorites)
}

// HandleAddToCart godoc
//
//	@Summary	Add a recipe to the shopping cart.
//	@Tags		ShoppingCart
//
//	@Produce	json
//	@Security	TokenAuth
//	@Param		id	path		int	true	"Recipe ID"
//	@Success	201	{object}	schema.RecipeMinified
//	@Failure	400	{object}	apiError.Error	"Already in the cart"
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Router		/api/recipes/{id}/shopping_cart/ [POST]
func HandleAddToCart(w http.ResponseWriter, r *http.Request) {
	addToLedger(w, r, env.EnvFromCtx(r.Context()).ShoppingCart)
}

// HandleRemoveFromCart godoc
//
//	@Summary	Remove a recipe from the shopping cart.
//	@Tags		ShoppingCart
//
//	@Security	TokenAuth
//	@Param		id	path	int	true	"Recipe ID"
//	@Success	204
//	@Failure	404	{object}	apiError.Error	"Recipe not found or not in the cart"
//	@Router		/api/recipes/{id}/shopping_cart/ [DELETE]
func HandleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	removeFromLedger(w, r, env.EnvFromCtx(r.Context()).ShoppingCart)
}

// HandleDownloadShoppingCart godoc
//
//	@Summary		Download the shopping list.
//	@Description	Ingredients of every recipe in the cart, summed by name and unit.
//	@Tags			ShoppingCart
//
//	@Produce		plain
//	@Security		TokenAuth
//	@Success		200	{string}	string
//	@Failure		401	{object}	apiError.Error	"Not authenticated"
//	@Router			/api/recipes/download_shopping_cart/ [GET]
func HandleDownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	env.Logger.DebugContext(ctx, "Building shopping list")
	report, err := env.ShoppingList.Build(ctx, principal.FromCtx(ctx))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", shoppinglist.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := report.WriteTo(w); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to write shopping list", slog.Any("error", err))
	}
}
