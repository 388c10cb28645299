// Package ingredients contains read-only handlers for the ingredient catalog.
package ingredients

import (
	"log/slog"
	"net/http"

	"github.com/matt-dz/foodgram/internal/api/respond"
	"github.com/matt-dz/foodgram/internal/api/schema"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/domain"
	"github.com/matt-dz/foodgram/internal/env"
)

// HandleListIngredients godoc
//
//	@Summary		List ingredients.
//	@Description	Filters by a case-insensitive name prefix.
//	@Tags			Ingredient
//
//	@Produce		json
//	@Param			name	query	string	false	"Name prefix"
//	@Success		200		{array}	schema.Ingredient
//	@Router			/api/ingredients/ [GET]
func HandleListIngredients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	prefix := r.URL.Query().Get("name")

	env.Logger.DebugContext(ctx, "Listing ingredients", slog.String("prefix", prefix))
	ingredients, err := env.Database.ListIngredients(ctx, prefix)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	results := make([]schema.Ingredient, len(ingredients))
	for i, ing := range ingredients {
		results[i] = schema.NewIngredient(ing)
	}
	respond.JSON(w, r, http.StatusOK, results)
}

// HandleGetIngredient godoc
//
//	@Summary	Get an ingredient.
//	@Tags		Ingredient
//
//	@Produce	json
//	@Param		id	path		int	true	"Ingredient ID"
//	@Success	200	{object}	schema.Ingredient
//	@Failure	404	{object}	apiError.Error	"Not found"
//	@Router		/api/ingredients/{id}/ [GET]
func HandleGetIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	id, ok := respond.PathID(w, r, "id", "ingredient")
	if !ok {
		return
	}

	ingredient, err := env.Database.GetIngredient(ctx, id)
	if database.IsNoRows(err) {
		respond.Error(w, r, domain.NotFound("ingredient", id))
		return
	} else if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, schema.NewIngredient(ingredient))
}
