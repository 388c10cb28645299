package recipes

import (
	"net/http"
	"strconv"

	"github.com/matt-dz/foodgram/internal/domain"
	mJson "github.com/matt-dz/foodgram/internal/json"
	"github.com/matt-dz/foodgram/internal/recipe"
)

type IngredientAmountRequest struct {
	ID     int64 `json:"id"`
	Amount int32 `json:"amount"`
}

func ingredientAmounts(items []IngredientAmountRequest) []recipe.IngredientAmount {
	out := make([]recipe.IngredientAmount, len(items))
	for i, it := range items {
		out[i] = recipe.IngredientAmount{ID: it.ID, Amount: it.Amount}
	}
	return out
}

// CreateRecipeRequest carries the image as a base64 data URI.
type CreateRecipeRequest struct {
	Ingredients []IngredientAmountRequest `json:"ingredients"`
	Tags        []int64                   `json:"tags"`
	Image       string                    `json:"image"`
	Name        string                    `json:"name"`
	Text        string                    `json:"text"`
	CookingTime int32                     `json:"cooking_time"`
}

func (c CreateRecipeRequest) input() recipe.CreateInput {
	return recipe.CreateInput{
		Name:        c.Name,
		Text:        c.Text,
		CookingTime: c.CookingTime,
		Image:       c.Image,
		Ingredients: ingredientAmounts(c.Ingredients),
		Tags:        c.Tags,
	}
}

// UpdateRecipeRequest is a partial update. Omitted fields keep their value;
// an explicit null is rejected.
type UpdateRecipeRequest struct {
	Ingredients *[]IngredientAmountRequest `json:"ingredients"`
	Tags        *[]int64                   `json:"tags"`
	Image       *string                    `json:"image"`
	Name        *string                    `json:"name"`
	Text        *string                    `json:"text"`
	CookingTime *int32                     `json:"cooking_time"`

	nullField string
}

func (u *UpdateRecipeRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateRecipeRequest
	if err := mJson.Unmarshal(data, (*plain)(u)); err != nil {
		return err
	}

	var fields map[string]any
	if err := mJson.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, name := range []string{"ingredients", "tags", "image", "name", "text", "cooking_time"} {
		if v, ok := fields[name]; ok && v == nil {
			u.nullField = name
			break
		}
	}
	return nil
}

func (u UpdateRecipeRequest) input() (recipe.UpdateInput, error) {
	if u.nullField != "" {
		return recipe.UpdateInput{}, domain.Invalid(u.nullField, "must not be null")
	}
	in := recipe.UpdateInput{
		Name:        u.Name,
		Text:        u.Text,
		CookingTime: u.CookingTime,
		Image:       u.Image,
		Tags:        u.Tags,
	}
	if u.Ingredients != nil {
		items := ingredientAmounts(*u.Ingredients)
		in.Ingredients = &items
	}
	return in, nil
}

// filterFromRequest reads the list filters. Boolean filters accept 1/0 and
// true/false.
func filterFromRequest(r *http.Request) (recipe.Filter, error) {
	query := r.URL.Query()
	var f recipe.Filter

	if v := query.Get("author"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return recipe.Filter{}, domain.Invalid("author", "must be a user id")
		}
		f.AuthorID = id
	}

	f.Tags = query["tags"]

	for _, b := range []struct {
		name string
		dst  *bool
	}{
		{"is_favorited", &f.Favorited},
		{"is_in_shopping_cart", &f.InShoppingCart},
	} {
		v := query.Get(b.name)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return recipe.Filter{}, domain.Invalid(b.name, "must be 0 or 1")
		}
		*b.dst = parsed
	}
	return f, nil
}
