// Package schema defines the JSON bodies exchanged with API clients.
package schema

import (
	"time"

	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/recipe"
	"github.com/matt-dz/foodgram/internal/subscription"
)

type User struct {
	Email        string `json:"email"`
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

func NewUser(u database.User, subscribed bool) User {
	return User{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

// CreatedUser is returned from signup. It never carries the password.
type CreatedUser struct {
	Email     string `json:"email"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func NewCreatedUser(u database.User) CreatedUser {
	return CreatedUser{
		Email:     u.Email,
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

func NewTag(t database.Tag) Tag {
	return Tag{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}

func NewTags(tags []database.Tag) []Tag {
	out := make([]Tag, len(tags))
	for i, t := range tags {
		out[i] = NewTag(t)
	}
	return out
}

type Ingredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func NewIngredient(i database.Ingredient) Ingredient {
	return Ingredient{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}

// IngredientAmount is an ingredient as used by one recipe.
type IngredientAmount struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int32  `json:"amount"`
}

type Recipe struct {
	ID               int64              `json:"id"`
	Tags             []Tag              `json:"tags"`
	Author           User               `json:"author"`
	Ingredients      []IngredientAmount `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int32              `json:"cooking_time"`
	PubDate          string             `json:"pub_date"`
}

func NewRecipe(d recipe.Detail) Recipe {
	ingredients := make([]IngredientAmount, len(d.Ingredients))
	for i, ing := range d.Ingredients {
		ingredients[i] = IngredientAmount{
			ID:              ing.IngredientID,
			Name:            ing.Name,
			MeasurementUnit: ing.MeasurementUnit,
			Amount:          ing.Amount,
		}
	}
	return Recipe{
		ID:               d.ID,
		Tags:             NewTags(d.Tags),
		Author:           NewUser(d.Author.User, d.Author.IsSubscribed),
		Ingredients:      ingredients,
		IsFavorited:      d.IsFavorited,
		IsInShoppingCart: d.IsInShoppingCart,
		Name:             d.Name,
		Image:            d.ImageURL,
		Text:             d.Text,
		CookingTime:      d.CookingTime,
		PubDate:          d.PubDate.UTC().Format(time.RFC3339),
	}
}

func NewRecipes(details []recipe.Detail) []Recipe {
	out := make([]Recipe, len(details))
	for i, d := range details {
		out[i] = NewRecipe(d)
	}
	return out
}

// RecipeMinified is the short form used by ledgers and subscriptions.
type RecipeMinified struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int32  `json:"cooking_time"`
}

func NewRecipeMinified(r database.Recipe, imageURL func(string) string) RecipeMinified {
	return RecipeMinified{
		ID:          r.ID,
		Name:        r.Name,
		Image:       imageURL(r.ImageKey),
		CookingTime: r.CookingTime,
	}
}

// Subscription is a followed author with a preview of their recipes.
type Subscription struct {
	User
	Recipes      []RecipeMinified `json:"recipes"`
	RecipesCount int64            `json:"recipes_count"`
}

func NewSubscription(a subscription.Author, imageURL func(string) string) Subscription {
	recipes := make([]RecipeMinified, len(a.Recipes))
	for i, r := range a.Recipes {
		recipes[i] = NewRecipeMinified(r, imageURL)
	}
	return Subscription{
		User:         NewUser(a.User, a.IsSubscribed),
		Recipes:      recipes,
		RecipesCount: a.RecipesCount,
	}
}

type Token struct {
	AuthToken string `json:"auth_token"`
}
