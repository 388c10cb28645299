package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Ledger names one of the (user, recipe) membership tables.
type Ledger string

const (
	LedgerFavorites    Ledger = "favorites"
	LedgerShoppingCart Ledger = "shopping_cart"
)

func (l Ledger) Valid() bool {
	switch l {
	case LedgerFavorites, LedgerShoppingCart:
		return true
	}
	return false
}

type User struct {
	ID           int64
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
	TokenVersion int32
	CreatedAt    time.Time
}

type Tag struct {
	ID    int64
	Name  string
	Color string
	Slug  string
}

type Ingredient struct {
	ID              int64
	Name            string
	MeasurementUnit string
}

type Recipe struct {
	ID          int64
	AuthorID    int64
	Name        string
	Text        string
	ImageKey    string
	CookingTime int32
	PubDate     time.Time
}

// RecipeIngredient is an ingredient joined with the amount a recipe uses.
type RecipeIngredient struct {
	IngredientID    int64
	Name            string
	MeasurementUnit string
	Amount          int32
}

// CartIngredientRow is one (recipe, ingredient) pair of a user's shopping cart.
// Ingredient columns are null for a recipe without ingredients.
type CartIngredientRow struct {
	RecipeID        int64
	RecipeName      string
	CookingTime     int32
	RecipeText      string
	IngredientID    pgtype.Int8
	IngredientName  pgtype.Text
	MeasurementUnit pgtype.Text
	Amount          pgtype.Int4
}

type CreateUserParams struct {
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
}

type ListUsersParams struct {
	Limit  int32
	Offset int32
}

type UpdateUserPasswordParams struct {
	ID           int64
	PasswordHash string
}

type CreateTagParams struct {
	Name  string
	Color string
	Slug  string
}

type CreateIngredientParams struct {
	Name            string
	MeasurementUnit string
}

type RecipeIngredientParams struct {
	IngredientID int64
	Amount       int32
}

type CreateRecipeParams struct {
	AuthorID    int64
	Name        string
	Text        string
	ImageKey    string
	CookingTime int32
}

// UpdateRecipeParams leaves a column untouched when its value is not Valid.
type UpdateRecipeParams struct {
	ID          int64
	Name        pgtype.Text
	Text        pgtype.Text
	ImageKey    pgtype.Text
	CookingTime pgtype.Int4
}

type RecipeFilterParams struct {
	AuthorID    pgtype.Int8
	TagSlugs    []string
	FavoritedBy pgtype.Int8
	InCartOf    pgtype.Int8
}

type ListRecipesParams struct {
	RecipeFilterParams
	Limit  int32
	Offset int32
}

// ListRecipesByAuthorParams returns every recipe when Limit is not Valid.
type ListRecipesByAuthorParams struct {
	AuthorID int64
	Limit    pgtype.Int4
}

type LedgerEntryParams struct {
	UserID   int64
	RecipeID int64
}

type SubscriptionParams struct {
	UserID   int64
	AuthorID int64
}

type ListSubscribedAuthorsParams struct {
	UserID int64
	Limit  int32
	Offset int32
}
