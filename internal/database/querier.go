package database

import (
	"context"
)

//go:generate mockgen -source=querier.go -destination=mock_querier.go -package=database

type Querier interface {
	BumpTokenVersion(ctx context.Context, id int64) (int32, error)
	CheckUsersTableExists(ctx context.Context) (bool, error)
	CountRecipes(ctx context.Context, arg RecipeFilterParams) (int64, error)
	CountRecipesByAuthor(ctx context.Context, authorID int64) (int64, error)
	CountSubscribedAuthors(ctx context.Context, userID int64) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CreateIngredientIgnoreConflict(ctx context.Context, arg CreateIngredientParams) (bool, error)
	CreateRecipe(ctx context.Context, arg CreateRecipeParams) (Recipe, error)
	CreateTag(ctx context.Context, arg CreateTagParams) (Tag, error)
	CreateTagIgnoreConflict(ctx context.Context, arg CreateTagParams) (bool, error)
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	DeleteLedgerEntry(ctx context.Context, ledger Ledger, arg LedgerEntryParams) (int64, error)
	DeleteRecipe(ctx context.Context, id int64) (Recipe, error)
	DeleteRecipeIngredients(ctx context.Context, recipeID int64) error
	DeleteRecipeTags(ctx context.Context, recipeID int64) error
	DeleteSubscription(ctx context.Context, arg SubscriptionParams) (int64, error)
	GetAdminCount(ctx context.Context) (int64, error)
	GetIngredient(ctx context.Context, id int64) (Ingredient, error)
	GetRecipe(ctx context.Context, id int64) (Recipe, error)
	GetTag(ctx context.Context, id int64) (Tag, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
	InsertLedgerEntry(ctx context.Context, ledger Ledger, arg LedgerEntryParams) error
	InsertRecipeIngredients(ctx context.Context, recipeID int64, items []RecipeIngredientParams) (int64, error)
	InsertRecipeTags(ctx context.Context, recipeID int64, tagIDs []int64) (int64, error)
	InsertSubscription(ctx context.Context, arg SubscriptionParams) error
	LedgerEntryExists(ctx context.Context, ledger Ledger, arg LedgerEntryParams) (bool, error)
	ListCartIngredients(ctx context.Context, userID int64) ([]CartIngredientRow, error)
	ListIngredients(ctx context.Context, namePrefix string) ([]Ingredient, error)
	ListRecipeIngredients(ctx context.Context, recipeID int64) ([]RecipeIngredient, error)
	ListRecipeTags(ctx context.Context, recipeID int64) ([]Tag, error)
	ListRecipes(ctx context.Context, arg ListRecipesParams) ([]Recipe, error)
	ListRecipesByAuthor(ctx context.Context, arg ListRecipesByAuthorParams) ([]Recipe, error)
	ListSubscribedAuthors(ctx context.Context, arg ListSubscribedAuthorsParams) ([]User, error)
	ListTags(ctx context.Context) ([]Tag, error)
	ListUsers(ctx context.Context, arg ListUsersParams) ([]User, error)
	LockRecipe(ctx context.Context, id int64) (Recipe, error)
	SubscriptionExists(ctx context.Context, arg SubscriptionParams) (bool, error)
	UpdateRecipe(ctx context.Context, arg UpdateRecipeParams) (Recipe, error)
	UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error
}

var _ Querier = (*Queries)(nil)
