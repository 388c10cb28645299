// Package env provides a structure for managing application-wide dependencies.
package env

import (
	"context"
	"log/slog"

	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/filestore"
	"github.com/matt-dz/foodgram/internal/ledger"
	"github.com/matt-dz/foodgram/internal/log"
	"github.com/matt-dz/foodgram/internal/recipe"
	"github.com/matt-dz/foodgram/internal/shoppinglist"
	"github.com/matt-dz/foodgram/internal/subscription"
)

type Env struct {
	Logger    *slog.Logger
	Database  database.Store
	FileStore filestore.Store
	Config    config.Config

	Recipes       *recipe.Service
	Favorites     *ledger.Ledger
	ShoppingCart  *ledger.Ledger
	ShoppingList  *shoppinglist.Service
	Subscriptions *subscription.Service
}

// New wires the services on top of db and files. A nil logger discards
// output.
func New(lg *slog.Logger, db database.Store, files filestore.Store, cfg config.Config) *Env {
	if lg == nil {
		lg = log.NullLogger()
	}

	return &Env{
		Logger:    lg,
		Database:  db,
		FileStore: files,
		Config:    cfg,

		Recipes:       recipe.NewService(db, files, lg),
		Favorites:     ledger.NewFavorites(db),
		ShoppingCart:  ledger.NewShoppingCart(db),
		ShoppingList:  shoppinglist.NewService(db),
		Subscriptions: subscription.NewService(db),
	}
}

func Null() *Env {
	return New(nil, nil, nil, config.Config{})
}

// AppSecret returns the HMAC key for access tokens and its kid.
func (e *Env) AppSecret() (secret []byte, version string) {
	if e.Config.AppSecret.Value != nil {
		secret = []byte(*e.Config.AppSecret.Value)
	}
	return secret, e.Config.AppSecret.Version
}

// IsProd reports whether the service runs in production mode.
func (e *Env) IsProd() bool {
	return e.Config.Env == config.EnvProd
}

type envKeyType struct{}

var envKey envKeyType

func WithCtx(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey, env)
}

// EnvFromCtx returns the Env stored in ctx, or a Null env when there is none.
func EnvFromCtx(ctx context.Context) *Env {
	if env, ok := ctx.Value(envKey).(*Env); ok {
		return env
	}
	return Null()
}
