// Package api sets up and starts the API
// server with routing, middleware, and Swagger documentation.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	_ "github.com/matt-dz/foodgram/docs"
	"github.com/matt-dz/foodgram/internal/api/middleware"
	"github.com/matt-dz/foodgram/internal/api/routes/auth"
	"github.com/matt-dz/foodgram/internal/api/routes/ingredients"
	"github.com/matt-dz/foodgram/internal/api/routes/ping"
	"github.com/matt-dz/foodgram/internal/api/routes/recipes"
	"github.com/matt-dz/foodgram/internal/api/routes/tags"
	"github.com/matt-dz/foodgram/internal/api/routes/users"
	"github.com/matt-dz/foodgram/internal/env"
	"github.com/matt-dz/foodgram/internal/filestore"
	"github.com/matt-dz/foodgram/internal/role"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func addDocs(r chi.Router) {
	swagger := httpSwagger.Handler(
		httpSwagger.URL("/api/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	)

	r.Mount("/api/swagger", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		// Handle preflight
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		// Allow GET to serve Swagger
		if req.Method == http.MethodGet {
			swagger.ServeHTTP(w, req)
			return
		}

		// Block anything else
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}))
}

// addMedia serves locally stored images. S3 images are fetched from the
// bucket directly.
func addMedia(r chi.Router, files filestore.Store) {
	local, ok := files.(filestore.Local)
	if !ok {
		return
	}
	prefix := local.KeyPrefix()
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(local.BaseDirectory())))
	r.Get(prefix+"/*", fs.ServeHTTP)
}

func addRoutes(router chi.Router) {
	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", ping.HandlePing)

		r.Route("/auth/token", func(r chi.Router) {
			r.Post("/login", auth.HandleLogin)
			r.With(middleware.RequireAuth).Post("/logout", auth.HandleLogout)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", users.HandleCreateUser)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/", users.HandleListUsers)
				r.Get("/me", users.HandleGetMe)
				r.Post("/set_password", users.HandleSetPassword)
				r.Get("/subscriptions", users.HandleListSubscriptions)
				r.Post("/{id}/subscribe", users.HandleSubscribe)
				r.Delete("/{id}/subscribe", users.HandleUnsubscribe)
			})

			r.Get("/{id}", users.HandleGetUser)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", tags.HandleListTags)
			r.Get("/{id}", tags.HandleGetTag)
			r.With(middleware.RequireRole(role.RoleAdmin)).Post("/", tags.HandleCreateTag)
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", ingredients.HandleListIngredients)
			r.Get("/{id}", ingredients.HandleGetIngredient)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipes.HandleListRecipes)
			r.Get("/{id}", recipes.HandleGetRecipe)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", recipes.HandleCreateRecipe)
				r.Get("/download_shopping_cart", recipes.HandleDownloadShoppingCart)
				r.Post("/{id}/favorite", recipes.HandleAddFavorite)
				r.Delete("/{id}/favorite", recipes.HandleRemoveFavorite)
				r.Post("/{id}/shopping_cart", recipes.HandleAddToCart)
				r.Delete("/{id}/shopping_cart", recipes.HandleRemoveFromCart)

				r.With(middleware.RequireRecipeAuthor).Patch("/{id}", recipes.HandleUpdateRecipe)
				r.With(middleware.RequireRecipeAuthor).Delete("/{id}", recipes.HandleDeleteRecipe)
			})
		})
	})
}

// NewRouter builds the full handler tree. Trailing slashes are optional on
// every route.
func NewRouter(env *env.Env) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.AddRequestID)
	router.Use(middleware.LogRequest(env.Logger))
	router.Use(middleware.RateLimit(env.Config.HTTP.RateLimit))
	router.Use(middleware.Cors(env.Config.HTTP.AllowedOrigins))
	router.Use(chimw.StripSlashes)
	router.Use(middleware.InjectEnv(env))
	router.Use(middleware.Metrics)
	router.Use(middleware.Authenticate)

	addRoutes(router)
	addDocs(router)
	addMedia(router, env.FileStore)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return router
}

// Start godoc
//
//	@title						Foodgram API
//	@version					1.0
//	@description				Recipe sharing: recipes, favorites, shopping lists and subscriptions.
//
//	@securityDefinitions.apikey	TokenAuth
//	@in							header
//	@name						Authorization
//	@description				"Token <jwt>" or "Bearer <jwt>".
//
//	@BasePath					/
func Start(ctx context.Context, env *env.Env) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", env.Config.HTTP.Port),
		Handler:           NewRouter(env),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		env.Logger.Info("Listening", slog.String("addr", server.Addr))
		env.Logger.Info(fmt.Sprintf("Swagger UI available at %s/api/swagger/index.html", env.Config.HostOrigin))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		env.Logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
