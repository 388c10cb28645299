// Package middleware contains middleware functions for the API
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"

	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/api/token"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/env"
	"github.com/matt-dz/foodgram/internal/jwt"
	"github.com/matt-dz/foodgram/internal/log"
	"github.com/matt-dz/foodgram/internal/metrics"
	"github.com/matt-dz/foodgram/internal/principal"
	"github.com/matt-dz/foodgram/internal/role"
)

const RequestIDHeader = "X-Request-ID"

// InjectEnv injects an environment struct into the request context.
func InjectEnv(environment *env.Env) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(env.WithCtx(r.Context(), environment)))
		})
	}
}

// LogRequest logs one line per request and recovers panics.
func LogRequest(logger *slog.Logger) func(http.Handler) http.Handler {
	return httplog.RequestLogger(logger, &httplog.Options{
		RecoverPanics: true,
		Skip: func(r *http.Request, respStatus int) bool {
			return r.URL.Path == "/api/ping" && respStatus == http.StatusOK
		},
		LogExtraAttrs: func(r *http.Request, reqBody string, respStatus int) []slog.Attr {
			return []slog.Attr{slog.String("request_id", requestid.ExtractRequestID(r.Context()))}
		},
	})
}

// AddRequestID adds a request ID to the request context and echoes it in
// the response headers.
func AddRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := requestid.New()
		ctx := log.AppendCtx(r.Context(), slog.String("request_id", requestID))
		ctx = requestid.InjectRequestID(ctx, requestID)
		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Cors allows the configured origins to call the API with credentials.
func Cors(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           86400,
	})
}

// RateLimit limits each client IP to perMinute requests. A non-positive
// limit disables it.
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			requestID := requestid.ExtractRequestID(r.Context())
			_ = apiError.EncodeError(w, apiError.TooManyRequests, "too many requests", requestID)
		}),
	)
}

// Metrics counts requests by chi route pattern.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

var (
	errUnknownUser      = errors.New("token subject does not exist")
	errRevokedToken     = errors.New("token version is stale")
	errUnknownTokenRole = errors.New("token role is unknown")
)

// Authenticate resolves the caller into a principal.Principal. Requests
// without credentials continue as the anonymous principal; requests with
// invalid, expired or revoked credentials are rejected.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		env := env.EnvFromCtx(ctx)
		requestID := requestid.ExtractRequestID(ctx)

		raw, err := token.FromRequest(r, env)
		if errors.Is(err, token.ErrNoToken) {
			next.ServeHTTP(w, r.WithContext(principal.WithCtx(ctx, principal.Anonymous())))
			return
		} else if err != nil {
			env.Logger.ErrorContext(ctx, "Malformed authorization header", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.InvalidAccessToken, "invalid access token", requestID)
			return
		}

		secret, version := env.AppSecret()
		if len(secret) == 0 {
			env.Logger.ErrorContext(ctx, "App secret not configured")
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}

		claims, err := jwt.ValidateJWT(raw, version, secret)
		if errors.Is(err, jwt.ErrTokenExpired) {
			env.Logger.ErrorContext(ctx, "Access token expired", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.ExpiredAccessToken, "access token expired", requestID)
			return
		} else if err != nil {
			env.Logger.ErrorContext(ctx, "Invalid access token", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.InvalidAccessToken, "invalid access token", requestID)
			return
		}

		p, err := resolvePrincipal(r, env, claims)
		if errors.Is(err, errUnknownUser) || errors.Is(err, errRevokedToken) || errors.Is(err, errUnknownTokenRole) {
			env.Logger.ErrorContext(ctx, "Rejected access token", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.InvalidAccessToken, "invalid access token", requestID)
			return
		} else if err != nil {
			env.Logger.ErrorContext(ctx, "Failed to resolve access token", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}

		// The request log line is written by LogRequest, which runs before
		// authentication, so the user id is handed to it explicitly.
		httplog.SetAttrs(ctx, slog.Int64("user_id", p.UserID))
		ctx = log.AppendCtx(ctx, slog.Int64("user_id", p.UserID))
		ctx = principal.WithCtx(ctx, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolvePrincipal checks the claims against the stored user. The role is
// taken from the database so a demotion applies to tokens already issued.
func resolvePrincipal(r *http.Request, env *env.Env, claims *jwt.Claims) (principal.Principal, error) {
	userID, err := claims.UserID()
	if err != nil {
		return principal.Principal{}, errors.Join(errUnknownUser, err)
	}

	user, err := env.Database.GetUserByID(r.Context(), userID)
	if database.IsNoRows(err) {
		return principal.Principal{}, errUnknownUser
	} else if err != nil {
		return principal.Principal{}, err
	}
	if user.TokenVersion != claims.TokenVersion {
		return principal.Principal{}, errRevokedToken
	}

	userRole := role.FromDB(user.Role)
	if userRole == role.RoleUnknown {
		return principal.Principal{}, errUnknownTokenRole
	}
	return principal.User(user.ID, userRole), nil
}

// RequireAuth rejects anonymous callers.
func RequireAuth(next http.Handler) http.Handler {
	return RequireRole(role.RoleUser)(next)
}

// RequireRole rejects callers below requiredRole.
func RequireRole(requiredRole role.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestid.ExtractRequestID(ctx)
			p := principal.FromCtx(ctx)

			if !p.IsAuthenticated() {
				_ = apiError.EncodeError(w, apiError.NotAuthenticated, "authentication credentials were not provided", requestID)
				return
			}
			if !p.Role.AtLeast(requiredRole) {
				env.EnvFromCtx(ctx).Logger.ErrorContext(ctx, "User does not have required role",
					slog.String("user-role", p.Role.String()),
					slog.String("required-role", requiredRole.String()))
				_ = apiError.EncodeError(w, apiError.PermissionDenied, "insufficient permissions", requestID)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRecipeAuthor admits the author of the recipe named by the "id"
// URL parameter, or an admin. Unknown recipes yield 404.
func RequireRecipeAuthor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		env := env.EnvFromCtx(ctx)
		requestID := requestid.ExtractRequestID(ctx)
		p := principal.FromCtx(ctx)

		if !p.IsAuthenticated() {
			_ = apiError.EncodeError(w, apiError.NotAuthenticated, "authentication credentials were not provided", requestID)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			_ = apiError.EncodeError(w, apiError.NotFound, "recipe not found", requestID)
			return
		}

		recipe, err := env.Database.GetRecipe(ctx, id)
		if database.IsNoRows(err) {
			_ = apiError.EncodeError(w, apiError.NotFound, "recipe not found", requestID)
			return
		} else if err != nil {
			env.Logger.ErrorContext(ctx, "Failed to get recipe", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}

		if !p.CanModify(recipe.AuthorID) {
			_ = apiError.EncodeError(w, apiError.PermissionDenied, "only the author may change this recipe", requestID)
			return
		}
		next.ServeHTTP(w, r)
	})
}
