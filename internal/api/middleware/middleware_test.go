package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"go.uber.org/mock/gomock"

	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/database/dbtest"
	"github.com/matt-dz/foodgram/internal/env"
	"github.com/matt-dz/foodgram/internal/json"
	"github.com/matt-dz/foodgram/internal/jwt"
	"github.com/matt-dz/foodgram/internal/principal"
	"github.com/matt-dz/foodgram/internal/role"
)

const appSecret = "test-secret-32-bytes-long-123456"

func newEnv(t *testing.T) (*env.Env, *dbtest.Store) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := dbtest.NewStore(ctrl)
	secret := config.AppSecretValue(appSecret)
	cfg := config.Config{AppSecret: config.AppSecret{Value: &secret, Version: jwt.DefaultKID}}
	return env.New(nil, store, nil, cfg), store
}

func signToken(t *testing.T, userID int64, version int32) string {
	t.Helper()
	raw, err := jwt.GenerateJWT(jwt.JWTParams{Role: "user", UserID: userID, TokenVersion: version},
		[]byte(appSecret), jwt.DefaultKID)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return raw
}

// captured records the principal seen by the innermost handler.
type captured struct {
	called bool
	p      principal.Principal
}

func (c *captured) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.p = principal.FromCtx(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiError.Error {
	t.Helper()
	var body apiError.Error
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestAuthenticate(t *testing.T) {
	expired := func(t *testing.T) string {
		tok := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{
			Role: "user",
			RegisteredClaims: gojwt.RegisteredClaims{
				Subject:   "5",
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})
		tok.Header["kid"] = jwt.DefaultKID
		raw, err := tok.SignedString([]byte(appSecret))
		if err != nil {
			t.Fatal(err)
		}
		return raw
	}

	tests := []struct {
		name       string
		header     func(t *testing.T) string
		setup      func(*dbtest.Store)
		wantStatus int
		wantCode   apiError.ErrorCode
		wantP      principal.Principal
	}{
		{
			name:       "no credentials continue anonymously",
			wantStatus: http.StatusNoContent,
			wantP:      principal.Anonymous(),
		},
		{
			name:   "valid token",
			header: func(t *testing.T) string { return "Token " + signToken(t, 5, 2) },
			setup: func(s *dbtest.Store) {
				s.EXPECT().GetUserByID(gomock.Any(), int64(5)).
					Return(database.User{ID: 5, Role: database.RoleUser, TokenVersion: 2}, nil)
			},
			wantStatus: http.StatusNoContent,
			wantP:      principal.User(5, role.RoleUser),
		},
		{
			name:   "role is read from the database",
			header: func(t *testing.T) string { return "Bearer " + signToken(t, 5, 0) },
			setup: func(s *dbtest.Store) {
				s.EXPECT().GetUserByID(gomock.Any(), int64(5)).
					Return(database.User{ID: 5, Role: database.RoleAdmin}, nil)
			},
			wantStatus: http.StatusNoContent,
			wantP:      principal.User(5, role.RoleAdmin),
		},
		{
			name:   "revoked token",
			header: func(t *testing.T) string { return "Token " + signToken(t, 5, 1) },
			setup: func(s *dbtest.Store) {
				s.EXPECT().GetUserByID(gomock.Any(), int64(5)).
					Return(database.User{ID: 5, Role: database.RoleUser, TokenVersion: 2}, nil)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.InvalidAccessToken,
		},
		{
			name:   "deleted user",
			header: func(t *testing.T) string { return "Token " + signToken(t, 5, 0) },
			setup: func(s *dbtest.Store) {
				s.EXPECT().GetUserByID(gomock.Any(), int64(5)).Return(database.User{}, pgx.ErrNoRows)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.InvalidAccessToken,
		},
		{
			name:       "expired token",
			header:     func(t *testing.T) string { return "Token " + expired(t) },
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.ExpiredAccessToken,
		},
		{
			name:       "garbage token",
			header:     func(t *testing.T) string { return "Token garbage" },
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.InvalidAccessToken,
		},
		{
			name:       "unknown scheme",
			header:     func(t *testing.T) string { return "Basic Zm9vOmJhcg==" },
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.InvalidAccessToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, store := newEnv(t)
			if tt.setup != nil {
				tt.setup(store)
			}

			var c captured
			h := InjectEnv(e)(Authenticate(c.handler()))

			r := httptest.NewRequest(http.MethodGet, "/api/recipes/", nil)
			if tt.header != nil {
				r.Header.Set("Authorization", tt.header(t))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCode != "" {
				if got := decodeError(t, rec).Code; got != tt.wantCode {
					t.Errorf("code = %q, want %q", got, tt.wantCode)
				}
				if c.called {
					t.Error("next handler was called for a rejected token")
				}
				return
			}
			if c.p != tt.wantP {
				t.Errorf("principal = %+v, want %+v", c.p, tt.wantP)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		p          principal.Principal
		required   role.Role
		wantStatus int
	}{
		{name: "anonymous", p: principal.Anonymous(), required: role.RoleUser, wantStatus: http.StatusUnauthorized},
		{name: "user", p: principal.User(1, role.RoleUser), required: role.RoleUser, wantStatus: http.StatusNoContent},
		{name: "user on admin route", p: principal.User(1, role.RoleUser), required: role.RoleAdmin, wantStatus: http.StatusForbidden},
		{name: "admin", p: principal.User(1, role.RoleAdmin), required: role.RoleAdmin, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c captured
			h := RequireRole(tt.required)(c.handler())

			r := httptest.NewRequest(http.MethodPost, "/api/tags/", nil)
			r = r.WithContext(principal.WithCtx(r.Context(), tt.p))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireRecipeAuthor(t *testing.T) {
	tests := []struct {
		name       string
		p          principal.Principal
		id         string
		setup      func(*dbtest.Store)
		wantStatus int
	}{
		{
			name: "author",
			p:    principal.User(7, role.RoleUser),
			id:   "3",
			setup: func(s *dbtest.Store) {
				s.EXPECT().GetRecipe(gomock.Any(), int64(3)).Return(database.Recipe{ID: 3, AuthorID: 7}, nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "someone else",
			p:    principal.User(8, role.RoleUser),
			id:   "3",
			setup: func(s *dbtest.Store) {
				s.EXPECT().GetRecipe(gomock.Any(), int64(3)).Return(database.Recipe{ID: 3, AuthorID: 7}, nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "admin",
			p:    principal.User(1, role.RoleAdmin),
			id:   "3",
			setup: func(s *dbtest.Store) {
				s.EXPECT().GetRecipe(gomock.Any(), int64(3)).Return(database.Recipe{ID: 3, AuthorID: 7}, nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "missing recipe",
			p:    principal.User(7, role.RoleUser),
			id:   "4",
			setup: func(s *dbtest.Store) {
				s.EXPECT().GetRecipe(gomock.Any(), int64(4)).Return(database.Recipe{}, pgx.ErrNoRows)
			},
			wantStatus: http.StatusNotFound,
		},
		{name: "bad id", p: principal.User(7, role.RoleUser), id: "abc", wantStatus: http.StatusNotFound},
		{name: "anonymous", p: principal.Anonymous(), id: "3", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, store := newEnv(t)
			if tt.setup != nil {
				tt.setup(store)
			}

			var c captured
			router := chi.NewRouter()
			router.Use(InjectEnv(e))
			router.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					next.ServeHTTP(w, r.WithContext(principal.WithCtx(r.Context(), tt.p)))
				})
			})
			router.With(RequireRecipeAuthor).Patch("/api/recipes/{id}", c.handler().ServeHTTP)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/recipes/"+tt.id, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestLogRequest_IncludesAuthenticatedUser(t *testing.T) {
	e, store := newEnv(t)
	store.EXPECT().GetUserByID(gomock.Any(), int64(5)).
		Return(database.User{ID: 5, Role: database.RoleUser, TokenVersion: 2}, nil)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var c captured
	h := LogRequest(logger)(InjectEnv(e)(Authenticate(c.handler())))

	r := httptest.NewRequest(http.MethodGet, "/api/recipes/", nil)
	r.Header.Set("Authorization", "Token "+signToken(t, 5, 2))
	h.ServeHTTP(httptest.NewRecorder(), r)

	if !c.called {
		t.Fatal("next handler was not called")
	}
	if !strings.Contains(buf.String(), `"user_id":5`) {
		t.Errorf("request log %q does not carry the user id", buf.String())
	}
}

func TestLogRequest_AnonymousHasNoUser(t *testing.T) {
	e, _ := newEnv(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var c captured
	h := LogRequest(logger)(InjectEnv(e)(Authenticate(c.handler())))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/recipes/", nil))

	if buf.Len() == 0 {
		t.Fatal("no request log was written")
	}
	if strings.Contains(buf.String(), "user_id") {
		t.Errorf("anonymous request log %q carries a user id", buf.String())
	}
}

func TestAddRequestID(t *testing.T) {
	var seen string
	h := AddRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.ExtractRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("request id was not injected")
	}
	if got := rec.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("header = %q, want %q", got, seen)
	}
}

func TestRateLimit(t *testing.T) {
	var c captured
	h := RateLimit(1)(c.handler())

	do := func() int {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec.Code
	}

	if got := do(); got != http.StatusNoContent {
		t.Fatalf("first request status = %d", got)
	}
	if got := do(); got != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want %d", got, http.StatusTooManyRequests)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	var c captured
	h := RateLimit(0)(c.handler())
	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d", rec.Code)
		}
	}
}

func TestMetrics(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Metrics)
	router.Get("/api/tags/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tags/1", nil).WithContext(context.Background()))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
}
