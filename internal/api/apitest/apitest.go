// Package apitest wires handlers to a mocked database for handler tests.
package apitest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/database/dbtest"
	"github.com/matt-dz/foodgram/internal/env"
	"github.com/matt-dz/foodgram/internal/filestore/filestoretest"
	"github.com/matt-dz/foodgram/internal/json"
	"github.com/matt-dz/foodgram/internal/principal"
)

const AppSecret = "test-secret-32-bytes-long-123456"

type Harness struct {
	Env   *env.Env
	Store *dbtest.Store
	Files *filestoretest.Memory
}

func New(t *testing.T) *Harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := dbtest.NewStore(ctrl)
	files := filestoretest.NewMemory()

	secret := config.AppSecretValue(AppSecret)
	cfg := config.Config{
		AppSecret: config.AppSecret{Value: &secret, Version: "1"},
		Env:       config.EnvDev,
	}
	return &Harness{
		Env:   env.New(nil, store, files, cfg),
		Store: store,
		Files: files,
	}
}

// Request routes one request through a chi router that registers handler
// under pattern, so URL parameters resolve as in production.
type Request struct {
	Method    string
	Pattern   string
	Target    string
	Body      string
	Principal principal.Principal
}

func (h *Harness) Do(handler http.HandlerFunc, req Request) *httptest.ResponseRecorder {
	pattern := req.Pattern
	if pattern == "" {
		pattern, _, _ = strings.Cut(req.Target, "?")
	}

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := env.WithCtx(r.Context(), h.Env)
			ctx = principal.WithCtx(ctx, req.Principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	router.MethodFunc(req.Method, pattern, handler)

	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}
	r := httptest.NewRequest(req.Method, req.Target, body)
	if req.Body != "" {
		r.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

// ErrorCode decodes the error envelope of rec.
func ErrorCode(t *testing.T, rec *httptest.ResponseRecorder) apiError.ErrorCode {
	t.Helper()
	var body apiError.Error
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body %q: %v", rec.Body.String(), err)
	}
	return body.Code
}

// Decode unmarshals the body of rec into dst.
func Decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decoding body %q: %v", rec.Body.String(), err)
	}
}
