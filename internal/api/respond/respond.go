// Package respond holds the request decoding and response writing steps
// shared by every handler.
package respond

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/domain"
	"github.com/matt-dz/foodgram/internal/env"
	mJson "github.com/matt-dz/foodgram/internal/json"
	"github.com/matt-dz/foodgram/internal/validate"
)

const maxBodyBytes = 16 << 20

var validator = validate.New()

// Decode reads the JSON body into dst and runs struct validation. On
// failure it writes a 400 and returns false.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	env.Logger.DebugContext(ctx, "Reading request body")
	defer func() { _ = r.Body.Close() }()
	if err := mJson.DecodeJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes), dst); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return false
	}

	if err := validator.Struct(dst); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate request body", slog.Any("error", err))
		Error(w, r, validate.FromValidator(err))
		return false
	}
	return true
}

// Error writes err as an API error. Domain errors keep their message;
// everything else is logged and reported as a 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	if apiError.EncodeDomainError(w, err, requestID) {
		env.Logger.DebugContext(ctx, "Request rejected", slog.Any("error", err))
		return
	}

	env.Logger.ErrorContext(ctx, "Request failed", slog.Any("error", err))
	_ = apiError.EncodeInternalError(w, requestID)
}

// JSON writes v with status.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	ctx := r.Context()
	env.EnvFromCtx(ctx).Logger.DebugContext(ctx, "Writing response")
	if err := mJson.WriteJSON(w, status, v); err != nil {
		env.EnvFromCtx(ctx).Logger.ErrorContext(ctx, "Failed to write response", slog.Any("error", err))
	}
}

// PathID parses a positive integer URL parameter. An unparsable id names no
// resource and is reported as 404.
func PathID(w http.ResponseWriter, r *http.Request, name, kind string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		Error(w, r, domain.NotFound(kind, id))
		return 0, false
	}
	return id, true
}
