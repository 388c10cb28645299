// Package auth contains handlers for the auth endpoints
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/api/respond"
	"github.com/matt-dz/foodgram/internal/api/schema"
	"github.com/matt-dz/foodgram/internal/api/token"
	"github.com/matt-dz/foodgram/internal/argon2id"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/env"
	"github.com/matt-dz/foodgram/internal/principal"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin godoc
//
//	@Summary		Obtain an access token.
//	@Description	Exchanges email and password for a token accepted as
//	@Description	"Authorization: Token <token>". The token is also set as a cookie.
//	@Tags			Auth
//
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	schema.Token
//	@Failure		400		{object}	apiError.Error	"Invalid credentials"
//	@Router			/api/auth/token/login/ [POST]
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	var request LoginRequest
	if !respond.Decode(w, r, &request) {
		return
	}

	env.Logger.DebugContext(ctx, "Retrieving user")
	user, err := env.Database.GetUserByEmail(ctx, strings.TrimSpace(request.Email))
	if database.IsNoRows(err) {
		env.Logger.DebugContext(ctx, "No user with email")
		_ = apiError.EncodeError(w, apiError.InvalidCredentials, "invalid email or password", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to get user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Verifying password")
	ok, err := argon2id.Verify(request.Password, user.PasswordHash)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to verify password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if !ok {
		_ = apiError.EncodeError(w, apiError.InvalidCredentials, "invalid email or password", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Creating access token")
	accessToken, err := token.CreateAccessToken(user, env)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to create access token", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	http.SetCookie(w, token.NewAccessTokenCookie(accessToken, env))
	respond.JSON(w, r, http.StatusOK, schema.Token{AuthToken: accessToken})
}

// HandleLogout godoc
//
//	@Summary		Revoke every token of the caller.
//	@Description	Bumps the caller's token version so previously issued
//	@Description	tokens stop being accepted.
//	@Tags			Auth
//
//	@Security		TokenAuth
//	@Success		204
//	@Failure		401	{object}	apiError.Error	"Not authenticated"
//	@Router			/api/auth/token/logout/ [POST]
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	p := principal.FromCtx(ctx)

	env.Logger.DebugContext(ctx, "Revoking tokens")
	if _, err := env.Database.BumpTokenVersion(ctx, p.UserID); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to bump token version", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	http.SetCookie(w, token.ClearAccessTokenCookie(env))
	w.WriteHeader(http.StatusNoContent)
}
