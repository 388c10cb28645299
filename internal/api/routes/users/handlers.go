// Package users contains handlers for the user resource.
package users

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/pagination"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/api/respond"
	"github.com/matt-dz/foodgram/internal/api/schema"
	"github.com/matt-dz/foodgram/internal/argon2id"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/domain"
	"github.com/matt-dz/foodgram/internal/env"
	"github.com/matt-dz/foodgram/internal/password"
	"github.com/matt-dz/foodgram/internal/principal"
)

// HashParams is used for every stored password.
var HashParams = argon2id.DefaultParams

// HandleCreateUser godoc
//
//	@Summary	Sign up.
//	@Tags		User
//
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateUserRequest	true	"Create User Request"
//	@Success	201		{object}	schema.CreatedUser
//	@Failure	400		{object}	apiError.Error	"Invalid or duplicate fields, weak password"
//	@Router		/api/users/ [POST]
func HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	var request CreateUserRequest
	if !respond.Decode(w, r, &request) {
		return
	}
	request.Email = strings.TrimSpace(request.Email)

	// Ensure password strength
	env.Logger.DebugContext(ctx, "Validating password")
	err := password.ValidatePassword(request.Password,
		request.Username, request.Email, request.FirstName, request.LastName)
	if err != nil {
		env.Logger.DebugContext(ctx, "Password rejected", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.WeakPassword, err.Error(), requestID) // OK to share the error with client.
		return
	}

	env.Logger.DebugContext(ctx, "Hashing password")
	hash, err := HashParams.Hash(request.Password)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Creating user")
	user, err := env.Database.CreateUser(ctx, database.CreateUserParams{
		Email:        request.Email,
		Username:     request.Username,
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		PasswordHash: hash,
		Role:         database.RoleUser,
	})
	switch {
	case database.IsUniqueViolation(err, "users_email_key"):
		respond.Error(w, r, domain.Invalid("email", "a user with this email already exists"))
		return
	case database.IsUniqueViolation(err, "users_username_key"):
		respond.Error(w, r, domain.Invalid("username", "a user with this username already exists"))
		return
	case err != nil:
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, schema.NewCreatedUser(user))
}

// HandleListUsers godoc
//
//	@Summary	List users.
//	@Tags		User
//
//	@Produce	json
//	@Security	TokenAuth
//	@Param		page	query		int	false	"Page number"
//	@Param		limit	query		int	false	"Page size"
//	@Success	200		{object}	pagination.Response[schema.User]
//	@Failure	401		{object}	apiError.Error	"Not authenticated"
//	@Router		/api/users/ [GET]
func HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	p := principal.FromCtx(ctx)

	page, err := pagination.FromRequest(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	env.Logger.DebugContext(ctx, "Counting users")
	count, err := env.Database.CountUsers(ctx)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	env.Logger.DebugContext(ctx, "Listing users")
	users, err := env.Database.ListUsers(ctx, database.ListUsersParams{
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	results := make([]schema.User, 0, len(users))
	for _, u := range users {
		subscribed, err := env.Subscriptions.IsSubscribed(ctx, p, u.ID)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		results = append(results, schema.NewUser(u, subscribed))
	}

	respond.JSON(w, r, http.StatusOK, pagination.NewResponse(r, page, count, results))
}

// HandleGetUser godoc
//
//	@Summary	Get a user profile.
//	@Tags		User
//
//	@Produce	json
//	@Param		id	path		int	true	"User ID"
//	@Success	200	{object}	schema.User
//	@Failure	404	{object}	apiError.Error	"Not found"
//	@Router		/api/users/{id}/ [GET]
func HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id", "user")
	if !ok {
		return
	}
	writeUser(w, r, id)
}

// HandleGetMe godoc
//
//	@Summary	Get the caller's profile.
//	@Tags		User
//
//	@Produce	json
//	@Security	TokenAuth
//	@Success	200	{object}	schema.User
//	@Failure	401	{object}	apiError.Error	"Not authenticated"
//	@Router		/api/users/me/ [GET]
func HandleGetMe(w http.ResponseWriter, r *http.Request) {
	writeUser(w, r, principal.FromCtx(r.Context()).UserID)
}

func writeUser(w http.ResponseWriter, r *http.Request, id int64) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	p := principal.FromCtx(ctx)

	env.Logger.DebugContext(ctx, "Retrieving user", slog.Int64("id", id))
	user, err := env.Database.GetUserByID(ctx, id)
	if database.IsNoRows(err) {
		respond.Error(w, r, domain.NotFound("user", id))
		return
	} else if err != nil {
		respond.Error(w, r, err)
		return
	}

	subscribed, err := env.Subscriptions.IsSubscribed(ctx, p, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, schema.NewUser(user, subscribed))
}

// HandleSetPassword godoc
//
//	@Summary		Change the caller's password.
//	@Description	Revokes every token issued before the change.
//	@Tags			User
//
//	@Accept			json
//	@Security		TokenAuth
//	@Param			request	body	SetPasswordRequest	true	"Set Password Request"
//	@Success		204
//	@Failure		400	{object}	apiError.Error	"Wrong current password or weak new password"
//	@Failure		401	{object}	apiError.Error	"Not authenticated"
//	@Router			/api/users/set_password/ [POST]
func HandleSetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	p := principal.FromCtx(ctx)

	var request SetPasswordRequest
	if !respond.Decode(w, r, &request) {
		return
	}

	user, err := env.Database.GetUserByID(ctx, p.UserID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	env.Logger.DebugContext(ctx, "Verifying current password")
	ok, err := argon2id.Verify(request.CurrentPassword, user.PasswordHash)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if !ok {
		_ = apiError.EncodeError(w, apiError.InvalidPassword, "current password is incorrect", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Validating new password")
	err = password.ValidatePassword(request.NewPassword, user.Username, user.Email, user.FirstName, user.LastName)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.WeakPassword, err.Error(), requestID)
		return
	}

	hash, err := HashParams.Hash(request.NewPassword)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	env.Logger.DebugContext(ctx, "Updating password")
	err = env.Database.UpdateUserPassword(ctx, database.UpdateUserPasswordParams{ID: user.ID, PasswordHash: hash})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// recipesLimit reads the optional ?recipes_limit= parameter; zero means
// no limit.
func recipesLimit(r *http.Request) (int32, error) {
	v := r.URL.Query().Get("recipes_limit")
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n < 0 {
		return 0, domain.Invalid("recipes_limit", "must be a non-negative integer")
	}
	return int32(n), nil
}

// HandleSubscribe godoc
//
//	@Summary	Subscribe to an author.
//	@Tags		Subscription
//
//	@Produce	json
//	@Security	TokenAuth
//	@Param		id				path		int	true	"Author ID"
//	@Param		recipes_limit	query		int	false	"Number of recipes to include"
//	@Success	201				{object}	schema.Subscription
//	@Failure	400				{object}	apiError.Error	"Already subscribed or self subscription"
//	@Failure	404				{object}	apiError.Error	"Author not found"
//	@Router		/api/users/{id}/subscribe/ [POST]
func HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	id, ok := respond.PathID(w, r, "id", "user")
	if !ok {
		return
	}
	limit, err := recipesLimit(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	env.Logger.DebugContext(ctx, "Subscribing", slog.Int64("author_id", id))
	author, err := env.Subscriptions.Follow(ctx, principal.FromCtx(ctx), id, limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, schema.NewSubscription(author, env.Recipes.ImageURL))
}

// HandleUnsubscribe godoc
//
//	@Summary	Unsubscribe from an author.
//	@Tags		Subscription
//
//	@Security	TokenAuth
//	@Param		id	path	int	true	"Author ID"
//	@Success	204
//	@Failure	404	{object}	apiError.Error	"Author not found or not subscribed"
//	@Router		/api/users/{id}/subscribe/ [DELETE]
func HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	id, ok := respond.PathID(w, r, "id", "user")
	if !ok {
		return
	}

	env.Logger.DebugContext(ctx, "Unsubscribing", slog.Int64("author_id", id))
	if err := env.Subscriptions.Unfollow(ctx, principal.FromCtx(ctx), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListSubscriptions godoc
//
//	@Summary	List the authors the caller follows.
//	@Tags		Subscription
//
//	@Produce	json
//	@Security	TokenAuth
//	@Param		page			query		int	false	"Page number"
//	@Param		limit			query		int	false	"Page size"
//	@Param		recipes_limit	query		int	false	"Number of recipes per author"
//	@Success	200				{object}	pagination.Response[schema.Subscription]
//	@Failure	401				{object}	apiError.Error	"Not authenticated"
//	@Router		/api/users/subscriptions/ [GET]
func HandleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	page, err := pagination.FromRequest(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	limit, err := recipesLimit(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	env.Logger.DebugContext(ctx, "Listing subscriptions")
	authors, count, err := env.Subscriptions.ListFollowing(ctx, principal.FromCtx(ctx), page.Limit, page.Offset(), limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	results := make([]schema.Subscription, len(authors))
	for i, a := range authors {
		results[i] = schema.NewSubscription(a, env.Recipes.ImageURL)
	}
	respond.JSON(w, r, http.StatusOK, pagination.NewResponse(r, page, count, results))
}
