package users

import (
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/matt-dz/foodgram/internal/api/apitest"
	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/pagination"
	"github.com/matt-dz/foodgram/internal/api/schema"
	"github.com/matt-dz/foodgram/internal/argon2id"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/principal"
	"github.com/matt-dz/foodgram/internal/role"
)

var fastParams = argon2id.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}

func init() {
	HashParams = fastParams
}

const signupBody = `{"email":"cook@example.com","username":"cook","first_name":"Ann","last_name":"Cook","password":"Vq7-Lm2_Zx9.Rt4"}`

var caller = principal.User(1, role.RoleUser)

func TestHandleCreateUser(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(*apitest.Harness)
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name: "created",
			body: signupBody,
			setup: func(h *apitest.Harness) {
				h.Store.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, arg database.CreateUserParams) (database.User, error) {
						assert.Equal(t, database.RoleUser, arg.Role)
						assert.NotEqual(t, "Vq7-Lm2_Zx9.Rt4", arg.PasswordHash)
						return database.User{ID: 9, Email: arg.Email, Username: arg.Username}, nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "duplicate email",
			body: signupBody,
			setup: func(h *apitest.Harness) {
				h.Store.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
					Return(database.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.ValidationFailed,
		},
		{
			name:       "weak password",
			body:       `{"email":"cook@example.com","username":"cook","first_name":"Ann","last_name":"Cook","password":"cook1234"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.WeakPassword,
		},
		{
			name:       "invalid username",
			body:       `{"email":"cook@example.com","username":"a cook","first_name":"Ann","last_name":"Cook","password":"Vq7-Lm2_Zx9.Rt4"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.ValidationFailed,
		},
		{
			name:       "invalid email",
			body:       `{"email":"nope","username":"cook","first_name":"Ann","last_name":"Cook","password":"Vq7-Lm2_Zx9.Rt4"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.ValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := apitest.New(t)
			if tt.setup != nil {
				tt.setup(h)
			}

			rec := h.Do(HandleCreateUser, apitest.Request{
				Method:    http.MethodPost,
				Target:    "/api/users/",
				Body:      tt.body,
				Principal: principal.Anonymous(),
			})

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantCode != apiError.UnknownError {
				assert.Equal(t, tt.wantCode, apitest.ErrorCode(t, rec))
				return
			}
			var got schema.CreatedUser
			apitest.Decode(t, rec, &got)
			assert.Equal(t, int64(9), got.ID)
			assert.NotContains(t, rec.Body.String(), "password")
		})
	}
}

func TestHandleListUsers(t *testing.T) {
	h := apitest.New(t)
	h.Store.EXPECT().CountUsers(gomock.Any()).Return(int64(3), nil)
	h.Store.EXPECT().ListUsers(gomock.Any(), database.ListUsersParams{Limit: 2, Offset: 2}).
		Return([]database.User{{ID: 3, Username: "third"}}, nil)
	h.Store.EXPECT().SubscriptionExists(gomock.Any(), database.SubscriptionParams{UserID: 1, AuthorID: 3}).
		Return(true, nil)

	rec := h.Do(HandleListUsers, apitest.Request{
		Method:    http.MethodGet,
		Target:    "/api/users/?page=2&limit=2",
		Principal: caller,
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got pagination.Response[schema.User]
	apitest.Decode(t, rec, &got)
	assert.Equal(t, int64(3), got.Count)
	assert.Nil(t, got.Next)
	require.NotNil(t, got.Previous)
	require.Len(t, got.Results, 1)
	assert.True(t, got.Results[0].IsSubscribed)
}

func TestHandleGetUser(t *testing.T) {
	t.Run("anonymous sees is_subscribed false", func(t *testing.T) {
		h := apitest.New(t)
		h.Store.EXPECT().GetUserByID(gomock.Any(), int64(5)).Return(database.User{ID: 5, Username: "chef"}, nil)

		rec := h.Do(HandleGetUser, apitest.Request{
			Method:    http.MethodGet,
			Pattern:   "/api/users/{id}/",
			Target:    "/api/users/5/",
			Principal: principal.Anonymous(),
		})

		require.Equal(t, http.StatusOK, rec.Code)
		var got schema.User
		apitest.Decode(t, rec, &got)
		assert.Equal(t, "chef", got.Username)
		assert.False(t, got.IsSubscribed)
	})

	t.Run("missing user", func(t *testing.T) {
		h := apitest.New(t)
		h.Store.EXPECT().GetUserByID(gomock.Any(), int64(5)).Return(database.User{}, pgx.ErrNoRows)

		rec := h.Do(HandleGetUser, apitest.Request{
			Method:  http.MethodGet,
			Pattern: "/api/users/{id}/",
			Target:  "/api/users/5/",
		})

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiError.NotFound, apitest.ErrorCode(t, rec))
	})

	t.Run("non numeric id", func(t *testing.T) {
		h := apitest.New(t)
		rec := h.Do(HandleGetUser, apitest.Request{
			Method:  http.MethodGet,
			Pattern: "/api/users/{id}/",
			Target:  "/api/users/abc/",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleGetMe(t *testing.T) {
	h := apitest.New(t)
	h.Store.EXPECT().GetUserByID(gomock.Any(), int64(1)).Return(database.User{ID: 1, Email: "me@example.com"}, nil)
	h.Store.EXPECT().SubscriptionExists(gomock.Any(), gomock.Any()).Return(false, nil)

	rec := h.Do(HandleGetMe, apitest.Request{
		Method:    http.MethodGet,
		Target:    "/api/users/me/",
		Principal: caller,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var got schema.User
	apitest.Decode(t, rec, &got)
	assert.Equal(t, "me@example.com", got.Email)
}

func TestHandleSetPassword(t *testing.T) {
	hash, err := fastParams.Hash("Old-Pass_w0rd")
	require.NoError(t, err)
	user := database.User{ID: 1, Email: "me@example.com", Username: "me", PasswordHash: hash}

	tests := []struct {
		name       string
		body       string
		setup      func(*apitest.Harness)
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name: "changed",
			body: `{"current_password":"Old-Pass_w0rd","new_password":"Vq7-Lm2_Zx9.Rt4"}`,
			setup: func(h *apitest.Harness) {
				h.Store.EXPECT().UpdateUserPassword(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, arg database.UpdateUserPasswordParams) error {
						ok, err := argon2id.Verify("Vq7-Lm2_Zx9.Rt4", arg.PasswordHash)
						assert.NoError(t, err)
						assert.True(t, ok)
						return nil
					})
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "wrong current password",
			body:       `{"current_password":"wrong","new_password":"Vq7-Lm2_Zx9.Rt4"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.InvalidPassword,
		},
		{
			name:       "weak new password",
			body:       `{"current_password":"Old-Pass_w0rd","new_password":"short"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.WeakPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := apitest.New(t)
			h.Store.EXPECT().GetUserByID(gomock.Any(), int64(1)).Return(user, nil)
			if tt.setup != nil {
				tt.setup(h)
			}

			rec := h.Do(HandleSetPassword, apitest.Request{
				Method:    http.MethodPost,
				Target:    "/api/users/set_password/",
				Body:      tt.body,
				Principal: caller,
			})

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, apitest.ErrorCode(t, rec))
			}
		})
	}
}

func TestHandleSubscribe(t *testing.T) {
	t.Run("self subscription", func(t *testing.T) {
		h := apitest.New(t)
		rec := h.Do(HandleSubscribe, apitest.Request{
			Method:    http.MethodPost,
			Pattern:   "/api/users/{id}/subscribe/",
			Target:    "/api/users/1/subscribe/",
			Principal: caller,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiError.SelfSubscription, apitest.ErrorCode(t, rec))
	})

	t.Run("bad recipes_limit", func(t *testing.T) {
		h := apitest.New(t)
		rec := h.Do(HandleSubscribe, apitest.Request{
			Method:    http.MethodPost,
			Pattern:   "/api/users/{id}/subscribe/",
			Target:    "/api/users/2/subscribe/?recipes_limit=-1",
			Principal: caller,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiError.ValidationFailed, apitest.ErrorCode(t, rec))
	})

	t.Run("already subscribed", func(t *testing.T) {
		h := apitest.New(t)
		h.Store.EXPECT().GetUserByID(gomock.Any(), int64(2)).Return(database.User{ID: 2}, nil)
		h.Store.EXPECT().InsertSubscription(gomock.Any(), database.SubscriptionParams{UserID: 1, AuthorID: 2}).
			Return(&pgconn.PgError{Code: "23505"})

		rec := h.Do(HandleSubscribe, apitest.Request{
			Method:    http.MethodPost,
			Pattern:   "/api/users/{id}/subscribe/",
			Target:    "/api/users/2/subscribe/",
			Principal: caller,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiError.AlreadyExists, apitest.ErrorCode(t, rec))
	})
}

func TestHandleUnsubscribe(t *testing.T) {
	h := apitest.New(t)
	h.Store.EXPECT().GetUserByID(gomock.Any(), int64(2)).Return(database.User{ID: 2}, nil)
	h.Store.EXPECT().DeleteSubscription(gomock.Any(), database.SubscriptionParams{UserID: 1, AuthorID: 2}).
		Return(int64(0), nil)

	rec := h.Do(HandleUnsubscribe, apitest.Request{
		Method:    http.MethodDelete,
		Pattern:   "/api/users/{id}/subscribe/",
		Target:    "/api/users/2/subscribe/",
		Principal: caller,
	})

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiError.NotFound, apitest.ErrorCode(t, rec))
}
