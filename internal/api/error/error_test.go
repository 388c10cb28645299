package error

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-dz/foodgram/internal/domain"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  ErrorCode
		wantField string
	}{
		{name: "validation", err: domain.Invalid("amount", "too big"), wantCode: ValidationFailed, wantField: "amount"},
		{name: "wrapped validation", err: fmt.Errorf("x: %w", domain.Invalid("tags", "empty")), wantCode: ValidationFailed, wantField: "tags"},
		{name: "self subscription", err: domain.ErrSelfSubscription, wantCode: SelfSubscription},
		{name: "already exists", err: fmt.Errorf("recipe 1: %w", domain.ErrAlreadyExists), wantCode: AlreadyExists},
		{name: "not found", err: domain.NotFound("recipe", 7), wantCode: NotFound},
		{name: "unauthenticated", err: domain.ErrUnauthenticated, wantCode: NotAuthenticated},
		{name: "forbidden", err: domain.ErrForbidden, wantCode: PermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDomain(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantCode.StatusCode(), got.Status)
			assert.Equal(t, tt.wantField, got.Field)
		})
	}

	assert.Nil(t, FromDomain(errors.New("boom")))
}

func TestStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, AlreadyExists.StatusCode())
	assert.Equal(t, http.StatusBadRequest, SelfSubscription.StatusCode())
	assert.Equal(t, http.StatusBadRequest, ValidationFailed.StatusCode())
	assert.Equal(t, http.StatusNotFound, NotFound.StatusCode())
	assert.Equal(t, http.StatusUnauthorized, NotAuthenticated.StatusCode())
	assert.Equal(t, http.StatusForbidden, PermissionDenied.StatusCode())
}

func TestEncodeDomainError(t *testing.T) {
	rec := httptest.NewRecorder()
	ok := EncodeDomainError(rec, domain.NotFound("recipe", 3), "req-1")
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":404,"code":"not_found","message":"recipe 3: not found","error_id":"req-1"}`,
		rec.Body.String())

	rec = httptest.NewRecorder()
	assert.False(t, EncodeDomainError(rec, errors.New("boom"), "req-2"))
	assert.Equal(t, 0, rec.Body.Len())
}

func TestEncodeInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, EncodeInternalError(rec, "req-3"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":500,"code":"internal_server_error","message":"internal server error","error_id":"req-3"}`,
		rec.Body.String())
}
