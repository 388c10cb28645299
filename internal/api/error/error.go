// Package error defines the JSON error envelope returned by the API.
package error

import (
	"errors"
	"net/http"

	"github.com/matt-dz/foodgram/internal/domain"
	"github.com/matt-dz/foodgram/internal/json"
)

// Error is the body of every non-2xx JSON response. ErrorID is the
// request id, so a client report can be matched to the server log.
type Error struct {
	Status  int       `json:"status"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	ErrorID string    `json:"error_id"`
}

func (e *Error) Error() string {
	return e.Message
}

func EncodeError(w http.ResponseWriter, code ErrorCode, message, errorID string) error {
	return encode(w, &Error{
		Status:  code.StatusCode(),
		Code:    code,
		Message: message,
		ErrorID: errorID,
	})
}

func EncodeInternalError(w http.ResponseWriter, errorID string) error {
	return EncodeError(w, InternalServerError, "internal server error", errorID)
}

// EncodeDomainError writes the envelope matching a service error. It
// reports false when err is not part of the domain taxonomy; nothing is
// written in that case.
func EncodeDomainError(w http.ResponseWriter, err error, errorID string) bool {
	body := FromDomain(err)
	if body == nil {
		return false
	}
	body.ErrorID = errorID
	_ = encode(w, body)
	return true
}

// FromDomain classifies err, returning nil for unclassified errors.
func FromDomain(err error) *Error {
	var code ErrorCode
	var field string
	var verr *domain.ValidationError

	switch {
	case errors.As(err, &verr):
		code, field = ValidationFailed, verr.Field
	case errors.Is(err, domain.ErrValidationFailed):
		code = ValidationFailed
	case errors.Is(err, domain.ErrSelfSubscription):
		code = SelfSubscription
	case errors.Is(err, domain.ErrAlreadyExists):
		code = AlreadyExists
	case errors.Is(err, domain.ErrNotFound):
		code = NotFound
	case errors.Is(err, domain.ErrUnauthenticated):
		code = NotAuthenticated
	case errors.Is(err, domain.ErrForbidden):
		code = PermissionDenied
	default:
		return nil
	}

	return &Error{
		Status:  code.StatusCode(),
		Code:    code,
		Message: err.Error(),
		Field:   field,
	}
}

func encode(w http.ResponseWriter, body *Error) error {
	return json.WriteJSON(w, body.Status, body)
}
