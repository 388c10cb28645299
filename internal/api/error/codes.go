package error

import "net/http"

type ErrorCode string

const (
	UnknownError        ErrorCode = "unknown_error"
	InternalServerError ErrorCode = "internal_server_error"
	BadRequest          ErrorCode = "bad_request"
	ValidationFailed    ErrorCode = "validation_failed"
	AlreadyExists       ErrorCode = "already_exists"
	SelfSubscription    ErrorCode = "self_subscription"
	NotFound            ErrorCode = "not_found"
	InvalidCredentials  ErrorCode = "invalid_credentials"
	InvalidAccessToken  ErrorCode = "invalid_access_token"
	ExpiredAccessToken  ErrorCode = "expired_access_token"
	NotAuthenticated    ErrorCode = "not_authenticated"
	PermissionDenied    ErrorCode = "permission_denied"
	WeakPassword        ErrorCode = "weak_password"
	InvalidPassword     ErrorCode = "invalid_password"
	TooManyRequests     ErrorCode = "too_many_requests"
)

var errorCodeToStatusCode = map[ErrorCode]int{
	UnknownError:        0, // No error code - unknown
	InternalServerError: http.StatusInternalServerError,
	BadRequest:          http.StatusBadRequest,
	ValidationFailed:    http.StatusBadRequest,
	AlreadyExists:       http.StatusBadRequest,
	SelfSubscription:    http.StatusBadRequest,
	NotFound:            http.StatusNotFound,
	InvalidCredentials:  http.StatusBadRequest,
	InvalidAccessToken:  http.StatusUnauthorized,
	ExpiredAccessToken:  http.StatusUnauthorized,
	NotAuthenticated:    http.StatusUnauthorized,
	PermissionDenied:    http.StatusForbidden,
	WeakPassword:        http.StatusBadRequest,
	InvalidPassword:     http.StatusBadRequest,
	TooManyRequests:     http.StatusTooManyRequests,
}

func (ec ErrorCode) StatusCode() int {
	return errorCodeToStatusCode[ec]
}

func (ec ErrorCode) String() string {
	return string(ec)
}
