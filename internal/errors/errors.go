package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies a failure for the boundary layer.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindAuth         Kind = "AUTH"
	KindPermission   Kind = "PERMISSION"
	KindNotFound     Kind = "NOT_FOUND"
	KindDuplicate    Kind = "DUPLICATE"
	KindSelfDeletion Kind = "SELF_DELETION"
	KindInternal     Kind = "INTERNAL"
)

// Error codes used in JSON bodies
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeAlreadyExists      = "ALREADY_EXISTS"
	ErrCodeInvalidOperation   = "INVALID_OPERATION"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Error is a domain failure carrying a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error   { return newError(KindValidation, message) }
func Auth(message string) *Error         { return newError(KindAuth, message) }
func Permission(message string) *Error   { return newError(KindPermission, message) }
func NotFound(message string) *Error     { return newError(KindNotFound, message) }
func Duplicate(message string) *Error    { return newError(KindDuplicate, message) }
func SelfDeletion(message string) *Error { return newError(KindSelfDeletion, message) }

// Internal wraps an unexpected store or runtime failure.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns a message safe to show to the user.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "Internal server error"
}

// HTTPStatus maps an error to the status code used for JSON clients.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindSelfDeletion:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindPermission:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(kind Kind) string {
	switch kind {
	case KindValidation:
		return ErrCodeInvalidInput
	case KindAuth:
		return ErrCodeInvalidCredentials
	case KindPermission:
		return ErrCodeForbidden
	case KindNotFound:
		return ErrCodeNotFound
	case KindDuplicate:
		return ErrCodeAlreadyExists
	case KindSelfDeletion:
		return ErrCodeInvalidOperation
	default:
		return ErrCodeInternalError
	}
}

// APIError represents a standardized API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// FromError converts a domain error into an APIError body.
func FromError(err error) *APIError {
	return NewAPIError(codeFor(KindOf(err)), MessageOf(err))
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.AbortWithStatusJSON(statusCode, err)
}

// Respond sends the JSON error response matching a domain error.
func Respond(c *gin.Context, err error) {
	RespondWithError(c, HTTPStatus(err), FromError(err))
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// TooManyRequests sends a 429 response
func TooManyRequests(c *gin.Context) {
	RespondWithError(c, http.StatusTooManyRequests, NewAPIError(ErrCodeTooManyRequests, "Too many attempts, try again later"))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}
