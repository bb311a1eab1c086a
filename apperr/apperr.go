package apperr

import (
	"errors"
	"net/http"
)

// Code is a machine-readable error reason sent to clients.
type Code string

const (
	CodeValidation         Code = "validation"
	CodeEmailInvalid       Code = "email_invalid"
	CodeDuplicateEmail     Code = "duplicate_email"
	CodeDuplicateUsername  Code = "duplicate_username"
	CodeNoToken            Code = "no_token"
	CodeTokenMalformed     Code = "token_malformed"
	CodeInvalidSignature   Code = "invalid_signature"
	CodeTokenExpired       Code = "token_expired"
	CodeInvalidCredentials Code = "invalid_credentials"
	CodeUserNotFound       Code = "user_not_found"
	CodeNotFound           Code = "not_found"
	CodeInternal           Code = "internal"
)

// HTTPStatus returns the response status for a code. Auth middleware
// failures are always written as 401 by the middleware itself; this
// mapping covers errors surfaced through handlers.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation, CodeEmailInvalid, CodeDuplicateEmail, CodeDuplicateUsername,
		CodeInvalidCredentials, CodeUserNotFound:
		return http.StatusBadRequest
	case CodeNoToken, CodeTokenMalformed, CodeInvalidSignature, CodeTokenExpired:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a code, a user-facing message and, for validation
// failures, the list of offending fields. Internal causes are wrapped
// and never serialized.
type Error struct {
	Code    Code
	Message string
	Fields  []string
	Cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

// Is matches by code so services can test errors.Is against sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Validation builds a validation error naming every offending field.
func Validation(message string, fields ...string) *Error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

// Internal wraps a store or crypto failure behind a generic message so
// no driver detail reaches the client.
func Internal(cause error) *Error {
	return &Error{Code: CodeInternal, Message: "internal server error", Cause: cause}
}

// CodeOf extracts the code from an error chain, defaulting to internal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// FieldsOf returns the offending fields of a validation error, if any.
func FieldsOf(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
