package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error sentinel values
var (
	ErrBadRequest   = errors.New("malformed request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("operation not allowed")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource conflict")
	ErrInternal     = errors.New("internal server error")
)

type ApiErr struct {
	StatusCode int
	err        error
	Details    string // Additional details about the error
	Cause      error  // The underlying cause of the error
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	return e.err.Error()
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

func newApiErr(status int, sentinel error, message string) *ApiErr {
	return &ApiErr{
		StatusCode: status,
		err:        fmt.Errorf("%w: %s", sentinel, message),
		Details:    message,
	}
}

// Constructors covering the full domain taxonomy. Services raise these;
// handlers only translate them into the response envelope.

func NewBadRequestError(message string) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrBadRequest, message)
}

func NewUnauthorizedError(message string) *ApiErr {
	return newApiErr(http.StatusUnauthorized, ErrUnauthorized, message)
}

func NewForbiddenError(message string) *ApiErr {
	return newApiErr(http.StatusForbidden, ErrForbidden, message)
}

func NewNotFoundError(message string) *ApiErr {
	return newApiErr(http.StatusNotFound, ErrNotFound, message)
}

func NewConflictError(message string) *ApiErr {
	return newApiErr(http.StatusConflict, ErrConflict, message)
}

func NewInternalError(message string) *ApiErr {
	return newApiErr(http.StatusInternalServerError, ErrInternal, message)
}

// NewDatabaseError wraps an unexpected store failure with the operation and
// entity that triggered it. It surfaces as a 500.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        fmt.Errorf("%w: failed to %s %s", ErrInternal, operation, entity),
		Details:    fmt.Sprintf("failed to %s %s", operation, entity),
		Cause:      cause,
	}
}

func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
