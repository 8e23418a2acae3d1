package failure

import (
	"errors"
	"net/http"
)

// Failure is an error that carries the HTTP status it should be answered with.
// Message is shown to the client unless Code is 500.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const internalMessage = "internal server error"

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

// Is matches any Failure with the same code, so callers can test
// errors.Is(err, &Failure{Code: http.StatusConflict}).
func (e *Failure) Is(target error) bool {
	var other *Failure
	if !errors.As(target, &other) {
		return false
	}

	return other.Code == e.Code
}

func New(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest turns a validation or parse error into a 400. A nil error stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

// Conflict is returned for overlapping reservations, duplicate names and
// rooms that are busy being booked by another request.
func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

func ServiceUnavailable(msg string) error {
	return New(http.StatusServiceUnavailable, msg)
}

// GetCode returns the status of the first Failure in the chain, or 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetMessage returns the client-facing message of an error. Errors that are
// not a Failure, and internal failures, are reported generically.
func GetMessage(err error) string {
	var fail *Failure
	if errors.As(err, &fail) && fail.Code != http.StatusInternalServerError {
		return fail.Message
	}

	return internalMessage
}
