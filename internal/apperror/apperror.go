// Package apperror defines the typed error carried through a request and the
// translation of any error into the uniform failure response.
package apperror

import (
	"errors"
	"net/http"
	"strings"
)

// Kind classifies an application error.
type Kind string

const (
	KindAuthorization Kind = "authorization"
	KindValidation    Kind = "validation"
	KindProvider      Kind = "provider"
	KindNotFound      Kind = "not_found"
	KindInternal      Kind = "internal"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"

	// DefaultStatusCode and DefaultMessage are used for every error that is not an *Error.
	DefaultStatusCode = http.StatusInternalServerError
	DefaultMessage    = "Something went wrong."

	PermissionDeniedMessage = "You don't have permission to perform this operation. Kindly contact your administrator for more details."
	NotFoundMessage         = "We couldn't find the requested url."
)

// Error is an error with an HTTP status code and a message that is safe to show
// to the caller. The wrapped cause is only ever logged.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, statusCode int, message string) *Error {
	return &Error{Kind: kind, StatusCode: statusCode, Message: message}
}

// Wrap creates an error of the given kind that keeps cause for logging.
func Wrap(kind Kind, statusCode int, message string, cause error) *Error {
	return &Error{Kind: kind, StatusCode: statusCode, Message: message, Err: cause}
}

// PermissionDenied is returned when the secret header does not match. The status
// is 400, not 401/403, for compatibility with existing callers.
func PermissionDenied() *Error {
	return New(KindAuthorization, http.StatusBadRequest, PermissionDeniedMessage)
}

func Validation(message string) *Error {
	return New(KindValidation, http.StatusBadRequest, message)
}

func Provider(statusCode int, message string, cause error) *Error {
	return Wrap(KindProvider, statusCode, message, cause)
}

func NotFound() *Error {
	return New(KindNotFound, http.StatusNotFound, NotFoundMessage)
}

// Response is the translated form of an error.
type Response struct {
	StatusCode int    `json:"-"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

// Process translates err into a Response. It never panics: anything that is not
// an *Error, including nil, becomes the default 500 response.
func Process(err error) Response {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr == nil {
		return fallback()
	}

	status := appErr.StatusCode
	if status < http.StatusBadRequest || status > 599 {
		status = DefaultStatusCode
	}

	message := strings.TrimSpace(appErr.Message)
	if message == "" {
		message = DefaultMessage
	}

	return Response{
		StatusCode: status,
		Status:     StatusFailure,
		Message:    message,
	}
}

// KindOf reports the kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) && appErr != nil && appErr.Kind != "" {
		return appErr.Kind
	}
	return KindInternal
}

func fallback() Response {
	return Response{
		StatusCode: DefaultStatusCode,
		Status:     StatusFailure,
		Message:    DefaultMessage,
	}
}
