// Package errors defines the sentinel errors shared by the lookup packages and
// maps them onto HTTP status codes for the service layer.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrRead           = errors.New("source read failed")
	ErrParse          = errors.New("source parse failed")
	ErrNotLoaded      = errors.New("dataset not loaded")
	ErrBankNotFound   = errors.New("bank not found")
	ErrBranchNotFound = errors.New("branch not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnavailable    = errors.New("backend unavailable")
	ErrInternal       = errors.New("internal error")
)

// SourceError reports a failure to read or decode one source file. It matches
// both its Kind (ErrRead or ErrParse) and the underlying cause under
// errors.Is.
type SourceError struct {
	Kind error
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind.Error(), e.Path, e.Err)
}

func (e *SourceError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func ReadError(path string, err error) *SourceError {
	return &SourceError{Kind: ErrRead, Path: path, Err: err}
}

func ParseError(path string, err error) *SourceError {
	return &SourceError{Kind: ErrParse, Path: path, Err: err}
}

type AppError struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    message,
		StatusCode: statusCode,
	}
}

func Newf(sentinel error, statusCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
	}
}

func HTTPStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrBankNotFound), errors.Is(err, ErrBranchNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnavailable), errors.Is(err, ErrNotLoaded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
