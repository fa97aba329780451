package application

import (
	"context"
	"errors"

	"github.com/sony/gobreaker"

	repo "github.com/oksasatya/vidtube/internal/domain/repository"
)

// Error kinds. Every error returned by a service matches exactly one of these
// through errors.Is.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConflict         = errors.New("conflict")
	ErrUpload           = errors.New("upload failed")
	ErrStorage          = errors.New("storage failure")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Error carries a kind, a user-facing message and the underlying cause.
type Error struct {
	Kind      error
	Message   string
	Cause     error
	Retryable bool
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Cause }

func invalidArg(msg string) error { return &Error{Kind: ErrInvalidArgument, Message: msg} }

func notFound(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }

func forbidden(msg string) error { return &Error{Kind: ErrPermissionDenied, Message: msg} }

func conflict(msg string, cause error) error {
	return &Error{Kind: ErrConflict, Message: msg, Cause: rootCause(cause)}
}

func storageErr(msg string, cause error) error {
	cause = rootCause(cause)
	return &Error{Kind: ErrStorage, Message: msg, Cause: cause, Retryable: retryable(cause)}
}

func uploadErr(msg string, cause error) error {
	cause = rootCause(cause)
	return &Error{Kind: ErrUpload, Message: msg, Cause: cause, Retryable: retryable(cause)}
}

// rootCause unwraps a service error so a re-wrapped error keeps a single kind.
func rootCause(err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Cause
	}
	return err
}

func retryable(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests)
}

// fromRepo maps repository sentinels onto service error kinds for kind.
func fromRepo(err error, kind string) error {
	var appErr *Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, repo.ErrNotFound):
		return notFound(kind + " not found")
	case errors.Is(err, repo.ErrConflict):
		return conflict(kind+" already exists", err)
	case errors.Is(err, repo.ErrInvalid):
		return &Error{Kind: ErrInvalidArgument, Message: "invalid " + kind, Cause: err}
	default:
		return storageErr("failed to access "+kind, err)
	}
}

// IsRetryable reports whether err was caused by a timeout or an open breaker.
func IsRetryable(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Retryable
}

// Message returns the user-facing message of err.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
