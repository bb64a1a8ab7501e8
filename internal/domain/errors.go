package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is() to check against these.
var (
	// ErrUnauthorized is wrapped by every AuthError
	ErrUnauthorized = errors.New("commerce backend unauthorized")

	// ErrBackend is wrapped by every BackendError
	ErrBackend = errors.New("commerce backend error")

	// ErrInvalidRequest indicates an invalid request was made by the caller
	ErrInvalidRequest = errors.New("invalid request")
)

// AuthError is returned when the credential cannot be refreshed or a request
// is still unauthorized after one forced refresh.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Reason, e.Err)
	}
	return "auth: " + e.Reason
}

// Unwrap exposes the cause and ErrUnauthorized to errors.Is.
func (e *AuthError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnauthorized}
	}
	return []error{ErrUnauthorized, e.Err}
}

// BackendErrorKind classifies a failed backend call
type BackendErrorKind string

const (
	// BackendErrorHTTPStatus - backend answered with an unexpected status
	BackendErrorHTTPStatus BackendErrorKind = "http_status"
	// BackendErrorMalformedResponse - 2xx with a body we could not use
	BackendErrorMalformedResponse BackendErrorKind = "malformed_response"
	// BackendErrorTimeout - request exceeded its deadline
	BackendErrorTimeout BackendErrorKind = "timeout"
	// BackendErrorUnreachable - transport failure other than a timeout
	BackendErrorUnreachable BackendErrorKind = "unreachable"
)

// BackendError describes a failed commerce backend call.
type BackendError struct {
	Kind       BackendErrorKind
	Op         string
	StatusCode int
	Detail     string
	Err        error
}

func (e *BackendError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap exposes the cause and ErrBackend to errors.Is.
func (e *BackendError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrBackend}
	}
	return []error{ErrBackend, e.Err}
}

// NewHTTPStatusError creates a BackendError for an unexpected status code
func NewHTTPStatusError(op string, statusCode int, detail string) *BackendError {
	return &BackendError{Kind: BackendErrorHTTPStatus, Op: op, StatusCode: statusCode, Detail: detail}
}

// NewMalformedResponseError creates a BackendError for an undecodable 2xx body
func NewMalformedResponseError(op string, err error) *BackendError {
	return &BackendError{Kind: BackendErrorMalformedResponse, Op: op, Err: err}
}

// IsBackendErrorKind reports whether err is a BackendError of the given kind.
func IsBackendErrorKind(err error, kind BackendErrorKind) bool {
	var be *BackendError
	return errors.As(err, &be) && be.Kind == kind
}
