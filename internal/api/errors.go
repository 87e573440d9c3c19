package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorizes API failures
type ErrorKind string

const (
	// KindNetwork indicates the request never got a response
	KindNetwork ErrorKind = "network"

	// KindUnauthorized indicates a missing or rejected bearer token
	KindUnauthorized ErrorKind = "unauthorized"

	// KindForbidden indicates the user lacks the required role
	KindForbidden ErrorKind = "forbidden"

	// KindNotFound indicates the resource does not exist
	KindNotFound ErrorKind = "not_found"

	// KindValidation indicates the server rejected the input
	KindValidation ErrorKind = "validation"

	// KindServer indicates a 5xx or otherwise unexpected status
	KindServer ErrorKind = "server"

	// KindDecode indicates a response body that could not be parsed
	KindDecode ErrorKind = "decode"

	// KindInternal indicates a client-side failure building the request
	KindInternal ErrorKind = "internal"
)

// Error is returned by every Client method
type Error struct {
	// Kind categorizes the error
	Kind ErrorKind `json:"kind"`

	// Message is the server's detail or a client description
	Message string `json:"message"`

	// Endpoint is the API path that failed
	Endpoint string `json:"endpoint,omitempty"`

	// StatusCode for HTTP-level failures
	StatusCode int `json:"status_code,omitempty"`

	Cause error `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	var parts []string

	if e.Endpoint != "" {
		parts = append(parts, fmt.Sprintf("endpoint=%s", e.Endpoint))
	}

	parts = append(parts, fmt.Sprintf("kind=%s", e.Kind))

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error of the same kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is
var (
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrNetwork      = &Error{Kind: KindNetwork}
)

// NewError creates an API error
func NewError(kind ErrorKind, endpoint, message string) *Error {
	return &Error{Kind: kind, Endpoint: endpoint, Message: message}
}

// NewErrorWithCause creates an API error wrapping cause
func NewErrorWithCause(kind ErrorKind, endpoint, message string, cause error) *Error {
	return &Error{Kind: kind, Endpoint: endpoint, Message: message, Cause: cause}
}

// kindForStatus maps an HTTP status to an error kind
func kindForStatus(status int) ErrorKind {
	switch {
	case status == 401:
		return KindUnauthorized
	case status == 403:
		return KindForbidden
	case status == 404:
		return KindNotFound
	case status == 400 || status == 422:
		return KindValidation
	default:
		return KindServer
	}
}

// IsUnauthorized reports whether err is a rejected credential
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
