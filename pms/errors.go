package pms

import (
	"errors"
	"fmt"
)

// BadRequestError is returned for any response whose status is not 200 or
// 201 on a post-handshake call. The URL it carries is already redacted.
type BadRequestError struct {
	// StatusCode is the HTTP status returned by the server.
	StatusCode int

	// Reason is the server's status reason phrase, e.g. "Not Found".
	Reason string

	// URL is the request URL with the auth token redacted.
	URL string
}

// Error implements the error interface.
func (e *BadRequestError) Error() string {
	return fmt.Sprintf("(%d) %s %s", e.StatusCode, e.Reason, e.URL)
}

// ConnectionError is returned when the initial handshake fails for any
// reason: unreachable host, timeout, bad status, or a malformed response.
// Callers need "can't reach server", not transport internals; use Unwrap
// to inspect the underlying cause.
type ConnectionError struct {
	// BaseURL is the server address the connection was attempted against.
	BaseURL string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return "no server found at " + e.BaseURL
}

// Unwrap returns the underlying failure.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned when a client-side lookup, such as a client by
// name or a playlist by title, matches nothing.
type NotFoundError struct {
	// Kind names the kind of resource looked up, e.g. "client".
	Kind string

	// Key is the search key that matched nothing.
	Key string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown %s: %s", e.Kind, e.Key)
}

// ParseError is returned when a response body is not well-formed XML.
// It is deliberately distinct from BadRequestError: the server answered,
// but the answer could not be understood.
type ParseError struct {
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return "parse response: " + e.Err.Error()
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsBadRequest returns true if the error is a BadRequestError.
func IsBadRequest(err error) bool {
	var e *BadRequestError
	return errors.As(err, &e)
}

// IsConnectionError returns true if the error is a ConnectionError.
func IsConnectionError(err error) bool {
	var e *ConnectionError
	return errors.As(err, &e)
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsParseError returns true if the error is a ParseError.
func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}
