// Package errors defines typed errors with categories for user-friendly reporting.
// Identity API and credential storage failures are wrapped in an *E so callers
// can branch on the Kind while still reaching the underlying error through
// errors.Is / errors.As.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// TransportFailed indicates the request never produced an HTTP response.
	TransportFailed Kind = "transport_failed"
	// APIFailed indicates the identity API answered with a non-success status.
	APIFailed Kind = "api_failed"
	// DecodeFailed indicates the identity API answered with an unreadable body.
	DecodeFailed Kind = "decode_failed"
	// Unauthorized indicates rejected credentials.
	Unauthorized Kind = "unauthorized"
	// KeychainUnavailable indicates the OS credential store could not be opened.
	KeychainUnavailable Kind = "keychain_unavailable"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// WithStatus returns an APIFailed error carrying the HTTP status code.
func WithStatus(status int, msg string) *E {
	return &E{Kind: APIFailed, Message: msg, Status: status}
}

// KindOf returns the Kind of the first *E in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
