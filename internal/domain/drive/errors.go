package drive

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a named resource as absent.
var ErrNotFound = errors.New("not found")

// NotFoundError carries a condition-specific message while still
// matching ErrNotFound through errors.Is.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// PermissionDeniedError signals a write attempted without an adequate
// grant. Message is human-actionable: it names the identity the target
// folder must be shared with and the required access level.
type PermissionDeniedError struct {
	Message string
}

func (e *PermissionDeniedError) Error() string { return e.Message }

// ProviderError wraps any other remote-API failure, preserving the
// original message.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *ProviderError) Unwrap() error { return e.Err }
