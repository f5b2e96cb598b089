package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession is returned by a session store when no session exists
	// for the given ID (or the cookie carried a stale one).
	ErrNoSession = errors.New("no active session")

	// ErrLoginInFlight signals that a login attempt for the same
	// identifier is still pending (duplicate submission).
	ErrLoginInFlight = errors.New("login already in progress")

	// ErrAdminOnly is returned by admin-gated operations when the caller
	// holds an ordinary member session.
	ErrAdminOnly = errors.New("admin role required")
)

// ErrorKind classifies authentication failures along the boundary to the
// upstream member API.
type ErrorKind int

const (
	// KindInvalidInput: rejected locally, before any network call.
	KindInvalidInput ErrorKind = iota
	// KindRejected: the upstream explicitly refused (bad credentials,
	// duplicate registration).
	KindRejected
	// KindUnreachable: transport failure or timeout.
	KindUnreachable
	// KindUnauthenticated: 401 on an authenticated call; the session is
	// stale and must be cleared.
	KindUnauthenticated
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindRejected:
		return "rejected"
	case KindUnreachable:
		return "unreachable"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// AuthError is the uniform error shape surfaced by the auth gateway.
// Callers branch on Kind instead of probing response bodies.
type AuthError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return e.Kind.String()
}

func (e *AuthError) Unwrap() error { return e.Err }

// NewAuthError builds an AuthError with a human-readable message.
func NewAuthError(kind ErrorKind, message string, err error) *AuthError {
	return &AuthError{Kind: kind, Message: message, Err: err}
}

// AuthErrorKind extracts the kind from err, reporting ok=false when err is
// not an AuthError.
func AuthErrorKind(err error) (ErrorKind, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return 0, false
}

// IsUnauthenticated reports whether err carries a stale-session 401.
func IsUnauthenticated(err error) bool {
	k, ok := AuthErrorKind(err)
	return ok && k == KindUnauthenticated
}
