package errors

import (
	"errors"
	"fmt"
)

// Error taxonomy for the auth core. Every failure a request can end with
// maps to exactly one of these sentinels; the HTTP layer translates them
// to status codes.
var (
	// ErrInvalidCredentials covers both unknown email and password mismatch
	// at login. The two causes are never distinguished to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailAlreadyInUse is returned when registering an email that
	// already has an account.
	ErrEmailAlreadyInUse = errors.New("email already in use")

	// ErrUnauthenticated covers missing, malformed, badly signed or expired
	// tokens, and refresh tokens whose session is no longer live
	// (revoked, rotated away, or expired). Indistinguishable by contract.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrTenantUnresolved means no tenant slug could be derived from the
	// request signals.
	ErrTenantUnresolved = errors.New("tenant not resolved")

	// ErrForbidden means the caller's role ordinal is below every required
	// role for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrTransient means the revocation store was unreachable or timed out.
	// Callers must retry; it must never be read as "session invalid".
	ErrTransient = errors.New("transient store error")

	// ErrNotFound is the generic missing-entity error for repositories.
	ErrNotFound = errors.New("not found")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
