// Package errs defines the error kinds surfaced by the ledger.
//
// Every failure returned to a caller wraps exactly one of the sentinels below,
// so the kind survives any amount of fmt.Errorf("%w") wrapping and can be
// recovered with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// ErrNotAMember is returned when the caller is not on a group's roster.
var ErrNotAMember = fmt.Errorf("%w: not a member of this group", ErrForbidden)

// Validation returns an ErrValidation with a formatted detail.
func Validation(format string, args ...any) error {
	return wrap(ErrValidation, format, args...)
}

// NotFound returns an ErrNotFound with a formatted detail.
func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

// Forbidden returns an ErrForbidden with a formatted detail.
func Forbidden(format string, args ...any) error {
	return wrap(ErrForbidden, format, args...)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
