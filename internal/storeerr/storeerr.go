// Package storeerr classifies document-store failures into the few
// categories callers act on, while keeping the driver error as the cause.
package storeerr

import (
	"context"
	"errors"
	"net"
)

var (
	ErrNotFound         = errors.New("document not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnavailable      = errors.New("store unavailable")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrAlreadyExists    = errors.New("document already exists")
)

type Category int

const (
	CategoryUnknown Category = iota
	CategoryNotFound
	CategoryPermissionDenied
	CategoryUnavailable
	CategoryUnauthenticated
	CategoryAlreadyExists
)

func (c Category) String() string {
	switch c {
	case CategoryNotFound:
		return "not_found"
	case CategoryPermissionDenied:
		return "permission_denied"
	case CategoryUnavailable:
		return "unavailable"
	case CategoryUnauthenticated:
		return "unauthenticated"
	case CategoryAlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

func (c Category) sentinel() error {
	switch c {
	case CategoryNotFound:
		return ErrNotFound
	case CategoryPermissionDenied:
		return ErrPermissionDenied
	case CategoryUnavailable:
		return ErrUnavailable
	case CategoryUnauthenticated:
		return ErrUnauthenticated
	case CategoryAlreadyExists:
		return ErrAlreadyExists
	default:
		return nil
	}
}

// Error tags a driver error with a category. errors.Is matches both the
// category sentinel and anything in the driver error chain.
type Error struct {
	Category Category
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Category.String()
	}
	return e.Category.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Cause satisfies github.com/pkg/errors.
func (e *Error) Cause() error { return e.Err }

func (e *Error) Is(target error) bool {
	s := e.Category.sentinel()
	return s != nil && target == s
}

// Wrap tags err with c. A nil err stays nil.
func Wrap(c Category, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Category: c, Err: err}
}

// CategoryOf reports the category of err. Context deadlines and network
// failures count as unavailable even when no backend tagged them.
func CategoryOf(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	var se *Error
	if errors.As(err, &se) {
		return se.Category
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return CategoryNotFound
	case errors.Is(err, ErrPermissionDenied):
		return CategoryPermissionDenied
	case errors.Is(err, ErrUnauthenticated):
		return CategoryUnauthenticated
	case errors.Is(err, ErrAlreadyExists):
		return CategoryAlreadyExists
	case errors.Is(err, ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return CategoryUnavailable
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return CategoryUnavailable
	}

	return CategoryUnknown
}

func IsNotFound(err error) bool {
	return CategoryOf(err) == CategoryNotFound
}

func IsAlreadyExists(err error) bool {
	return CategoryOf(err) == CategoryAlreadyExists
}
