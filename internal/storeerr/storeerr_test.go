package storeerr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("pq: permission denied for table bookings")
	err := Wrap(CategoryPermissionDenied, cause)

	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, cause, pkgerrors.Cause(err))
	assert.Equal(t, CategoryPermissionDenied, CategoryOf(fmt.Errorf("list: %w", err)))
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(CategoryUnavailable, nil))
}

func TestCategoryOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, CategoryUnknown},
		{"plain", errors.New("boom"), CategoryUnknown},
		{"sentinel", fmt.Errorf("get salon: %w", ErrNotFound), CategoryNotFound},
		{"unauthenticated", ErrUnauthenticated, CategoryUnauthenticated},
		{"deadline", context.DeadlineExceeded, CategoryUnavailable},
		{"network", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, CategoryUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CategoryOf(tc.err))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(Wrap(CategoryNotFound, errors.New("record not found"))))
	assert.False(t, IsNotFound(errors.New("record not found")))
}

func TestFromPostgres(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Category
	}{
		{"insufficient privilege", &pgconn.PgError{Code: "42501"}, CategoryPermissionDenied},
		{"bad password", &pgconn.PgError{Code: "28P01"}, CategoryUnauthenticated},
		{"connection failure", &pgconn.PgError{Code: "08006"}, CategoryUnavailable},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, CategoryUnavailable},
		{"unique violation", &pgconn.PgError{Code: "23505"}, CategoryAlreadyExists},
		{"check violation", &pgconn.PgError{Code: "23514"}, CategoryUnknown},
		{"plain", errors.New("boom"), CategoryUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := FromPostgres(tc.err)
			assert.Equal(t, tc.want, CategoryOf(err))
			assert.ErrorIs(t, err, tc.err)
		})
	}

	assert.NoError(t, FromPostgres(nil))
}
