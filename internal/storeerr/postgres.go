package storeerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// FromPostgres tags a pgx error. SQLSTATE class 28 is an authentication
// failure, 42501 an authorization failure and 23505 a duplicate key.
// Connection and admin shutdown errors mean the server is unavailable.
func FromPostgres(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch class := sqlClass(pgErr.Code); {
		case pgErr.Code == "23505":
			return Wrap(CategoryAlreadyExists, err)
		case pgErr.Code == "42501":
			return Wrap(CategoryPermissionDenied, err)
		case class == "28":
			return Wrap(CategoryUnauthenticated, err)
		case class == "08", pgErr.Code == "57P01", pgErr.Code == "57P03":
			return Wrap(CategoryUnavailable, err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		if inner := FromPostgres(errors.Unwrap(connErr)); CategoryOf(inner) != CategoryUnknown {
			return Wrap(CategoryOf(inner), err)
		}
		return Wrap(CategoryUnavailable, err)
	}

	if pgconn.Timeout(err) {
		return Wrap(CategoryUnavailable, err)
	}

	return err
}

func sqlClass(code string) string {
	if len(code) < 2 {
		return ""
	}
	return code[:2]
}
