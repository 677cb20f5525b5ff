package storage

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

//  P0002	no_data_found
// 42501	insufficient_privilege
// 23505	unique_violation

const (
	AUTH_CODE          = "42501"
	RESOURCE_CODE      = "P0002"
	INCONSISTENCY_CODE = "23503"
	DUPLICATE_CODE     = "23505"
)

// FindCodeInPSQLException returns the postgres error code, empty if error does not come from postgres
func FindCodeInPSQLException(sourceError error) string {
	var pgErr *pgconn.PgError
	var result string
	if errors.As(sourceError, &pgErr) {
		result = pgErr.Code
	}

	return result
}

// ErrMissingBaseURI is raised when serializing with no base uri
var ErrMissingBaseURI = errors.New("serialization needs a non empty base uri")

// ErrTableNotFound is raised when loading a table that was not saved
var ErrTableNotFound = errors.New("table not found")

// UnknownFormatError is raised when no reader or writer matches a format
type UnknownFormatError struct {
	// Format is the requested format
	Format string
}

// Error to implement error interface
func (e UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown format %q", e.Format)
}
