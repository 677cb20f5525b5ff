package serving

import (
	"errors"
	"net/http"
	"strings"

	"github.com/zefrenchwan/standardnames.git/names"
	"github.com/zefrenchwan/standardnames.git/nodes"
	"github.com/zefrenchwan/standardnames.git/patterns"
	"github.com/zefrenchwan/standardnames.git/storage"
	"github.com/zefrenchwan/standardnames.git/tables"
	"github.com/zefrenchwan/standardnames.git/units"
)

// ServiceHttpError is a custom error with an http code to return
type ServiceHttpError struct {
	httpCode int
	message  string
}

// Error to implement error interface
func (e ServiceHttpError) Error() string {
	return e.message
}

// HttpCode returns http code for response
func (e ServiceHttpError) HttpCode() int {
	return e.httpCode
}

// BuildApiErrorFromStorageError maps a postgres error to its http counterpart
func BuildApiErrorFromStorageError(sourceError error) error {
	if sourceError == nil {
		return sourceError
	}

	message := strings.Trim(sourceError.Error(), " ")

	if errors.Is(sourceError, storage.ErrTableNotFound) {
		return NewServiceNotFoundError(message)
	}

	switch storage.FindCodeInPSQLException(sourceError) {
	case storage.INCONSISTENCY_CODE, storage.DUPLICATE_CODE:
		return NewServiceForbiddenError(message)
	case storage.AUTH_CODE:
		return NewServiceUnauthorizedError(message)
	case storage.RESOURCE_CODE:
		return NewServiceNotFoundError(message)
	default:
		return NewServiceInternalServerError(message)
	}
}

// BuildApiErrorFromTableError maps an error raised when reading or changing a table
func BuildApiErrorFromTableError(sourceError error) error {
	if sourceError == nil {
		return sourceError
	}

	message := strings.Trim(sourceError.Error(), " ")

	var unknownFormat storage.UnknownFormatError
	var lexical names.LexicalError
	var duplicate tables.DuplicateStandardNameError
	var validation nodes.ValidationError
	var mismatch tables.UnitMismatchError
	var unparseable units.UnparseableUnitError
	var unorderable patterns.UnorderableQualificationsError

	switch {
	case errors.As(sourceError, &unknownFormat), errors.As(sourceError, &lexical):
		return NewServiceHttpClientError(message)
	case errors.As(sourceError, &duplicate):
		return NewServiceConflictError(message)
	case errors.As(sourceError, &validation), errors.As(sourceError, &mismatch),
		errors.As(sourceError, &unparseable), errors.As(sourceError, &unorderable):
		return NewServiceUnprocessableEntityError(message)
	default:
		return BuildApiErrorFromStorageError(sourceError)
	}
}

// BuildApiErrorFromReadError maps an error raised when reading a table from a request body.
// Unclassified errors come from the document, not from the server
func BuildApiErrorFromReadError(sourceError error) error {
	mapped := BuildApiErrorFromTableError(sourceError)
	if apiError, ok := mapped.(ServiceHttpError); ok && apiError.HttpCode() == http.StatusInternalServerError {
		return NewServiceUnprocessableEntityError(apiError.Error())
	}

	return mapped
}

// NewServiceHttpClientError returns a 400 error with a specific message
func NewServiceHttpClientError(message string) ServiceHttpError {
	return ServiceHttpError{
		httpCode: http.StatusBadRequest,
		message:  message,
	}
}

// NewServiceUnauthorizedError returns a new 401 (unauthorized) error
func NewServiceUnauthorizedError(message string) ServiceHttpError {
	return ServiceHttpError{
		httpCode: http.StatusUnauthorized,
		message:  message,
	}
}

// NewServiceForbiddenError returns a new 403 (forbidden) error
func NewServiceForbiddenError(message string) ServiceHttpError {
	return ServiceHttpError{
		httpCode: http.StatusForbidden,
		message:  message,
	}
}

// NewServiceConflictError returns a 409 error, when adding what already exists
func NewServiceConflictError(message string) ServiceHttpError {
	return ServiceHttpError{
		httpCode: http.StatusConflict,
		message:  message,
	}
}

// NewServiceUnprocessableEntityError returns a 422 error (unprocessable)
func NewServiceUnprocessableEntityError(message string) ServiceHttpError {
	return ServiceHttpError{
		httpCode: http.StatusUnprocessableEntity,
		message:  message,
	}
}

// NewServiceNotFoundError returns a 404 error with a specific message
func NewServiceNotFoundError(message string) ServiceHttpError {
	return ServiceHttpError{
		httpCode: http.StatusNotFound,
		message:  message,
	}
}

// NewServiceInternalServerError returns a 500 error with a specific message
func NewServiceInternalServerError(message string) ServiceHttpError {
	return ServiceHttpError{
		httpCode: http.StatusInternalServerError,
		message:  message,
	}
}
