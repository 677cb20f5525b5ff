package nodes

import (
	"errors"

	"github.com/zefrenchwan/standardnames.git/names"
)

// Kind tags a standard name as scalar, vector, or neither
type Kind int

const (
	// Untagged is a standard name with no scalar or vector information.
	// Derived standard names are untagged
	Untagged Kind = iota
	// Scalar is a scalar quantity, it may not be qualified by a vector only qualification
	Scalar
	// Vector is a vector quantity
	Vector
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Vector:
		return "vector"
	default:
		return "untagged"
	}
}

// ClassIRI returns the class of a standard name of that kind
func (k Kind) ClassIRI() string {
	switch k {
	case Scalar:
		return CLASS_SCALAR_STANDARD_NAME
	case Vector:
		return CLASS_VECTOR_STANDARD_NAME
	default:
		return CLASS_STANDARD_NAME
	}
}

// KindFromClass returns the kind for a class identifier
func KindFromClass(class string) (Kind, bool) {
	switch class {
	case CLASS_SCALAR_STANDARD_NAME:
		return Scalar, true
	case CLASS_VECTOR_STANDARD_NAME:
		return Vector, true
	case CLASS_STANDARD_NAME:
		return Untagged, true
	default:
		return Untagged, false
	}
}

// StandardName is a named scientific quantity
type StandardName struct {
	// Id is the identifier of the standard name
	Id string
	// Name is the lexical name, for instance x_velocity
	Name string
	// Unit is a unit identifier, or the raw unit string if UnitWarning
	Unit string
	// UnitWarning is true when Unit could not be resolved to an identifier
	UnitWarning bool
	// Description is the free text description
	Description string
	// Table is the identifier of the owning table, if any
	Table string
	// Alias points to the identifier of another standard name, if any
	Alias string
	// Kind is the scalar / vector tag
	Kind Kind
}

// NewStandardName builds a standard name with a fresh identifier.
// It returns an error if name is not lexically valid
func NewStandardName(name, unit, description string, kind Kind) (StandardName, error) {
	return NewStandardNameWithId(NewId(), name, unit, description, kind)
}

// NewStandardNameWithId builds a standard name with a given identifier
func NewStandardNameWithId(id, name, unit, description string, kind Kind) (StandardName, error) {
	result := StandardName{
		Id:          id,
		Name:        name,
		Unit:        unit,
		Description: description,
		Kind:        kind,
	}

	return result, result.Validate()
}

// Validate checks the lexical name and the identifiers
func (s StandardName) Validate() error {
	var globalErr error
	if err := names.MustBeLexical(s.Name); err != nil {
		globalErr = errors.Join(globalErr, err)
	}

	if !IsIdentifier(s.Id) {
		globalErr = errors.Join(globalErr, NewValidationError("id", "%q is not an identifier", s.Id))
	}

	if s.Alias != "" && !IsIdentifier(s.Alias) {
		globalErr = errors.Join(globalErr, NewValidationError("alias", "%q is not an identifier", s.Alias))
	}

	return globalErr
}

// IsVector returns true for a vector standard name
func (s StandardName) IsVector() bool {
	return s.Kind == Vector
}

// IsAlias returns true if standard name points to another one
func (s StandardName) IsAlias() bool {
	return s.Alias != ""
}
