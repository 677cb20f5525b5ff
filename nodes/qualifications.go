package nodes

import (
	"errors"
	"regexp"
	"slices"
)

// tokenPattern is the pattern of valid values and prepositions: lowercase words joined by underscores
var tokenPattern = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

// IsToken returns true for a non empty lowercase token such as x or due_to
func IsToken(value string) bool {
	return tokenPattern.MatchString(value)
}

// ValidValue is an element of a closed vocabulary: a token and what it means
type ValidValue struct {
	// StringValue is the token appearing in names, for instance x
	StringValue string
	// VariableDescription explains the token, for instance "X component of"
	VariableDescription string
}

// Qualification is a modifier slot: its values may prefix or suffix a standard name
// without changing the unit. Slots are ordered by their before / after links
type Qualification struct {
	// Id is the identifier of the qualification
	Id string
	// Name of the qualification, for instance component
	Name string
	// Description of the qualification
	Description string
	// Preposition, if any, appears between the core name and the value (at, in, due_to)
	Preposition string
	// Before is the identifier of the slot this one precedes (a qualification or ANY_STANDARD_NAME)
	Before string
	// After is the identifier of the slot this one follows (a qualification or ANY_STANDARD_NAME)
	After string
	// ValidValues are the accepted tokens, in declaration order
	ValidValues []ValidValue
	// VectorOnly flags a slot that may only qualify a vector standard name
	VectorOnly bool
}

// NewQualification builds a qualification with a fresh identifier
func NewQualification(name, description string) Qualification {
	return Qualification{
		Id:          NewId(),
		Name:        name,
		Description: description,
	}
}

// SetBefore links current qualification before target (and removes the after link)
func (q *Qualification) SetBefore(target string) error {
	if q == nil {
		return errors.New("nil qualification")
	}

	q.Before = target
	q.After = ""
	return nil
}

// SetAfter links current qualification after target (and removes the before link)
func (q *Qualification) SetAfter(target string) error {
	if q == nil {
		return errors.New("nil qualification")
	}

	q.After = target
	q.Before = ""
	return nil
}

// AddValidValue appends a value, no duplicate
func (q *Qualification) AddValidValue(value, description string) error {
	if q == nil {
		return errors.New("nil qualification")
	} else if !IsToken(value) {
		return NewValidationError("validValues", "%q is not a lowercase token", value)
	} else if _, found := q.Value(value); found {
		return NewValidationError("validValues", "duplicate value %q", value)
	}

	q.ValidValues = append(q.ValidValues, ValidValue{StringValue: value, VariableDescription: description})
	return nil
}

// Value returns the valid value matching token, if any
func (q Qualification) Value(token string) (ValidValue, bool) {
	return findValue(q.ValidValues, token)
}

// Values returns the tokens of the valid values, in declaration order
func (q Qualification) Values() []string {
	return valueTokens(q.ValidValues)
}

// Label is the name as it appears in a rule: the preposition, if any, then the name
func (q Qualification) Label() string {
	if q.Preposition == "" {
		return q.Name
	}

	return q.Preposition + " " + q.Name
}

// Phrase is the label using an underscore, for instance in_medium
func (q Qualification) Phrase() string {
	if q.Preposition == "" {
		return q.Name
	}

	return q.Preposition + "_" + q.Name
}

// ClassIRI returns the class of the qualification
func (q Qualification) ClassIRI() string {
	if q.VectorOnly {
		return CLASS_VECTOR_QUALIFICATION
	}

	return CLASS_QUALIFICATION
}

// Validate checks the structure of the qualification, not its links to other qualifications.
// Exactly one of before and after is expected
func (q Qualification) Validate() error {
	var globalErr error
	if !IsToken(q.Name) {
		globalErr = errors.Join(globalErr, NewValidationError("name", "%q is not a lowercase token", q.Name))
	}

	if !IsIdentifier(q.Id) {
		globalErr = errors.Join(globalErr, NewValidationError("id", "%q is not an identifier", q.Id))
	}

	if q.Preposition != "" && !IsToken(q.Preposition) {
		globalErr = errors.Join(globalErr, NewValidationError("preposition", "%q is not a lowercase token", q.Preposition))
	}

	switch {
	case q.Before == "" && q.After == "":
		globalErr = errors.Join(globalErr, NewValidationError("before", "qualification %s sets neither before nor after", q.Name))
	case q.Before != "" && q.After != "":
		globalErr = errors.Join(globalErr, NewValidationError("before", "qualification %s sets both before and after", q.Name))
	case q.Before != "" && !IsIdentifier(q.Before):
		globalErr = errors.Join(globalErr, NewValidationError("before", "%q is neither an identifier nor the any standard name sentinel", q.Before))
	case q.After != "" && !IsIdentifier(q.After):
		globalErr = errors.Join(globalErr, NewValidationError("after", "%q is neither an identifier nor the any standard name sentinel", q.After))
	}

	if err := validateValues(q.ValidValues); err != nil {
		globalErr = errors.Join(globalErr, err)
	}

	return globalErr
}

// validateValues checks values are unique non empty tokens
func validateValues(values []ValidValue) error {
	var globalErr error
	seen := make([]string, 0, len(values))
	for _, value := range values {
		if !IsToken(value.StringValue) {
			globalErr = errors.Join(globalErr, NewValidationError("validValues", "%q is not a lowercase token", value.StringValue))
		} else if slices.Contains(seen, value.StringValue) {
			globalErr = errors.Join(globalErr, NewValidationError("validValues", "duplicate value %q", value.StringValue))
		}

		seen = append(seen, value.StringValue)
	}

	return globalErr
}

func findValue(values []ValidValue, token string) (ValidValue, bool) {
	for _, value := range values {
		if value.StringValue == token {
			return value, true
		}
	}

	return ValidValue{}, false
}

func valueTokens(values []ValidValue) []string {
	result := make([]string, len(values))
	for index, value := range values {
		result[index] = value.StringValue
	}

	return result
}
