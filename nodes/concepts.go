package nodes

import "errors"

// DomainConceptSet is a closed vocabulary of terms used as transformation operands, for instance devices.
// Unlike qualifications, concept sets are not part of the grammar order
type DomainConceptSet struct {
	// Id is the identifier of the set
	Id string
	// Name of the set
	Name string
	// Description of the set
	Description string
	// Values are the members of the set
	Values []ValidValue
}

// NewDomainConceptSet returns an empty set with a fresh identifier
func NewDomainConceptSet(name, description string) DomainConceptSet {
	return DomainConceptSet{Id: NewId(), Name: name, Description: description}
}

// AddValue appends a member, no duplicate
func (d *DomainConceptSet) AddValue(value, description string) error {
	if d == nil {
		return errors.New("nil domain concept set")
	} else if !IsToken(value) {
		return NewValidationError("values", "%q is not a lowercase token", value)
	} else if _, found := d.Value(value); found {
		return NewValidationError("values", "duplicate value %q", value)
	}

	d.Values = append(d.Values, ValidValue{StringValue: value, VariableDescription: description})
	return nil
}

// Value returns the member matching token, if any
func (d DomainConceptSet) Value(token string) (ValidValue, bool) {
	return findValue(d.Values, token)
}

// Tokens returns the tokens of the members
func (d DomainConceptSet) Tokens() []string {
	return valueTokens(d.Values)
}

// Validate checks name, identifier and members
func (d DomainConceptSet) Validate() error {
	var globalErr error
	if !IsToken(d.Name) {
		globalErr = errors.Join(globalErr, NewValidationError("name", "%q is not a lowercase token", d.Name))
	}

	if !IsIdentifier(d.Id) {
		globalErr = errors.Join(globalErr, NewValidationError("id", "%q is not an identifier", d.Id))
	}

	if len(d.Values) == 0 {
		globalErr = errors.Join(globalErr, NewValidationError("values", "domain concept set %s is empty", d.Name))
	}

	return errors.Join(globalErr, validateValues(d.Values))
}
