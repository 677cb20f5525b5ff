package nodes

import (
	"errors"
	"regexp"
	"slices"
	"strings"
)

// OperandKind tells what a transformation character stands for
type OperandKind int

const (
	// AnyStandardNameOperand is an operand matching any valid standard name
	AnyStandardNameOperand OperandKind = iota
	// QualificationOperand is an operand matching a valid value of a qualification
	QualificationOperand
	// ConceptSetOperand is an operand matching a member of a domain concept set
	ConceptSetOperand
)

// Operand is what a character is associated with: the sentinel, a qualification or a concept set
type Operand struct {
	// Kind of operand
	Kind OperandKind
	// Ref is the identifier of the qualification or concept set, empty for any standard name
	Ref string
}

// AnyStandardNameRef returns the operand matching any valid standard name
func AnyStandardNameRef() Operand {
	return Operand{Kind: AnyStandardNameOperand}
}

// QualificationRef returns an operand bound to the values of a qualification
func QualificationRef(id string) Operand {
	return Operand{Kind: QualificationOperand, Ref: id}
}

// ConceptSetRef returns an operand bound to the members of a domain concept set
func ConceptSetRef(id string) Operand {
	return Operand{Kind: ConceptSetOperand, Ref: id}
}

// IRI returns the identifier the operand refers to
func (o Operand) IRI() string {
	if o.Kind == AnyStandardNameOperand {
		return ANY_STANDARD_NAME
	}

	return o.Ref
}

// Character is a placeholder in a transformation name
type Character struct {
	// Letter is an uppercase placeholder, for instance X or DEVICE
	Letter string
	// AssociatedWith is the operand the letter stands for
	AssociatedWith Operand
}

// letterPattern matches a placeholder: an uppercase letter, possibly followed by uppercase letters or digits
var letterPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*$`)

// Transformation is an operator template such as derivative_of_X_wrt_Y.
// It builds new names from operands and may change the unit
type Transformation struct {
	// Id is the identifier of the transformation
	Id string
	// Name is the template, placeholders are uppercase chunks between underscores
	Name string
	// Description of the transformation
	Description string
	// AltersUnit is the unit rule, placeholders in brackets, for instance [X]/[Y]
	AltersUnit string
	// Characters are the placeholders, one per letter
	Characters []Character
}

// NewTransformation returns a transformation with a fresh identifier
func NewTransformation(name, description, altersUnit string, characters ...Character) Transformation {
	return Transformation{
		Id:          NewId(),
		Name:        name,
		Description: description,
		AltersUnit:  altersUnit,
		Characters:  append([]Character(nil), characters...),
	}
}

// Character returns the character for a letter, if any
func (t Transformation) Character(letter string) (Character, bool) {
	for _, character := range t.Characters {
		if character.Letter == letter {
			return character, true
		}
	}

	return Character{}, false
}

// Chunks returns the underscore separated parts of the template
func (t Transformation) Chunks() []string {
	return strings.Split(t.Name, "_")
}

// Letters returns the declared letters in order of appearance in the template
func (t Transformation) Letters() []string {
	var result []string
	for _, chunk := range t.Chunks() {
		if _, found := t.Character(chunk); found {
			result = append(result, chunk)
		}
	}

	return result
}

// Validate checks the template against its characters and unit rule
func (t Transformation) Validate() error {
	var globalErr error
	if !IsIdentifier(t.Id) {
		globalErr = errors.Join(globalErr, NewValidationError("id", "%q is not an identifier", t.Id))
	}

	if len(t.Characters) == 0 {
		globalErr = errors.Join(globalErr, NewValidationError("characters", "transformation %s declares no character", t.Name))
	}

	var letters []string
	for _, character := range t.Characters {
		if !letterPattern.MatchString(character.Letter) {
			globalErr = errors.Join(globalErr, NewValidationError("characters", "%q is not an uppercase placeholder", character.Letter))
		} else if slices.Contains(letters, character.Letter) {
			globalErr = errors.Join(globalErr, NewValidationError("characters", "letter %s declared twice", character.Letter))
		}

		if character.AssociatedWith.Kind != AnyStandardNameOperand && !IsIdentifier(character.AssociatedWith.Ref) {
			globalErr = errors.Join(globalErr, NewValidationError("associatedWith", "%q is not an identifier", character.AssociatedWith.Ref))
		}

		letters = append(letters, character.Letter)
	}

	appearing := make([]string, 0, len(letters))
	for _, chunk := range t.Chunks() {
		switch {
		case slices.Contains(letters, chunk):
			if slices.Contains(appearing, chunk) {
				globalErr = errors.Join(globalErr, NewValidationError("name", "letter %s appears twice in %s", chunk, t.Name))
			}

			appearing = append(appearing, chunk)
		case !IsToken(chunk):
			globalErr = errors.Join(globalErr, NewValidationError("name", "%q in %s is neither a declared letter nor a lowercase token", chunk, t.Name))
		}
	}

	for _, letter := range letters {
		if !slices.Contains(appearing, letter) {
			globalErr = errors.Join(globalErr, NewValidationError("characters", "letter %s does not appear in %s", letter, t.Name))
		}
	}

	for _, match := range unitPlaceholder.FindAllStringSubmatch(t.AltersUnit, -1) {
		if !slices.Contains(letters, match[1]) {
			globalErr = errors.Join(globalErr, NewValidationError("altersUnit", "placeholder [%s] is not a declared letter", match[1]))
		}
	}

	return globalErr
}

// unitPlaceholder matches [X] in a unit rule
var unitPlaceholder = regexp.MustCompile(`\[([A-Za-z][A-Za-z0-9]*)\]`)
