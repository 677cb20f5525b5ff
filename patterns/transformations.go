package patterns

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/zefrenchwan/standardnames.git/nodes"
)

// OPERAND_EXPRESSION is what a character letter matches in a candidate
const OPERAND_EXPRESSION = `([a-zA-Z_]+)`

// BoundOperand is a captured operand and what it resolved to
type BoundOperand struct {
	// Character is the placeholder
	Character nodes.Character
	// Value is the captured string
	Value string
	// StandardName is set when the character is bound to any standard name
	StandardName *nodes.StandardName
	// ValidValue is set when the character is bound to a qualification or a concept set
	ValidValue *nodes.ValidValue
	// Source is the name of the qualification or concept set the value belongs to
	Source string
}

// Description returns what the operand means
func (b BoundOperand) Description() string {
	if b.StandardName != nil {
		return b.StandardName.Description
	} else if b.ValidValue != nil {
		return b.ValidValue.VariableDescription
	}

	return ""
}

// TransformationMatch is a full match of a candidate against a template
type TransformationMatch struct {
	// Transformation is the matched template
	Transformation nodes.Transformation
	// Operands are the bound characters, in order of appearance in the template
	Operands []BoundOperand
}

// Bindings returns the unit of each operand bound to a standard name, per letter
func (m TransformationMatch) Bindings() map[string]string {
	result := make(map[string]string)
	for _, operand := range m.Operands {
		if operand.StandardName != nil {
			result[operand.Character.Letter] = operand.StandardName.Unit
		}
	}

	return result
}

// StandardNameResolver resolves a captured operand as a standard name
type StandardNameResolver func(candidate string) (nodes.StandardName, bool)

// compiledTransformation is a template lowered to a regex
type compiledTransformation struct {
	transformation nodes.Transformation
	expression     *regexp.Regexp
	letters        []string
}

// TransformationRegex lowers a template into an anchored regex.
// Chunks equal to a declared letter become capturing groups, other chunks stay literal
func TransformationRegex(transformation nodes.Transformation) (*regexp.Regexp, []string, error) {
	chunks := transformation.Chunks()
	parts := make([]string, len(chunks))
	var letters []string
	for index, chunk := range chunks {
		if _, found := transformation.Character(chunk); found {
			parts[index] = OPERAND_EXPRESSION
			letters = append(letters, chunk)
		} else {
			parts[index] = regexp.QuoteMeta(chunk)
		}
	}

	if len(letters) == 0 {
		return nil, nil, fmt.Errorf("transformation %s uses no declared letter", transformation.Name)
	}

	expression, err := regexp.Compile("^" + strings.Join(parts, "_") + "$")
	return expression, letters, err
}

// TransformationMatcher tries templates in declaration order
type TransformationMatcher struct {
	compiled []compiledTransformation
}

// NewTransformationMatcher compiles the templates.
// Invalid templates are skipped and reported in the error
func NewTransformationMatcher(transformations []nodes.Transformation) (TransformationMatcher, error) {
	var globalErr error
	result := TransformationMatcher{}
	for _, transformation := range transformations {
		expression, letters, err := TransformationRegex(transformation)
		if err != nil {
			globalErr = errors.Join(globalErr, err)
			continue
		}

		result.compiled = append(result.compiled, compiledTransformation{
			transformation: transformation,
			expression:     expression,
			letters:        letters,
		})
	}

	return result, globalErr
}

// Match returns the first template fully matching candidate.
// Each captured operand must resolve: standard names through resolve,
// qualification and concept set values through grammar
func (m TransformationMatcher) Match(candidate string, grammar *Grammar, resolve StandardNameResolver) (TransformationMatch, bool) {
	for _, current := range m.compiled {
		groups := current.expression.FindStringSubmatch(candidate)
		if groups == nil {
			continue
		}

		if operands, ok := bindOperands(current, groups[1:], grammar, resolve); ok {
			return TransformationMatch{Transformation: current.transformation, Operands: operands}, true
		}
	}

	return TransformationMatch{}, false
}

// bindOperands resolves each captured value against the operand of its letter
func bindOperands(current compiledTransformation, values []string, grammar *Grammar, resolve StandardNameResolver) ([]BoundOperand, bool) {
	result := make([]BoundOperand, 0, len(values))
	for index, letter := range current.letters {
		character, _ := current.transformation.Character(letter)
		bound := BoundOperand{Character: character, Value: values[index]}
		operand := character.AssociatedWith
		switch operand.Kind {
		case nodes.AnyStandardNameOperand:
			if resolve == nil {
				return nil, false
			}

			standardName, found := resolve(values[index])
			if !found {
				return nil, false
			}

			bound.StandardName = &standardName
		case nodes.QualificationOperand:
			qualification, found := grammar.Qualification(operand.Ref)
			if !found {
				return nil, false
			}

			value, found := qualification.Value(values[index])
			if !found {
				return nil, false
			}

			bound.ValidValue = &value
			bound.Source = qualification.Name
		case nodes.ConceptSetOperand:
			conceptSet, found := grammar.ConceptSet(operand.Ref)
			if !found {
				return nil, false
			}

			value, found := conceptSet.Value(values[index])
			if !found {
				return nil, false
			}

			bound.ValidValue = &value
			bound.Source = conceptSet.Name
		default:
			return nil, false
		}

		result = append(result, bound)
	}

	return result, true
}
