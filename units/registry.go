// Package units deals with unit expressions: lookup of unit identifiers,
// reduction of expressions to base units and unit algebra for transformations.
package units

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// QUDT_UNIT_NAMESPACE is the namespace of unit identifiers
const QUDT_UNIT_NAMESPACE = "http://qudt.org/vocab/unit/"

// DIMENSIONLESS is the identifier for no unit
const DIMENSIONLESS = QUDT_UNIT_NAMESPACE + "UNITLESS"

// Definition links a unit identifier to its symbol
type Definition struct {
	// IRI is the unit identifier
	IRI string
	// Symbol is the human readable expression of the unit, parseable by Reduce
	Symbol string
}

// UnparseableUnitError is raised when a unit string matches no known identifier.
// It is either fatal (strict mode) or a warning, and then the raw string is kept
type UnparseableUnitError struct {
	// Value is the unit string that failed
	Value string
	// Context describes where the unit appeared (standard name, transformation, ...)
	Context string
	// Err is the underlying parsing error, if any
	Err error
}

// Error to implement error interface
func (e UnparseableUnitError) Error() string {
	message := fmt.Sprintf("unparseable unit %q", e.Value)
	if e.Context != "" {
		message = message + " for " + e.Context
	}

	if e.Err != nil {
		message = message + ": " + e.Err.Error()
	}

	return message
}

// Unwrap returns the parsing error
func (e UnparseableUnitError) Unwrap() error {
	return e.Err
}

// ErrAmbiguousUnit is raised when an expression reduces to the base units of many identifiers
var ErrAmbiguousUnit = errors.New("ambiguous unit")

// Registry links unit identifiers and canonical unit expressions.
// Once built, a registry is read only and safe for concurrent use
type Registry struct {
	// byIRI maps an identifier to its definition
	byIRI map[string]Definition
	// bySignature maps the signature of a definition symbol to the first identifier registered with it
	bySignature map[string]string
	// byCanonical maps a canonical expression to all the identifiers reducing to it, in definition order
	byCanonical map[string][]string
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the registry built on the QUDT definitions shipped with the package
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		registry, err := NewRegistry(qudtDefinitions...)
		if err != nil {
			panic(fmt.Sprintf("invalid default unit definitions: %s", err.Error()))
		}

		defaultRegistry = registry
	})

	return defaultRegistry
}

// NewRegistry builds a registry from definitions.
// Definitions may share a canonical form (J and N*m), Parse then needs the exact symbol
func NewRegistry(definitions ...Definition) (*Registry, error) {
	result := &Registry{
		byIRI:       make(map[string]Definition),
		bySignature: make(map[string]string),
		byCanonical: make(map[string][]string),
	}

	var globalErr error
	for _, definition := range definitions {
		canonical, err := Canonicalize(definition.Symbol)
		if err != nil {
			globalErr = errors.Join(globalErr, fmt.Errorf("unit %s: %w", definition.IRI, err))
			continue
		}

		symbolic, errSymbolic := Signature(definition.Symbol)
		if errSymbolic != nil {
			globalErr = errors.Join(globalErr, fmt.Errorf("unit %s: %w", definition.IRI, errSymbolic))
			continue
		}

		result.byIRI[definition.IRI] = definition
		result.byCanonical[canonical] = append(result.byCanonical[canonical], definition.IRI)
		if _, found := result.bySignature[symbolic]; !found {
			result.bySignature[symbolic] = definition.IRI
		}
	}

	return result, globalErr
}

// Parse returns the identifier of a unit string.
// Empty, 1 and - are dimensionless. An identifier is accepted as is.
// A value using the same symbols as a definition (m s-1 for m/s) matches it.
// Otherwise, the value matches the only definition with the same base units.
// If no identifier matches, or many do, it returns the original string AND an UnparseableUnitError:
// strict callers fail, others keep the raw value and record the warning
func (r *Registry) Parse(value, context string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if IsDimensionlessInput(trimmed) {
		return DIMENSIONLESS, nil
	} else if _, found := r.byIRI[trimmed]; found {
		return trimmed, nil
	}

	canonical, errCanonical := Canonicalize(trimmed)
	if errCanonical != nil {
		return value, UnparseableUnitError{Value: value, Context: context, Err: errCanonical}
	}

	if symbolic, err := Signature(trimmed); err == nil {
		if iri, found := r.bySignature[symbolic]; found {
			return iri, nil
		}
	}

	switch candidates := r.byCanonical[canonical]; len(candidates) {
	case 0:
		return value, UnparseableUnitError{Value: value, Context: context}
	case 1:
		return candidates[0], nil
	default:
		symbols := make([]string, 0, len(candidates))
		for _, candidate := range candidates {
			symbols = append(symbols, r.byIRI[candidate].Symbol)
		}

		err := fmt.Errorf("%w, %s reduces to %s", ErrAmbiguousUnit, trimmed, strings.Join(symbols, " or "))
		return value, UnparseableUnitError{Value: value, Context: context, Err: err}
	}
}

// IsKnown returns true if unit is a registered identifier
func (r *Registry) IsKnown(unit string) bool {
	_, found := r.byIRI[unit]
	return found
}

// Symbol returns the human readable symbol of a unit.
// Unknown values (raw strings kept after a warning) are returned as is
func (r *Registry) Symbol(unit string) string {
	if definition, found := r.byIRI[unit]; found {
		return definition.Symbol
	}

	return unit
}

// Canonical returns the canonical base unit expression of a unit identifier or raw string
func (r *Registry) Canonical(unit string) (string, error) {
	return Canonicalize(r.Symbol(unit))
}

// Equivalent returns true if both units reduce to the same canonical form
func (r *Registry) Equivalent(a, b string) bool {
	if a == b {
		return true
	}

	canonicalA, errA := r.Canonical(a)
	canonicalB, errB := r.Canonical(b)
	return errA == nil && errB == nil && canonicalA == canonicalB
}

// placeholder matches [X] in a unit rule
var placeholder = regexp.MustCompile(`\[([A-Z][A-Z0-9]*)\]`)

// ComputeAlteredUnit substitutes each [L] in expression with the symbol of the unit bound to L,
// and returns the canonical form of the result.
// For instance, with X bound to m/s and Y bound to s, [X]/[Y] returns m/s**2
func (r *Registry) ComputeAlteredUnit(bindings map[string]string, expression string) (string, error) {
	var globalErr error
	substituted := placeholder.ReplaceAllStringFunc(expression, func(match string) string {
		letter := placeholder.FindStringSubmatch(match)[1]
		unit, found := bindings[letter]
		if !found {
			globalErr = errors.Join(globalErr, fmt.Errorf("no unit bound to %s", letter))
			return match
		}

		return "(" + r.Symbol(unit) + ")"
	})

	if globalErr != nil {
		return "", globalErr
	}

	return Canonicalize(substituted)
}

// Placeholders returns the letters used in a unit rule, in order of appearance
func Placeholders(expression string) []string {
	var result []string
	for _, match := range placeholder.FindAllStringSubmatch(expression, -1) {
		result = append(result, match[1])
	}

	return result
}
