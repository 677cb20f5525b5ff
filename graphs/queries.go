package graphs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zefrenchwan/standardnames.git/nodes"
)

// Pattern is a triple pattern. Each position is a variable (?name), the keyword a (for rdf:type),
// a compact or full identifier, a blank id, or a quoted literal
type Pattern struct {
	Subject   string
	Predicate string
	Object    string
}

// Query is a basic graph pattern with optional patterns.
// Each optional pattern extends the results of the required ones when it matches, and keeps them otherwise
type Query struct {
	// Where are the required patterns
	Where []Pattern
	// Optional are the optional patterns, evaluated one by one
	Optional []Pattern
}

// Binding links variable names (no question mark) to terms
type Binding map[string]Term

// Value returns the value bound to a variable, empty if unbound
func (b Binding) Value(variable string) string {
	return b[variable].Value
}

// Has returns true if variable is bound
func (b Binding) Has(variable string) bool {
	_, found := b[variable]
	return found
}

// clone returns a copy of the binding
func (b Binding) clone() Binding {
	result := make(Binding, len(b))
	for key, value := range b {
		result[key] = value
	}

	return result
}

// Select returns all the bindings satisfying the query, in triple insertion order
func (g *Graph) Select(query Query) ([]Binding, error) {
	if g == nil {
		return nil, errors.New("nil graph")
	} else if len(query.Where) == 0 {
		return nil, errors.New("query needs at least one required pattern")
	}

	results := []Binding{{}}
	for _, pattern := range query.Where {
		var next []Binding
		for _, binding := range results {
			extensions, err := g.extend(binding, pattern)
			if err != nil {
				return nil, err
			}

			next = append(next, extensions...)
		}

		results = next
		if len(results) == 0 {
			return nil, nil
		}
	}

	for _, pattern := range query.Optional {
		var next []Binding
		for _, binding := range results {
			extensions, err := g.extend(binding, pattern)
			if err != nil {
				return nil, err
			} else if len(extensions) == 0 {
				next = append(next, binding)
			} else {
				next = append(next, extensions...)
			}
		}

		results = next
	}

	return results, nil
}

// extend returns the bindings extending binding with the triples matching pattern
func (g *Graph) extend(binding Binding, pattern Pattern) ([]Binding, error) {
	subject, subjectVariable, errSubject := g.resolvePosition(binding, pattern.Subject)
	predicate, predicateVariable, errPredicate := g.resolvePosition(binding, pattern.Predicate)
	object, objectVariable, errObject := g.resolvePosition(binding, pattern.Object)
	if err := errors.Join(errSubject, errPredicate, errObject); err != nil {
		return nil, err
	}

	var result []Binding
	for _, triple := range g.Match(subject, predicate, object) {
		extension := binding.clone()
		if !bindVariable(extension, subjectVariable, triple.Subject) ||
			!bindVariable(extension, predicateVariable, triple.Predicate) ||
			!bindVariable(extension, objectVariable, triple.Object) {
			continue
		}

		result = append(result, extension)
	}

	return result, nil
}

// bindVariable binds variable to term, false if the variable is already bound to another term
func bindVariable(binding Binding, variable string, term Term) bool {
	if variable == "" {
		return true
	} else if previous, found := binding[variable]; found {
		return previous == term
	}

	binding[variable] = term
	return true
}

// resolvePosition returns the term of a pattern position, or the variable name if unbound
func (g *Graph) resolvePosition(binding Binding, position string) (Term, string, error) {
	switch {
	case strings.HasPrefix(position, "?"):
		variable := strings.TrimPrefix(position, "?")
		if term, found := binding[variable]; found {
			return term, "", nil
		}

		return Term{}, variable, nil
	case position == "a":
		return NewIRI(nodes.PROPERTY_TYPE), "", nil
	case strings.HasPrefix(position, "\""):
		if len(position) < 2 || !strings.HasSuffix(position, "\"") {
			return Term{}, "", fmt.Errorf("invalid literal %s", position)
		}

		return NewLiteral(position[1 : len(position)-1]), "", nil
	case nodes.IsBlankId(position):
		return NewBlank(position), "", nil
	case position == "":
		return Term{}, "", errors.New("empty pattern position")
	default:
		return NewIRI(g.Expand(strings.Trim(position, "<>"))), "", nil
	}
}
