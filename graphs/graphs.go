// Package graphs is a small in memory triple store, used to read and write linked data documents.
package graphs

import (
	"errors"
	"slices"
	"strings"

	"github.com/zefrenchwan/standardnames.git/nodes"
)

// Graph defines a set of triples, indexed by subject and by predicate
type Graph struct {
	// Id is the id of the graph, the base uri of the document it was read from or written to
	Id string
	// Prefixes links a prefix to its namespace, used to expand and compact identifiers
	Prefixes map[string]string
	// triples in insertion order
	triples []Triple
	// seen contains the keys of the triples, no duplicate
	seen map[string]bool
	// bySubject links a subject key to the positions of its triples
	bySubject map[string][]int
	// byPredicate links a predicate key to the positions of its triples
	byPredicate map[string][]int
}

// NewEmptyGraph returns a new empty graph with the default prefixes
func NewEmptyGraph() Graph {
	prefixes := make(map[string]string, len(nodes.Prefixes))
	for prefix, namespace := range nodes.Prefixes {
		prefixes[prefix] = namespace
	}

	return Graph{
		Prefixes:    prefixes,
		seen:        make(map[string]bool),
		bySubject:   make(map[string][]int),
		byPredicate: make(map[string][]int),
	}
}

// NewGraphWithId builds a new empty graph with a given id
func NewGraphWithId(id string) Graph {
	graph := NewEmptyGraph()
	graph.Id = id
	return graph
}

// Add inserts a triple if not already present
func (g *Graph) Add(subject, predicate, object Term) error {
	if g == nil {
		return errors.New("nil graph")
	} else if !subject.IsResource() {
		return errors.New("subject should be an identifier or a blank node")
	} else if predicate.Kind != IRI {
		return errors.New("predicate should be an identifier")
	} else if g.seen == nil {
		g.seen = make(map[string]bool)
		g.bySubject = make(map[string][]int)
		g.byPredicate = make(map[string][]int)
	}

	triple := Triple{Subject: subject, Predicate: predicate, Object: object}
	key := triple.key()
	if g.seen[key] {
		return nil
	}

	position := len(g.triples)
	g.seen[key] = true
	g.triples = append(g.triples, triple)
	g.bySubject[subject.key()] = append(g.bySubject[subject.key()], position)
	g.byPredicate[predicate.key()] = append(g.byPredicate[predicate.key()], position)
	return nil
}

// AddLink adds a triple linking two resources (identifiers or blank ids)
func (g *Graph) AddLink(subject, predicate, object string) error {
	return g.Add(NewResource(subject), NewIRI(predicate), NewResource(object))
}

// AddValue adds a plain literal, nothing if value is empty
func (g *Graph) AddValue(subject, predicate, value string) error {
	if value == "" {
		return nil
	}

	return g.Add(NewResource(subject), NewIRI(predicate), NewLiteral(value))
}

// AddType flags subject as an instance of class
func (g *Graph) AddType(subject, class string) error {
	return g.AddLink(subject, nodes.PROPERTY_TYPE, class)
}

// Len returns the number of triples
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}

	return len(g.triples)
}

// Triples returns all the triples in insertion order
func (g *Graph) Triples() []Triple {
	if g == nil {
		return nil
	}

	return slices.Clone(g.triples)
}

// Match returns the triples matching the terms, zero terms are wildcards
func (g *Graph) Match(subject, predicate, object Term) []Triple {
	if g == nil {
		return nil
	}

	var positions []int
	switch {
	case !subject.IsZero():
		positions = g.bySubject[subject.key()]
	case !predicate.IsZero():
		positions = g.byPredicate[predicate.key()]
	default:
		positions = make([]int, len(g.triples))
		for index := range positions {
			positions[index] = index
		}
	}

	var result []Triple
	for _, position := range positions {
		triple := g.triples[position]
		if !predicate.IsZero() && triple.Predicate != predicate {
			continue
		} else if !object.IsZero() && triple.Object != object {
			continue
		}

		result = append(result, triple)
	}

	return result
}

// Objects returns the objects for a subject and a predicate
func (g *Graph) Objects(subject Term, predicate string) []Term {
	var result []Term
	for _, triple := range g.Match(subject, NewIRI(predicate), Term{}) {
		result = append(result, triple.Object)
	}

	return result
}

// Object returns the first object for a subject and a predicate
func (g *Graph) Object(subject Term, predicate string) (Term, bool) {
	objects := g.Objects(subject, predicate)
	if len(objects) == 0 {
		return Term{}, false
	}

	return objects[0], true
}

// Value returns the value of the first object, empty if none
func (g *Graph) Value(subject Term, predicate string) string {
	object, _ := g.Object(subject, predicate)
	return object.Value
}

// Subjects returns the subjects linked to object by predicate
func (g *Graph) Subjects(predicate string, object Term) []Term {
	var result []Term
	for _, triple := range g.Match(Term{}, NewIRI(predicate), object) {
		if !slices.Contains(result, triple.Subject) {
			result = append(result, triple.Subject)
		}
	}

	return result
}

// InstancesOf returns the subjects typed as class, in insertion order
func (g *Graph) InstancesOf(class string) []Term {
	return g.Subjects(nodes.PROPERTY_TYPE, NewIRI(class))
}

// HasType returns true if subject is an instance of class
func (g *Graph) HasType(subject Term, class string) bool {
	return len(g.Match(subject, NewIRI(nodes.PROPERTY_TYPE), NewIRI(class))) != 0
}

// Expand returns the full identifier of a compact one, for instance ssno:StandardName.
// Values with no known prefix are returned as is
func (g *Graph) Expand(value string) string {
	if g == nil {
		return value
	}

	prefix, local, found := strings.Cut(value, ":")
	if !found || strings.HasPrefix(local, "//") {
		return value
	} else if namespace, known := g.Prefixes[prefix]; known {
		return namespace + local
	}

	return value
}

// Compact returns the compact form of an identifier, if a prefix matches and local part is simple
func (g *Graph) Compact(value string) (string, bool) {
	if g == nil {
		return value, false
	}

	best, bestNamespace := "", ""
	for prefix, namespace := range g.Prefixes {
		if strings.HasPrefix(value, namespace) && len(namespace) > len(bestNamespace) {
			best, bestNamespace = prefix, namespace
		}
	}

	local := strings.TrimPrefix(value, bestNamespace)
	if bestNamespace == "" || !isSimpleLocalName(local) {
		return value, false
	}

	return best + ":" + local, true
}

// sortedPrefixes returns the prefixes in alphabetical order
func (g *Graph) sortedPrefixes() []string {
	result := make([]string, 0, len(g.Prefixes))
	for prefix := range g.Prefixes {
		result = append(result, prefix)
	}

	slices.Sort(result)
	return result
}

// subjects returns the distinct subjects in insertion order
func (g *Graph) subjects() []Term {
	var result []Term
	done := make(map[string]bool)
	for _, triple := range g.triples {
		if key := triple.Subject.key(); !done[key] {
			done[key] = true
			result = append(result, triple.Subject)
		}
	}

	return result
}

// isSimpleLocalName accepts letters, digits, underscores and dashes, not starting with a dash
func isSimpleLocalName(local string) bool {
	if local == "" || local[0] == '-' {
		return false
	}

	for _, char := range local {
		isLetter := (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
		isDigit := char >= '0' && char <= '9'
		if !isLetter && !isDigit && char != '_' && char != '-' {
			return false
		}
	}

	return true
}
