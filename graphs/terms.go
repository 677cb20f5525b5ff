package graphs

import (
	"strings"

	"github.com/zefrenchwan/standardnames.git/nodes"
)

// TermKind is the kind of a node in a triple
type TermKind int

const (
	// IRI is an absolute identifier
	IRI TermKind = iota
	// Blank is a blank node, local to a document
	Blank
	// Literal is a value, possibly typed
	Literal
)

// Term is a subject, predicate or object of a triple
type Term struct {
	// Kind of the term
	Kind TermKind
	// Value is the identifier, blank label (with its _: prefix) or literal value
	Value string
	// Datatype of a typed literal
	Datatype string
	// Language of a literal, if any
	Language string
}

// NewIRI returns an identifier term
func NewIRI(value string) Term {
	return Term{Kind: IRI, Value: value}
}

// NewBlank returns a blank term, adding the prefix if needed
func NewBlank(label string) Term {
	if !strings.HasPrefix(label, nodes.BLANK_PREFIX) {
		label = nodes.BLANK_PREFIX + label
	}

	return Term{Kind: Blank, Value: label}
}

// NewResource returns a blank term for blank identifiers, an identifier term otherwise
func NewResource(id string) Term {
	if nodes.IsBlankId(id) {
		return NewBlank(id)
	}

	return NewIRI(id)
}

// NewLiteral returns a plain string literal
func NewLiteral(value string) Term {
	return Term{Kind: Literal, Value: value}
}

// NewTypedLiteral returns a literal with a datatype
func NewTypedLiteral(value, datatype string) Term {
	return Term{Kind: Literal, Value: value, Datatype: datatype}
}

// IsResource returns true for identifiers and blank nodes
func (t Term) IsResource() bool {
	return t.Kind == IRI || t.Kind == Blank
}

// IsZero returns true for the zero term, used as a wildcard
func (t Term) IsZero() bool {
	return t == Term{}
}

// key identifies a term in the indexes
func (t Term) key() string {
	switch t.Kind {
	case IRI:
		return "<" + t.Value + ">"
	case Blank:
		return t.Value
	default:
		return "\"" + t.Value + "\"^^" + t.Datatype + "@" + t.Language
	}
}

// String returns the N-Triples like form of the term
func (t Term) String() string {
	switch t.Kind {
	case Literal:
		result := quoteLiteral(t.Value)
		if t.Language != "" {
			return result + "@" + t.Language
		} else if t.Datatype != "" && t.Datatype != XSD_STRING {
			return result + "^^<" + t.Datatype + ">"
		}

		return result
	default:
		return t.key()
	}
}

// Triple is a statement
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// key identifies a triple
func (t Triple) key() string {
	return t.Subject.key() + " " + t.Predicate.key() + " " + t.Object.key()
}

// XSD_STRING is the default datatype of literals
const XSD_STRING = nodes.XSD_NAMESPACE + "string"

// XSD_DATETIME is the datatype of timestamps
const XSD_DATETIME = nodes.XSD_NAMESPACE + "dateTime"

// XSD_INTEGER is the datatype of positions
const XSD_INTEGER = nodes.XSD_NAMESPACE + "integer"

// quoteLiteral escapes a literal as a double quoted string
func quoteLiteral(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return "\"" + replacer.Replace(value) + "\""
}
