package graphs

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/zefrenchwan/standardnames.git/nodes"
)

// WriteTurtle writes the graph in turtle, subjects in insertion order
func (g *Graph) WriteTurtle(writer io.Writer) error {
	if g == nil {
		return nil
	}

	buffer := bufio.NewWriter(writer)
	for _, prefix := range g.sortedPrefixes() {
		fmt.Fprintf(buffer, "@prefix %s: <%s> .\n", prefix, g.Prefixes[prefix])
	}

	if g.Id != "" {
		fmt.Fprintf(buffer, "@base <%s> .\n", g.Id)
	}

	for _, subject := range g.subjects() {
		buffer.WriteString("\n")
		buffer.WriteString(g.turtleTerm(subject))
		triples := g.Match(subject, Term{}, Term{})
		lastPredicate := ""
		for index, triple := range triples {
			predicate := g.turtlePredicate(triple.Predicate)
			switch {
			case index == 0:
				buffer.WriteString(" " + predicate + " ")
			case predicate == lastPredicate:
				buffer.WriteString(",\n        ")
			default:
				buffer.WriteString(" ;\n    " + predicate + " ")
			}

			buffer.WriteString(g.turtleTerm(triple.Object))
			lastPredicate = predicate
		}

		buffer.WriteString(" .\n")
	}

	return buffer.Flush()
}

// Turtle returns the graph in turtle
func (g *Graph) Turtle() string {
	var builder strings.Builder
	g.WriteTurtle(&builder)
	return builder.String()
}

func (g *Graph) turtlePredicate(predicate Term) string {
	if predicate.Value == nodes.PROPERTY_TYPE {
		return "a"
	}

	return g.turtleTerm(predicate)
}

func (g *Graph) turtleTerm(term Term) string {
	switch term.Kind {
	case IRI:
		if compact, ok := g.Compact(term.Value); ok {
			return compact
		}

		return "<" + term.Value + ">"
	case Blank:
		return term.Value
	default:
		result := quoteLiteral(term.Value)
		if term.Language != "" {
			return result + "@" + term.Language
		} else if term.Datatype != "" && term.Datatype != XSD_STRING {
			if compact, ok := g.Compact(term.Datatype); ok {
				return result + "^^" + compact
			}

			return result + "^^<" + term.Datatype + ">"
		}

		return result
	}
}
