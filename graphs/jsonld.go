package graphs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/piprate/json-gold/ld"
	"github.com/zefrenchwan/standardnames.git/nodes"
)

// RDF_LANG_STRING is the datatype of literals with a language
const RDF_LANG_STRING = nodes.RDF_NAMESPACE + "langString"

// ReadJSONLD parses a JSON-LD document into a graph. Relative identifiers resolve against base
func ReadJSONLD(reader io.Reader, base string) (Graph, error) {
	var document any
	if err := json.NewDecoder(reader).Decode(&document); err != nil {
		return Graph{}, fmt.Errorf("invalid json document: %w", err)
	}

	return FromJSONLD(document, base)
}

// FromJSONLD converts a decoded JSON-LD document into a graph, all named graphs merged
func FromJSONLD(document any, base string) (Graph, error) {
	processor := ld.NewJsonLdProcessor()
	options := ld.NewJsonLdOptions(base)
	rdf, err := processor.ToRDF(document, options)
	if err != nil {
		return Graph{}, fmt.Errorf("cannot convert document to rdf: %w", err)
	}

	dataset, ok := rdf.(*ld.RDFDataset)
	if !ok {
		return Graph{}, errors.New("unexpected rdf conversion result")
	}

	graphNames := make([]string, 0, len(dataset.Graphs))
	for name := range dataset.Graphs {
		graphNames = append(graphNames, name)
	}

	// default graph first, then named graphs by name
	slices.SortFunc(graphNames, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == "@default":
			return -1
		case b == "@default":
			return 1
		case a < b:
			return -1
		default:
			return 1
		}
	})

	result := NewGraphWithId(base)
	var globalErr error
	for _, name := range graphNames {
		for _, quad := range dataset.Graphs[name] {
			if err := result.Add(fromNode(quad.Subject), fromNode(quad.Predicate), fromNode(quad.Object)); err != nil {
				globalErr = errors.Join(globalErr, err)
			}
		}
	}

	return result, globalErr
}

// fromNode converts a json-gold node into a term. Plain strings lose their datatype
func fromNode(node ld.Node) Term {
	switch {
	case ld.IsIRI(node):
		return NewIRI(node.GetValue())
	case ld.IsBlankNode(node):
		return NewBlank(node.GetValue())
	}

	literal, ok := node.(*ld.Literal)
	if !ok {
		return NewLiteral(node.GetValue())
	}

	result := Term{Kind: Literal, Value: literal.Value, Datatype: literal.Datatype, Language: literal.Language}
	if result.Datatype == XSD_STRING || result.Datatype == RDF_LANG_STRING {
		result.Datatype = ""
	}

	return result
}

// JSONLD returns the graph as a JSON-LD document: a context with the prefixes (plus extra entries)
// and one node object per subject, in insertion order
func (g *Graph) JSONLD(extraContext map[string]any) map[string]any {
	context := make(map[string]any)
	if g != nil {
		for prefix, namespace := range g.Prefixes {
			context[prefix] = namespace
		}
	}

	for key, value := range extraContext {
		context[key] = value
	}

	nodeObjects := make([]any, 0)
	if g != nil {
		for _, subject := range g.subjects() {
			nodeObjects = append(nodeObjects, g.nodeObject(subject))
		}
	}

	return map[string]any{
		"@context": context,
		"@graph":   nodeObjects,
	}
}

// WriteJSONLD writes the indented JSON-LD document
func (g *Graph) WriteJSONLD(writer io.Writer, extraContext map[string]any) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(g.JSONLD(extraContext))
}

// nodeObject returns the JSON-LD node object of a subject
func (g *Graph) nodeObject(subject Term) map[string]any {
	result := map[string]any{"@id": g.compactOrFull(subject.Value)}
	var types []any
	properties := make(map[string][]any)
	for _, triple := range g.Match(subject, Term{}, Term{}) {
		if triple.Predicate.Value == nodes.PROPERTY_TYPE && triple.Object.IsResource() {
			types = append(types, g.compactOrFull(triple.Object.Value))
			continue
		}

		key := g.compactOrFull(triple.Predicate.Value)
		properties[key] = append(properties[key], g.valueObject(triple.Object))
	}

	if len(types) == 1 {
		result["@type"] = types[0]
	} else if len(types) > 1 {
		result["@type"] = types
	}

	for key, values := range properties {
		if len(values) == 1 {
			result[key] = values[0]
		} else {
			result[key] = values
		}
	}

	return result
}

// valueObject returns the JSON-LD value of an object term
func (g *Graph) valueObject(object Term) any {
	switch {
	case object.IsResource():
		return map[string]any{"@id": g.compactOrFull(object.Value)}
	case object.Language != "":
		return map[string]any{"@value": object.Value, "@language": object.Language}
	case object.Datatype != "" && object.Datatype != XSD_STRING:
		return map[string]any{"@value": object.Value, "@type": g.compactOrFull(object.Datatype)}
	default:
		return object.Value
	}
}

func (g *Graph) compactOrFull(value string) string {
	compact, _ := g.Compact(value)
	return compact
}
