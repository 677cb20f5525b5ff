package graphs_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zefrenchwan/standardnames.git/graphs"
	"github.com/zefrenchwan/standardnames.git/nodes"
)

const base = "https://example.org/table/"

func sampleGraph(t *testing.T) graphs.Graph {
	graph := graphs.NewGraphWithId(base)
	table := base + "snt"
	velocity := base + "velocity"
	pressure := "_:pressure"

	require.NoError(t, graph.AddType(table, nodes.CLASS_STANDARD_NAME_TABLE))
	require.NoError(t, graph.AddValue(table, nodes.PROPERTY_TITLE, "Sample table"))
	require.NoError(t, graph.AddLink(table, nodes.PROPERTY_HAS_STANDARD_NAME, velocity))
	require.NoError(t, graph.AddLink(table, nodes.PROPERTY_HAS_STANDARD_NAME, pressure))
	require.NoError(t, graph.AddType(velocity, nodes.CLASS_VECTOR_STANDARD_NAME))
	require.NoError(t, graph.AddValue(velocity, nodes.PROPERTY_STANDARD_NAME, "velocity"))
	require.NoError(t, graph.AddValue(velocity, nodes.PROPERTY_DESCRIPTION, "Speed \"and\" direction"))
	require.NoError(t, graph.AddType(pressure, nodes.CLASS_SCALAR_STANDARD_NAME))
	require.NoError(t, graph.AddValue(pressure, nodes.PROPERTY_STANDARD_NAME, "pressure"))
	require.NoError(t, graph.Add(graphs.NewIRI(table), graphs.NewIRI(nodes.PROPERTY_CREATED), graphs.NewTypedLiteral("2024-01-02T03:04:05Z", graphs.XSD_DATETIME)))
	return graph
}

func TestAddNoDuplicate(t *testing.T) {
	graph := sampleGraph(t)
	size := graph.Len()
	require.NoError(t, graph.AddValue(base+"velocity", nodes.PROPERTY_STANDARD_NAME, "velocity"))
	assert.Equal(t, size, graph.Len())

	// empty values are skipped
	require.NoError(t, graph.AddValue(base+"velocity", nodes.PROPERTY_UNIT, ""))
	assert.Equal(t, size, graph.Len())

	assert.Error(t, graph.Add(graphs.NewLiteral("x"), graphs.NewIRI(nodes.PROPERTY_TYPE), graphs.NewIRI(base)))
}

func TestMatchAndObjects(t *testing.T) {
	graph := sampleGraph(t)
	assert.Equal(t, []graphs.Term{graphs.NewIRI(base + "snt")}, graph.InstancesOf(nodes.CLASS_STANDARD_NAME_TABLE))
	assert.Equal(t, "Sample table", graph.Value(graphs.NewIRI(base+"snt"), nodes.PROPERTY_TITLE))
	assert.Len(t, graph.Objects(graphs.NewIRI(base+"snt"), nodes.PROPERTY_HAS_STANDARD_NAME), 2)
	assert.True(t, graph.HasType(graphs.NewBlank("pressure"), nodes.CLASS_SCALAR_STANDARD_NAME))
	assert.Empty(t, graph.Match(graphs.Term{}, graphs.NewIRI(nodes.PROPERTY_ALIAS), graphs.Term{}))
}

func TestExpandCompact(t *testing.T) {
	graph := graphs.NewEmptyGraph()
	assert.Equal(t, nodes.CLASS_STANDARD_NAME, graph.Expand("ssno:StandardName"))
	assert.Equal(t, "https://example.org/x", graph.Expand("https://example.org/x"))
	assert.Equal(t, "unknown:x", graph.Expand("unknown:x"))

	compact, ok := graph.Compact(nodes.PROPERTY_TITLE)
	assert.True(t, ok)
	assert.Equal(t, "dcterms:title", compact)

	_, ok = graph.Compact("https://example.org/a/b")
	assert.False(t, ok)
}

func TestSelect(t *testing.T) {
	graph := sampleGraph(t)
	bindings, err := graph.Select(graphs.Query{
		Where: []graphs.Pattern{
			{Subject: "?t", Predicate: "a", Object: "ssno:StandardNameTable"},
			{Subject: "?t", Predicate: "ssno:standardNames", Object: "?sn"},
			{Subject: "?sn", Predicate: "ssno:standardName", Object: "?name"},
		},
		Optional: []graphs.Pattern{
			{Subject: "?sn", Predicate: "dcterms:description", Object: "?description"},
		},
	})

	require.NoError(t, err)
	require.Len(t, bindings, 2)
	assert.Equal(t, "velocity", bindings[0].Value("name"))
	assert.Equal(t, "Speed \"and\" direction", bindings[0].Value("description"))
	assert.Equal(t, "pressure", bindings[1].Value("name"))
	assert.False(t, bindings[1].Has("description"))

	bindings, err = graph.Select(graphs.Query{
		Where: []graphs.Pattern{{Subject: "?sn", Predicate: "ssno:standardName", Object: "\"pressure\""}},
	})
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, graphs.NewBlank("pressure"), bindings[0]["sn"])

	_, err = graph.Select(graphs.Query{})
	assert.Error(t, err)
}

func TestTurtle(t *testing.T) {
	graph := sampleGraph(t)
	turtle := graph.Turtle()
	assert.Contains(t, turtle, "@prefix ssno: <https://matthiasprobst.github.io/ssno#> .")
	assert.Contains(t, turtle, "a ssno:StandardNameTable")
	assert.Contains(t, turtle, `dcterms:description "Speed \"and\" direction"`)
	assert.Contains(t, turtle, `"2024-01-02T03:04:05Z"^^xsd:dateTime`)
	assert.True(t, strings.Contains(turtle, "ssno:standardNames <https://example.org/table/velocity>,\n        _:pressure"))
}

func TestJSONLDRoundTrip(t *testing.T) {
	graph := sampleGraph(t)
	var buffer bytes.Buffer
	require.NoError(t, graph.WriteJSONLD(&buffer, map[string]any{"local": "https://example.org/local#"}))
	assert.Contains(t, buffer.String(), `"local": "https://example.org/local#"`)

	read, err := graphs.ReadJSONLD(&buffer, base)
	require.NoError(t, err)
	assert.Equal(t, graph.Len(), read.Len())
	assert.Equal(t, "Sample table", read.Value(graphs.NewIRI(base+"snt"), nodes.PROPERTY_TITLE))

	created, found := read.Object(graphs.NewIRI(base+"snt"), nodes.PROPERTY_CREATED)
	require.True(t, found)
	assert.Equal(t, graphs.XSD_DATETIME, created.Datatype)

	// blank nodes are relabelled but keep their statements
	scalars := read.InstancesOf(nodes.CLASS_SCALAR_STANDARD_NAME)
	require.Len(t, scalars, 1)
	assert.Equal(t, graphs.Blank, scalars[0].Kind)
	assert.Equal(t, "pressure", read.Value(scalars[0], nodes.PROPERTY_STANDARD_NAME))
}
