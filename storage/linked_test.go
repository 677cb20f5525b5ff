package storage_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zefrenchwan/standardnames.git/graphs"
	"github.com/zefrenchwan/standardnames.git/nodes"
	"github.com/zefrenchwan/standardnames.git/storage"
)

func TestToGraph(t *testing.T) {
	table := readFixture(t, "testdata/fluid.yaml")
	graph, err := storage.ToGraph(table, baseURI)
	require.NoError(t, err)

	tableNodes := graph.InstancesOf(nodes.CLASS_STANDARD_NAME_TABLE)
	require.Len(t, tableNodes, 1)
	assert.Equal(t, "https://doi.org/10.5281/zenodo.000001", tableNodes[0].Value)
	assert.Len(t, graph.InstancesOf(nodes.CLASS_VECTOR_QUALIFICATION), 1)
	assert.Len(t, graph.InstancesOf(nodes.CLASS_QUALIFICATION), 1)
	assert.Len(t, graph.InstancesOf(nodes.CLASS_TRANSFORMATION), 2)
	assert.Len(t, graph.InstancesOf(nodes.CLASS_CHARACTER), 4)
	assert.Len(t, graph.InstancesOf(nodes.CLASS_TEXTUAL_VALUE), 7)

	// blank identifiers are resolved against the base
	triples := graph.Match(graphs.Term{}, graphs.NewIRI(nodes.PROPERTY_STANDARD_NAME), graphs.Term{})
	require.Len(t, triples, 4)
	for _, triple := range triples {
		assert.Equal(t, graphs.IRI, triple.Subject.Kind)
		assert.True(t, strings.HasPrefix(triple.Subject.Value, baseURI), triple.Subject.Value)
	}
}

func TestJSONLDRoundTrip(t *testing.T) {
	table := readFixture(t, "testdata/fluid.yaml")
	var buffer bytes.Buffer
	require.NoError(t, storage.EncodeJSONLD(&buffer, table, storage.WriteOptions{
		BaseURI: baseURI,
		Context: map[string]any{"label": "http://www.w3.org/2000/01/rdf-schema#label"},
	}))

	var document map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &document))
	assert.Contains(t, document, "@context")
	assert.Contains(t, document, "@graph")
	assert.NotContains(t, document, "@id")

	again, err := storage.ReadJSONLD(bytes.NewReader(buffer.Bytes()), storage.ParseOptions{BaseURI: baseURI})
	require.NoError(t, err)
	assert.Equal(t, table.Metadata(), again.Metadata())
	assert.Len(t, again.Attributions(), 2)

	rule, err := again.GetQualificationRuleAsString()
	require.NoError(t, err)
	assert.Equal(t, "[component] standard_name [in medium]", rule)

	names := again.StandardNames()
	require.Len(t, names, 4)
	assert.Equal(t, []string{"velocity", "time", "pressure", "static_pressure"}, []string{names[0].Name, names[1].Name, names[2].Name, names[3].Name})
	assert.Equal(t, nodes.Vector, names[0].Kind)
	assert.Equal(t, nodes.Scalar, names[1].Kind)
	assert.Equal(t, nodes.Untagged, names[2].Kind)
	assert.Equal(t, names[2].Id, names[3].Alias)
	assert.Equal(t, table.StandardNames()[0].Unit, names[0].Unit)

	grammar := again.Grammar()
	component, found := grammar.QualificationByName("component")
	require.True(t, found)
	assert.True(t, component.VectorOnly)
	assert.Equal(t, []string{"x", "y", "z"}, component.Values())

	for _, name := range []string{"x_velocity_in_air", "difference_of_velocity_across_orifice_plate", "derivative_of_velocity_wrt_time"} {
		assert.True(t, again.VerifyName(name), name)
	}

	assert.False(t, again.VerifyName("x_time"))
}

func TestReadJSONLDWithoutTable(t *testing.T) {
	document := `{"@context": {"ssno": "https://matthiasprobst.github.io/ssno#"}, "@id": "https://example.org/x", "@type": "ssno:StandardName"}`
	_, err := storage.ReadJSONLD(bytes.NewBufferString(document), storage.ParseOptions{})
	assert.ErrorAs(t, err, &nodes.ValidationError{})

	_, err = storage.ReadJSONLD(bytes.NewBufferString("{"), storage.ParseOptions{})
	assert.Error(t, err)
}

func TestEncodeTurtle(t *testing.T) {
	table := readFixture(t, "testdata/fluid.yaml")
	var buffer bytes.Buffer
	require.NoError(t, storage.Encode(&buffer, table, storage.FORMAT_TURTLE, storage.WriteOptions{BaseURI: baseURI}))
	content := buffer.String()
	assert.Contains(t, content, "@prefix ssno: <https://matthiasprobst.github.io/ssno#> .")
	assert.Contains(t, content, "a ssno:StandardNameTable")
	assert.Contains(t, content, `ssno:standardName "velocity"`)
	assert.Contains(t, content, "ssno:before ssno:AnyStandardName")
}
