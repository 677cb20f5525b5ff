package nodes_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zefrenchwan/standardnames.git/names"
	"github.com/zefrenchwan/standardnames.git/nodes"
)

func TestNewStandardName(t *testing.T) {
	velocity, err := nodes.NewStandardName("x_velocity", "m/s", "velocity along x", nodes.Vector)
	require.NoError(t, err)
	assert.True(t, nodes.IsBlankId(velocity.Id))
	assert.True(t, velocity.IsVector())
	assert.False(t, velocity.IsAlias())
	assert.Equal(t, nodes.CLASS_VECTOR_STANDARD_NAME, velocity.Kind.ClassIRI())

	_, err = nodes.NewStandardName("X_velocity", "m/s", "", nodes.Scalar)
	var lexical names.LexicalError
	assert.True(t, errors.As(err, &lexical))
}

func TestKindFromClass(t *testing.T) {
	kind, found := nodes.KindFromClass(nodes.CLASS_SCALAR_STANDARD_NAME)
	assert.True(t, found)
	assert.Equal(t, nodes.Scalar, kind)

	_, found = nodes.KindFromClass(nodes.CLASS_QUALIFICATION)
	assert.False(t, found)
}

func TestIdentifiers(t *testing.T) {
	assert.True(t, nodes.IsIdentifier(nodes.ANY_STANDARD_NAME))
	assert.True(t, nodes.IsIdentifier("https://doi.org/10.5281/zenodo.1"))
	assert.True(t, nodes.IsIdentifier(nodes.NewId()))
	assert.False(t, nodes.IsIdentifier("component"))
	assert.False(t, nodes.IsIdentifier("_:"))

	assert.Equal(t, "https://example.org/abc", nodes.ResolveId("_:abc", "https://example.org"))
	assert.Equal(t, "https://example.org#abc", nodes.ResolveId("_:abc", "https://example.org#"))
	assert.Equal(t, "https://other.org/x", nodes.ResolveId("https://other.org/x", "https://example.org/"))

	assert.Equal(t, "https://doi.org/10/derived_standard_name/x", nodes.JoinIdentifier("https://doi.org/10", "derived_standard_name/x"))
	assert.Equal(t, "https://doi.org/10/derived_standard_name/x", nodes.JoinIdentifier("https://doi.org/10/", "derived_standard_name/x"))
}
