package patterns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zefrenchwan/standardnames.git/nodes"
	"github.com/zefrenchwan/standardnames.git/patterns"
)

func TestTransformationRegex(t *testing.T) {
	derivative := nodes.NewTransformation("derivative_of_X_wrt_Y", "", "[X]/[Y]",
		nodes.Character{Letter: "X", AssociatedWith: nodes.AnyStandardNameRef()},
		nodes.Character{Letter: "Y", AssociatedWith: nodes.AnyStandardNameRef()},
	)

	expression, letters, err := patterns.TransformationRegex(derivative)
	require.NoError(t, err)
	assert.Equal(t, `^derivative_of_([a-zA-Z_]+)_wrt_([a-zA-Z_]+)$`, expression.String())
	assert.Equal(t, []string{"X", "Y"}, letters)
}

func TestTransformationMatcher(t *testing.T) {
	devices := nodes.NewDomainConceptSet("device", "devices")
	devices.AddValue("fan", "the fan of the rig")
	devices.AddValue("orifice_plate", "the orifice plate")

	grammar := patterns.NewGrammar()
	require.NoError(t, grammar.AddConceptSet(devices))
	require.NoError(t, grammar.AddTransformation(nodes.NewTransformation("derivative_of_X_wrt_Y", "derivative", "[X]/[Y]",
		nodes.Character{Letter: "X", AssociatedWith: nodes.AnyStandardNameRef()},
		nodes.Character{Letter: "Y", AssociatedWith: nodes.AnyStandardNameRef()},
	)))
	require.NoError(t, grammar.AddTransformation(nodes.NewTransformation("difference_of_X_across_D", "difference", "[X]",
		nodes.Character{Letter: "X", AssociatedWith: nodes.AnyStandardNameRef()},
		nodes.Character{Letter: "D", AssociatedWith: nodes.ConceptSetRef(devices.Id)},
	)))
	require.NoError(t, grammar.Validate())

	known := map[string]nodes.StandardName{
		"velocity": {Name: "velocity", Unit: "m/s", Description: "speed"},
		"time":     {Name: "time", Unit: "s", Description: "time"},
	}

	resolve := func(candidate string) (nodes.StandardName, bool) {
		value, found := known[candidate]
		return value, found
	}

	matcher, err := grammar.Matcher()
	require.NoError(t, err)

	match, found := matcher.Match("derivative_of_velocity_wrt_time", &grammar, resolve)
	require.True(t, found)
	assert.Equal(t, "derivative_of_X_wrt_Y", match.Transformation.Name)
	require.Len(t, match.Operands, 2)
	assert.Equal(t, map[string]string{"X": "m/s", "Y": "s"}, match.Bindings())

	match, found = matcher.Match("difference_of_velocity_across_orifice_plate", &grammar, resolve)
	require.True(t, found)
	assert.Equal(t, "the orifice plate", match.Operands[1].Description())
	assert.Equal(t, "device", match.Operands[1].Source)

	_, found = matcher.Match("difference_of_velocity_across_pump", &grammar, resolve)
	assert.False(t, found)
	_, found = matcher.Match("derivative_of_velocity_wrt_pressure", &grammar, resolve)
	assert.False(t, found)
	_, found = matcher.Match("integral_of_velocity", &grammar, resolve)
	assert.False(t, found)
}
