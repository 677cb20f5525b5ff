package nodes_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zefrenchwan/standardnames.git/nodes"
)

func TestQualificationValidate(t *testing.T) {
	component := nodes.NewQualification("component", "vector component")
	require.NoError(t, component.AddValidValue("x", "X component of"))
	require.NoError(t, component.AddValidValue("y", "Y component of"))

	// no link yet
	var validation nodes.ValidationError
	assert.True(t, errors.As(component.Validate(), &validation))

	require.NoError(t, component.SetBefore(nodes.ANY_STANDARD_NAME))
	assert.NoError(t, component.Validate())

	// both set is rejected
	component.After = nodes.ANY_STANDARD_NAME
	err := component.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both before and after")

	// set after clears before
	require.NoError(t, component.SetAfter(nodes.ANY_STANDARD_NAME))
	assert.Empty(t, component.Before)
	assert.NoError(t, component.Validate())

	component.Before = ""
	component.After = "not a uri"
	assert.Error(t, component.Validate())
}

func TestQualificationValues(t *testing.T) {
	medium := nodes.NewQualification("medium", "medium of the quantity")
	medium.Preposition = "in"
	require.NoError(t, medium.AddValidValue("air", "in air"))
	require.NoError(t, medium.AddValidValue("sea_water", "in sea water"))
	assert.Error(t, medium.AddValidValue("air", "duplicate"))
	assert.Error(t, medium.AddValidValue("Air", "uppercase"))
	assert.Error(t, medium.AddValidValue("", "empty"))

	assert.Equal(t, []string{"air", "sea_water"}, medium.Values())
	assert.Equal(t, "in medium", medium.Label())
	assert.Equal(t, "in_medium", medium.Phrase())

	value, found := medium.Value("sea_water")
	assert.True(t, found)
	assert.Equal(t, "in sea water", value.VariableDescription)

	var nilQualification *nodes.Qualification
	assert.Error(t, nilQualification.AddValidValue("x", ""))
}

func TestDomainConceptSet(t *testing.T) {
	devices := nodes.NewDomainConceptSet("device", "devices of the test rig")
	assert.Error(t, devices.Validate())

	require.NoError(t, devices.AddValue("fan", "a fan"))
	require.NoError(t, devices.AddValue("orifice_plate", "an orifice plate"))
	assert.Error(t, devices.AddValue("fan", ""))
	assert.NoError(t, devices.Validate())
	assert.Equal(t, []string{"fan", "orifice_plate"}, devices.Tokens())
}
