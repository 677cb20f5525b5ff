package names_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zefrenchwan/standardnames.git/names"
)

func TestIsLexical(t *testing.T) {
	valid := []string{"velocity", "x_wind_velocity_at_sea_level", "a1", "air_temperature_2m"}
	for _, name := range valid {
		assert.True(t, names.IsLexical(name), name)
	}

	invalid := []string{"", "a", "_velocity", "velocity_", "x__velocity", "Velocity", "2m_temperature", "air-temperature", "air temperature"}
	for _, name := range invalid {
		assert.False(t, names.IsLexical(name), name)
	}
}

func TestMustBeLexical(t *testing.T) {
	require.NoError(t, names.MustBeLexical("velocity"))

	err := names.MustBeLexical("x__velocity")
	require.Error(t, err)

	var lexical names.LexicalError
	require.True(t, errors.As(err, &lexical))
	assert.Equal(t, "x__velocity", lexical.Name)
	assert.Equal(t, "consecutive underscores", lexical.Reason)
}

func TestTokens(t *testing.T) {
	assert.Nil(t, names.Tokens(""))
	assert.Equal(t, []string{"x", "velocity"}, names.Tokens("x_velocity"))
}
