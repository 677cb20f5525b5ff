package storage_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zefrenchwan/standardnames.git/nodes"
	"github.com/zefrenchwan/standardnames.git/storage"
	"github.com/zefrenchwan/standardnames.git/tables"
)

func TestEncodeMarkdown(t *testing.T) {
	table := readFixture(t, "testdata/fluid.yaml")
	var buffer bytes.Buffer
	require.NoError(t, storage.EncodeMarkdown(&buffer, table))
	content := buffer.String()

	assert.Contains(t, content, "# Fluid standard names\n")
	assert.Contains(t, content, "Version: v1.0.0")
	assert.Contains(t, content, "- Ada Lovelace (ORCID: 0000-0002-1825-0097), ContactPerson")
	assert.Contains(t, content, "Construction: `[component] standard_name [in medium]`")
	assert.Contains(t, content, "### in medium")
	assert.Contains(t, content, "| air | in air |")
	assert.Contains(t, content, "| fan | the fan upstream of the test section |")
	assert.Contains(t, content, "| derivative_of_X_wrt_Y | [X]/[Y] | derivative of X with respect to Y |")
	assert.Contains(t, content, "| Name | Unit | Description | Alias of |")
	assert.Contains(t, content, "| velocity | m/s | the velocity |  |")
	assert.Contains(t, content, `| pressure | Pa | the static pressure \| absolute |  |`)
	assert.Contains(t, content, "| static_pressure | Pa | the static pressure | pressure |")
}

func TestEncodeMarkdownWithoutAliases(t *testing.T) {
	table := tables.NewTable(tables.Metadata{})
	standardName, err := nodes.NewStandardName("air_temperature", "K", "the temperature of air", nodes.Scalar)
	require.NoError(t, err)
	require.NoError(t, table.AddStandardName(standardName))

	var buffer bytes.Buffer
	require.NoError(t, storage.EncodeMarkdown(&buffer, table))
	content := buffer.String()
	assert.Contains(t, content, "# Standard name table")
	assert.Contains(t, content, "| Name | Unit | Description |\n")
	assert.NotContains(t, content, "Alias of")
	assert.NotContains(t, content, "## Qualifications")
	assert.Contains(t, content, "| air_temperature | K | the temperature of air |")
}

func TestEncodeMarkdownNestedConstruction(t *testing.T) {
	document := `qualifications:
  construction: "[a] [b] standard_name [c] [d]"
  phrases:
    a:
      values: [upper]
    b:
      values: [mean]
    c:
      values: [north]
    d:
      values: [daily]
standard_names:
  speed:
    units: m/s
`
	table, err := storage.ReadYAML(strings.NewReader(document), storage.ParseOptions{})
	require.NoError(t, err)
	assert.True(t, table.VerifyName("upper_mean_speed_north_daily"))

	var buffer bytes.Buffer
	require.NoError(t, storage.EncodeMarkdown(&buffer, table))
	assert.Contains(t, buffer.String(), "Construction: `[a] [[b] standard_name [c]] [d]`")
}
