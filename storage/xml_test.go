package storage_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zefrenchwan/standardnames.git/nodes"
	"github.com/zefrenchwan/standardnames.git/storage"
	"github.com/zefrenchwan/standardnames.git/units"
)

func TestReadXML(t *testing.T) {
	table := readFixture(t, "testdata/cf.xml")
	metadata := table.Metadata()
	assert.Equal(t, "standard_name_table", metadata.Title)
	assert.Equal(t, "84", metadata.Version)
	assert.Equal(t, time.Date(2024, 1, 19, 15, 55, 10, 0, time.UTC), metadata.Modified)

	attributions := table.Attributions()
	require.Len(t, attributions, 1)
	assert.Equal(t, nodes.Organization, attributions[0].Agent.Kind)
	assert.Equal(t, "Centre for Environmental Data Analysis", attributions[0].Agent.Name)
	assert.Equal(t, "support@ceda.ac.uk", attributions[0].Agent.Email)
	assert.Equal(t, nodes.RoleContactPerson, attributions[0].Role)

	density, found := table.GetStandardName("air_density")
	require.True(t, found)
	assert.Equal(t, units.QUDT_UNIT_NAMESPACE+"KiloGM-PER-M3", density.Unit)
	assert.Equal(t, "The mass of air per unit volume.", density.Description)

	pressure, found := table.GetStandardName("air_pressure")
	require.True(t, found)
	alias, found := table.GetStandardName("atmosphere_pressure")
	require.True(t, found)
	assert.Equal(t, pressure.Id, alias.Alias)
	assert.Equal(t, pressure.Unit, alias.Unit)
	assert.Equal(t, pressure.Description, alias.Description)

	cloud, found := table.GetStandardName("cloud_type")
	require.True(t, found)
	assert.Equal(t, units.DIMENSIONLESS, cloud.Unit)

	assert.False(t, table.VerifyName("unknown_target"))
	assert.Len(t, table.Warnings(), 2)
}

func TestReadXMLContactAsPerson(t *testing.T) {
	document := `<table><version>1</version><contact>Jane Doe</contact></table>`
	table, err := storage.ReadXML(bytes.NewBufferString(document), storage.ParseOptions{})
	require.NoError(t, err)
	attributions := table.Attributions()
	require.Len(t, attributions, 1)
	assert.Equal(t, nodes.Person, attributions[0].Agent.Kind)
	assert.Equal(t, "Jane Doe", attributions[0].Agent.Name)
	assert.Equal(t, "1", table.Metadata().Version)
}

func TestReadXMLErrors(t *testing.T) {
	for _, document := range []string{
		`<table><entry id="Bad Name"><canonical_units>m</canonical_units></entry></table>`,
		`<table><entry id="air_pressure"/><entry id="air_pressure"/></table>`,
		`<table><last_modified>yesterday</last_modified></table>`,
		`<table>`,
	} {
		_, err := storage.ReadXML(bytes.NewBufferString(document), storage.ParseOptions{})
		assert.Error(t, err, document)
	}
}
