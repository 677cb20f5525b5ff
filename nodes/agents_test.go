package nodes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zefrenchwan/standardnames.git/nodes"
)

func TestPersonOrcid(t *testing.T) {
	person := nodes.NewPerson("Ada", "Lovelace", "ada@example.org", "0000-0001-2345-6789")
	assert.Equal(t, "https://orcid.org/0000-0001-2345-6789", person.Id)
	assert.Equal(t, "Ada Lovelace", person.DisplayName())
	assert.Equal(t, "Ada Lovelace (ada@example.org)", person.String())

	anonymous := nodes.Agent{Kind: nodes.Person, Orcid: "https://orcid.org/0000-0002-0000-0000"}
	anonymous.PromoteOrcid()
	assert.Equal(t, "0000-0002-0000-0000", anonymous.Orcid)
	assert.Equal(t, "https://orcid.org/0000-0002-0000-0000", anonymous.Id)
}

func TestOrganization(t *testing.T) {
	organization := nodes.NewOrganization("Example Institute", "contact@example.org", "https://example.org")
	assert.True(t, nodes.IsBlankId(organization.Id))
	assert.Equal(t, nodes.CLASS_ORGANIZATION, organization.Kind.ClassIRI())
	assert.Equal(t, "Example Institute", organization.DisplayName())
}

func TestParseRole(t *testing.T) {
	role, err := nodes.ParseRole("contactperson")
	require.NoError(t, err)
	assert.Equal(t, nodes.RoleContactPerson, role)

	role, err = nodes.ParseRole(nodes.M4I_NAMESPACE + "Supervisor")
	require.NoError(t, err)
	assert.Equal(t, nodes.RoleSupervisor, role)

	role, err = nodes.ParseRole("m4i:Researcher")
	require.NoError(t, err)
	assert.Equal(t, "Researcher", role.ShortName())

	role, err = nodes.ParseRole("")
	assert.NoError(t, err)
	assert.Empty(t, role)

	_, err = nodes.ParseRole("Astronaut")
	assert.Error(t, err)

	assert.Len(t, nodes.Roles(), 15)
}
