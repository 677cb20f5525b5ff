package nodes

import "strings"

// Role is the identifier of a role in the metadata4ing vocabulary
type Role string

// Closed set of roles for attributions
const (
	RoleContactPerson         Role = M4I_NAMESPACE + "ContactPerson"
	RoleOther                 Role = M4I_NAMESPACE + "Other"
	RoleProducer              Role = M4I_NAMESPACE + "Producer"
	RoleProjectLeader         Role = M4I_NAMESPACE + "ProjectLeader"
	RoleProjectManager        Role = M4I_NAMESPACE + "ProjectManager"
	RoleProjectMember         Role = M4I_NAMESPACE + "ProjectMember"
	RoleRegistrationAgency    Role = M4I_NAMESPACE + "RegistrationAgency"
	RoleRegistrationAuthority Role = M4I_NAMESPACE + "RegistrationAuthority"
	RoleRelatedPerson         Role = M4I_NAMESPACE + "RelatedPerson"
	RoleResearchGroup         Role = M4I_NAMESPACE + "ResearchGroup"
	RoleResearcher            Role = M4I_NAMESPACE + "Researcher"
	RoleRightsHolder          Role = M4I_NAMESPACE + "RightsHolder"
	RoleSponsor               Role = M4I_NAMESPACE + "Sponsor"
	RoleSupervisor            Role = M4I_NAMESPACE + "Supervisor"
	RoleWorkPackageLeader     Role = M4I_NAMESPACE + "WorkPackageLeader"
)

// Roles returns all accepted roles
func Roles() []Role {
	return []Role{
		RoleContactPerson, RoleOther, RoleProducer, RoleProjectLeader, RoleProjectManager,
		RoleProjectMember, RoleRegistrationAgency, RoleRegistrationAuthority, RoleRelatedPerson,
		RoleResearchGroup, RoleResearcher, RoleRightsHolder, RoleSponsor, RoleSupervisor,
		RoleWorkPackageLeader,
	}
}

// ShortName returns the local name of the role, for instance ContactPerson
func (r Role) ShortName() string {
	return strings.TrimPrefix(string(r), M4I_NAMESPACE)
}

// ParseRole accepts a short name (case insensitive) or a role identifier.
// Empty value returns an empty role
func ParseRole(value string) (Role, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}

	trimmed = strings.TrimPrefix(trimmed, "m4i:")
	for _, role := range Roles() {
		if string(role) == trimmed || strings.EqualFold(role.ShortName(), trimmed) {
			return role, nil
		}
	}

	return "", NewValidationError("role", "unknown role %q", value)
}
