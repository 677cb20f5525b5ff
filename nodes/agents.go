package nodes

import (
	"fmt"
	"strings"
)

// AgentKind is either a person or an organization
type AgentKind int

const (
	// Person is a natural person
	Person AgentKind = iota
	// Organization is an institution, a group or a company
	Organization
)

// ClassIRI returns the class of an agent of that kind
func (k AgentKind) ClassIRI() string {
	if k == Organization {
		return CLASS_ORGANIZATION
	}

	return CLASS_PERSON
}

// Agent is a person or an organization, used for metadata only
type Agent struct {
	// Id of the agent, an ORCID for instance
	Id string
	// Kind is person or organization
	Kind AgentKind
	// Name is the full name (organizations, or persons given as a single string)
	Name string
	// FirstName of a person
	FirstName string
	// LastName of a person
	LastName string
	// Email of the agent
	Email string
	// Orcid of a person, as the bare identifier 0000-0000-0000-0000
	Orcid string
	// Url of an organization
	Url string
	// RorId of an organization
	RorId string
}

// ORCID_PREFIX turns an ORCID into an identifier
const ORCID_PREFIX = "https://orcid.org/"

// NewPerson returns a person with a fresh identifier, or its ORCID identifier if any
func NewPerson(firstName, lastName, email, orcid string) Agent {
	person := Agent{
		Kind:      Person,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Orcid:     strings.TrimPrefix(orcid, ORCID_PREFIX),
	}

	person.Id = person.defaultId()
	return person
}

// NewOrganization returns an organization with a fresh identifier
func NewOrganization(name, email, url string) Agent {
	return Agent{
		Id:    NewId(),
		Kind:  Organization,
		Name:  name,
		Email: email,
		Url:   url,
	}
}

// defaultId promotes the ORCID to the identifier, or creates a fresh one
func (a Agent) defaultId() string {
	if a.Orcid != "" {
		return ORCID_PREFIX + a.Orcid
	}

	return NewId()
}

// PromoteOrcid sets the identifier from the ORCID when no identifier is set
func (a *Agent) PromoteOrcid() {
	if a == nil {
		return
	}

	a.Orcid = strings.TrimPrefix(a.Orcid, ORCID_PREFIX)
	if a.Id == "" {
		a.Id = a.defaultId()
	}
}

// DisplayName returns the name to display: full name, or first and last name, or email
func (a Agent) DisplayName() string {
	full := strings.TrimSpace(a.FirstName + " " + a.LastName)
	switch {
	case a.Name != "":
		return a.Name
	case full != "":
		return full
	case a.Email != "":
		return a.Email
	default:
		return a.Id
	}
}

// String returns the display name and the email, if any
func (a Agent) String() string {
	if a.Email != "" && a.Email != a.DisplayName() {
		return fmt.Sprintf("%s (%s)", a.DisplayName(), a.Email)
	}

	return a.DisplayName()
}

// Attribution links an agent to its role
type Attribution struct {
	// Id of the attribution, blank in general
	Id string
	// Agent is the person or organization
	Agent Agent
	// Role is an identifier from the role vocabulary, may be empty
	Role Role
}

// NewAttribution returns an attribution with a fresh identifier
func NewAttribution(agent Agent, role Role) Attribution {
	return Attribution{Id: NewId(), Agent: agent, Role: role}
}
