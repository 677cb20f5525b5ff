package storage

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zefrenchwan/standardnames.git/nodes"
	"github.com/zefrenchwan/standardnames.git/tables"
)

// xmlTable is the root element of the tag tree format, whatever its name
type xmlTable struct {
	XMLName       xml.Name
	Title         string     `xml:"title"`
	Identifier    string     `xml:"identifier"`
	Version       string     `xml:"version"`
	VersionNumber string     `xml:"version_number"`
	LastModified  string     `xml:"last_modified"`
	Institution   string     `xml:"institution"`
	Contact       string     `xml:"contact"`
	Description   string     `xml:"description"`
	Entries       []xmlEntry `xml:"entry"`
	Aliases       []xmlAlias `xml:"alias"`
}

// xmlEntry is a standard name
type xmlEntry struct {
	Id             string `xml:"id,attr"`
	CanonicalUnits string `xml:"canonical_units"`
	Description    string `xml:"description"`
}

// xmlAlias is an old name pointing to an entry
type xmlAlias struct {
	Id      string   `xml:"id,attr"`
	EntryId []string `xml:"entry_id"`
}

// ReadXML reads a table in the tag tree format
func ReadXML(reader io.Reader, options ParseOptions) (*tables.Table, error) {
	var document xmlTable
	if err := xml.NewDecoder(reader).Decode(&document); err != nil {
		return nil, fmt.Errorf("invalid xml document: %w", err)
	}

	metadata := tables.Metadata{
		Title:       strings.TrimSpace(document.Title),
		Identifier:  strings.TrimSpace(document.Identifier),
		Version:     strings.TrimSpace(document.Version),
		Description: strings.TrimSpace(document.Description),
	}

	if metadata.Version == "" {
		metadata.Version = strings.TrimSpace(document.VersionNumber)
	}

	if metadata.Title == "" {
		metadata.Title = document.XMLName.Local
	}

	var globalErr error
	if modified, err := parseDate(strings.TrimSpace(document.LastModified)); err != nil {
		globalErr = errors.Join(globalErr, err)
	} else {
		metadata.Modified = modified
	}

	table := tables.NewTable(metadata, options.tableOptions()...)
	if attribution, found := xmlContact(document); found {
		globalErr = errors.Join(globalErr, table.AddAttribution(attribution))
	}

	declared := make(map[string]nodes.StandardName, len(document.Entries))
	for _, entry := range document.Entries {
		name := strings.TrimSpace(entry.Id)
		units := strings.TrimSpace(entry.CanonicalUnits)
		if units == "" {
			table.AddWarning(fmt.Errorf("entry %s has no canonical units", name))
		}

		standardName, err := nodes.NewStandardName(name, units, strings.TrimSpace(entry.Description), nodes.Untagged)
		if err != nil {
			globalErr = errors.Join(globalErr, err)
			continue
		} else if err := table.AddStandardName(standardName); err != nil {
			globalErr = errors.Join(globalErr, err)
			continue
		}

		declared[name], _ = table.GetStandardName(name)
	}

	for _, alias := range document.Aliases {
		name := strings.TrimSpace(alias.Id)
		if len(alias.EntryId) != 1 {
			// an alias split into many names is not a standard name of its own
			table.AddWarning(fmt.Errorf("alias %s points to %d entries", name, len(alias.EntryId)))
			continue
		}

		target, found := declared[strings.TrimSpace(alias.EntryId[0])]
		if !found {
			table.AddWarning(fmt.Errorf("alias %s points to unknown entry %s", name, alias.EntryId[0]))
			continue
		}

		standardName, err := nodes.NewStandardName(name, target.Unit, target.Description, target.Kind)
		if err != nil {
			globalErr = errors.Join(globalErr, err)
			continue
		}

		standardName.UnitWarning = target.UnitWarning
		standardName.Alias = target.Id
		globalErr = errors.Join(globalErr, table.AddStandardName(standardName))
	}

	if globalErr != nil {
		return nil, globalErr
	}

	options.logger().Infow("xml table read", "title", metadata.Title, "entries", len(document.Entries), "aliases", len(document.Aliases))
	return table, table.Validate()
}

// xmlContact returns the attribution for the contact of the table, if any.
// An email contact of an institution is that organization
func xmlContact(document xmlTable) (nodes.Attribution, bool) {
	contact := strings.TrimSpace(document.Contact)
	institution := strings.TrimSpace(document.Institution)
	switch {
	case contact == "" && institution == "":
		return nodes.Attribution{}, false
	case isEmail(contact) && institution != "":
		organization := nodes.NewOrganization(institution, strings.TrimPrefix(contact, "mailto:"), "")
		return nodes.NewAttribution(organization, nodes.RoleContactPerson), true
	case contact == "":
		return nodes.NewAttribution(nodes.NewOrganization(institution, "", ""), ""), true
	default:
		return nodes.NewAttribution(agentFromString(contact), nodes.RoleContactPerson), true
	}
}
