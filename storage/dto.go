package storage

import (
	"time"

	"github.com/zefrenchwan/standardnames.git/nodes"
	"github.com/zefrenchwan/standardnames.git/tables"
)

const (
	// DATE_SERDE_FORMAT is the format for dates to use in json
	DATE_SERDE_FORMAT = "2006-01-02T15:04:05"
)

// TableSummaryDTO describes a stored or loaded table
type TableSummaryDTO struct {
	Id            string `json:"id"`
	Title         string `json:"title"`
	Version       string `json:"version,omitempty"`
	Identifier    string `json:"identifier,omitempty"`
	BaseURI       string `json:"base_uri,omitempty"`
	StandardNames int    `json:"standard_names"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// StandardNameDTO is a standard name with its human readable unit
type StandardNameDTO struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	UnitSymbol  string `json:"unit_symbol"`
	UnitWarning bool   `json:"unit_warning,omitempty"`
	Description string `json:"description,omitempty"`
	Kind        string `json:"kind"`
	Alias       string `json:"alias,omitempty"`
	Table       string `json:"table,omitempty"`
}

// VerificationDTO is the result of a name verification
type VerificationDTO struct {
	Name  string `json:"name"`
	Valid bool   `json:"valid"`
}

// NewStandardNameDTO returns the dto of a standard name, units displayed with the symbols of the table
func NewStandardNameDTO(table *tables.Table, standardName nodes.StandardName) StandardNameDTO {
	return StandardNameDTO{
		Id:          standardName.Id,
		Name:        standardName.Name,
		Unit:        standardName.Unit,
		UnitSymbol:  table.UnitSymbol(standardName.Unit),
		UnitWarning: standardName.UnitWarning,
		Description: standardName.Description,
		Kind:        standardName.Kind.String(),
		Alias:       standardName.Alias,
		Table:       standardName.Table,
	}
}

// ParseKind returns the kind for its name, untagged if unknown
func ParseKind(value string) nodes.Kind {
	switch value {
	case nodes.Scalar.String():
		return nodes.Scalar
	case nodes.Vector.String():
		return nodes.Vector
	default:
		return nodes.Untagged
	}
}

// NewTableSummaryDTO describes a table registered under id
func NewTableSummaryDTO(id string, table *tables.Table, baseURI string, updatedAt time.Time) TableSummaryDTO {
	metadata := table.Metadata()
	result := TableSummaryDTO{
		Id:            id,
		Title:         metadata.Title,
		Version:       metadata.Version,
		Identifier:    metadata.Identifier,
		BaseURI:       baseURI,
		StandardNames: len(table.StandardNames()),
	}

	if !updatedAt.IsZero() {
		result.UpdatedAt = updatedAt.UTC().Format(DATE_SERDE_FORMAT)
	}

	return result
}
