package storage

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/zefrenchwan/standardnames.git/nodes"
	"github.com/zefrenchwan/standardnames.git/tables"
)

// EncodeMarkdown writes a human readable description of the table
func EncodeMarkdown(writer io.Writer, table *tables.Table) error {
	buffer := bufio.NewWriter(writer)
	metadata := table.Metadata()
	title := metadata.Title
	if title == "" {
		title = "Standard name table"
	}

	fmt.Fprintf(buffer, "# %s\n\n", escapeMarkdown(title))
	if metadata.Version != "" {
		fmt.Fprintf(buffer, "Version: %s\n\n", escapeMarkdown(metadata.Version))
	}

	if metadata.Identifier != "" {
		fmt.Fprintf(buffer, "Identifier: %s\n\n", metadata.Identifier)
	}

	if !metadata.Created.IsZero() {
		fmt.Fprintf(buffer, "Created: %s\n\n", metadata.Created.UTC().Format(time.DateOnly))
	}

	if !metadata.Modified.IsZero() {
		fmt.Fprintf(buffer, "Last modified: %s\n\n", metadata.Modified.UTC().Format(time.DateOnly))
	}

	if metadata.Description != "" {
		fmt.Fprintf(buffer, "%s\n\n", metadata.Description)
	}

	if attributions := table.Attributions(); len(attributions) != 0 {
		fmt.Fprint(buffer, "## Authors\n\n")
		for _, attribution := range attributions {
			line := attribution.Agent.DisplayName()
			if attribution.Agent.Orcid != "" {
				line = fmt.Sprintf("%s (ORCID: %s)", line, attribution.Agent.Orcid)
			}

			if attribution.Role != "" {
				line = line + ", " + attribution.Role.ShortName()
			}

			fmt.Fprintf(buffer, "- %s\n", escapeMarkdown(line))
		}

		fmt.Fprintln(buffer)
	}

	if qualifications := table.Qualifications(); len(qualifications) != 0 {
		grammar := table.Grammar()
		rule, errRule := grammar.NestedRule()
		if errRule != nil {
			return errRule
		}

		fmt.Fprint(buffer, "## Qualifications\n\n")
		fmt.Fprintf(buffer, "Construction: `%s`\n\n", rule)
		for _, qualification := range qualifications {
			fmt.Fprintf(buffer, "### %s\n\n", escapeMarkdown(qualification.Label()))
			if qualification.Description != "" {
				fmt.Fprintf(buffer, "%s\n\n", qualification.Description)
			}

			if qualification.VectorOnly {
				fmt.Fprint(buffer, "Applies to vector standard names only.\n\n")
			}

			writeValuesTable(buffer, qualification.ValidValues)
		}
	}

	if conceptSets := table.ConceptSets(); len(conceptSets) != 0 {
		fmt.Fprint(buffer, "## Domain concept sets\n\n")
		for _, conceptSet := range conceptSets {
			fmt.Fprintf(buffer, "### %s\n\n", escapeMarkdown(conceptSet.Name))
			if conceptSet.Description != "" {
				fmt.Fprintf(buffer, "%s\n\n", conceptSet.Description)
			}

			writeValuesTable(buffer, conceptSet.Values)
		}
	}

	if transformations := table.Transformations(); len(transformations) != 0 {
		fmt.Fprint(buffer, "## Transformations\n\n")
		fmt.Fprint(buffer, "| Name | Unit | Description |\n|---|---|---|\n")
		for _, transformation := range transformations {
			fmt.Fprintf(buffer, "| %s | %s | %s |\n",
				escapeMarkdown(transformation.Name),
				escapeMarkdown(transformation.AltersUnit),
				escapeMarkdown(transformation.Description),
			)
		}

		fmt.Fprintln(buffer)
	}

	writeStandardNamesTable(buffer, table)
	return buffer.Flush()
}

// writeValuesTable writes tokens and their descriptions
func writeValuesTable(writer io.Writer, values []nodes.ValidValue) {
	if len(values) == 0 {
		return
	}

	fmt.Fprint(writer, "| Value | Description |\n|---|---|\n")
	for _, value := range values {
		fmt.Fprintf(writer, "| %s | %s |\n", escapeMarkdown(value.StringValue), escapeMarkdown(value.VariableDescription))
	}

	fmt.Fprintln(writer)
}

// writeStandardNamesTable writes the standard names, units as symbols.
// The alias column appears only if a name is an alias
func writeStandardNamesTable(writer io.Writer, table *tables.Table) {
	standardNames := table.StandardNames()
	fmt.Fprint(writer, "## Standard names\n\n")
	if len(standardNames) == 0 {
		fmt.Fprint(writer, "No standard name.\n")
		return
	}

	namesPerId := make(map[string]string, len(standardNames))
	withAliases := false
	for _, standardName := range standardNames {
		namesPerId[standardName.Id] = standardName.Name
		withAliases = withAliases || standardName.IsAlias()
	}

	if withAliases {
		fmt.Fprint(writer, "| Name | Unit | Description | Alias of |\n|---|---|---|---|\n")
	} else {
		fmt.Fprint(writer, "| Name | Unit | Description |\n|---|---|---|\n")
	}

	for _, standardName := range standardNames {
		unit := table.UnitSymbol(standardName.Unit)
		if standardName.UnitWarning {
			unit = unit + " (unparsed)"
		}

		line := fmt.Sprintf("| %s | %s | %s |",
			escapeMarkdown(standardName.Name),
			escapeMarkdown(unit),
			escapeMarkdown(standardName.Description),
		)

		if withAliases {
			alias, found := namesPerId[standardName.Alias]
			if !found {
				alias = standardName.Alias
			}

			line = line + " " + escapeMarkdown(alias) + " |"
		}

		fmt.Fprintln(writer, line)
	}
}

// escapeMarkdown keeps a value on one table cell
func escapeMarkdown(value string) string {
	value = strings.ReplaceAll(value, "|", "\\|")
	value = strings.ReplaceAll(value, "\r\n", " ")
	return strings.ReplaceAll(value, "\n", " ")
}
