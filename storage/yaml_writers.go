package storage

import (
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zefrenchwan/standardnames.git/nodes"
	"github.com/zefrenchwan/standardnames.git/patterns"
	"github.com/zefrenchwan/standardnames.git/tables"
)

// EncodeYAML writes the table in the key value text format.
// Blank identifiers are resolved against the base uri of options
func EncodeYAML(writer io.Writer, table *tables.Table, options WriteOptions) error {
	if options.BaseURI == "" {
		return ErrMissingBaseURI
	}

	document := yamlDocument(table, options.BaseURI)
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(document); err != nil {
		return err
	}

	return encoder.Close()
}

// yamlDocument builds the mapping node of the table, keys in a fixed order
func yamlDocument(table *tables.Table, base string) *yaml.Node {
	metadata := table.Metadata()
	root := newMapping()
	addScalar(root, "name", metadata.Title)
	addScalar(root, "version", metadata.Version)
	addScalar(root, "description", metadata.Description)
	addScalar(root, "identifier", metadata.Identifier)
	if !metadata.Created.IsZero() {
		addScalar(root, "created", metadata.Created.UTC().Format(time.RFC3339))
	}

	if !metadata.Modified.IsZero() {
		addScalar(root, "modified", metadata.Modified.UTC().Format(time.RFC3339))
	}

	if attributions := table.Attributions(); len(attributions) != 0 {
		creators := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, attribution := range attributions {
			creators.Content = append(creators.Content, yamlCreator(attribution))
		}

		addNode(root, "creator", creators)
	}

	grammar := table.Grammar()
	if qualifications := grammar.Qualifications(); len(qualifications) != 0 {
		addNode(root, "qualifications", yamlQualificationsNode(&grammar))
	}

	if conceptSets := grammar.ConceptSets(); len(conceptSets) != 0 {
		sets := newMapping()
		for _, conceptSet := range conceptSets {
			set := newMapping()
			addScalar(set, "description", conceptSet.Description)
			addNode(set, "values", yamlValuesNode(conceptSet.Values))
			addNode(sets, conceptSet.Name, set)
		}

		addNode(root, "domain_concept_sets", sets)
	}

	if transformations := grammar.Transformations(); len(transformations) != 0 {
		templates := newMapping()
		for _, transformation := range transformations {
			templates.Content = append(templates.Content, yamlTransformationNode(transformation, &grammar)...)
		}

		addNode(root, "transformations", templates)
	}

	standardNames := table.StandardNames()
	namesPerId := make(map[string]string, len(standardNames))
	for _, standardName := range standardNames {
		namesPerId[standardName.Id] = standardName.Name
	}

	entries := newMapping()
	for _, standardName := range standardNames {
		entry := newMapping()
		if !nodes.IsBlankId(standardName.Id) {
			addScalar(entry, "id", standardName.Id)
		}

		addScalar(entry, "units", table.UnitSymbol(standardName.Unit))
		addScalar(entry, "description", standardName.Description)
		if standardName.Kind != nodes.Untagged {
			addBool(entry, "vector", standardName.IsVector())
		}

		if target, found := namesPerId[standardName.Alias]; found {
			addScalar(entry, "alias", target)
		} else {
			addScalar(entry, "alias", nodes.ResolveId(standardName.Alias, base))
		}

		addNode(entries, standardName.Name, entry)
	}

	addNode(root, "standard_names", entries)
	return root
}

// yamlCreator writes an agent and its role
func yamlCreator(attribution nodes.Attribution) *yaml.Node {
	agent := attribution.Agent
	creator := newMapping()
	if agent.Kind == nodes.Organization {
		addScalar(creator, "type", "Organization")
	}

	if agent.Orcid == "" && !nodes.IsBlankId(agent.Id) {
		addScalar(creator, "id", agent.Id)
	}

	addScalar(creator, "name", agent.Name)
	addScalar(creator, "first_name", agent.FirstName)
	addScalar(creator, "last_name", agent.LastName)
	addScalar(creator, "email", agent.Email)
	addScalar(creator, "orcid", agent.Orcid)
	addScalar(creator, "url", agent.Url)
	addScalar(creator, "ror_id", agent.RorId)
	addScalar(creator, "role", attribution.Role.ShortName())
	return creator
}

// yamlQualificationsNode writes the construction and the phrases, phrases in grammar order
func yamlQualificationsNode(grammar *patterns.Grammar) *yaml.Node {
	result := newMapping()
	order, err := grammar.Order()
	if err != nil {
		// unordered grammars cannot be loaded, phrases keep declaration order
		order = nil
		for _, qualification := range grammar.Qualifications() {
			order = append(order, qualification.Id)
		}
	}

	construction := ""
	phrases := newMapping()
	for _, id := range order {
		if construction != "" {
			construction += " "
		}

		if id == nodes.ANY_STANDARD_NAME {
			construction += patterns.HOLE
			continue
		}

		qualification, _ := grammar.Qualification(id)
		construction += "[" + qualification.Phrase() + "]"
		phrase := newMapping()
		if !nodes.IsBlankId(qualification.Id) {
			addScalar(phrase, "id", qualification.Id)
		}

		addScalar(phrase, "name", qualification.Name)
		addScalar(phrase, "preposition", qualification.Preposition)
		addScalar(phrase, "description", qualification.Description)
		if qualification.VectorOnly {
			addBool(phrase, "vector", true)
		}

		addNode(phrase, "values", yamlValuesNode(qualification.ValidValues))
		addNode(phrases, qualification.Phrase(), phrase)
	}

	addScalar(result, "construction", construction)
	addNode(result, "phrases", phrases)
	return result
}

// yamlValuesNode writes token: description pairs
func yamlValuesNode(values []nodes.ValidValue) *yaml.Node {
	result := newMapping()
	for _, value := range values {
		addNode(result, value.StringValue, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value.VariableDescription})
	}

	return result
}

// yamlTransformationNode returns the key and value nodes of a template
func yamlTransformationNode(transformation nodes.Transformation, grammar *patterns.Grammar) []*yaml.Node {
	template := newMapping()
	addScalar(template, "description", transformation.Description)
	addScalar(template, "alters_unit", transformation.AltersUnit)
	characters := newMapping()
	for _, character := range transformation.Characters {
		reference := patterns.HOLE
		switch character.AssociatedWith.Kind {
		case nodes.QualificationOperand:
			qualification, _ := grammar.Qualification(character.AssociatedWith.Ref)
			reference = qualification.Name
		case nodes.ConceptSetOperand:
			conceptSet, _ := grammar.ConceptSet(character.AssociatedWith.Ref)
			reference = conceptSet.Name
		}

		addScalar(characters, character.Letter, reference)
	}

	addNode(template, "characters", characters)
	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: transformation.Name}
	return []*yaml.Node{key, template}
}
