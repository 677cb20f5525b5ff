package storage

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zefrenchwan/standardnames.git/nodes"
	"github.com/zefrenchwan/standardnames.git/patterns"
	"github.com/zefrenchwan/standardnames.git/tables"
)

// yamlAnyStandardName are the values of a character bound to any standard name
var yamlAnyStandardName = []string{patterns.HOLE, "AnyStandardName", nodes.ANY_STANDARD_NAME}

// ReadYAML reads a table in the key value text format
func ReadYAML(reader io.Reader, options ParseOptions) (*tables.Table, error) {
	var document yaml.Node
	if err := yaml.NewDecoder(reader).Decode(&document); err != nil {
		return nil, fmt.Errorf("invalid yaml document: %w", err)
	}

	root, errRoot := mappingPairs(&document)
	if errRoot != nil {
		return nil, errRoot
	}

	metadata, errMetadata := yamlMetadata(root)
	if errMetadata != nil {
		return nil, errMetadata
	}

	table := tables.NewTable(metadata, options.tableOptions()...)
	var globalErr error
	for _, creator := range sequenceOrSingle(lookup(root, "creator", "creators", "author", "authors")) {
		if attribution, err := yamlAttribution(creator); err != nil {
			globalErr = errors.Join(globalErr, err)
		} else if err := table.AddAttribution(attribution); err != nil {
			globalErr = errors.Join(globalErr, err)
		}
	}

	grammar, errGrammar := yamlGrammar(root)
	if errGrammar != nil {
		globalErr = errors.Join(globalErr, errGrammar)
	} else if err := table.SetGrammar(grammar); err != nil {
		globalErr = errors.Join(globalErr, err)
	}

	standardNames, errNames := mappingPairs(lookup(root, "standard_names", "standardNames", "standard_name", "entries"))
	if errNames != nil {
		globalErr = errors.Join(globalErr, errNames)
	}

	var declared []nodes.StandardName
	idsPerName := make(map[string]string)
	for _, pair := range standardNames {
		if standardName, err := yamlStandardName(pair, metadata.Identifier); err != nil {
			globalErr = errors.Join(globalErr, err)
		} else {
			declared = append(declared, standardName)
			idsPerName[standardName.Name] = standardName.Id
		}
	}

	// aliases refer to names in this format
	for _, standardName := range declared {
		if id, found := idsPerName[standardName.Alias]; found {
			standardName.Alias = id
		}

		if err := table.AddStandardName(standardName); err != nil {
			globalErr = errors.Join(globalErr, err)
		}
	}

	if globalErr != nil {
		return nil, globalErr
	}

	return table, table.Validate()
}

// yamlMetadata reads title, version, description, identifier and dates
func yamlMetadata(root []yamlPair) (tables.Metadata, error) {
	result := tables.Metadata{
		Title:       scalarValue(lookup(root, "name", "title")),
		Version:     scalarValue(lookup(root, "version")),
		Description: scalarValue(lookup(root, "description")),
		Identifier:  scalarValue(lookup(root, "identifier", "id")),
	}

	var globalErr error
	var err error
	if result.Created, err = parseDate(scalarValue(lookup(root, "created"))); err != nil {
		globalErr = errors.Join(globalErr, err)
	}

	if result.Modified, err = parseDate(scalarValue(lookup(root, "modified", "last_modified"))); err != nil {
		globalErr = errors.Join(globalErr, err)
	}

	return result, globalErr
}

// parseDate accepts RFC 3339 dates, or dates with no time. Empty value returns zero time
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	for _, layout := range []string{time.RFC3339, DATE_SERDE_FORMAT, time.DateOnly} {
		if result, err := time.Parse(layout, value); err == nil {
			return result.UTC(), nil
		}
	}

	return time.Time{}, nodes.NewValidationError("date", "cannot parse %q", value)
}

// yamlAttribution reads a creator: a string, or a mapping describing a person or an organization
func yamlAttribution(node *yaml.Node) (nodes.Attribution, error) {
	if node.Kind == yaml.ScalarNode {
		return nodes.NewAttribution(agentFromString(scalarValue(node)), ""), nil
	}

	pairs, err := mappingPairs(node)
	if err != nil {
		return nodes.Attribution{}, err
	}

	agent := nodes.Agent{
		Id:        scalarValue(lookup(pairs, "id", "@id")),
		Name:      scalarValue(lookup(pairs, "name")),
		FirstName: scalarValue(lookup(pairs, "first_name", "firstName", "given_name")),
		LastName:  scalarValue(lookup(pairs, "last_name", "lastName", "family_name")),
		Email:     scalarValue(lookup(pairs, "email", "mbox", "mail")),
		Orcid:     scalarValue(lookup(pairs, "orcid", "orcid_id", "orcidId")),
		Url:       scalarValue(lookup(pairs, "url", "homepage")),
		RorId:     scalarValue(lookup(pairs, "ror", "ror_id", "rorId")),
	}

	kind := strings.ToLower(scalarValue(lookup(pairs, "type", "kind")))
	if kind == "organization" || kind == "organisation" || (kind == "" && agent.FirstName == "" && agent.LastName == "" && (agent.Url != "" || agent.RorId != "")) {
		agent.Kind = nodes.Organization
	}

	agent.PromoteOrcid()
	role, errRole := nodes.ParseRole(scalarValue(lookup(pairs, "role", "had_role", "hadRole")))
	if errRole != nil {
		return nodes.Attribution{}, errRole
	}

	return nodes.NewAttribution(agent, role), nil
}

// agentFromString returns a person named value, or an agent with that email
func agentFromString(value string) nodes.Agent {
	if isEmail(value) {
		return nodes.Agent{Id: nodes.NewId(), Kind: nodes.Person, Email: value}
	}

	return nodes.Agent{Id: nodes.NewId(), Kind: nodes.Person, Name: value}
}

// isEmail returns true for a value shaped like an email
func isEmail(value string) bool {
	local, domain, found := strings.Cut(strings.TrimPrefix(value, "mailto:"), "@")
	return found && local != "" && strings.Contains(domain, ".") && !strings.ContainsAny(value, " \t")
}

// yamlGrammar reads qualifications, domain concept sets and transformations
func yamlGrammar(root []yamlPair) (patterns.Grammar, error) {
	grammar := patterns.NewGrammar()
	var globalErr error
	if qualifications := lookup(root, "qualifications"); qualifications != nil {
		if err := yamlQualifications(qualifications, &grammar); err != nil {
			globalErr = errors.Join(globalErr, err)
		}
	}

	conceptSets, errSets := mappingPairs(lookup(root, "domain_concept_sets", "domainConceptSets"))
	globalErr = errors.Join(globalErr, errSets)
	for _, pair := range conceptSets {
		conceptSet := nodes.NewDomainConceptSet(pair.key, "")
		if err := yamlValues(pair.value, &conceptSet.Description, conceptSet.AddValue); err != nil {
			globalErr = errors.Join(globalErr, err)
		} else if err := grammar.AddConceptSet(conceptSet); err != nil {
			globalErr = errors.Join(globalErr, err)
		}
	}

	transformations, errTransformations := mappingPairs(lookup(root, "transformations"))
	globalErr = errors.Join(globalErr, errTransformations)
	for _, pair := range transformations {
		if transformation, err := yamlTransformation(pair, &grammar); err != nil {
			globalErr = errors.Join(globalErr, err)
		} else if err := grammar.AddTransformation(transformation); err != nil {
			globalErr = errors.Join(globalErr, err)
		}
	}

	return grammar, globalErr
}

// yamlQualifications reads the construction and the phrases.
// Phrases on the left of standard_name are linked before the next phrase, the last one before the anchor.
// Phrases on the right are linked after the previous phrase, the first one after the anchor
func yamlQualifications(node *yaml.Node, grammar *patterns.Grammar) error {
	pairs, err := mappingPairs(node)
	if err != nil {
		return err
	}

	left, right, errConstruction := parseConstruction(scalarValue(lookup(pairs, "construction", "rule")))
	if errConstruction != nil {
		return errConstruction
	}

	phrases, errPhrases := mappingPairs(lookup(pairs, "phrases", "qualifications"))
	if errPhrases != nil {
		return errPhrases
	}

	declared := make(map[string]nodes.Qualification, len(phrases))
	var globalErr error
	for _, phrase := range phrases {
		qualification, err := yamlQualification(phrase)
		if err != nil {
			globalErr = errors.Join(globalErr, err)
			continue
		}

		declared[phrase.key] = qualification
	}

	if globalErr != nil {
		return globalErr
	}

	used := make(map[string]bool)
	for _, phrase := range append(append([]string{}, left...), right...) {
		if _, found := declared[phrase]; !found {
			globalErr = errors.Join(globalErr, nodes.NewValidationError("construction", "phrase %s has no definition", phrase))
		} else if used[phrase] {
			globalErr = errors.Join(globalErr, nodes.NewValidationError("construction", "phrase %s appears twice", phrase))
		}

		used[phrase] = true
	}

	for _, phrase := range phrases {
		if !used[phrase.key] {
			globalErr = errors.Join(globalErr, nodes.NewValidationError("phrases", "phrase %s is not in the construction", phrase.key))
		}
	}

	if globalErr != nil {
		return globalErr
	}

	for index := len(left) - 1; index >= 0; index-- {
		target := nodes.ANY_STANDARD_NAME
		if index < len(left)-1 {
			target = declared[left[index+1]].Id
		}

		qualification := declared[left[index]]
		qualification.SetBefore(target)
		declared[left[index]] = qualification
	}

	for index := range right {
		target := nodes.ANY_STANDARD_NAME
		if index > 0 {
			target = declared[right[index-1]].Id
		}

		qualification := declared[right[index]]
		qualification.SetAfter(target)
		declared[right[index]] = qualification
	}

	for _, phrase := range phrases {
		if err := grammar.AddQualification(declared[phrase.key]); err != nil {
			globalErr = errors.Join(globalErr, err)
		}
	}

	return globalErr
}

// parseConstruction splits a construction such as [component] standard_name [in_medium]
// into the phrases before and after standard_name
func parseConstruction(construction string) ([]string, []string, error) {
	if construction == "" {
		return nil, nil, nil
	}

	var left, right []string
	anchored := false
	for _, part := range strings.Fields(construction) {
		switch {
		case part == patterns.HOLE && anchored:
			return nil, nil, nodes.NewValidationError("construction", "%s appears twice in %q", patterns.HOLE, construction)
		case part == patterns.HOLE:
			anchored = true
		case strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]") && len(part) > 2:
			phrase := part[1 : len(part)-1]
			if anchored {
				right = append(right, phrase)
			} else {
				left = append(left, phrase)
			}
		default:
			return nil, nil, nodes.NewValidationError("construction", "unexpected %q in %q", part, construction)
		}
	}

	if !anchored {
		return nil, nil, nodes.NewValidationError("construction", "%s is missing in %q", patterns.HOLE, construction)
	}

	return left, right, nil
}

// yamlQualification reads a phrase: name, preposition, description, vector flag and values.
// With no explicit name, a phrase such as in_medium is read as preposition in and name medium
// only if the preposition is set
func yamlQualification(phrase yamlPair) (nodes.Qualification, error) {
	pairs, err := mappingPairs(phrase.value)
	if err != nil {
		return nodes.Qualification{}, err
	}

	preposition := scalarValue(lookup(pairs, "preposition", "hasPreposition"))
	name := scalarValue(lookup(pairs, "name"))
	if name == "" {
		name = strings.TrimPrefix(phrase.key, preposition+"_")
		if preposition == "" {
			name = phrase.key
		}
	}

	qualification := nodes.NewQualification(name, "")
	qualification.Preposition = preposition
	if id := scalarValue(lookup(pairs, "id", "@id")); id != "" {
		qualification.Id = id
	}

	vector, _, errVector := boolValue(lookup(pairs, "vector", "vector_only", "vectorOnly"))
	if errVector != nil {
		return nodes.Qualification{}, errVector
	}

	qualification.VectorOnly = vector
	if err := yamlValues(phrase.value, &qualification.Description, qualification.AddValidValue); err != nil {
		return nodes.Qualification{}, err
	}

	if qualification.Phrase() != phrase.key {
		return nodes.Qualification{}, nodes.NewValidationError("phrases", "phrase %s does not match name %s and preposition %s", phrase.key, name, preposition)
	}

	return qualification, nil
}

// yamlValues reads the description and the values of a qualification or a concept set.
// Values are either a mapping token: description, or a list of tokens
func yamlValues(node *yaml.Node, description *string, add func(string, string) error) error {
	pairs, err := mappingPairs(node)
	if err != nil {
		return err
	}

	*description = scalarValue(lookup(pairs, "description"))
	values := lookup(pairs, "values", "valid_values", "validValues")
	if values == nil {
		return nil
	}

	var globalErr error
	if values.Kind == yaml.MappingNode {
		valuePairs, _ := mappingPairs(values)
		for _, pair := range valuePairs {
			globalErr = errors.Join(globalErr, add(pair.key, scalarValue(pair.value)))
		}

		return globalErr
	}

	for _, value := range sequenceOrSingle(values) {
		globalErr = errors.Join(globalErr, add(scalarValue(value), ""))
	}

	return globalErr
}

// yamlTransformation reads a template, its unit rule and its characters.
// A character refers to standard_name, a qualification name or phrase, or a domain concept set name
func yamlTransformation(pair yamlPair, grammar *patterns.Grammar) (nodes.Transformation, error) {
	pairs, err := mappingPairs(pair.value)
	if err != nil {
		return nodes.Transformation{}, err
	}

	transformation := nodes.NewTransformation(
		pair.key,
		scalarValue(lookup(pairs, "description")),
		scalarValue(lookup(pairs, "alters_unit", "altersUnit", "unit")),
	)

	if id := scalarValue(lookup(pairs, "id", "@id")); id != "" {
		transformation.Id = id
	}

	characters, errCharacters := mappingPairs(lookup(pairs, "characters"))
	if errCharacters != nil {
		return nodes.Transformation{}, errCharacters
	}

	var globalErr error
	for _, character := range characters {
		operand, err := yamlOperand(scalarValue(character.value), grammar)
		if err != nil {
			globalErr = errors.Join(globalErr, fmt.Errorf("character %s of %s: %w", character.key, pair.key, err))
			continue
		}

		transformation.Characters = append(transformation.Characters, nodes.Character{Letter: character.key, AssociatedWith: operand})
	}

	return transformation, globalErr
}

// yamlOperand finds what a character refers to
func yamlOperand(reference string, grammar *patterns.Grammar) (nodes.Operand, error) {
	for _, value := range yamlAnyStandardName {
		if reference == value {
			return nodes.AnyStandardNameRef(), nil
		}
	}

	for _, qualification := range grammar.Qualifications() {
		if reference == qualification.Name || reference == qualification.Phrase() || reference == qualification.Id {
			return nodes.QualificationRef(qualification.Id), nil
		}
	}

	for _, conceptSet := range grammar.ConceptSets() {
		if reference == conceptSet.Name || reference == conceptSet.Id {
			return nodes.ConceptSetRef(conceptSet.Id), nil
		}
	}

	return nodes.Operand{}, nodes.NewValidationError("associatedWith", "unknown reference %q", reference)
}

// yamlStandardName reads a standard name: units (several spellings), description, vector flag and alias
func yamlStandardName(pair yamlPair, table string) (nodes.StandardName, error) {
	pairs, err := mappingPairs(pair.value)
	if err != nil {
		return nodes.StandardName{}, err
	}

	kind := nodes.Untagged
	if vector, set, err := boolValue(lookup(pairs, "vector")); err != nil {
		return nodes.StandardName{}, err
	} else if set && vector {
		kind = nodes.Vector
	} else if set {
		kind = nodes.Scalar
	}

	id := scalarValue(lookup(pairs, "id", "@id"))
	if id == "" {
		id = nodes.NewId()
	}

	standardName, errName := nodes.NewStandardNameWithId(
		id,
		pair.key,
		scalarValue(lookup(pairs, "unit", "units", "canonical_unit", "canonical_units", "canonicalUnits")),
		scalarValue(lookup(pairs, "description")),
		kind,
	)

	standardName.Alias = scalarValue(lookup(pairs, "alias"))
	standardName.Table = table
	return standardName, errName
}
