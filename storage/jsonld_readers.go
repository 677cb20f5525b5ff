package storage

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/zefrenchwan/standardnames.git/graphs"
	"github.com/zefrenchwan/standardnames.git/nodes"
	"github.com/zefrenchwan/standardnames.git/patterns"
	"github.com/zefrenchwan/standardnames.git/tables"
)

// ReadJSONLD reads a table from a json-ld document.
// Relative identifiers are resolved against the base uri of options
func ReadJSONLD(reader io.Reader, options ParseOptions) (*tables.Table, error) {
	graph, errGraph := graphs.ReadJSONLD(reader, options.BaseURI)
	if errGraph != nil {
		return nil, errGraph
	}

	return FromGraph(&graph, options)
}

// FromGraph builds a table from its linked data representation.
// The graph is expected to contain exactly one table
func FromGraph(graph *graphs.Graph, options ParseOptions) (*tables.Table, error) {
	candidates := graph.InstancesOf(nodes.CLASS_STANDARD_NAME_TABLE)
	if len(candidates) == 0 {
		return nil, nodes.NewValidationError("@type", "no %s in document", nodes.CLASS_STANDARD_NAME_TABLE)
	} else if len(candidates) > 1 {
		return nil, nodes.NewValidationError("@type", "expecting one table, got %d", len(candidates))
	}

	tableNode := candidates[0]
	metadata := tables.Metadata{
		Title:       graph.Value(tableNode, nodes.PROPERTY_TITLE),
		Version:     graph.Value(tableNode, nodes.PROPERTY_VERSION),
		Description: graph.Value(tableNode, nodes.PROPERTY_DESCRIPTION),
		Identifier:  graph.Value(tableNode, nodes.PROPERTY_IDENTIFIER),
	}

	var globalErr error
	var err error
	if metadata.Created, err = parseDate(graph.Value(tableNode, nodes.PROPERTY_CREATED)); err != nil {
		globalErr = errors.Join(globalErr, err)
	}

	if metadata.Modified, err = parseDate(graph.Value(tableNode, nodes.PROPERTY_MODIFIED)); err != nil {
		globalErr = errors.Join(globalErr, err)
	}

	table := tables.NewTable(metadata, options.tableOptions()...)
	attributions, errAttributions := linkedAttributions(graph, tableNode)
	globalErr = errors.Join(globalErr, errAttributions)
	for _, attribution := range attributions {
		globalErr = errors.Join(globalErr, table.AddAttribution(attribution))
	}

	grammar, errGrammar := linkedGrammar(graph, tableNode)
	if errGrammar != nil {
		globalErr = errors.Join(globalErr, errGrammar)
	} else {
		globalErr = errors.Join(globalErr, table.SetGrammar(grammar))
	}

	standardNames, errNames := linkedStandardNames(graph, tableNode, metadata.Identifier)
	globalErr = errors.Join(globalErr, errNames)
	for _, standardName := range standardNames {
		globalErr = errors.Join(globalErr, table.AddStandardName(standardName))
	}

	if globalErr != nil {
		return nil, globalErr
	}

	return table, table.Validate()
}

// position returns a pattern position for a term
func position(term graphs.Term) string {
	if term.Kind == graphs.Blank {
		return term.Value
	}

	return "<" + term.Value + ">"
}

// positioned is a node and its position, if any
type positioned struct {
	binding graphs.Binding
	index   int
}

// sortByPosition sorts bindings by the integer bound to ?position, unpositioned last in input order.
// Bindings for the same ?node are kept once
func sortByPosition(bindings []graphs.Binding) []graphs.Binding {
	seen := make(map[graphs.Term]bool)
	elements := make([]positioned, 0, len(bindings))
	for _, binding := range bindings {
		if seen[binding["node"]] {
			continue
		}

		seen[binding["node"]] = true
		index, err := strconv.Atoi(binding.Value("position"))
		if err != nil || !binding.Has("position") {
			index = len(bindings) + len(elements)
		}

		elements = append(elements, positioned{binding: binding, index: index})
	}

	slices.SortStableFunc(elements, func(a, b positioned) int { return a.index - b.index })
	result := make([]graphs.Binding, 0, len(elements))
	for _, element := range elements {
		result = append(result, element.binding)
	}

	return result
}

// linkedAttributions reads attributions and their agents
func linkedAttributions(graph *graphs.Graph, tableNode graphs.Term) ([]nodes.Attribution, error) {
	bindings, err := graph.Select(graphs.Query{
		Where: []graphs.Pattern{
			{Subject: position(tableNode), Predicate: "prov:qualifiedAttribution", Object: "?node"},
			{Subject: "?node", Predicate: "prov:agent", Object: "?agent"},
		},
		Optional: []graphs.Pattern{
			{Subject: "?node", Predicate: "dcat:hadRole", Object: "?role"},
		},
	})

	if err != nil {
		return nil, err
	}

	var result []nodes.Attribution
	var globalErr error
	for _, binding := range bindings {
		agentNode := binding["agent"]
		agent := nodes.Agent{
			Id:        agentNode.Value,
			FirstName: graph.Value(agentNode, nodes.PROPERTY_FIRST_NAME),
			LastName:  graph.Value(agentNode, nodes.PROPERTY_LAST_NAME),
			Name:      graph.Value(agentNode, nodes.PROPERTY_NAME),
			Email:     strings.TrimPrefix(graph.Value(agentNode, nodes.PROPERTY_MBOX), "mailto:"),
			Url:       graph.Value(agentNode, nodes.PROPERTY_HOMEPAGE),
			Orcid:     graph.Value(agentNode, nodes.PROPERTY_ORCID),
			RorId:     graph.Value(agentNode, nodes.PROPERTY_ROR),
		}

		if graph.HasType(agentNode, nodes.CLASS_ORGANIZATION) {
			agent.Kind = nodes.Organization
		}

		role, errRole := nodes.ParseRole(binding.Value("role"))
		if errRole != nil {
			globalErr = errors.Join(globalErr, errRole)
			continue
		}

		attribution := nodes.NewAttribution(agent, role)
		attribution.Id = binding.Value("node")
		result = append(result, attribution)
	}

	return result, globalErr
}

// linkedGrammar reads qualifications, concept sets and then transformations
func linkedGrammar(graph *graphs.Graph, tableNode graphs.Term) (patterns.Grammar, error) {
	grammar := patterns.NewGrammar()
	modifiers, globalErr := selectOwned(graph, tableNode, nodes.PROPERTY_HAS_MODIFIER, "")
	var transformations []graphs.Term
	for _, binding := range modifiers {
		node := binding["node"]
		vectorOnly := graph.HasType(node, nodes.CLASS_VECTOR_QUALIFICATION)
		if graph.HasType(node, nodes.CLASS_TRANSFORMATION) {
			transformations = append(transformations, node)
			continue
		} else if !vectorOnly && !graph.HasType(node, nodes.CLASS_QUALIFICATION) {
			continue
		}

		qualification, err := linkedQualification(graph, node)
		qualification.VectorOnly = vectorOnly
		if err != nil {
			globalErr = errors.Join(globalErr, err)
		} else if err := grammar.AddQualification(qualification); err != nil {
			globalErr = errors.Join(globalErr, err)
		}
	}

	conceptSets, errSets := selectOwned(graph, tableNode, nodes.PROPERTY_HAS_DOMAIN_CONCEPT_SET, nodes.CLASS_DOMAIN_CONCEPT_SET)
	globalErr = errors.Join(globalErr, errSets)
	for _, binding := range conceptSets {
		node := binding["node"]
		conceptSet := nodes.NewDomainConceptSet(graph.Value(node, nodes.PROPERTY_MODIFIER_NAME), graph.Value(node, nodes.PROPERTY_DESCRIPTION))
		conceptSet.Id = node.Value
		if err := linkedValues(graph, node, conceptSet.AddValue); err != nil {
			globalErr = errors.Join(globalErr, err)
		} else if err := grammar.AddConceptSet(conceptSet); err != nil {
			globalErr = errors.Join(globalErr, err)
		}
	}

	// operands refer to qualifications and concept sets, read first
	for _, node := range transformations {
		if transformation, err := linkedTransformation(graph, node, &grammar); err != nil {
			globalErr = errors.Join(globalErr, err)
		} else if err := grammar.AddTransformation(transformation); err != nil {
			globalErr = errors.Join(globalErr, err)
		}
	}

	return grammar, globalErr
}

// selectOwned returns the nodes linked to owner by predicate, sorted by position.
// Empty class means any class
func selectOwned(graph *graphs.Graph, owner graphs.Term, predicate, class string) ([]graphs.Binding, error) {
	query := graphs.Query{
		Where: []graphs.Pattern{
			{Subject: position(owner), Predicate: "<" + predicate + ">", Object: "?node"},
		},
		Optional: []graphs.Pattern{
			{Subject: "?node", Predicate: "schema:position", Object: "?position"},
		},
	}

	if class != "" {
		query.Where = append(query.Where, graphs.Pattern{Subject: "?node", Predicate: "a", Object: "<" + class + ">"})
	}

	bindings, err := graph.Select(query)
	return sortByPosition(bindings), err
}

// linkedQualification reads a modifier and its values
func linkedQualification(graph *graphs.Graph, node graphs.Term) (nodes.Qualification, error) {
	qualification := nodes.NewQualification(graph.Value(node, nodes.PROPERTY_MODIFIER_NAME), graph.Value(node, nodes.PROPERTY_DESCRIPTION))
	qualification.Id = node.Value
	qualification.Preposition = graph.Value(node, nodes.PROPERTY_HAS_PREPOSITION)
	qualification.Before = graph.Value(node, nodes.PROPERTY_BEFORE)
	qualification.After = graph.Value(node, nodes.PROPERTY_AFTER)
	return qualification, linkedValues(graph, node, qualification.AddValidValue)
}

// linkedValues reads the textual values of owner, in position order
func linkedValues(graph *graphs.Graph, owner graphs.Term, add func(string, string) error) error {
	bindings, err := graph.Select(graphs.Query{
		Where: []graphs.Pattern{
			{Subject: position(owner), Predicate: "ssno:hasValidValues", Object: "?node"},
			{Subject: "?node", Predicate: "ssno:hasStringValue", Object: "?token"},
		},
		Optional: []graphs.Pattern{
			{Subject: "?node", Predicate: "ssno:hasVariableDescription", Object: "?description"},
			{Subject: "?node", Predicate: "schema:position", Object: "?position"},
		},
	})

	if err != nil {
		return err
	}

	var globalErr error
	for _, binding := range sortByPosition(bindings) {
		globalErr = errors.Join(globalErr, add(binding.Value("token"), binding.Value("description")))
	}

	return globalErr
}

// linkedTransformation reads a template and resolves what its characters refer to
func linkedTransformation(graph *graphs.Graph, node graphs.Term, grammar *patterns.Grammar) (nodes.Transformation, error) {
	transformation := nodes.NewTransformation(
		graph.Value(node, nodes.PROPERTY_MODIFIER_NAME),
		graph.Value(node, nodes.PROPERTY_DESCRIPTION),
		graph.Value(node, nodes.PROPERTY_ALTERS_UNIT),
	)

	transformation.Id = node.Value
	bindings, err := graph.Select(graphs.Query{
		Where: []graphs.Pattern{
			{Subject: position(node), Predicate: "ssno:hasCharacter", Object: "?node"},
			{Subject: "?node", Predicate: "ssno:character", Object: "?letter"},
			{Subject: "?node", Predicate: "ssno:associatedWith", Object: "?target"},
		},
		Optional: []graphs.Pattern{
			{Subject: "?node", Predicate: "schema:position", Object: "?position"},
		},
	})

	if err != nil {
		return transformation, err
	}

	var globalErr error
	for _, binding := range sortByPosition(bindings) {
		target := binding.Value("target")
		character := nodes.Character{Letter: binding.Value("letter")}
		if target == nodes.ANY_STANDARD_NAME {
			character.AssociatedWith = nodes.AnyStandardNameRef()
		} else if _, found := grammar.Qualification(target); found {
			character.AssociatedWith = nodes.QualificationRef(target)
		} else if _, found := grammar.ConceptSet(target); found {
			character.AssociatedWith = nodes.ConceptSetRef(target)
		} else {
			globalErr = errors.Join(globalErr, fmt.Errorf("character %s of %s: %w", character.Letter, transformation.Name,
				nodes.NewValidationError("associatedWith", "unknown reference %s", target)))
			continue
		}

		transformation.Characters = append(transformation.Characters, character)
	}

	return transformation, globalErr
}

// linkedStandardNames reads the standard names, kind from their class
func linkedStandardNames(graph *graphs.Graph, tableNode graphs.Term, tableIdentifier string) ([]nodes.StandardName, error) {
	bindings, err := graph.Select(graphs.Query{
		Where: []graphs.Pattern{
			{Subject: position(tableNode), Predicate: "ssno:standardNames", Object: "?node"},
			{Subject: "?node", Predicate: "ssno:standardName", Object: "?name"},
		},
		Optional: []graphs.Pattern{
			{Subject: "?node", Predicate: "ssno:unit", Object: "?unit"},
			{Subject: "?node", Predicate: "dcterms:description", Object: "?description"},
			{Subject: "?node", Predicate: "ssno:alias", Object: "?alias"},
			{Subject: "?node", Predicate: "schema:position", Object: "?position"},
		},
	})

	if err != nil {
		return nil, err
	}

	var result []nodes.StandardName
	var globalErr error
	for _, binding := range sortByPosition(bindings) {
		node := binding["node"]
		kind := nodes.Untagged
		for _, class := range graph.Objects(node, nodes.PROPERTY_TYPE) {
			if found, ok := nodes.KindFromClass(class.Value); ok && found != nodes.Untagged {
				kind = found
			}
		}

		standardName, err := nodes.NewStandardNameWithId(node.Value, binding.Value("name"), binding.Value("unit"), binding.Value("description"), kind)
		if err != nil {
			globalErr = errors.Join(globalErr, err)
			continue
		}

		standardName.Alias = binding.Value("alias")
		standardName.Table = tableIdentifier
		result = append(result, standardName)
	}

	return result, globalErr
}
