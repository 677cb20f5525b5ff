package storage

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/zefrenchwan/standardnames.git/graphs"
	"github.com/zefrenchwan/standardnames.git/nodes"
	"github.com/zefrenchwan/standardnames.git/tables"
)

// EncodeJSONLD writes the table as a json-ld document
func EncodeJSONLD(writer io.Writer, table *tables.Table, options WriteOptions) error {
	graph, err := ToGraph(table, options.BaseURI)
	if err != nil {
		return err
	}

	return graph.WriteJSONLD(writer, options.Context)
}

// EncodeTurtle writes the table as a turtle document
func EncodeTurtle(writer io.Writer, table *tables.Table, options WriteOptions) error {
	graph, err := ToGraph(table, options.BaseURI)
	if err != nil {
		return err
	}

	return graph.WriteTurtle(writer)
}

// linkedWriter accumulates the triples of a table
type linkedWriter struct {
	graph     graphs.Graph
	base      string
	globalErr error
}

func (w *linkedWriter) link(subject, predicate, object string) {
	w.globalErr = errors.Join(w.globalErr, w.graph.AddLink(subject, predicate, object))
}

func (w *linkedWriter) value(subject, predicate, value string) {
	w.globalErr = errors.Join(w.globalErr, w.graph.AddValue(subject, predicate, value))
}

func (w *linkedWriter) typed(subject, predicate, value, datatype string) {
	term := graphs.NewTypedLiteral(value, datatype)
	w.globalErr = errors.Join(w.globalErr, w.graph.Add(graphs.NewResource(subject), graphs.NewIRI(predicate), term))
}

func (w *linkedWriter) date(subject, predicate string, value time.Time) {
	if !value.IsZero() {
		w.typed(subject, predicate, value.UTC().Format(time.RFC3339), graphs.XSD_DATETIME)
	}
}

func (w *linkedWriter) position(subject string, position int) {
	w.typed(subject, nodes.PROPERTY_ORDER, strconv.Itoa(position), graphs.XSD_INTEGER)
}

// resolve returns the absolute identifier of id
func (w *linkedWriter) resolve(id string) string {
	return nodes.ResolveId(id, w.base)
}

// ToGraph returns the linked data representation of a table.
// Blank identifiers are resolved against baseURI, and the table node is the identifier of the table
// if it is an absolute uri, baseURI otherwise.
// Order of qualifications, values, transformations and standard names is kept with positions
func ToGraph(table *tables.Table, baseURI string) (graphs.Graph, error) {
	if table == nil {
		return graphs.Graph{}, errors.New("nil table")
	} else if baseURI == "" {
		return graphs.Graph{}, ErrMissingBaseURI
	}

	writer := &linkedWriter{graph: graphs.NewGraphWithId(baseURI), base: baseURI}
	metadata := table.Metadata()
	tableId := baseURI
	if nodes.IsIdentifier(metadata.Identifier) && !nodes.IsBlankId(metadata.Identifier) {
		tableId = metadata.Identifier
	}

	writer.link(tableId, nodes.PROPERTY_TYPE, nodes.CLASS_STANDARD_NAME_TABLE)
	writer.value(tableId, nodes.PROPERTY_TITLE, metadata.Title)
	writer.value(tableId, nodes.PROPERTY_VERSION, metadata.Version)
	writer.value(tableId, nodes.PROPERTY_DESCRIPTION, metadata.Description)
	writer.value(tableId, nodes.PROPERTY_IDENTIFIER, metadata.Identifier)
	writer.date(tableId, nodes.PROPERTY_CREATED, metadata.Created)
	writer.date(tableId, nodes.PROPERTY_MODIFIED, metadata.Modified)

	for _, attribution := range table.Attributions() {
		writer.attribution(tableId, attribution)
	}

	for index, qualification := range table.Qualifications() {
		writer.qualification(tableId, qualification, index)
	}

	for index, transformation := range table.Transformations() {
		writer.transformation(tableId, transformation, index)
	}

	for index, conceptSet := range table.ConceptSets() {
		id := writer.resolve(conceptSet.Id)
		writer.link(tableId, nodes.PROPERTY_HAS_DOMAIN_CONCEPT_SET, id)
		writer.link(id, nodes.PROPERTY_TYPE, nodes.CLASS_DOMAIN_CONCEPT_SET)
		writer.value(id, nodes.PROPERTY_MODIFIER_NAME, conceptSet.Name)
		writer.value(id, nodes.PROPERTY_DESCRIPTION, conceptSet.Description)
		writer.position(id, index)
		writer.validValues(id, conceptSet.Values)
	}

	registry := table.Registry()
	for index, standardName := range table.StandardNames() {
		id := writer.resolve(standardName.Id)
		writer.link(tableId, nodes.PROPERTY_HAS_STANDARD_NAME, id)
		writer.link(id, nodes.PROPERTY_TYPE, standardName.Kind.ClassIRI())
		writer.value(id, nodes.PROPERTY_STANDARD_NAME, standardName.Name)
		if registry.IsKnown(standardName.Unit) {
			writer.link(id, nodes.PROPERTY_UNIT, standardName.Unit)
		} else {
			writer.value(id, nodes.PROPERTY_UNIT, standardName.Unit)
		}

		writer.value(id, nodes.PROPERTY_DESCRIPTION, standardName.Description)
		if standardName.Alias != "" {
			writer.link(id, nodes.PROPERTY_ALIAS, writer.resolve(standardName.Alias))
		}

		writer.position(id, index)
	}

	return writer.graph, writer.globalErr
}

// attribution writes an attribution node and its agent
func (w *linkedWriter) attribution(tableId string, attribution nodes.Attribution) {
	id := w.resolve(attribution.Id)
	agent := attribution.Agent
	agentId := w.resolve(agent.Id)
	w.link(tableId, nodes.PROPERTY_QUALIFIED_ATTRIBUTION, id)
	w.link(id, nodes.PROPERTY_TYPE, nodes.CLASS_ATTRIBUTION)
	w.link(id, nodes.PROPERTY_AGENT, agentId)
	if attribution.Role != "" {
		w.link(id, nodes.PROPERTY_HAD_ROLE, string(attribution.Role))
	}

	w.link(agentId, nodes.PROPERTY_TYPE, agent.Kind.ClassIRI())
	w.value(agentId, nodes.PROPERTY_FIRST_NAME, agent.FirstName)
	w.value(agentId, nodes.PROPERTY_LAST_NAME, agent.LastName)
	w.value(agentId, nodes.PROPERTY_NAME, agent.Name)
	if agent.Email != "" {
		w.link(agentId, nodes.PROPERTY_MBOX, "mailto:"+agent.Email)
	}

	if nodes.IsIdentifier(agent.Url) && !nodes.IsBlankId(agent.Url) {
		w.link(agentId, nodes.PROPERTY_HOMEPAGE, agent.Url)
	} else {
		w.value(agentId, nodes.PROPERTY_HOMEPAGE, agent.Url)
	}

	w.value(agentId, nodes.PROPERTY_ORCID, agent.Orcid)
	w.value(agentId, nodes.PROPERTY_ROR, agent.RorId)
}

// qualification writes a modifier with its links and its values
func (w *linkedWriter) qualification(tableId string, qualification nodes.Qualification, index int) {
	id := w.resolve(qualification.Id)
	w.link(tableId, nodes.PROPERTY_HAS_MODIFIER, id)
	w.link(id, nodes.PROPERTY_TYPE, qualification.ClassIRI())
	w.value(id, nodes.PROPERTY_MODIFIER_NAME, qualification.Name)
	w.value(id, nodes.PROPERTY_HAS_PREPOSITION, qualification.Preposition)
	w.value(id, nodes.PROPERTY_DESCRIPTION, qualification.Description)
	if qualification.Before != "" {
		w.link(id, nodes.PROPERTY_BEFORE, w.resolve(qualification.Before))
	} else if qualification.After != "" {
		w.link(id, nodes.PROPERTY_AFTER, w.resolve(qualification.After))
	}

	w.position(id, index)
	w.validValues(id, qualification.ValidValues)
}

// validValues writes one textual value node per value
func (w *linkedWriter) validValues(ownerId string, values []nodes.ValidValue) {
	for index, value := range values {
		id := nodes.NewId()
		w.link(ownerId, nodes.PROPERTY_HAS_VALID_VALUES, id)
		w.link(id, nodes.PROPERTY_TYPE, nodes.CLASS_TEXTUAL_VALUE)
		w.value(id, nodes.PROPERTY_HAS_STRING_VALUE, value.StringValue)
		w.value(id, nodes.PROPERTY_HAS_VARIABLE_DESCRIPTION, value.VariableDescription)
		w.position(id, index)
	}
}

// transformation writes a template and its characters
func (w *linkedWriter) transformation(tableId string, transformation nodes.Transformation, index int) {
	id := w.resolve(transformation.Id)
	w.link(tableId, nodes.PROPERTY_HAS_MODIFIER, id)
	w.link(id, nodes.PROPERTY_TYPE, nodes.CLASS_TRANSFORMATION)
	w.value(id, nodes.PROPERTY_MODIFIER_NAME, transformation.Name)
	w.value(id, nodes.PROPERTY_DESCRIPTION, transformation.Description)
	w.value(id, nodes.PROPERTY_ALTERS_UNIT, transformation.AltersUnit)
	w.position(id, index)
	for characterIndex, character := range transformation.Characters {
		characterId := nodes.NewId()
		w.link(id, nodes.PROPERTY_HAS_CHARACTER, characterId)
		w.link(characterId, nodes.PROPERTY_TYPE, nodes.CLASS_CHARACTER)
		w.value(characterId, nodes.PROPERTY_CHARACTER, character.Letter)
		w.link(characterId, nodes.PROPERTY_ASSOCIATED_WITH, w.resolve(character.AssociatedWith.IRI()))
		w.position(characterId, characterIndex)
	}
}
