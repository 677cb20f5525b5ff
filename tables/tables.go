// Package tables defines the standard name table aggregate and the resolution of derived names.
package tables

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zefrenchwan/standardnames.git/nodes"
	"github.com/zefrenchwan/standardnames.git/patterns"
	"github.com/zefrenchwan/standardnames.git/units"
)

// Fields accepted by Append
const (
	FIELD_STANDARD_NAMES      = "standardNames"
	FIELD_QUALIFICATIONS      = "qualifications"
	FIELD_TRANSFORMATIONS     = "transformations"
	FIELD_DOMAIN_CONCEPT_SETS = "domainConceptSets"
	FIELD_ATTRIBUTIONS        = "attributions"
)

// Metadata describes a table
type Metadata struct {
	// Title of the table
	Title string
	// Version of the table
	Version string
	// Description of the table
	Description string
	// Identifier is expected to be resolvable, a DOI for instance
	Identifier string
	// Created is the creation date, zero if unknown
	Created time.Time
	// Modified is the last modification date, zero if unknown
	Modified time.Time
}

// Table is a standard name table: declared standard names and the grammar deriving new ones.
// Tables are safe for concurrent use
type Table struct {
	// mutex guards the content of the table
	mutex sync.RWMutex
	// id is the internal key of the table when it has no identifier
	id string
	// metadata of the table
	metadata Metadata
	// standardNames in declaration order
	standardNames []nodes.StandardName
	// byName links a name to its position in standardNames
	byName map[string]int
	// grammar contains the modifiers
	grammar patterns.Grammar
	// compiled is the compiled grammar, nil when modifiers changed
	compiled *compiledGrammar
	// attributions in declaration order
	attributions []nodes.Attribution
	// warningsMutex guards warnings, they may be added during resolution
	warningsMutex sync.Mutex
	// warnings are the problems that did not prevent loading
	warnings []error
	// cache of derived standard names
	cache *DerivedCache
	// logger reports warnings
	logger *zap.SugaredLogger
	// registry resolves units
	registry *units.Registry
	// strictUnits turns unparseable units into errors
	strictUnits bool
}

// compiledGrammar contains what resolution needs from the grammar
type compiledGrammar struct {
	regex      patterns.QualificationRegex
	regexErr   error
	matcher    patterns.TransformationMatcher
	matcherErr error
}

// NewTable returns an empty table
func NewTable(metadata Metadata, options ...Option) *Table {
	result := &Table{
		id:       nodes.NewId(),
		metadata: metadata,
		byName:   make(map[string]int),
		grammar:  patterns.NewGrammar(),
		logger:   zap.NewNop().Sugar(),
		registry: units.Default(),
	}

	for _, option := range options {
		option(result)
	}

	if result.cache == nil {
		result.cache, _ = NewDerivedCache()
	}

	return result
}

// Metadata returns the metadata of the table
func (t *Table) Metadata() Metadata {
	if t == nil {
		return Metadata{}
	}

	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.metadata
}

// SetMetadata replaces the metadata of the table
func (t *Table) SetMetadata(metadata Metadata) error {
	if t == nil {
		return errors.New("nil table")
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()
	previous := t.cacheKey()
	t.metadata = metadata
	t.cache.Purge(previous)
	return nil
}

// Identifier returns the identifier of the table
func (t *Table) Identifier() string {
	return t.Metadata().Identifier
}

// cacheKey is the identifier, or the internal key if the table has none
func (t *Table) cacheKey() string {
	if t.metadata.Identifier != "" {
		return t.metadata.Identifier
	}

	return t.id
}

// Release drops the derived names of the table from the shared cache
func (t *Table) Release() {
	if t == nil {
		return
	}

	t.mutex.RLock()
	key := t.cacheKey()
	t.mutex.RUnlock()
	t.cache.Purge(key)
}

// Registry returns the unit registry of the table
func (t *Table) Registry() *units.Registry {
	if t == nil || t.registry == nil {
		return units.Default()
	}

	return t.registry
}

// Logger returns the logger of the table
func (t *Table) Logger() *zap.SugaredLogger {
	if t == nil || t.logger == nil {
		return zap.NewNop().Sugar()
	}

	return t.logger
}

// Cache returns the derived name cache of the table
func (t *Table) Cache() *DerivedCache {
	if t == nil {
		return nil
	}

	return t.cache
}

// UnitSymbol returns the human readable form of a unit
func (t *Table) UnitSymbol(unit string) string {
	return t.Registry().Symbol(unit)
}

// AddWarning records a problem that did not prevent loading, and logs it.
// A warning with the same message as a recorded one is ignored, so repeated lookups add nothing
func (t *Table) AddWarning(warning error) {
	if t == nil || warning == nil {
		return
	}

	message := warning.Error()
	t.warningsMutex.Lock()
	defer t.warningsMutex.Unlock()
	if slices.ContainsFunc(t.warnings, func(recorded error) bool { return recorded.Error() == message }) {
		return
	}

	t.warnings = append(t.warnings, warning)
	t.Logger().Warnw("standard name table warning", "table", t.id, "warning", message)
}

// Warnings returns the recorded warnings
func (t *Table) Warnings() []error {
	if t == nil {
		return nil
	}

	t.warningsMutex.Lock()
	defer t.warningsMutex.Unlock()
	return slices.Clone(t.warnings)
}

// SetGrammar replaces the modifiers of the table, once validated
func (t *Table) SetGrammar(grammar patterns.Grammar) error {
	if t == nil {
		return errors.New("nil table")
	} else if err := grammar.Validate(); err != nil {
		return err
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.grammar = grammar.Clone()
	t.compiled = nil
	t.cache.Purge(t.cacheKey())
	return nil
}

// Grammar returns a copy of the modifiers
func (t *Table) Grammar() patterns.Grammar {
	if t == nil {
		return patterns.NewGrammar()
	}

	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.grammar.Clone()
}

// Qualifications returns the qualifications in declaration order
func (t *Table) Qualifications() []nodes.Qualification {
	grammar := t.Grammar()
	return grammar.Qualifications()
}

// Transformations returns the transformations in declaration order
func (t *Table) Transformations() []nodes.Transformation {
	grammar := t.Grammar()
	return grammar.Transformations()
}

// ConceptSets returns the domain concept sets in declaration order
func (t *Table) ConceptSets() []nodes.DomainConceptSet {
	grammar := t.Grammar()
	return grammar.ConceptSets()
}

// StandardNames returns the declared standard names in declaration order
func (t *Table) StandardNames() []nodes.StandardName {
	if t == nil {
		return nil
	}

	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return slices.Clone(t.standardNames)
}

// AddStandardName adds a declared standard name, no grammar check.
// The unit is resolved against the registry: unknown units are kept raw with a warning, or fail in strict mode
func (t *Table) AddStandardName(standardName nodes.StandardName) error {
	_, err := t.insertStandardName(standardName)
	return err
}

// insertStandardName adds a standard name and returns the stored record, unit and table resolved
func (t *Table) insertStandardName(standardName nodes.StandardName) (nodes.StandardName, error) {
	if t == nil {
		return nodes.StandardName{}, errors.New("nil table")
	} else if err := standardName.Validate(); err != nil {
		return nodes.StandardName{}, err
	}

	if err := t.normalizeUnit(&standardName); err != nil {
		return nodes.StandardName{}, err
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()
	if _, found := t.byName[standardName.Name]; found {
		return nodes.StandardName{}, DuplicateStandardNameError{Name: standardName.Name}
	}

	if standardName.Table == "" {
		standardName.Table = t.metadata.Identifier
	}

	t.byName[standardName.Name] = len(t.standardNames)
	t.standardNames = append(t.standardNames, standardName)
	t.cache.Purge(t.cacheKey())
	return standardName, nil
}

// RemoveStandardName removes a declared standard name, false if there was none
func (t *Table) RemoveStandardName(name string) bool {
	if t == nil {
		return false
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()
	index, found := t.byName[name]
	if !found {
		return false
	}

	t.standardNames = slices.Delete(t.standardNames, index, index+1)
	delete(t.byName, name)
	for position, standardName := range t.standardNames[index:] {
		t.byName[standardName.Name] = index + position
	}

	t.cache.Purge(t.cacheKey())
	return true
}

// normalizeUnit replaces the unit with its identifier
func (t *Table) normalizeUnit(standardName *nodes.StandardName) error {
	registry := t.Registry()
	if standardName.UnitWarning || registry.IsKnown(standardName.Unit) {
		return nil
	}

	unit, err := registry.Parse(standardName.Unit, "standard name "+standardName.Name)
	if err != nil && t.strictUnits {
		return err
	} else if err != nil {
		standardName.UnitWarning = true
		t.AddWarning(err)
	}

	standardName.Unit = unit
	return nil
}

// AddAttribution adds an attribution to the table
func (t *Table) AddAttribution(attribution nodes.Attribution) error {
	if t == nil {
		return errors.New("nil table")
	} else if attribution.Id == "" {
		attribution.Id = nodes.NewId()
	}

	attribution.Agent.PromoteOrcid()
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.attributions = append(t.attributions, attribution)
	return nil
}

// AddAuthor adds an agent with a role, empty for no role
func (t *Table) AddAuthor(agent nodes.Agent, role nodes.Role) error {
	return t.AddAttribution(nodes.NewAttribution(agent, role))
}

// Attributions returns the attributions in declaration order
func (t *Table) Attributions() []nodes.Attribution {
	if t == nil {
		return nil
	}

	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return slices.Clone(t.attributions)
}

// Validate checks the grammar, and reports aliases pointing nowhere as warnings
func (t *Table) Validate() error {
	if t == nil {
		return errors.New("nil table")
	}

	t.mutex.RLock()
	grammar := t.grammar.Clone()
	known := make(map[string]bool, len(t.standardNames))
	for _, standardName := range t.standardNames {
		known[standardName.Id] = true
	}

	var dangling []string
	for _, standardName := range t.standardNames {
		if standardName.IsAlias() && !known[standardName.Alias] {
			dangling = append(dangling, standardName.Name)
		}
	}

	t.mutex.RUnlock()

	for _, name := range dangling {
		t.AddWarning(fmt.Errorf("alias %s points to an unknown standard name", name))
	}

	return grammar.Validate()
}

// Append adds value to a field and revalidates the table. Accepted fields and values are
// standardNames (StandardName), qualifications (Qualification), transformations (Transformation),
// domainConceptSets (DomainConceptSet) and attributions (Attribution or Agent).
// On failure, the table is unchanged
func (t *Table) Append(field string, value any) error {
	if t == nil {
		return errors.New("nil table")
	}

	switch field {
	case FIELD_STANDARD_NAMES:
		standardName, ok := value.(nodes.StandardName)
		if !ok {
			return nodes.NewValidationError(field, "expecting a standard name, got %T", value)
		}

		return t.AddStandardName(standardName)
	case FIELD_ATTRIBUTIONS:
		switch typed := value.(type) {
		case nodes.Attribution:
			return t.AddAttribution(typed)
		case nodes.Agent:
			return t.AddAuthor(typed, "")
		default:
			return nodes.NewValidationError(field, "expecting an attribution, got %T", value)
		}
	}

	grammar := t.Grammar()
	var err error
	switch field {
	case FIELD_QUALIFICATIONS:
		if qualification, ok := value.(nodes.Qualification); ok {
			err = grammar.AddQualification(qualification)
		} else {
			err = nodes.NewValidationError(field, "expecting a qualification, got %T", value)
		}
	case FIELD_TRANSFORMATIONS:
		if transformation, ok := value.(nodes.Transformation); ok {
			err = grammar.AddTransformation(transformation)
		} else {
			err = nodes.NewValidationError(field, "expecting a transformation, got %T", value)
		}
	case FIELD_DOMAIN_CONCEPT_SETS:
		if conceptSet, ok := value.(nodes.DomainConceptSet); ok {
			err = grammar.AddConceptSet(conceptSet)
		} else {
			err = nodes.NewValidationError(field, "expecting a domain concept set, got %T", value)
		}
	default:
		err = nodes.NewValidationError("field", "unknown field %s", field)
	}

	if err != nil {
		return err
	}

	return t.SetGrammar(grammar)
}

// grammarState returns the compiled grammar, compiling it if needed.
// Caller should not hold the lock
func (t *Table) grammarState() *compiledGrammar {
	t.mutex.RLock()
	compiled := t.compiled
	t.mutex.RUnlock()
	if compiled != nil {
		return compiled
	}

	t.mutex.Lock()
	if t.compiled != nil {
		compiled = t.compiled
		t.mutex.Unlock()
		return compiled
	}

	compiled = &compiledGrammar{}
	compiled.regex, compiled.regexErr = t.grammar.Regex()
	compiled.matcher, compiled.matcherErr = t.grammar.Matcher()
	t.compiled = compiled
	t.mutex.Unlock()

	if err := errors.Join(compiled.regexErr, compiled.matcherErr); err != nil {
		t.AddWarning(err)
	}

	return compiled
}

// GetQualificationRegex returns the qualification pattern, with standard_name as the hole, and the slot identifiers
func (t *Table) GetQualificationRegex() (string, []string, error) {
	if t == nil {
		return "", nil, errors.New("nil table")
	}

	compiled := t.grammarState()
	if compiled.regexErr != nil {
		return "", nil, compiled.regexErr
	}

	return compiled.regex.Pattern(), compiled.regex.SlotIds(), nil
}

// GetQualificationRuleAsString returns the rule, for instance [component] standard_name [in medium]
func (t *Table) GetQualificationRuleAsString() (string, error) {
	if t == nil {
		return "", errors.New("nil table")
	}

	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.grammar.Rule()
}
