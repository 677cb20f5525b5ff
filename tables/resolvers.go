package tables

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zefrenchwan/standardnames.git/names"
	"github.com/zefrenchwan/standardnames.git/nodes"
	"github.com/zefrenchwan/standardnames.git/patterns"
	"github.com/zefrenchwan/standardnames.git/units"
)

// DERIVED_PATH is the path appended to the table identifier to build derived identifiers
const DERIVED_PATH = "derived_standard_name/"

// resolution is the state of one resolution: the table snapshot and the candidates being resolved
type resolution struct {
	table    *Table
	compiled *compiledGrammar
	grammar  *patterns.Grammar
	declared []nodes.StandardName
	byName   map[string]int
	key      string
	metadata Metadata
	// visited contains the candidates on the current resolution path, per table key
	visited map[string]bool
}

// newResolution takes a snapshot of the table
func (t *Table) newResolution() *resolution {
	compiled := t.grammarState()
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	grammar := t.grammar.Clone()
	byName := make(map[string]int, len(t.byName))
	for name, position := range t.byName {
		byName[name] = position
	}

	return &resolution{
		table:    t,
		compiled: compiled,
		grammar:  &grammar,
		declared: append([]nodes.StandardName(nil), t.standardNames...),
		byName:   byName,
		key:      t.cacheKey(),
		metadata: t.metadata,
		visited:  make(map[string]bool),
	}
}

// GetStandardName returns the standard name matching name: a declared one, or one derived
// from a declared one through qualifications or transformations
func (t *Table) GetStandardName(name string) (nodes.StandardName, bool) {
	if t == nil {
		return nodes.StandardName{}, false
	}

	return t.newResolution().resolve(name)
}

// VerifyName returns true if name is a declared or derivable standard name
func (t *Table) VerifyName(name string) bool {
	_, found := t.GetStandardName(name)
	return found
}

// Verify returns true if the name of standardName resolves and its unit matches the resolved one.
// A unit difference fails with UnitMismatchError
func (t *Table) Verify(standardName nodes.StandardName) (bool, error) {
	if t == nil {
		return false, errors.New("nil table")
	}

	resolved, found := t.GetStandardName(standardName.Name)
	if !found {
		return false, nil
	}

	registry := t.Registry()
	if !registry.Equivalent(resolved.Unit, standardName.Unit) {
		unit, errUnit := registry.Parse(standardName.Unit, standardName.Name)
		if errUnit != nil || !registry.Equivalent(resolved.Unit, unit) {
			return false, UnitMismatchError{
				Name:     standardName.Name,
				Expected: registry.Symbol(resolved.Unit),
				Found:    standardName.Unit,
			}
		}
	}

	return true, nil
}

// AddNewStandardName declares a standard name. When verify is set, it should be derivable with the same unit.
// It returns the added standard name
func (t *Table) AddNewStandardName(standardName nodes.StandardName, verify bool) (nodes.StandardName, error) {
	if t == nil {
		return nodes.StandardName{}, errors.New("nil table")
	} else if t.isDeclared(standardName.Name) {
		return nodes.StandardName{}, DuplicateStandardNameError{Name: standardName.Name}
	}

	if verify {
		if valid, err := t.Verify(standardName); err != nil {
			return nodes.StandardName{}, err
		} else if !valid {
			return nodes.StandardName{}, nodes.NewValidationError("name", "%s is not derivable from the table", standardName.Name)
		}
	}

	if standardName.Id == "" {
		standardName.Id = nodes.NewId()
	}

	return t.insertStandardName(standardName)
}

// AddNewStandardNameFromString resolves name and declares the result
func (t *Table) AddNewStandardNameFromString(name string) (nodes.StandardName, error) {
	if t == nil {
		return nodes.StandardName{}, errors.New("nil table")
	} else if err := names.MustBeLexical(name); err != nil {
		return nodes.StandardName{}, err
	} else if t.isDeclared(name) {
		return nodes.StandardName{}, DuplicateStandardNameError{Name: name}
	}

	derived, found := t.GetStandardName(name)
	if !found {
		return nodes.StandardName{}, nodes.NewValidationError("name", "%s is not derivable from the table", name)
	}

	return t.AddNewStandardName(derived, false)
}

// isDeclared returns true for a declared standard name
func (t *Table) isDeclared(name string) bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	_, found := t.byName[name]
	return found
}

// resolve tests, in order: cache, declared names, qualifications, transformations
func (r *resolution) resolve(candidate string) (nodes.StandardName, bool) {
	if value, found := r.table.cache.Get(r.key, candidate); found {
		return value, true
	} else if position, found := r.byName[candidate]; found {
		return r.declared[position], true
	} else if !names.IsLexical(candidate) {
		return nodes.StandardName{}, false
	}

	visitKey := r.key + " " + candidate
	if r.visited[visitKey] {
		return nodes.StandardName{}, false
	}

	r.visited[visitKey] = true
	defer delete(r.visited, visitKey)

	if derived, found := r.fromQualifications(candidate); found {
		r.table.cache.Put(r.key, derived)
		return derived, true
	} else if derived, found := r.fromTransformations(candidate); found {
		r.table.cache.Put(r.key, derived)
		return derived, true
	}

	return nodes.StandardName{}, false
}

// fromQualifications tries each declared core name contained in candidate
func (r *resolution) fromQualifications(candidate string) (nodes.StandardName, bool) {
	if r.compiled.regexErr != nil {
		return nodes.StandardName{}, false
	}

	regex := r.compiled.regex
	for _, core := range r.declared {
		if !strings.Contains(candidate, core.Name) || candidate == core.Name {
			continue
		}

		captured, matches := regex.Match(candidate, core.Name)
		if !matches || !r.acceptsKind(captured, core) {
			continue
		}

		parts := []string{fmt.Sprintf("%s: %s", core.Name, core.Description)}
		for _, slot := range regex.Slots() {
			token, found := captured[slot.Id]
			if !found {
				continue
			}

			qualification, _ := r.grammar.Qualification(slot.Id)
			value, _ := qualification.Value(token)
			parts = append(parts, fmt.Sprintf("%s: %s", qualification.Name, value.VariableDescription))
		}

		return nodes.StandardName{
			Id:          r.derivedId(candidate),
			Name:        candidate,
			Unit:        core.Unit,
			UnitWarning: core.UnitWarning,
			Description: strings.Join(parts, " "),
			Table:       r.metadata.Identifier,
			Kind:        nodes.Untagged,
		}, true
	}

	return nodes.StandardName{}, false
}

// acceptsKind returns false if a vector only slot qualifies a non vector core
func (r *resolution) acceptsKind(captured map[string]string, core nodes.StandardName) bool {
	for slotId := range captured {
		if qualification, found := r.grammar.Qualification(slotId); found && qualification.VectorOnly && !core.IsVector() {
			return false
		}
	}

	return true
}

// fromTransformations matches templates, operands bound to standard names resolve recursively
func (r *resolution) fromTransformations(candidate string) (nodes.StandardName, bool) {
	match, found := r.compiled.matcher.Match(candidate, r.grammar, r.resolve)
	if !found {
		return nodes.StandardName{}, false
	}

	unit, unitWarning, err := r.alteredUnit(match)
	if err != nil {
		r.table.AddWarning(fmt.Errorf("cannot compute unit of %s: %w", candidate, err))
		return nodes.StandardName{}, false
	}

	transformation := match.Transformation
	parts := []string{fmt.Sprintf("%s: %s", transformation.Name, transformation.Description)}
	for _, operand := range match.Operands {
		parts = append(parts, fmt.Sprintf("%s: %s", operand.Value, operand.Description()))
	}

	return nodes.StandardName{
		Id:          r.derivedId(candidate),
		Name:        candidate,
		Unit:        unit,
		UnitWarning: unitWarning,
		Description: strings.Join(parts, " "),
		Table:       r.metadata.Identifier,
		Kind:        nodes.Untagged,
	}, true
}

// alteredUnit computes the unit of a transformation match.
// An empty unit rule keeps the unit of the first standard name operand.
// The result is the registered identifier of the canonical form, or the canonical form itself with a warning
func (r *resolution) alteredUnit(match patterns.TransformationMatch) (string, bool, error) {
	bindings := match.Bindings()
	rule := strings.TrimSpace(match.Transformation.AltersUnit)
	if rule == "" {
		for _, operand := range match.Operands {
			if operand.StandardName != nil {
				return operand.StandardName.Unit, operand.StandardName.UnitWarning, nil
			}
		}

		return units.DIMENSIONLESS, false, nil
	}

	registry := r.table.Registry()
	canonical, err := registry.ComputeAlteredUnit(bindings, rule)
	if err != nil {
		return "", false, err
	}

	unit, errParse := registry.Parse(canonical, match.Transformation.Name)
	return unit, errParse != nil, nil
}

// derivedId appends the derived path to the table identifier.
// Tables with no identifier get a blank id, resolved at serialization
func (r *resolution) derivedId(candidate string) string {
	if r.metadata.Identifier == "" {
		return nodes.BLANK_PREFIX + DERIVED_PATH + candidate
	}

	return nodes.JoinIdentifier(r.metadata.Identifier, DERIVED_PATH+candidate)
}
