package patterns

import (
	"errors"
	"slices"
	"strings"

	"github.com/zefrenchwan/standardnames.git/nodes"
)

// Grammar holds the modifiers of a table: qualifications, transformations and domain concept sets.
// Modifiers are stored by identifier and link each other by identifier only
type Grammar struct {
	// qualifications links an identifier to its qualification
	qualifications map[string]nodes.Qualification
	// qualificationIds are the identifiers in declaration order
	qualificationIds []string
	// transformations in declaration order
	transformations []nodes.Transformation
	// conceptSets links an identifier to its set
	conceptSets map[string]nodes.DomainConceptSet
	// conceptSetIds are the identifiers in declaration order
	conceptSetIds []string
	// links are the before / after links between slots
	links Dictionary
}

// NewGrammar returns a new empty grammar
func NewGrammar() Grammar {
	return Grammar{
		qualifications: make(map[string]nodes.Qualification),
		conceptSets:    make(map[string]nodes.DomainConceptSet),
		links:          NewDictionary(),
	}
}

// AddQualification adds a qualification, checking its structure.
// Links are checked by Validate once all modifiers are added
func (g *Grammar) AddQualification(qualification nodes.Qualification) error {
	if g == nil {
		return errors.New("nil grammar")
	} else if err := qualification.Validate(); err != nil {
		return err
	} else if g.qualifications == nil {
		g.qualifications = make(map[string]nodes.Qualification)
	}

	if _, found := g.qualifications[qualification.Id]; found {
		return nodes.NewValidationError("id", "duplicate modifier %s", qualification.Id)
	} else if _, found := g.QualificationByName(qualification.Name); found {
		return nodes.NewValidationError("name", "duplicate qualification %s", qualification.Name)
	}

	if qualification.VectorOnly {
		for _, other := range g.qualifications {
			if other.VectorOnly {
				return nodes.NewValidationError("vectorOnly", "%s and %s are both vector only, at most one is accepted", other.Name, qualification.Name)
			}
		}
	}

	if qualification.Before != "" {
		g.links.AddBeforeLink(qualification.Id, qualification.Before)
	} else {
		g.links.AddAfterLink(qualification.Id, qualification.After)
	}

	g.qualifications[qualification.Id] = qualification
	g.qualificationIds = append(g.qualificationIds, qualification.Id)
	return nil
}

// AddTransformation adds a template, checking its structure
func (g *Grammar) AddTransformation(transformation nodes.Transformation) error {
	if g == nil {
		return errors.New("nil grammar")
	} else if err := transformation.Validate(); err != nil {
		return err
	}

	for _, other := range g.transformations {
		if other.Name == transformation.Name {
			return nodes.NewValidationError("name", "duplicate transformation %s", transformation.Name)
		}
	}

	g.transformations = append(g.transformations, transformation)
	return nil
}

// AddConceptSet adds a domain concept set
func (g *Grammar) AddConceptSet(conceptSet nodes.DomainConceptSet) error {
	if g == nil {
		return errors.New("nil grammar")
	} else if err := conceptSet.Validate(); err != nil {
		return err
	} else if g.conceptSets == nil {
		g.conceptSets = make(map[string]nodes.DomainConceptSet)
	}

	if _, found := g.conceptSets[conceptSet.Id]; found {
		return nodes.NewValidationError("id", "duplicate domain concept set %s", conceptSet.Id)
	}

	g.conceptSets[conceptSet.Id] = conceptSet
	g.conceptSetIds = append(g.conceptSetIds, conceptSet.Id)
	return nil
}

// Qualification returns the qualification with that identifier
func (g *Grammar) Qualification(id string) (nodes.Qualification, bool) {
	if g == nil || g.qualifications == nil {
		return nodes.Qualification{}, false
	}

	qualification, found := g.qualifications[id]
	return qualification, found
}

// QualificationByName returns the qualification with that name
func (g *Grammar) QualificationByName(name string) (nodes.Qualification, bool) {
	if g == nil {
		return nodes.Qualification{}, false
	}

	for _, id := range g.qualificationIds {
		if g.qualifications[id].Name == name {
			return g.qualifications[id], true
		}
	}

	return nodes.Qualification{}, false
}

// Qualifications returns the qualifications in declaration order
func (g *Grammar) Qualifications() []nodes.Qualification {
	if g == nil {
		return nil
	}

	result := make([]nodes.Qualification, 0, len(g.qualificationIds))
	for _, id := range g.qualificationIds {
		result = append(result, g.qualifications[id])
	}

	return result
}

// ConceptSet returns the domain concept set with that identifier
func (g *Grammar) ConceptSet(id string) (nodes.DomainConceptSet, bool) {
	if g == nil || g.conceptSets == nil {
		return nodes.DomainConceptSet{}, false
	}

	conceptSet, found := g.conceptSets[id]
	return conceptSet, found
}

// ConceptSets returns the domain concept sets in declaration order
func (g *Grammar) ConceptSets() []nodes.DomainConceptSet {
	if g == nil {
		return nil
	}

	result := make([]nodes.DomainConceptSet, 0, len(g.conceptSetIds))
	for _, id := range g.conceptSetIds {
		result = append(result, g.conceptSets[id])
	}

	return result
}

// Transformations returns the templates in declaration order
func (g *Grammar) Transformations() []nodes.Transformation {
	if g == nil {
		return nil
	}

	return slices.Clone(g.transformations)
}

// Order returns the slot identifiers in grammar order, anchor included
func (g *Grammar) Order() ([]string, error) {
	if g == nil {
		return []string{nodes.ANY_STANDARD_NAME}, nil
	}

	return OrderQualifications(g.Qualifications())
}

// Regex returns the qualification recognizer
func (g *Grammar) Regex() (QualificationRegex, error) {
	order, err := g.Order()
	if err != nil {
		return QualificationRegex{}, err
	}

	return NewQualificationRegex(order, g.qualificationsMap()), nil
}

// Rule returns the human readable rule, for instance [component] standard_name [in medium]
func (g *Grammar) Rule() (string, error) {
	order, err := g.Order()
	if err != nil {
		return "", err
	}

	return RuleString(order, g.qualificationsMap()), nil
}

// Matcher returns the transformation matcher for the templates
func (g *Grammar) Matcher() (TransformationMatcher, error) {
	return NewTransformationMatcher(g.Transformations())
}

// NestedRule returns the rule with nested brackets, each layer of slots around the core
// wrapping the inner ones, for instance [a] [[b] standard_name [c]]
func (g *Grammar) NestedRule() (string, error) {
	order, err := g.Order()
	if err != nil {
		return "", err
	}

	return NestedRuleString(order, g.qualificationsMap()), nil
}

// branches returns an error per target with more than one slot placed right before, or right after it
func (g *Grammar) branches() error {
	var globalErr error
	for _, target := range g.links.Branches() {
		if slots := g.links.DirectBefore(target); len(slots) > 1 {
			globalErr = errors.Join(globalErr, nodes.NewValidationError("before", "%s are all placed right before %s, links should form a single chain", g.slotNames(slots), g.slotName(target)))
		}

		if slots := g.links.DirectAfter(target); len(slots) > 1 {
			globalErr = errors.Join(globalErr, nodes.NewValidationError("after", "%s are all placed right after %s, links should form a single chain", g.slotNames(slots), g.slotName(target)))
		}
	}

	return globalErr
}

// Validate checks that links resolve, that they form an order, and that operands exist
func (g *Grammar) Validate() error {
	if g == nil {
		return errors.New("nil grammar")
	}

	var globalErr error
	for _, qualification := range g.Qualifications() {
		if target := qualification.Before; target != "" && !g.isSlot(target) {
			globalErr = errors.Join(globalErr, nodes.NewValidationError("before", "%s targets unknown qualification %s", qualification.Name, target))
		}

		if target := qualification.After; target != "" && !g.isSlot(target) {
			globalErr = errors.Join(globalErr, nodes.NewValidationError("after", "%s targets unknown qualification %s", qualification.Name, target))
		}
	}

	if globalErr == nil {
		globalErr = g.branches()
	}

	if globalErr == nil {
		if _, err := g.Order(); err != nil {
			globalErr = errors.Join(globalErr, err)
		}
	}

	for _, transformation := range g.transformations {
		for _, character := range transformation.Characters {
			operand := character.AssociatedWith
			switch operand.Kind {
			case nodes.QualificationOperand:
				if _, found := g.Qualification(operand.Ref); !found {
					globalErr = errors.Join(globalErr, nodes.NewValidationError("associatedWith", "%s in %s targets unknown qualification %s", character.Letter, transformation.Name, operand.Ref))
				}
			case nodes.ConceptSetOperand:
				if _, found := g.ConceptSet(operand.Ref); !found {
					globalErr = errors.Join(globalErr, nodes.NewValidationError("associatedWith", "%s in %s targets unknown domain concept set %s", character.Letter, transformation.Name, operand.Ref))
				}
			}
		}
	}

	return globalErr
}

// Clone returns an independent copy
func (g *Grammar) Clone() Grammar {
	result := NewGrammar()
	if g == nil {
		return result
	}

	for _, qualification := range g.Qualifications() {
		result.AddQualification(qualification)
	}

	for _, conceptSet := range g.ConceptSets() {
		result.AddConceptSet(conceptSet)
	}

	result.transformations = slices.Clone(g.transformations)
	return result
}

func (g *Grammar) isSlot(id string) bool {
	if id == nodes.ANY_STANDARD_NAME {
		return true
	}

	_, found := g.qualifications[id]
	return found
}

func (g *Grammar) slotName(id string) string {
	if qualification, found := g.qualifications[id]; found {
		return qualification.Name
	} else if id == nodes.ANY_STANDARD_NAME {
		return HOLE
	}

	return id
}

func (g *Grammar) slotNames(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, g.slotName(id))
	}

	slices.Sort(names)
	return strings.Join(names, ", ")
}

func (g *Grammar) qualificationsMap() map[string]nodes.Qualification {
	if g == nil {
		return nil
	}

	result := make(map[string]nodes.Qualification, len(g.qualifications))
	for id, qualification := range g.qualifications {
		result[id] = qualification
	}

	return result
}
