package patterns

import (
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/zefrenchwan/standardnames.git/nodes"
)

// HOLE is the placeholder of the core name in a qualification pattern
const HOLE = "standard_name"

// Slot is a qualification as it appears in the grammar
type Slot struct {
	// Id of the qualification
	Id string
	// Name of the qualification
	Name string
	// Preposition, if any, between the core name and the value
	Preposition string
	// Values are the accepted tokens
	Values []string
	// VectorOnly is true for slots accepting vector standard names only
	VectorOnly bool
}

// expression returns the optional group for that slot, capturing the value
func (s Slot) expression(left bool) string {
	quoted := make([]string, len(s.Values))
	for index, value := range s.Values {
		quoted[index] = regexp.QuoteMeta(value)
	}

	group := "(" + strings.Join(quoted, "|") + ")"
	switch {
	case left && s.Preposition != "":
		return "(?:" + regexp.QuoteMeta(s.Preposition) + "_" + group + "_)?"
	case left:
		return "(?:" + group + "_)?"
	case s.Preposition != "":
		return "(?:_" + regexp.QuoteMeta(s.Preposition) + "_" + group + ")?"
	default:
		return "(?:_" + group + ")?"
	}
}

// QualificationRegex is the recognizer of qualified names, with a hole for the core name.
// Slots with no value never match and are not part of it
type QualificationRegex struct {
	// Left are the slots before the core name, in grammar order
	Left []Slot
	// Right are the slots after the core name, in grammar order
	Right []Slot
	// compiled links a core name to its compiled recognizer
	compiled *sync.Map
}

// NewQualificationRegex builds the recognizer from the slot order (anchor included).
// Identifiers not in qualifications are ignored
func NewQualificationRegex(order []string, qualifications map[string]nodes.Qualification) QualificationRegex {
	result := QualificationRegex{compiled: new(sync.Map)}
	left := true
	for _, id := range order {
		if id == nodes.ANY_STANDARD_NAME {
			left = false
			continue
		}

		qualification, found := qualifications[id]
		if !found || len(qualification.ValidValues) == 0 {
			continue
		}

		slot := Slot{
			Id:          qualification.Id,
			Name:        qualification.Name,
			Preposition: qualification.Preposition,
			Values:      qualification.Values(),
			VectorOnly:  qualification.VectorOnly,
		}

		if left {
			result.Left = append(result.Left, slot)
		} else {
			result.Right = append(result.Right, slot)
		}
	}

	return result
}

// Slots returns all the slots, left to right
func (r QualificationRegex) Slots() []Slot {
	result := make([]Slot, 0, len(r.Left)+len(r.Right))
	result = append(result, r.Left...)
	return append(result, r.Right...)
}

// SlotIds returns the identifiers of the slots, left to right.
// Capturing group i+1 of the pattern matches slot i
func (r QualificationRegex) SlotIds() []string {
	var result []string
	for _, slot := range r.Slots() {
		result = append(result, slot.Id)
	}

	return result
}

// build returns the pattern with the core part
func (r QualificationRegex) build(core string) string {
	var builder strings.Builder
	builder.WriteString("^")
	for _, slot := range r.Left {
		builder.WriteString(slot.expression(true))
	}

	builder.WriteString(core)
	for _, slot := range r.Right {
		builder.WriteString(slot.expression(false))
	}

	builder.WriteString("$")
	return builder.String()
}

// Pattern returns the recognizer with the literal hole, for instance ^(?:(x|y|z)_)?standard_name$
func (r QualificationRegex) Pattern() string {
	return r.build(HOLE)
}

// Compile returns the recognizer for a given core name
func (r QualificationRegex) Compile(core string) (*regexp.Regexp, error) {
	if r.compiled != nil {
		if value, found := r.compiled.Load(core); found {
			return value.(*regexp.Regexp), nil
		}
	}

	compiled, err := regexp.Compile(r.build(regexp.QuoteMeta(core)))
	if err != nil {
		return nil, err
	} else if r.compiled != nil {
		r.compiled.Store(core, compiled)
	}

	return compiled, nil
}

// Match tests candidate as core qualified by the slots.
// It returns the captured value per slot identifier (matched slots only)
func (r QualificationRegex) Match(candidate, core string) (map[string]string, bool) {
	compiled, err := r.Compile(core)
	if err != nil {
		return nil, false
	}

	groups := compiled.FindStringSubmatch(candidate)
	if groups == nil {
		return nil, false
	}

	result := make(map[string]string)
	for index, slotId := range r.SlotIds() {
		if value := groups[index+1]; value != "" {
			result[slotId] = value
		}
	}

	return result, true
}

// RuleString returns the human readable rule, for instance [component] standard_name [in medium]
func RuleString(order []string, qualifications map[string]nodes.Qualification) string {
	parts := make([]string, 0, len(order))
	for _, id := range order {
		if id == nodes.ANY_STANDARD_NAME {
			parts = append(parts, HOLE)
		} else if qualification, found := qualifications[id]; found {
			parts = append(parts, "["+qualification.Label()+"]")
		}
	}

	return strings.Join(parts, " ")
}

// NestedRuleString builds the nested bracket rule of a grammar order.
// Slots at the same distance from the core form a layer, and each layer wraps the inner layers
func NestedRuleString(order []string, qualifications map[string]nodes.Qualification) string {
	core := slices.Index(order, nodes.ANY_STANDARD_NAME)
	if core < 0 {
		return RuleString(order, qualifications)
	}

	label := func(id string) string {
		if qualification, found := qualifications[id]; found {
			return "[" + qualification.Label() + "]"
		}

		return ""
	}

	result := HOLE
	for distance := 1; core-distance >= 0 || core+distance < len(order); distance++ {
		if distance > 1 {
			result = "[" + result + "]"
		}

		if left := core - distance; left >= 0 {
			result = label(order[left]) + " " + result
		}

		if right := core + distance; right < len(order) {
			result = result + " " + label(order[right])
		}
	}

	return result
}
