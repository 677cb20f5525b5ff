package patterns

import (
	"errors"
	"slices"
)

// linksInformation contains the slots directly linked to a slot.
type linksInformation struct {
	// placedBefore are the slots declaring a before link to this slot.
	// For instance, component is placed before AnyStandardName
	placedBefore []string
	// placedAfter are the slots declaring an after link to this slot
	placedAfter []string
}

// Dictionary contains the before and after links between slots, in both directions
type Dictionary struct {
	// linksDictionary links a slot identifier to its link information
	linksDictionary map[string]*linksInformation
}

// NewDictionary returns an empty dictionary
func NewDictionary() Dictionary {
	return Dictionary{
		linksDictionary: make(map[string]*linksInformation),
	}
}

// information returns the links of slot, creating them if needed
func (d *Dictionary) information(slot string) *linksInformation {
	if d.linksDictionary == nil {
		d.linksDictionary = make(map[string]*linksInformation)
	}

	if d.linksDictionary[slot] == nil {
		d.linksDictionary[slot] = &linksInformation{}
	}

	return d.linksDictionary[slot]
}

// AddBeforeLink flags slot as placed right before target.
// Example of call: d.AddBeforeLink(componentId, nodes.ANY_STANDARD_NAME)
func (d *Dictionary) AddBeforeLink(slot string, target string) error {
	if d == nil {
		return errors.New("nil dictionary")
	}

	d.information(slot)
	targetInformation := d.information(target)
	if !slices.Contains(targetInformation.placedBefore, slot) {
		targetInformation.placedBefore = append(targetInformation.placedBefore, slot)
	}

	return nil
}

// AddAfterLink flags slot as placed right after target
func (d *Dictionary) AddAfterLink(slot string, target string) error {
	if d == nil {
		return errors.New("nil dictionary")
	}

	d.information(slot)
	targetInformation := d.information(target)
	if !slices.Contains(targetInformation.placedAfter, slot) {
		targetInformation.placedAfter = append(targetInformation.placedAfter, slot)
	}

	return nil
}

// DirectBefore returns the sorted slice of slots placed right before target.
// If d is nil, or has no value for that slot, it returns nil.
// If slot exists in the dictionary, but with no link, it returns empty
func (d *Dictionary) DirectBefore(target string) []string {
	if d == nil || d.linksDictionary == nil {
		return nil
	}

	information := d.linksDictionary[target]
	if information == nil {
		return nil
	}

	return sortedCopy(information.placedBefore)
}

// DirectAfter returns the sorted slice of slots placed right after target.
// Same conventions as DirectBefore
func (d *Dictionary) DirectAfter(target string) []string {
	if d == nil || d.linksDictionary == nil {
		return nil
	}

	information := d.linksDictionary[target]
	if information == nil {
		return nil
	}

	return sortedCopy(information.placedAfter)
}

// Branches returns the sorted targets with more than one slot on the same side.
// A single chain has no branch
func (d *Dictionary) Branches() []string {
	if d == nil {
		return nil
	}

	var result []string
	for target, information := range d.linksDictionary {
		if len(information.placedBefore) > 1 || len(information.placedAfter) > 1 {
			result = append(result, target)
		}
	}

	slices.Sort(result)
	return result
}

func sortedCopy(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}

	result := make([]string, len(values))
	copy(result, values)
	slices.Sort(result)
	return result
}
