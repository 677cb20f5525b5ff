package patterns

import (
	"slices"

	"github.com/zefrenchwan/standardnames.git/nodes"
)

// OrderQualifications returns the slot identifiers in grammar order, the anchor included.
// It starts from the anchor alone and, pass after pass, inserts each qualification whose
// before (or else after) target is already placed. Qualifications are visited in input order.
// A pass placing nothing means links are cyclic or point outside the input
func OrderQualifications(qualifications []nodes.Qualification) ([]string, error) {
	result := []string{nodes.ANY_STANDARD_NAME}
	placed := make([]bool, len(qualifications))
	remaining := len(qualifications)

	// each useful pass places at least one qualification
	for pass := 0; pass <= len(qualifications) && remaining > 0; pass++ {
		progress := false
		for index, qualification := range qualifications {
			if placed[index] {
				continue
			}

			if qualification.Before != "" {
				if position := slices.Index(result, qualification.Before); position >= 0 {
					result = slices.Insert(result, position, qualification.Id)
					placed[index] = true
				}
			} else if qualification.After != "" {
				if position := slices.Index(result, qualification.After); position >= 0 {
					result = slices.Insert(result, position+1, qualification.Id)
					placed[index] = true
				}
			}

			if placed[index] {
				remaining--
				progress = true
			}
		}

		if !progress {
			break
		}
	}

	if remaining == 0 {
		return result, nil
	}

	var missing []string
	for index, qualification := range qualifications {
		if !placed[index] {
			missing = append(missing, qualification.Name)
		}
	}

	return nil, UnorderableQualificationsError{Names: missing}
}
