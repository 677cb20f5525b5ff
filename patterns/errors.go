package patterns

import (
	"fmt"
	"strings"
)

// UnorderableQualificationsError is raised when before / after links do not form a chain through the anchor
type UnorderableQualificationsError struct {
	// Names are the qualifications that could not be placed
	Names []string
}

// Error to implement error interface
func (e UnorderableQualificationsError) Error() string {
	return fmt.Sprintf("cannot order qualifications %s: cyclic or disconnected links", strings.Join(e.Names, ", "))
}
