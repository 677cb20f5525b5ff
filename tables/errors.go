package tables

import "fmt"

// UnitMismatchError is raised when a declared unit differs from the unit of the resolved standard name
type UnitMismatchError struct {
	// Name is the standard name
	Name string
	// Expected is the unit of the resolved standard name
	Expected string
	// Found is the declared unit
	Found string
}

// Error to implement error interface
func (e UnitMismatchError) Error() string {
	return fmt.Sprintf("unit mismatch for %s: expected %s, found %s", e.Name, e.Expected, e.Found)
}

// DuplicateStandardNameError is raised when adding a standard name that already exists
type DuplicateStandardNameError struct {
	// Name is the duplicate standard name
	Name string
}

// Error to implement error interface
func (e DuplicateStandardNameError) Error() string {
	return fmt.Sprintf("standard name %s already exists", e.Name)
}
