// Package names holds the lexical rules every standard name follows.
package names

import (
	"fmt"
	"regexp"
	"strings"
)

// lexicalPattern is the core pattern: lowercase, starts with a letter, ends with a letter or digit
var lexicalPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$`)

// LexicalError is raised when a name does not follow the core pattern
type LexicalError struct {
	// Name is the rejected value
	Name string
	// Reason explains which rule failed
	Reason string
}

// Error to implement error interface
func (e LexicalError) Error() string {
	return fmt.Sprintf("invalid standard name %q: %s", e.Name, e.Reason)
}

// IsLexical returns true if name matches the core pattern and contains no double underscore
func IsLexical(name string) bool {
	return checkLexical(name) == ""
}

// MustBeLexical returns a LexicalError if name is not lexically valid, nil otherwise
func MustBeLexical(name string) error {
	if reason := checkLexical(name); reason != "" {
		return LexicalError{Name: name, Reason: reason}
	}

	return nil
}

// checkLexical returns the reason of the failure, or empty for a valid name
func checkLexical(name string) string {
	switch {
	case len(name) == 0:
		return "empty name"
	case strings.HasPrefix(name, "_"):
		return "leading underscore"
	case strings.HasSuffix(name, "_"):
		return "trailing underscore"
	case strings.Contains(name, "__"):
		return "consecutive underscores"
	case !lexicalPattern.MatchString(name):
		return "expecting lowercase letters, digits and underscores, starting with a letter"
	}

	return ""
}

// Tokens splits a name on underscores
func Tokens(name string) []string {
	if len(name) == 0 {
		return nil
	}

	return strings.Split(name, "_")
}
