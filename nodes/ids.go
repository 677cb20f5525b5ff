package nodes

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// BLANK_PREFIX starts identifiers local to a document, to resolve against a base uri
const BLANK_PREFIX = "_:"

// NewId returns a fresh blank identifier
func NewId() string {
	return BLANK_PREFIX + uuid.NewString()
}

// IsBlankId returns true for an identifier local to a document
func IsBlankId(id string) bool {
	return strings.HasPrefix(id, BLANK_PREFIX)
}

// IsIdentifier returns true for the sentinel, a blank identifier or an absolute uri
func IsIdentifier(id string) bool {
	if id == ANY_STANDARD_NAME || (IsBlankId(id) && len(id) > len(BLANK_PREFIX)) {
		return true
	} else if strings.ContainsAny(id, " \t\n") {
		return false
	}

	parsed, err := url.Parse(id)
	return err == nil && parsed.Scheme != "" && (parsed.Host != "" || parsed.Opaque != "" || parsed.Path != "")
}

// ResolveId returns the absolute version of id against base.
// Absolute identifiers are returned as is
func ResolveId(id, base string) string {
	if !IsBlankId(id) {
		return id
	}

	local := strings.TrimPrefix(id, BLANK_PREFIX)
	if strings.HasSuffix(base, "/") || strings.HasSuffix(base, "#") {
		return base + local
	}

	return base + "/" + local
}

// JoinIdentifier appends path to identifier, inserting a / if needed
func JoinIdentifier(identifier string, path string) string {
	if strings.HasSuffix(identifier, "/") {
		return identifier + path
	}

	return identifier + "/" + path
}
