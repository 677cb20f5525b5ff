package storage

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Format is a table format handled by the readers or the writers
type Format string

const (
	FORMAT_XML      Format = "xml"
	FORMAT_YAML     Format = "yaml"
	FORMAT_JSONLD   Format = "jsonld"
	FORMAT_TURTLE   Format = "turtle"
	FORMAT_MARKDOWN Format = "markdown"
)

// IANA_MEDIA_TYPES is the prefix of the media type uris
const IANA_MEDIA_TYPES = "https://www.iana.org/assignments/media-types/"

// ParseFormat returns the format matching an identifier: a short name, a media type or its IANA uri.
// Comparison ignores case, and http IANA uris are accepted
func ParseFormat(value string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	key = strings.Replace(key, "http://www.iana.org/", "https://www.iana.org/", 1)
	key = strings.TrimPrefix(key, IANA_MEDIA_TYPES)
	switch key {
	case "xml", "text/xml", "application/xml":
		return FORMAT_XML, nil
	case "yaml", "yml", "application/yaml", "text/yaml":
		return FORMAT_YAML, nil
	case "jsonld", "json-ld", "application/json-ld", "application/ld+json":
		return FORMAT_JSONLD, nil
	case "ttl", "turtle", "text/turtle":
		return FORMAT_TURTLE, nil
	case "md", "markdown", "text/markdown":
		return FORMAT_MARKDOWN, nil
	default:
		return "", UnknownFormatError{Format: value}
	}
}

// FormatFromPath infers the format from the extension of a path or url
func FormatFromPath(path string) (Format, error) {
	if parsed, err := url.Parse(path); err == nil && parsed.Scheme != "" && parsed.Host != "" {
		path = parsed.Path
	}

	extension := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if extension == "json" {
		return FORMAT_JSONLD, nil
	}

	return ParseFormat(extension)
}

// IsReadable returns true for formats a table may be read from
func (f Format) IsReadable() bool {
	return f == FORMAT_XML || f == FORMAT_YAML || f == FORMAT_JSONLD
}
