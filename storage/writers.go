package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zefrenchwan/standardnames.git/tables"
)

// WriteOptions configures table serialization
type WriteOptions struct {
	// BaseURI resolves blank identifiers. Mandatory for every format but markdown
	BaseURI string
	// Overwrite allows to replace an existing file
	Overwrite bool
	// Context adds terms to the json-ld context
	Context map[string]any
}

// Encode writes the table in a given format
func Encode(writer io.Writer, table *tables.Table, format Format, options WriteOptions) error {
	if writer == nil {
		return errors.New("nil writer")
	} else if table == nil {
		return errors.New("nil table")
	}

	switch format {
	case FORMAT_JSONLD:
		return EncodeJSONLD(writer, table, options)
	case FORMAT_TURTLE:
		return EncodeTurtle(writer, table, options)
	case FORMAT_YAML:
		return EncodeYAML(writer, table, options)
	case FORMAT_MARKDOWN:
		return EncodeMarkdown(writer, table)
	default:
		return UnknownFormatError{Format: string(format)}
	}
}

// WriteJSONLD writes the table as a json-ld file and returns the path
func WriteJSONLD(table *tables.Table, filename string, options WriteOptions) (string, error) {
	return writeFile(table, filename, FORMAT_JSONLD, options)
}

// WriteTurtle writes the table as a turtle file and returns the path
func WriteTurtle(table *tables.Table, filename string, options WriteOptions) (string, error) {
	return writeFile(table, filename, FORMAT_TURTLE, options)
}

// WriteYAML writes the table as a yaml file and returns the path
func WriteYAML(table *tables.Table, filename string, options WriteOptions) (string, error) {
	return writeFile(table, filename, FORMAT_YAML, options)
}

// WriteMarkdown writes the table as a markdown file and returns the path
func WriteMarkdown(table *tables.Table, filename string, options WriteOptions) (string, error) {
	return writeFile(table, filename, FORMAT_MARKDOWN, options)
}

// writeFile encodes the table in memory, then writes the file.
// Nothing is written if encoding fails
func writeFile(table *tables.Table, filename string, format Format, options WriteOptions) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", errors.New("empty file name")
	}

	path, errPath := filepath.Abs(filename)
	if errPath != nil {
		return "", errPath
	}

	if _, err := os.Stat(path); err == nil && !options.Overwrite {
		return "", fmt.Errorf("%s already exists: %w", path, os.ErrExist)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	var buffer bytes.Buffer
	if err := Encode(&buffer, table, format, options); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, buffer.Bytes(), 0o644); err != nil {
		return "", err
	}

	table.Logger().Infow("table written", "path", path, "format", format)
	return path, nil
}
