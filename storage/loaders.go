package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"go.uber.org/zap"

	"github.com/zefrenchwan/standardnames.git/tables"
)

// Opener opens a remote source, an url for instance
type Opener func(ctx context.Context, source string) (io.ReadCloser, error)

// ParseOptions configures table parsing
type ParseOptions struct {
	// Format of the source, inferred from the extension if empty
	Format string
	// BaseURI resolves relative identifiers of linked data documents
	BaseURI string
	// Logger receives the warnings, no log if nil
	Logger *zap.SugaredLogger
	// Opener opens remote sources, remote sources are rejected if nil
	Opener Opener
	// StrictUnits turns unparseable units into errors
	StrictUnits bool
	// TableOptions are added to the options of the parsed table
	TableOptions []tables.Option
}

// logger returns the logger, a no op one if not set
func (o ParseOptions) logger() *zap.SugaredLogger {
	if o.Logger == nil {
		return zap.NewNop().Sugar()
	}

	return o.Logger
}

// tableOptions returns the options to build the table with
func (o ParseOptions) tableOptions() []tables.Option {
	result := []tables.Option{tables.WithLogger(o.logger()), tables.WithStrictUnits(o.StrictUnits)}
	return append(result, o.TableOptions...)
}

// ParseTable reads a table from a local path, or a remote source through the opener
func ParseTable(ctx context.Context, source string, options ParseOptions) (*tables.Table, error) {
	format, errFormat := resolveFormat(source, options.Format)
	if errFormat != nil {
		return nil, errFormat
	}

	var reader io.ReadCloser
	if isRemote(source) {
		if options.Opener == nil {
			return nil, fmt.Errorf("no opener for remote source %s", source)
		} else if r, err := options.Opener(ctx, source); err != nil {
			return nil, fmt.Errorf("cannot open %s: %w", source, err)
		} else {
			reader = r
		}
	} else if r, err := os.Open(source); err != nil {
		return nil, err
	} else {
		reader = r
	}

	defer reader.Close()

	options.logger().Debugw("parsing table", "source", source, "format", format)
	return ParseReader(reader, string(format), options)
}

// ParseReader reads a table in a given format
func ParseReader(reader io.Reader, format string, options ParseOptions) (*tables.Table, error) {
	if reader == nil {
		return nil, errors.New("nil reader")
	}

	parsedFormat, errFormat := ParseFormat(format)
	if errFormat != nil {
		return nil, errFormat
	}

	switch parsedFormat {
	case FORMAT_XML:
		return ReadXML(reader, options)
	case FORMAT_YAML:
		return ReadYAML(reader, options)
	case FORMAT_JSONLD:
		return ReadJSONLD(reader, options)
	default:
		return nil, UnknownFormatError{Format: format}
	}
}

// resolveFormat returns the explicit format, or the one of the extension
func resolveFormat(source, format string) (Format, error) {
	var result Format
	var err error
	if format != "" {
		result, err = ParseFormat(format)
	} else {
		result, err = FormatFromPath(source)
	}

	if err != nil {
		return "", err
	} else if !result.IsReadable() {
		return "", UnknownFormatError{Format: string(result)}
	}

	return result, nil
}

// isRemote returns true for urls with a network scheme
func isRemote(source string) bool {
	parsed, err := url.Parse(source)
	return err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https" || parsed.Scheme == "ftp")
}
