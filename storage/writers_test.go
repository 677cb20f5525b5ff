package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zefrenchwan/standardnames.git/storage"
)

func TestWriteFiles(t *testing.T) {
	table := readFixture(t, "testdata/fluid.yaml")
	directory := t.TempDir()
	options := storage.WriteOptions{BaseURI: baseURI}

	path, err := storage.WriteYAML(table, filepath.Join(directory, "table.yaml"), options)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))

	// no overwrite by default
	_, err = storage.WriteYAML(table, path, options)
	assert.ErrorIs(t, err, os.ErrExist)

	options.Overwrite = true
	_, err = storage.WriteYAML(table, path, options)
	assert.NoError(t, err)

	again, err := storage.ParseTable(context.Background(), path, storage.ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, table.Metadata().Title, again.Metadata().Title)

	jsonPath, err := storage.WriteJSONLD(table, filepath.Join(directory, "table.jsonld"), options)
	require.NoError(t, err)
	fromJSON, err := storage.ParseTable(context.Background(), jsonPath, storage.ParseOptions{BaseURI: baseURI})
	require.NoError(t, err)
	assert.Len(t, fromJSON.StandardNames(), 4)

	turtlePath, err := storage.WriteTurtle(table, filepath.Join(directory, "table.ttl"), options)
	require.NoError(t, err)
	content, err := os.ReadFile(turtlePath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "@prefix"))

	markdownPath, err := storage.WriteMarkdown(table, filepath.Join(directory, "table.md"), storage.WriteOptions{})
	require.NoError(t, err)
	_, err = os.Stat(markdownPath)
	assert.NoError(t, err)

	// turtle cannot be read back
	_, err = storage.ParseTable(context.Background(), turtlePath, storage.ParseOptions{})
	assert.ErrorAs(t, err, &storage.UnknownFormatError{})
}

func TestWriteFailureLeavesNoFile(t *testing.T) {
	table := readFixture(t, "testdata/fluid.yaml")
	path := filepath.Join(t.TempDir(), "table.jsonld")
	_, err := storage.WriteJSONLD(table, path, storage.WriteOptions{})
	assert.ErrorIs(t, err, storage.ErrMissingBaseURI)
	_, errStat := os.Stat(path)
	assert.ErrorIs(t, errStat, os.ErrNotExist)

	_, err = storage.WriteYAML(table, " ", storage.WriteOptions{BaseURI: baseURI})
	assert.Error(t, err)
}

func TestParseTableRemoteSources(t *testing.T) {
	_, err := storage.ParseTable(context.Background(), "https://example.org/table.yaml", storage.ParseOptions{})
	assert.Error(t, err)

	opened := ""
	options := storage.ParseOptions{Opener: func(_ context.Context, source string) (io.ReadCloser, error) {
		opened = source
		return os.Open("testdata/fluid.yaml")
	}}

	table, err := storage.ParseTable(context.Background(), "https://example.org/table.yaml?download=1", options)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/table.yaml?download=1", opened)
	assert.Equal(t, "Fluid standard names", table.Metadata().Title)
}
