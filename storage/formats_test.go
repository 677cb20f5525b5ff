package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zefrenchwan/standardnames.git/storage"
)

func TestParseFormat(t *testing.T) {
	expected := []struct {
		value  string
		format storage.Format
	}{
		{"xml", storage.FORMAT_XML},
		{"text/xml", storage.FORMAT_XML},
		{"https://www.iana.org/assignments/media-types/application/xml", storage.FORMAT_XML},
		{"yaml", storage.FORMAT_YAML},
		{"YML", storage.FORMAT_YAML},
		{"application/yaml", storage.FORMAT_YAML},
		{"http://www.iana.org/assignments/media-types/application/yaml", storage.FORMAT_YAML},
		{"jsonld", storage.FORMAT_JSONLD},
		{"application/json-ld", storage.FORMAT_JSONLD},
		{"https://www.iana.org/assignments/media-types/application/ld+json", storage.FORMAT_JSONLD},
		{"ttl", storage.FORMAT_TURTLE},
		{"md", storage.FORMAT_MARKDOWN},
	}

	for _, element := range expected {
		parsed, err := storage.ParseFormat(element.value)
		require.NoError(t, err, element.value)
		assert.Equal(t, element.format, parsed, element.value)
	}

	_, err := storage.ParseFormat("csv")
	var unknown storage.UnknownFormatError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "csv", unknown.Format)
}

func TestFormatFromPath(t *testing.T) {
	format, err := storage.FormatFromPath("/data/table.json")
	require.NoError(t, err)
	assert.Equal(t, storage.FORMAT_JSONLD, format)

	format, err = storage.FormatFromPath("https://example.org/cf-standard-name-table.xml?version=84")
	require.NoError(t, err)
	assert.Equal(t, storage.FORMAT_XML, format)
	assert.True(t, format.IsReadable())
	assert.False(t, storage.FORMAT_MARKDOWN.IsReadable())

	_, err = storage.FormatFromPath("table")
	assert.Error(t, err)
}
