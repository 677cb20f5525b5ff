package serving

import (
	"bytes"
	"net/http"

	"github.com/zefrenchwan/standardnames.git/storage"
)

// contentTypes per exported format
var contentTypes = map[storage.Format]string{
	storage.FORMAT_JSONLD:   "application/ld+json",
	storage.FORMAT_TURTLE:   "text/turtle",
	storage.FORMAT_YAML:     "application/yaml",
	storage.FORMAT_MARKDOWN: "text/markdown; charset=utf-8",
}

// markdownHandler returns the documentation of a table
func markdownHandler(wrapper ServiceParameters, w http.ResponseWriter, r *http.Request) error {
	return writeTable(wrapper, w, r, storage.FORMAT_MARKDOWN)
}

// exportTableHandler returns a table in the format of the path.
// Parameter base_uri replaces the base uri the table was saved with
func exportTableHandler(wrapper ServiceParameters, w http.ResponseWriter, r *http.Request) error {
	format, errFormat := storage.ParseFormat(r.PathValue("format"))
	if errFormat != nil {
		defer r.Body.Close()
		return NewServiceHttpClientError(errFormat.Error())
	}

	return writeTable(wrapper, w, r, format)
}

// writeTable encodes the table of the path, fully, before writing the response
func writeTable(wrapper ServiceParameters, w http.ResponseWriter, r *http.Request, format storage.Format) error {
	defer r.Body.Close()

	registered, errTable := wrapper.Tables.Get(wrapper.Ctx, r.PathValue("tableId"))
	if errTable != nil {
		return BuildApiErrorFromStorageError(errTable)
	}

	baseURI := registered.BaseURI
	if value := r.URL.Query().Get("base_uri"); value != "" {
		baseURI = value
	}

	var content bytes.Buffer
	if err := storage.Encode(&content, registered.Table, format, storage.WriteOptions{BaseURI: baseURI}); err != nil {
		return BuildApiErrorFromTableError(err)
	}

	if contentType, found := contentTypes[format]; found {
		w.Header().Set("Content-Type", contentType)
	}

	w.Write(content.Bytes())
	return nil
}
