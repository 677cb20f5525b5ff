package serving

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/zefrenchwan/standardnames.git/storage"
)

// UploadResponse is the result of a table upload
type UploadResponse struct {
	Table    storage.TableSummaryDTO `json:"table"`
	Warnings []string                `json:"warnings,omitempty"`
}

// listTablesHandler returns the summaries of stored tables, filtered by the title parameter if any
func listTablesHandler(wrapper ServiceParameters, w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	summaries, err := wrapper.Dao.ListTables(wrapper.Ctx, r.URL.Query().Get("title"))
	if err != nil {
		return BuildApiErrorFromStorageError(err)
	} else if summaries == nil {
		summaries = make([]storage.TableSummaryDTO, 0)
	}

	json.NewEncoder(w).Encode(summaries)
	return nil
}

// uploadTableHandler parses a table in the format of the path, then saves it.
// Parameter key names the table, a new one if empty.
// Parameter base_uri is mandatory unless the identifier of the table is an absolute iri
func uploadTableHandler(wrapper ServiceParameters, w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	user, auth := wrapper.CurrentUser()
	if !auth {
		return NewServiceForbiddenError("should authenticate")
	}

	format, errFormat := storage.ParseFormat(r.PathValue("format"))
	if errFormat != nil {
		return NewServiceHttpClientError(errFormat.Error())
	} else if !format.IsReadable() {
		return NewServiceHttpClientError("cannot read format " + string(format))
	}

	query := r.URL.Query()
	key := query.Get("key")
	if key == "" {
		key = uuid.NewString()
	}

	baseURI := query.Get("base_uri")
	table, errRead := storage.ParseReader(r.Body, string(format), wrapper.Tables.ParseOptions(baseURI))
	if errRead != nil {
		return BuildApiErrorFromReadError(errRead)
	}

	if baseURI == "" {
		if identifier, err := url.Parse(table.Identifier()); err == nil && identifier.IsAbs() {
			baseURI = table.Identifier()
		} else {
			return NewServiceHttpClientError("expecting base_uri parameter")
		}
	}

	if err := wrapper.Dao.SaveTable(wrapper.Ctx, user, key, table, baseURI); err != nil {
		return BuildApiErrorFromTableError(err)
	}

	wrapper.Tables.Put(key, table, baseURI)
	wrapper.Logger.Infow("table uploaded", "key", key, "user", user, "format", format, "names", len(table.StandardNames()))

	result := UploadResponse{Table: storage.NewTableSummaryDTO(key, table, baseURI, time.Now())}
	for _, warning := range table.Warnings() {
		result.Warnings = append(result.Warnings, warning.Error())
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
	return nil
}

// deleteTableHandler removes a stored table
func deleteTableHandler(wrapper ServiceParameters, w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	user, auth := wrapper.CurrentUser()
	if !auth {
		return NewServiceForbiddenError("should authenticate")
	}

	key := r.PathValue("tableId")
	if err := wrapper.Dao.DeleteTable(wrapper.Ctx, key); err != nil {
		return BuildApiErrorFromStorageError(err)
	}

	wrapper.Tables.Remove(key)
	wrapper.Logger.Infow("table deleted", "key", key, "user", user)
	w.WriteHeader(http.StatusNoContent)
	return nil
}
