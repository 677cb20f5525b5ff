package serving

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/zefrenchwan/standardnames.git/nodes"
	"github.com/zefrenchwan/standardnames.git/storage"
)

// StandardNameInput is input to add a standard name to a table
type StandardNameInput struct {
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Description string `json:"description,omitempty"`
	Kind        string `json:"kind,omitempty"`
	// Verify checks that the name is derivable with the same unit
	Verify bool `json:"verify,omitempty"`
}

// verifyNameHandler tells whether a name is declared in or derivable from a table
func verifyNameHandler(wrapper ServiceParameters, w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	registered, errTable := wrapper.Tables.Get(wrapper.Ctx, r.PathValue("tableId"))
	if errTable != nil {
		return BuildApiErrorFromStorageError(errTable)
	}

	name := r.PathValue("name")
	result := storage.VerificationDTO{Name: name, Valid: registered.Table.VerifyName(name)}
	json.NewEncoder(w).Encode(result)
	return nil
}

// findStandardNameHandler returns the standard name a name resolves to
func findStandardNameHandler(wrapper ServiceParameters, w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	registered, errTable := wrapper.Tables.Get(wrapper.Ctx, r.PathValue("tableId"))
	if errTable != nil {
		return BuildApiErrorFromStorageError(errTable)
	}

	name := r.PathValue("name")
	standardName, found := registered.Table.GetStandardName(name)
	if !found {
		return NewServiceNotFoundError("no standard name matches " + name)
	}

	json.NewEncoder(w).Encode(storage.NewStandardNameDTO(registered.Table, standardName))
	return nil
}

// addStandardNameHandler declares a new standard name in a table, then saves the table
func addStandardNameHandler(wrapper ServiceParameters, w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	user, auth := wrapper.CurrentUser()
	if !auth {
		return NewServiceForbiddenError("should authenticate")
	}

	key := r.PathValue("tableId")
	registered, errTable := wrapper.Tables.Get(wrapper.Ctx, key)
	if errTable != nil {
		return BuildApiErrorFromStorageError(errTable)
	}

	var input StandardNameInput
	if body, err := io.ReadAll(r.Body); err != nil {
		return NewServiceInternalServerError(err.Error())
	} else if errM := json.Unmarshal(body, &input); errM != nil {
		return NewServiceUnprocessableEntityError(errM.Error())
	} else if len(input.Name) == 0 {
		return NewServiceHttpClientError("expecting standard name")
	}

	candidate, errCandidate := nodes.NewStandardName(input.Name, input.Unit, input.Description, storage.ParseKind(input.Kind))
	if errCandidate != nil {
		return BuildApiErrorFromTableError(errCandidate)
	}

	added, errAdd := registered.Table.AddNewStandardName(candidate, input.Verify)
	if errAdd != nil {
		return BuildApiErrorFromTableError(errAdd)
	}

	// the loaded table and the stored one should not diverge
	if err := wrapper.Dao.SaveTable(wrapper.Ctx, user, key, registered.Table, registered.BaseURI); err != nil {
		registered.Table.RemoveStandardName(added.Name)
		wrapper.Logger.Errorw("standard name not saved, removed from table", "key", key, "name", added.Name, "error", err.Error())
		return BuildApiErrorFromStorageError(err)
	}

	wrapper.Logger.Infow("standard name added", "key", key, "name", added.Name, "user", user)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(storage.NewStandardNameDTO(registered.Table, added))
	return nil
}
