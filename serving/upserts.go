package serving

import (
	"encoding/json"
	"io"
	"net/http"
)

// UserUpsertInput is input for /user/upsert endpoint
type UserUpsertInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// upsertUserHandler creates or changes a user, on behalf of the current user
func upsertUserHandler(wrapper ServiceParameters, w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	creator, found := wrapper.CurrentUser()
	if !found {
		return NewServiceUnauthorizedError("should authenticate")
	}

	var userInput UserUpsertInput
	if body, errBody := io.ReadAll(r.Body); errBody != nil {
		return NewServiceUnprocessableEntityError(errBody.Error())
	} else if err := json.Unmarshal(body, &userInput); err != nil {
		return NewServiceUnprocessableEntityError(err.Error())
	} else if userInput.Username == "" || userInput.Password == "" {
		return NewServiceHttpClientError("expecting username and password")
	} else if err := wrapper.Dao.UpsertUser(wrapper.Ctx, creator, userInput.Username, userInput.Password); err != nil {
		return BuildApiErrorFromStorageError(err)
	}

	wrapper.Logger.Infow("user upserted", "user", userInput.Username, "creator", creator)
	w.WriteHeader(http.StatusNoContent)
	return nil
}
