package serving

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// UserInformationInput is input for /token endpoint
type UserInformationInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the signed token for a user, to send as Authorization: Bearer <token>
type TokenResponse struct {
	Token string `json:"token"`
	// User is the login the token was issued for
	User string `json:"user"`
	// ExpiresAt is the end of validity of the token
	ExpiresAt time.Time `json:"expires_at"`
	// Duration is the validity of the token, as a go duration
	Duration string `json:"duration"`
}

// issueTokenHandler checks the credentials of a user and signs a token with the secret of this user.
// Changing the secret of a user revokes its previous tokens
func issueTokenHandler(wrapper ServiceParameters, w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	var input UserInformationInput
	if body, errBody := io.ReadAll(r.Body); errBody != nil {
		return NewServiceUnprocessableEntityError(errBody.Error())
	} else if err := json.Unmarshal(body, &input); err != nil {
		return NewServiceUnprocessableEntityError(err.Error())
	}

	login := strings.TrimSpace(input.Username)
	if login == "" || input.Password == "" {
		return NewServiceHttpClientError("expecting username and password")
	}

	if found, err := wrapper.Dao.CheckUser(wrapper.Ctx, login, input.Password); err != nil {
		return BuildApiErrorFromStorageError(err)
	} else if !found {
		wrapper.Logger.Warnw("token refused", "user", login)
		return NewServiceForbiddenError("invalid user")
	}

	secret, errSecret := wrapper.Dao.FindSecretForActiveUser(wrapper.Ctx, login)
	if errSecret != nil {
		return BuildApiErrorFromStorageError(errSecret)
	}

	token, expiresAt, errToken := createToken(login, secret)
	if errToken != nil {
		return NewServiceInternalServerError(errToken.Error())
	}

	wrapper.Logger.Infow("token issued", "user", login, "expires", expiresAt)
	json.NewEncoder(w).Encode(TokenResponse{
		Token:     token,
		User:      login,
		ExpiresAt: expiresAt,
		Duration:  TokenDuration.String(),
	})

	return nil
}
