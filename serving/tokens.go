package serving

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TokenDuration = time.Hour * 24

// USER_CLAIM is the claim holding the login
const USER_CLAIM = "user"

// createToken builds a new token for a given login using its secret, and returns its expiration
func createToken(userName string, userSecret string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(TokenDuration)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			USER_CLAIM: userName,
			"iat":      now.Unix(),
			"exp":      expiresAt.Unix(),
		})

	if token, err := token.SignedString([]byte(userSecret)); err != nil {
		return "", expiresAt, err
	} else {
		return token, expiresAt, nil
	}
}

// validateAuthentication reads header and then test if login matches its expected secret.
// Result is login coming from request, true for auth success, the detailed error otherwise
func validateAuthentication(wrapper ServiceParameters, r *http.Request) (string, bool, error) {
	// header should contain Authorization: Bearer <token>
	if r == nil {
		return "", false, fmt.Errorf("empty request")
	}

	var header string
	if values, found := r.Header["Authorization"]; !found {
		return "", false, nil
	} else if len(values) != 1 {
		return "", false, nil
	} else {
		header = strings.Trim(values[0], " ")
	}

	tokenValue, hasBearer := strings.CutPrefix(header, "Bearer ")
	if !hasBearer {
		return "", false, nil
	}

	// secret depends on the user claim, unverified until signature matches
	var login string
	expectedSecretFunc := func(token *jwt.Token) (interface{}, error) {
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return nil, errors.New("unexpected claims")
		}

		user, ok := claims[USER_CLAIM].(string)
		if !ok || user == "" {
			return nil, errors.New("no user in token")
		}

		login = user
		if secret, err := wrapper.Dao.FindSecretForActiveUser(wrapper.Ctx, user); err != nil {
			return nil, err
		} else {
			return []byte(secret), nil
		}
	}

	token, err := jwt.Parse(tokenValue, expectedSecretFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	switch {
	case err == nil && token.Valid:
		return login, true, nil
	case errors.Is(err, jwt.ErrTokenMalformed):
		return login, false, fmt.Errorf("malformed token")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return login, false, fmt.Errorf("invalid signature")
	case errors.Is(err, jwt.ErrTokenExpired) || errors.Is(err, jwt.ErrTokenNotValidYet):
		return login, false, fmt.Errorf("invalid token period")
	case err != nil:
		return login, false, err
	default:
		return login, false, nil
	}
}
