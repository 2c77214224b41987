package service

import (
	"net/http"
	"strings"

	"github.com/devbook-dev/devbook/shared/domain"
	"github.com/devbook-dev/devbook/shared/errors"
	"github.com/devbook-dev/devbook/shared/logger"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(creds domain.Credentials) (string, error)
}

type AuthStorage interface {
	UserByEmail(email string) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

func NewAuth(storage AuthStorage, jwt Jwt) *Auth {
	return &Auth{storage: storage, jwt: jwt}
}

// Login checks the credentials and returns an access token.
// Unknown email and wrong password produce the same error.
func (a *Auth) Login(creds domain.Credentials) (string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	user, err := a.storage.UserByEmail(email)
	if err != nil {
		// to not leak existing users
		if errors.IsNotFound(err) {
			return "", invalidCredentials()
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		logger.Log.Debug("password verification failed", "user_id", user.Id)
		return "", invalidCredentials()
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return "", err
	}

	return token, nil
}

func invalidCredentials() error {
	return &errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
}
