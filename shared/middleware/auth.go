package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/devbook-dev/devbook/shared/domain"
	jwt_internal "github.com/devbook-dev/devbook/shared/jwt"
	"github.com/devbook-dev/devbook/shared/utils"
)

// Key to store the authenticated user id in the request context
type key int

const UserIdKey key = 0

type Auth struct {
	jwtService jwt_internal.JwtService
}

func NewAuth(jwtService jwt_internal.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth rejects requests without a valid access token.
// The token is read from the accessToken cookie, then from an Authorization: Bearer header.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}

			token, err := a.jwtService.DecodeToken(tokenString)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			uid, err := jwt_internal.UserId(token)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserIdKey, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if c, err := r.Cookie("accessToken"); err == nil {
		return c.Value
	}
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		return token
	}
	return ""
}

// GetUserIdFromContext returns the id stored by NeedAuth.
func GetUserIdFromContext(r *http.Request) (domain.UserId, bool) {
	uid, ok := r.Context().Value(UserIdKey).(domain.UserId)
	return uid, ok
}
