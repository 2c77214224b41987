package handler

import (
	"net/http"
	"strconv"

	"github.com/devbook-dev/devbook/shared/domain"
	"github.com/devbook-dev/devbook/shared/errors"
	mw "github.com/devbook-dev/devbook/shared/middleware"
	"github.com/go-chi/chi/v5"
)

// parseUserId reads the {userId} route parameter.
func parseUserId(r *http.Request) (domain.UserId, error) {
	return parseId(r, "userId")
}

// parsePostId reads the {postId} route parameter.
func parsePostId(r *http.Request) (domain.PostId, error) {
	return parseId(r, "postId")
}

func parseId(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, &errors.ErrorWithStatusCode{Message: "invalid " + param + ": must be a positive integer", StatusCode: http.StatusBadRequest}
	}
	return id, nil
}

// actor returns the authenticated user. Routes using it sit behind NeedAuth.
func actor(r *http.Request) (domain.UserId, error) {
	uid, ok := mw.GetUserIdFromContext(r)
	if !ok {
		return 0, &errors.ErrorWithStatusCode{Message: "Please sign-in", StatusCode: http.StatusUnauthorized}
	}
	return uid, nil
}
