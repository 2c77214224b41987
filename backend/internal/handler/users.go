package handler

import (
	"net/http"

	"github.com/devbook-dev/devbook/shared/api"
	"github.com/devbook-dev/devbook/shared/domain"
	"github.com/devbook-dev/devbook/shared/utils"
)

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req api.CreateUserRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, err := h.users.Create(req)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.NewUserResponse(user))
}

// GetUsers lists users whose name or nick contains the ?user= filter.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.Search(r.URL.Query().Get("user"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, newUserList(users))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, err := h.users.User(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.NewUserResponse(user))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	uid, err := actor(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var req api.UpdateUserRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.users.Update(uid, id, req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	uid, err := actor(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.users.Delete(uid, id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FollowUser makes the signed-in user a follower of {userId}.
func (h *Handler) FollowUser(w http.ResponseWriter, r *http.Request) {
	h.followAction(w, r, h.users.Follow)
}

func (h *Handler) UnfollowUser(w http.ResponseWriter, r *http.Request) {
	h.followAction(w, r, h.users.Unfollow)
}

func (h *Handler) followAction(w http.ResponseWriter, r *http.Request, action func(actor, id domain.UserId) error) {
	id, err := parseUserId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	uid, err := actor(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := action(uid, id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetFollowers(w http.ResponseWriter, r *http.Request) {
	h.listRelated(w, r, h.users.Followers)
}

func (h *Handler) GetFollowing(w http.ResponseWriter, r *http.Request) {
	h.listRelated(w, r, h.users.Following)
}

func (h *Handler) listRelated(w http.ResponseWriter, r *http.Request, list func(id domain.UserId) ([]domain.User, error)) {
	id, err := parseUserId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	users, err := list(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, newUserList(users))
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	uid, err := actor(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var req api.UpdatePasswordRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.users.UpdatePassword(uid, id, req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func newUserList(users []domain.User) api.UserListResponse {
	resp := api.UserListResponse{Users: make([]api.UserResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, api.NewUserResponse(u))
	}
	return resp
}
