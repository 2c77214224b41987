package handler

import (
	"net/http"

	"github.com/devbook-dev/devbook/shared/api"
	"github.com/devbook-dev/devbook/shared/domain"
	"github.com/devbook-dev/devbook/shared/utils"
)

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	uid, err := actor(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var req api.PostRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.posts.Create(uid, req)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.NewPostResponse(post))
}

// GetPosts returns the signed-in user's feed: own posts and posts of followed users.
func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	uid, err := actor(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	posts, err := h.posts.Feed(uid)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.NewPostListResponse(posts))
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.posts.Post(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.NewPostResponse(post))
}

func (h *Handler) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	posts, err := h.posts.ByUser(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.NewPostListResponse(posts))
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	uid, err := actor(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var req api.PostRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.posts.Update(uid, id, req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	uid, err := actor(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.posts.Delete(uid, id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	h.postCounter(w, r, h.posts.Like)
}

func (h *Handler) DislikePost(w http.ResponseWriter, r *http.Request) {
	h.postCounter(w, r, h.posts.Dislike)
}

func (h *Handler) postCounter(w http.ResponseWriter, r *http.Request, change func(id domain.PostId) error) {
	id, err := parsePostId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := change(id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
