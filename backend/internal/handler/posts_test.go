package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devbook-dev/devbook/shared/api"
	"github.com/devbook-dev/devbook/shared/domain"
	internal_errors "github.com/devbook-dev/devbook/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
		var gotActor domain.UserId
		posts := &MockPostService{CreateFunc: func(actor domain.UserId, req api.PostRequest) (domain.Post, error) {
			gotActor = actor
			return domain.Post{Id: 4, Title: req.Title, Content: req.Content, AuthorId: actor, AuthorNick: "ann", CreatedAt: created}, nil
		}}
		h := newPostsTestHandler(posts)

		body := []byte(`{"title":"hi","content":"hello there"}`)
		rr := httptest.NewRecorder()
		h.CreatePost(rr, withUserId(createRequest(t, http.MethodPost, "/posts", body), "", 3))

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, domain.UserId(3), gotActor)
		assert.JSONEq(t, `{"id":4,"title":"hi","content":"hello there","authorId":3,"authorNick":"ann","likes":0,"createdAt":"2024-05-06T07:08:09Z"}`, rr.Body.String())
	})

	t.Run("Missing content", func(t *testing.T) {
		h := newPostsTestHandler(&MockPostService{})

		rr := httptest.NewRecorder()
		h.CreatePost(rr, withUserId(createRequest(t, http.MethodPost, "/posts", []byte(`{"title":"hi"}`)), "", 3))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Not signed in", func(t *testing.T) {
		h := newPostsTestHandler(&MockPostService{})

		rr := httptest.NewRecorder()
		h.CreatePost(rr, createRequest(t, http.MethodPost, "/posts", []byte(`{"title":"hi","content":"c"}`)))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestGetPosts(t *testing.T) {
	var feedFor domain.UserId
	posts := &MockPostService{FeedFunc: func(actor domain.UserId) ([]domain.Post, error) {
		feedFor = actor
		return []domain.Post{{Id: 2}, {Id: 1}}, nil
	}}
	h := newPostsTestHandler(posts)

	rr := httptest.NewRecorder()
	h.GetPosts(rr, withUserId(createRequest(t, http.MethodGet, "/posts", nil), "", 7))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.UserId(7), feedFor)
	assert.Contains(t, rr.Body.String(), `"id":2`)
}

func TestGetPost(t *testing.T) {
	posts := &MockPostService{PostFunc: func(id domain.PostId) (domain.Post, error) {
		if id == 404 {
			return domain.Post{}, &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
		}
		return domain.Post{Id: id, Title: "t"}, nil
	}}
	h := newPostsTestHandler(posts)

	tests := []struct {
		param  string
		status int
	}{
		{"5", http.StatusOK},
		{"404", http.StatusNotFound},
		{"abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.GetPost(rr, withPostId(createRequest(t, http.MethodGet, "/posts/"+tt.param, nil), tt.param, 1))

			assert.Equal(t, tt.status, rr.Code)
		})
	}
}

func TestGetUserPosts(t *testing.T) {
	var gotUser domain.UserId
	posts := &MockPostService{ByUserFunc: func(userId domain.UserId) ([]domain.Post, error) {
		gotUser = userId
		return nil, nil
	}}
	h := newPostsTestHandler(posts)

	rr := httptest.NewRecorder()
	h.GetUserPosts(rr, withUserId(createRequest(t, http.MethodGet, "/users/6/posts", nil), "6", 1))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.UserId(6), gotUser)
	assert.JSONEq(t, `{"posts":[]}`, rr.Body.String())
}

func TestUpdateAndDeletePost(t *testing.T) {
	var updated, deleted [2]int64
	posts := &MockPostService{
		UpdateFunc: func(actor domain.UserId, id domain.PostId, req api.PostRequest) error {
			updated = [2]int64{actor, id}
			return nil
		},
		DeleteFunc: func(actor domain.UserId, id domain.PostId) error {
			deleted = [2]int64{actor, id}
			if actor != 3 {
				return &internal_errors.ErrorWithStatusCode{Message: "You can't delete a post that is not yours", StatusCode: http.StatusForbidden}
			}
			return nil
		},
	}
	h := newPostsTestHandler(posts)

	rr := httptest.NewRecorder()
	h.UpdatePost(rr, withPostId(createRequest(t, http.MethodPut, "/posts/8", []byte(`{"title":"t","content":"c"}`)), "8", 3))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, [2]int64{3, 8}, updated)

	rr = httptest.NewRecorder()
	h.DeletePost(rr, withPostId(createRequest(t, http.MethodDelete, "/posts/8", nil), "8", 3))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, [2]int64{3, 8}, deleted)

	rr = httptest.NewRecorder()
	h.DeletePost(rr, withPostId(createRequest(t, http.MethodDelete, "/posts/8", nil), "8", 4))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestLikeAndDislikePost(t *testing.T) {
	var liked, disliked domain.PostId
	posts := &MockPostService{
		LikeFunc: func(id domain.PostId) error {
			liked = id
			return nil
		},
		DislikeFunc: func(id domain.PostId) error {
			disliked = id
			return nil
		},
	}
	h := newPostsTestHandler(posts)

	rr := httptest.NewRecorder()
	h.LikePost(rr, withPostId(createRequest(t, http.MethodPost, "/posts/5/like", nil), "5", 1))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	h.DislikePost(rr, withPostId(createRequest(t, http.MethodPost, "/posts/6/dislike", nil), "6", 1))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	assert.Equal(t, domain.PostId(5), liked)
	assert.Equal(t, domain.PostId(6), disliked)
}
