package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devbook-dev/devbook/shared/api"
	"github.com/devbook-dev/devbook/shared/config"
	"github.com/devbook-dev/devbook/shared/domain"
	mw "github.com/devbook-dev/devbook/shared/middleware"
	"github.com/go-chi/chi/v5"
)

// --- Mocks ---

type MockUserService struct {
	CreateFunc func(req api.CreateUserRequest) (domain.User, error)
	UserFunc   func(id domain.UserId) (domain.User, error)
	SearchFunc func(filter string) ([]domain.User, error)
	UpdateFunc func(actor, id domain.UserId, req api.UpdateUserRequest) error
	DeleteFunc func(actor, id domain.UserId) error

	FollowFunc         func(actor, id domain.UserId) error
	UnfollowFunc       func(actor, id domain.UserId) error
	FollowersFunc      func(id domain.UserId) ([]domain.User, error)
	FollowingFunc      func(id domain.UserId) ([]domain.User, error)
	UpdatePasswordFunc func(actor, id domain.UserId, req api.UpdatePasswordRequest) error
}

func (m *MockUserService) Create(req api.CreateUserRequest) (domain.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(req)
	}
	return domain.User{Id: 1, Name: req.Name, Nick: req.Nick, Email: req.Email}, nil
}

func (m *MockUserService) User(id domain.UserId) (domain.User, error) {
	if m.UserFunc != nil {
		return m.UserFunc(id)
	}
	return domain.User{Id: id}, nil
}

func (m *MockUserService) Search(filter string) ([]domain.User, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(filter)
	}
	return nil, nil
}

func (m *MockUserService) Update(actor, id domain.UserId, req api.UpdateUserRequest) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(actor, id, req)
	}
	return nil
}

func (m *MockUserService) Delete(actor, id domain.UserId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(actor, id)
	}
	return nil
}

func (m *MockUserService) Follow(actor, id domain.UserId) error {
	if m.FollowFunc != nil {
		return m.FollowFunc(actor, id)
	}
	return nil
}

func (m *MockUserService) Unfollow(actor, id domain.UserId) error {
	if m.UnfollowFunc != nil {
		return m.UnfollowFunc(actor, id)
	}
	return nil
}

func (m *MockUserService) Followers(id domain.UserId) ([]domain.User, error) {
	if m.FollowersFunc != nil {
		return m.FollowersFunc(id)
	}
	return nil, nil
}

func (m *MockUserService) Following(id domain.UserId) ([]domain.User, error) {
	if m.FollowingFunc != nil {
		return m.FollowingFunc(id)
	}
	return nil, nil
}

func (m *MockUserService) UpdatePassword(actor, id domain.UserId, req api.UpdatePasswordRequest) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(actor, id, req)
	}
	return nil
}

type MockPostService struct {
	CreateFunc  func(actor domain.UserId, req api.PostRequest) (domain.Post, error)
	PostFunc    func(id domain.PostId) (domain.Post, error)
	FeedFunc    func(actor domain.UserId) ([]domain.Post, error)
	ByUserFunc  func(userId domain.UserId) ([]domain.Post, error)
	UpdateFunc  func(actor domain.UserId, id domain.PostId, req api.PostRequest) error
	DeleteFunc  func(actor domain.UserId, id domain.PostId) error
	LikeFunc    func(id domain.PostId) error
	DislikeFunc func(id domain.PostId) error
}

func (m *MockPostService) Create(actor domain.UserId, req api.PostRequest) (domain.Post, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(actor, req)
	}
	return domain.Post{Id: 1, Title: req.Title, Content: req.Content, AuthorId: actor}, nil
}

func (m *MockPostService) Post(id domain.PostId) (domain.Post, error) {
	if m.PostFunc != nil {
		return m.PostFunc(id)
	}
	return domain.Post{Id: id}, nil
}

func (m *MockPostService) Feed(actor domain.UserId) ([]domain.Post, error) {
	if m.FeedFunc != nil {
		return m.FeedFunc(actor)
	}
	return nil, nil
}

func (m *MockPostService) ByUser(userId domain.UserId) ([]domain.Post, error) {
	if m.ByUserFunc != nil {
		return m.ByUserFunc(userId)
	}
	return nil, nil
}

func (m *MockPostService) Update(actor domain.UserId, id domain.PostId, req api.PostRequest) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(actor, id, req)
	}
	return nil
}

func (m *MockPostService) Delete(actor domain.UserId, id domain.PostId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(actor, id)
	}
	return nil
}

func (m *MockPostService) Like(id domain.PostId) error {
	if m.LikeFunc != nil {
		return m.LikeFunc(id)
	}
	return nil
}

func (m *MockPostService) Dislike(id domain.PostId) error {
	if m.DislikeFunc != nil {
		return m.DislikeFunc(id)
	}
	return nil
}

type MockAuthService struct {
	LoginFunc func(creds domain.Credentials) (string, error)
}

func (m *MockAuthService) Login(creds domain.Credentials) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(creds)
	}
	return "token", nil
}

type MockHealth struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealth) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// --- Helpers ---

func newTestHandler(users *MockUserService, auth *MockAuthService, health *MockHealth) *Handler {
	if users == nil {
		users = &MockUserService{}
	}
	if auth == nil {
		auth = &MockAuthService{}
	}
	if health == nil {
		health = &MockHealth{}
	}
	cfg := &config.Config{Public: config.Public{JwtTTL: time.Hour, SecureCookies: true}}
	return New(users, &MockPostService{}, auth, health, cfg)
}

func newPostsTestHandler(posts *MockPostService) *Handler {
	h := newTestHandler(nil, nil, nil)
	h.posts = posts
	return h
}

func createRequest(t *testing.T, method, url string, body []byte, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// withUserId attaches the {userId} route param and, when uid > 0, an authenticated user.
func withUserId(req *http.Request, param string, uid domain.UserId) *http.Request {
	return withParam(req, "userId", param, uid)
}

func withPostId(req *http.Request, param string, uid domain.UserId) *http.Request {
	return withParam(req, "postId", param, uid)
}

func withParam(req *http.Request, key, value string, uid domain.UserId) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if uid > 0 {
		ctx = context.WithValue(ctx, mw.UserIdKey, uid)
	}
	return req.WithContext(ctx)
}
