package service

import (
	"net/http"

	"github.com/devbook-dev/devbook/shared/domain"
	internal_errors "github.com/devbook-dev/devbook/shared/errors"
)

// --- Mocks ---

type MockUserStorage struct {
	SaveUserFunc    func(user domain.User) (domain.User, error)
	UserFunc        func(id domain.UserId) (domain.User, error)
	UserByEmailFunc func(email string) (domain.User, error)
	SearchUsersFunc func(filter string) ([]domain.User, error)
	UpdateUserFunc  func(user domain.User) error
	DeleteUserFunc  func(id domain.UserId) error

	UpdatePasswordFunc func(id domain.UserId, passHash string) error
	FollowFunc         func(userId, followerId domain.UserId) error
	UnfollowFunc       func(userId, followerId domain.UserId) error
	FollowersFunc      func(userId domain.UserId) ([]domain.User, error)
	FollowingFunc      func(followerId domain.UserId) ([]domain.User, error)
}

func (m *MockUserStorage) SaveUser(user domain.User) (domain.User, error) {
	if m.SaveUserFunc != nil {
		return m.SaveUserFunc(user)
	}
	user.Id = 1
	return user, nil
}

func (m *MockUserStorage) User(id domain.UserId) (domain.User, error) {
	if m.UserFunc != nil {
		return m.UserFunc(id)
	}
	return domain.User{}, notFound()
}

func (m *MockUserStorage) UserByEmail(email string) (domain.User, error) {
	if m.UserByEmailFunc != nil {
		return m.UserByEmailFunc(email)
	}
	return domain.User{}, notFound()
}

func (m *MockUserStorage) SearchUsers(filter string) ([]domain.User, error) {
	if m.SearchUsersFunc != nil {
		return m.SearchUsersFunc(filter)
	}
	return []domain.User{}, nil
}

func (m *MockUserStorage) UpdateUser(user domain.User) error {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(user)
	}
	return nil
}

func (m *MockUserStorage) DeleteUser(id domain.UserId) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(id)
	}
	return nil
}

func (m *MockUserStorage) UpdatePassword(id domain.UserId, passHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(id, passHash)
	}
	return nil
}

func (m *MockUserStorage) Follow(userId, followerId domain.UserId) error {
	if m.FollowFunc != nil {
		return m.FollowFunc(userId, followerId)
	}
	return nil
}

func (m *MockUserStorage) Unfollow(userId, followerId domain.UserId) error {
	if m.UnfollowFunc != nil {
		return m.UnfollowFunc(userId, followerId)
	}
	return nil
}

func (m *MockUserStorage) Followers(userId domain.UserId) ([]domain.User, error) {
	if m.FollowersFunc != nil {
		return m.FollowersFunc(userId)
	}
	return []domain.User{}, nil
}

func (m *MockUserStorage) Following(followerId domain.UserId) ([]domain.User, error) {
	if m.FollowingFunc != nil {
		return m.FollowingFunc(followerId)
	}
	return []domain.User{}, nil
}

type MockPostStorage struct {
	SavePostFunc    func(post domain.Post) (domain.Post, error)
	PostFunc        func(id domain.PostId) (domain.Post, error)
	FeedFunc        func(userId domain.UserId) ([]domain.Post, error)
	PostsByUserFunc func(userId domain.UserId) ([]domain.Post, error)
	UpdatePostFunc  func(post domain.Post) error
	DeletePostFunc  func(id domain.PostId) error
	LikePostFunc    func(id domain.PostId) error
	DislikePostFunc func(id domain.PostId) error
}

func (m *MockPostStorage) SavePost(post domain.Post) (domain.Post, error) {
	if m.SavePostFunc != nil {
		return m.SavePostFunc(post)
	}
	post.Id = 1
	return post, nil
}

func (m *MockPostStorage) Post(id domain.PostId) (domain.Post, error) {
	if m.PostFunc != nil {
		return m.PostFunc(id)
	}
	return domain.Post{}, &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
}

func (m *MockPostStorage) Feed(userId domain.UserId) ([]domain.Post, error) {
	if m.FeedFunc != nil {
		return m.FeedFunc(userId)
	}
	return []domain.Post{}, nil
}

func (m *MockPostStorage) PostsByUser(userId domain.UserId) ([]domain.Post, error) {
	if m.PostsByUserFunc != nil {
		return m.PostsByUserFunc(userId)
	}
	return []domain.Post{}, nil
}

func (m *MockPostStorage) UpdatePost(post domain.Post) error {
	if m.UpdatePostFunc != nil {
		return m.UpdatePostFunc(post)
	}
	return nil
}

func (m *MockPostStorage) DeletePost(id domain.PostId) error {
	if m.DeletePostFunc != nil {
		return m.DeletePostFunc(id)
	}
	return nil
}

func (m *MockPostStorage) LikePost(id domain.PostId) error {
	if m.LikePostFunc != nil {
		return m.LikePostFunc(id)
	}
	return nil
}

func (m *MockPostStorage) DislikePost(id domain.PostId) error {
	if m.DislikePostFunc != nil {
		return m.DislikePostFunc(id)
	}
	return nil
}

type MockJwt struct {
	NewTokenFunc func(user domain.User) (string, error)
}

func (m *MockJwt) NewToken(user domain.User) (string, error) {
	if m.NewTokenFunc != nil {
		return m.NewTokenFunc(user)
	}
	return "token", nil
}

func notFound() error {
	return &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
}
