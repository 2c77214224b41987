package service

import (
	"net/http"
	"unicode/utf8"

	"github.com/devbook-dev/devbook/shared/api"
	"github.com/devbook-dev/devbook/shared/domain"
	"github.com/devbook-dev/devbook/shared/errors"
	"github.com/devbook-dev/devbook/shared/logger"
	"github.com/devbook-dev/devbook/shared/middleware/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

const (
	PostTitleMaxLen   = 50
	PostContentMaxLen = 300
)

type PostService interface {
	Create(actor domain.UserId, req api.PostRequest) (domain.Post, error)
	Post(id domain.PostId) (domain.Post, error)
	Feed(actor domain.UserId) ([]domain.Post, error)
	ByUser(userId domain.UserId) ([]domain.Post, error)
	Update(actor domain.UserId, id domain.PostId, req api.PostRequest) error
	Delete(actor domain.UserId, id domain.PostId) error
	Like(id domain.PostId) error
	Dislike(id domain.PostId) error
}

type PostStorage interface {
	SavePost(post domain.Post) (domain.Post, error)
	Post(id domain.PostId) (domain.Post, error)
	Feed(userId domain.UserId) ([]domain.Post, error)
	PostsByUser(userId domain.UserId) ([]domain.Post, error)
	UpdatePost(post domain.Post) error
	DeletePost(id domain.PostId) error
	LikePost(id domain.PostId) error
	DislikePost(id domain.PostId) error
}

type Posts struct {
	storage  PostStorage
	users    UserStorage
	validate *validator.Validate
	strip    *bluemonday.Policy
}

func NewPosts(storage PostStorage, users UserStorage) *Posts {
	return &Posts{
		storage:  storage,
		users:    users,
		validate: validator.New(),
		strip:    bluemonday.StrictPolicy(),
	}
}

// postBody holds title and content once markup and spaces are gone.
type postBody struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
}

func (p *Posts) Create(actor domain.UserId, req api.PostRequest) (domain.Post, error) {
	body, err := p.prepare(req)
	if err != nil {
		return domain.Post{}, err
	}

	post, err := p.storage.SavePost(domain.Post{Title: body.Title, Content: body.Content, AuthorId: actor})
	if err != nil {
		return domain.Post{}, err
	}

	metrics.PostsCreated.Inc()
	logger.Log.Info("post created", "post_id", post.Id, "author_id", actor)
	return post, nil
}

func (p *Posts) Post(id domain.PostId) (domain.Post, error) {
	return p.storage.Post(id)
}

// Feed returns actor's own posts and those of everyone actor follows, newest first.
func (p *Posts) Feed(actor domain.UserId) ([]domain.Post, error) {
	return p.storage.Feed(actor)
}

func (p *Posts) ByUser(userId domain.UserId) ([]domain.Post, error) {
	if _, err := p.users.User(userId); err != nil {
		return nil, err
	}
	return p.storage.PostsByUser(userId)
}

// Update changes title and content. Only the author may do it.
func (p *Posts) Update(actor domain.UserId, id domain.PostId, req api.PostRequest) error {
	if err := p.mustOwn(actor, id, "You can't update a post that is not yours"); err != nil {
		return err
	}
	body, err := p.prepare(req)
	if err != nil {
		return err
	}
	return p.storage.UpdatePost(domain.Post{Id: id, Title: body.Title, Content: body.Content})
}

func (p *Posts) Delete(actor domain.UserId, id domain.PostId) error {
	if err := p.mustOwn(actor, id, "You can't delete a post that is not yours"); err != nil {
		return err
	}
	return p.storage.DeletePost(id)
}

func (p *Posts) Like(id domain.PostId) error {
	return p.storage.LikePost(id)
}

// Dislike takes one like back. The counter never goes below zero.
func (p *Posts) Dislike(id domain.PostId) error {
	return p.storage.DislikePost(id)
}

func (p *Posts) mustOwn(actor domain.UserId, id domain.PostId, msg string) error {
	post, err := p.storage.Post(id)
	if err != nil {
		return err
	}
	if post.AuthorId != actor {
		return &errors.ErrorWithStatusCode{Message: msg, StatusCode: http.StatusForbidden}
	}
	return nil
}

func (p *Posts) prepare(req api.PostRequest) (postBody, error) {
	body := postBody{
		Title:   plainText(p.strip, req.Title),
		Content: plainText(p.strip, req.Content),
	}
	if err := p.validate.Struct(body); err != nil {
		return postBody{}, profileError(err)
	}
	if utf8.RuneCountInString(body.Title) > PostTitleMaxLen {
		return postBody{}, badRequest("Title is too long")
	}
	if utf8.RuneCountInString(body.Content) > PostContentMaxLen {
		return postBody{}, badRequest("Content is too long")
	}
	return body, nil
}
