package api

import (
	"time"

	"github.com/devbook-dev/devbook/shared/domain"
)

// PostRequest is the body of POST /posts and PUT /posts/{postId}.
type PostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type PostResponse struct {
	Id         domain.PostId `json:"id"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	AuthorId   domain.UserId `json:"authorId"`
	AuthorNick string        `json:"authorNick"`
	Likes      int           `json:"likes"`
	CreatedAt  time.Time     `json:"createdAt"`
}

type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
}

func NewPostResponse(p domain.Post) PostResponse {
	return PostResponse{
		Id:         p.Id,
		Title:      p.Title,
		Content:    p.Content,
		AuthorId:   p.AuthorId,
		AuthorNick: p.AuthorNick,
		Likes:      p.Likes,
		CreatedAt:  p.CreatedAt,
	}
}

func NewPostListResponse(posts []domain.Post) PostListResponse {
	resp := PostListResponse{Posts: make([]PostResponse, 0, len(posts))}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, NewPostResponse(p))
	}
	return resp
}
