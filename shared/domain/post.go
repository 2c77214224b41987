package domain

import "time"

type PostId = int64

type Post struct {
	Id         PostId
	Title      string
	Content    string
	AuthorId   UserId
	AuthorNick string
	Likes      int
	CreatedAt  time.Time
}
