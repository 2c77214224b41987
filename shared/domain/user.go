package domain

import "time"

type UserId = int64

type User struct {
	Id        UserId
	Name      string
	Nick      string
	Email     string
	PassHash  string
	CreatedAt time.Time
}

type Credentials struct {
	Email    string
	Password string
}
