package api

import (
	"time"

	"github.com/devbook-dev/devbook/shared/domain"
)

// CreateUserRequest is the body of POST /users. The password confirmation never leaves the browser.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Nick     string `json:"nick" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Id        domain.UserId `json:"id"`
	Name      string        `json:"name"`
	Nick      string        `json:"nick"`
	Email     string        `json:"email"`
	CreatedAt time.Time     `json:"createdAt"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		Id:        u.Id,
		Name:      u.Name,
		Nick:      u.Nick,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// UpdateUserRequest is the body of PUT /users/{userId}. Passwords are not changed here.
type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Nick  string `json:"nick" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdatePasswordRequest is the body of POST /users/{userId}/updatePassword.
type UpdatePasswordRequest struct {
	New     string `json:"new" validate:"required"`
	Current string `json:"current" validate:"required"`
}
