package handler

import (
	"context"

	"github.com/devbook-dev/devbook/backend/internal/service"
	"github.com/devbook-dev/devbook/shared/config"
)

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	users  service.UserService
	posts  service.PostService
	auth   service.AuthService
	health HealthChecker
	cfg    *config.Config
}

func New(users service.UserService, posts service.PostService, auth service.AuthService, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		users:  users,
		posts:  posts,
		auth:   auth,
		health: health,
		cfg:    cfg,
	}
}
