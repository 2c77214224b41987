package setup

import (
	"github.com/devbook-dev/devbook/backend/internal/handler"
	"github.com/devbook-dev/devbook/backend/internal/service"
	"github.com/devbook-dev/devbook/backend/internal/storage/pg"
	"github.com/devbook-dev/devbook/shared/config"
	"github.com/devbook-dev/devbook/shared/jwt"
	mw "github.com/devbook-dev/devbook/shared/middleware"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	users := service.NewUsers(storage, &cfg.Public)
	posts := service.NewPosts(storage, storage)
	auth := service.NewAuth(storage, jwtService)

	return &Dependencies{
		Storage:        storage,
		Handler:        handler.New(users, posts, auth, storage, cfg),
		AuthMiddleware: mw.NewAuth(jwtService),
		Config:         cfg,
	}, nil
}
