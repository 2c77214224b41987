package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/devbook-dev/devbook/backend/internal/handler"
	"github.com/devbook-dev/devbook/shared/config"
	mw "github.com/devbook-dev/devbook/shared/middleware"
	"github.com/devbook-dev/devbook/shared/middleware/metrics"
	rl "github.com/devbook-dev/devbook/shared/middleware/ratelimiter"
)

// JSON API only, no scripts or styles
const backendCSP = "default-src 'none'; frame-ancestors 'none'"

// New builds the API router. The returned func stops the rate limiters' cleanup timers.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints of that group combined
func New(h *handler.Handler, auth *mw.Auth, cfg config.Public) (http.Handler, func()) {
	var limiters []*rl.UserRateLimiter
	limiter := func(l *rl.UserRateLimiter) *rl.UserRateLimiter {
		limiters = append(limiters, l)
		return l
	}
	clientIP := mw.GetIPBehind(cfg.TrustedProxies)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.SecurityHeadersWithCSP(cfg.SecureCookies, backendCSP))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", metrics.Handler())

	// Account creation
	r.Group(func(r chi.Router) {
		if cfg.SignupPerIPEvery > 0 {
			r.Use(mw.RateLimit(limiter(rl.OnceEvery(cfg.SignupPerIPEvery)), clientIP))
		}
		r.Use(mw.GlobalRateLimit(limiter(rl.Rps100())))
		r.Post("/users", h.CreateUser)
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit(limiter(rl.OnceInSecond()), clientIP))
		r.Post("/login", h.Login)
	})
	r.Post("/logout", h.Logout)

	// Logged-in user routes
	r.Group(func(r chi.Router) {
		r.Use(auth.NeedAuth())
		r.Use(mw.RateLimit(limiter(rl.Rps100()), mw.GetUserIdFromRequest))

		r.Get("/users", h.GetUsers)
		r.Get("/users/{userId}", h.GetUser)
		r.Put("/users/{userId}", h.UpdateUser)
		r.Delete("/users/{userId}", h.DeleteUser)

		r.Post("/users/{userId}/follow", h.FollowUser)
		r.Post("/users/{userId}/unfollow", h.UnfollowUser)
		r.Get("/users/{userId}/followers", h.GetFollowers)
		r.Get("/users/{userId}/following", h.GetFollowing)
		r.With(mw.RateLimit(limiter(rl.OnceInSecond()), mw.GetUserIdFromRequest)).
			Post("/users/{userId}/updatePassword", h.UpdatePassword)

		r.Get("/users/{userId}/posts", h.GetUserPosts)
		r.Post("/posts", h.CreatePost)
		r.Get("/posts", h.GetPosts)
		r.Get("/posts/{postId}", h.GetPost)
		r.Put("/posts/{postId}", h.UpdatePost)
		r.Delete("/posts/{postId}", h.DeletePost)
		r.Post("/posts/{postId}/like", h.LikePost)
		r.Post("/posts/{postId}/dislike", h.DislikePost)
	})

	stop := func() {
		for _, l := range limiters {
			l.Stop()
		}
	}
	return r, stop
}
