package router

import (
	"net/http"

	"github.com/devbook-dev/devbook/frontend/internal/middleware"
	"github.com/devbook-dev/devbook/frontend/internal/setup"
	mw "github.com/devbook-dev/devbook/shared/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// wasm needs 'wasm-unsafe-eval' to compile signup.wasm; everything else is same-origin.
const contentSecurityPolicy = "default-src 'self'; script-src 'self' 'wasm-unsafe-eval'; " +
	"style-src 'self'; img-src 'self' data:; frame-ancestors 'none'; form-action 'self'"

func SetupRouter(deps *setup.Dependencies) http.Handler {
	h := deps.Handler
	r := mux.NewRouter()
	r.Use(mw.SecurityHeadersWithCSP(deps.Public.SecureCookies, contentSecurityPolicy))

	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(deps.StaticDir))),
	)

	// Script-driven signup posts JSON to its own origin; the backend validates it.
	r.HandleFunc("/users", h.UsersProxyHandler).Methods(http.MethodPost)

	// Pages and form posts
	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.GenerateCSRFToken(middleware.CSRFConfig{SecureCookies: deps.Public.SecureCookies}))
	pages.Use(middleware.ValidateCSRFToken())

	pages.Handle("/", http.RedirectHandler("/signup", http.StatusFound)).Methods(http.MethodGet)
	pages.HandleFunc("/signup", h.SignupGetHandler).Methods(http.MethodGet)
	pages.HandleFunc("/signup", h.SignupPostHandler).Methods(http.MethodPost)
	pages.HandleFunc("/login", h.LoginGetHandler).Methods(http.MethodGet)
	pages.HandleFunc("/login", h.LoginPostHandler).Methods(http.MethodPost)
	pages.HandleFunc("/logout", h.LogoutHandler).Methods(http.MethodPost)
	pages.HandleFunc("/terms", h.TermsGetHandler).Methods(http.MethodGet)

	return handlers.CompressHandler(r)
}
