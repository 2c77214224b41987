package handler

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/devbook-dev/devbook/frontend/internal/apiclient"
	"github.com/devbook-dev/devbook/frontend/internal/signup"
	"github.com/devbook-dev/devbook/shared/config"
)

type Handler struct {
	Public     config.Public
	APIClient  *apiclient.APIClient
	UsersProxy http.Handler  // forwards same-origin POST /users from the browser to the backend
	Terms      template.HTML // rendered once at startup

	// TransportFor gives the no-script signup fallback a transport acting for the browser at clientIP.
	TransportFor func(clientIP string) signup.Transport

	mu        sync.RWMutex
	templates map[string]*template.Template
}

func New(templates map[string]*template.Template, publicCfg config.Public, apiClient *apiclient.APIClient, usersProxy http.Handler, terms template.HTML) *Handler {
	return &Handler{
		Public:    publicCfg,
		APIClient: apiClient,
		TransportFor: func(clientIP string) signup.Transport {
			return apiClient.ForwardedFor(clientIP)
		},
		UsersProxy: usersProxy,
		Terms:      terms,
		templates:  templates,
	}
}

// SetTemplates swaps the template set, used by the development reloader.
func (h *Handler) SetTemplates(templates map[string]*template.Template) {
	h.mu.Lock()
	h.templates = templates
	h.mu.Unlock()
}

func (h *Handler) getTemplate(name string) (*template.Template, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	tmpl, ok := h.templates[name]
	return tmpl, ok
}
