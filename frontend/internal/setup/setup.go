package setup

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/devbook-dev/devbook/frontend/internal/apiclient"
	"github.com/devbook-dev/devbook/frontend/internal/handler"
	"github.com/devbook-dev/devbook/frontend/internal/markdown"
	"github.com/devbook-dev/devbook/frontend/templates"
	"github.com/devbook-dev/devbook/shared/config"
	"github.com/devbook-dev/devbook/shared/logger"
)

const (
	baseTemplate           = "base.html"
	termsDocument          = "terms.md"
	devTemplatesDir        = "frontend/templates"
	defaultStaticDir       = "static"
	templateReloadInterval = 5 * time.Second
)

type Dependencies struct {
	Handler   *handler.Handler
	Public    config.Public
	StaticDir string
	stop      chan struct{}
}

// Close stops background work started by SetupDependencies.
func (d *Dependencies) Close() {
	close(d.stop)
}

func SetupDependencies(cfg config.Public) (*Dependencies, error) {
	apiBaseURL := cfg.APIBaseURL
	if env := os.Getenv("API_BASE_URL"); env != "" {
		apiBaseURL = env
	}
	backend, err := url.Parse(apiBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", apiBaseURL, err)
	}

	tmpl, err := loadTemplates(templates.FS)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	termsSrc, err := fs.ReadFile(templates.FS, termsDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", termsDocument, err)
	}
	terms, err := markdown.New().Render(termsSrc)
	if err != nil {
		return nil, err
	}

	apiClient := apiclient.New(apiBaseURL)
	h := handler.New(tmpl, cfg, apiClient, newUsersProxy(backend), terms)

	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = defaultStaticDir
	}

	deps := &Dependencies{
		Handler:   h,
		Public:    cfg,
		StaticDir: staticDir,
		stop:      make(chan struct{}),
	}
	if os.Getenv("ENV") == "development" {
		go reloadTemplates(h, os.DirFS(devTemplatesDir), deps.stop)
	}
	return deps, nil
}

// newUsersProxy forwards requests unchanged to the backend so the browser can
// post to its own origin.
func newUsersProxy(backend *url.URL) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(backend)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Log.Error("users proxy", "path", r.URL.Path, "error", err)
			http.Error(w, "backend unavailable", http.StatusBadGateway)
		},
	}
}

// loadTemplates parses every page template together with the base layout.
func loadTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	pages, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, err
	}

	result := make(map[string]*template.Template)
	for _, page := range pages {
		if page == baseTemplate {
			continue
		}
		t, err := template.New(baseTemplate).ParseFS(fsys, baseTemplate, path.Base(page))
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", page, err)
		}
		result[page] = t
	}
	return result, nil
}

func reloadTemplates(h *handler.Handler, fsys fs.FS, stop <-chan struct{}) {
	ticker := time.NewTicker(templateReloadInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			tmpl, err := loadTemplates(fsys)
			if err != nil {
				logger.Log.Error("template reload failed", "error", err)
				continue
			}
			h.SetTemplates(tmpl)
		}
	}
}
