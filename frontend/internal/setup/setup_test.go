package setup

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/devbook-dev/devbook/frontend/templates"
	"github.com/devbook-dev/devbook/shared/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplates_Embedded(t *testing.T) {
	tmpl, err := loadTemplates(templates.FS)
	require.NoError(t, err)

	assert.Contains(t, tmpl, "signup.html")
	assert.Contains(t, tmpl, "login.html")
	assert.Contains(t, tmpl, "terms.html")
	assert.NotContains(t, tmpl, "base.html")
}

func TestLoadTemplates_BrokenPage(t *testing.T) {
	fsys := fstest.MapFS{
		"base.html":   {Data: []byte(`{{block "content" .}}{{end}}`)},
		"broken.html": {Data: []byte(`{{define "content"}}{{.Missing`)},
	}

	_, err := loadTemplates(fsys)
	assert.Error(t, err)
}

func TestSetupDependencies(t *testing.T) {
	deps, err := SetupDependencies(config.Public{APIBaseURL: "http://api:8080", NameMaxLen: 50, NickMaxLen: 50})
	require.NoError(t, err)
	defer deps.Close()

	assert.Equal(t, "http://api:8080", deps.Handler.APIClient.BaseURL)
	assert.Contains(t, string(deps.Handler.Terms), "<h1")
	assert.NotNil(t, deps.Handler.UsersProxy)
}

func TestSetupDependencies_BadURL(t *testing.T) {
	_, err := SetupDependencies(config.Public{APIBaseURL: "://bad"})
	assert.Error(t, err)
}

func TestUsersProxy_Forwards(t *testing.T) {
	var gotPath, gotBody, gotForwarded string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotPath, gotBody, gotForwarded = r.URL.Path, string(b), r.Header.Get("X-Forwarded-For")
		w.WriteHeader(http.StatusCreated)
	}))
	defer backend.Close()
	u, err := url.Parse(backend.URL)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"a"}`))
	req.RemoteAddr = "203.0.113.7:5000"
	rr := httptest.NewRecorder()
	newUsersProxy(u).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/users", gotPath)
	assert.Equal(t, `{"name":"a"}`, gotBody)
	assert.Equal(t, "203.0.113.7", gotForwarded)
}

func TestUsersProxy_BackendDown(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	u, err := url.Parse(backend.URL)
	require.NoError(t, err)
	backend.Close()

	rr := httptest.NewRecorder()
	newUsersProxy(u).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("{}")))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
