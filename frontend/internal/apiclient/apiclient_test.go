package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devbook-dev/devbook/shared/api"
	internal_errors "github.com/devbook-dev/devbook/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Method    string
	Path      string
	Header    http.Header
	Body      []byte
	Cookies   []*http.Cookie
	Completed time.Time
}

func newBackend(t *testing.T, status int, body string, delay time.Duration) (*httptest.Server, <-chan capturedRequest) {
	t.Helper()
	requests := make(chan capturedRequest, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		b, _ := io.ReadAll(r.Body)
		requests <- capturedRequest{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Body: b, Cookies: r.Cookies(), Completed: time.Now()}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, requests
}

func TestDispatch(t *testing.T) {
	t.Run("posts JSON and resolves with the response", func(t *testing.T) {
		srv, requests := newBackend(t, http.StatusCreated, `{"id":1}`, 0)
		client := New(srv.URL)

		p := client.Dispatch(http.MethodPost, UsersPath, api.CreateUserRequest{Name: "Ann", Nick: "a1", Email: "ann@x.com", Password: "secret"})

		resp, err := p.Result()
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.JSONEq(t, `{"id":1}`, string(resp.Body))

		got := <-requests
		assert.Equal(t, http.MethodPost, got.Method)
		assert.Equal(t, "/users", got.Path)
		assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
		assert.NotEmpty(t, got.Header.Get("X-Request-ID"))
		assert.JSONEq(t, `{"name":"Ann","nick":"a1","email":"ann@x.com","password":"secret"}`, string(got.Body))
	})

	t.Run("returns before the backend answers", func(t *testing.T) {
		srv, requests := newBackend(t, http.StatusCreated, "", 200*time.Millisecond)
		client := New(srv.URL)

		start := time.Now()
		p := client.Dispatch(http.MethodPost, UsersPath, api.CreateUserRequest{})
		returned := time.Now()

		select {
		case <-p.Done():
			t.Fatal("pending resolved before the backend answered")
		default:
		}

		_, err := p.Result()
		require.NoError(t, err)
		got := <-requests
		assert.True(t, returned.Before(got.Completed))
		assert.Less(t, returned.Sub(start), 200*time.Millisecond)
	})

	t.Run("unreachable backend surfaces only through the pending", func(t *testing.T) {
		client := New("http://127.0.0.1:1")

		p := client.Dispatch(http.MethodPost, UsersPath, api.CreateUserRequest{})

		resp, err := p.Result()
		assert.Nil(t, resp)
		assert.ErrorContains(t, err, "backend unavailable")
	})

	t.Run("unencodable body resolves immediately", func(t *testing.T) {
		client := New("http://unused")

		p := client.Dispatch(http.MethodPost, UsersPath, map[string]any{"bad": make(chan int)})

		select {
		case <-p.Done():
		default:
			t.Fatal("expected an already resolved pending")
		}
		_, err := p.Result()
		assert.Error(t, err)
	})
}

func TestResolved(t *testing.T) {
	p := Resolved(&Response{StatusCode: 202}, nil)

	resp, err := p.Result()
	require.NoError(t, err)
	assert.Equal(t, 202, resp.StatusCode)
}

func TestCreateUser(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		srv, _ := newBackend(t, http.StatusCreated, `{"id":5,"name":"Ann","nick":"a1","email":"ann@x.com","createdAt":"2024-01-01T00:00:00Z"}`, 0)

		user, err := New(srv.URL).CreateUser(context.Background(), api.CreateUserRequest{Name: "Ann"})

		require.NoError(t, err)
		assert.Equal(t, int64(5), user.Id)
		assert.Equal(t, "a1", user.Nick)
	})

	t.Run("backend error keeps status and message", func(t *testing.T) {
		srv, _ := newBackend(t, http.StatusConflict, "Nick already taken\n", 0)

		_, err := New(srv.URL).CreateUser(context.Background(), api.CreateUserRequest{})

		var e *internal_errors.ErrorWithStatusCode
		require.ErrorAs(t, err, &e)
		assert.Equal(t, http.StatusConflict, e.StatusCode)
		assert.Equal(t, "Nick already taken", e.Message)
	})
}

func TestLogin(t *testing.T) {
	srv, requests := newBackend(t, http.StatusOK, "token", 0)

	resp, err := New(srv.URL).Login(context.Background(), "ann@x.com", "secret")
	require.NoError(t, err)
	defer resp.Body.Close()

	got := <-requests
	assert.Equal(t, "/login", got.Path)
	var body api.LoginRequest
	require.NoError(t, json.Unmarshal(got.Body, &body))
	assert.Equal(t, api.LoginRequest{Email: "ann@x.com", Password: "secret"}, body)
}

func TestForwardedFor(t *testing.T) {
	srv, requests := newBackend(t, http.StatusCreated, "", 0)
	base := New(srv.URL)

	forwarded := base.ForwardedFor("203.0.113.9")
	_, err := forwarded.Dispatch(http.MethodPost, UsersPath, api.CreateUserRequest{Name: "Ann"}).Result()
	require.NoError(t, err)
	got := <-requests
	assert.Equal(t, "203.0.113.9", got.Header.Get("X-Forwarded-For"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))

	_, err = base.Dispatch(http.MethodPost, UsersPath, api.CreateUserRequest{Name: "Bob"}).Result()
	require.NoError(t, err)
	got = <-requests
	assert.Empty(t, got.Header.Get("X-Forwarded-For"), "the original client is left untouched")
}
