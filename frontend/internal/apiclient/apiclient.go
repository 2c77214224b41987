package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

const (
	UsersPath = "/users"
	LoginPath = "/login"
)

// APIClient struct handles all communication with the backend API.
type APIClient struct {
	BaseURL    string
	HttpClient *http.Client
	Header     http.Header // added to every request
}

func New(baseURL string) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		HttpClient: &http.Client{},
	}
}

// ForwardedFor returns a copy of the client whose requests name clientIP in
// X-Forwarded-For, for calls the frontend makes on behalf of a browser.
func (c *APIClient) ForwardedFor(clientIP string) *APIClient {
	forwarded := *c
	forwarded.Header = c.Header.Clone()
	if forwarded.Header == nil {
		forwarded.Header = http.Header{}
	}
	forwarded.Header.Set("X-Forwarded-For", clientIP)
	return &forwarded
}

// do is the single helper for making API requests.
// Every request carries a fresh X-Request-ID so backend logs can be correlated.
func (c *APIClient) do(ctx context.Context, method, path string, body io.Reader, cookies ...*http.Cookie) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	for name, values := range c.Header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unavailable: %w", err)
	}
	return resp, nil
}
