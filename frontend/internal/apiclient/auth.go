package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/devbook-dev/devbook/shared/api"
)

// Login sends login credentials. It returns the raw response because the
// handler needs to extract cookies from it.
func (c *APIClient) Login(ctx context.Context, email, password string) (*http.Response, error) {
	jsonBody, err := json.Marshal(api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login data: %w", err)
	}

	return c.do(ctx, http.MethodPost, LoginPath, bytes.NewReader(jsonBody))
}
