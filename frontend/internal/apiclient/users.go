package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/devbook-dev/devbook/shared/api"
	internal_errors "github.com/devbook-dev/devbook/shared/errors"
	"github.com/devbook-dev/devbook/shared/utils"
)

// CreateUser is the blocking counterpart of Dispatch(POST, /users) for callers that need the result.
func (c *APIClient) CreateUser(ctx context.Context, req api.CreateUserRequest) (api.UserResponse, error) {
	var user api.UserResponse

	jsonBody, err := json.Marshal(req)
	if err != nil {
		return user, fmt.Errorf("failed to marshal user: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, UsersPath, bytes.NewReader(jsonBody))
	if err != nil {
		return user, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return user, &internal_errors.ErrorWithStatusCode{Message: string(bytes.TrimSpace(bodyBytes)), StatusCode: resp.StatusCode}
	}
	if err := utils.Decode(resp.Body, &user); err != nil {
		return user, fmt.Errorf("cannot decode user response: %w", err)
	}
	return user, nil
}
