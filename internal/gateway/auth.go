package gateway

import (
	"context"
	"net/http"

	"github.com/ccmg/qbank-admin/internal/model"
)

// LoginResult is the token and profile returned by a successful login.
type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login exchanges credentials for a session token. The request is the one
// unauthenticated call the gateway makes.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}
