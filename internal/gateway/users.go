package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ccmg/qbank-admin/internal/model"
)

// ListUsers fetches user accounts, optionally narrowed by a search term.
func (c *Client) ListUsers(ctx context.Context, search string) ([]model.User, error) {
	path := "/api/users"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}

	users := []model.User{}
	if err := c.do(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, id string) (model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// UpdateUser applies a partial update and returns the stored profile.
func (c *Client) UpdateUser(ctx context.Context, id string, patch model.UserPatch) (model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), patch, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil, nil)
}
