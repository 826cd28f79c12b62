package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"office-asset-web/internal/model"
)

func (c *Client) ListUsers(ctx context.Context, params ListParams) (*model.Page[model.User], error) {
	var out model.Page[model.User]
	if err := c.query(ctx, "/users", params.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUser(ctx context.Context, id int) (*model.User, error) {
	var out model.User
	if err := c.query(ctx, "/users/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser returns the generated credentials. The result is shown once
// and must not be logged.
func (c *Client) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.CreatedUser, error) {
	var out model.CreatedUser
	if err := c.mutate(ctx, http.MethodPost, "/users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int, req model.UpdateUserRequest) (*model.User, error) {
	var out model.User
	if err := c.mutate(ctx, http.MethodPatch, "/users/"+strconv.Itoa(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DisableUser maps to DELETE; the API keeps the record and marks it disabled.
func (c *Client) DisableUser(ctx context.Context, id int) error {
	return c.mutate(ctx, http.MethodDelete, "/users/"+strconv.Itoa(id), nil, nil)
}
