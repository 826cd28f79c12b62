package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"office-asset-web/internal/model"
)

func (c *Client) ListAssignments(ctx context.Context, params ListParams) (*model.Page[model.Assignment], error) {
	var out model.Page[model.Assignment]
	if err := c.query(ctx, "/assignments", params.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAssignment(ctx context.Context, id int) (*model.Assignment, error) {
	var out model.Assignment
	if err := c.query(ctx, "/assignments/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateAssignment(ctx context.Context, req model.AssignmentRequest) (*model.Assignment, error) {
	var out model.Assignment
	if err := c.mutate(ctx, http.MethodPost, "/assignments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAssignment(ctx context.Context, id int, req model.AssignmentRequest) (*model.Assignment, error) {
	var out model.Assignment
	if err := c.mutate(ctx, http.MethodPatch, "/assignments/"+strconv.Itoa(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAssignment(ctx context.Context, id int) error {
	return c.mutate(ctx, http.MethodDelete, "/assignments/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) MyAssignments(ctx context.Context, params ListParams) (*model.Page[model.Assignment], error) {
	var out model.Page[model.Assignment]
	if err := c.query(ctx, "/me/assignments", params.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AcceptAssignment(ctx context.Context, id int) error {
	return c.mutate(ctx, http.MethodPatch, "/me/assignments/"+strconv.Itoa(id)+"/accept", nil, nil)
}

func (c *Client) DeclineAssignment(ctx context.Context, id int) error {
	return c.mutate(ctx, http.MethodPatch, "/me/assignments/"+strconv.Itoa(id)+"/decline", nil, nil)
}
