package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"office-asset-web/internal/model"
)

type createReturningRequest struct {
	AssignmentID int `json:"assignmentId"`
}

func (c *Client) ListReturningRequests(ctx context.Context, params ListParams) (*model.Page[model.ReturningRequest], error) {
	var out model.Page[model.ReturningRequest]
	if err := c.query(ctx, "/returning-requests", params.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateReturningRequest(ctx context.Context, assignmentID int) error {
	return c.mutate(ctx, http.MethodPost, "/returning-requests", createReturningRequest{AssignmentID: assignmentID}, nil)
}

func (c *Client) CompleteReturningRequest(ctx context.Context, id int) error {
	return c.mutate(ctx, http.MethodPatch, "/returning-requests/"+strconv.Itoa(id)+"/complete", nil, nil)
}

func (c *Client) CancelReturningRequest(ctx context.Context, id int) error {
	return c.mutate(ctx, http.MethodDelete, "/returning-requests/"+strconv.Itoa(id), nil, nil)
}
