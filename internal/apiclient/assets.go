package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"office-asset-web/internal/model"
)

func (c *Client) ListAssets(ctx context.Context, params ListParams) (*model.Page[model.Asset], error) {
	var out model.Page[model.Asset]
	if err := c.query(ctx, "/assets", params.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAsset(ctx context.Context, id int) (*model.AssetDetail, error) {
	var out model.AssetDetail
	if err := c.query(ctx, "/assets/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateAsset(ctx context.Context, req model.CreateAssetRequest) (*model.Asset, error) {
	var out model.Asset
	if err := c.mutate(ctx, http.MethodPost, "/assets", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAsset(ctx context.Context, id int, req model.UpdateAssetRequest) (*model.Asset, error) {
	var out model.Asset
	if err := c.mutate(ctx, http.MethodPatch, "/assets/"+strconv.Itoa(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAsset(ctx context.Context, id int) error {
	return c.mutate(ctx, http.MethodDelete, "/assets/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) AssetReport(ctx context.Context, params ListParams) (*model.Page[model.AssetReportRow], error) {
	var out model.Page[model.AssetReportRow]
	if err := c.query(ctx, "/assets/report", params.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	if err := c.query(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
