package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"office-asset-web/internal/apiclient"
	"office-asset-web/internal/model"
)

func TestPickAsset_ChoiceCarriesDraft(t *testing.T) {
	f := newFixture(t)
	var got apiclient.ListParams
	f.assets.ListAssetsFunc = func(ctx context.Context, params apiclient.ListParams) (*model.Page[model.Asset], error) {
		got = params
		return &model.Page[model.Asset]{
			Data: []model.Asset{
				{ID: 3, AssetCode: "LA000003", Name: "Laptop HP", Category: model.Category{ID: 1, Name: "Laptop"}},
			},
			Pagination: model.Pagination{Page: 1, TotalPages: 1, TotalCount: 1},
		}, nil
	}

	query := url.Values{
		"return":       {"/assignments/12/edit"},
		"user.code":    {"SD0001"},
		"user.name":    {"Binh Nguyen"},
		"assignedDate": {"2024-05-02"},
		"note":         {"for the new hire"},
		"search":       {"lap"},
	}
	rec := f.do(f.h.PickAsset, http.MethodGet, "/assignments/pick/asset?"+query.Encode(), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{string(model.AssetAvailable)}, got.Filters["states"])
	assert.Equal(t, "lap", got.Search)

	body := rec.Body.String()
	assert.Contains(t, body, "/assignments/12/edit?")
	assert.Contains(t, body, "asset.code=LA000003")
	assert.Contains(t, body, "user.code=SD0001")
	assert.Contains(t, body, "assignedDate=2024-05-02")
}

func TestPickUser_ForeignReturnFallsBackToCreate(t *testing.T) {
	f := newFixture(t)
	f.users.ListUsersFunc = func(ctx context.Context, params apiclient.ListParams) (*model.Page[model.User], error) {
		return &model.Page[model.User]{
			Data:       []model.User{{ID: 8, StaffCode: "SD0008", FirstName: "An", LastName: "Tran"}},
			Pagination: model.Pagination{Page: 1, TotalPages: 1, TotalCount: 1},
		}, nil
	}

	rec := f.do(f.h.PickUser, http.MethodGet, "/assignments/pick/user?return=https%3A%2F%2Fevil.example", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/assignments/new?")
	assert.Contains(t, rec.Body.String(), "user.code=SD0008")
	assert.NotContains(t, rec.Body.String(), `href="https://evil.example`)
}
