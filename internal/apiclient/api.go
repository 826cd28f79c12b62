package apiclient

import (
	"context"

	"office-asset-web/internal/model"
)

// AuthAPI covers sign-in and the current account.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Profile(ctx context.Context) (*model.Profile, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	Logout(ctx context.Context) error
}

// AssetAPI covers assets, their categories and the per-category report.
type AssetAPI interface {
	ListAssets(ctx context.Context, params ListParams) (*model.Page[model.Asset], error)
	GetAsset(ctx context.Context, id int) (*model.AssetDetail, error)
	CreateAsset(ctx context.Context, req model.CreateAssetRequest) (*model.Asset, error)
	UpdateAsset(ctx context.Context, id int, req model.UpdateAssetRequest) (*model.Asset, error)
	DeleteAsset(ctx context.Context, id int) error
	AssetReport(ctx context.Context, params ListParams) (*model.Page[model.AssetReportRow], error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

// UserAPI covers the staff directory.
type UserAPI interface {
	ListUsers(ctx context.Context, params ListParams) (*model.Page[model.User], error)
	GetUser(ctx context.Context, id int) (*model.User, error)
	CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.CreatedUser, error)
	UpdateUser(ctx context.Context, id int, req model.UpdateUserRequest) (*model.User, error)
	DisableUser(ctx context.Context, id int) error
}

// AssignmentAPI covers assignments, including the signed-in user's own.
type AssignmentAPI interface {
	ListAssignments(ctx context.Context, params ListParams) (*model.Page[model.Assignment], error)
	GetAssignment(ctx context.Context, id int) (*model.Assignment, error)
	CreateAssignment(ctx context.Context, req model.AssignmentRequest) (*model.Assignment, error)
	UpdateAssignment(ctx context.Context, id int, req model.AssignmentRequest) (*model.Assignment, error)
	DeleteAssignment(ctx context.Context, id int) error
	MyAssignments(ctx context.Context, params ListParams) (*model.Page[model.Assignment], error)
	AcceptAssignment(ctx context.Context, id int) error
	DeclineAssignment(ctx context.Context, id int) error
}

// ReturningAPI covers requests for returning assigned assets.
type ReturningAPI interface {
	ListReturningRequests(ctx context.Context, params ListParams) (*model.Page[model.ReturningRequest], error)
	CreateReturningRequest(ctx context.Context, assignmentID int) error
	CompleteReturningRequest(ctx context.Context, id int) error
	CancelReturningRequest(ctx context.Context, id int) error
}

var (
	_ AuthAPI       = (*Client)(nil)
	_ AssetAPI      = (*Client)(nil)
	_ UserAPI       = (*Client)(nil)
	_ AssignmentAPI = (*Client)(nil)
	_ ReturningAPI  = (*Client)(nil)
)
