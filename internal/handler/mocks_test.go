package handler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"office-asset-web/internal/apiclient"
	"office-asset-web/internal/model"
	"office-asset-web/internal/secret"
	"office-asset-web/internal/session"
)

// Mock implementations for testing

// MockAuthAPI is a mock implementation of apiclient.AuthAPI
type MockAuthAPI struct {
	LoginFunc          func(ctx context.Context, username, password string) (*apiclient.LoginResult, error)
	ProfileFunc        func(ctx context.Context) (*model.Profile, error)
	ChangePasswordFunc func(ctx context.Context, oldPassword, newPassword string) error
	LogoutFunc         func(ctx context.Context) error
}

func (m *MockAuthAPI) Login(ctx context.Context, username, password string) (*apiclient.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return &apiclient.LoginResult{AccessToken: "token"}, nil
}

func (m *MockAuthAPI) Profile(ctx context.Context) (*model.Profile, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx)
	}
	return &model.Profile{Username: "binhnv", Type: model.AccountAdmin}, nil
}

func (m *MockAuthAPI) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, oldPassword, newPassword)
	}
	return nil
}

func (m *MockAuthAPI) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

// MockAssetAPI is a mock implementation of apiclient.AssetAPI
type MockAssetAPI struct {
	ListAssetsFunc     func(ctx context.Context, params apiclient.ListParams) (*model.Page[model.Asset], error)
	GetAssetFunc       func(ctx context.Context, id int) (*model.AssetDetail, error)
	CreateAssetFunc    func(ctx context.Context, req model.CreateAssetRequest) (*model.Asset, error)
	UpdateAssetFunc    func(ctx context.Context, id int, req model.UpdateAssetRequest) (*model.Asset, error)
	DeleteAssetFunc    func(ctx context.Context, id int) error
	AssetReportFunc    func(ctx context.Context, params apiclient.ListParams) (*model.Page[model.AssetReportRow], error)
	ListCategoriesFunc func(ctx context.Context) ([]model.Category, error)
}

func (m *MockAssetAPI) ListAssets(ctx context.Context, params apiclient.ListParams) (*model.Page[model.Asset], error) {
	if m.ListAssetsFunc != nil {
		return m.ListAssetsFunc(ctx, params)
	}
	return &model.Page[model.Asset]{}, nil
}

func (m *MockAssetAPI) GetAsset(ctx context.Context, id int) (*model.AssetDetail, error) {
	if m.GetAssetFunc != nil {
		return m.GetAssetFunc(ctx, id)
	}
	return &model.AssetDetail{Asset: model.Asset{ID: id, State: model.AssetAvailable}}, nil
}

func (m *MockAssetAPI) CreateAsset(ctx context.Context, req model.CreateAssetRequest) (*model.Asset, error) {
	if m.CreateAssetFunc != nil {
		return m.CreateAssetFunc(ctx, req)
	}
	return &model.Asset{ID: 1, Name: req.Name}, nil
}

func (m *MockAssetAPI) UpdateAsset(ctx context.Context, id int, req model.UpdateAssetRequest) (*model.Asset, error) {
	if m.UpdateAssetFunc != nil {
		return m.UpdateAssetFunc(ctx, id, req)
	}
	return &model.Asset{ID: id, Name: req.Name}, nil
}

func (m *MockAssetAPI) DeleteAsset(ctx context.Context, id int) error {
	if m.DeleteAssetFunc != nil {
		return m.DeleteAssetFunc(ctx, id)
	}
	return nil
}

func (m *MockAssetAPI) AssetReport(ctx context.Context, params apiclient.ListParams) (*model.Page[model.AssetReportRow], error) {
	if m.AssetReportFunc != nil {
		return m.AssetReportFunc(ctx, params)
	}
	return &model.Page[model.AssetReportRow]{}, nil
}

func (m *MockAssetAPI) ListCategories(ctx context.Context) ([]model.Category, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx)
	}
	return []model.Category{{ID: 1, Name: "Laptop"}, {ID: 2, Name: "Monitor"}}, nil
}

// MockUserAPI is a mock implementation of apiclient.UserAPI
type MockUserAPI struct {
	ListUsersFunc   func(ctx context.Context, params apiclient.ListParams) (*model.Page[model.User], error)
	GetUserFunc     func(ctx context.Context, id int) (*model.User, error)
	CreateUserFunc  func(ctx context.Context, req model.CreateUserRequest) (*model.CreatedUser, error)
	UpdateUserFunc  func(ctx context.Context, id int, req model.UpdateUserRequest) (*model.User, error)
	DisableUserFunc func(ctx context.Context, id int) error
}

func (m *MockUserAPI) ListUsers(ctx context.Context, params apiclient.ListParams) (*model.Page[model.User], error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, params)
	}
	return &model.Page[model.User]{}, nil
}

func (m *MockUserAPI) GetUser(ctx context.Context, id int) (*model.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return &model.User{ID: id}, nil
}

func (m *MockUserAPI) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.CreatedUser, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, req)
	}
	return &model.CreatedUser{FirstName: req.FirstName, LastName: req.LastName}, nil
}

func (m *MockUserAPI) UpdateUser(ctx context.Context, id int, req model.UpdateUserRequest) (*model.User, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, id, req)
	}
	return &model.User{ID: id}, nil
}

func (m *MockUserAPI) DisableUser(ctx context.Context, id int) error {
	if m.DisableUserFunc != nil {
		return m.DisableUserFunc(ctx, id)
	}
	return nil
}

// MockAssignmentAPI is a mock implementation of apiclient.AssignmentAPI
type MockAssignmentAPI struct {
	ListAssignmentsFunc   func(ctx context.Context, params apiclient.ListParams) (*model.Page[model.Assignment], error)
	GetAssignmentFunc     func(ctx context.Context, id int) (*model.Assignment, error)
	CreateAssignmentFunc  func(ctx context.Context, req model.AssignmentRequest) (*model.Assignment, error)
	UpdateAssignmentFunc  func(ctx context.Context, id int, req model.AssignmentRequest) (*model.Assignment, error)
	DeleteAssignmentFunc  func(ctx context.Context, id int) error
	MyAssignmentsFunc     func(ctx context.Context, params apiclient.ListParams) (*model.Page[model.Assignment], error)
	AcceptAssignmentFunc  func(ctx context.Context, id int) error
	DeclineAssignmentFunc func(ctx context.Context, id int) error
}

func (m *MockAssignmentAPI) ListAssignments(ctx context.Context, params apiclient.ListParams) (*model.Page[model.Assignment], error) {
	if m.ListAssignmentsFunc != nil {
		return m.ListAssignmentsFunc(ctx, params)
	}
	return &model.Page[model.Assignment]{}, nil
}

func (m *MockAssignmentAPI) GetAssignment(ctx context.Context, id int) (*model.Assignment, error) {
	if m.GetAssignmentFunc != nil {
		return m.GetAssignmentFunc(ctx, id)
	}
	return &model.Assignment{ID: id, State: model.AssignmentWaitingForAcceptance}, nil
}

func (m *MockAssignmentAPI) CreateAssignment(ctx context.Context, req model.AssignmentRequest) (*model.Assignment, error) {
	if m.CreateAssignmentFunc != nil {
		return m.CreateAssignmentFunc(ctx, req)
	}
	return &model.Assignment{ID: 1}, nil
}

func (m *MockAssignmentAPI) UpdateAssignment(ctx context.Context, id int, req model.AssignmentRequest) (*model.Assignment, error) {
	if m.UpdateAssignmentFunc != nil {
		return m.UpdateAssignmentFunc(ctx, id, req)
	}
	return &model.Assignment{ID: id}, nil
}

func (m *MockAssignmentAPI) DeleteAssignment(ctx context.Context, id int) error {
	if m.DeleteAssignmentFunc != nil {
		return m.DeleteAssignmentFunc(ctx, id)
	}
	return nil
}

func (m *MockAssignmentAPI) MyAssignments(ctx context.Context, params apiclient.ListParams) (*model.Page[model.Assignment], error) {
	if m.MyAssignmentsFunc != nil {
		return m.MyAssignmentsFunc(ctx, params)
	}
	return &model.Page[model.Assignment]{}, nil
}

func (m *MockAssignmentAPI) AcceptAssignment(ctx context.Context, id int) error {
	if m.AcceptAssignmentFunc != nil {
		return m.AcceptAssignmentFunc(ctx, id)
	}
	return nil
}

func (m *MockAssignmentAPI) DeclineAssignment(ctx context.Context, id int) error {
	if m.DeclineAssignmentFunc != nil {
		return m.DeclineAssignmentFunc(ctx, id)
	}
	return nil
}

// MockReturningAPI is a mock implementation of apiclient.ReturningAPI
type MockReturningAPI struct {
	ListReturningRequestsFunc    func(ctx context.Context, params apiclient.ListParams) (*model.Page[model.ReturningRequest], error)
	CreateReturningRequestFunc   func(ctx context.Context, assignmentID int) error
	CompleteReturningRequestFunc func(ctx context.Context, id int) error
	CancelReturningRequestFunc   func(ctx context.Context, id int) error
}

func (m *MockReturningAPI) ListReturningRequests(ctx context.Context, params apiclient.ListParams) (*model.Page[model.ReturningRequest], error) {
	if m.ListReturningRequestsFunc != nil {
		return m.ListReturningRequestsFunc(ctx, params)
	}
	return &model.Page[model.ReturningRequest]{}, nil
}

func (m *MockReturningAPI) CreateReturningRequest(ctx context.Context, assignmentID int) error {
	if m.CreateReturningRequestFunc != nil {
		return m.CreateReturningRequestFunc(ctx, assignmentID)
	}
	return nil
}

func (m *MockReturningAPI) CompleteReturningRequest(ctx context.Context, id int) error {
	if m.CompleteReturningRequestFunc != nil {
		return m.CompleteReturningRequestFunc(ctx, id)
	}
	return nil
}

func (m *MockReturningAPI) CancelReturningRequest(ctx context.Context, id int) error {
	if m.CancelReturningRequestFunc != nil {
		return m.CancelReturningRequestFunc(ctx, id)
	}
	return nil
}

// MockSessionStore is a mock implementation of session.Store
type MockSessionStore struct {
	CreateFunc func(ctx context.Context, s session.Session) error
	GetFunc    func(ctx context.Context, id uuid.UUID) (*session.Session, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *MockSessionStore) Create(ctx context.Context, s session.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return nil
}

func (m *MockSessionStore) Get(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, session.ErrSessionNotFound
}

func (m *MockSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockSessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

// MockVault is a mock implementation of secret.Vault
type MockVault struct {
	PutFunc  func(ctx context.Context, payload []byte) (string, error)
	TakeFunc func(ctx context.Context, token string) ([]byte, error)
}

func (m *MockVault) Put(ctx context.Context, payload []byte) (string, error) {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, payload)
	}
	return "token", nil
}

func (m *MockVault) Take(ctx context.Context, token string) ([]byte, error) {
	if m.TakeFunc != nil {
		return m.TakeFunc(ctx, token)
	}
	return nil, nil
}

var (
	_ apiclient.AuthAPI       = (*MockAuthAPI)(nil)
	_ apiclient.AssetAPI      = (*MockAssetAPI)(nil)
	_ apiclient.UserAPI       = (*MockUserAPI)(nil)
	_ apiclient.AssignmentAPI = (*MockAssignmentAPI)(nil)
	_ apiclient.ReturningAPI  = (*MockReturningAPI)(nil)
	_ session.Store           = (*MockSessionStore)(nil)
	_ secret.Vault            = (*MockVault)(nil)
)
