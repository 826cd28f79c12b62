package apiclient

import (
	"context"
	"net/http"

	"office-asset-web/internal/model"
)

// LoginResult is the response of POST /auth/login.
type LoginResult struct {
	AccessToken      string `json:"accessToken"`
	IsFirstTimeLogin bool   `json:"isFirstTimeLogin,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword,omitempty"`
	NewPassword string `json:"newPassword"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var out LoginResult
	if err := c.mutate(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Profile(ctx context.Context) (*model.Profile, error) {
	var out model.Profile
	if err := c.query(ctx, "/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword sends oldPassword only when set; first-time logins change
// the generated password without it.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return c.mutate(ctx, http.MethodPost, "/auth/change-password", changePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.mutate(ctx, http.MethodPost, "/auth/logout", nil, nil)
}
