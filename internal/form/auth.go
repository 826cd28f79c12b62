package form

import "strings"

var authLabels = map[string]string{
	"username":        "Username",
	"password":        "Password",
	"oldPassword":     "Old Password",
	"newPassword":     "New Password",
	"confirmPassword": "Confirm Password",
}

type LoginForm struct {
	Username string `form:"username" validate:"required,max=128"`
	Password string `form:"password" validate:"required"`
}

func (f *LoginForm) Ok() (map[string]string, bool) {
	f.Username = strings.TrimSpace(f.Username)
	return check(f, authLabels)
}

func (f LoginForm) Complete() bool {
	return filled(f.Username, f.Password)
}

// ChangePasswordForm is used both voluntarily and on first login, when the
// old password is not asked for.
type ChangePasswordForm struct {
	FirstLogin      bool   `form:"firstLogin"`
	OldPassword     string `form:"oldPassword" validate:"required_if=FirstLogin false"`
	NewPassword     string `form:"newPassword" validate:"required,min=8,max=128,nefield=OldPassword"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

func (f *ChangePasswordForm) Ok() (map[string]string, bool) {
	return check(f, authLabels)
}

func (f ChangePasswordForm) Complete() bool {
	if !f.FirstLogin && f.OldPassword == "" {
		return false
	}
	return filled(f.NewPassword, f.ConfirmPassword)
}
