package form

import (
	"strings"

	"office-asset-web/internal/model"
)

var userLabels = map[string]string{
	"firstName": "First Name",
	"lastName":  "Last Name",
	"dob":       "Date of Birth",
	"gender":    "Gender",
	"joinedAt":  "Joined Date",
	"type":      "Type",
	"location":  "Location",
}

// CreateUserForm is the body of POST /users/new.
type CreateUserForm struct {
	FirstName string            `form:"firstName" validate:"required,max=128,personname"`
	LastName  string            `form:"lastName" validate:"required,max=128,personname"`
	Dob       string            `form:"dob" validate:"required,date,adult"`
	Gender    model.Gender      `form:"gender" validate:"required,oneof=MALE FEMALE"`
	JoinedAt  string            `form:"joinedAt" validate:"required,date,workday"`
	Type      model.AccountType `form:"type" validate:"required,oneof=ADMIN STAFF"`
	Location  model.Location    `form:"location" validate:"required_if=Type ADMIN,omitempty,oneof=HCM HN DN"`
}

// NewCreateUserForm returns the blank form.
func NewCreateUserForm() CreateUserForm {
	return CreateUserForm{Gender: model.GenderFemale, Type: model.AccountStaff}
}

func (f *CreateUserForm) Ok() (map[string]string, bool) {
	f.FirstName = squash(f.FirstName)
	f.LastName = squash(f.LastName)
	if f.Type != model.AccountAdmin {
		f.Location = ""
	}
	return check(f, userLabels)
}

func (f CreateUserForm) Complete() bool {
	if f.Type == model.AccountAdmin && f.Location == "" {
		return false
	}
	return filled(f.FirstName, f.LastName, f.Dob, string(f.Gender), f.JoinedAt, string(f.Type))
}

func (f CreateUserForm) Request() model.CreateUserRequest {
	return model.CreateUserRequest{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Dob:       f.Dob,
		Gender:    string(f.Gender),
		JoinedAt:  f.JoinedAt,
		Type:      string(f.Type),
		Location:  string(f.Location),
	}
}

// EditUserForm is the body of POST /users/{id}/edit. Names are read-only.
type EditUserForm struct {
	FirstName string            `form:"-"`
	LastName  string            `form:"-"`
	Dob       string            `form:"dob" validate:"required,date,adult"`
	Gender    model.Gender      `form:"gender" validate:"required,oneof=MALE FEMALE"`
	JoinedAt  string            `form:"joinedAt" validate:"required,date,workday"`
	Type      model.AccountType `form:"type" validate:"required,oneof=ADMIN STAFF"`
	Location  model.Location    `form:"location" validate:"required_if=Type ADMIN,omitempty,oneof=HCM HN DN"`
	UpdatedAt string            `form:"updatedAt"`
}

func EditUserFormFrom(u model.User) EditUserForm {
	return EditUserForm{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Dob:       dateOf(u.Dob),
		Gender:    u.Gender,
		JoinedAt:  dateOf(u.JoinedAt),
		Type:      u.Type,
		Location:  u.Location,
		UpdatedAt: stamp(u.UpdatedAt),
	}
}

func (f *EditUserForm) Ok() (map[string]string, bool) {
	if f.Type != model.AccountAdmin {
		f.Location = ""
	}
	return check(f, userLabels)
}

func (f EditUserForm) Complete() bool {
	if f.Type == model.AccountAdmin && f.Location == "" {
		return false
	}
	return filled(f.Dob, string(f.Gender), f.JoinedAt, string(f.Type))
}

func (f EditUserForm) Request() model.UpdateUserRequest {
	return model.UpdateUserRequest{
		Dob:       f.Dob,
		Gender:    string(f.Gender),
		JoinedAt:  f.JoinedAt,
		Type:      string(f.Type),
		Location:  string(f.Location),
		UpdatedAt: f.UpdatedAt,
	}
}

// squash trims and collapses inner runs of spaces.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
