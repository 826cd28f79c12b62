package model

import (
	"strings"
	"time"
)

// User represents a staff member as returned by the API.
type User struct {
	ID         int         `json:"id"`
	StaffCode  string      `json:"staffCode"`
	FirstName  string      `json:"firstName"`
	LastName   string      `json:"lastName"`
	FullName   string      `json:"fullName"`
	Username   string      `json:"username"`
	Dob        time.Time   `json:"dob"`
	Gender     Gender      `json:"gender"`
	JoinedAt   time.Time   `json:"joinedAt"`
	Type       AccountType `json:"type"`
	Location   Location    `json:"location"`
	CanDisable bool        `json:"canDisable,omitempty"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// DisplayName returns the full name, composing it when the API omits it.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserSummary is what the assignment form needs to label a chosen user.
type UserSummary struct {
	ID        int         `json:"id,omitempty" form:"id"`
	StaffCode string      `json:"staffCode" form:"code"`
	FullName  string      `json:"fullName" form:"name"`
	Type      AccountType `json:"type" form:"type"`
}

// Summary returns the picker summary of the user.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, StaffCode: u.StaffCode, FullName: u.DisplayName(), Type: u.Type}
}

// CreateUserRequest is the payload of POST /users.
type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Dob       string `json:"dob"`
	Gender    string `json:"gender"`
	JoinedAt  string `json:"joinedAt"`
	Type      string `json:"type"`
	Location  string `json:"location,omitempty"`
}

// UpdateUserRequest is the payload of PATCH /users/{id}.
type UpdateUserRequest struct {
	Dob       string `json:"dob,omitempty"`
	Gender    string `json:"gender,omitempty"`
	JoinedAt  string `json:"joinedAt,omitempty"`
	Type      string `json:"type,omitempty"`
	Location  string `json:"location,omitempty"`
	UpdatedAt string `json:"updatedAt"`
}

// CreatedUser is the one-time response of POST /users. It carries the
// generated password and must not outlive the result dialog.
type CreatedUser struct {
	StaffCode string      `json:"staffCode"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Username  string      `json:"username"`
	Password  string      `json:"password"`
	Dob       time.Time   `json:"dob"`
	Gender    Gender      `json:"gender"`
	JoinedAt  time.Time   `json:"joinedAt"`
	Type      AccountType `json:"type"`
	Location  Location    `json:"location"`
}

// Profile is the authenticated account.
type Profile struct {
	ID               int         `json:"id"`
	Username         string      `json:"username"`
	StaffCode        string      `json:"staffCode"`
	Type             AccountType `json:"type"`
	Location         Location    `json:"location"`
	IsFirstTimeLogin bool        `json:"isFirstTimeLogin,omitempty"`
}
