package model

import "time"

// AssignmentAsset is the asset embedded in an assignment.
type AssignmentAsset struct {
	ID        int      `json:"id"`
	AssetCode string   `json:"assetCode"`
	Name      string   `json:"name"`
	Category  Category `json:"category"`
}

// AssignmentUser is a user reference embedded in an assignment.
type AssignmentUser struct {
	ID        int         `json:"id"`
	StaffCode string      `json:"staffCode"`
	FullName  string      `json:"fullName"`
	Username  string      `json:"username"`
	Type      AccountType `json:"type"`
}

// Assignment links a user and an asset.
type Assignment struct {
	ID           int             `json:"id"`
	Asset        AssignmentAsset `json:"asset"`
	AssignedTo   AssignmentUser  `json:"assignedTo"`
	AssignedBy   AssignmentUser  `json:"assignedBy"`
	AssignedDate time.Time       `json:"assignedDate"`
	Note         string          `json:"note"`
	State        AssignmentState `json:"state"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// AssignmentRequest is the payload of POST /assignments and PATCH /assignments/{id}.
type AssignmentRequest struct {
	AssetCode    string `json:"assetCode"`
	StaffCode    string `json:"staffCode"`
	AssignedDate string `json:"assignedDate"`
	Note         string `json:"note"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// ReturningRequest asks for an assigned asset to be returned.
type ReturningRequest struct {
	ID           int             `json:"id"`
	Assignment   Assignment      `json:"assignment"`
	RequestedBy  AssignmentUser  `json:"requestedBy"`
	AcceptedBy   *AssignmentUser `json:"acceptedBy,omitempty"`
	ReturnedDate *time.Time      `json:"returnedDate,omitempty"`
	State        ReturningState  `json:"state"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
