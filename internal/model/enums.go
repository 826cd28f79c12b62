package model

// AssetState is the lifecycle state of an asset.
type AssetState string

const (
	AssetAvailable           AssetState = "AVAILABLE"
	AssetUnavailable         AssetState = "UNAVAILABLE"
	AssetAssigned            AssetState = "ASSIGNED"
	AssetWaitingForRecycling AssetState = "WAITING_FOR_RECYCLING"
	AssetRecycled            AssetState = "RECYCLED"
)

// AssetStates lists every asset state in display order.
var AssetStates = []AssetState{
	AssetAssigned,
	AssetAvailable,
	AssetUnavailable,
	AssetWaitingForRecycling,
	AssetRecycled,
}

// DefaultAssetStateFilter is applied to the asset list when no states are given.
var DefaultAssetStateFilter = []AssetState{AssetAssigned, AssetAvailable, AssetUnavailable}

var assetStateLabels = map[AssetState]string{
	AssetAvailable:           "Available",
	AssetUnavailable:         "Not Available",
	AssetAssigned:            "Assigned",
	AssetWaitingForRecycling: "Waiting for recycling",
	AssetRecycled:            "Recycled",
}

func (s AssetState) Label() string {
	if l, ok := assetStateLabels[s]; ok {
		return l
	}
	return string(s)
}

// Editable reports whether the asset may be edited or deleted.
func (s AssetState) Editable() bool {
	return s != AssetAssigned
}

// AssignmentState is the lifecycle state of an assignment.
type AssignmentState string

const (
	AssignmentWaitingForAcceptance AssignmentState = "WAITING_FOR_ACCEPTANCE"
	AssignmentAccepted             AssignmentState = "ACCEPTED"
	AssignmentDeclined             AssignmentState = "DECLINED"
	AssignmentWaitingForReturning  AssignmentState = "WAITING_FOR_RETURNING"
)

var AssignmentStates = []AssignmentState{
	AssignmentAccepted,
	AssignmentDeclined,
	AssignmentWaitingForAcceptance,
	AssignmentWaitingForReturning,
}

var assignmentStateLabels = map[AssignmentState]string{
	AssignmentWaitingForAcceptance: "Waiting for acceptance",
	AssignmentAccepted:             "Accepted",
	AssignmentDeclined:             "Declined",
	AssignmentWaitingForReturning:  "Waiting for returning",
}

func (s AssignmentState) Label() string {
	if l, ok := assignmentStateLabels[s]; ok {
		return l
	}
	return string(s)
}

// Editable reports whether the assignment may still be edited.
func (s AssignmentState) Editable() bool {
	return s == AssignmentWaitingForAcceptance
}

// Deletable reports whether the assignment may be deleted.
func (s AssignmentState) Deletable() bool {
	return s == AssignmentWaitingForAcceptance || s == AssignmentDeclined
}

// Returnable reports whether a returning request may be created.
func (s AssignmentState) Returnable() bool {
	return s == AssignmentAccepted
}

// ReturningState is the lifecycle state of a returning request.
type ReturningState string

const (
	ReturningWaiting   ReturningState = "WAITING_FOR_RETURNING"
	ReturningCompleted ReturningState = "COMPLETED"
)

var ReturningStates = []ReturningState{ReturningCompleted, ReturningWaiting}

func (s ReturningState) Label() string {
	switch s {
	case ReturningWaiting:
		return "Waiting for returning"
	case ReturningCompleted:
		return "Completed"
	}
	return string(s)
}

type AccountType string

const (
	AccountAdmin AccountType = "ADMIN"
	AccountStaff AccountType = "STAFF"
)

var AccountTypes = []AccountType{AccountAdmin, AccountStaff}

func (t AccountType) Label() string {
	switch t {
	case AccountAdmin:
		return "Admin"
	case AccountStaff:
		return "Staff"
	}
	return string(t)
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

var Genders = []Gender{GenderFemale, GenderMale}

func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	}
	return string(g)
}

type Location string

const (
	LocationHCM Location = "HCM"
	LocationHN  Location = "HN"
	LocationDN  Location = "DN"
)

var Locations = []Location{LocationHCM, LocationHN, LocationDN}

// Order is a sort direction understood by the API.
type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

var Orders = []Order{OrderAsc, OrderDesc}

// Flip returns the opposite direction.
func (o Order) Flip() Order {
	if o == OrderAsc {
		return OrderDesc
	}
	return OrderAsc
}
