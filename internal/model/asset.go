package model

import "time"

// Category groups assets and is used as a filter dimension.
type Category struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Prefix string `json:"prefix,omitempty"`
}

// Asset represents an office asset as returned by the API.
type Asset struct {
	ID            int        `json:"id"`
	AssetCode     string     `json:"assetCode"`
	Name          string     `json:"name"`
	Category      Category   `json:"category"`
	State         AssetState `json:"state"`
	Specification string     `json:"specification,omitempty"`
	InstalledAt   time.Time  `json:"installedAt"`
	Location      Location   `json:"location,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// AssetHistory is one past assignment of an asset.
type AssetHistory struct {
	AssignedDate time.Time  `json:"assignedDate"`
	AssignedTo   string     `json:"assignedTo"`
	AssignedBy   string     `json:"assignedBy"`
	ReturnedDate *time.Time `json:"returnedDate,omitempty"`
}

// AssetDetail is an asset together with its assignment history.
type AssetDetail struct {
	Asset
	Histories []AssetHistory `json:"histories"`
}

// AssetSummary is what the assignment form needs to label a chosen asset.
type AssetSummary struct {
	ID           int    `json:"id,omitempty" form:"id"`
	AssetCode    string `json:"assetCode" form:"code"`
	Name         string `json:"name" form:"name"`
	CategoryName string `json:"categoryName" form:"category"`
}

// Summary returns the picker summary of the asset.
func (a Asset) Summary() AssetSummary {
	return AssetSummary{ID: a.ID, AssetCode: a.AssetCode, Name: a.Name, CategoryName: a.Category.Name}
}

// CreateAssetRequest is the payload of POST /assets.
type CreateAssetRequest struct {
	Name          string     `json:"name"`
	CategoryID    int        `json:"categoryId"`
	Specification string     `json:"specification"`
	InstalledAt   string     `json:"installedAt"`
	State         AssetState `json:"state"`
}

// UpdateAssetRequest is the payload of PATCH /assets/{id}.
type UpdateAssetRequest struct {
	Name          string     `json:"name"`
	Specification string     `json:"specification"`
	InstalledAt   string     `json:"installedAt"`
	State         AssetState `json:"state"`
	UpdatedAt     string     `json:"updatedAt"`
}

// AssetReportRow holds the per-category asset counts.
type AssetReportRow struct {
	Category            string `json:"category"`
	Total               int    `json:"total"`
	Assigned            int    `json:"assigned"`
	Available           int    `json:"available"`
	NotAvailable        int    `json:"notAvailable"`
	WaitingForRecycling int    `json:"waitingForRecycling"`
	Recycled            int    `json:"recycled"`
}
