package model

// Pagination is the pagination block of a list response.
type Pagination struct {
	Page       int `json:"page"`
	Take       int `json:"take"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// Page is a single page of a list response.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}
