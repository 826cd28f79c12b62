package apiclient

import (
	"net/url"
	"strconv"

	"office-asset-web/internal/model"
)

// ListParams is the common query of every paginated endpoint. Filters are
// sent as repeated parameters (states=A&states=B).
type ListParams struct {
	Page      int
	Take      int
	Search    string
	SortField string
	SortOrder model.Order
	Filters   url.Values
}

// Values encodes p for the API.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Take > 0 {
		v.Set("take", strconv.Itoa(p.Take))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.SortField != "" {
		v.Set("sortField", p.SortField)
	}
	if p.SortOrder != "" {
		v.Set("sortOrder", string(p.SortOrder))
	}
	for key, values := range p.Filters {
		for _, item := range values {
			v.Add(key, item)
		}
	}
	return v
}

// WithFilter returns a copy of p with key set to values.
func (p ListParams) WithFilter(key string, values ...string) ListParams {
	filters := url.Values{}
	for k, vs := range p.Filters {
		filters[k] = append([]string(nil), vs...)
	}
	filters.Del(key)
	for _, item := range values {
		filters.Add(key, item)
	}
	p.Filters = filters
	return p
}
