// Package pagination keeps the page, search text and sort column of a list
// in the URL query and derives the handlers list pages link to.
package pagination

import (
	"net/url"
	"slices"

	"office-asset-web/internal/model"
	"office-asset-web/internal/querystate"
)

const (
	PageKey      = "page"
	SearchKey    = "search"
	SortFieldKey = "sortField"
	SortOrderKey = "sortOrder"

	FirstPage    = 1
	DefaultOrder = model.OrderAsc
)

// Metadata is the decoded pagination state of a list.
type Metadata struct {
	Page      int
	Search    string
	SortField string
	SortOrder model.Order
}

// Pagination binds a set of permissible sort fields to the query codec.
type Pagination struct {
	fields    []string
	page      querystate.Param[int]
	search    querystate.Param[string]
	sortField querystate.Param[string]
	sortOrder querystate.Param[model.Order]
}

// New returns the pagination state for a list sortable by sortFields.
// defaultSortField must be one of sortFields.
func New(sortFields []string, defaultSortField string) *Pagination {
	if !slices.Contains(sortFields, defaultSortField) {
		panic("pagination: default sort field " + defaultSortField + " is not sortable")
	}
	fields := slices.Clone(sortFields)
	return &Pagination{
		fields:    fields,
		page:      querystate.Int(PageKey, FirstPage, FirstPage),
		search:    querystate.String(SearchKey, ""),
		sortField: querystate.Enum(SortFieldKey, defaultSortField, fields),
		sortOrder: querystate.Enum(SortOrderKey, DefaultOrder, model.Orders),
	}
}

// SortFields returns the permissible sort fields.
func (p *Pagination) SortFields() []string {
	return slices.Clone(p.fields)
}

// Metadata decodes the current state from values.
func (p *Pagination) Metadata(values url.Values) Metadata {
	return Metadata{
		Page:      p.page.Get(values),
		Search:    p.search.Get(values),
		SortField: p.sortField.Get(values),
		SortOrder: p.sortOrder.Get(values),
	}
}

// Encode writes every pagination dimension of m into values.
func (p *Pagination) Encode(values url.Values, m Metadata) url.Values {
	out := p.page.Set(values, max(m.Page, FirstPage))
	out = p.search.Set(out, m.Search)
	out = p.sortField.Set(out, m.SortField)
	return p.sortOrder.Set(out, m.SortOrder)
}

// PageChange moves to page, leaving the other dimensions untouched.
func (p *Pagination) PageChange(values url.Values, page int) url.Values {
	return p.page.Set(values, max(page, FirstPage))
}

// Search replaces the search text and returns to the first page.
func (p *Pagination) Search(values url.Values, text string) url.Values {
	out := p.search.Set(values, text)
	return p.page.Set(out, FirstPage)
}

// SortColumn toggles the sort on field. The same field flips the order; a
// different field starts ascending on the first page. Unknown fields leave
// the state as it is.
func (p *Pagination) SortColumn(values url.Values, field string) url.Values {
	if !slices.Contains(p.fields, field) {
		return querystate.Clone(values)
	}
	m := p.Metadata(values)
	if m.SortField == field {
		return p.sortOrder.Set(values, m.SortOrder.Flip())
	}
	out := p.sortField.Set(values, field)
	out = p.sortOrder.Set(out, DefaultOrder)
	return p.page.Set(out, FirstPage)
}

// FilterChange applies a filter update and returns to the first page.
func (p *Pagination) FilterChange(values url.Values, apply func(url.Values) url.Values) url.Values {
	return p.page.Set(apply(values), FirstPage)
}

// Clamp bounds the page by totalPages once the result size is known. It
// reports whether the page had to move.
func (p *Pagination) Clamp(values url.Values, totalPages int) (url.Values, bool) {
	page := p.page.Get(values)
	if totalPages < FirstPage || page <= totalPages {
		return querystate.Clone(values), false
	}
	return p.page.Set(values, totalPages), true
}
