package view

import (
	"net/url"

	"office-asset-web/internal/dialog"
	"office-asset-web/internal/model"
)

// Page is the data every template receives. Body carries the page
// specific view model.
type Page struct {
	Title   string
	Heading string
	Nav     []NavItem
	User    string
	Admin   bool
	Dialog  *dialog.Dialog
	Flash   string
	// Tab identifies the browser tab a full page is rendered into; htmx
	// sends it back on every request of that tab.
	Tab string
	// Bare pages (login) have no navigation.
	Bare bool
	Body any
}

type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// Column is a table header cell.
type Column struct {
	Label    string
	Href     string
	Sortable bool
	Sorted   bool
	Order    model.Order
}

// Filter is a multi-select dropdown.
type Filter struct {
	Key     string
	Title   string
	Summary string
	Options []FilterOption
}

type FilterOption struct {
	Label    string
	Value    string
	Selected bool
	Href     string
}

// DateFilter is a single-date filter submitted as a small GET form.
type DateFilter struct {
	Key    string
	Title  string
	Value  string
	Hidden url.Values
	Clear  string
}

// PageLink is one entry of the pager.
type PageLink struct {
	Number  int
	Href    string
	Current bool
}

type Pager struct {
	Page       int
	TotalPages int
	Prev       string
	Next       string
	Links      []PageLink
}

// List is a paginated table. Exactly one of Rows, Empty or Err is shown.
type List[T any] struct {
	Path      string
	Self      string
	Search    string
	Hidden    url.Values
	Columns   []Column
	Filters   []Filter
	Dates     []DateFilter
	Rows      []T
	Empty     string
	Err       string
	Colspan   int
	Pager     Pager
	CreateURL string
	Target    string
}

// Status is "error" when the request failed and "success" otherwise.
func (l List[T]) Status() string {
	if l.Err != "" {
		return "error"
	}
	return "success"
}

// Blank reports whether the "no records" row must be shown.
func (l List[T]) Blank() bool {
	return l.Err == "" && len(l.Rows) == 0
}

// Row is a table row with the actions its state allows.
type Row[T any] struct {
	Item    T
	Detail  string
	Actions []Action
	// Current marks the record the user just saved.
	Current bool
}

// Action is a row button. Disabled actions render without a target.
type Action struct {
	Label    string
	Icon     string
	Href     string
	Disabled bool
	Danger   bool
}

// Form is the state of an entity form.
type Form[T any] struct {
	Title    string
	Action   string
	Cancel   string
	Values   T
	Errors   map[string]string
	Message  string
	Complete bool
	Editing  bool
	Options  map[string][]Option
	// Links are auxiliary targets, such as the pickers of a form.
	Links    map[string]string
}

// Option is a select or radio choice.
type Option struct {
	Label string
	Value string
}

// Picker is the user or asset chooser of the assignment form.
type Picker[T any] struct {
	List[Row[T]]
	Selected string
	Back     string
}
