package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"office-asset-web/internal/apiclient"
	"office-asset-web/internal/fetch"
	"office-asset-web/internal/logging"
	"office-asset-web/internal/model"
	"office-asset-web/internal/multiselect"
	"office-asset-web/internal/pagination"
	"office-asset-web/internal/querystate"
	"office-asset-web/internal/view"
)

// pagerWindow is how many page links are shown on each side of the
// current page.
const pagerWindow = 2

// maxTabIDLength bounds the tab id a browser may send.
const maxTabIDLength = 64

type column struct {
	label string
	// field is the sort field; empty for columns that do not sort.
	field string
}

// listFilter is a multi-select dimension of a list, seen as strings.
type listFilter struct {
	key         string
	placeholder string
	get         func(url.Values) []string
	set         func(url.Values, []string) url.Values
}

func enumFilter[T ~string](p querystate.Param[[]T], placeholder string) listFilter {
	return listFilter{
		key:         p.Key(),
		placeholder: placeholder,
		get:         func(v url.Values) []string { return multiselect.Strings(p.Get(v)) },
		set: func(v url.Values, sel []string) url.Values {
			return p.Set(v, multiselect.Values[T](sel))
		},
	}
}

func stringsFilter(p querystate.Param[[]string], placeholder string) listFilter {
	return listFilter{
		key:         p.Key(),
		placeholder: placeholder,
		get:         p.Get,
		set:         p.Set,
	}
}

type dateFilter struct {
	param querystate.Param[string]
	title string
}

// listPage describes one paginated table: its URL, sort columns and
// filters.
type listPage struct {
	name     string
	path     string
	template string
	empty    string
	columns  []column
	paging   *pagination.Pagination
	filters  []listFilter
	dates    []dateFilter
}

func newListPage(name, path, template, empty, defaultSort string, columns []column, filters []listFilter, dates ...dateFilter) *listPage {
	var fields []string
	for _, c := range columns {
		if c.field != "" {
			fields = append(fields, c.field)
		}
	}
	return &listPage{
		name:     name,
		path:     path,
		template: template,
		empty:    empty,
		columns:  columns,
		paging:   pagination.New(fields, defaultSort),
		filters:  filters,
		dates:    dates,
	}
}

// canonical decodes every dimension and encodes it again, so equivalent
// queries map to the same values and unknown parameters are dropped.
func (l *listPage) canonical(values url.Values) url.Values {
	out := l.paging.Encode(url.Values{}, l.paging.Metadata(values))
	for _, f := range l.filters {
		out = f.set(out, f.get(values))
	}
	for _, d := range l.dates {
		if v := d.param.Get(values); v != "" {
			out = d.param.Set(out, v)
		}
	}
	return out
}

// params turns the list state into the API query.
func (l *listPage) params(values url.Values, take int) apiclient.ListParams {
	m := l.paging.Metadata(values)
	p := apiclient.ListParams{
		Page:      m.Page,
		Take:      take,
		Search:    m.Search,
		SortField: m.SortField,
		SortOrder: m.SortOrder,
	}
	for _, f := range l.filters {
		p = p.WithFilter(f.key, f.get(values)...)
	}
	for _, d := range l.dates {
		if v := d.param.Get(values); v != "" {
			p = p.WithFilter(d.param.Key(), v)
		}
	}
	return p
}

func (l *listPage) href(values url.Values) string {
	return l.path + "?" + values.Encode()
}

// buildList assembles the table view. items supplies the options of each
// filter by key; a filter without items renders no options.
func buildList[T any](l *listPage, values url.Values, rows []T, pg model.Pagination, errMsg string, items map[string][]multiselect.Item) view.List[T] {
	m := l.paging.Metadata(values)

	out := view.List[T]{
		Path:    l.path,
		Self:    l.href(values),
		Search:  m.Search,
		Hidden:  l.paging.Search(values, ""),
		Rows:    rows,
		Empty:   l.empty,
		Err:     errMsg,
		Colspan: len(l.columns) + 1,
		Target:  targetList,
	}
	out.Hidden.Del(pagination.SearchKey)

	for _, c := range l.columns {
		col := view.Column{Label: c.label}
		if c.field != "" {
			col.Sortable = true
			col.Href = l.href(l.paging.SortColumn(values, c.field))
			col.Sorted = m.SortField == c.field
			col.Order = m.SortOrder
		}
		out.Columns = append(out.Columns, col)
	}

	for _, f := range l.filters {
		sel := multiselect.New(items[f.key], f.get(values))
		filter := view.Filter{Key: f.key, Title: f.placeholder, Summary: sel.Summary(f.placeholder)}
		for _, opt := range sel.Options() {
			toggled := opt.Toggled
			next := l.paging.FilterChange(values, func(v url.Values) url.Values { return f.set(v, toggled) })
			filter.Options = append(filter.Options, view.FilterOption{
				Label:    opt.Label,
				Value:    opt.Value,
				Selected: opt.Selected,
				Href:     l.href(next),
			})
		}
		out.Filters = append(out.Filters, filter)
	}

	for _, d := range l.dates {
		cleared := l.paging.FilterChange(values, d.param.Del)
		out.Dates = append(out.Dates, view.DateFilter{
			Key:    d.param.Key(),
			Title:  d.title,
			Value:  d.param.Get(values),
			Hidden: cleared,
			Clear:  l.href(cleared),
		})
	}

	out.Pager = buildPager(l, values, m.Page, pg.TotalPages)
	return out
}

func buildPager(l *listPage, values url.Values, page, total int) view.Pager {
	p := view.Pager{Page: page, TotalPages: total}
	if total < 1 {
		return p
	}
	if page > 1 {
		p.Prev = l.href(l.paging.PageChange(values, page-1))
	}
	if page < total {
		p.Next = l.href(l.paging.PageChange(values, page+1))
	}
	from, to := max(1, page-pagerWindow), min(total, page+pagerWindow)
	for n := from; n <= to; n++ {
		p.Links = append(p.Links, view.PageLink{
			Number:  n,
			Href:    l.href(l.paging.PageChange(values, n)),
			Current: n == page,
		})
	}
	return p
}

// listResult is the outcome of loading one list page.
type listResult[T any] struct {
	values url.Values
	page   *model.Page[T]
	errMsg string
}

// listOwner names the fetch owner of a list request. htmx requests of one
// tab share an owner so that a newer filter supersedes an older one. A
// full page load, or a request without a tab id, gets an owner of its own
// and is never superseded.
func (h *Handler) listOwner(r *http.Request, l *listPage) string {
	tab := r.Header.Get(hxTabID)
	if !h.response.IsHTMX(r) || tab == "" || len(tab) > maxTabIDLength {
		tab = uuid.NewString()
	}
	if sess := h.current(r); sess != nil {
		return sess.Owner(l.name, tab)
	}
	return l.name + "|" + tab
}

// loadList fetches the list state of r through the fetch group. It
// reports false when the response has already been written: a superseded
// htmx request (204), a redirect to the clamped page or to the login, or a
// client that went away.
func loadList[T any](h *Handler, w http.ResponseWriter, r *http.Request, l *listPage, call func(context.Context, apiclient.ListParams) (*model.Page[T], error)) (listResult[T], bool) {
	values := l.canonical(r.URL.Query())
	owner := h.listOwner(r, l)

	// At most one refetch, after clamping the page of an htmx request.
	for attempt := 0; ; attempt++ {
		params := l.params(values, h.opts.PageSize)
		page, err := fetch.Do(r.Context(), h.fetch, owner, values.Encode(), func(ctx context.Context) (*model.Page[T], error) {
			return call(ctx, params)
		})

		switch {
		case errors.Is(err, fetch.ErrSuperseded):
			h.observer.Superseded(l.name)
			logging.FromContext(r.Context()).WithField("list", l.name).Debug("list response superseded")
			// Only htmx requests share an owner; htmx swaps nothing on 204.
			w.WriteHeader(http.StatusNoContent)
			return listResult[T]{}, false
		case errors.Is(err, context.Canceled) && r.Context().Err() != nil:
			return listResult[T]{}, false
		case err != nil && h.errors.Unauthorized(err):
			h.expire(w, r)
			return listResult[T]{}, false
		case err != nil:
			h.errors.Log(r, err, "list "+l.name)
			return listResult[T]{values: values, errMsg: h.errors.Message(err)}, true
		}

		clamped, changed := l.paging.Clamp(values, page.Pagination.TotalPages)
		if !changed {
			return listResult[T]{values: values, page: page}, true
		}
		if !h.response.IsHTMX(r) || attempt > 0 {
			http.Redirect(w, r, l.href(clamped), http.StatusSeeOther)
			return listResult[T]{}, false
		}
		w.Header().Set(hxReplaceURL, l.href(clamped))
		values = clamped
	}
}

func (res listResult[T]) rows() ([]T, model.Pagination) {
	if res.page == nil {
		return nil, model.Pagination{}
	}
	return res.page.Data, res.page.Pagination
}

func categoryItems(categories []model.Category) []multiselect.Item {
	items := make([]multiselect.Item, 0, len(categories))
	for _, c := range categories {
		items = append(items, multiselect.Item{Label: c.Name, Value: strconv.Itoa(c.ID)})
	}
	return items
}
