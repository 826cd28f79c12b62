package handler

import (
	"context"
	"net/http"
	"net/url"
	"regexp"

	"office-asset-web/internal/apiclient"
	"office-asset-web/internal/form"
	"office-asset-web/internal/model"
	"office-asset-web/internal/pagination"
	"office-asset-web/internal/view"
)

// returnKey names the form a picker hands its choice back to.
const returnKey = "return"

var (
	formPath = regexp.MustCompile(`^/assignments/(new|\d+/edit)$`)

	userPicker = newListPage("pick-user", "/assignments/pick/user", "picker_users", "No users to display.", "staffCode",
		[]column{
			{label: "Staff Code", field: "staffCode"},
			{label: "Full Name", field: "name"},
			{label: "Type", field: "type"},
		},
		nil,
	)

	assetPicker = newListPage("pick-asset", "/assignments/pick/asset", "picker_assets", "No assets to display.", "assetCode",
		[]column{
			{label: "Asset Code", field: "assetCode"},
			{label: "Asset Name", field: "name"},
			{label: "Category", field: "category"},
		},
		nil,
	)
)

// pickerState separates the picker's own list state from the form draft
// it carries.
type pickerState struct {
	draft   form.AssignmentForm
	carried url.Values
	ret     string
	back    string
}

func readPicker(r *http.Request) pickerState {
	q := r.URL.Query()
	ret := q.Get(returnKey)
	if !formPath.MatchString(ret) {
		ret = "/assignments/new"
	}

	carried := url.Values{}
	for k, v := range q {
		switch k {
		case pagination.PageKey, pagination.SearchKey, pagination.SortFieldKey, pagination.SortOrderKey:
			continue
		}
		carried[k] = v
	}

	var draft form.AssignmentForm
	_ = form.DecodeValues(carried, &draft)

	back := ret
	if d := draft.Draft(); len(d) > 0 {
		back += "?" + d.Encode()
	}
	return pickerState{draft: draft, carried: carried, ret: ret, back: back}
}

// choose returns the form URL with the draft and the picked entity.
func (s pickerState) choose(f form.AssignmentForm) string {
	return s.ret + "?" + f.Draft().Encode()
}

// PickUser lists users to assign to.
func (h *Handler) PickUser(w http.ResponseWriter, r *http.Request) {
	state := readPicker(r)
	res, ok := loadList(h, w, r, userPicker, h.users.ListUsers)
	if !ok {
		return
	}

	data, pg := res.rows()
	rows := make([]view.Row[model.User], 0, len(data))
	for _, u := range data {
		rows = append(rows, view.Row[model.User]{Item: u, Detail: state.choose(state.draft.WithUser(u.Summary()))})
	}

	l := buildList(userPicker, res.values, rows, pg, res.errMsg, nil)
	carryDraft(&l, state.carried)
	h.render(w, r, http.StatusOK, "picker_users", h.page(r, "Select User", view.Picker[model.User]{
		List:     l,
		Selected: state.draft.User.StaffCode,
		Back:     state.back,
	}))
}

// PickAsset lists the available assets.
func (h *Handler) PickAsset(w http.ResponseWriter, r *http.Request) {
	state := readPicker(r)
	res, ok := loadList(h, w, r, assetPicker, func(ctx context.Context, p apiclient.ListParams) (*model.Page[model.Asset], error) {
		return h.assets.ListAssets(ctx, p.WithFilter("states", string(model.AssetAvailable)))
	})
	if !ok {
		return
	}

	data, pg := res.rows()
	rows := make([]view.Row[model.Asset], 0, len(data))
	for _, a := range data {
		rows = append(rows, view.Row[model.Asset]{Item: a, Detail: state.choose(state.draft.WithAsset(a.Summary()))})
	}

	l := buildList(assetPicker, res.values, rows, pg, res.errMsg, nil)
	carryDraft(&l, state.carried)
	h.render(w, r, http.StatusOK, "picker_assets", h.page(r, "Select Asset", view.Picker[model.Asset]{
		List:     l,
		Selected: state.draft.Asset.AssetCode,
		Back:     state.back,
	}))
}

// carryDraft appends the draft to the links and hidden inputs of a picker
// list, whose own state only knows pagination.
func carryDraft[T any](l *view.List[T], carried url.Values) {
	extend := func(link string) string {
		if link == "" || len(carried) == 0 {
			return link
		}
		u, err := url.Parse(link)
		if err != nil {
			return link
		}
		q := u.Query()
		for k, v := range carried {
			q[k] = v
		}
		u.RawQuery = q.Encode()
		return u.String()
	}

	l.Self = extend(l.Self)
	for i := range l.Columns {
		l.Columns[i].Href = extend(l.Columns[i].Href)
	}
	l.Pager.Prev = extend(l.Pager.Prev)
	l.Pager.Next = extend(l.Pager.Next)
	for i := range l.Pager.Links {
		l.Pager.Links[i].Href = extend(l.Pager.Links[i].Href)
	}
	for k, v := range carried {
		l.Hidden[k] = v
	}
}
