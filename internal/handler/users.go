package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"office-asset-web/internal/dialog"
	"office-asset-web/internal/form"
	"office-asset-web/internal/logging"
	"office-asset-web/internal/model"
	"office-asset-web/internal/multiselect"
	"office-asset-web/internal/querystate"
	"office-asset-web/internal/secret"
	"office-asset-web/internal/view"
	apperrors "office-asset-web/pkg/errors"
)

const createdUserWarning = "Warning: You will not be able to see this information again after closing this window."

var (
	userTypesParam = querystate.EnumList("types", []model.AccountType{}, model.AccountTypes)

	userList = newListPage("users", "/users", "users", "No users to display.", "name",
		[]column{
			{label: "Staff Code", field: "staffCode"},
			{label: "Full Name", field: "name"},
			{label: "Username"},
			{label: "Joined Date", field: "joinedAt"},
			{label: "Type", field: "type"},
		},
		[]listFilter{enumFilter(userTypesParam, "Type")},
	)
)

// ListUsers renders the staff table.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	res, ok := loadList(h, w, r, userList, h.users.ListUsers)
	if !ok {
		return
	}

	data, pg := res.rows()
	self := userList.href(res.values)
	rows := make([]view.Row[model.User], 0, len(data))
	for _, u := range data {
		base := fmt.Sprintf("/users/%d", u.ID)
		rows = append(rows, view.Row[model.User]{
			Item:   u,
			Detail: withBack(base, self),
			Actions: []view.Action{
				{Label: "Edit", Icon: "✎", Href: withBack(base+"/edit", self)},
				{Label: "Disable", Icon: "⊘", Href: withBack(base+"/disable", self), Disabled: !u.CanDisable, Danger: true},
			},
		})
	}

	l := buildList(userList, res.values, rows, pg, res.errMsg, map[string][]multiselect.Item{
		userTypesParam.Key(): multiselect.FromEnum(model.AccountTypes),
	})
	l.CreateURL = "/users/new"
	p := h.page(r, "Manage User", l)
	if r.URL.Query().Get("new") == "true" {
		p.Flash = "User created."
	}
	h.render(w, r, http.StatusOK, "users", p)
}

// ShowUser renders the user detail dialog.
func (h *Handler) ShowUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.response.ParseID(mux.Vars(r)["id"])
	if !ok {
		h.fail(w, r, apperrors.BadRequestError("invalid user id"), "show user")
		return
	}
	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "show user")
		return
	}
	h.renderDialog(w, r, "user_detail", dialog.NewDetail("Detailed User Information", h.response.Back(r, "/users")), user)
}

func userFormOptions() map[string][]view.Option {
	locations := make([]view.Option, 0, len(model.Locations))
	for _, l := range model.Locations {
		locations = append(locations, view.Option{Label: string(l), Value: string(l)})
	}
	return map[string][]view.Option{
		"genders":   enumOptions(model.Genders),
		"types":     enumOptions(model.AccountTypes),
		"locations": locations,
	}
}

func (h *Handler) renderCreateUser(w http.ResponseWriter, r *http.Request, status int, f form.CreateUserForm, errs map[string]string, msg string) {
	h.view.Page(w, status, "user_form", h.page(r, "Create New User", view.Form[form.CreateUserForm]{
		Title:    "Create New User",
		Action:   "/users/new",
		Cancel:   "/users",
		Values:   f,
		Errors:   errs,
		Message:  msg,
		Complete: f.Complete(),
		Options:  userFormOptions(),
	}))
}

func (h *Handler) NewUser(w http.ResponseWriter, r *http.Request) {
	h.renderCreateUser(w, r, http.StatusOK, form.NewCreateUserForm(), nil, "")
}

// CreateUser submits the create form. The generated credentials are moved
// into the vault and shown once by CreatedUser.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var f form.CreateUserForm
	if err := form.Decode(r, &f); err != nil {
		h.renderCreateUser(w, r, http.StatusBadRequest, f, nil, "The form could not be read. Please try again.")
		return
	}
	if errs, ok := f.Ok(); !ok {
		h.renderCreateUser(w, r, http.StatusUnprocessableEntity, f, errs, "")
		return
	}

	created, err := h.users.CreateUser(r.Context(), f.Request())
	if err != nil {
		if h.errors.Unauthorized(err) {
			h.expire(w, r)
			return
		}
		h.errors.Log(r, err, "create user")
		errs, msg := h.errors.FormOutcome(err)
		h.renderCreateUser(w, r, h.errors.Status(err), f, errs, msg)
		return
	}

	payload, err := json.Marshal(created)
	if err != nil {
		h.fail(w, r, apperrors.InternalError("failed to encode created user", err), "create user")
		return
	}
	token, err := h.vault.Put(r.Context(), payload)
	if err != nil {
		// the user exists; only the one-time view is lost
		h.errors.Log(r, err, "park created user")
		h.response.Redirect(w, r, createdUserNext(created.StaffCode))
		return
	}

	logging.FromContext(r.Context()).WithField("staff_code", created.StaffCode).Info("user created")
	h.response.Redirect(w, r, "/users/created/"+token)
}

func createdUserNext(staffCode string) string {
	return "/users?" + url.Values{"new": {"true"}, "search": {staffCode}}.Encode()
}

// CreatedUser shows the generated credentials once. The token is consumed
// by the read, so a reload or a revisit lands on the list.
func (h *Handler) CreatedUser(w http.ResponseWriter, r *http.Request) {
	h.response.NoStore(w)

	payload, err := h.vault.Take(r.Context(), mux.Vars(r)["token"])
	if errors.Is(err, secret.ErrNotFound) {
		h.response.Redirect(w, r, "/users")
		return
	}
	if err != nil {
		h.fail(w, r, err, "show created user")
		return
	}

	var created model.CreatedUser
	if err := json.Unmarshal(payload, &created); err != nil {
		h.fail(w, r, apperrors.InternalError("failed to decode created user", err), "show created user")
		return
	}
	h.renderDialog(w, r, "user_created", dialog.NewResult("User created", createdUserWarning, createdUserNext(created.StaffCode)), created)
}

func (h *Handler) userID(r *http.Request) (int, error) {
	id, ok := h.response.ParseID(mux.Vars(r)["id"])
	if !ok {
		return 0, apperrors.BadRequestError("invalid user id")
	}
	return id, nil
}

func (h *Handler) renderEditUser(w http.ResponseWriter, r *http.Request, status int, id int, f form.EditUserForm, errs map[string]string, msg string) {
	back := h.response.Back(r, "/users")
	h.view.Page(w, status, "user_form", h.page(r, "Edit User", view.Form[form.EditUserForm]{
		Title:    "Edit User",
		Action:   withBack(fmt.Sprintf("/users/%d/edit", id), back),
		Cancel:   back,
		Values:   f,
		Errors:   errs,
		Message:  msg,
		Complete: f.Complete(),
		Editing:  true,
		Options:  userFormOptions(),
	}))
}

func (h *Handler) EditUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err, "edit user")
		return
	}
	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "edit user")
		return
	}
	h.renderEditUser(w, r, http.StatusOK, id, form.EditUserFormFrom(*user), nil, "")
}

// UpdateUser submits the edit form. Names cannot change; they are shown
// from the stored user.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err, "update user")
		return
	}
	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "update user")
		return
	}

	var f form.EditUserForm
	if err := form.Decode(r, &f); err != nil {
		h.renderEditUser(w, r, http.StatusBadRequest, id, form.EditUserFormFrom(*user), nil, "The form could not be read. Please try again.")
		return
	}
	f.FirstName, f.LastName = user.FirstName, user.LastName
	if errs, ok := f.Ok(); !ok {
		h.renderEditUser(w, r, http.StatusUnprocessableEntity, id, f, errs, "")
		return
	}

	if _, err := h.users.UpdateUser(r.Context(), id, f.Request()); err != nil {
		if h.errors.Unauthorized(err) {
			h.expire(w, r)
			return
		}
		h.errors.Log(r, err, "update user")
		errs, msg := h.errors.FormOutcome(err)
		h.renderEditUser(w, r, h.errors.Status(err), id, f, errs, msg)
		return
	}
	h.response.Redirect(w, r, h.response.Back(r, "/users"))
}

// ConfirmDisableUser asks before disabling. Whether the user may be
// disabled is known from the list row; the API has the final word.
func (h *Handler) ConfirmDisableUser(w http.ResponseWriter, r *http.Request) {
	back := h.response.Back(r, "/users")
	id, err := h.userID(r)
	if err != nil {
		h.fail(w, r, err, "confirm disable user")
		return
	}
	action := withBack(fmt.Sprintf("/users/%d/disable", id), back)
	h.renderDialog(w, r, "confirm", dialog.NewConfirm("Are you sure?", "Do you want to disable this user?", "Disable", action, back), nil)
}

func (h *Handler) DisableUser(w http.ResponseWriter, r *http.Request) {
	back := h.response.Back(r, "/users")
	id, err := h.userID(r)
	if err == nil {
		err = h.users.DisableUser(r.Context(), id)
	}
	if err != nil {
		h.refuse(w, r, "Can not disable user", err, back, "disable user")
		return
	}
	logging.FromContext(r.Context()).WithField("user_id", id).Info("user disabled")
	h.response.Redirect(w, r, back)
}
