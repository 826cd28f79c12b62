package handler

import (
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
	"office-asset-web/internal/view"
	apperrors "office-asset-web/pkg/errors"
)

var (
	assignmentStatesParam = querystate.EnumList("states", []model.AssignmentState{}, model.AssignmentStates)
	// touchedAssignmentParam names the assignment just created or edited.
	// It only marks a row and is not part of the list state.
	touchedAssignmentParam = querystate.Int("assignmentId", 0, 0)
	assignedDateParam     = querystate.String("assignedDate", "")

	assignmentList = newListPage("assignments", "/assignments", "assignments", "No assignments to display.", "assetCode",
		[]column{
			{label: "Asset Code", field: "assetCode"},
			{label: "Asset Name", field: "assetName"},
			{label: "Assigned to", field: "assignedTo"},
			{label: "Assigned by", field: "assignedBy"},
			{label: "Assigned Date", field: "assignedDate"},
			{label: "State", field: "state"},
		},
		[]listFilter{enumFilter(assignmentStatesParam, "State")},
		dateFilter{param: assignedDateParam, title: "Assigned Date"},
	)
)

// ListAssignments renders the assignment table.
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	res, ok := loadList(h, w, r, assignmentList, h.assignments.ListAssignments)
	if !ok {
		return
	}

	data, pg := res.rows()
	self := assignmentList.href(res.values)
	touched := touchedAssignmentParam.Get(r.URL.Query())
	rows := make([]view.Row[model.Assignment], 0, len(data))
	for _, a := range data {
		row := assignmentRow(a, self)
		row.Current = touched > 0 && a.ID == touched
		rows = append(rows, row)
	}

	l := buildList(assignmentList, res.values, rows, pg, res.errMsg, map[string][]multiselect.Item{
		assignmentStatesParam.Key(): multiselect.FromEnum(model.AssignmentStates),
	})
	l.CreateURL = "/assignments/new"
	p := h.page(r, "Manage Assignment", l)
	if touched > 0 {
		p.Flash = "Assignment saved."
	}
	h.render(w, r, http.StatusOK, "assignments", p)
}

func assignmentRow(a model.Assignment, back string) view.Row[model.Assignment] {
	base := fmt.Sprintf("/assignments/%d", a.ID)
	return view.Row[model.Assignment]{
		Item:   a,
		Detail: withBack(base, back),
		Actions: []view.Action{
			{Label: "Edit", Icon: "✎", Href: withBack(base+"/edit", back), Disabled: !a.State.Editable()},
			{Label: "Delete", Icon: "✕", Href: withBack(base+"/delete", back), Disabled: !a.State.Deletable(), Danger: true},
			{Label: "Request for returning", Icon: "↺", Href: withBack(base+"/return", back), Disabled: !a.State.Returnable()},
		},
	}
}

func (h *Handler) assignmentFromRoute(r *http.Request) (*model.Assignment, error) {
	id, ok := h.response.ParseID(mux.Vars(r)["id"])
	if !ok {
		return nil, apperrors.BadRequestError("invalid assignment id")
	}
	return h.assignments.GetAssignment(r.Context(), id)
}

// ShowAssignment renders the assignment detail dialog.
func (h *Handler) ShowAssignment(w http.ResponseWriter, r *http.Request) {
	a, err := h.assignmentFromRoute(r)
	if err != nil {
		h.fail(w, r, err, "show assignment")
		return
	}
	h.renderDialog(w, r, "assignment_detail", dialog.NewDetail("Detailed Assignment Information", h.response.Back(r, "/assignments")), a)
}

// pickerLinks points the form's "select" buttons at the pickers, carrying
// the draft so the form comes back as it was left.
func pickerLinks(f form.AssignmentForm, formPath string) map[string]string {
	draft := f.Draft()
	draft.Set(returnKey, formPath)
	return map[string]string{
		"user":  "/assignments/pick/user?" + draft.Encode(),
		"asset": "/assignments/pick/asset?" + draft.Encode(),
	}
}

func (h *Handler) renderAssignmentForm(w http.ResponseWriter, r *http.Request, status int, title, path string, f form.AssignmentForm, errs map[string]string, msg string) {
	h.view.Page(w, status, "assignment_form", h.page(r, title, view.Form[form.AssignmentForm]{
		Title:    title,
		Action:   path,
		Cancel:   "/assignments",
		Values:   f,
		Errors:   errs,
		Message:  msg,
		Complete: f.Complete(),
		Editing:  f.Editing(),
		Links:    pickerLinks(f, path),
	}))
}

// NewAssignment renders the create form, restoring a draft handed back by
// a picker.
func (h *Handler) NewAssignment(w http.ResponseWriter, r *http.Request) {
	f := form.NewAssignmentForm()
	if err := form.DecodeValues(r.URL.Query(), &f); err != nil {
		logging.FromContext(r.Context()).WithError(err).Debug("ignoring malformed assignment draft")
		f = form.NewAssignmentForm()
	}
	f.State, f.UpdatedAt = "", ""
	h.renderAssignmentForm(w, r, http.StatusOK, "Create New Assignment", "/assignments/new", f, nil, "")
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	const title, path = "Create New Assignment", "/assignments/new"

	var f form.AssignmentForm
	if err := form.Decode(r, &f); err != nil {
		h.renderAssignmentForm(w, r, http.StatusBadRequest, title, path, f, nil, "The form could not be read. Please try again.")
		return
	}
	f.State, f.UpdatedAt = "", ""
	if errs, ok := f.Ok(); !ok {
		h.renderAssignmentForm(w, r, http.StatusUnprocessableEntity, title, path, f, errs, "")
		return
	}

	created, err := h.assignments.CreateAssignment(r.Context(), f.Request())
	if err != nil {
		if h.errors.Unauthorized(err) {
			h.expire(w, r)
			return
		}
		h.errors.Log(r, err, "create assignment")
		errs, msg := h.errors.FormOutcome(err)
		h.renderAssignmentForm(w, r, h.errors.Status(err), title, path, f, errs, msg)
		return
	}
	h.response.Redirect(w, r, touchedAssignmentURL(created.ID))
}

// editableAssignment loads the assignment and refuses it unless it still
// waits for acceptance.
func (h *Handler) editableAssignment(r *http.Request) (*model.Assignment, error) {
	a, err := h.assignmentFromRoute(r)
	if err != nil {
		return nil, err
	}
	if !a.State.Editable() {
		return a, apperrors.StateForbidsError("edit assignment", a.State.Label())
	}
	return a, nil
}

func (h *Handler) EditAssignment(w http.ResponseWriter, r *http.Request) {
	a, err := h.editableAssignment(r)
	if err != nil {
		h.fail(w, r, err, "edit assignment")
		return
	}

	stored := form.AssignmentFormFrom(*a)
	f := stored
	if q := r.URL.Query(); len(q) > 0 {
		if err := form.DecodeValues(q, &f); err != nil {
			f = stored
		}
	}
	f.State = stored.State

	// A draft keeps the version it was opened with so that saving over
	// someone else's edit still conflicts.
	var msg string
	if f.UpdatedAt == "" {
		f.UpdatedAt = stored.UpdatedAt
	} else if f.UpdatedAt != stored.UpdatedAt {
		msg = msgConflict
	}
	h.renderAssignmentForm(w, r, http.StatusOK, "Edit Assignment", fmt.Sprintf("/assignments/%d/edit", a.ID), f, nil, msg)
}

func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	const title = "Edit Assignment"

	a, err := h.editableAssignment(r)
	if err != nil {
		h.fail(w, r, err, "update assignment")
		return
	}
	path := fmt.Sprintf("/assignments/%d/edit", a.ID)

	var f form.AssignmentForm
	if err := form.Decode(r, &f); err != nil {
		h.renderAssignmentForm(w, r, http.StatusBadRequest, title, path, form.AssignmentFormFrom(*a), nil, "The form could not be read. Please try again.")
		return
	}
	f.State = a.State
	if errs, ok := f.Ok(); !ok {
		h.renderAssignmentForm(w, r, http.StatusUnprocessableEntity, title, path, f, errs, "")
		return
	}

	if _, err := h.assignments.UpdateAssignment(r.Context(), a.ID, f.Request()); err != nil {
		if h.errors.Unauthorized(err) {
			h.expire(w, r)
			return
		}
		h.errors.Log(r, err, "update assignment")
		errs, msg := h.errors.FormOutcome(err)
		h.renderAssignmentForm(w, r, h.errors.Status(err), title, path, f, errs, msg)
		return
	}
	h.response.Redirect(w, r, touchedAssignmentURL(a.ID))
}

func touchedAssignmentURL(id int) string {
	return assignmentList.href(touchedAssignmentParam.Set(url.Values{}, id))
}

func (h *Handler) ConfirmDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	back := h.response.Back(r, "/assignments")
	a, err := h.assignmentFromRoute(r)
	if err != nil {
		h.fail(w, r, err, "confirm delete assignment")
		return
	}
	if !a.State.Deletable() {
		h.renderDialog(w, r, "confirm", dialog.Refused("Cannot Delete Assignment",
			"Only assignments waiting for acceptance or declined can be deleted.", back), nil)
		return
	}
	action := withBack(fmt.Sprintf("/assignments/%d/delete", a.ID), back)
	h.renderDialog(w, r, "confirm", dialog.NewConfirm("Are you sure?", "Do you want to delete this assignment?", "Delete", action, back), nil)
}

// DeleteAssignment deletes an assignment whose state allows it.
func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	back := h.response.Back(r, "/assignments")
	a, err := h.assignmentFromRoute(r)
	if err == nil && !a.State.Deletable() {
		err = apperrors.StateForbidsError("delete assignment", a.State.Label())
	}
	if err == nil {
		err = h.assignments.DeleteAssignment(r.Context(), a.ID)
	}
	if err != nil {
		h.refuse(w, r, "Cannot Delete Assignment", err, back, "delete assignment")
		return
	}
	h.response.Redirect(w, r, back)
}

func (h *Handler) ConfirmReturnAssignment(w http.ResponseWriter, r *http.Request) {
	back := h.response.Back(r, "/assignments")
	a, err := h.assignmentFromRoute(r)
	if err != nil {
		h.fail(w, r, err, "confirm return assignment")
		return
	}
	if !a.State.Returnable() {
		h.renderDialog(w, r, "confirm", dialog.Refused("Cannot Request Returning",
			"Only accepted assignments can be returned.", back), nil)
		return
	}
	action := withBack(fmt.Sprintf("/assignments/%d/return", a.ID), back)
	h.renderDialog(w, r, "confirm", dialog.NewConfirm("Are you sure?", "Do you want to create a returning request for this asset?", "Yes", action, back), nil)
}

// ReturnAssignment opens a returning request for an accepted assignment.
func (h *Handler) ReturnAssignment(w http.ResponseWriter, r *http.Request) {
	back := h.response.Back(r, "/assignments")
	a, err := h.assignmentFromRoute(r)
	if err == nil && !a.State.Returnable() {
		err = apperrors.StateForbidsError("request returning", a.State.Label())
	}
	if err == nil {
		err = h.returning.CreateReturningRequest(r.Context(), a.ID)
	}
	if err != nil {
		h.refuse(w, r, "Cannot Request Returning", err, back, "request returning")
		return
	}
	h.response.Redirect(w, r, back)
}
