package handler

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"office-asset-web/internal/dialog"
	"office-asset-web/internal/model"
	"office-asset-web/internal/view"
	apperrors "office-asset-web/pkg/errors"
)

var homeList = newListPage("home", "/", "home", "No assignments to display.", "assetCode",
	[]column{
		{label: "Asset Code", field: "assetCode"},
		{label: "Asset Name", field: "assetName"},
		{label: "Category", field: "category"},
		{label: "Assigned Date", field: "assignedDate"},
		{label: "State", field: "state"},
	},
	nil,
)

// Home lists the signed-in user's own assignments.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	res, ok := loadList(h, w, r, homeList, h.assignments.MyAssignments)
	if !ok {
		return
	}

	data, pg := res.rows()
	self := homeList.href(res.values)
	rows := make([]view.Row[model.Assignment], 0, len(data))
	for _, a := range data {
		base := fmt.Sprintf("/me/assignments/%d", a.ID)
		waiting := a.State == model.AssignmentWaitingForAcceptance
		rows = append(rows, view.Row[model.Assignment]{
			Item: a,
			Actions: []view.Action{
				{Label: "Accept", Icon: "✓", Href: withBack(base+"/accept", self), Disabled: !waiting},
				{Label: "Decline", Icon: "✕", Href: withBack(base+"/decline", self), Disabled: !waiting, Danger: true},
				{Label: "Request for returning", Icon: "↺", Href: withBack(base+"/return", self), Disabled: !a.State.Returnable()},
			},
		})
	}

	l := buildList(homeList, res.values, rows, pg, res.errMsg, nil)
	h.render(w, r, http.StatusOK, "home", h.page(r, "Home", l))
}

type myAction struct {
	verb    string
	message string
	label   string
	refusal string
	run     func(h *Handler, r *http.Request, id int) error
}

var myActions = map[string]myAction{
	"accept": {
		verb:    "accept",
		message: "Do you want to accept this assignment?",
		label:   "Accept",
		refusal: "Cannot Accept Assignment",
		run: func(h *Handler, r *http.Request, id int) error {
			return h.assignments.AcceptAssignment(r.Context(), id)
		},
	},
	"decline": {
		verb:    "decline",
		message: "Do you want to decline this assignment?",
		label:   "Decline",
		refusal: "Cannot Decline Assignment",
		run: func(h *Handler, r *http.Request, id int) error {
			return h.assignments.DeclineAssignment(r.Context(), id)
		},
	},
	"return": {
		verb:    "return",
		message: "Do you want to create a returning request for this asset?",
		label:   "Yes",
		refusal: "Cannot Request Returning",
		run: func(h *Handler, r *http.Request, id int) error {
			return h.returning.CreateReturningRequest(r.Context(), id)
		},
	},
}

func (h *Handler) myAction(r *http.Request) (myAction, int, error) {
	vars := mux.Vars(r)
	a, ok := myActions[vars["action"]]
	if !ok {
		return myAction{}, 0, apperrors.NotFoundError("action")
	}
	id, ok := h.response.ParseID(vars["id"])
	if !ok {
		return a, 0, apperrors.BadRequestError("invalid assignment id")
	}
	return a, id, nil
}

// ConfirmMyAssignment asks before accepting, declining or returning one of
// the user's own assignments.
func (h *Handler) ConfirmMyAssignment(w http.ResponseWriter, r *http.Request) {
	back := h.response.Back(r, "/")
	a, id, err := h.myAction(r)
	if err != nil {
		h.fail(w, r, err, "confirm assignment action")
		return
	}
	action := withBack(fmt.Sprintf("/me/assignments/%d/%s", id, a.verb), back)
	h.renderDialog(w, r, "confirm", dialog.NewConfirm("Are you sure?", a.message, a.label, action, back), nil)
}

func (h *Handler) RespondMyAssignment(w http.ResponseWriter, r *http.Request) {
	back := h.response.Back(r, "/")
	a, id, err := h.myAction(r)
	if err == nil {
		err = a.run(h, r, id)
	}
	if err != nil {
		h.refuse(w, r, a.refusal, err, back, a.verb+" assignment")
		return
	}
	h.response.Redirect(w, r, back)
}
