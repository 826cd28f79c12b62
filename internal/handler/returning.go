package handler

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"office-asset-web/internal/dialog"
	"office-asset-web/internal/logging"
	"office-asset-web/internal/model"
	"office-asset-web/internal/multiselect"
	"office-asset-web/internal/querystate"
	"office-asset-web/internal/view"
	apperrors "office-asset-web/pkg/errors"
)

var (
	returningStatesParam = querystate.EnumList("states", []model.ReturningState{}, model.ReturningStates)
	returnedDateParam    = querystate.String("returnedDate", "")

	returningList = newListPage("returning-requests", "/returning-requests", "returning", "No returning requests to display.", "assetCode",
		[]column{
			{label: "Asset Code", field: "assetCode"},
			{label: "Asset Name", field: "assetName"},
			{label: "Requested by", field: "requestedBy"},
			{label: "Assigned Date", field: "assignedDate"},
			{label: "Accepted by", field: "acceptedBy"},
			{label: "Returned Date", field: "returnedDate"},
			{label: "State", field: "state"},
		},
		[]listFilter{enumFilter(returningStatesParam, "State")},
		dateFilter{param: returnedDateParam, title: "Returned Date"},
	)
)

// ListReturningRequests renders the returning request table.
func (h *Handler) ListReturningRequests(w http.ResponseWriter, r *http.Request) {
	res, ok := loadList(h, w, r, returningList, h.returning.ListReturningRequests)
	if !ok {
		return
	}

	data, pg := res.rows()
	self := returningList.href(res.values)
	rows := make([]view.Row[model.ReturningRequest], 0, len(data))
	for _, rr := range data {
		base := fmt.Sprintf("/returning-requests/%d", rr.ID)
		open := rr.State == model.ReturningWaiting
		rows = append(rows, view.Row[model.ReturningRequest]{
			Item: rr,
			Actions: []view.Action{
				{Label: "Complete", Icon: "✓", Href: withBack(base+"/complete", self), Disabled: !open},
				{Label: "Cancel", Icon: "✕", Href: withBack(base+"/cancel", self), Disabled: !open, Danger: true},
			},
		})
	}

	l := buildList(returningList, res.values, rows, pg, res.errMsg, map[string][]multiselect.Item{
		returningStatesParam.Key(): multiselect.FromEnum(model.ReturningStates),
	})
	h.render(w, r, http.StatusOK, "returning", h.page(r, "Request for Returning", l))
}

type returningAction struct {
	verb    string
	title   string
	message string
	label   string
}

var (
	completeReturning = returningAction{
		verb:    "complete",
		title:   "Are you sure?",
		message: "Do you want to mark this returning request as 'Completed'?",
		label:   "Yes",
	}
	cancelReturning = returningAction{
		verb:    "cancel",
		title:   "Are you sure?",
		message: "Do you want to cancel this returning request?",
		label:   "Yes",
	}
)

func (h *Handler) confirmReturning(w http.ResponseWriter, r *http.Request, a returningAction) {
	back := h.response.Back(r, "/returning-requests")
	id, ok := h.response.ParseID(mux.Vars(r)["id"])
	if !ok {
		h.fail(w, r, apperrors.BadRequestError("invalid returning request id"), a.verb+" returning request")
		return
	}
	action := withBack(fmt.Sprintf("/returning-requests/%d/%s", id, a.verb), back)
	h.renderDialog(w, r, "confirm", dialog.NewConfirm(a.title, a.message, a.label, action, back), nil)
}

func (h *Handler) ConfirmCompleteReturning(w http.ResponseWriter, r *http.Request) {
	h.confirmReturning(w, r, completeReturning)
}

func (h *Handler) ConfirmCancelReturning(w http.ResponseWriter, r *http.Request) {
	h.confirmReturning(w, r, cancelReturning)
}

// CompleteReturning marks the asset as returned.
func (h *Handler) CompleteReturning(w http.ResponseWriter, r *http.Request) {
	back := h.response.Back(r, "/returning-requests")
	id, ok := h.response.ParseID(mux.Vars(r)["id"])
	var err error
	if !ok {
		err = apperrors.BadRequestError("invalid returning request id")
	} else {
		err = h.returning.CompleteReturningRequest(r.Context(), id)
	}
	if err != nil {
		h.refuse(w, r, "Cannot Complete Request", err, back, "complete returning request")
		return
	}
	logging.FromContext(r.Context()).WithField("returning_request", id).Info("returning request completed")
	h.response.Redirect(w, r, back)
}

// CancelReturning withdraws a returning request.
func (h *Handler) CancelReturning(w http.ResponseWriter, r *http.Request) {
	back := h.response.Back(r, "/returning-requests")
	id, ok := h.response.ParseID(mux.Vars(r)["id"])
	var err error
	if !ok {
		err = apperrors.BadRequestError("invalid returning request id")
	} else {
		err = h.returning.CancelReturningRequest(r.Context(), id)
	}
	if err != nil {
		h.refuse(w, r, "Cannot Cancel Request", err, back, "cancel returning request")
		return
	}
	h.response.Redirect(w, r, back)
}
