package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"

	"office-asset-web/internal/logging"
	"office-asset-web/internal/model"
	"office-asset-web/internal/report"
)

// exportPageSize is the page size used to walk the whole report.
const exportPageSize = 100

var reportList = newListPage("report", "/report", "report", "No categories to display.", "category",
	[]column{
		{label: "Category", field: "category"},
		{label: "Total", field: "total"},
		{label: "Assigned", field: "assigned"},
		{label: "Available", field: "available"},
		{label: "Not available", field: "notAvailable"},
		{label: "Waiting for recycling", field: "waitingForRecycling"},
		{label: "Recycled", field: "recycled"},
	},
	nil,
)

// Report renders the per-category asset counts.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	res, ok := loadList(h, w, r, reportList, h.assets.AssetReport)
	if !ok {
		return
	}
	data, pg := res.rows()
	l := buildList(reportList, res.values, data, pg, res.errMsg, nil)
	l.CreateURL = "/report/export?" + res.values.Encode()
	h.render(w, r, http.StatusOK, "report", h.page(r, "Report", l))
}

// ExportReport downloads every row of the report, in the current sort
// order, as a spreadsheet.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	values := reportList.canonical(r.URL.Query())
	rows, err := h.reportRows(r, values)
	if err != nil {
		h.fail(w, r, err, "export report")
		return
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, rows); err != nil {
		h.fail(w, r, err, "export report")
		return
	}

	name := report.Filename(h.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	h.response.NoStore(w)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).WithError(err).Warn("failed to write report")
	}
}

func (h *Handler) reportRows(r *http.Request, values url.Values) ([]model.AssetReportRow, error) {
	params := reportList.params(values, exportPageSize)
	var rows []model.AssetReportRow
	for page := 1; ; page++ {
		params.Page = page
		res, err := h.assets.AssetReport(r.Context(), params)
		if err != nil {
			return nil, err
		}
		rows = append(rows, res.Data...)
		if page >= res.Pagination.TotalPages || len(res.Data) == 0 {
			return rows, nil
		}
	}
}
