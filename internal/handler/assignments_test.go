package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"office-asset-web/internal/apiclient"
	"office-asset-web/internal/model"
	apperrors "office-asset-web/pkg/errors"
)

func TestDeleteAssignment(t *testing.T) {
	tests := []struct {
		name        string
		state       model.AssignmentState
		wantStatus  int
		wantDeleted bool
	}{
		{"waiting for acceptance", model.AssignmentWaitingForAcceptance, http.StatusSeeOther, true},
		{"declined", model.AssignmentDeclined, http.StatusSeeOther, true},
		{"accepted", model.AssignmentAccepted, http.StatusConflict, false},
		{"waiting for returning", model.AssignmentWaitingForReturning, http.StatusConflict, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.assignments.GetAssignmentFunc = func(ctx context.Context, id int) (*model.Assignment, error) {
				return &model.Assignment{ID: id, State: tt.state}, nil
			}
			deleted := false
			f.assignments.DeleteAssignmentFunc = func(ctx context.Context, id int) error {
				deleted = true
				return nil
			}

			rec := f.do(f.h.DeleteAssignment, http.MethodPost, "/assignments/5/delete?back=%2Fassignments%3Fpage%3D3", url.Values{},
				vars(map[string]string{"id": "5"}))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantDeleted, deleted)
			if tt.wantDeleted {
				assert.Equal(t, "/assignments?page=3", rec.Header().Get("Location"))
			}
		})
	}
}

func TestReturnAssignment_OnlyAccepted(t *testing.T) {
	f := newFixture(t)
	f.assignments.GetAssignmentFunc = func(ctx context.Context, id int) (*model.Assignment, error) {
		return &model.Assignment{ID: id, State: model.AssignmentWaitingForAcceptance}, nil
	}
	f.returning.CreateReturningRequestFunc = func(ctx context.Context, assignmentID int) error {
		t.Fatal("CreateReturningRequest must not be called")
		return nil
	}

	rec := f.do(f.h.ReturnAssignment, http.MethodPost, "/assignments/5/return", url.Values{},
		vars(map[string]string{"id": "5"}))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cannot Request Returning")
}

func TestReturnAssignment(t *testing.T) {
	f := newFixture(t)
	f.assignments.GetAssignmentFunc = func(ctx context.Context, id int) (*model.Assignment, error) {
		return &model.Assignment{ID: id, State: model.AssignmentAccepted}, nil
	}
	var requested int
	f.returning.CreateReturningRequestFunc = func(ctx context.Context, assignmentID int) error {
		requested = assignmentID
		return nil
	}

	rec := f.do(f.h.ReturnAssignment, http.MethodPost, "/assignments/5/return", url.Values{},
		vars(map[string]string{"id": "5"}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/assignments", rec.Header().Get("Location"))
	assert.Equal(t, 5, requested)
}

func TestConfirmDeleteAssignment_AcceptedExplains(t *testing.T) {
	f := newFixture(t)
	f.assignments.GetAssignmentFunc = func(ctx context.Context, id int) (*model.Assignment, error) {
		return &model.Assignment{ID: id, State: model.AssignmentAccepted}, nil
	}

	rec := f.do(f.h.ConfirmDeleteAssignment, http.MethodGet, "/assignments/5/delete", nil,
		vars(map[string]string{"id": "5"}), htmx(targetDialog))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cannot Delete Assignment")
}

func editAssignmentForm(updatedAt string) url.Values {
	return url.Values{
		"user.code":    {"SD0001"},
		"user.name":    {"Binh Nguyen"},
		"asset.code":   {"LA000003"},
		"asset.name":   {"Laptop HP"},
		"assignedDate": {"2024-05-02"},
		"note":         {"handed over at the front desk"},
		"updatedAt":    {updatedAt},
	}
}

func TestUpdateAssignment_StateGuard(t *testing.T) {
	tests := []struct {
		name        string
		state       model.AssignmentState
		wantStatus  int
		wantUpdated bool
	}{
		{"waiting for acceptance is updated", model.AssignmentWaitingForAcceptance, http.StatusSeeOther, true},
		{"accepted is refused", model.AssignmentAccepted, http.StatusConflict, false},
		{"declined is refused", model.AssignmentDeclined, http.StatusConflict, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.assignments.GetAssignmentFunc = func(ctx context.Context, id int) (*model.Assignment, error) {
				return &model.Assignment{ID: id, State: tt.state}, nil
			}
			updated := false
			f.assignments.UpdateAssignmentFunc = func(ctx context.Context, id int, req model.AssignmentRequest) (*model.Assignment, error) {
				updated = true
				return &model.Assignment{ID: id}, nil
			}

			rec := f.do(f.h.UpdateAssignment, http.MethodPost, "/assignments/5/edit", editAssignmentForm("2024-05-01T10:00:00Z"),
				vars(map[string]string{"id": "5"}))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUpdated, updated)
			if tt.wantUpdated {
				assert.Equal(t, "/assignments?assignmentId=5", rec.Header().Get("Location"))
			}
		})
	}
}

func TestEditAssignment_StateGuard(t *testing.T) {
	for _, state := range []model.AssignmentState{model.AssignmentAccepted, model.AssignmentDeclined} {
		t.Run(string(state), func(t *testing.T) {
			f := newFixture(t)
			f.assignments.GetAssignmentFunc = func(ctx context.Context, id int) (*model.Assignment, error) {
				return &model.Assignment{ID: id, State: state}, nil
			}
			f.assignments.UpdateAssignmentFunc = func(ctx context.Context, id int, req model.AssignmentRequest) (*model.Assignment, error) {
				t.Fatal("UpdateAssignment must not be called")
				return nil, nil
			}

			rec := f.do(f.h.EditAssignment, http.MethodGet, "/assignments/5/edit", nil,
				vars(map[string]string{"id": "5"}))

			assert.Equal(t, http.StatusConflict, rec.Code)
			assert.NotContains(t, rec.Body.String(), `action="/assignments/5/edit"`)
		})
	}
}

func TestUpdateAssignment_ConflictKeepsTypedValues(t *testing.T) {
	f := newFixture(t)
	f.assignments.GetAssignmentFunc = func(ctx context.Context, id int) (*model.Assignment, error) {
		return &model.Assignment{ID: id, State: model.AssignmentWaitingForAcceptance}, nil
	}
	f.assignments.UpdateAssignmentFunc = func(ctx context.Context, id int, req model.AssignmentRequest) (*model.Assignment, error) {
		assert.Equal(t, "2024-05-01T10:00:00Z", req.UpdatedAt)
		return nil, apperrors.FromStatus(http.StatusConflict, "")
	}

	rec := f.do(f.h.UpdateAssignment, http.MethodPost, "/assignments/5/edit", editAssignmentForm("2024-05-01T10:00:00Z"),
		vars(map[string]string{"id": "5"}))

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, msgConflict)
	assert.Contains(t, body, "handed over at the front desk")
	assert.Contains(t, body, `value="LA000003"`)
}

func TestEditAssignment_DraftKeepsVersion(t *testing.T) {
	opened := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	stored := &model.Assignment{
		ID:           5,
		State:        model.AssignmentWaitingForAcceptance,
		AssignedTo:   model.AssignmentUser{StaffCode: "SD0001", FullName: "Binh Nguyen"},
		Asset:        model.AssignmentAsset{AssetCode: "LA000001", Name: "Laptop Dell"},
		AssignedDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name         string
		storedAt     time.Time
		query        url.Values
		wantToken    string
		wantConflict bool
	}{
		{
			name:      "opening the form takes the stored version",
			storedAt:  opened,
			wantToken: "2024-05-01T10:00:00Z",
		},
		{
			name:      "draft of an unchanged record",
			storedAt:  opened,
			query:     url.Values{"asset.code": {"LA000003"}, "updatedAt": {"2024-05-01T10:00:00Z"}},
			wantToken: "2024-05-01T10:00:00Z",
		},
		{
			name:         "draft of a record changed meanwhile",
			storedAt:     opened.Add(time.Hour),
			query:        url.Values{"asset.code": {"LA000003"}, "updatedAt": {"2024-05-01T10:00:00Z"}},
			wantToken:    "2024-05-01T10:00:00Z",
			wantConflict: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.assignments.GetAssignmentFunc = func(ctx context.Context, id int) (*model.Assignment, error) {
				a := *stored
				a.UpdatedAt = tt.storedAt
				return &a, nil
			}

			target := "/assignments/5/edit"
			if tt.query != nil {
				target += "?" + tt.query.Encode()
			}
			rec := f.do(f.h.EditAssignment, http.MethodGet, target, nil, vars(map[string]string{"id": "5"}))

			assert.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, `name="updatedAt" value="`+tt.wantToken+`"`)
			if tt.wantConflict {
				assert.Contains(t, body, msgConflict)
				assert.NotContains(t, body, `value="2024-05-01T11:00:00Z"`)
			} else {
				assert.NotContains(t, body, msgConflict)
			}
		})
	}
}

func TestListAssignments_MarksSavedAssignment(t *testing.T) {
	f := newFixture(t)
	var got apiclient.ListParams
	f.assignments.ListAssignmentsFunc = func(ctx context.Context, params apiclient.ListParams) (*model.Page[model.Assignment], error) {
		got = params
		return &model.Page[model.Assignment]{
			Data: []model.Assignment{
				{ID: 4, Asset: model.AssignmentAsset{AssetCode: "LA000004"}, State: model.AssignmentAccepted},
				{ID: 5, Asset: model.AssignmentAsset{AssetCode: "LA000005"}, State: model.AssignmentWaitingForAcceptance},
			},
			Pagination: model.Pagination{Page: 1, TotalPages: 1, TotalCount: 2},
		}, nil
	}

	rec := f.do(f.h.ListAssignments, http.MethodGet, "/assignments?assignmentId=5", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 1, countOf(rec.Body, `class="current"`))
	assert.Regexp(t, `class="current"[^>]*>\s*<td><a[^>]*>LA000005<`, body)
	assert.Contains(t, body, "Assignment saved.")
	assert.NotContains(t, got.Filters, "assignmentId")
}
