package form

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"office-asset-web/internal/model"
)

var assignmentLabels = map[string]string{
	"user":         "User",
	"asset":        "Asset",
	"assignedDate": "Assigned Date",
	"note":         "Note",
}

// AssignmentForm is the create/edit assignment form. It doubles as the
// draft carried through the user and asset pickers.
type AssignmentForm struct {
	User         model.UserSummary     `form:"user"`
	Asset        model.AssetSummary    `form:"asset"`
	AssignedDate string                `form:"assignedDate" validate:"required,date"`
	Note         string                `form:"note" validate:"max=256"`
	State        model.AssignmentState `form:"state"`
	UpdatedAt    string                `form:"updatedAt"`
}

// NewAssignmentForm returns a blank form dated today.
func NewAssignmentForm() AssignmentForm {
	return AssignmentForm{AssignedDate: today()}
}

// AssignmentFormFrom prefills the form from a stored assignment.
func AssignmentFormFrom(a model.Assignment) AssignmentForm {
	return AssignmentForm{
		User: model.UserSummary{
			ID:        a.AssignedTo.ID,
			StaffCode: a.AssignedTo.StaffCode,
			FullName:  a.AssignedTo.FullName,
			Type:      a.AssignedTo.Type,
		},
		Asset: model.AssetSummary{
			ID:           a.Asset.ID,
			AssetCode:    a.Asset.AssetCode,
			Name:         a.Asset.Name,
			CategoryName: a.Asset.Category.Name,
		},
		AssignedDate: dateOf(a.AssignedDate),
		Note:         a.Note,
		State:        a.State,
		UpdatedAt:    stamp(a.UpdatedAt),
	}
}

// Editing reports whether the form edits a stored assignment.
func (f AssignmentForm) Editing() bool {
	return f.State != ""
}

// Ok validates the form. Creation additionally forbids past dates.
func (f *AssignmentForm) Ok() (map[string]string, bool) {
	f.Note = strings.TrimSpace(f.Note)
	errs, ok := check(f, assignmentLabels)
	if !f.Editing() {
		if _, bad := errs["assignedDate"]; !bad {
			if err := validate.Var(f.AssignedDate, "notpast"); err != nil {
				errs["assignedDate"] = assignmentLabels["assignedDate"] + " cannot be in the past"
				ok = false
			}
		}
	}
	return errs, ok
}

// Complete reports whether submit is enabled. An edit is only possible
// while the assignment waits for acceptance.
func (f AssignmentForm) Complete() bool {
	if f.Editing() && !f.State.Editable() {
		return false
	}
	return filled(f.User.StaffCode, f.Asset.AssetCode, f.AssignedDate)
}

func (f AssignmentForm) Request() model.AssignmentRequest {
	return model.AssignmentRequest{
		AssetCode:    f.Asset.AssetCode,
		StaffCode:    f.User.StaffCode,
		AssignedDate: f.AssignedDate,
		Note:         f.Note,
		UpdatedAt:    f.UpdatedAt,
	}
}

// Draft encodes the form so a picker can hand it back.
func (f AssignmentForm) Draft() url.Values {
	v, err := EncodeValues(f)
	if err != nil {
		return url.Values{}
	}
	for k, vs := range v {
		if len(vs) == 1 && (vs[0] == "" || vs[0] == "0") {
			delete(v, k)
		}
	}
	return v
}

// WithUser returns the draft with the user replaced.
func (f AssignmentForm) WithUser(u model.UserSummary) AssignmentForm {
	f.User = u
	return f
}

// WithAsset returns the draft with the asset replaced.
func (f AssignmentForm) WithAsset(a model.AssetSummary) AssignmentForm {
	f.Asset = a
	return f
}

func pickedBoth(sl validator.StructLevel) {
	f, ok := sl.Current().Interface().(AssignmentForm)
	if !ok {
		return
	}
	if strings.TrimSpace(f.User.StaffCode) == "" {
		sl.ReportError(f.User.StaffCode, "user", "User", "required", "")
	}
	if strings.TrimSpace(f.Asset.AssetCode) == "" {
		sl.ReportError(f.Asset.AssetCode, "asset", "Asset", "required", "")
	}
}
