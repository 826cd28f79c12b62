package form

import (
	"strings"

	"office-asset-web/internal/model"
)

var assetLabels = map[string]string{
	"name":          "Name",
	"categoryId":    "Category",
	"specification": "Specification",
	"installedAt":   "Installed Date",
	"state":         "State",
}

// CreateAssetForm is the body of POST /assets/new.
type CreateAssetForm struct {
	Name          string           `form:"name" validate:"required,max=256"`
	CategoryID    int              `form:"categoryId" validate:"min=1"`
	Specification string           `form:"specification" validate:"required,max=1024"`
	InstalledAt   string           `form:"installedAt" validate:"required,date"`
	State         model.AssetState `form:"state" validate:"required,oneof=AVAILABLE UNAVAILABLE"`
}

// NewCreateAssetForm returns the blank form; state starts as Available.
func NewCreateAssetForm() CreateAssetForm {
	return CreateAssetForm{State: model.AssetAvailable}
}

func (f *CreateAssetForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Specification = strings.TrimSpace(f.Specification)
}

func (f *CreateAssetForm) Ok() (map[string]string, bool) {
	f.normalize()
	return check(f, assetLabels)
}

// Complete reports whether every required field has a value.
func (f CreateAssetForm) Complete() bool {
	return f.CategoryID > 0 && filled(f.Name, f.Specification, f.InstalledAt, string(f.State))
}

func (f CreateAssetForm) Request() model.CreateAssetRequest {
	return model.CreateAssetRequest{
		Name:          f.Name,
		CategoryID:    f.CategoryID,
		Specification: f.Specification,
		InstalledAt:   f.InstalledAt,
		State:         f.State,
	}
}

// CreateAssetStates are the states offered when creating an asset.
var CreateAssetStates = []model.AssetState{model.AssetAvailable, model.AssetUnavailable}

// EditAssetStates are the states offered when editing an asset.
var EditAssetStates = []model.AssetState{
	model.AssetAvailable,
	model.AssetUnavailable,
	model.AssetWaitingForRecycling,
	model.AssetRecycled,
}

// EditAssetForm is the body of POST /assets/{id}/edit. The category is
// shown but cannot change.
type EditAssetForm struct {
	Name          string           `form:"name" validate:"required,max=256"`
	Category      string           `form:"-"`
	Specification string           `form:"specification" validate:"required,max=1024"`
	InstalledAt   string           `form:"installedAt" validate:"required,date"`
	State         model.AssetState `form:"state" validate:"required,oneof=AVAILABLE UNAVAILABLE WAITING_FOR_RECYCLING RECYCLED"`
	UpdatedAt     string           `form:"updatedAt"`
}

// EditAssetFormFrom prefills the form from the stored asset.
func EditAssetFormFrom(a model.Asset) EditAssetForm {
	return EditAssetForm{
		Name:          a.Name,
		Category:      a.Category.Name,
		Specification: a.Specification,
		InstalledAt:   dateOf(a.InstalledAt),
		State:         a.State,
		UpdatedAt:     stamp(a.UpdatedAt),
	}
}

func (f *EditAssetForm) Ok() (map[string]string, bool) {
	f.Name = strings.TrimSpace(f.Name)
	f.Specification = strings.TrimSpace(f.Specification)
	return check(f, assetLabels)
}

func (f EditAssetForm) Complete() bool {
	return filled(f.Name, f.Specification, f.InstalledAt, string(f.State))
}

func (f EditAssetForm) Request() model.UpdateAssetRequest {
	return model.UpdateAssetRequest{
		Name:          f.Name,
		Specification: f.Specification,
		InstalledAt:   f.InstalledAt,
		State:         f.State,
		UpdatedAt:     f.UpdatedAt,
	}
}
