package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

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
	assetStatesParam     = querystate.EnumList("states", model.DefaultAssetStateFilter, model.AssetStates)
	assetCategoriesParam = querystate.StringList("categoryIds", []string{})

	assetList = newListPage("assets", "/assets", "assets", "No assets to display.", "assetCode",
		[]column{
			{label: "Asset Code", field: "assetCode"},
			{label: "Asset Name", field: "name"},
			{label: "Category", field: "category"},
			{label: "State", field: "state"},
		},
		[]listFilter{
			enumFilter(assetStatesParam, "State"),
			stringsFilter(assetCategoriesParam, "Category"),
		},
	)
)

// ListAssets renders the asset table. Categories load alongside the list;
// if they fail the category filter keeps its selection without options.
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	var categories []model.Category
	var g errgroup.Group
	g.Go(func() error {
		var err error
		categories, err = h.assets.ListCategories(r.Context())
		return err
	})

	res, ok := loadList(h, w, r, assetList, h.assets.ListAssets)
	if err := g.Wait(); err != nil && ok {
		logging.FromContext(r.Context()).WithError(err).Warn("failed to load categories")
	}
	if !ok {
		return
	}

	data, pg := res.rows()
	self := assetList.href(res.values)
	rows := make([]view.Row[model.Asset], 0, len(data))
	for _, a := range data {
		rows = append(rows, assetRow(a, self))
	}

	l := buildList(assetList, res.values, rows, pg, res.errMsg, map[string][]multiselect.Item{
		assetStatesParam.Key():     multiselect.FromEnum(model.AssetStates),
		assetCategoriesParam.Key(): categoryItems(categories),
	})
	l.CreateURL = "/assets/new"
	h.render(w, r, http.StatusOK, "assets", h.page(r, "Manage Asset", l))
}

func assetRow(a model.Asset, back string) view.Row[model.Asset] {
	base := fmt.Sprintf("/assets/%d", a.ID)
	locked := !a.State.Editable()
	return view.Row[model.Asset]{
		Item:   a,
		Detail: withBack(base, back),
		Actions: []view.Action{
			{Label: "Edit", Icon: "✎", Href: withBack(base+"/edit", back), Disabled: locked},
			{Label: "Delete", Icon: "✕", Href: withBack(base+"/delete", back), Disabled: locked, Danger: true},
		},
	}
}

// ShowAsset renders the asset detail dialog.
func (h *Handler) ShowAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := h.response.ParseID(mux.Vars(r)["id"])
	if !ok {
		h.fail(w, r, apperrors.BadRequestError("invalid asset id"), "show asset")
		return
	}
	asset, err := h.assets.GetAsset(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "show asset")
		return
	}
	h.renderDialog(w, r, "asset_detail", dialog.NewDetail("Detailed Asset Information", h.response.Back(r, "/assets")), asset)
}

func (h *Handler) categoryOptions(r *http.Request) ([]view.Option, error) {
	categories, err := h.assets.ListCategories(r.Context())
	if err != nil {
		return nil, err
	}
	opts := make([]view.Option, 0, len(categories))
	for _, c := range categories {
		opts = append(opts, view.Option{Label: c.Name, Value: strconv.Itoa(c.ID)})
	}
	return opts, nil
}

func (h *Handler) renderCreateAsset(w http.ResponseWriter, r *http.Request, status int, f form.CreateAssetForm, errs map[string]string, msg string) {
	opts := map[string][]view.Option{"states": enumOptions(form.CreateAssetStates)}
	categories, err := h.categoryOptions(r)
	opts["categories"] = categories
	if err != nil {
		h.errors.Log(r, err, "load categories")
		if msg == "" {
			msg = h.errors.Message(err)
		}
	}
	h.view.Page(w, status, "asset_form", h.page(r, "Create New Asset", view.Form[form.CreateAssetForm]{
		Title:    "Create New Asset",
		Action:   "/assets/new",
		Cancel:   "/assets",
		Values:   f,
		Errors:   errs,
		Message:  msg,
		Complete: f.Complete(),
		Options:  opts,
	}))
}

// NewAsset renders the blank create form.
func (h *Handler) NewAsset(w http.ResponseWriter, r *http.Request) {
	h.renderCreateAsset(w, r, http.StatusOK, form.NewCreateAssetForm(), nil, "")
}

// CreateAsset validates and submits the create form.
func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var f form.CreateAssetForm
	if err := form.Decode(r, &f); err != nil {
		h.renderCreateAsset(w, r, http.StatusBadRequest, f, nil, "The form could not be read. Please try again.")
		return
	}
	if errs, ok := f.Ok(); !ok {
		h.renderCreateAsset(w, r, http.StatusUnprocessableEntity, f, errs, "")
		return
	}

	asset, err := h.assets.CreateAsset(r.Context(), f.Request())
	if err != nil {
		if h.errors.Unauthorized(err) {
			h.expire(w, r)
			return
		}
		h.errors.Log(r, err, "create asset")
		errs, msg := h.errors.FormOutcome(err)
		h.renderCreateAsset(w, r, h.errors.Status(err), f, errs, msg)
		return
	}

	logging.FromContext(r.Context()).WithField("asset", asset.AssetCode).Info("asset created")
	h.response.Redirect(w, r, "/assets?search="+asset.AssetCode)
}

// editableAsset loads the asset behind the route and refuses assets whose
// state forbids the action.
func (h *Handler) editableAsset(r *http.Request, action string) (*model.AssetDetail, error) {
	id, ok := h.response.ParseID(mux.Vars(r)["id"])
	if !ok {
		return nil, apperrors.BadRequestError("invalid asset id")
	}
	asset, err := h.assets.GetAsset(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if !asset.State.Editable() {
		return asset, apperrors.StateForbidsError(action+" asset", asset.State.Label())
	}
	return asset, nil
}

func (h *Handler) renderEditAsset(w http.ResponseWriter, r *http.Request, status int, id int, f form.EditAssetForm, errs map[string]string, msg string) {
	opts := map[string][]view.Option{"states": enumOptions(form.EditAssetStates)}
	back := h.response.Back(r, "/assets")
	h.view.Page(w, status, "asset_form", h.page(r, "Edit Asset", view.Form[form.EditAssetForm]{
		Title:    "Edit Asset",
		Action:   withBack(fmt.Sprintf("/assets/%d/edit", id), back),
		Cancel:   back,
		Values:   f,
		Errors:   errs,
		Message:  msg,
		Complete: f.Complete(),
		Options:  opts,
		Editing:  true,
	}))
}

// EditAsset renders the edit form of an asset that is not assigned.
func (h *Handler) EditAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := h.editableAsset(r, "edit")
	if err != nil {
		h.fail(w, r, err, "edit asset")
		return
	}
	h.renderEditAsset(w, r, http.StatusOK, asset.ID, form.EditAssetFormFrom(asset.Asset), nil, "")
}

// UpdateAsset validates and submits the edit form.
func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := h.editableAsset(r, "edit")
	if err != nil {
		h.fail(w, r, err, "update asset")
		return
	}

	var f form.EditAssetForm
	if err := form.Decode(r, &f); err != nil {
		h.renderEditAsset(w, r, http.StatusBadRequest, asset.ID, form.EditAssetFormFrom(asset.Asset), nil, "The form could not be read. Please try again.")
		return
	}
	f.Category = asset.Category.Name
	if errs, ok := f.Ok(); !ok {
		h.renderEditAsset(w, r, http.StatusUnprocessableEntity, asset.ID, f, errs, "")
		return
	}

	if _, err := h.assets.UpdateAsset(r.Context(), asset.ID, f.Request()); err != nil {
		if h.errors.Unauthorized(err) {
			h.expire(w, r)
			return
		}
		h.errors.Log(r, err, "update asset")
		errs, msg := h.errors.FormOutcome(err)
		h.renderEditAsset(w, r, h.errors.Status(err), asset.ID, f, errs, msg)
		return
	}
	h.response.Redirect(w, r, h.response.Back(r, "/assets"))
}

// ConfirmDeleteAsset renders the delete confirmation, or explains why the
// asset cannot be deleted.
func (h *Handler) ConfirmDeleteAsset(w http.ResponseWriter, r *http.Request) {
	back := h.response.Back(r, "/assets")
	asset, err := h.editableAsset(r, "delete")
	switch {
	case apperrors.HasCode(err, apperrors.ErrorCodeStateForbids):
		h.renderDialog(w, r, "confirm", dialog.Refused("Cannot Delete Asset",
			"Cannot delete the asset because it is assigned. Please return the asset first.", back), nil)
		return
	case err != nil:
		h.fail(w, r, err, "confirm delete asset")
		return
	}
	action := withBack(fmt.Sprintf("/assets/%d/delete", asset.ID), back)
	h.renderDialog(w, r, "confirm", dialog.NewConfirm("Are you sure?", "Do you want to delete this asset?", "Delete", action, back), nil)
}

// DeleteAsset deletes an asset whose state allows it and returns to the
// list it was started from.
func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	back := h.response.Back(r, "/assets")
	asset, err := h.editableAsset(r, "delete")
	if err == nil {
		err = h.assets.DeleteAsset(r.Context(), asset.ID)
	}
	if err != nil {
		h.refuse(w, r, "Cannot Delete Asset", err, back, "delete asset")
		return
	}
	logging.FromContext(r.Context()).WithField("asset", asset.AssetCode).Info("asset deleted")
	h.response.Redirect(w, r, back)
}

// refuse answers a rejected mutation with an informational dialog that
// leads back to the list.
func (h *Handler) refuse(w http.ResponseWriter, r *http.Request, title string, err error, back, operation string) {
	if h.errors.Unauthorized(err) {
		h.expire(w, r)
		return
	}
	h.errors.Log(r, err, operation)
	d := dialog.Refused(title, h.errors.Message(err), back)
	p := h.page(r, title, nil)
	p.Dialog = &d
	h.view.Page(w, h.errors.Status(err), "confirm", p)
}

func enumOptions[T interface {
	~string
	Label() string
}](values []T) []view.Option {
	out := make([]view.Option, 0, len(values))
	for _, v := range values {
		out = append(out, view.Option{Label: v.Label(), Value: string(v)})
	}
	return out
}
