// Package handler serves the console pages.
package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"office-asset-web/internal/apiclient"
	"office-asset-web/internal/dialog"
	"office-asset-web/internal/fetch"
	"office-asset-web/internal/secret"
	"office-asset-web/internal/session"
	"office-asset-web/internal/view"
)

// SupersedeObserver is told when a list response was dropped because a
// newer request for the same list had started.
type SupersedeObserver interface {
	Superseded(list string)
}

type nopObserver struct{}

func (nopObserver) Superseded(string) {}

// Options are the console settings handlers need.
type Options struct {
	PageSize     int
	CookieName   string
	SessionTTL   time.Duration
	SecureCookie bool
}

// Dependencies wires a Handler.
type Dependencies struct {
	Auth        apiclient.AuthAPI
	Assets      apiclient.AssetAPI
	Users       apiclient.UserAPI
	Assignments apiclient.AssignmentAPI
	Returning   apiclient.ReturningAPI
	Sessions    session.Store
	Vault       secret.Vault
	Fetch       *fetch.Group
	View        *view.Renderer
	Logger      *logrus.Logger
	Observer    SupersedeObserver
	Options     Options
}

// Handler serves every console route.
type Handler struct {
	auth        apiclient.AuthAPI
	assets      apiclient.AssetAPI
	users       apiclient.UserAPI
	assignments apiclient.AssignmentAPI
	returning   apiclient.ReturningAPI
	sessions    session.Store
	vault       secret.Vault
	fetch       *fetch.Group
	view        *view.Renderer
	logger      *logrus.Logger
	observer    SupersedeObserver
	opts        Options

	errors   *ErrorHandler
	response *ResponseHelper
	now      func() time.Time
}

func New(d Dependencies) *Handler {
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	if d.Observer == nil {
		d.Observer = nopObserver{}
	}
	if d.Fetch == nil {
		d.Fetch = fetch.NewGroup()
	}
	if d.Options.PageSize < 1 {
		d.Options.PageSize = 20
	}
	if d.Options.CookieName == "" {
		d.Options.CookieName = "oam_sid"
	}
	if d.Options.SessionTTL <= 0 {
		d.Options.SessionTTL = 12 * time.Hour
	}
	return &Handler{
		auth:        d.Auth,
		assets:      d.Assets,
		users:       d.Users,
		assignments: d.Assignments,
		returning:   d.Returning,
		sessions:    d.Sessions,
		vault:       d.Vault,
		fetch:       d.Fetch,
		view:        d.View,
		logger:      d.Logger,
		observer:    d.Observer,
		opts:        d.Options,
		errors:      NewErrorHandler(d.Logger),
		response:    NewResponseHelper(),
		now:         time.Now,
	}
}

var navHeadings = []view.NavItem{
	{Label: "Home", Href: "/"},
	{Label: "Assets", Href: "/assets"},
	{Label: "Users", Href: "/users"},
	{Label: "Assignments", Href: "/assignments"},
	{Label: "Returning Requests", Href: "/returning-requests"},
}

const defaultHeading = "OAM"

// page builds the chrome shared by every signed-in page.
func (h *Handler) page(r *http.Request, title string, body any) view.Page {
	p := view.Page{Title: title, Heading: defaultHeading, Tab: uuid.NewString(), Body: body}
	for _, item := range navHeadings {
		if item.Href == r.URL.Path {
			p.Heading = item.Label
		}
	}

	sess, ok := session.FromContext(r.Context())
	if !ok {
		return p
	}
	p.User = sess.Username
	p.Admin = sess.IsAdmin()

	items := navHeadings[:1]
	if p.Admin {
		items = append(append([]view.NavItem{}, navHeadings...), view.NavItem{Label: "Report", Href: "/report"})
	}
	for _, item := range items {
		item.Active = item.Href == r.URL.Path
		p.Nav = append(p.Nav, item)
	}
	return p
}

// render writes a full page, or only the list when htmx asked for it.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, p view.Page) {
	if h.response.Targets(r, targetList) {
		h.view.Partial(w, http.StatusOK, name, targetList, p)
		return
	}
	h.view.Page(w, status, name, p)
}

// renderDialog writes a dialog over an otherwise empty page, or only the
// dialog when htmx opens it over the current page.
func (h *Handler) renderDialog(w http.ResponseWriter, r *http.Request, name string, d dialog.Dialog, body any) {
	p := h.page(r, d.Title, body)
	p.Dialog = &d
	if h.response.Targets(r, targetDialog) {
		h.view.Partial(w, http.StatusOK, name, targetDialog, p)
		return
	}
	h.view.Page(w, http.StatusOK, name, p)
}

// fail renders the error page for a request that cannot go on.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, operation string) {
	if h.errors.Unauthorized(err) {
		h.expire(w, r)
		return
	}
	h.errors.Log(r, err, operation)
	msg := h.errors.Message(err)
	if h.response.Targets(r, targetDialog) {
		d := dialog.Refused("Error", msg, h.response.Back(r, "/"))
		h.view.Partial(w, http.StatusOK, "confirm", targetDialog, view.Page{Dialog: &d})
		return
	}
	h.view.Page(w, h.errors.Status(err), "error", h.page(r, "Error", msg))
}

// current returns the signed-in session. The auth middleware guarantees
// one on every protected route.
func (h *Handler) current(r *http.Request) *session.Session {
	sess, _ := session.FromContext(r.Context())
	return sess
}
