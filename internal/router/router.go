package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"office-asset-web/internal/config"
	"office-asset-web/internal/handler"
	"office-asset-web/internal/middleware"
	"office-asset-web/internal/session"
	"office-asset-web/internal/view"
)

// Instrument wraps every routed request, e.g. to record metrics.
type Instrument func(http.Handler) http.Handler

// Options carries what the router needs besides the page handlers.
type Options struct {
	Sessions   session.Store
	Health     map[string]handler.HealthCheck
	Instrument Instrument
}

// NewRouter creates a new router and sets up the routes with security
// middleware. Every page but the login needs a session; management pages
// need an admin one.
func NewRouter(h handler.ConsoleHandlerInterface, cfg *config.Config, opts Options) *mux.Router {
	r := mux.NewRouter()

	securityMW := middleware.NewSecurityMiddleware(&cfg.Security)
	sessionMW := middleware.NewSessionMiddleware(opts.Sessions, cfg.Session.CookieName)

	// Apply global middleware in order
	r.Use(securityMW.SecurityHeaders)
	r.Use(securityMW.CORS)
	r.Use(securityMW.TrustedProxy)
	r.Use(securityMW.RateLimit)
	r.Use(securityMW.RequestTimeout)
	if opts.Instrument != nil {
		r.Use(mux.MiddlewareFunc(opts.Instrument))
	}

	// Public
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", view.Static())).Methods(http.MethodGet)
	r.HandleFunc("/healthz", handler.Health(opts.Health)).Methods(http.MethodGet)
	r.HandleFunc("/login", h.LoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)

	// Any signed-in account
	app := r.NewRoute().Subrouter()
	app.Use(sessionMW.RequireSession)

	app.HandleFunc("/", h.Home).Methods(http.MethodGet)
	app.HandleFunc("/me/assignments/{id:[0-9]+}/{action:accept|decline|return}", h.ConfirmMyAssignment).Methods(http.MethodGet)
	app.HandleFunc("/me/assignments/{id:[0-9]+}/{action:accept|decline|return}", h.RespondMyAssignment).Methods(http.MethodPost)
	app.HandleFunc("/logout", h.ConfirmLogout).Methods(http.MethodGet)
	app.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	app.HandleFunc("/password", h.PasswordDialog).Methods(http.MethodGet)
	app.HandleFunc("/password", h.ChangePassword).Methods(http.MethodPost)

	// Admin accounts
	admin := app.NewRoute().Subrouter()
	admin.Use(sessionMW.RequireAdmin)

	admin.HandleFunc("/assets", h.ListAssets).Methods(http.MethodGet)
	admin.HandleFunc("/assets/new", h.NewAsset).Methods(http.MethodGet)
	admin.HandleFunc("/assets/new", h.CreateAsset).Methods(http.MethodPost)
	admin.HandleFunc("/assets/{id:[0-9]+}", h.ShowAsset).Methods(http.MethodGet)
	admin.HandleFunc("/assets/{id:[0-9]+}/edit", h.EditAsset).Methods(http.MethodGet)
	admin.HandleFunc("/assets/{id:[0-9]+}/edit", h.UpdateAsset).Methods(http.MethodPost)
	admin.HandleFunc("/assets/{id:[0-9]+}/delete", h.ConfirmDeleteAsset).Methods(http.MethodGet)
	admin.HandleFunc("/assets/{id:[0-9]+}/delete", h.DeleteAsset).Methods(http.MethodPost)

	admin.HandleFunc("/users", h.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/new", h.NewUser).Methods(http.MethodGet)
	admin.HandleFunc("/users/new", h.CreateUser).Methods(http.MethodPost)
	admin.HandleFunc("/users/created/{token}", h.CreatedUser).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id:[0-9]+}", h.ShowUser).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id:[0-9]+}/edit", h.EditUser).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id:[0-9]+}/edit", h.UpdateUser).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id:[0-9]+}/disable", h.ConfirmDisableUser).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id:[0-9]+}/disable", h.DisableUser).Methods(http.MethodPost)

	admin.HandleFunc("/assignments", h.ListAssignments).Methods(http.MethodGet)
	admin.HandleFunc("/assignments/new", h.NewAssignment).Methods(http.MethodGet)
	admin.HandleFunc("/assignments/new", h.CreateAssignment).Methods(http.MethodPost)
	admin.HandleFunc("/assignments/pick/user", h.PickUser).Methods(http.MethodGet)
	admin.HandleFunc("/assignments/pick/asset", h.PickAsset).Methods(http.MethodGet)
	admin.HandleFunc("/assignments/{id:[0-9]+}", h.ShowAssignment).Methods(http.MethodGet)
	admin.HandleFunc("/assignments/{id:[0-9]+}/edit", h.EditAssignment).Methods(http.MethodGet)
	admin.HandleFunc("/assignments/{id:[0-9]+}/edit", h.UpdateAssignment).Methods(http.MethodPost)
	admin.HandleFunc("/assignments/{id:[0-9]+}/delete", h.ConfirmDeleteAssignment).Methods(http.MethodGet)
	admin.HandleFunc("/assignments/{id:[0-9]+}/delete", h.DeleteAssignment).Methods(http.MethodPost)
	admin.HandleFunc("/assignments/{id:[0-9]+}/return", h.ConfirmReturnAssignment).Methods(http.MethodGet)
	admin.HandleFunc("/assignments/{id:[0-9]+}/return", h.ReturnAssignment).Methods(http.MethodPost)

	admin.HandleFunc("/returning-requests", h.ListReturningRequests).Methods(http.MethodGet)
	admin.HandleFunc("/returning-requests/{id:[0-9]+}/complete", h.ConfirmCompleteReturning).Methods(http.MethodGet)
	admin.HandleFunc("/returning-requests/{id:[0-9]+}/complete", h.CompleteReturning).Methods(http.MethodPost)
	admin.HandleFunc("/returning-requests/{id:[0-9]+}/cancel", h.ConfirmCancelReturning).Methods(http.MethodGet)
	admin.HandleFunc("/returning-requests/{id:[0-9]+}/cancel", h.CancelReturning).Methods(http.MethodPost)

	admin.HandleFunc("/report", h.Report).Methods(http.MethodGet)
	admin.HandleFunc("/report/export", h.ExportReport).Methods(http.MethodGet)

	return r
}
