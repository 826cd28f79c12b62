package handler

import (
	"net/http"

	"office-asset-web/internal/apiclient"
	"office-asset-web/internal/dialog"
	"office-asset-web/internal/form"
	"office-asset-web/internal/logging"
	"office-asset-web/internal/session"
	"office-asset-web/internal/view"
	apperrors "office-asset-web/pkg/errors"
)

const (
	msgBadCredentials   = "Username or password is incorrect. Please try again"
	msgPasswordChanged  = "Your password has been changed successfully!"
	msgFirstLoginPrompt = "/password?first=true"
)

func (h *Handler) renderLogin(w http.ResponseWriter, status int, f form.LoginForm, errs map[string]string, msg string) {
	h.view.Page(w, status, "login", view.Page{
		Title: "Login",
		Bare:  true,
		Body: view.Form[form.LoginForm]{
			Title:    "Login",
			Action:   "/login",
			Values:   f,
			Errors:   errs,
			Message:  msg,
			Complete: f.Complete(),
		},
	})
}

// LoginPage renders the sign-in form.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, http.StatusOK, form.LoginForm{}, nil, "")
}

// Login exchanges credentials for an API token and opens a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var f form.LoginForm
	if err := form.Decode(r, &f); err != nil {
		h.renderLogin(w, http.StatusBadRequest, f, nil, "The form could not be read. Please try again.")
		return
	}
	if errs, ok := f.Ok(); !ok {
		h.renderLogin(w, http.StatusUnprocessableEntity, f, errs, "")
		return
	}

	log := logging.FromContext(r.Context()).WithField("username", f.Username)
	result, err := h.auth.Login(r.Context(), f.Username, f.Password)
	if err == nil && result.AccessToken == "" {
		err = apperrors.UnauthorizedError("empty access token")
	}
	if err != nil {
		log.WithError(err).Warn("login failed")
		msg := h.errors.Message(err)
		status := h.errors.Status(err)
		if h.errors.Unauthorized(err) || apperrors.HasCode(err, apperrors.ErrorCodeValidation) {
			msg, status = msgBadCredentials, http.StatusUnauthorized
		}
		h.renderLogin(w, status, form.LoginForm{Username: f.Username}, nil, msg)
		return
	}

	ctx := apiclient.WithToken(r.Context(), result.AccessToken)
	profile, err := h.auth.Profile(ctx)
	if err != nil {
		h.errors.Log(r, err, "load profile")
		h.renderLogin(w, h.errors.Status(err), form.LoginForm{Username: f.Username}, nil, h.errors.Message(err))
		return
	}

	sess := session.New(*profile, result.AccessToken, h.opts.SessionTTL, h.now())
	if err := h.sessions.Create(r.Context(), sess); err != nil {
		h.errors.Log(r, err, "create session")
		h.renderLogin(w, h.errors.Status(err), form.LoginForm{Username: f.Username}, nil, h.errors.Message(err))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.opts.CookieName,
		Value:    sess.ID.String(),
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   h.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	log.WithField("session", sess.ID).Info("signed in")

	if result.IsFirstTimeLogin || profile.IsFirstTimeLogin {
		h.response.Redirect(w, r, msgFirstLoginPrompt)
		return
	}
	h.response.Redirect(w, r, "/")
}

// ConfirmLogout asks before signing out.
func (h *Handler) ConfirmLogout(w http.ResponseWriter, r *http.Request) {
	back := h.response.Back(r, "/")
	h.renderDialog(w, r, "confirm", dialog.NewConfirm("Are you sure?", "Do you want to log out?", "Log out", "/logout", back), nil)
}

// Logout ends the session here and at the API. A failed API logout does
// not keep the browser signed in.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		logging.FromContext(r.Context()).WithError(err).Warn("api logout failed")
	}
	h.expire(w, r)
}

// expire drops the current session and sends the browser to the login page.
func (h *Handler) expire(w http.ResponseWriter, r *http.Request) {
	if sess := h.current(r); sess != nil {
		if err := h.sessions.Delete(r.Context(), sess.ID); err != nil {
			h.errors.Log(r, err, "delete session")
		}
		h.fetch.Forget(sess.OwnerPrefix())
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	h.response.Redirect(w, r, "/login")
}

func (h *Handler) renderPassword(w http.ResponseWriter, r *http.Request, status int, f form.ChangePasswordForm, errs map[string]string, msg string) {
	d := dialog.Dialog{Kind: dialog.Confirm, Title: "Change password"}
	if !f.FirstLogin {
		d.Cancel = &dialog.Target{Label: "Cancel", URL: h.response.Back(r, "/"), Method: http.MethodGet}
	}
	p := h.page(r, d.Title, view.Form[form.ChangePasswordForm]{
		Title:    d.Title,
		Action:   "/password",
		Values:   f,
		Errors:   errs,
		Message:  msg,
		Complete: f.Complete(),
	})
	p.Dialog = &d
	if h.response.Targets(r, targetDialog) {
		h.view.Partial(w, status, "password", targetDialog, p)
		return
	}
	h.view.Page(w, status, "password", p)
}

// PasswordDialog renders the change password dialog. On first login the
// old password is not asked for and the dialog cannot be dismissed.
func (h *Handler) PasswordDialog(w http.ResponseWriter, r *http.Request) {
	h.renderPassword(w, r, http.StatusOK, form.ChangePasswordForm{FirstLogin: r.URL.Query().Get("first") == "true"}, nil, "")
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var f form.ChangePasswordForm
	if err := form.Decode(r, &f); err != nil {
		h.renderPassword(w, r, http.StatusBadRequest, f, nil, "The form could not be read. Please try again.")
		return
	}
	if errs, ok := f.Ok(); !ok {
		h.renderPassword(w, r, http.StatusUnprocessableEntity, f, errs, "")
		return
	}

	if err := h.auth.ChangePassword(r.Context(), f.OldPassword, f.NewPassword); err != nil {
		// a wrong old password is reported as a rejected request, not an expired session
		if h.errors.Unauthorized(err) && !f.FirstLogin {
			h.renderPassword(w, r, http.StatusUnprocessableEntity, f, map[string]string{"oldPassword": "Password is incorrect"}, "")
			return
		}
		if h.errors.Unauthorized(err) {
			h.expire(w, r)
			return
		}
		h.errors.Log(r, err, "change password")
		_, msg := h.errors.FormOutcome(err)
		h.renderPassword(w, r, h.errors.Status(err), f, nil, msg)
		return
	}

	logging.FromContext(r.Context()).Info("password changed")
	h.renderDialog(w, r, "confirm", dialog.NewResult("Change password", msgPasswordChanged, "/"), nil)
}
