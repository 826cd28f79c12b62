package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"office-asset-web/internal/apiclient"
	"office-asset-web/internal/logging"
	"office-asset-web/internal/session"
)

const loginPath = "/login"

// SessionMiddleware admits requests that carry a live session cookie.
type SessionMiddleware struct {
	store  session.Store
	cookie string
	now    func() time.Time
}

func NewSessionMiddleware(store session.Store, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{store: store, cookie: cookieName, now: time.Now}
}

// RequireSession loads the session named by the cookie and attaches it,
// with its API token, to the request context. Anything else is sent to the
// login page.
func (sm *SessionMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromContext(r.Context())

		c, err := r.Cookie(sm.cookie)
		if err != nil {
			toLogin(w, r)
			return
		}
		id, err := uuid.Parse(c.Value)
		if err != nil {
			sm.clear(w)
			toLogin(w, r)
			return
		}

		sess, err := sm.store.Get(r.Context(), id)
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			sm.clear(w)
			toLogin(w, r)
			return
		case err != nil:
			log.WithError(err).Error("failed to load session")
			http.Error(w, "The session could not be loaded. Please try again.", http.StatusServiceUnavailable)
			return
		}

		if sess.Expired(sm.now()) {
			if err := sm.store.Delete(r.Context(), sess.ID); err != nil {
				log.WithError(err).Warn("failed to delete expired session")
			}
			sm.clear(w)
			toLogin(w, r)
			return
		}

		ctx := session.WithSession(r.Context(), sess)
		ctx = apiclient.WithToken(ctx, sess.AccessToken)
		ctx = logging.WithEntry(ctx, log.WithFields(logrus.Fields{"user": sess.Username}))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin sends staff accounts back to their home page.
func (sm *SessionMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			toLogin(w, r)
			return
		}
		if !sess.IsAdmin() {
			logging.FromContext(r.Context()).WithField("path", r.URL.Path).Warn("SECURITY: admin page refused")
			redirect(w, r, "/")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (sm *SessionMiddleware) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sm.cookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
}

func toLogin(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, loginPath)
}

// redirect follows the console's htmx convention: a full navigation
// through HX-Redirect, or a 303.
func redirect(w http.ResponseWriter, r *http.Request, location string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", location)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}
