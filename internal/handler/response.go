package handler

import (
	"net/http"
	"net/url"
	"strconv"
)

// htmx request and response headers
const (
	hxRequest    = "HX-Request"
	hxTarget     = "HX-Target"
	hxRedirect   = "HX-Redirect"
	hxReplaceURL = "HX-Replace-Url"
	hxTabID      = "X-Tab-ID"

	targetList   = "list"
	targetDialog = "dialog"
)

// ResponseHelper provides the response conventions shared by every page:
// htmx detection, redirects and cache headers.
type ResponseHelper struct{}

func NewResponseHelper() *ResponseHelper {
	return &ResponseHelper{}
}

// IsHTMX reports whether the request was issued by htmx.
func (rh *ResponseHelper) IsHTMX(r *http.Request) bool {
	return r.Header.Get(hxRequest) == "true"
}

// Targets reports whether an htmx request swaps into the element with id.
func (rh *ResponseHelper) Targets(r *http.Request, id string) bool {
	return rh.IsHTMX(r) && r.Header.Get(hxTarget) == id
}

// Redirect sends the browser to location. htmx requests get HX-Redirect so
// the whole page navigates instead of swapping the redirect target in.
func (rh *ResponseHelper) Redirect(w http.ResponseWriter, r *http.Request, location string) {
	if rh.IsHTMX(r) {
		w.Header().Set(hxRedirect, location)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// NoStore forbids any cache from keeping the response.
func (rh *ResponseHelper) NoStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.Header().Set("Pragma", "no-cache")
}

// Back returns the list URL a dialog or form returns to. It is taken from
// the "back" parameter when it is a local path and defaults to fallback.
func (rh *ResponseHelper) Back(r *http.Request, fallback string) string {
	back := r.URL.Query().Get("back")
	if back == "" {
		back = r.PostFormValue("back")
	}
	if !isLocal(back) {
		return fallback
	}
	return back
}

// ParseID reads a positive integer path variable.
func (rh *ResponseHelper) ParseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func isLocal(target string) bool {
	if target == "" || target[0] != '/' || len(target) > 1 && (target[1] == '/' || target[1] == '\\') {
		return false
	}
	u, err := url.Parse(target)
	return err == nil && u.Host == "" && u.Scheme == ""
}

func withBack(path, back string) string {
	if back == "" {
		return path
	}
	return path + "?" + url.Values{"back": {back}}.Encode()
}
