package handler

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"office-asset-web/internal/fetch"
	"office-asset-web/internal/model"
	"office-asset-web/internal/session"
	"office-asset-web/internal/view"
)

// fixture bundles a Handler with the mocks behind it.
type fixture struct {
	h           *Handler
	auth        *MockAuthAPI
	assets      *MockAssetAPI
	users       *MockUserAPI
	assignments *MockAssignmentAPI
	returning   *MockReturningAPI
	sessions    *MockSessionStore
	vault       *MockVault
	admin       *session.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	renderer, err := view.New(logger)
	require.NoError(t, err)

	f := &fixture{
		auth:        &MockAuthAPI{},
		assets:      &MockAssetAPI{},
		users:       &MockUserAPI{},
		assignments: &MockAssignmentAPI{},
		returning:   &MockReturningAPI{},
		sessions:    &MockSessionStore{},
		vault:       &MockVault{},
		admin: &session.Session{
			ID:          uuid.New(),
			Username:    "binhnv",
			AccountType: model.AccountAdmin,
			AccessToken: "token",
			ExpiresAt:   time.Now().Add(time.Hour),
		},
	}
	f.h = New(Dependencies{
		Auth:        f.auth,
		Assets:      f.assets,
		Users:       f.users,
		Assignments: f.assignments,
		Returning:   f.returning,
		Sessions:    f.sessions,
		Vault:       f.vault,
		Fetch:       fetch.NewGroup(),
		View:        renderer,
		Logger:      logger,
		Options:     Options{PageSize: 20},
	})
	return f
}

type requestOption func(*http.Request) *http.Request

func htmx(target string) requestOption {
	return func(r *http.Request) *http.Request {
		r.Header.Set(hxRequest, "true")
		r.Header.Set(hxTarget, target)
		return r
	}
}

func tab(id string) requestOption {
	return func(r *http.Request) *http.Request {
		r.Header.Set(hxTabID, id)
		return r
	}
}

func vars(v map[string]string) requestOption {
	return func(r *http.Request) *http.Request {
		return mux.SetURLVars(r, v)
	}
}

func anonymous() requestOption {
	return func(r *http.Request) *http.Request {
		return r.WithContext(session.WithSession(r.Context(), nil))
	}
}

// do serves one request as the admin session.
func (f *fixture) do(handler http.HandlerFunc, method, target string, form url.Values, opts ...requestOption) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req = req.WithContext(session.WithSession(req.Context(), f.admin))
	for _, opt := range opts {
		req = opt(req)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func countOf(body *bytes.Buffer, s string) int {
	return strings.Count(body.String(), s)
}
