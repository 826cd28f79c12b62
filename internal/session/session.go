// Package session keeps browser sessions and the API token each one holds.
package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"office-asset-web/internal/model"
)

// Session is one signed-in browser.
type Session struct {
	ID          uuid.UUID
	Username    string
	AccountType model.AccountType
	AccessToken string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// New builds a session for the given login. The session expires with the
// access token when the token carries an exp claim, and after ttl
// otherwise; whichever comes first.
func New(profile model.Profile, accessToken string, ttl time.Duration, now time.Time) Session {
	expires := now.Add(ttl)
	if exp, ok := TokenExpiry(accessToken); ok && exp.Before(expires) {
		expires = exp
	}
	return Session{
		ID:          uuid.New(),
		Username:    profile.Username,
		AccountType: profile.Type,
		AccessToken: accessToken,
		ExpiresAt:   expires,
		CreatedAt:   now,
	}
}

// Expired reports whether the session is no longer usable at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// IsAdmin reports whether the account may manage assets and users.
func (s Session) IsAdmin() bool {
	return s.AccountType == model.AccountAdmin
}

// Owner identifies one list in one browser tab of this session for
// request supersession.
func (s Session) Owner(list, tab string) string {
	return s.OwnerPrefix() + list + "|" + tab
}

// OwnerPrefix is shared by every owner of this session.
func (s Session) OwnerPrefix() string {
	return s.ID.String() + "|"
}

// TokenExpiry reads the exp claim of a JWT without verifying it. The API
// verifies the token; the console only needs to know when to stop using it.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

type ctxKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by WithSession.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
