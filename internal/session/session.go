// Package session carries the signed-in user's identity to the list pages.
//
// A Session is built once at startup from the configured bearer token and
// passed explicitly to every page; nothing reads it from global state. The
// token's claims are read without verifying the signature: the backend
// verifies every request, the client only needs the owner keys, role and
// expiry.
package session

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/five82/tally/internal/backoffice"
)

// ErrNoToken is returned when no bearer token is configured.
var ErrNoToken = errors.New("no api token configured")

// ErrExpired is returned when the token's exp claim has passed.
var ErrExpired = errors.New("api token expired")

// Session is the explicit replacement for ambient user/org/token state.
type Session struct {
	UserID         string
	OrganizationID string
	Role           string
	Token          string
	ExpiresAt      time.Time // zero when the token carries no exp claim
}

// Claims is the token payload issued by the backend.
type Claims struct {
	UserID         string `json:"userId"`
	OrganizationID string `json:"organizationId"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// FromToken reads the session claims from a bearer token.
func FromToken(token string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, ErrNoToken
	}
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Session{}, fmt.Errorf("parse token: %w", err)
	}

	s := Session{
		UserID:         strings.TrimSpace(claims.UserID),
		OrganizationID: strings.TrimSpace(claims.OrganizationID),
		Role:           strings.ToLower(strings.TrimSpace(claims.Role)),
		Token:          token,
	}
	if s.UserID == "" {
		s.UserID = strings.TrimSpace(claims.Subject)
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	if s.UserID == "" && s.OrganizationID == "" {
		return Session{}, fmt.Errorf("parse token: no user or organization claim")
	}
	return s, nil
}

// Owner returns the owner key for a collection scope.
func (s Session) Owner(scope backoffice.Scope) string {
	if scope == backoffice.ScopeUser {
		return s.UserID
	}
	return s.OrganizationID
}

// Expired reports whether the token has expired at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// ExpiresSoon reports whether the token expires within window of now.
func (s Session) ExpiresSoon(now time.Time, window time.Duration) bool {
	return !s.ExpiresAt.IsZero() && !s.Expired(now) && s.ExpiresAt.Sub(now) <= window
}

// CanDelete reports whether the session role may delete records of res.
func (s Session) CanDelete(res backoffice.Resource) bool {
	if len(res.DeleteRoles) == 0 {
		return true
	}
	return slices.Contains(res.DeleteRoles, s.Role)
}

// Validate returns ErrExpired when the token is no longer usable.
func (s Session) Validate(now time.Time) error {
	if s.Expired(now) {
		return fmt.Errorf("%w at %s", ErrExpired, s.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}
