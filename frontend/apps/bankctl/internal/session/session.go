package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the part of the access token payload shown to the user.
type Claims struct {
	Subject   string
	UserID    string
	Role      string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that lies before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Session is the explicit client context handed to the request layer.
type Session struct {
	store Store
}

// New wraps a token store.
func New(store Store) *Session {
	return &Session{store: store}
}

// Token returns the stored token, ok=false when logged out.
func (s *Session) Token(ctx context.Context) (string, bool, error) {
	return s.store.Get(ctx)
}

// SetToken persists token after a successful login.
func (s *Session) SetToken(ctx context.Context, token string) error {
	return s.store.Set(ctx, token)
}

// Clear forgets the token.
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// LoggedIn reports token presence. Store errors count as logged out.
func (s *Session) LoggedIn(ctx context.Context) bool {
	_, ok, err := s.store.Get(ctx)
	return err == nil && ok
}

// Claims decodes the stored token without verifying its signature; the
// backend remains the only authority on validity.
func (s *Session) Claims(ctx context.Context) (Claims, bool, error) {
	token, ok, err := s.store.Get(ctx)
	if err != nil || !ok {
		return Claims{}, false, err
	}
	claims, err := ParseClaims(token)
	if err != nil {
		return Claims{}, true, err
	}
	return claims, true, nil
}

// ParseClaims reads sub/id/role/exp from a JWT.
func ParseClaims(token string) (Claims, error) {
	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mapClaims); err != nil {
		return Claims{}, fmt.Errorf("session: decode token: %w", err)
	}

	var claims Claims
	claims.Subject, _ = mapClaims.GetSubject()
	claims.Role = stringClaim(mapClaims["role"])
	claims.UserID = stringClaim(mapClaims["id"])

	exp, err := mapClaims.GetExpirationTime()
	if err != nil && !errors.Is(err, jwt.ErrInvalidType) {
		return Claims{}, fmt.Errorf("session: decode token: %w", err)
	}
	if exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

func stringClaim(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return fmt.Sprintf("%.0f", val)
	default:
		return ""
	}
}
