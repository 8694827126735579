package domain

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "ROLE_ADMIN"

// Session is the sign-in payload returned by the backend, kept verbatim.
type Session struct {
	Token    string   `json:"token"`
	Type     string   `json:"type,omitempty"`
	ID       string   `json:"id,omitempty"`
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles"`
}

func (s *Session) HasRole(role string) bool {
	return s != nil && slices.Contains(s.Roles, role)
}

func (s *Session) IsAdmin() bool { return s.HasRole(RoleAdmin) }

// Expired reports whether the token is a JWT whose exp claim is before now.
// Opaque tokens and tokens without exp never expire client-side.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.Token == "" {
		return false
	}
	tok, _, err := jwt.NewParser().ParseUnverified(s.Token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := tok.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(now)
}
