package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pettrack/console/model"
)

// TokenClaims is the claim set carried by platform access tokens.
type TokenClaims struct {
	jwt.RegisteredClaims
	UID      string `json:"uid,omitempty"`
	UserRole string `json:"role,omitempty"`
}

// UserID returns the user ID
func (c *TokenClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// Role returns the global role
func (c *TokenClaims) Role() string {
	return c.UserRole
}

// HasRole checks if the claims carry a specific role
func (c *TokenClaims) HasRole(role string) bool {
	return c.UserRole == role
}

// IsAtLeast checks if the claims' role is at least the minimum required role
func (c *TokenClaims) IsAtLeast(minRole string) bool {
	return model.RoleIsAtLeast(c.UserRole, minRole)
}

// Expires returns the expiration time, or the zero time when the
// token carries no exp claim
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// DecodeClaims extracts the claims from a compact token string without
// verifying its signature. This is a local optimization to spot
// obviously expired tokens without a round trip; the platform API
// remains the sole authority on token validity. Do not turn this into
// cryptographic verification: the console holds no key.
func DecodeClaims(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, ErrTokenUndecodable
	}

	return claims, nil
}

// IsExpired reports whether the token's exp claim is in the past.
// Tokens that cannot be decoded count as expired (fail closed); tokens
// without an exp claim never expire locally and are left for the
// platform API to reject.
func IsExpired(token string) bool {
	claims, err := DecodeClaims(token)
	if err != nil {
		return true
	}

	exp := claims.Expires()
	if exp.IsZero() {
		return false
	}

	return exp.Before(time.Now())
}
