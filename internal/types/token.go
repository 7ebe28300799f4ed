package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a session token. RegisteredClaims.ID
// carries the session id used for revocation.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// SessionID returns the token's jti
func (c *TokenClaims) SessionID() string {
	return c.ID
}

// Session is the authenticated identity attached to a request
type Session struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	SessionID string `json:"-"`
}

// SessionFromClaims builds the request session from validated claims
func SessionFromClaims(c *TokenClaims) *Session {
	return &Session{
		UserID:    c.UserID,
		Email:     c.Email,
		Role:      c.Role,
		SessionID: c.ID,
	}
}
