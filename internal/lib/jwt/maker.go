// Package jwt implements generation and parsing of the signed session tokens
// carried in the "session" cookie.
//
// Maker is the interface handlers and middleware depend on; MakerImpl is the
// HS256 implementation backed by a shared secret and a token TTL.
package jwt

import (
	"time"
)

// Maker describes generation and parsing of session tokens.
type Maker interface {
	// GenerateToken issues a token carrying the user's uid, email and role.
	GenerateToken(uid, email, role string) (string, error)
	// ParseToken validates a token and returns its claims.
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl implements Maker using a secret key and a token lifetime.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker creates a MakerImpl from the signing secret and TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
