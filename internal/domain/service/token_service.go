package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims carried by access tokens.
// Subject (the account's email) rides in the registered "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating bearer tokens.
// Expiry is embedded in the signed payload, so a verifier holding only the
// secret can fully validate a token without any store lookup.
type TokenService interface {
	// IssueToken creates a signed token asserting the given subject, expiring
	// after the configured TTL.
	IssueToken(subject string) (string, error)

	// ValidateToken checks signature integrity and expiry and returns the
	// decoded claims. Any failure (bad signature, malformed structure, missing
	// subject, expired) yields an error, never a panic.
	ValidateToken(tokenString string) (*Claims, error)

	// AccessTokenDuration returns the configured token time-to-live.
	AccessTokenDuration() time.Duration
}
