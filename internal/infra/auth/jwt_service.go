// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"schedulemaker/config"
	"schedulemaker/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Tokens are signed with HS256; the subject claim carries the account's email.
type jwtService struct {
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time // injectable clock, defaults to time.Now
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := cfg.JWT.AccessTokenTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	return &jwtService{
		secret:    []byte(cfg.JWT.Secret),
		accessTTL: ttl,
		now:       time.Now,
	}, nil
}

// IssueToken creates a signed access token asserting the given subject.
func (s *jwtService) IssueToken(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("token subject must not be empty")
	}

	issuedAt := s.now()
	claims := service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// ValidateToken checks the validity of a token string and returns its claims.
// Signature, structure, expiry, and subject presence are all verified here;
// callers get an error for any failure mode, never a panic.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token structure")
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	// A valid signature alone is not enough: a token without a subject
	// asserts no identity and is rejected.
	if claims.Subject == "" {
		return nil, errors.New("token subject claim is missing")
	}

	return claims, nil
}

// AccessTokenDuration returns the configured duration for access tokens.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}
