// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenTypeBearer is the token type reported alongside every issued token.
const TokenTypeBearer = "bearer"

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AccountView is the caller-facing projection of an account.
// It deliberately carries no password hash.
type AccountView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Token pairs an issued bearer token with its type.
type Token struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

// AuthOutput is returned by both Register and Login: the account plus a fresh token.
type AuthOutput struct {
	Account *AccountView `json:"account"`
	Token   *Token       `json:"token"`
}

// UserUsecase defines the interface for the session service: registration,
// credential authentication, and token-based identity lookup.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register creates a new account and returns it with a fresh token.
	// Fails with ErrAlreadyRegistered when the email is taken.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login authenticates credentials and returns the account with a fresh
	// token. Unknown email and wrong password fail identically with
	// ErrInvalidCredentials.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// WhoAmI resolves a bearer token to its account view. Any token failure
	// or missing account fails with ErrUnauthenticated.
	WhoAmI(ctx context.Context, tokenString string) (*AccountView, error)

	// Logout acknowledges a client-side token disposal. Tokens are stateless,
	// so there is nothing to invalidate server-side.
	Logout(ctx context.Context) error
}
