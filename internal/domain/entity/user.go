// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity record of the system: one account per email.
// PasswordHash stores the bcrypt digest of the login password and must never
// leave the service boundary.
type User struct {
	ID           uuid.UUID // The unique identifier for the account, assigned by the store at creation.
	Email        string    // The login identifier. Stored lower-cased; unique across all accounts.
	Name         string    // The account's display name. No uniqueness constraint.
	PasswordHash string    // bcrypt digest of the password. Never the plaintext, never returned to callers.
	IsActive     bool      // Gate for authentication; inactive accounts fail login. Defaults to true.
	CreatedAt    time.Time // Set once when the account is created, immutable thereafter.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
