// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"schedulemaker/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when an account is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for account persistence.
// The application layer will depend on this interface, not the concrete implementation.
// Accounts are only created here; this core has no update or delete operation.
type UserRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single account by its (normalized) email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new account. The store enforces email uniqueness with a
	// unique index; a violation surfaces as the domain ErrAlreadyRegistered so
	// that concurrent creations of the same email cannot both succeed.
	Create(ctx context.Context, user *entity.User) error
}
