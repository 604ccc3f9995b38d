package repository

import (
	"context"
	"errors"

	"schedulemaker/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSlotNotFound is returned when a time slot does not exist.
var ErrSlotNotFound = errors.New("time slot not found")

// ScheduleRepository defines the persistence operations for weekly time slots.
type ScheduleRepository interface {
	// ListByUser returns all slots owned by the given account, ordered by day
	// of week and start time.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.TimeSlot, error)

	// FindByID retrieves a single slot by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSlot, error)

	// CountByUser returns the number of slots owned by the given account.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// Create persists a new slot.
	Create(ctx context.Context, slot *entity.TimeSlot) error

	// Update modifies an existing slot.
	Update(ctx context.Context, slot *entity.TimeSlot) error

	// Delete removes a single slot.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUser removes every slot owned by the given account and reports
	// how many were removed.
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
