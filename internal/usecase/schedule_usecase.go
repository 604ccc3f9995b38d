package usecase

import (
	"context"

	"schedulemaker/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateSlotInput defines the data required to add a slot to a schedule.
// Color is optional; the service assigns one from the default palette when empty.
type CreateSlotInput struct {
	UserID      uuid.UUID
	Day         string
	StartTime   string
	EndTime     string
	Title       string
	Description string
	Color       string
}

// UpdateSlotInput carries the full replacement state for an existing slot.
type UpdateSlotInput struct {
	UserID      uuid.UUID
	SlotID      uuid.UUID
	Day         string
	StartTime   string
	EndTime     string
	Title       string
	Description string
	Color       string
}

// ScheduleUsecase defines the interface for weekly-schedule operations.
// Every operation is scoped to the authenticated account; touching another
// account's slot fails with ErrSlotOwnershipViolation.
type ScheduleUsecase interface {
	ListSlots(ctx context.Context, userID uuid.UUID) ([]*entity.TimeSlot, error)
	CreateSlot(ctx context.Context, input *CreateSlotInput) (*entity.TimeSlot, error)
	UpdateSlot(ctx context.Context, input *UpdateSlotInput) (*entity.TimeSlot, error)
	DeleteSlot(ctx context.Context, userID, slotID uuid.UUID) error
	ClearSchedule(ctx context.Context, userID uuid.UUID) (int64, error)
}
