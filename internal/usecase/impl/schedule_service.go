package impl

import (
	"context"
	"log/slog"
	"time"

	"schedulemaker/config"
	deliverycontext "schedulemaker/internal/delivery/context"
	"schedulemaker/internal/domain/entity"
	domainerrors "schedulemaker/internal/domain/errors"
	"schedulemaker/internal/domain/repository"
	"schedulemaker/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// scheduleService implements the ScheduleUsecase interface.
type scheduleService struct {
	txManager    repository.TransactionManager
	scheduleRepo repository.ScheduleRepository
	maxSlots     int
	logger       *slog.Logger
}

// ScheduleServiceParams holds dependencies for scheduleService, injected by Fx.
type ScheduleServiceParams struct {
	fx.In

	Config       *config.Config
	TxManager    repository.TransactionManager
	ScheduleRepo repository.ScheduleRepository
	Logger       *slog.Logger
}

// NewScheduleService is the constructor for scheduleService.
func NewScheduleService(params ScheduleServiceParams) usecase.ScheduleUsecase {
	maxSlots := 0
	if params.Config.Schedule != nil {
		maxSlots = params.Config.Schedule.MaxSlotsPerUser
	}

	return &scheduleService{
		txManager:    params.TxManager,
		scheduleRepo: params.ScheduleRepo,
		maxSlots:     maxSlots,
		logger:       params.Logger,
	}
}

func (srv *scheduleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// validateSlotFields checks the day and time-range fields shared by create and
// update. Times are wall-clock "HH:mm" strings; a slot never crosses midnight.
func validateSlotFields(day entity.Weekday, startTime, endTime string) error {
	if !day.Valid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown weekday: " + string(day))
	}

	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("start time must be HH:mm")
	}
	end, err := time.Parse("15:04", endTime)
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("end time must be HH:mm")
	}
	if !start.Before(end) {
		return domainerrors.ErrValidationFailed.WrapMessage("start time must be before end time")
	}

	return nil
}

// ListSlots returns every slot on the account's schedule, ordered by weekday
// and start time.
func (srv *scheduleService) ListSlots(ctx context.Context, userID uuid.UUID) ([]*entity.TimeSlot, error) {
	slots, err := srv.scheduleRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list slots")
	}

	return slots, nil
}

// CreateSlot validates and stores a new slot. When the input carries no color,
// one is assigned from the default palette by rotation over the current slot
// count, so neighboring slots tend to get distinct colors.
func (srv *scheduleService) CreateSlot(ctx context.Context, input *usecase.CreateSlotInput) (*entity.TimeSlot, error) {
	day := entity.Weekday(input.Day)
	if err := validateSlotFields(day, input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	var created *entity.TimeSlot

	// Count and insert share a transaction so the per-account limit cannot be
	// overshot by concurrent creates.
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		scheduleRepo := repoFactory.ScheduleRepo()

		count, err := scheduleRepo.CountByUser(ctx, input.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to count slots")
		}
		if srv.maxSlots > 0 && count >= int64(srv.maxSlots) {
			return domainerrors.ErrScheduleLimitExceeded.WrapMessage("slot limit reached")
		}

		color := input.Color
		if color == "" {
			color = entity.SlotPalette[count%int64(len(entity.SlotPalette))]
		}

		slot := &entity.TimeSlot{
			UserID:      input.UserID,
			Day:         day,
			StartTime:   input.StartTime,
			EndTime:     input.EndTime,
			Title:       input.Title,
			Description: input.Description,
			Color:       color,
		}
		if err := scheduleRepo.Create(ctx, slot); err != nil {
			return errors.Wrap(err, "failed to create slot")
		}
		created = slot

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Slot creation failed", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute slot creation transaction")
	}

	srv.log(ctx).Debug("Slot created", slog.Any("slotID", created.ID))

	return created, nil
}

// UpdateSlot replaces the full state of an existing slot after checking that
// the caller owns it.
func (srv *scheduleService) UpdateSlot(ctx context.Context, input *usecase.UpdateSlotInput) (*entity.TimeSlot, error) {
	day := entity.Weekday(input.Day)
	if err := validateSlotFields(day, input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	slot, err := srv.scheduleRepo.FindByID(ctx, input.SlotID)
	if err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			return nil, domainerrors.ErrSlotNotFound.WrapMessage("slot not found")
		}

		return nil, errors.Wrap(err, "failed to look up slot")
	}
	if slot.UserID != input.UserID {
		srv.log(ctx).Warn("Slot ownership violation",
			slog.Any("slotID", input.SlotID), slog.Any("userID", input.UserID))

		return nil, domainerrors.ErrSlotOwnershipViolation.WrapMessage("slot belongs to another account")
	}

	slot.Day = day
	slot.StartTime = input.StartTime
	slot.EndTime = input.EndTime
	slot.Title = input.Title
	slot.Description = input.Description
	if input.Color != "" {
		slot.Color = input.Color
	}

	if err := srv.scheduleRepo.Update(ctx, slot); err != nil {
		return nil, errors.Wrap(err, "failed to update slot")
	}

	return slot, nil
}

// DeleteSlot removes a single slot after checking ownership.
func (srv *scheduleService) DeleteSlot(ctx context.Context, userID, slotID uuid.UUID) error {
	slot, err := srv.scheduleRepo.FindByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			return domainerrors.ErrSlotNotFound.WrapMessage("slot not found")
		}

		return errors.Wrap(err, "failed to look up slot")
	}
	if slot.UserID != userID {
		return domainerrors.ErrSlotOwnershipViolation.WrapMessage("slot belongs to another account")
	}

	if err := srv.scheduleRepo.Delete(ctx, slotID); err != nil {
		return errors.Wrap(err, "failed to delete slot")
	}

	srv.log(ctx).Debug("Slot deleted", slog.Any("slotID", slotID))

	return nil
}

// ClearSchedule removes every slot on the account's schedule and reports how
// many were deleted.
func (srv *scheduleService) ClearSchedule(ctx context.Context, userID uuid.UUID) (int64, error) {
	deleted, err := srv.scheduleRepo.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to clear schedule")
	}

	srv.log(ctx).Info("Schedule cleared", slog.Any("userID", userID), slog.Int64("deleted", deleted))

	return deleted, nil
}
