package postgres

import (
	"context"

	"schedulemaker/internal/domain/entity"
	domainerrors "schedulemaker/internal/domain/errors"
	"schedulemaker/internal/domain/repository"
	"schedulemaker/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// scheduleRepository implements the domain.ScheduleRepository interface using GORM.
type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository is the constructor for scheduleRepository.
func NewScheduleRepository(db *gorm.DB) repository.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// ListByUser returns all slots owned by the given account, ordered by day of
// week (Monday first) and start time.
func (repo *scheduleRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.TimeSlot, error) {
	var slotMs []model.TimeSlotModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("array_position(ARRAY['monday','tuesday','wednesday','thursday','friday','saturday','sunday'], day), start_time").
		Find(&slotMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list time slots")
	}

	slots := make([]*entity.TimeSlot, 0, len(slotMs))
	for i := range slotMs {
		slots = append(slots, toTimeSlotDomain(&slotMs[i]))
	}

	return slots, nil
}

// FindByID retrieves a single slot by its unique ID.
func (repo *scheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSlot, error) {
	var slotM model.TimeSlotModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&slotM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSlotNotFound
		}

		return nil, errors.Wrap(err, "failed to find time slot by id")
	}

	return toTimeSlotDomain(&slotM), nil
}

// CountByUser returns the number of slots owned by the given account.
func (repo *scheduleRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.TimeSlotModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count time slots")
	}

	return count, nil
}

// Create persists a new slot.
func (repo *scheduleRepository) Create(ctx context.Context, slot *entity.TimeSlot) error {
	slotM := fromTimeSlotDomain(slot)

	if err := repo.db.WithContext(ctx).Create(slotM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrSlotOwnershipViolation.WrapMessage("invalid account reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required slot information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create time slot")
	}

	slot.ID = slotM.ID
	slot.CreatedAt = slotM.CreatedAt
	slot.UpdatedAt = slotM.UpdatedAt

	return nil
}

// Update modifies an existing slot.
func (repo *scheduleRepository) Update(ctx context.Context, slot *entity.TimeSlot) error {
	slotM := fromTimeSlotDomain(slot)

	result := repo.db.WithContext(ctx).
		Model(&model.TimeSlotModel{}).
		Where("id = ?", slot.ID).
		Updates(map[string]any{
			"day":         slotM.Day,
			"start_time":  slotM.StartTime,
			"end_time":    slotM.EndTime,
			"title":       slotM.Title,
			"description": slotM.Description,
			"color":       slotM.Color,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update time slot")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSlotNotFound
	}

	return nil
}

// Delete removes a single slot.
func (repo *scheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TimeSlotModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete time slot")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSlotNotFound
	}

	return nil
}

// DeleteByUser removes every slot owned by the given account.
func (repo *scheduleRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.TimeSlotModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to clear schedule")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

// toTimeSlotDomain converts a GORM TimeSlotModel to a domain TimeSlot entity.
func toTimeSlotDomain(data *model.TimeSlotModel) *entity.TimeSlot {
	if data == nil {
		return nil
	}

	return &entity.TimeSlot{
		ID:          data.ID,
		UserID:      data.UserID,
		Day:         entity.Weekday(data.Day),
		StartTime:   data.StartTime,
		EndTime:     data.EndTime,
		Title:       data.Title,
		Description: data.Description,
		Color:       data.Color,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromTimeSlotDomain converts a domain TimeSlot entity to a GORM TimeSlotModel.
func fromTimeSlotDomain(data *entity.TimeSlot) *model.TimeSlotModel {
	if data == nil {
		return nil
	}

	return &model.TimeSlotModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Day:         string(data.Day),
		StartTime:   data.StartTime,
		EndTime:     data.EndTime,
		Title:       data.Title,
		Description: data.Description,
		Color:       data.Color,
	}
}
