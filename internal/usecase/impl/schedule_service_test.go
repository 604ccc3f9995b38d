package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"schedulemaker/config"
	"schedulemaker/internal/domain/entity"
	domainerrors "schedulemaker/internal/domain/errors"
	"schedulemaker/internal/domain/repository"
	mockRepo "schedulemaker/internal/mocks/repository"
	"schedulemaker/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// scheduleServiceFixtures holds all test dependencies for schedule service tests.
type scheduleServiceFixtures struct {
	service      usecase.ScheduleUsecase
	txManager    *mockRepo.MockTransactionManager
	scheduleRepo *mockRepo.MockScheduleRepository
}

func createTestScheduleService(t *testing.T, maxSlots int) scheduleServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	scheduleRepo := mockRepo.NewMockScheduleRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Schedule: &config.ScheduleConfig{MaxSlotsPerUser: maxSlots},
	}

	service := NewScheduleService(ScheduleServiceParams{
		Config:       cfg,
		TxManager:    txManager,
		ScheduleRepo: scheduleRepo,
		Logger:       logger,
	})

	return scheduleServiceFixtures{
		service:      service,
		txManager:    txManager,
		scheduleRepo: scheduleRepo,
	}
}

func TestScheduleService_ListSlots_Success(t *testing.T) {
	fixtures := createTestScheduleService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	slots := []*entity.TimeSlot{
		{ID: uuid.New(), UserID: userID, Day: entity.WeekdayMonday, StartTime: "09:00", EndTime: "10:00"},
		{ID: uuid.New(), UserID: userID, Day: entity.WeekdayFriday, StartTime: "14:00", EndTime: "15:30"},
	}

	fixtures.scheduleRepo.EXPECT().ListByUser(ctx, userID).Return(slots, nil)

	got, err := fixtures.service.ListSlots(ctx, userID)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestScheduleService_CreateSlot_AssignsPaletteColor(t *testing.T) {
	fixtures := createTestScheduleService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.CreateSlotInput{
		UserID:    userID,
		Day:       "monday",
		StartTime: "09:00",
		EndTime:   "10:30",
		Title:     "Math",
	}

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockScheduleRepo := mockRepo.NewMockScheduleRepository(t)

			mockFactory.EXPECT().ScheduleRepo().Return(mockScheduleRepo)
			mockScheduleRepo.EXPECT().CountByUser(ctx, userID).Return(3, nil)
			mockScheduleRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.TimeSlot")).
				Run(func(ctx context.Context, slot *entity.TimeSlot) {
					slot.ID = uuid.New()
				}).
				Return(nil)

			return fn(mockFactory)
		})

	slot, err := fixtures.service.CreateSlot(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, entity.WeekdayMonday, slot.Day)
	assert.Equal(t, entity.SlotPalette[3], slot.Color)
}

func TestScheduleService_CreateSlot_KeepsExplicitColor(t *testing.T) {
	fixtures := createTestScheduleService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.CreateSlotInput{
		UserID:    userID,
		Day:       "tuesday",
		StartTime: "08:00",
		EndTime:   "09:00",
		Title:     "Gym",
		Color:     "#123456",
	}

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockScheduleRepo := mockRepo.NewMockScheduleRepository(t)

			mockFactory.EXPECT().ScheduleRepo().Return(mockScheduleRepo)
			mockScheduleRepo.EXPECT().CountByUser(ctx, userID).Return(0, nil)
			mockScheduleRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.TimeSlot")).
				Return(nil)

			return fn(mockFactory)
		})

	slot, err := fixtures.service.CreateSlot(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "#123456", slot.Color)
}

func TestScheduleService_CreateSlot_Validation(t *testing.T) {
	fixtures := createTestScheduleService(t, 0)
	ctx := context.Background()
	userID := uuid.New()

	cases := []struct {
		name  string
		input *usecase.CreateSlotInput
	}{
		{
			name:  "unknown weekday",
			input: &usecase.CreateSlotInput{UserID: userID, Day: "someday", StartTime: "09:00", EndTime: "10:00"},
		},
		{
			name:  "malformed start time",
			input: &usecase.CreateSlotInput{UserID: userID, Day: "monday", StartTime: "9am", EndTime: "10:00"},
		},
		{
			name:  "malformed end time",
			input: &usecase.CreateSlotInput{UserID: userID, Day: "monday", StartTime: "09:00", EndTime: "25:61"},
		},
		{
			name:  "start not before end",
			input: &usecase.CreateSlotInput{UserID: userID, Day: "monday", StartTime: "10:00", EndTime: "10:00"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slot, err := fixtures.service.CreateSlot(ctx, tc.input)

			assert.Nil(t, slot)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestScheduleService_CreateSlot_LimitExceeded(t *testing.T) {
	fixtures := createTestScheduleService(t, 2)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.CreateSlotInput{
		UserID:    userID,
		Day:       "wednesday",
		StartTime: "09:00",
		EndTime:   "10:00",
		Title:     "One too many",
	}

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockScheduleRepo := mockRepo.NewMockScheduleRepository(t)

			mockFactory.EXPECT().ScheduleRepo().Return(mockScheduleRepo)
			mockScheduleRepo.EXPECT().CountByUser(ctx, userID).Return(2, nil)

			return fn(mockFactory)
		})

	slot, err := fixtures.service.CreateSlot(ctx, input)

	assert.Nil(t, slot)
	assert.ErrorIs(t, err, domainerrors.ErrScheduleLimitExceeded)
}

func TestScheduleService_UpdateSlot_Success(t *testing.T) {
	fixtures := createTestScheduleService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	slotID := uuid.New()
	existing := &entity.TimeSlot{
		ID:        slotID,
		UserID:    userID,
		Day:       entity.WeekdayMonday,
		StartTime: "09:00",
		EndTime:   "10:00",
		Title:     "Math",
		Color:     "#3B82F6",
	}

	fixtures.scheduleRepo.EXPECT().FindByID(ctx, slotID).Return(existing, nil)
	fixtures.scheduleRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.TimeSlot")).Return(nil)

	slot, err := fixtures.service.UpdateSlot(ctx, &usecase.UpdateSlotInput{
		UserID:    userID,
		SlotID:    slotID,
		Day:       "tuesday",
		StartTime: "11:00",
		EndTime:   "12:00",
		Title:     "Physics",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.WeekdayTuesday, slot.Day)
	assert.Equal(t, "11:00", slot.StartTime)
	// An empty color on update keeps the existing one.
	assert.Equal(t, "#3B82F6", slot.Color)
}

func TestScheduleService_UpdateSlot_OwnershipViolation(t *testing.T) {
	fixtures := createTestScheduleService(t, 0)

	ctx := context.Background()
	slotID := uuid.New()
	owner := uuid.New()
	intruder := uuid.New()
	existing := &entity.TimeSlot{ID: slotID, UserID: owner, Day: entity.WeekdayMonday, StartTime: "09:00", EndTime: "10:00"}

	fixtures.scheduleRepo.EXPECT().FindByID(ctx, slotID).Return(existing, nil)

	slot, err := fixtures.service.UpdateSlot(ctx, &usecase.UpdateSlotInput{
		UserID:    intruder,
		SlotID:    slotID,
		Day:       "monday",
		StartTime: "09:00",
		EndTime:   "10:00",
	})

	assert.Nil(t, slot)
	assert.ErrorIs(t, err, domainerrors.ErrSlotOwnershipViolation)
}

func TestScheduleService_DeleteSlot_Success(t *testing.T) {
	fixtures := createTestScheduleService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	slotID := uuid.New()
	existing := &entity.TimeSlot{ID: slotID, UserID: userID}

	fixtures.scheduleRepo.EXPECT().FindByID(ctx, slotID).Return(existing, nil)
	fixtures.scheduleRepo.EXPECT().Delete(ctx, slotID).Return(nil)

	err := fixtures.service.DeleteSlot(ctx, userID, slotID)

	require.NoError(t, err)
}

func TestScheduleService_DeleteSlot_NotFound(t *testing.T) {
	fixtures := createTestScheduleService(t, 0)

	ctx := context.Background()
	slotID := uuid.New()

	fixtures.scheduleRepo.EXPECT().FindByID(ctx, slotID).Return(nil, repository.ErrSlotNotFound)

	err := fixtures.service.DeleteSlot(ctx, uuid.New(), slotID)

	assert.ErrorIs(t, err, domainerrors.ErrSlotNotFound)
}

func TestScheduleService_ClearSchedule(t *testing.T) {
	fixtures := createTestScheduleService(t, 0)

	ctx := context.Background()
	userID := uuid.New()

	fixtures.scheduleRepo.EXPECT().DeleteByUser(ctx, userID).Return(4, nil)

	deleted, err := fixtures.service.ClearSchedule(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
}
