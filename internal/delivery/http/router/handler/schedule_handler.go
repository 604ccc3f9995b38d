package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "schedulemaker/internal/delivery/context"
	"schedulemaker/internal/delivery/http/response"
	"schedulemaker/internal/domain/entity"
	domainerrors "schedulemaker/internal/domain/errors"
	"schedulemaker/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ScheduleHandler holds dependencies for weekly-schedule handlers.
type ScheduleHandler struct {
	uc     usecase.ScheduleUsecase
	logger *slog.Logger
}

// NewScheduleHandler is the constructor for ScheduleHandler, injected by Fx.
func NewScheduleHandler(uc usecase.ScheduleUsecase, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		uc:     uc,
		logger: logger,
	}
}

// slotRequest is the wire format for creating or replacing a slot.
type slotRequest struct {
	Day         string `json:"day" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

// slotResponse is the caller-facing projection of a time slot.
type slotResponse struct {
	ID          uuid.UUID `json:"id"`
	Day         string    `json:"day"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
}

func toSlotResponse(slot *entity.TimeSlot) slotResponse {
	return slotResponse{
		ID:          slot.ID,
		Day:         string(slot.Day),
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Title:       slot.Title,
		Description: slot.Description,
		Color:       slot.Color,
	}
}

// accountID pulls the authenticated account's ID set by the auth middleware.
func accountID(c echo.Context) (uuid.UUID, error) {
	id, ok := deliverycontext.GetAccountID(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthenticated.WrapMessage("missing authenticated account")
	}

	return id, nil
}

// ListSlots returns the caller's full weekly schedule.
func (h *ScheduleHandler) ListSlots(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}

	slots, err := h.uc.ListSlots(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]slotResponse, 0, len(slots))
	for _, slot := range slots {
		views = append(views, toSlotResponse(slot))
	}

	return response.Success(c, http.StatusOK, views, "Schedule retrieved successfully")
}

// CreateSlot adds a slot to the caller's schedule.
func (h *ScheduleHandler) CreateSlot(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}

	var req slotRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid slot input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	slot, err := h.uc.CreateSlot(c.Request().Context(), &usecase.CreateSlotInput{
		UserID:      userID,
		Day:         req.Day,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toSlotResponse(slot), "Slot created successfully")
}

// UpdateSlot replaces an existing slot on the caller's schedule.
func (h *ScheduleHandler) UpdateSlot(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}

	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("slot id must be a UUID")
	}

	var req slotRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid slot input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	slot, err := h.uc.UpdateSlot(c.Request().Context(), &usecase.UpdateSlotInput{
		UserID:      userID,
		SlotID:      slotID,
		Day:         req.Day,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSlotResponse(slot), "Slot updated successfully")
}

// DeleteSlot removes a single slot from the caller's schedule.
func (h *ScheduleHandler) DeleteSlot(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}

	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("slot id must be a UUID")
	}

	if err := h.uc.DeleteSlot(c.Request().Context(), userID, slotID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Slot deleted"}, "Slot deleted successfully")
}

// ClearSchedule removes every slot from the caller's schedule.
func (h *ScheduleHandler) ClearSchedule(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}

	deleted, err := h.uc.ClearSchedule(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"deleted": deleted}, "Schedule cleared successfully")
}
