package entity

import (
	"time"

	"github.com/google/uuid"
)

// Weekday identifies the day of the week a time slot occupies.
type Weekday string

const (
	WeekdayMonday    Weekday = "monday"
	WeekdayTuesday   Weekday = "tuesday"
	WeekdayWednesday Weekday = "wednesday"
	WeekdayThursday  Weekday = "thursday"
	WeekdayFriday    Weekday = "friday"
	WeekdaySaturday  Weekday = "saturday"
	WeekdaySunday    Weekday = "sunday"
)

// Weekdays lists all valid weekday values in calendar order.
var Weekdays = []Weekday{
	WeekdayMonday,
	WeekdayTuesday,
	WeekdayWednesday,
	WeekdayThursday,
	WeekdayFriday,
	WeekdaySaturday,
	WeekdaySunday,
}

// Valid reports whether w is one of the seven known weekday values.
func (w Weekday) Valid() bool {
	for _, day := range Weekdays {
		if w == day {
			return true
		}
	}

	return false
}

// TimeSlot is a single entry on an account's weekly schedule.
// StartTime and EndTime are wall-clock values in "HH:mm" format; a slot never
// crosses midnight, so StartTime < EndTime always holds.
type TimeSlot struct {
	ID          uuid.UUID // The unique identifier for this slot.
	UserID      uuid.UUID // The account that owns this slot.
	Day         Weekday   // Day of the week the slot occupies.
	StartTime   string    // Inclusive start, "HH:mm".
	EndTime     string    // Exclusive end, "HH:mm".
	Title       string    // Short label shown on the schedule grid.
	Description string    // Optional free-form notes.
	Color       string    // Display color as a "#RRGGBB" hex string.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SlotPalette is the default color rotation assigned to slots created without
// an explicit color.
var SlotPalette = []string{
	"#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#84CC16", "#F97316", "#EC4899", "#6366F1",
}
