package model

import (
	"time"

	"github.com/google/uuid"
)

// TimeSlotModel mirrors the 'time_slots' table. UserID references users.id (UUID).
type TimeSlotModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Day         string    `gorm:"type:varchar(16);not null"`
	StartTime   string    `gorm:"type:varchar(5);not null"`
	EndTime     string    `gorm:"type:varchar(5);not null"`
	Title       string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	Color       string    `gorm:"type:varchar(7);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (TimeSlotModel) TableName() string {
	return "time_slots"
}
