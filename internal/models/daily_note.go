package models

import (
	"time"

	"gorm.io/datatypes"
)

// DailyNote is the single free-text note kept for a calendar day.
type DailyNote struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Date      datatypes.Date `gorm:"uniqueIndex;not null" json:"date"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `gorm:"<-:create" json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
