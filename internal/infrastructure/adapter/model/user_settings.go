package model

import (
	"time"
)

// UserSettings represents the database model for per user settings
type UserSettings struct {
	UserID           string    `gorm:"primaryKey;size:64"`
	MonthlyGoalCents int64     `gorm:"not null"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName specifies the table name for UserSettings
func (UserSettings) TableName() string {
	return "user_settings"
}
