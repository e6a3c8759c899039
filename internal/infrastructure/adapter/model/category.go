package model

import (
	"time"
)

// Category represents the database model for user categories
type Category struct {
	ID          string    `gorm:"primaryKey;size:36"`
	UserID      string    `gorm:"not null;size:64;uniqueIndex:idx_categories_user_name_type,priority:1"`
	Name        string    `gorm:"not null;size:100;uniqueIndex:idx_categories_user_name_type,priority:2"`
	Description string    `gorm:"type:text"`
	Color       string    `gorm:"size:16"`
	Icon        string    `gorm:"size:16"`
	Type        string    `gorm:"not null;size:16;uniqueIndex:idx_categories_user_name_type,priority:3"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}
