package model

import (
	"time"
)

// Transaction represents the database model for ledger records. Installment
// members share InstallmentGroupID; standalone records leave the plan columns zero.
type Transaction struct {
	ID                    string    `gorm:"primaryKey;size:36"`
	UserID                string    `gorm:"not null;size:64;index:idx_transactions_user_date,priority:1"`
	Description           string    `gorm:"not null;size:255"`
	AmountCents           int64     `gorm:"not null"`
	Type                  string    `gorm:"not null;size:16"`
	Category              string    `gorm:"size:100"`
	Date                  time.Time `gorm:"not null;index:idx_transactions_user_date,priority:2"`
	PaymentMethod         string    `gorm:"size:16"`
	Notes                 string    `gorm:"type:text"`
	IsPaid                bool      `gorm:"not null;default:false"`
	InstallmentGroupID    string    `gorm:"size:255;index"`
	InstallmentNumber     int       `gorm:"not null;default:0"`
	InstallmentCount      int       `gorm:"not null;default:0"`
	InstallmentTotalCents int64     `gorm:"not null;default:0"`
	CreatedAt             time.Time `gorm:"not null"`
	UpdatedAt             time.Time `gorm:"not null"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
