package model

import (
	"time"
)

// MigrationVersion is one applied step of the ledger schema. Rows are append-only;
// the latest AppliedAt is the current schema version.
type MigrationVersion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Version   string    `gorm:"type:varchar(20);not null;index"`
	AppliedAt time.Time `gorm:"not null;index"`
	Details   string    `gorm:"type:text"`
}

// TableName specifies the table name for the migration version model
func (MigrationVersion) TableName() string {
	return "ledger_schema_versions"
}
