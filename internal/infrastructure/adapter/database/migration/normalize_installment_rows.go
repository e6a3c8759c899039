package migration

import (
	"context"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
)

// NormalizeInstallmentRows rewrites plan members imported from the old dashboard:
// it strips the "(n/N)" suffix that used to be stored inside the description and
// backfills the plan total when it was never recorded
type NormalizeInstallmentRows struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewNormalizeInstallmentRows creates a new migration instance
func NewNormalizeInstallmentRows(db *gorm.DB, logger coreport.Logger) *NormalizeInstallmentRows {
	return &NormalizeInstallmentRows{
		db:     db,
		logger: logger,
	}
}

// Run executes the migration
func (m *NormalizeInstallmentRows) Run(ctx context.Context) error {
	m.logger.Info("Normalizing stored installment rows", nil)

	stripped := m.db.WithContext(ctx).Exec(`
		UPDATE transactions
		SET description = btrim(regexp_replace(description, '\s*\(\d+/\d+\)$', ''))
		WHERE installment_count > 1 AND description ~ '\(\d+/\d+\)$'
	`)
	if stripped.Error != nil {
		m.logger.Error("Failed to strip installment suffixes", map[string]any{"error": stripped.Error.Error()})
		return stripped.Error
	}

	totals := m.db.WithContext(ctx).Exec(`
		UPDATE transactions
		SET installment_total_cents = amount_cents * installment_count
		WHERE installment_count > 1 AND installment_total_cents = 0
	`)
	if totals.Error != nil {
		m.logger.Error("Failed to backfill plan totals", map[string]any{"error": totals.Error.Error()})
		return totals.Error
	}

	m.logger.Info("Installment rows normalized", map[string]any{
		"descriptions_stripped": stripped.RowsAffected,
		"totals_backfilled":     totals.RowsAffected,
	})
	return nil
}
