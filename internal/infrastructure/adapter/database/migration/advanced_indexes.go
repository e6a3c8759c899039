package migration

import (
	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
)

// AdvancedIndexManager manages PostgreSQL-specific indexes
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

type indexStatement struct {
	name string
	sql  string
}

var advancedIndexes = []indexStatement{
	{
		// plan lookups always filter by owner and group
		name: "idx_transactions_user_group",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_user_group
			ON transactions (user_id, installment_group_id, installment_number)
			WHERE installment_count > 1`,
	},
	{
		name: "idx_transactions_user_unpaid_expense",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_user_unpaid_expense
			ON transactions (user_id, date)
			WHERE is_paid = false AND type = 'expense'`,
	},
	{
		name: "idx_transactions_date_brin",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_date_brin
			ON transactions USING BRIN (date)
			WITH (pages_per_range = 32)`,
	},
}

// CreateAdvancedIndexes creates the partial and BRIN indexes used by the ledger views
func (m *AdvancedIndexManager) CreateAdvancedIndexes() error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	for _, idx := range advancedIndexes {
		if err := m.db.Exec(idx.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": idx.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", map[string]any{
		"count": len(advancedIndexes),
	})
	return nil
}

// CreatePerformanceTweaks applies PostgreSQL storage settings. Failures are logged only.
func (m *AdvancedIndexManager) CreatePerformanceTweaks() error {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	// paid flags flip in place often
	if err := m.db.Exec(`ALTER TABLE transactions SET (fillfactor = 90)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for transactions table", map[string]any{
			"error": err.Error(),
		})
	}
	if err := m.db.Exec(`ALTER TABLE transactions ALTER COLUMN user_id SET STATISTICS 1000`).Error; err != nil {
		m.logger.Warn("Failed to set statistics target for user_id", map[string]any{
			"error": err.Error(),
		})
	}

	return nil
}
