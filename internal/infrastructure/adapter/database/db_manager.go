package database

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/repository"
)

// Manager manages database connections
type Manager struct {
	config            *Config
	db                *gorm.DB
	logger            coreport.Logger
	timeProvider      coreport.TimeProvider
	poolMonitor       *PoolMonitor
}

// NewManager creates a new database manager
func NewManager(config *Config, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return &Manager{
		config:       config,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Connect opens the connection pool, retrying while the server is unreachable
func (m *Manager) Connect(ctx context.Context) (*gorm.DB, error) {
	if err := m.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	m.logger.Info("Connecting to database", map[string]any{
		"driver": m.config.Driver,
		"host":   m.config.Host,
		"port":   m.config.Port,
		"name":   m.config.Database,
	})

	var gormDB *gorm.DB
	retry := repository.RetryConfig{
		MaxRetries:    m.config.RetryAttempts,
		RetryInterval: m.config.RetryDelay,
		MaxInterval:   4 * m.config.RetryDelay,
		JitterFactor:  0.2,
	}
	err := repository.RetryOnTransientError(ctx, retry, func() error {
		db, err := gorm.Open(postgres.Open(m.config.DSN()), &gorm.Config{
			Logger:      NewDatabaseLogger(m.logger, m.timeProvider, m.config.LogLevel, m.config.SlowThreshold),
			NowFunc:     m.timeProvider.Now,
			PrepareStmt: true,
		})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return err
		}
		gormDB = db
		return nil
	}, repository.NewErrorClassifier(), m.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", max(m.config.RetryAttempts, 1), err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	m.logger.Info("Successfully connected to database", map[string]any{
		"driver":          m.config.Driver,
		"host":            m.config.Host,
		"name":            m.config.Database,
		"max_open_conns":  m.config.MaxOpenConns,
		"max_idle_conns":  m.config.MaxIdleConns,
		"query_timeout_s": m.config.QueryTimeout.Seconds(),
	})

	m.db = gormDB
	m.poolMonitor = NewPoolMonitor(func() (sql.DBStats, error) { return sqlDB.Stats(), nil }, m.logger, m.timeProvider)
	if err := m.poolMonitor.Start(defaultMonitorInterval); err != nil {
		m.logger.Warn("Failed to start connection pool monitoring", map[string]any{"error": err.Error()})
	}
	return m.db, nil
}

// Migrate brings the schema up to date
func (m *Manager) Migrate(ctx context.Context) error {
	return migration.NewMigrationManager(m.db, m.logger, m.timeProvider).MigrateAll(ctx)
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Ping checks that the database answers within the query timeout
func (m *Manager) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := m.WithTimeout(ctx)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (m *Manager) Close() error {
	m.logger.Info("Closing database connection", nil)

	if m.poolMonitor != nil {
		m.poolMonitor.Stop()
	}
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

// PoolUsage returns the last connection pool reading, zero before Connect
func (m *Manager) PoolUsage() PoolUsage {
	if m.poolMonitor == nil {
		return PoolUsage{}
	}
	return m.poolMonitor.Latest()
}

// PoolSaturated reports whether the last reading found most connections busy
func (m *Manager) PoolSaturated() bool {
	return m.PoolUsage().Saturated()
}

// WithTimeout returns a context with timeout for database operations
func (m *Manager) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.config.QueryTimeout)
}

// CreateUnitOfWork creates a new UnitOfWork instance
func (m *Manager) CreateUnitOfWork() persistence.UnitOfWork {
	return NewUnitOfWork(m.db, m.logger, m.timeProvider)
}

// TransactionRepository returns the ledger repository outside any transaction
func (m *Manager) TransactionRepository() *repository.TransactionRepository {
	return repository.NewTransactionRepository(m.db, m.timeProvider, m.logger)
}

// CategoryRepository returns the category repository outside any transaction
func (m *Manager) CategoryRepository() *repository.CategoryRepository {
	return repository.NewCategoryRepository(m.db, m.logger)
}

// SettingsRepository returns the settings repository
func (m *Manager) SettingsRepository() *repository.SettingsRepository {
	return repository.NewSettingsRepository(m.db, m.logger)
}
