package database

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	timeprovider "github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/time"
)

// TestDBManager provides utilities for tests that need a real PostgreSQL server.
// Tests are skipped unless FD_TEST_DB_HOST is set.
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager connects to the test database and migrates it to the current schema
func NewTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	host := os.Getenv("FD_TEST_DB_HOST")
	if host == "" {
		t.Skip("FD_TEST_DB_HOST not set, skipping PostgreSQL test")
	}

	timeProvider := timeprovider.NewRealTimeProvider()
	config := &Config{
		Driver:          "postgres",
		Host:            host,
		Port:            getEnvIntOrDefault("FD_TEST_DB_PORT", 5432),
		Username:        getEnvOrDefault("FD_TEST_DB_USERNAME", "postgres"),
		Password:        getEnvOrDefault("FD_TEST_DB_PASSWORD", "postgres"),
		Database:        getEnvOrDefault("FD_TEST_DB_NAME", "finance_dashboard_test"),
		SSLMode:         getEnvOrDefault("FD_TEST_DB_SSL_MODE", "disable"),
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		QueryTimeout:    5 * time.Second,
		LogLevel:        "silent",
		RetryAttempts:   1,
		RetryDelay:      time.Second,
	}

	manager := NewManager(config, logger, timeProvider)
	if _, err := manager.Connect(context.Background()); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		if err := manager.Close(); err != nil {
			t.Logf("Warning: Failed to close test database connection: %v", err)
		}
	})

	m := &TestDBManager{
		Manager:      manager,
		Config:       config,
		Logger:       logger,
		TimeProvider: timeProvider,
	}
	m.ResetSchema(t)
	return m
}

// ResetSchema drops every table and runs the migrations again
func (m *TestDBManager) ResetSchema(t *testing.T) {
	t.Helper()

	err := m.Manager.DB().Exec(`
		DO $$ DECLARE
			r RECORD;
		BEGIN
			FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = current_schema()) LOOP
				EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
			END LOOP;
		END $$;
	`).Error
	if err != nil {
		t.Fatalf("Failed to drop tables: %v", err)
	}
	if err := m.Manager.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
