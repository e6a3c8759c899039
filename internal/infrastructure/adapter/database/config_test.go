package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/config"
)

func validConfig() *Config {
	return &Config{
		Driver:        "postgres",
		Host:          "localhost",
		Port:          5432,
		Username:      "ledger",
		Password:      "secret",
		Database:      "finance",
		SSLMode:       "disable",
		MaxOpenConns:  10,
		MaxIdleConns:  5,
		QueryTimeout:  5 * time.Second,
		LogLevel:      "info",
		RetryAttempts: 3,
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"Unsupported driver", func(c *Config) { c.Driver = "mysql" }},
		{"Missing host", func(c *Config) { c.Host = "" }},
		{"Port out of range", func(c *Config) { c.Port = 70000 }},
		{"Missing username", func(c *Config) { c.Username = "" }},
		{"Missing database", func(c *Config) { c.Database = "" }},
		{"Unknown SSL mode", func(c *Config) { c.SSLMode = "sometimes" }},
		{"No open connections", func(c *Config) { c.MaxOpenConns = 0 }},
		{"No idle connections", func(c *Config) { c.MaxIdleConns = 0 }},
		{"No query timeout", func(c *Config) { c.QueryTimeout = 0 }},
		{"Negative retries", func(c *Config) { c.RetryAttempts = -1 }},
		{"Unknown log level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.modify(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"host=localhost port=5432 user=ledger password=secret dbname=finance sslmode=disable",
		validConfig().DSN())
}

func TestParsePort(t *testing.T) {
	assert.Equal(t, 5432, ParsePort("5432"))
	assert.Zero(t, ParsePort(""))
	assert.Zero(t, ParsePort("postgres"))
	assert.Zero(t, ParsePort("0"))
	assert.Zero(t, ParsePort("65536"))
}

func TestConfigFromAppConfig(t *testing.T) {
	for _, key := range []string{
		"FD_DB_HOST", "FD_DB_PORT", "FD_DB_USERNAME", "FD_DB_PASSWORD", "FD_DB_NAME",
		"FD_DB_MAX_IDLE_CONNS", "FD_DB_QUERY_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
	}

	c := ConfigFromAppConfig(&config.Config{
		Database: config.DatabaseConfig{
			Host:         "db.internal",
			Port:         "6543",
			Username:     "ledger",
			Database:     "finance",
			SSLMode:      "require",
			MaxOpenConns: 40,
			QueryTimeout: 3 * time.Second,
		},
		Logger: config.LoggerConfig{Level: "warn"},
	})

	assert.Equal(t, "db.internal", c.Host)
	assert.Equal(t, 6543, c.Port)
	assert.Equal(t, "ledger", c.Username)
	assert.Equal(t, "require", c.SSLMode)
	assert.Equal(t, 40, c.MaxOpenConns)
	assert.Equal(t, 10, c.MaxIdleConns)
	assert.Equal(t, 3*time.Second, c.QueryTimeout)
	assert.Equal(t, "warn", c.LogLevel)

	t.Setenv("FD_DB_HOST", "from-env")
	assert.Equal(t, "from-env", ConfigFromAppConfig(&config.Config{
		Database: config.DatabaseConfig{Host: "db.internal"},
	}).Host)
}
