package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	mcore "github.com/amirhossein-jamali/finance-dashboard/mocks/port/core"
)

func TestExtractQueryType(t *testing.T) {
	assert.Equal(t, "SELECT", extractQueryType(`  select * from "transactions"`))
	assert.Equal(t, "INSERT", extractQueryType(`INSERT INTO "categories" ("id") VALUES ($1)`))
	assert.Equal(t, "", extractQueryType("BEGIN"))
}

func TestExtractTableName(t *testing.T) {
	assert.Equal(t, "TRANSACTIONS", extractTableName(`SELECT * FROM "transactions" WHERE user_id = $1`))
	assert.Equal(t, "CATEGORIES", extractTableName(`INSERT INTO "categories" ("id") VALUES ($1)`))
	assert.Equal(t, "USER_SETTINGS", extractTableName(`UPDATE "user_settings" SET monthly_goal_cents = $1`))
	assert.Equal(t, "", extractTableName("BEGIN"))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, ParseLogLevel("silent"))
	assert.Equal(t, logger.Error, ParseLogLevel("ERROR"))
	assert.Equal(t, logger.Warn, ParseLogLevel("warn"))
	assert.Equal(t, logger.Info, ParseLogLevel("debug"))
}

func TestTrace(t *testing.T) {
	ctx := context.Background()
	query := func() (string, int64) { return `SELECT * FROM "transactions"`, 3 }

	newLogger := func(t *testing.T, elapsed time.Duration) (*mcore.MockLogger, logger.Interface) {
		tp := mcore.NewMockTimeProvider(t)
		tp.On("Since", mock.Anything).Return(core.Duration(elapsed)).Maybe()
		log := mcore.NewMockLogger(t)
		return log, NewDatabaseLogger(log, tp, "info", 200*time.Millisecond)
	}

	t.Run("Errors are logged as errors", func(t *testing.T) {
		log, l := newLogger(t, time.Millisecond)
		log.On("Error", "SQL Error", mock.MatchedBy(func(f map[string]any) bool {
			return f["error"] == "boom" && f["table"] == "TRANSACTIONS"
		})).Once()
		l.Trace(ctx, time.Now(), query, errors.New("boom"))
	})

	t.Run("Missing rows are plain queries", func(t *testing.T) {
		log, l := newLogger(t, time.Millisecond)
		log.On("Debug", "SQL Query", mock.Anything).Once()
		l.Trace(ctx, time.Now(), query, gorm.ErrRecordNotFound)
	})

	t.Run("Slow queries are warnings", func(t *testing.T) {
		log, l := newLogger(t, time.Second)
		log.On("Warn", "Slow SQL Query", mock.MatchedBy(func(f map[string]any) bool {
			return f["rows"] == int64(3) && f["type"] == "SELECT"
		})).Once()
		l.Trace(ctx, time.Now(), query, nil)
	})

	t.Run("Silent logs nothing", func(t *testing.T) {
		_, l := newLogger(t, time.Second)
		l.LogMode(logger.Silent).Trace(ctx, time.Now(), query, errors.New("boom"))
	})
}
