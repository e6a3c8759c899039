package database

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	mcore "github.com/amirhossein-jamali/finance-dashboard/mocks/port/core"
)

type scriptedStats struct {
	readings []sql.DBStats
	err      error
}

func (s *scriptedStats) next() (sql.DBStats, error) {
	if s.err != nil {
		return sql.DBStats{}, s.err
	}
	stats := s.readings[0]
	if len(s.readings) > 1 {
		s.readings = s.readings[1:]
	}
	return stats, nil
}

func TestPoolMonitorSample(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Waits are counted since the previous reading", func(t *testing.T) {
		source := &scriptedStats{readings: []sql.DBStats{
			{MaxOpenConnections: 10, InUse: 2, Idle: 3, WaitCount: 4, WaitDuration: time.Second, MaxLifetimeClosed: 1},
			{MaxOpenConnections: 10, InUse: 2, Idle: 3, WaitCount: 4, WaitDuration: time.Second, MaxLifetimeClosed: 3},
			{MaxOpenConnections: 10, InUse: 3, Idle: 2, WaitCount: 6, WaitDuration: 1500 * time.Millisecond, MaxLifetimeClosed: 3},
		}}
		logger := mcore.NewMockLogger(t)
		logger.On("Warn", "Ledger writes waited for a database connection", mock.Anything).Twice()
		logger.On("Debug", "Database connection pool", mock.Anything).Once()
		monitor := NewPoolMonitor(source.next, logger, mcore.NewFixedTimeProvider(t, now))

		first, err := monitor.Sample()
		require.NoError(t, err)
		assert.Equal(t, int64(4), first.Waits)

		second, err := monitor.Sample()
		require.NoError(t, err)
		assert.Zero(t, second.Waits)
		assert.Equal(t, int64(2), second.Recycled)

		third, err := monitor.Sample()
		require.NoError(t, err)
		assert.Equal(t, int64(2), third.Waits)
		assert.Equal(t, 500*time.Millisecond, third.Waited)
		assert.Equal(t, third, monitor.Latest())
		assert.Equal(t, now, third.TakenAt)
	})

	t.Run("Saturation wins over waits", func(t *testing.T) {
		source := &scriptedStats{readings: []sql.DBStats{{MaxOpenConnections: 10, InUse: 8, WaitCount: 1}}}
		logger := mcore.NewMockLogger(t)
		logger.On("Warn", "Database connection pool saturated", mock.Anything).Once()
		monitor := NewPoolMonitor(source.next, logger, mcore.NewFixedTimeProvider(t, now))

		usage, err := monitor.Sample()
		require.NoError(t, err)
		assert.True(t, usage.Saturated())
	})

	t.Run("Read errors are returned and keep the last reading", func(t *testing.T) {
		source := &scriptedStats{err: errors.New("closed")}
		monitor := NewPoolMonitor(source.next, mcore.NewQuietLogger(t), mcore.NewFixedTimeProvider(t, now))

		_, err := monitor.Sample()
		assert.ErrorContains(t, err, "closed")
		assert.Equal(t, PoolUsage{}, monitor.Latest())
		assert.Error(t, monitor.Start(time.Minute))
	})
}

func TestPoolUsageSaturated(t *testing.T) {
	assert.False(t, PoolUsage{InUse: 7, MaxOpen: 10}.Saturated())
	assert.True(t, PoolUsage{InUse: 8, MaxOpen: 10}.Saturated())
	assert.False(t, PoolUsage{InUse: 50}.Saturated(), "unlimited pools never saturate")
}

func TestManagerPoolUsageBeforeConnect(t *testing.T) {
	manager := NewManager(&Config{}, mcore.NewQuietLogger(t), mcore.NewFixedTimeProvider(t, time.Now()))
	assert.Equal(t, PoolUsage{}, manager.PoolUsage())
	assert.False(t, manager.PoolSaturated())
}
