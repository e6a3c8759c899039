package database

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
)

const (
	defaultMonitorInterval = 30 * time.Second
	saturationRatio        = 0.8
)

// PoolUsage is one reading of the connection pool. Waits, Waited and Recycled
// count only what happened since the previous reading.
type PoolUsage struct {
	InUse    int
	Idle     int
	MaxOpen  int
	Waits    int64
	Waited   time.Duration
	Recycled int64
	TakenAt  time.Time
}

// Saturated reports whether most of the allowed connections are busy
func (u PoolUsage) Saturated() bool {
	return u.MaxOpen > 0 && float64(u.InUse) >= float64(u.MaxOpen)*saturationRatio
}

type statsFunc func() (sql.DBStats, error)

func recycled(s sql.DBStats) int64 {
	return s.MaxIdleClosed + s.MaxIdleTimeClosed + s.MaxLifetimeClosed
}

// PoolMonitor reads the pool stats on a ticker. A plan is written in one statement
// inside one transaction, so a ledger write that has to wait for a connection
// shows up as a wait here.
type PoolMonitor struct {
	stats        statsFunc
	logger       coreport.Logger
	timeProvider coreport.TimeProvider

	mu       sync.RWMutex
	previous sql.DBStats
	latest   PoolUsage

	stop     chan struct{}
	stopOnce sync.Once
}

// NewPoolMonitor creates a monitor over the stats of an open pool
func NewPoolMonitor(stats statsFunc, logger coreport.Logger, timeProvider coreport.TimeProvider) *PoolMonitor {
	return &PoolMonitor{
		stats:        stats,
		logger:       logger,
		timeProvider: timeProvider,
		stop:         make(chan struct{}),
	}
}

// Start takes a first reading and keeps reading every interval until Stop
func (m *PoolMonitor) Start(interval time.Duration) error {
	if _, err := m.Sample(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := m.Sample(); err != nil {
					m.logger.Error("Failed to read connection pool stats", map[string]any{
						"error": err.Error(),
					})
				}
			case <-m.stop:
				return
			}
		}
	}()
	return nil
}

// Stop ends the readings. It is safe to call more than once.
func (m *PoolMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// Latest returns the last reading
func (m *PoolMonitor) Latest() PoolUsage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

// Sample reads the pool now and warns when ledger writes had to queue for a connection
func (m *PoolMonitor) Sample() (PoolUsage, error) {
	stats, err := m.stats()
	if err != nil {
		return PoolUsage{}, fmt.Errorf("failed to read pool stats: %w", err)
	}

	m.mu.Lock()
	usage := PoolUsage{
		InUse:    stats.InUse,
		Idle:     stats.Idle,
		MaxOpen:  stats.MaxOpenConnections,
		Waits:    stats.WaitCount - m.previous.WaitCount,
		Waited:   stats.WaitDuration - m.previous.WaitDuration,
		Recycled: recycled(stats) - recycled(m.previous),
		TakenAt:  m.timeProvider.Now(),
	}
	m.previous = stats
	m.latest = usage
	m.mu.Unlock()

	fields := map[string]any{
		"in_use":   usage.InUse,
		"idle":     usage.Idle,
		"max_open": usage.MaxOpen,
		"waits":    usage.Waits,
		"waited":   usage.Waited.String(),
	}
	switch {
	case usage.Saturated():
		m.logger.Warn("Database connection pool saturated", fields)
	case usage.Waits > 0:
		m.logger.Warn("Ledger writes waited for a database connection", fields)
	default:
		m.logger.Debug("Database connection pool", fields)
	}
	return usage, nil
}
