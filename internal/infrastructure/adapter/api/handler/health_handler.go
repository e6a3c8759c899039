package handler

import (
	"context"
	"net/http"
	"time"

	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/gin-gonic/gin"
)

// Pinger checks a backing store
type Pinger interface {
	Ping(ctx context.Context) error
}

// PoolReporter is implemented by stores backed by a connection pool
type PoolReporter interface {
	PoolSaturated() bool
}

// HealthHandler reports whether the service can reach its store
type HealthHandler struct {
	store   Pinger
	driver  string
	timeout time.Duration
	logger  coreport.Logger
}

// NewHealthHandler creates a health handler. store may be nil for the in-memory driver.
func NewHealthHandler(store Pinger, driver string, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{
		store:   store,
		driver:  driver,
		timeout: 2 * time.Second,
		logger:  logger,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			h.logger.Error("Health check failed", map[string]any{
				"driver": h.driver,
				"error":  err.Error(),
			})
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "driver": h.driver})
			return
		}
	}
	body := gin.H{"status": "ok", "driver": h.driver}
	if pool, ok := h.store.(PoolReporter); ok {
		body["poolSaturated"] = pool.PoolSaturated()
	}
	c.JSON(http.StatusOK, body)
}
