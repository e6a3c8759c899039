package events

import (
	"context"

	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
)

// NoopPublisher drops every event. Used when events.enabled is false.
type NoopPublisher struct{}

var _ coreport.EventPublisher = NoopPublisher{}

// Publish does nothing
func (NoopPublisher) Publish(context.Context, coreport.Event) error { return nil }

// Close does nothing
func (NoopPublisher) Close() error { return nil }
