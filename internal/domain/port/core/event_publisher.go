package core

import (
	"context"
	"time"
)

// EventType names a ledger change
type EventType string

// Ledger events
const (
	EventTransactionCreated EventType = "transaction.created"
	EventTransactionUpdated EventType = "transaction.updated"
	EventTransactionDeleted EventType = "transaction.deleted"
	EventPlanCreated        EventType = "installment_plan.created"
	EventPlanDeleted        EventType = "installment_plan.deleted"
)

// Event describes a committed change to a user's ledger
type Event struct {
	Type           EventType `json:"type"`
	UserID         string    `json:"userId"`
	TransactionIDs []string  `json:"transactionIds"`
	GroupID        string    `json:"groupId,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// EventPublisher delivers ledger events to interested consumers
type EventPublisher interface {
	// Publish sends one event; delivery failures are returned, not retried
	Publish(ctx context.Context, event Event) error
	// Close releases the underlying connection
	Close() error
}
