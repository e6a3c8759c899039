package usecase

import (
	"context"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
)

// StatusFilter selects units by payment state
type StatusFilter string

// Status filters
const (
	StatusAll     StatusFilter = "all"
	StatusPaid    StatusFilter = "paid"
	StatusPending StatusFilter = "pending"
)

// CreateTransactionRequest represents a new record or, when Installments > 1, a new plan.
// Amount is the plan total for plans.
type CreateTransactionRequest struct {
	ClientID      string // optional; retried creates with the same id return the stored records
	Description   string
	Amount        string
	Type          string
	Category      string
	Date          string // YYYY-MM-DD
	PaymentMethod string
	Notes         string
	Installments  int
}

// UpdateTransactionRequest changes the editable fields of one record. Empty fields are kept.
type UpdateTransactionRequest struct {
	Description   *string
	Amount        *string
	Category      *string
	Date          *string
	PaymentMethod *string
	Notes         *string
}

// ListQuery selects the units of a listing
type ListQuery struct {
	Period                 entity.PeriodToken
	Start                  string
	End                    string
	Status                 StatusFilter
	Type                   string
	Category               string
	Search                 string
	IncludeFullyPaidGroups *bool // nil uses the configured default
}

// UnitView is one listing row with the progress of plans
type UnitView struct {
	Unit     entity.DisplayUnit
	Progress *entity.Progress
}

// PlanView is a whole installment plan with plan wide progress
type PlanView struct {
	Group    *entity.InstallmentGroup
	Progress entity.Progress
}

// Mutation operations
const (
	OpCreate         = "create"
	OpCreatePlan     = "create_plan"
	OpUpdate         = "update"
	OpSetPaid        = "set_paid"
	OpToggleSelected = "toggle_selected"
	OpDelete         = "delete"
	OpDeletePlan     = "delete_plan"
)

// MutationResult reports what a write did to the ledger
type MutationResult struct {
	Operation    string
	Transactions []*entity.Transaction // records as stored after the write
	AffectedIDs  []string
}

// TransactionUseCase defines the ledger operations
type TransactionUseCase interface {
	// Create stores a standalone record or a whole installment plan
	Create(ctx context.Context, userID string, req CreateTransactionRequest) (*MutationResult, error)

	// Update edits one record
	Update(ctx context.Context, userID, id string, req UpdateTransactionRequest) (*MutationResult, error)

	// Get returns one record
	Get(ctx context.Context, userID, id string) (*entity.Transaction, error)

	// List groups the user's records into display units
	List(ctx context.Context, userID string, query ListQuery) ([]UnitView, error)

	// GetPlan returns one installment plan with plan wide progress
	GetPlan(ctx context.Context, userID, groupID string) (*PlanView, error)

	// NearDue returns unpaid expenses due within the configured window
	NearDue(ctx context.Context, userID string) ([]*entity.Transaction, error)

	// SetPaid sets the paid flag of one record
	SetPaid(ctx context.Context, userID, id string, paid bool) (*MutationResult, error)

	// TogglePaid flips the paid flag of one record
	TogglePaid(ctx context.Context, userID, id string) (*MutationResult, error)

	// PayNextInstallment marks the earliest unpaid member of a plan as paid
	PayNextInstallment(ctx context.Context, userID, groupID string) (*MutationResult, error)

	// UnmarkLastPaid marks the latest paid member of a plan as unpaid
	UnmarkLastPaid(ctx context.Context, userID, groupID string) (*MutationResult, error)

	// ToggleSelected flips the paid flag of the selected members of a plan
	ToggleSelected(ctx context.Context, userID, groupID string, ids []string) (*MutationResult, error)

	// Delete removes one record
	Delete(ctx context.Context, userID, id string) (*MutationResult, error)

	// DeletePlan removes every member of a plan
	DeletePlan(ctx context.Context, userID, groupID string) (*MutationResult, error)
}
