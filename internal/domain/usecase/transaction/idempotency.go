package transaction

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/persistence"
)

// IdempotencyHandler detects retried creates. A client supplied id becomes the record
// id of a standalone record and the group id of a plan.
type IdempotencyHandler struct {
	transactionRepo persistence.TransactionRepository
}

// NewIdempotencyHandler creates a new IdempotencyHandler
func NewIdempotencyHandler(transactionRepo persistence.TransactionRepository) *IdempotencyHandler {
	return &IdempotencyHandler{
		transactionRepo: transactionRepo,
	}
}

// CheckIdempotency returns the records already stored under clientID, and whether any were found
func (h *IdempotencyHandler) CheckIdempotency(
	ctx context.Context,
	userID string,
	clientID string,
	installments int,
) ([]*entity.Transaction, bool, error) {
	if clientID == "" {
		return nil, false, nil
	}

	if installments > 1 {
		members, err := h.transactionRepo.GetByGroupID(ctx, userID, clientID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to check existing installment plan: %w", err)
		}
		return members, len(members) > 0, nil
	}

	txn, err := h.transactionRepo.GetByID(ctx, userID, clientID)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to retrieve existing transaction: %w", err)
	}
	return []*entity.Transaction{txn}, true, nil
}
