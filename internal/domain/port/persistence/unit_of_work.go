package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating writes across repositories
// so that an installment plan is stored all at once or not at all
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetTransactionRepository returns a transaction repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository

	// GetCategoryRepository returns a category repository bound to the current transaction
	GetCategoryRepository(ctx context.Context) CategoryRepository
}
