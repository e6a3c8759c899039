package persistence

import (
	"context"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
)

// TransactionRepository defines the methods the ledger needs from the record store
type TransactionRepository interface {
	// GetAllByUser returns every record owned by the user, ordered by date
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	GetAllByUser(ctx context.Context, userID string) ([]*entity.Transaction, error)

	// GetByID retrieves one record of the user
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no record with the given ID belongs to the user
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, userID, id string) (*entity.Transaction, error)

	// GetByGroupID returns the members of one installment plan ordered by installment number
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	GetByGroupID(ctx context.Context, userID, groupID string) ([]*entity.Transaction, error)

	// Create saves a new record
	//
	// Possible errors:
	// - ErrDuplicateTransaction: If a record with the same ID already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// CreateBatch saves all records or none of them
	//
	// Possible errors:
	// - ErrDuplicateTransaction: If any record ID already exists
	// - ErrDatabaseConnection: If database connection fails
	CreateBatch(ctx context.Context, transactions []*entity.Transaction) error

	// Update applies a patch to an existing record and returns the stored result
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the record doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, userID, id string, patch entity.TransactionPatch) (*entity.Transaction, error)

	// Delete removes one record
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the record doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Delete(ctx context.Context, userID, id string) error

	// DeleteByGroupID removes every member of a plan and returns how many were removed
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	DeleteByGroupID(ctx context.Context, userID, groupID string) (int64, error)
}
