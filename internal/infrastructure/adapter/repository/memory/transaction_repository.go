// Package memory holds map backed repositories used by the memory database driver
// and by tests
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/persistence"
)

// TransactionRepository is a persistence.TransactionRepository kept in process memory
type TransactionRepository struct {
	mu           sync.RWMutex
	records      map[string]map[string]*entity.Transaction // user id -> record id -> record
	timeProvider core.TimeProvider
}

var _ persistence.TransactionRepository = (*TransactionRepository)(nil)

// NewTransactionRepository creates an empty repository
func NewTransactionRepository(timeProvider core.TimeProvider) *TransactionRepository {
	return &TransactionRepository{
		records:      make(map[string]map[string]*entity.Transaction),
		timeProvider: timeProvider,
	}
}

// GetAllByUser returns copies of the user's records ordered by date
func (r *TransactionRepository) GetAllByUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Transaction, 0, len(r.records[userID]))
	for _, t := range r.records[userID] {
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetByID retrieves one record
func (r *TransactionRepository) GetByID(ctx context.Context, userID, id string) (*entity.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.records[userID][id]
	if !ok {
		return nil, errs.NewNotFoundError("transaction", id, userID, errs.ErrTransactionNotFound)
	}
	return t.Clone(), nil
}

// GetByGroupID returns the members of a plan ordered by installment number
func (r *TransactionRepository) GetByGroupID(ctx context.Context, userID, groupID string) ([]*entity.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var members []*entity.Transaction
	for _, t := range r.records[userID] {
		if t.IsInstallment() && t.Installment.GroupID == groupID {
			members = append(members, t.Clone())
		}
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].Installment.Number < members[j].Installment.Number
	})
	return members, nil
}

// Create saves a new record
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.CreateBatch(ctx, []*entity.Transaction{transaction})
}

// CreateBatch saves all records or none of them
func (r *TransactionRepository) CreateBatch(ctx context.Context, transactions []*entity.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(transactions))
	for _, t := range transactions {
		if _, exists := r.records[t.UserID][t.ID]; exists || seen[t.ID] {
			return fmt.Errorf("%w: %s", errs.ErrDuplicateTransaction, t.ID)
		}
		seen[t.ID] = true
	}
	for _, t := range transactions {
		byID, ok := r.records[t.UserID]
		if !ok {
			byID = make(map[string]*entity.Transaction)
			r.records[t.UserID] = byID
		}
		byID[t.ID] = t.Clone()
	}
	return nil
}

// Update applies a patch and returns the stored record
func (r *TransactionRepository) Update(ctx context.Context, userID, id string, patch entity.TransactionPatch) (*entity.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.records[userID][id]
	if !ok {
		return nil, errs.NewNotFoundError("transaction", id, userID, errs.ErrTransactionNotFound)
	}
	patch.Apply(t, r.timeProvider)
	return t.Clone(), nil
}

// Delete removes one record
func (r *TransactionRepository) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[userID][id]; !ok {
		return errs.NewNotFoundError("transaction", id, userID, errs.ErrTransactionNotFound)
	}
	delete(r.records[userID], id)
	return nil
}

// DeleteByGroupID removes every member of a plan
func (r *TransactionRepository) DeleteByGroupID(ctx context.Context, userID, groupID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, t := range r.records[userID] {
		if t.IsInstallment() && t.Installment.GroupID == groupID {
			delete(r.records[userID], id)
			removed++
		}
	}
	return removed, nil
}
