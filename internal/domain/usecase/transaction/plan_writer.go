package transaction

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/usecase"
)

const maxConcurrentPlanWrites = 8

// writePlan stores every member of a new plan or none of them. When the store
// cannot guarantee that, the returned *errs.PartialPlanError names what is left.
func (s *Service) writePlan(ctx context.Context, userID, groupID string, members []*entity.Transaction) error {
	if s.config.PlanWriteMode == PlanWriteConcurrent {
		return s.writePlanConcurrently(ctx, userID, groupID, members)
	}

	err := s.withinUnitOfWork(ctx, func(ctx context.Context, repo persistence.TransactionRepository) error {
		return repo.CreateBatch(ctx, members)
	})
	if err != nil {
		return errs.NewTransactionError(groupID, userID, usecase.OpCreatePlan, "store rejected plan", err)
	}
	return nil
}

func (s *Service) writePlanConcurrently(ctx context.Context, userID, groupID string, members []*entity.Transaction) error {
	var (
		mu      sync.Mutex
		created []string
	)

	// every member is attempted so the created set is known when one fails
	var g errgroup.Group
	g.SetLimit(maxConcurrentPlanWrites)
	for _, member := range members {
		member := member
		g.Go(func() error {
			if err := s.repo.Create(ctx, member); err != nil {
				return err
			}
			mu.Lock()
			created = append(created, member.ID)
			mu.Unlock()
			return nil
		})
	}

	writeErr := g.Wait()
	if writeErr == nil {
		return nil
	}
	if len(created) == 0 {
		return errs.NewTransactionError(groupID, userID, usecase.OpCreatePlan, "store rejected plan", writeErr)
	}

	orphaned, cleanupErr := s.cleanupPlan(context.WithoutCancel(ctx), userID, created)
	return &errs.PartialPlanError{
		GroupID:     groupID,
		UserID:      userID,
		Requested:   len(members),
		CreatedIDs:  created,
		OrphanedIDs: orphaned,
		Err:         writeErr,
		CleanupErr:  cleanupErr,
	}
}

// cleanupPlan deletes the written members of a failed plan and returns the ids it could not remove
func (s *Service) cleanupPlan(ctx context.Context, userID string, ids []string) ([]string, error) {
	var orphaned []string
	var cleanupErr error
	for _, id := range ids {
		if err := s.repo.Delete(ctx, userID, id); err != nil && !errs.IsNotFoundError(err) {
			orphaned = append(orphaned, id)
			cleanupErr = errors.Join(cleanupErr, err)
		}
	}
	if len(orphaned) > 0 {
		s.logger.Error("Installment plan cleanup left orphaned records", map[string]any{
			"user_id":      userID,
			"orphaned_ids": orphaned,
		})
	}
	return orphaned, cleanupErr
}
