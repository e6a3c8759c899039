package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/reconcile"
)

// PlanWriteMode selects how the members of a new plan reach the store
type PlanWriteMode string

const (
	// PlanWriteBatch stores the plan with one atomic CreateBatch
	PlanWriteBatch PlanWriteMode = "batch"
	// PlanWriteConcurrent issues one Create per member and deletes the written ones on failure
	PlanWriteConcurrent PlanWriteMode = "concurrent"
)

// Config tunes the ledger service
type Config struct {
	CacheTTL               time.Duration
	NearDueDays            int
	AllowLegacyGroupKey    bool
	IncludeFullyPaidGroups bool
	PlanWriteMode          PlanWriteMode
	QueueSize              int
}

// Service is the ledger: it owns the write rules for records and plans and serves
// listings through the reconcile engine
type Service struct {
	repo         persistence.TransactionRepository
	uow          persistence.UnitOfWork
	publisher    coreport.EventPublisher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger

	validator   *TransactionValidator
	idempotency *IdempotencyHandler
	queue       *MutationQueue
	cache       *ledgerCache
	newID       IDGenerator
	config      Config
}

// Option customizes a Service
type Option func(*Service)

// WithUnitOfWork makes multi record writes transactional
func WithUnitOfWork(uow persistence.UnitOfWork) Option {
	return func(s *Service) { s.uow = uow }
}

// WithEventPublisher publishes an event after every committed write
func WithEventPublisher(publisher coreport.EventPublisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

// WithIDGenerator replaces the uuid based id generator
func WithIDGenerator(newID IDGenerator) Option {
	return func(s *Service) { s.newID = newID }
}

// NewTransactionService creates a new ledger service
func NewTransactionService(
	repo persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	config Config,
	opts ...Option,
) *Service {
	if config.NearDueDays <= 0 {
		config.NearDueDays = reconcile.DefaultNearDueDays
	}
	if config.PlanWriteMode == "" {
		config.PlanWriteMode = PlanWriteBatch
	}

	s := &Service{
		repo:         repo,
		timeProvider: timeProvider,
		logger:       logger,
		validator:    NewTransactionValidator(),
		idempotency:  NewIdempotencyHandler(repo),
		queue:        NewMutationQueue(logger, config.QueueSize),
		cache:        newLedgerCache(config.CacheTTL, timeProvider),
		newID:        uuid.NewString,
		config:       config,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Records returns every record of the user ordered by date, from the cache when fresh
func (s *Service) Records(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if records, ok := s.cache.get(userID); ok {
		return records, nil
	}

	since := s.cache.generation(userID)
	records, err := s.repo.GetAllByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load ledger", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}
	if !s.cache.fill(userID, records, since) {
		s.logger.Debug("Ledger changed while loading, snapshot not cached", map[string]any{
			"user_id": userID,
		})
	}
	sortByDate(records)
	return records, nil
}

// Create stores a standalone record or, when req.Installments > 1, a whole plan
func (s *Service) Create(ctx context.Context, userID string, req usecase.CreateTransactionRequest) (*usecase.MutationResult, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	params, count, err := s.validator.ValidateCreate(req, s.location())
	if err != nil {
		s.logger.Warn("Rejected transaction request", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}
	params.UserID = userID

	return s.queue.Run(ctx, userID, func(ctx context.Context) (*usecase.MutationResult, error) {
		existing, found, err := s.idempotency.CheckIdempotency(ctx, userID, req.ClientID, count)
		if err != nil {
			return nil, err
		}
		if found {
			s.logger.Info("Create already applied, returning stored records", map[string]any{
				"user_id":   userID,
				"client_id": req.ClientID,
			})
			return newResult(createOperation(count), existing...), nil
		}

		if count == 1 {
			return s.createStandalone(ctx, params, req.ClientID)
		}
		return s.createPlan(ctx, params, count, req.ClientID)
	})
}

func (s *Service) createStandalone(ctx context.Context, params entity.TransactionParams, clientID string) (*usecase.MutationResult, error) {
	params.ID = clientID
	if params.ID == "" {
		params.ID = s.newID()
	}
	txn, err := entity.NewStandaloneTransaction(params, s.timeProvider)
	if err != nil {
		return nil, err
	}

	rb := s.cache.put(params.UserID, txn)
	if err := s.repo.Create(ctx, txn); err != nil {
		s.cache.restore(rb)
		s.logger.Error("Failed to store transaction", map[string]any{
			"user_id":        params.UserID,
			"transaction_id": txn.ID,
			"error":          err.Error(),
		})
		return nil, errs.NewTransactionError(txn.ID, params.UserID, usecase.OpCreate, "store rejected record", err)
	}

	s.publish(ctx, coreport.EventTransactionCreated, params.UserID, "", txn.ID)
	return newResult(usecase.OpCreate, txn), nil
}

func (s *Service) createPlan(ctx context.Context, params entity.TransactionParams, count int, clientID string) (*usecase.MutationResult, error) {
	groupID := clientID
	if groupID == "" {
		groupID = s.newID()
	}
	members, err := BuildPlan(params, count, groupID, s.newID, s.timeProvider)
	if err != nil {
		return nil, err
	}

	rb := s.cache.put(params.UserID, members...)
	if err := s.writePlan(ctx, params.UserID, groupID, members); err != nil {
		s.cache.restore(rb)

		fields := map[string]any{
			"user_id":  params.UserID,
			"group_id": groupID,
			"error":    err.Error(),
		}
		var partial *errs.PartialPlanError
		if errors.As(err, &partial) {
			fields = partial.LogFields()
			if partial.Orphaned() {
				s.cache.invalidate(params.UserID)
			}
		}
		s.logger.Error("Failed to store installment plan", fields)
		return nil, err
	}

	s.logger.Info("Installment plan created", map[string]any{
		"user_id":      params.UserID,
		"group_id":     groupID,
		"installments": count,
		"total":        entity.AmountInCentsToString(params.AmountCents),
	})
	s.publish(ctx, coreport.EventPlanCreated, params.UserID, groupID, idsOf(members)...)
	return newResult(usecase.OpCreatePlan, members...), nil
}

// Update edits the fields of one record
func (s *Service) Update(ctx context.Context, userID, id string, req usecase.UpdateTransactionRequest) (*usecase.MutationResult, error) {
	patch, err := s.validator.ValidateUpdate(req, s.location())
	if err != nil {
		return nil, err
	}

	return s.queue.Run(ctx, userID, func(ctx context.Context) (*usecase.MutationResult, error) {
		current, err := s.find(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		return s.applyPatch(ctx, userID, usecase.OpUpdate, current, patch)
	})
}

// Get returns one record
func (s *Service) Get(ctx context.Context, userID, id string) (*entity.Transaction, error) {
	return s.find(ctx, userID, id)
}

// List groups the user's records into display units
func (s *Service) List(ctx context.Context, userID string, query usecase.ListQuery) ([]usecase.UnitView, error) {
	if err := s.validator.ValidateStatus(query.Status); err != nil {
		return nil, err
	}
	if query.Type != "" && !entity.IsValidTransactionType(query.Type) {
		return nil, errs.NewValidationError("type", query.Type, errs.ErrInvalidTransactionType)
	}
	dateRange, err := reconcile.ResolvePeriod(query.Period, query.Start, query.End, s.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	records, err := s.Records(ctx, userID)
	if err != nil {
		return nil, err
	}

	include := s.config.IncludeFullyPaidGroups
	if query.IncludeFullyPaidGroups != nil {
		include = *query.IncludeFullyPaidGroups
	}
	units := reconcile.Group(filterRecords(records, query), reconcile.GroupOptions{
		DateRange:              dateRange,
		IncludeFullyPaidGroups: include,
		AllowLegacyGroupKey:    s.config.AllowLegacyGroupKey,
		Logger:                 s.logger,
	})
	units = reconcile.FilterStatus(units, query.Status)

	basis := reconcile.BasisPlan
	if dateRange != nil {
		basis = reconcile.BasisVisible
	}
	views := make([]usecase.UnitView, 0, len(units))
	for _, unit := range units {
		view := usecase.UnitView{Unit: unit}
		if unit.Kind == entity.UnitInstallmentGroup {
			progress := reconcile.Progress(unit.Group, basis)
			view.Progress = &progress
		}
		views = append(views, view)
	}
	return views, nil
}

// GetPlan returns one installment plan with plan wide progress
func (s *Service) GetPlan(ctx context.Context, userID, groupID string) (*usecase.PlanView, error) {
	g, err := s.plan(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	return &usecase.PlanView{Group: g, Progress: reconcile.Progress(g, reconcile.BasisPlan)}, nil
}

// NearDue returns unpaid expenses due within the configured window
func (s *Service) NearDue(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	records, err := s.Records(ctx, userID)
	if err != nil {
		return nil, err
	}
	return reconcile.NearDue(records, s.timeProvider.Now(), s.config.NearDueDays), nil
}

// SetPaid sets the paid flag of one record. Setting the current value is a no-op.
func (s *Service) SetPaid(ctx context.Context, userID, id string, paid bool) (*usecase.MutationResult, error) {
	return s.queue.Run(ctx, userID, func(ctx context.Context) (*usecase.MutationResult, error) {
		current, err := s.find(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if current.IsPaid == paid {
			return newResult(usecase.OpSetPaid, current), nil
		}
		return s.applyPatch(ctx, userID, usecase.OpSetPaid, current, entity.PaidPatch(paid))
	})
}

// TogglePaid flips the paid flag of one record
func (s *Service) TogglePaid(ctx context.Context, userID, id string) (*usecase.MutationResult, error) {
	return s.queue.Run(ctx, userID, func(ctx context.Context) (*usecase.MutationResult, error) {
		current, err := s.find(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		return s.applyPatch(ctx, userID, usecase.OpSetPaid, current, entity.PaidPatch(!current.IsPaid))
	})
}

// PayNextInstallment marks the earliest unpaid member of a plan as paid
func (s *Service) PayNextInstallment(ctx context.Context, userID, groupID string) (*usecase.MutationResult, error) {
	return s.queue.Run(ctx, userID, func(ctx context.Context) (*usecase.MutationResult, error) {
		g, err := s.plan(ctx, userID, groupID)
		if err != nil {
			return nil, err
		}
		next := g.NextUnpaid()
		if next == nil {
			return nil, fmt.Errorf("%w: %s", errs.ErrNoUnpaidInstallment, groupID)
		}
		return s.applyPatch(ctx, userID, usecase.OpSetPaid, next, entity.PaidPatch(true))
	})
}

// UnmarkLastPaid marks the latest paid member of a plan as unpaid
func (s *Service) UnmarkLastPaid(ctx context.Context, userID, groupID string) (*usecase.MutationResult, error) {
	return s.queue.Run(ctx, userID, func(ctx context.Context) (*usecase.MutationResult, error) {
		g, err := s.plan(ctx, userID, groupID)
		if err != nil {
			return nil, err
		}
		last := g.LastPaid()
		if last == nil {
			return nil, fmt.Errorf("%w: %s", errs.ErrNoPaidInstallment, groupID)
		}
		return s.applyPatch(ctx, userID, usecase.OpSetPaid, last, entity.PaidPatch(false))
	})
}

// ToggleSelected flips the paid flag of the selected members of a plan in one write
func (s *Service) ToggleSelected(ctx context.Context, userID, groupID string, ids []string) (*usecase.MutationResult, error) {
	if len(ids) == 0 {
		return nil, errs.NewValidationError("ids", "", errs.ErrInvalidRequest)
	}

	return s.queue.Run(ctx, userID, func(ctx context.Context) (*usecase.MutationResult, error) {
		g, err := s.plan(ctx, userID, groupID)
		if err != nil {
			return nil, err
		}

		seen := make(map[string]bool, len(ids))
		targets := make([]*entity.Transaction, 0, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			member := g.Member(id)
			if member == nil {
				return nil, errs.NewNotFoundError("installment", id, userID, errs.ErrTransactionNotFound)
			}
			targets = append(targets, member)
		}
		return s.updateMany(ctx, userID, usecase.OpToggleSelected, targets)
	})
}

// Delete removes one record
func (s *Service) Delete(ctx context.Context, userID, id string) (*usecase.MutationResult, error) {
	return s.queue.Run(ctx, userID, func(ctx context.Context) (*usecase.MutationResult, error) {
		current, err := s.find(ctx, userID, id)
		if err != nil {
			return nil, err
		}

		rb := s.cache.remove(userID, id)
		if err := s.repo.Delete(ctx, userID, id); err != nil {
			s.resync(ctx, userID, rb)
			return nil, errs.NewTransactionError(id, userID, usecase.OpDelete, "store rejected delete", err)
		}

		groupID := ""
		if current.IsInstallment() {
			groupID = current.Installment.GroupID
		}
		s.publish(ctx, coreport.EventTransactionDeleted, userID, groupID, id)
		return &usecase.MutationResult{Operation: usecase.OpDelete, AffectedIDs: []string{id}}, nil
	})
}

// DeletePlan removes every member of a plan
func (s *Service) DeletePlan(ctx context.Context, userID, groupID string) (*usecase.MutationResult, error) {
	return s.queue.Run(ctx, userID, func(ctx context.Context) (*usecase.MutationResult, error) {
		g, err := s.plan(ctx, userID, groupID)
		if err != nil {
			return nil, err
		}
		ids := g.MemberIDs()

		rb := s.cache.remove(userID, ids...)
		err = s.withinUnitOfWork(ctx, func(ctx context.Context, repo persistence.TransactionRepository) error {
			if !g.Legacy {
				_, err := repo.DeleteByGroupID(ctx, userID, groupID)
				return err
			}
			for _, id := range ids {
				if err := repo.Delete(ctx, userID, id); err != nil && !errs.IsNotFoundError(err) {
					return err
				}
			}
			return nil
		})
		if err != nil {
			s.resync(ctx, userID, rb)
			return nil, errs.NewTransactionError(groupID, userID, usecase.OpDeletePlan, "store rejected plan delete", err)
		}

		s.logger.Info("Installment plan deleted", map[string]any{
			"user_id":  userID,
			"group_id": groupID,
			"members":  len(ids),
		})
		s.publish(ctx, coreport.EventPlanDeleted, userID, groupID, ids...)
		return &usecase.MutationResult{Operation: usecase.OpDeletePlan, AffectedIDs: ids}, nil
	})
}

// Shutdown drains pending writes
func (s *Service) Shutdown() {
	s.queue.Shutdown()
}

// applyPatch writes one patch, optimistically in the cache first
func (s *Service) applyPatch(ctx context.Context, userID, op string, current *entity.Transaction, patch entity.TransactionPatch) (*usecase.MutationResult, error) {
	updated := current.Clone()
	patch.Apply(updated, s.timeProvider)

	rb := s.cache.put(userID, updated)
	stored, err := s.repo.Update(ctx, userID, current.ID, patch)
	if err != nil {
		s.cache.restore(rb)
		s.logger.Error("Failed to update transaction", map[string]any{
			"user_id":        userID,
			"transaction_id": current.ID,
			"operation":      op,
			"error":          err.Error(),
		})
		return nil, errs.NewTransactionError(current.ID, userID, op, "store rejected update", err)
	}
	if stored == nil {
		stored = updated
	}
	s.cache.put(userID, stored)

	s.publish(ctx, coreport.EventTransactionUpdated, userID, groupIDOf(stored), stored.ID)
	return newResult(op, stored), nil
}

// updateMany flips the paid flag of every target in one unit of work
func (s *Service) updateMany(ctx context.Context, userID, op string, targets []*entity.Transaction) (*usecase.MutationResult, error) {
	patches := make([]entity.TransactionPatch, len(targets))
	updated := make([]*entity.Transaction, len(targets))
	for i, t := range targets {
		patches[i] = entity.PaidPatch(!t.IsPaid)
		updated[i] = t.Clone()
		patches[i].Apply(updated[i], s.timeProvider)
	}

	rb := s.cache.put(userID, updated...)
	stored := make([]*entity.Transaction, 0, len(targets))
	err := s.withinUnitOfWork(ctx, func(ctx context.Context, repo persistence.TransactionRepository) error {
		for i, t := range targets {
			result, err := repo.Update(ctx, userID, t.ID, patches[i])
			if err != nil {
				return err
			}
			if result == nil {
				result = updated[i]
			}
			stored = append(stored, result)
		}
		return nil
	})
	if err != nil {
		s.cache.restore(rb)
		if s.uow == nil {
			// earlier updates may have been committed
			s.cache.invalidate(userID)
		}
		s.logger.Error("Failed to toggle installments", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, errs.NewTransactionError(strings.Join(idsOf(targets), ","), userID, op, "store rejected update", err)
	}

	s.cache.put(userID, stored...)
	s.publish(ctx, coreport.EventTransactionUpdated, userID, groupIDOf(stored[0]), idsOf(stored)...)
	return newResult(op, stored...), nil
}

// withinUnitOfWork runs fn in a store transaction when a unit of work is configured
func (s *Service) withinUnitOfWork(ctx context.Context, fn func(ctx context.Context, repo persistence.TransactionRepository) error) error {
	if s.uow == nil {
		return fn(ctx, s.repo)
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(txCtx, s.uow.GetTransactionRepository(txCtx)); err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to roll back transaction", map[string]any{
				"error":          rbErr.Error(),
				"original_error": err.Error(),
			})
		}
		return err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// resync reloads the ledger after a failed delete, restoring the removed records
// when the store cannot be read either
func (s *Service) resync(ctx context.Context, userID string, rb rollback) {
	records, err := s.repo.GetAllByUser(context.WithoutCancel(ctx), userID)
	if err != nil {
		s.logger.Warn("Reload after failed delete failed, restoring cached records", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		s.cache.restore(rb)
		return
	}
	s.cache.load(userID, records)
}

func (s *Service) find(ctx context.Context, userID, id string) (*entity.Transaction, error) {
	records, err := s.Records(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errs.NewNotFoundError("transaction", id, userID, errs.ErrTransactionNotFound)
}

// plan collects the members of a plan. groupID may also be a legacy group key.
func (s *Service) plan(ctx context.Context, userID, groupID string) (*entity.InstallmentGroup, error) {
	records, err := s.Records(ctx, userID)
	if err != nil {
		return nil, err
	}

	var members []*entity.Transaction
	for _, r := range records {
		if key, ok := r.GroupKey(true); ok && key == groupID {
			members = append(members, r)
		}
	}
	g := reconcile.GroupPlan(members)
	if g == nil {
		return nil, errs.NewNotFoundError("installment plan", groupID, userID, errs.ErrInstallmentPlanNotFound)
	}
	return g, nil
}

func (s *Service) publish(ctx context.Context, eventType coreport.EventType, userID, groupID string, ids ...string) {
	if s.publisher == nil {
		return
	}
	event := coreport.Event{
		Type:           eventType,
		UserID:         userID,
		TransactionIDs: ids,
		GroupID:        groupID,
		OccurredAt:     s.timeProvider.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish ledger event", map[string]any{
			"event":    string(eventType),
			"user_id":  userID,
			"group_id": groupID,
			"error":    err.Error(),
		})
	}
}

func (s *Service) location() *time.Location {
	return s.timeProvider.Location()
}

func filterRecords(records []*entity.Transaction, query usecase.ListQuery) []*entity.Transaction {
	if query.Type == "" && query.Category == "" && query.Search == "" {
		return records
	}
	search := strings.ToLower(strings.TrimSpace(query.Search))

	out := make([]*entity.Transaction, 0, len(records))
	for _, r := range records {
		if query.Type != "" && string(r.Type) != query.Type {
			continue
		}
		if query.Category != "" && r.Category != query.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Description), search) &&
			!strings.Contains(strings.ToLower(r.Notes), search) &&
			!strings.Contains(strings.ToLower(r.Category), search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func createOperation(count int) string {
	if count > 1 {
		return usecase.OpCreatePlan
	}
	return usecase.OpCreate
}

func newResult(op string, records ...*entity.Transaction) *usecase.MutationResult {
	return &usecase.MutationResult{Operation: op, Transactions: records, AffectedIDs: idsOf(records)}
}

func idsOf(records []*entity.Transaction) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}

func groupIDOf(t *entity.Transaction) string {
	if t.IsInstallment() {
		return t.Installment.GroupID
	}
	return ""
}
