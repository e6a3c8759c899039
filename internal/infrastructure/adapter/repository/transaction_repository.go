package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/model"
)

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
	errorMapper     *ErrorMapper
	retryConfig     RetryConfig
}

var _ persistence.TransactionRepository = (*TransactionRepository)(nil)

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
		errorMapper:     NewErrorMapper(),
		retryConfig:     DefaultRetryConfig(),
	}
}

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(t *entity.Transaction) model.Transaction {
	m := model.Transaction{
		ID:            t.ID,
		UserID:        t.UserID,
		Description:   t.Description,
		AmountCents:   t.AmountCents,
		Type:          string(t.Type),
		Category:      t.Category,
		Date:          t.Date,
		PaymentMethod: string(t.PaymentMethod),
		Notes:         t.Notes,
		IsPaid:        t.IsPaid,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if t.Installment != nil {
		m.InstallmentGroupID = t.Installment.GroupID
		m.InstallmentNumber = t.Installment.Number
		m.InstallmentCount = t.Installment.Count
		m.InstallmentTotalCents = t.Installment.TotalCents
	}
	return m
}

// modelToEntity converts a transaction model to an entity. The kind is derived
// from the stored plan size.
func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	t := &entity.Transaction{
		ID:            m.ID,
		UserID:        m.UserID,
		Description:   entity.StripInstallmentSuffix(m.Description),
		AmountCents:   m.AmountCents,
		Type:          entity.TransactionType(m.Type),
		Category:      m.Category,
		Date:          m.Date,
		PaymentMethod: entity.PaymentMethod(m.PaymentMethod),
		Notes:         m.Notes,
		IsPaid:        m.IsPaid,
		Kind:          entity.KindStandalone,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.InstallmentCount > 1 {
		t.Kind = entity.KindInstallment
		t.Installment = &entity.InstallmentInfo{
			GroupID:    m.InstallmentGroupID,
			Number:     m.InstallmentNumber,
			Count:      m.InstallmentCount,
			TotalCents: m.InstallmentTotalCents,
		}
	}
	return t
}

func (r *TransactionRepository) modelsToEntities(models []model.Transaction) []*entity.Transaction {
	records := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		records = append(records, r.modelToEntity(&models[i]))
	}
	return records
}

// handleDatabaseError standardizes database error handling
func (r *TransactionRepository) handleDatabaseError(operation string, err error, userID, id string) error {
	mapped := r.errorMapper.MapEntityNotFoundError(err, EntityTypeTransaction, id, userID)
	if errs.IsNotFoundError(mapped) {
		r.logger.Warn("Transaction not found", map[string]any{
			"operation":      operation,
			"user_id":        userID,
			"transaction_id": id,
		})
		return mapped
	}

	r.logger.Error("Database error on transactions", map[string]any{
		"operation":      operation,
		"user_id":        userID,
		"transaction_id": id,
		"error":          err.Error(),
	})
	return mapped
}

func (r *TransactionRepository) withRetry(ctx context.Context, operation func() error) error {
	return RetryOnTransientError(ctx, r.retryConfig, operation, r.errorClassifier, r.logger)
}

// GetAllByUser returns every record of the user ordered by date
func (r *TransactionRepository) GetAllByUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	var models []model.Transaction
	err := r.withRetry(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("date ASC, id ASC").
			Find(&models).Error
	})
	if err != nil {
		return nil, r.handleDatabaseError("list", err, userID, "")
	}

	r.logger.Debug("Transactions loaded", map[string]any{
		"user_id": userID,
		"count":   len(models),
	})
	return r.modelsToEntities(models), nil
}

// GetByID retrieves one record of the user
func (r *TransactionRepository) GetByID(ctx context.Context, userID, id string) (*entity.Transaction, error) {
	var m model.Transaction
	err := r.withRetry(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ? AND id = ?", userID, id).
			First(&m).Error
	})
	if err != nil {
		return nil, r.handleDatabaseError("get", err, userID, id)
	}
	return r.modelToEntity(&m), nil
}

// GetByGroupID returns the members of one plan ordered by installment number
func (r *TransactionRepository) GetByGroupID(ctx context.Context, userID, groupID string) ([]*entity.Transaction, error) {
	var models []model.Transaction
	err := r.withRetry(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ? AND installment_group_id = ?", userID, groupID).
			Order("installment_number ASC").
			Find(&models).Error
	})
	if err != nil {
		return nil, r.handleDatabaseError("get plan", err, userID, groupID)
	}
	return r.modelsToEntities(models), nil
}

// Create saves a new record
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	m := r.entityToModel(transaction)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate transaction detected", map[string]any{
				"transaction_id": transaction.ID,
				"user_id":        transaction.UserID,
			})
			return errs.ErrDuplicateTransaction
		}
		return r.handleDatabaseError("create", err, transaction.UserID, transaction.ID)
	}

	r.logger.Debug("Transaction created", map[string]any{
		"transaction_id": transaction.ID,
		"user_id":        transaction.UserID,
	})
	return nil
}

// CreateBatch inserts all records in one statement inside a (nested) transaction
func (r *TransactionRepository) CreateBatch(ctx context.Context, transactions []*entity.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	models := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		models = append(models, r.entityToModel(t))
	}

	userID := transactions[0].UserID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&models, 100).Error
	})
	if err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate transaction in batch", map[string]any{
				"user_id": userID,
				"count":   len(models),
			})
			return errs.ErrDuplicateTransaction
		}
		return r.handleDatabaseError("create batch", err, userID, "")
	}

	r.logger.Debug("Transactions created", map[string]any{
		"user_id": userID,
		"count":   len(models),
	})
	return nil
}

// Update loads the record, applies the patch and saves every column
func (r *TransactionRepository) Update(ctx context.Context, userID, id string, patch entity.TransactionPatch) (*entity.Transaction, error) {
	var updated *entity.Transaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Transaction
		if err := tx.Where("user_id = ? AND id = ?", userID, id).First(&m).Error; err != nil {
			return err
		}

		record := r.modelToEntity(&m)
		patch.Apply(record, r.timeProvider)
		next := r.entityToModel(record)
		if err := tx.Save(&next).Error; err != nil {
			return err
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, r.handleDatabaseError("update", err, userID, id)
	}

	r.logger.Debug("Transaction updated", map[string]any{
		"transaction_id": id,
		"user_id":        userID,
		"is_paid":        updated.IsPaid,
	})
	return updated, nil
}

// Delete removes one record
func (r *TransactionRepository) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.Transaction{})
	if result.Error != nil {
		return r.handleDatabaseError("delete", result.Error, userID, id)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Transaction not found during delete", map[string]any{
			"transaction_id": id,
			"user_id":        userID,
		})
		return errs.NewNotFoundError(string(EntityTypeTransaction), id, userID, errs.ErrTransactionNotFound)
	}
	return nil
}

// DeleteByGroupID removes every member of a plan
func (r *TransactionRepository) DeleteByGroupID(ctx context.Context, userID, groupID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND installment_group_id = ?", userID, groupID).
		Delete(&model.Transaction{})
	if result.Error != nil {
		return 0, r.handleDatabaseError("delete plan", result.Error, userID, groupID)
	}

	r.logger.Debug("Installment plan members deleted", map[string]any{
		"group_id": groupID,
		"user_id":  userID,
		"count":    result.RowsAffected,
	})
	return result.RowsAffected, nil
}
