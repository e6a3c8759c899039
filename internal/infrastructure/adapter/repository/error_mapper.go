package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
)

// EntityType represents the type of entity for errors mapping
type EntityType string

const (
	// EntityTypeTransaction represents ledger records
	EntityTypeTransaction EntityType = "transaction"
	// EntityTypeCategory represents user categories
	EntityTypeCategory EntityType = "category"
	// EntityTypeSettings represents per user settings
	EntityTypeSettings EntityType = "settings"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct {
	classifier *ErrorClassifier
}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{classifier: NewErrorClassifier()}
}

// MapError maps a database error raised while running operation on entityType
func (m *ErrorMapper) MapError(err error, entityType EntityType, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s %s: %w", errs.ErrDatabaseConnection, operation, entityType, err)
	}

	switch m.classifier.Classify(err) {
	case DuplicateKeyError:
		if entityType == EntityTypeCategory {
			return errs.ErrDuplicateCategory
		}
		return errs.ErrDuplicateTransaction
	case LockError:
		return fmt.Errorf("%w: %s %s", errs.ErrWriteConflict, operation, entityType)
	case TransientError, ConnectionError:
		return fmt.Errorf("%w: %s %s: %s", errs.ErrDatabaseConnection, operation, entityType, err.Error())
	case ConstraintError:
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}
	return fmt.Errorf("%w: %s %s: %s", errs.ErrInternalServer, operation, entityType, err.Error())
}

// MapEntityNotFoundError maps gorm.ErrRecordNotFound to the typed not found
// error of entityType and everything else through MapError
func (m *ErrorMapper) MapEntityNotFoundError(err error, entityType EntityType, id, userID string) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return m.MapError(err, entityType, "find")
	}

	switch entityType {
	case EntityTypeTransaction:
		return errs.NewNotFoundError(string(entityType), id, userID, errs.ErrTransactionNotFound)
	case EntityTypeCategory:
		return errs.NewNotFoundError(string(entityType), id, userID, errs.ErrCategoryNotFound)
	default:
		return errs.NewNotFoundError(string(entityType), id, userID, errs.ErrNotFound)
	}
}
