package error

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation          = 4000
	CodeInvalidAmount       = 4002
	CodeInvalidUserID       = 4003
	CodeInvalidInstallments = 4004
	CodeInvalidPeriod       = 4005
	CodeInvalidDate         = 4006
	CodeNotFound            = 4040
	CodeTransactionNotFound = 4041
	CodeCategoryNotFound    = 4042
	CodePlanNotFound        = 4043
	CodeWriteConflict       = 4090
	CodeDuplicateRecord     = 4091
	CodeNothingToToggle     = 4092

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodePartialFailure = 5001
)

// Kind groups errors by how a caller should react to them.
type Kind string

// Error kinds
const (
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not-found"
	KindWriteConflict  Kind = "write-conflict"
	KindPartialFailure Kind = "partial-failure"
	KindInternal       Kind = "internal"
)

// Base error types
var (
	// ErrInvalidAmount is returned when an amount cannot be parsed as money
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when an amount is zero or negative
	ErrNegativeAmount = errors.New("amount must be greater than zero")

	// ErrAmountOverflow is returned when the amount is too large and would cause overflow
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrInvalidUserID is returned when the owner id is missing
	ErrInvalidUserID = errors.New("user ID cannot be empty")

	// ErrInvalidTransactionID is returned when a record id is missing
	ErrInvalidTransactionID = errors.New("transaction ID cannot be empty")

	ErrInvalidDescription     = errors.New("description cannot be empty")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrInvalidDate            = errors.New("invalid date")
	ErrInvalidCategory        = errors.New("invalid category")

	// ErrInvalidInstallmentCount is returned when a plan has fewer than two or too many installments
	ErrInvalidInstallmentCount = errors.New("invalid installment count")

	// ErrInvalidPeriod is returned for an unknown period token or an inverted custom range
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	ErrTransactionNotFound     = errors.New("transaction not found")
	ErrCategoryNotFound        = errors.New("category not found")
	ErrInstallmentPlanNotFound = errors.New("installment plan not found")

	// ErrDuplicateTransaction is returned when a record with the same ID already exists
	ErrDuplicateTransaction = errors.New("transaction with this ID already exists")

	// ErrDuplicateCategory is returned when the user already has a category with that name
	ErrDuplicateCategory = errors.New("category already exists")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrWriteConflict is returned when a write could not be applied to the current stored state
	ErrWriteConflict = errors.New("write conflict")

	// ErrNoUnpaidInstallment is returned when paying the next installment of a settled plan
	ErrNoUnpaidInstallment = errors.New("installment plan has no unpaid installment")

	// ErrNoPaidInstallment is returned when unmarking the last payment of a plan with no payments
	ErrNoPaidInstallment = errors.New("installment plan has no paid installment")

	// ErrPartialPlan is returned when only some members of an installment plan were written
	ErrPartialPlan = errors.New("installment plan partially written")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrPartialPlan):
		return CodePartialFailure
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount), errors.Is(err, ErrAmountOverflow):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidInstallmentCount):
		return CodeInvalidInstallments
	case errors.Is(err, ErrInvalidPeriod):
		return CodeInvalidPeriod
	case errors.Is(err, ErrInvalidDate):
		return CodeInvalidDate
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrCategoryNotFound):
		return CodeCategoryNotFound
	case errors.Is(err, ErrInstallmentPlanNotFound):
		return CodePlanNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrDuplicateTransaction), errors.Is(err, ErrDuplicateCategory):
		return CodeDuplicateRecord
	case errors.Is(err, ErrNoUnpaidInstallment), errors.Is(err, ErrNoPaidInstallment):
		return CodeNothingToToggle
	case errors.Is(err, ErrWriteConflict), errors.Is(err, ErrConstraintViolation):
		return CodeWriteConflict
	case KindOf(err) == KindValidation:
		return CodeValidation
	default:
		return CodeInternalServer
	}
}

// KindOf classifies err into one of the error kinds. Unknown errors are internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPartialPlan):
		return KindPartialFailure
	case IsValidationError(err):
		return KindValidation
	case IsNotFoundError(err):
		return KindNotFound
	case IsWriteConflictError(err):
		return KindWriteConflict
	default:
		return KindInternal
	}
}

// ValidationError describes an input field that was rejected
type ValidationError struct {
	Field string
	Value string
	Err   error
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("validation failed for %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("validation failed for %s (%q): %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"field":      e.Field,
		"value":      e.Value,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, value string, err error) error {
	return &ValidationError{Field: field, Value: value, Err: err}
}

// NotFoundError names the missing resource
type NotFoundError struct {
	Resource string
	ID       string
	UserID   string
	Err      error
}

// Error implements the error interface for NotFoundError
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found for user %s: %v", e.Resource, e.ID, e.UserID, e.Err)
}

// Unwrap returns the underlying error
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the generic not found sentinel
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// LogFields returns a map of fields for structured logging
func (e *NotFoundError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "not_found",
		"resource":   e.Resource,
		"id":         e.ID,
		"user_id":    e.UserID,
		"error_code": ErrorCode(e.Err),
	}
}

// NewNotFoundError creates a not found error for a resource
func NewNotFoundError(resource, id, userID string, err error) error {
	return &NotFoundError{Resource: resource, ID: id, UserID: userID, Err: err}
}

// PartialPlanError reports an installment plan whose members were not all written.
// CreatedIDs are the members that reached the store; OrphanedIDs are the ones
// cleanup could not remove.
type PartialPlanError struct {
	GroupID     string
	UserID      string
	Requested   int
	CreatedIDs  []string
	OrphanedIDs []string
	Err         error
	CleanupErr  error
}

// Error implements the error interface for PartialPlanError
func (e *PartialPlanError) Error() string {
	msg := fmt.Sprintf("installment plan %s for user %s: %d of %d members written: %v",
		e.GroupID, e.UserID, len(e.CreatedIDs), e.Requested, e.Err)
	if len(e.OrphanedIDs) > 0 {
		msg += fmt.Sprintf(" (orphaned: %s)", strings.Join(e.OrphanedIDs, ","))
	}
	if e.CleanupErr != nil {
		msg += fmt.Sprintf(" (cleanup: %v)", e.CleanupErr)
	}
	return msg
}

// Unwrap returns the write error that interrupted the plan
func (e *PartialPlanError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrPartialPlan
func (e *PartialPlanError) Is(target error) bool {
	return target == ErrPartialPlan
}

// Orphaned reports whether any member of the plan is left in the store
func (e *PartialPlanError) Orphaned() bool {
	return len(e.OrphanedIDs) > 0
}

// LogFields returns a map of fields for structured logging
func (e *PartialPlanError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type":   "partial_plan",
		"group_id":     e.GroupID,
		"user_id":      e.UserID,
		"requested":    e.Requested,
		"created_ids":  e.CreatedIDs,
		"orphaned_ids": e.OrphanedIDs,
		"error":        e.Err.Error(),
		"error_code":   CodePartialFailure,
	}
	if e.CleanupErr != nil {
		fields["cleanup_error"] = e.CleanupErr.Error()
	}
	return fields
}

// TransactionError represents an error raised while writing a ledger record
type TransactionError struct {
	TransactionID string
	UserID        string
	Operation     string
	Reason        string
	Err           error
}

// Error implements the error interface for TransactionError
func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s failed for transaction %s (user: %s): %s - %v",
		e.Operation, e.TransactionID, e.UserID, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *TransactionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "transaction_error",
		"transaction_id": e.TransactionID,
		"user_id":        e.UserID,
		"operation":      e.Operation,
		"reason":         e.Reason,
		"error":          e.Err.Error(),
		"error_code":     ErrorCode(e.Err),
	}
}

// NewTransactionError creates a detailed transaction error
func NewTransactionError(transactionID, userID, operation, reason string, err error) error {
	return &TransactionError{
		TransactionID: transactionID,
		UserID:        userID,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

// IsValidationError checks if the error was caused by rejected input
func IsValidationError(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	for _, target := range []error{
		ErrInvalidAmount, ErrNegativeAmount, ErrAmountOverflow, ErrInvalidUserID,
		ErrInvalidTransactionID, ErrInvalidDescription, ErrInvalidTransactionType,
		ErrInvalidPaymentMethod, ErrInvalidDate, ErrInvalidCategory,
		ErrInvalidInstallmentCount, ErrInvalidPeriod, ErrInvalidRequest,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrInstallmentPlanNotFound)
}

// IsWriteConflictError checks if the store refused a write because of its current state
func IsWriteConflictError(err error) bool {
	return errors.Is(err, ErrWriteConflict) ||
		errors.Is(err, ErrDuplicateTransaction) ||
		errors.Is(err, ErrDuplicateCategory) ||
		errors.Is(err, ErrConstraintViolation) ||
		errors.Is(err, ErrNoUnpaidInstallment) ||
		errors.Is(err, ErrNoPaidInstallment)
}

// IsPartialPlanError checks if an installment plan was left partially written
func IsPartialPlanError(err error) bool {
	return errors.Is(err, ErrPartialPlan)
}
