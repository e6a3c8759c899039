package error

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	if ErrInvalidAmount.Error() != "invalid amount format" {
		t.Errorf("ErrInvalidAmount has unexpected message: %s", ErrInvalidAmount.Error())
	}
	if ErrPartialPlan.Error() != "installment plan partially written" {
		t.Errorf("ErrPartialPlan has unexpected message: %s", ErrPartialPlan.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InvalidAmount", ErrInvalidAmount, CodeInvalidAmount},
		{"NegativeAmount", ErrNegativeAmount, CodeInvalidAmount},
		{"InvalidUserID", ErrInvalidUserID, CodeInvalidUserID},
		{"InvalidInstallments", ErrInvalidInstallmentCount, CodeInvalidInstallments},
		{"InvalidPeriod", ErrInvalidPeriod, CodeInvalidPeriod},
		{"TransactionNotFound", ErrTransactionNotFound, CodeTransactionNotFound},
		{"PlanNotFound", ErrInstallmentPlanNotFound, CodePlanNotFound},
		{"Duplicate", ErrDuplicateTransaction, CodeDuplicateRecord},
		{"NothingToPay", ErrNoUnpaidInstallment, CodeNothingToToggle},
		{"ConstraintViolation", ErrConstraintViolation, CodeWriteConflict},
		{"PartialPlan", &PartialPlanError{Err: ErrDatabaseConnection}, CodePartialFailure},
		{"ValidationWrapper", NewValidationError("description", "", ErrInvalidDescription), CodeValidation},
		{"UnknownError", errors.New("unknown error"), CodeInternalServer},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidUserID), CodeInvalidUserID},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"nil error has no kind", nil, ""},
		{"rejected field is validation", NewValidationError("amount", "abc", ErrInvalidAmount), KindValidation},
		{"bad period is validation", fmt.Errorf("%w: yesterday", ErrInvalidPeriod), KindValidation},
		{"missing record is not found", NewNotFoundError("transaction", "t1", "u1", ErrTransactionNotFound), KindNotFound},
		{"duplicate key is write conflict", fmt.Errorf("%w: id", ErrDuplicateTransaction), KindWriteConflict},
		{"settled plan is write conflict", ErrNoUnpaidInstallment, KindWriteConflict},
		{"partial plan wins over its cause", &PartialPlanError{Err: ErrWriteConflict}, KindPartialFailure},
		{"connection failure is internal", ErrDatabaseConnection, KindInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.expected {
				t.Errorf("KindOf(%v) = %q, want %q", tc.err, got, tc.expected)
			}
		})
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("transaction", "t1", "u1", ErrTransactionNotFound)

	if !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("errors.Is(err, ErrTransactionNotFound) = false, want true")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("errors.Is(err, ErrNotFound) = false, want true")
	}
	if !IsNotFoundError(err) {
		t.Errorf("IsNotFoundError(err) = false, want true")
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Resource != "transaction" {
		t.Fatalf("errors.As did not recover the NotFoundError")
	}
	if nf.LogFields()["error_code"] != CodeTransactionNotFound {
		t.Errorf("LogFields error_code = %v, want %d", nf.LogFields()["error_code"], CodeTransactionNotFound)
	}
}

func TestPartialPlanError(t *testing.T) {
	cause := fmt.Errorf("%w: timeout", ErrDatabaseConnection)
	err := &PartialPlanError{
		GroupID:     "g1",
		UserID:      "u1",
		Requested:   3,
		CreatedIDs:  []string{"a", "b"},
		OrphanedIDs: []string{"b"},
		Err:         cause,
		CleanupErr:  errors.New("delete b failed"),
	}

	if !errors.Is(err, ErrPartialPlan) {
		t.Errorf("errors.Is(err, ErrPartialPlan) = false, want true")
	}
	if !errors.Is(err, ErrDatabaseConnection) {
		t.Errorf("errors.Is(err, ErrDatabaseConnection) = false, want true")
	}
	if !err.Orphaned() {
		t.Errorf("Orphaned() = false, want true")
	}

	msg := err.Error()
	for _, part := range []string{"2 of 3", "orphaned: b", "cleanup: delete b failed"} {
		if !strings.Contains(msg, part) {
			t.Errorf("Error() = %q, missing %q", msg, part)
		}
	}

	fields := err.LogFields()
	if fields["group_id"] != "g1" || fields["cleanup_error"] != "delete b failed" {
		t.Errorf("LogFields() = %v", fields)
	}
}

func TestTransactionError(t *testing.T) {
	txError := NewTransactionError("t1", "u1", "set_paid", "store rejected update", ErrWriteConflict)

	expected := "set_paid failed for transaction t1 (user: u1): store rejected update - write conflict"
	if txError.Error() != expected {
		t.Errorf("TransactionError.Error() = %s, want %s", txError.Error(), expected)
	}
	if !errors.Is(txError, ErrWriteConflict) {
		t.Errorf("errors.Is(txError, ErrWriteConflict) = false, want true")
	}
	if KindOf(txError) != KindWriteConflict {
		t.Errorf("KindOf(txError) = %q, want %q", KindOf(txError), KindWriteConflict)
	}
}
