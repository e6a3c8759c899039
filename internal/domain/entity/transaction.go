package entity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	tport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
)

// TransactionType tells whether a record adds to or takes from the balance
type TransactionType string

// Transaction types
const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// PaymentMethod is how a record was (or will be) settled
type PaymentMethod string

// Payment methods
const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentPix      PaymentMethod = "pix"
	PaymentTransfer PaymentMethod = "transfer"
)

// TransactionKind distinguishes standalone records from installment plan members
type TransactionKind string

// Transaction kinds
const (
	KindStandalone  TransactionKind = "standalone"
	KindInstallment TransactionKind = "installment"
)

// MaxInstallments caps the size of a single plan
const MaxInstallments = 360

var installmentSuffix = regexp.MustCompile(`\s*\(\d+/\d+\)$`)

// InstallmentInfo holds the plan fields carried by every member of an installment plan
type InstallmentInfo struct {
	GroupID    string // Shared by all members of the plan; empty only on legacy records
	Number     int    // 1-based position inside the plan
	Count      int    // Plan size N
	TotalCents int64  // Plan total, 0 when unknown
}

// Transaction is a single ledger record. Installment members carry Installment;
// standalone records leave it nil.
type Transaction struct {
	ID            string
	UserID        string
	Description   string // Canonical description, without the "(n/N)" suffix
	AmountCents   int64  // Per installment amount for plan members
	Type          TransactionType
	Category      string
	Date          time.Time
	PaymentMethod PaymentMethod
	Notes         string
	IsPaid        bool
	Kind          TransactionKind
	Installment   *InstallmentInfo
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TransactionParams carries the user supplied fields shared by standalone and plan records
type TransactionParams struct {
	ID            string
	UserID        string
	Description   string
	AmountCents   int64
	Type          TransactionType
	Category      string
	Date          time.Time
	PaymentMethod PaymentMethod
	Notes         string
}

// NewStandaloneTransaction creates an unpaid standalone record
func NewStandaloneTransaction(params TransactionParams, timeProvider tport.TimeProvider) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &Transaction{
		ID:            params.ID,
		UserID:        params.UserID,
		Description:   StripInstallmentSuffix(params.Description),
		AmountCents:   params.AmountCents,
		Type:          params.Type,
		Category:      params.Category,
		Date:          params.Date,
		PaymentMethod: params.PaymentMethod,
		Notes:         params.Notes,
		Kind:          KindStandalone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// NewInstallmentMember creates one unpaid member of an installment plan
func NewInstallmentMember(params TransactionParams, info InstallmentInfo, timeProvider tport.TimeProvider) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if info.GroupID == "" {
		return nil, errs.NewValidationError("installmentGroupId", "", errs.ErrInvalidRequest)
	}
	if info.Count < 2 || info.Count > MaxInstallments {
		return nil, errs.NewValidationError("installments", strconv.Itoa(info.Count), errs.ErrInvalidInstallmentCount)
	}
	if info.Number < 1 || info.Number > info.Count {
		return nil, errs.NewValidationError("installmentNumber", strconv.Itoa(info.Number), errs.ErrInvalidInstallmentCount)
	}

	tx, _ := NewStandaloneTransaction(params, timeProvider)
	tx.Kind = KindInstallment
	tx.Installment = &info
	return tx, nil
}

// Validate checks the fields every record needs
func (p TransactionParams) Validate() error {
	if p.ID == "" {
		return errs.ErrInvalidTransactionID
	}
	if p.UserID == "" {
		return errs.ErrInvalidUserID
	}
	if strings.TrimSpace(StripInstallmentSuffix(p.Description)) == "" {
		return errs.NewValidationError("description", p.Description, errs.ErrInvalidDescription)
	}
	if p.AmountCents <= 0 {
		return errs.NewValidationError("amount", AmountInCentsToString(p.AmountCents), errs.ErrNegativeAmount)
	}
	if !IsValidTransactionType(string(p.Type)) {
		return errs.NewValidationError("type", string(p.Type), errs.ErrInvalidTransactionType)
	}
	if p.PaymentMethod != "" && !IsValidPaymentMethod(string(p.PaymentMethod)) {
		return errs.NewValidationError("paymentMethod", string(p.PaymentMethod), errs.ErrInvalidPaymentMethod)
	}
	if p.Date.IsZero() {
		return errs.NewValidationError("date", "", errs.ErrInvalidDate)
	}
	return nil
}

// IsInstallment reports whether the record belongs to an installment plan
func (t *Transaction) IsInstallment() bool {
	return t.Kind == KindInstallment && t.Installment != nil && t.Installment.Count > 1
}

// IsExpense returns true if this record takes from the balance
func (t *Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// IsIncome returns true if this record adds to the balance
func (t *Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// Amount returns the amount as a string with 2 decimal places
func (t *Transaction) Amount() string {
	return AmountInCentsToString(t.AmountCents)
}

// DisplayDescription renders the description with its "(n/N)" position for plan members
func (t *Transaction) DisplayDescription() string {
	if !t.IsInstallment() {
		return t.Description
	}
	return fmt.Sprintf("%s (%d/%d)", t.Description, t.Installment.Number, t.Installment.Count)
}

// PlanTotalCents is the plan total, or AmountCents*N when the total was never stored
func (t *Transaction) PlanTotalCents() int64 {
	if !t.IsInstallment() {
		return t.AmountCents
	}
	if t.Installment.TotalCents > 0 {
		return t.Installment.TotalCents
	}
	return t.AmountCents * int64(t.Installment.Count)
}

// GroupKey returns the key that ties plan members together. Records without a
// group id only get a key when allowLegacy is set.
func (t *Transaction) GroupKey(allowLegacy bool) (string, bool) {
	if !t.IsInstallment() {
		return "", false
	}
	if t.Installment.GroupID != "" {
		return t.Installment.GroupID, true
	}
	if !allowLegacy {
		return "", false
	}
	return LegacyGroupKey(t.Description, t.PlanTotalCents()), true
}

// SetPaid changes the paid flag and touches UpdatedAt
func (t *Transaction) SetPaid(paid bool, timeProvider tport.TimeProvider) {
	t.IsPaid = paid
	t.UpdatedAt = timeProvider.Now()
}

// Clone returns a deep copy of the record
func (t *Transaction) Clone() *Transaction {
	if t == nil {
		return nil
	}
	c := *t
	if t.Installment != nil {
		info := *t.Installment
		c.Installment = &info
	}
	return &c
}

// TransactionPatch lists the fields an update may change. Nil fields are left untouched.
type TransactionPatch struct {
	Description   *string
	AmountCents   *int64
	Category      *string
	Date          *time.Time
	PaymentMethod *PaymentMethod
	Notes         *string
	IsPaid        *bool
}

// Apply writes the patch onto t
func (p TransactionPatch) Apply(t *Transaction, timeProvider tport.TimeProvider) {
	if p.Description != nil {
		t.Description = StripInstallmentSuffix(*p.Description)
	}
	if p.AmountCents != nil {
		t.AmountCents = *p.AmountCents
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.PaymentMethod != nil {
		t.PaymentMethod = *p.PaymentMethod
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.IsPaid != nil {
		t.IsPaid = *p.IsPaid
	}
	t.UpdatedAt = timeProvider.Now()
}

// PaidPatch is the patch produced by payment toggles
func PaidPatch(paid bool) TransactionPatch {
	return TransactionPatch{IsPaid: &paid}
}

// StripInstallmentSuffix removes a trailing "(n/N)" from a description
func StripInstallmentSuffix(description string) string {
	return strings.TrimSpace(installmentSuffix.ReplaceAllString(description, ""))
}

// LegacyGroupKey derives a group key for plan members stored without a group id
func LegacyGroupKey(description string, totalCents int64) string {
	return StripInstallmentSuffix(description) + "_" + AmountInCentsToString(totalCents)
}

// IsValidTransactionType validates if the type is allowed
func IsValidTransactionType(value string) bool {
	return value == string(TypeIncome) || value == string(TypeExpense)
}

// IsValidPaymentMethod validates if the payment method is allowed
func IsValidPaymentMethod(value string) bool {
	switch PaymentMethod(value) {
	case PaymentCash, PaymentCard, PaymentPix, PaymentTransfer:
		return true
	}
	return false
}
