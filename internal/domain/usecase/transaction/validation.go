package transaction

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/usecase"
)

// MaxClientIDLength matches the width of the stored record id, which a standalone
// create takes from the client id
const MaxClientIDLength = 36

// TransactionValidator provides validation for ledger requests
type TransactionValidator struct{}

// NewTransactionValidator creates a new TransactionValidator
func NewTransactionValidator() *TransactionValidator {
	return &TransactionValidator{}
}

// ValidateCreate checks a create request and returns the parsed fields and the
// installment count (1 for standalone records). Dates are read in loc.
func (v *TransactionValidator) ValidateCreate(req usecase.CreateTransactionRequest, loc *time.Location) (entity.TransactionParams, int, error) {
	var params entity.TransactionParams

	if utf8.RuneCountInString(req.ClientID) > MaxClientIDLength {
		return params, 0, errs.NewValidationError("clientId", req.ClientID, errs.ErrInvalidRequest)
	}

	description := entity.StripInstallmentSuffix(req.Description)
	if description == "" {
		return params, 0, errs.NewValidationError("description", req.Description, errs.ErrInvalidDescription)
	}

	amount, err := v.validateAmount(req.Amount)
	if err != nil {
		return params, 0, err
	}

	if !entity.IsValidTransactionType(req.Type) {
		return params, 0, errs.NewValidationError("type", req.Type, errs.ErrInvalidTransactionType)
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		return params, 0, errs.NewValidationError("category", req.Category, errs.ErrInvalidCategory)
	}

	date, err := ParseDate(req.Date, loc)
	if err != nil {
		return params, 0, err
	}

	if req.PaymentMethod != "" && !entity.IsValidPaymentMethod(req.PaymentMethod) {
		return params, 0, errs.NewValidationError("paymentMethod", req.PaymentMethod, errs.ErrInvalidPaymentMethod)
	}

	count, err := v.validateInstallments(req.Installments, amount)
	if err != nil {
		return params, 0, err
	}

	params = entity.TransactionParams{
		Description:   description,
		AmountCents:   amount,
		Type:          entity.TransactionType(req.Type),
		Category:      category,
		Date:          date,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		Notes:         strings.TrimSpace(req.Notes),
	}
	return params, count, nil
}

// ValidateUpdate turns an update request into a patch. Only set fields are validated.
func (v *TransactionValidator) ValidateUpdate(req usecase.UpdateTransactionRequest, loc *time.Location) (entity.TransactionPatch, error) {
	var patch entity.TransactionPatch

	if req.Description != nil {
		description := entity.StripInstallmentSuffix(*req.Description)
		if description == "" {
			return patch, errs.NewValidationError("description", *req.Description, errs.ErrInvalidDescription)
		}
		patch.Description = &description
	}
	if req.Amount != nil {
		amount, err := v.validateAmount(*req.Amount)
		if err != nil {
			return patch, err
		}
		patch.AmountCents = &amount
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return patch, errs.NewValidationError("category", *req.Category, errs.ErrInvalidCategory)
		}
		patch.Category = &category
	}
	if req.Date != nil {
		date, err := ParseDate(*req.Date, loc)
		if err != nil {
			return patch, err
		}
		patch.Date = &date
	}
	if req.PaymentMethod != nil {
		if *req.PaymentMethod != "" && !entity.IsValidPaymentMethod(*req.PaymentMethod) {
			return patch, errs.NewValidationError("paymentMethod", *req.PaymentMethod, errs.ErrInvalidPaymentMethod)
		}
		method := entity.PaymentMethod(*req.PaymentMethod)
		patch.PaymentMethod = &method
	}
	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		patch.Notes = &notes
	}
	return patch, nil
}

// ValidateStatus checks a listing status filter
func (v *TransactionValidator) ValidateStatus(status usecase.StatusFilter) error {
	switch status {
	case "", usecase.StatusAll, usecase.StatusPaid, usecase.StatusPending:
		return nil
	}
	return errs.NewValidationError("status", string(status), errs.ErrInvalidRequest)
}

// validateAmount checks if the amount is valid
func (v *TransactionValidator) validateAmount(amount string) (int64, error) {
	cents, err := entity.ValidateAndConvertAmount(amount)
	if err != nil {
		return 0, errs.NewValidationError("amount", amount, err)
	}
	return cents, nil
}

// validateInstallments normalizes the count and checks the total can be split
func (v *TransactionValidator) validateInstallments(installments int, totalCents int64) (int, error) {
	if installments == 0 {
		installments = 1
	}
	if installments < 1 || installments > entity.MaxInstallments {
		return 0, errs.NewValidationError("installments", strconv.Itoa(installments),
			fmt.Errorf("%w: must be between 1 and %d", errs.ErrInvalidInstallmentCount, entity.MaxInstallments))
	}
	if installments > 1 {
		if _, err := entity.SplitInstallments(totalCents, installments); err != nil {
			return 0, errs.NewValidationError("installments", strconv.Itoa(installments), err)
		}
	}
	return installments, nil
}

// ParseDate reads a YYYY-MM-DD date (or an RFC 3339 timestamp) in loc
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errs.NewValidationError("date", value, errs.ErrInvalidDate)
	}
	if date, err := time.ParseInLocation(entity.DateLayout, value, loc); err == nil {
		return date, nil
	}
	date, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errs.NewValidationError("date", value, errs.ErrInvalidDate)
	}
	return date.In(loc), nil
}
