package dto

import (
	"time"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/usecase"
)

// CreateTransactionRequest represents the API request for a new record or installment plan.
// Amount is the plan total when Installments is greater than 1.
type CreateTransactionRequest struct {
	ClientID      string `json:"clientId" binding:"omitempty,max=36"`
	Description   string `json:"description" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	Type          string `json:"type" binding:"required,oneof=income expense"`
	Category      string `json:"category"`
	Date          string `json:"date" binding:"required"`
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`
	Installments  int    `json:"installments" binding:"omitempty,min=1"`
}

// ToUseCase maps the request to the use case request
func (r CreateTransactionRequest) ToUseCase() usecase.CreateTransactionRequest {
	return usecase.CreateTransactionRequest{
		ClientID:      r.ClientID,
		Description:   r.Description,
		Amount:        r.Amount,
		Type:          r.Type,
		Category:      r.Category,
		Date:          r.Date,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
		Installments:  r.Installments,
	}
}

// UpdateTransactionRequest carries the fields to change. Omitted fields are kept.
type UpdateTransactionRequest struct {
	Description   *string `json:"description"`
	Amount        *string `json:"amount"`
	Category      *string `json:"category"`
	Date          *string `json:"date"`
	PaymentMethod *string `json:"paymentMethod"`
	Notes         *string `json:"notes"`
}

// ToUseCase maps the request to the use case request
func (r UpdateTransactionRequest) ToUseCase() usecase.UpdateTransactionRequest {
	return usecase.UpdateTransactionRequest{
		Description:   r.Description,
		Amount:        r.Amount,
		Category:      r.Category,
		Date:          r.Date,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
	}
}

// SetPaidRequest sets the paid flag of a record
type SetPaidRequest struct {
	Paid *bool `json:"paid" binding:"required"`
}

// InstallmentResponse holds the plan fields of an installment member
type InstallmentResponse struct {
	GroupID string `json:"groupId,omitempty"`
	Number  int    `json:"number"`
	Count   int    `json:"count"`
	Total   string `json:"total,omitempty"`
}

// TransactionResponse represents one stored record
type TransactionResponse struct {
	ID                 string               `json:"id"`
	Description        string               `json:"description"`
	DisplayDescription string               `json:"displayDescription"`
	Amount             string               `json:"amount"`
	Type               string               `json:"type"`
	Category           string               `json:"category"`
	Date               string               `json:"date"`
	PaymentMethod      string               `json:"paymentMethod,omitempty"`
	Notes              string               `json:"notes,omitempty"`
	IsPaid             bool                 `json:"isPaid"`
	Kind               string               `json:"kind"`
	Installment        *InstallmentResponse `json:"installment,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

// NewTransactionResponse maps a record to its API representation
func NewTransactionResponse(t *entity.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:                 t.ID,
		Description:        t.Description,
		DisplayDescription: t.DisplayDescription(),
		Amount:             t.Amount(),
		Type:               string(t.Type),
		Category:           t.Category,
		Date:               t.Date.Format(entity.DateLayout),
		PaymentMethod:      string(t.PaymentMethod),
		Notes:              t.Notes,
		IsPaid:             t.IsPaid,
		Kind:               string(t.Kind),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
	if t.Installment != nil {
		resp.Installment = &InstallmentResponse{
			GroupID: t.Installment.GroupID,
			Number:  t.Installment.Number,
			Count:   t.Installment.Count,
		}
		if total := t.PlanTotalCents(); total > 0 {
			resp.Installment.Total = entity.AmountInCentsToString(total)
		}
	}
	return resp
}

// NewTransactionResponses maps a list of records
func NewTransactionResponses(records []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(records))
	for _, t := range records {
		out = append(out, NewTransactionResponse(t))
	}
	return out
}

// MutationResponse reports the records a write touched
type MutationResponse struct {
	Operation    string                `json:"operation"`
	Transactions []TransactionResponse `json:"transactions"`
	AffectedIDs  []string              `json:"affectedIds"`
}

// NewMutationResponse maps a use case mutation result
func NewMutationResponse(r *usecase.MutationResult) MutationResponse {
	ids := r.AffectedIDs
	if ids == nil {
		ids = []string{}
	}
	return MutationResponse{
		Operation:    r.Operation,
		Transactions: NewTransactionResponses(r.Transactions),
		AffectedIDs:  ids,
	}
}
