package dto

import (
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/usecase"
)

// ToggleSelectedRequest lists the plan members whose paid flag is flipped
type ToggleSelectedRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// ProgressResponse describes how far a plan has been paid
type ProgressResponse struct {
	PaidCount  int     `json:"paidCount"`
	TotalCount int     `json:"totalCount"`
	Percentage float64 `json:"percentage"`
	Remaining  string  `json:"remaining"`
	Tier       string  `json:"tier"`
}

// NewProgressResponse maps plan progress
func NewProgressResponse(p entity.Progress) ProgressResponse {
	return ProgressResponse{
		PaidCount:  p.PaidCount,
		TotalCount: p.TotalCount,
		Percentage: p.Percentage,
		Remaining:  entity.AmountInCentsToString(p.RemainingCents),
		Tier:       string(p.Tier),
	}
}

// GroupResponse is one installment plan as seen through a listing
type GroupResponse struct {
	GroupID              string                `json:"groupId"`
	Legacy               bool                  `json:"legacy,omitempty"`
	Description          string                `json:"description"`
	Category             string                `json:"category"`
	Type                 string                `json:"type"`
	PaymentMethod        string                `json:"paymentMethod,omitempty"`
	PlanInstallments     int                   `json:"planInstallments"`
	VisibleInstallments  int                   `json:"visibleInstallments"`
	PaidInstallments     int                   `json:"paidInstallments"`
	PlanPaidInstallments int                   `json:"planPaidInstallments"`
	TotalAmount          string                `json:"totalAmount"`
	InstallmentAmount    string                `json:"installmentAmount"`
	FirstDate            string                `json:"firstDate"`
	LastDate             string                `json:"lastDate"`
	Members              []TransactionResponse `json:"members"`
}

// NewGroupResponse maps a plan with its visible members
func NewGroupResponse(g *entity.InstallmentGroup) GroupResponse {
	return GroupResponse{
		GroupID:              g.Key,
		Legacy:               g.Legacy,
		Description:          g.Description,
		Category:             g.Category,
		Type:                 string(g.Type),
		PaymentMethod:        string(g.PaymentMethod),
		PlanInstallments:     g.PlanInstallments,
		VisibleInstallments:  g.VisibleInstallments,
		PaidInstallments:     g.PaidInstallments,
		PlanPaidInstallments: g.PlanPaidInstallments,
		TotalAmount:          entity.AmountInCentsToString(g.TotalAmountCents),
		InstallmentAmount:    entity.AmountInCentsToString(g.InstallmentAmountCents),
		FirstDate:            g.FirstDate.Format(entity.DateLayout),
		LastDate:             g.LastDate.Format(entity.DateLayout),
		Members:              NewTransactionResponses(g.Members),
	}
}

// UnitResponse is one listing row: a standalone record or a whole plan
type UnitResponse struct {
	Kind        string               `json:"kind"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
	Group       *GroupResponse       `json:"group,omitempty"`
	Progress    *ProgressResponse    `json:"progress,omitempty"`
}

// NewUnitResponses maps the rows of a listing
func NewUnitResponses(views []usecase.UnitView) []UnitResponse {
	out := make([]UnitResponse, 0, len(views))
	for _, v := range views {
		row := UnitResponse{Kind: string(v.Unit.Kind)}
		if v.Unit.Kind == entity.UnitInstallmentGroup {
			group := NewGroupResponse(v.Unit.Group)
			row.Group = &group
		} else {
			t := NewTransactionResponse(v.Unit.Transaction)
			row.Transaction = &t
		}
		if v.Progress != nil {
			progress := NewProgressResponse(*v.Progress)
			row.Progress = &progress
		}
		out = append(out, row)
	}
	return out
}

// PlanResponse is a whole plan with plan wide progress
type PlanResponse struct {
	Group    GroupResponse    `json:"group"`
	Progress ProgressResponse `json:"progress"`
}

// NewPlanResponse maps a plan view
func NewPlanResponse(v *usecase.PlanView) PlanResponse {
	return PlanResponse{
		Group:    NewGroupResponse(v.Group),
		Progress: NewProgressResponse(v.Progress),
	}
}
