package entity

import "time"

// InstallmentGroup aggregates the members of one installment plan as seen through a view.
//
// PlanInstallments is the plan size N and never depends on the view. VisibleInstallments
// and PaidInstallments describe the members inside the active date range (the whole
// plan when no range is active). PlanPaidInstallments always counts the whole plan.
type InstallmentGroup struct {
	Key                    string
	Legacy                 bool
	Description            string
	Category               string
	Type                   TransactionType
	PaymentMethod          PaymentMethod
	PlanInstallments       int
	VisibleInstallments    int
	PaidInstallments       int
	PlanPaidInstallments   int
	TotalAmountCents       int64
	InstallmentAmountCents int64
	FirstDate              time.Time
	LastDate               time.Time
	Members                []*Transaction // visible members, by installment number
	AllMembers             []*Transaction // every stored member, by installment number
}

// IsFullyPaid reports whether every visible member is paid
func (g *InstallmentGroup) IsFullyPaid() bool {
	return g.VisibleInstallments > 0 && g.PaidInstallments == g.VisibleInstallments
}

// IsPlanFullyPaid reports whether every member of the plan is paid
func (g *InstallmentGroup) IsPlanFullyPaid() bool {
	return g.PlanInstallments > 0 && g.PlanPaidInstallments >= g.PlanInstallments
}

// NextUnpaid returns the earliest unpaid member of the plan, or nil
func (g *InstallmentGroup) NextUnpaid() *Transaction {
	var next *Transaction
	for _, m := range g.AllMembers {
		if m.IsPaid {
			continue
		}
		if next == nil || m.Date.Before(next.Date) {
			next = m
		}
	}
	return next
}

// LastPaid returns the latest paid member of the plan, or nil
func (g *InstallmentGroup) LastPaid() *Transaction {
	var last *Transaction
	for _, m := range g.AllMembers {
		if !m.IsPaid {
			continue
		}
		if last == nil || !m.Date.Before(last.Date) {
			last = m
		}
	}
	return last
}

// Member finds a plan member by id
func (g *InstallmentGroup) Member(id string) *Transaction {
	for _, m := range g.AllMembers {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// MemberIDs returns the ids of every stored member
func (g *InstallmentGroup) MemberIDs() []string {
	ids := make([]string, 0, len(g.AllMembers))
	for _, m := range g.AllMembers {
		ids = append(ids, m.ID)
	}
	return ids
}

// UnitKind tags what a DisplayUnit holds
type UnitKind string

// Display unit kinds
const (
	UnitInstallmentGroup UnitKind = "installment_group"
	UnitStandalone       UnitKind = "standalone"
)

// DisplayUnit is one row of a listing: either a whole plan or a standalone record
type DisplayUnit struct {
	Kind        UnitKind
	Group       *InstallmentGroup
	Transaction *Transaction
}

// GroupUnit wraps a plan
func GroupUnit(g *InstallmentGroup) DisplayUnit {
	return DisplayUnit{Kind: UnitInstallmentGroup, Group: g}
}

// StandaloneUnit wraps a standalone record
func StandaloneUnit(t *Transaction) DisplayUnit {
	return DisplayUnit{Kind: UnitStandalone, Transaction: t}
}

// Date is the date the unit sorts by: the first visible member for plans
func (u DisplayUnit) Date() time.Time {
	if u.Kind == UnitInstallmentGroup {
		return u.Group.FirstDate
	}
	return u.Transaction.Date
}

// IsPaid is true for settled records and fully paid plans
func (u DisplayUnit) IsPaid() bool {
	if u.Kind == UnitInstallmentGroup {
		return u.Group.IsFullyPaid()
	}
	return u.Transaction.IsPaid
}

// HasUnpaid is true when the unit still has something left to pay
func (u DisplayUnit) HasUnpaid() bool {
	return !u.IsPaid()
}

// Type returns the income/expense type of the unit
func (u DisplayUnit) Type() TransactionType {
	if u.Kind == UnitInstallmentGroup {
		return u.Group.Type
	}
	return u.Transaction.Type
}

// Category returns the category name of the unit
func (u DisplayUnit) Category() string {
	if u.Kind == UnitInstallmentGroup {
		return u.Group.Category
	}
	return u.Transaction.Category
}

// Description returns the canonical description of the unit
func (u DisplayUnit) Description() string {
	if u.Kind == UnitInstallmentGroup {
		return u.Group.Description
	}
	return u.Transaction.Description
}

// ProgressTier buckets a completion percentage for display
type ProgressTier string

// Progress tiers
const (
	TierNeutral  ProgressTier = "neutral"
	TierLow      ProgressTier = "low"
	TierMid      ProgressTier = "mid"
	TierHigh     ProgressTier = "high"
	TierComplete ProgressTier = "complete"
)

// TierFor maps a percentage to its tier: 0 neutral, (0,33] low, (33,66] mid,
// (66,100) high, 100 complete.
func TierFor(percentage float64) ProgressTier {
	switch {
	case percentage <= 0:
		return TierNeutral
	case percentage <= 33:
		return TierLow
	case percentage <= 66:
		return TierMid
	case percentage < 100:
		return TierHigh
	default:
		return TierComplete
	}
}

// Progress describes how far a plan has been paid
type Progress struct {
	PaidCount      int
	TotalCount     int
	Percentage     float64
	RemainingCents int64
	Tier           ProgressTier
}
