package reconcile

import "github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"

// CountBasis selects which installment count progress is measured against
type CountBasis int

const (
	// BasisPlan measures against the plan size N
	BasisPlan CountBasis = iota
	// BasisVisible measures against the members inside the active date range
	BasisVisible
)

// Progress computes how far a plan is paid. The counts and the percentage follow
// basis; RemainingCents always measures the whole plan: total -
// installmentAmount*planPaid clamped at zero, and zero once every member of the
// plan is paid so the rounding remainder of the last member never shows.
func Progress(g *entity.InstallmentGroup, basis CountBasis) entity.Progress {
	if g == nil {
		return entity.Progress{Tier: entity.TierNeutral}
	}

	paid, total := g.PlanPaidInstallments, g.PlanInstallments
	if basis == BasisVisible {
		paid, total = g.PaidInstallments, g.VisibleInstallments
	}
	if paid > total {
		paid = total
	}

	var percentage float64
	if total > 0 {
		percentage = float64(paid) / float64(total) * 100
	}

	planPaid := min(g.PlanPaidInstallments, g.PlanInstallments)
	remaining := g.TotalAmountCents - g.InstallmentAmountCents*int64(planPaid)
	if remaining < 0 || g.IsPlanFullyPaid() {
		remaining = 0
	}

	return entity.Progress{
		PaidCount:      paid,
		TotalCount:     total,
		Percentage:     percentage,
		RemainingCents: remaining,
		Tier:           entity.TierFor(percentage),
	}
}
