// Package reconcile turns flat ledger records into display units. Everything here is
// pure: no I/O, no clocks, no hidden state. Callers pass the current time and the
// date range they want.
package reconcile

import (
	"sort"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
)

// GroupOptions configures one grouping pass
type GroupOptions struct {
	// DateRange limits the visible records; nil shows everything
	DateRange *entity.DateRange
	// IncludeFullyPaidGroups keeps plans whose visible members are all paid
	IncludeFullyPaidGroups bool
	// AllowLegacyGroupKey groups members stored without a group id by description and total
	AllowLegacyGroupKey bool
	// Logger receives warnings about skipped records; may be nil
	Logger core.Logger
}

// Group partitions records into installment plans and standalone records, applies the
// date range and the fully paid predicate, and returns the units in display order.
// Malformed records are skipped.
func Group(records []*entity.Transaction, opts GroupOptions) []entity.DisplayUnit {
	groups := make(map[string]*entity.InstallmentGroup)
	var keys []string
	var standalone []*entity.Transaction

	for _, record := range records {
		if !wellFormed(record) {
			warn(opts.Logger, "Skipping malformed record", record)
			continue
		}

		key, grouped := record.GroupKey(opts.AllowLegacyGroupKey)
		if !grouped {
			if opts.DateRange.Contains(record.Date) {
				standalone = append(standalone, record)
			}
			continue
		}

		g, ok := groups[key]
		if !ok {
			g = &entity.InstallmentGroup{Key: key, Legacy: record.Installment.GroupID == ""}
			groups[key] = g
			keys = append(keys, key)
		}
		addMember(g, record, opts.DateRange)
	}

	units := make([]entity.DisplayUnit, 0, len(keys)+len(standalone))
	for _, key := range keys {
		g := groups[key]
		finalize(g)
		if g.VisibleInstallments == 0 {
			continue
		}
		if !opts.IncludeFullyPaidGroups && g.IsFullyPaid() {
			continue
		}
		units = append(units, entity.GroupUnit(g))
	}
	for _, record := range standalone {
		units = append(units, entity.StandaloneUnit(record))
	}

	SortUnits(units)
	return units
}

// GroupPlan aggregates the members of a single plan with no date range. It returns
// nil when members is empty.
func GroupPlan(members []*entity.Transaction) *entity.InstallmentGroup {
	var g *entity.InstallmentGroup
	for _, record := range members {
		if !wellFormed(record) || !record.IsInstallment() {
			continue
		}
		if g == nil {
			key, _ := record.GroupKey(true)
			g = &entity.InstallmentGroup{Key: key, Legacy: record.Installment.GroupID == ""}
		}
		addMember(g, record, nil)
	}
	if g != nil {
		finalize(g)
	}
	return g
}

func addMember(g *entity.InstallmentGroup, record *entity.Transaction, dateRange *entity.DateRange) {
	g.AllMembers = append(g.AllMembers, record)
	if record.IsPaid {
		g.PlanPaidInstallments++
	}
	if record.Installment.Count > g.PlanInstallments {
		g.PlanInstallments = record.Installment.Count
	}

	if !dateRange.Contains(record.Date) {
		return
	}
	g.Members = append(g.Members, record)
	g.VisibleInstallments++
	if record.IsPaid {
		g.PaidInstallments++
	}
	if g.FirstDate.IsZero() || record.Date.Before(g.FirstDate) {
		g.FirstDate = record.Date
	}
	if record.Date.After(g.LastDate) {
		g.LastDate = record.Date
	}
}

// finalize orders members and copies the plan fields from the first member
func finalize(g *entity.InstallmentGroup) {
	byNumber := func(members []*entity.Transaction) func(i, j int) bool {
		return func(i, j int) bool {
			a, b := members[i], members[j]
			if a.Installment.Number != b.Installment.Number {
				return a.Installment.Number < b.Installment.Number
			}
			return a.Date.Before(b.Date)
		}
	}
	sort.SliceStable(g.AllMembers, byNumber(g.AllMembers))
	sort.SliceStable(g.Members, byNumber(g.Members))

	first := g.AllMembers[0]
	g.Description = entity.StripInstallmentSuffix(first.Description)
	g.Category = first.Category
	g.Type = first.Type
	g.PaymentMethod = first.PaymentMethod
	g.InstallmentAmountCents = first.AmountCents
	g.TotalAmountCents = first.PlanTotalCents()
	if g.PlanPaidInstallments > g.PlanInstallments {
		g.PlanPaidInstallments = g.PlanInstallments
	}
}

func wellFormed(record *entity.Transaction) bool {
	return record != nil && record.ID != "" && !record.Date.IsZero()
}

func warn(logger core.Logger, message string, record *entity.Transaction) {
	if logger == nil {
		return
	}
	fields := map[string]any{}
	if record != nil {
		fields["transaction_id"] = record.ID
		fields["user_id"] = record.UserID
	}
	logger.Warn(message, fields)
}
