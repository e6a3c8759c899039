package reconcile

import (
	"sort"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/usecase"
)

// SortUnits orders units in place: units with something left to pay first, then by
// representative date, most recent first. Ties keep their input order.
func SortUnits(units []entity.DisplayUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		a, b := units[i], units[j]
		if a.IsPaid() != b.IsPaid() {
			return !a.IsPaid()
		}
		return a.Date().After(b.Date())
	})
}

// FilterStatus keeps the units matching status. Paid keeps settled records and fully
// paid plans; pending keeps everything with an unpaid member.
func FilterStatus(units []entity.DisplayUnit, status usecase.StatusFilter) []entity.DisplayUnit {
	if status == "" || status == usecase.StatusAll {
		return units
	}

	out := make([]entity.DisplayUnit, 0, len(units))
	for _, unit := range units {
		switch status {
		case usecase.StatusPaid:
			if unit.IsPaid() {
				out = append(out, unit)
			}
		case usecase.StatusPending:
			if unit.HasUnpaid() {
				out = append(out, unit)
			}
		}
	}
	return out
}

// TopByAmount returns the n largest records of txType, amount descending.
// This ordering belongs to the report views only.
func TopByAmount(records []*entity.Transaction, txType entity.TransactionType, n int) []*entity.Transaction {
	out := make([]*entity.Transaction, 0, len(records))
	for _, record := range records {
		if wellFormed(record) && record.Type == txType {
			out = append(out, record)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AmountCents > out[j].AmountCents
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
