package reconcile

import (
	"sort"
	"time"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
)

// DefaultNearDueDays is the window of the near due view
const DefaultNearDueDays = 7

// NearDueRange covers the start of today through the end of the day days later
func NearDueRange(now time.Time, days int) entity.DateRange {
	return entity.DateRange{
		Start: entity.StartOfDay(now),
		End:   entity.EndOfDay(now.AddDate(0, 0, days)),
	}
}

// NearDue returns the unpaid expenses due within days of now, earliest first.
// Installment members are listed individually.
func NearDue(records []*entity.Transaction, now time.Time, days int) []*entity.Transaction {
	window := NearDueRange(now, days)

	out := make([]*entity.Transaction, 0)
	for _, record := range records {
		if !wellFormed(record) || record.IsPaid || !record.IsExpense() {
			continue
		}
		if window.Contains(record.Date) {
			out = append(out, record)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
