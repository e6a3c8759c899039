package reconcile

import (
	"fmt"
	"time"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// plan builds the members of a plan of count installments starting at start
func plan(groupID, description string, totalCents int64, count int, start time.Time, paid ...int) []*entity.Transaction {
	amounts, err := entity.SplitInstallments(totalCents, count)
	if err != nil {
		panic(err)
	}
	isPaid := make(map[int]bool)
	for _, n := range paid {
		isPaid[n] = true
	}

	members := make([]*entity.Transaction, count)
	for i := 0; i < count; i++ {
		members[i] = &entity.Transaction{
			ID:          fmt.Sprintf("%s-%d", groupID, i+1),
			UserID:      "user-1",
			Description: description,
			AmountCents: amounts[i],
			Type:        entity.TypeExpense,
			Category:    "Casa",
			Date:        start.AddDate(0, i, 0),
			IsPaid:      isPaid[i+1],
			Kind:        entity.KindInstallment,
			Installment: &entity.InstallmentInfo{GroupID: groupID, Number: i + 1, Count: count, TotalCents: totalCents},
		}
	}
	return members
}

func standalone(id string, txType entity.TransactionType, amountCents int64, date time.Time, paid bool) *entity.Transaction {
	return &entity.Transaction{
		ID:          id,
		UserID:      "user-1",
		Description: "Record " + id,
		AmountCents: amountCents,
		Type:        txType,
		Category:    "Lazer",
		Date:        date,
		IsPaid:      paid,
		Kind:        entity.KindStandalone,
	}
}

func concat(parts ...[]*entity.Transaction) []*entity.Transaction {
	var out []*entity.Transaction
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func unitIDs(units []entity.DisplayUnit) []string {
	ids := make([]string, 0, len(units))
	for _, u := range units {
		if u.Kind == entity.UnitInstallmentGroup {
			ids = append(ids, u.Group.Key)
		} else {
			ids = append(ids, u.Transaction.ID)
		}
	}
	return ids
}
