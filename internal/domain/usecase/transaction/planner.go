package transaction

import (
	"fmt"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
)

// IDGenerator mints record and plan ids
type IDGenerator func() string

// BuildPlan expands params into count unpaid members sharing groupID. Member i is
// dated i calendar months after params.Date (AddDate semantics, so Jan 31 + 1 month
// lands on Mar 2 or Mar 3) and the last member absorbs the rounding remainder.
// params.AmountCents is the plan total.
func BuildPlan(params entity.TransactionParams, count int, groupID string, newID IDGenerator, timeProvider coreport.TimeProvider) ([]*entity.Transaction, error) {
	amounts, err := entity.SplitInstallments(params.AmountCents, count)
	if err != nil {
		return nil, err
	}

	members := make([]*entity.Transaction, 0, count)
	for i := 0; i < count; i++ {
		memberParams := params
		memberParams.ID = newID()
		memberParams.AmountCents = amounts[i]
		memberParams.Date = params.Date.AddDate(0, i, 0)
		if params.Notes == "" {
			memberParams.Notes = fmt.Sprintf("Parcela %d de %d", i+1, count)
		}

		member, err := entity.NewInstallmentMember(memberParams, entity.InstallmentInfo{
			GroupID:    groupID,
			Number:     i + 1,
			Count:      count,
			TotalCents: params.AmountCents,
		}, timeProvider)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, nil
}
