package reconcile

import (
	"testing"
	"time"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress(t *testing.T) {
	t.Run("One of three paid", func(t *testing.T) {
		g := GroupPlan(plan("g1", "Notebook", 10000, 3, day(2024, 1, 15), 1))

		p := Progress(g, BasisPlan)

		assert.Equal(t, 1, p.PaidCount)
		assert.Equal(t, 3, p.TotalCount)
		assert.InDelta(t, 33.33, p.Percentage, 0.01)
		assert.Equal(t, int64(10000-3333), p.RemainingCents)
		assert.Equal(t, entity.TierMid, p.Tier)
	})

	t.Run("Nothing paid is neutral", func(t *testing.T) {
		p := Progress(GroupPlan(plan("g1", "Notebook", 10000, 4, day(2024, 1, 15))), BasisPlan)

		assert.Equal(t, 0.0, p.Percentage)
		assert.Equal(t, int64(10000), p.RemainingCents)
		assert.Equal(t, entity.TierNeutral, p.Tier)
	})

	t.Run("Fully paid plan has nothing remaining", func(t *testing.T) {
		p := Progress(GroupPlan(plan("g1", "Notebook", 10000, 3, day(2024, 1, 15), 1, 2, 3)), BasisPlan)

		assert.Equal(t, 100.0, p.Percentage)
		assert.Equal(t, int64(0), p.RemainingCents)
		assert.Equal(t, entity.TierComplete, p.Tier)
	})

	t.Run("Visible basis measures the filtered view", func(t *testing.T) {
		feb := entity.MonthRange(2024, time.February, time.UTC)
		units := Group(plan("g1", "Notebook", 10000, 3, day(2024, 1, 15), 2), GroupOptions{DateRange: &feb, IncludeFullyPaidGroups: true})
		require.Len(t, units, 1)

		visible := Progress(units[0].Group, BasisVisible)
		whole := Progress(units[0].Group, BasisPlan)

		assert.Equal(t, 1, visible.TotalCount)
		assert.Equal(t, entity.TierComplete, visible.Tier)
		assert.Equal(t, 3, whole.TotalCount)
		assert.Equal(t, entity.TierMid, whole.Tier)
	})

	t.Run("Remaining always measures the whole plan", func(t *testing.T) {
		feb := entity.MonthRange(2024, time.February, time.UTC)
		units := Group(plan("g1", "Notebook", 10000, 3, day(2024, 1, 15), 2), GroupOptions{DateRange: &feb, IncludeFullyPaidGroups: true})
		require.Len(t, units, 1)

		visible := Progress(units[0].Group, BasisVisible)
		assert.Equal(t, 1, visible.PaidCount)
		assert.Equal(t, 1, visible.TotalCount)
		assert.Equal(t, int64(10000-3333), visible.RemainingCents)

		mar := entity.MonthRange(2024, time.March, time.UTC)
		units = Group(plan("g1", "Notebook", 10000, 3, day(2024, 1, 15), 1, 2), GroupOptions{DateRange: &mar})
		require.Len(t, units, 1)

		visible = Progress(units[0].Group, BasisVisible)
		assert.Equal(t, 0, visible.PaidCount)
		assert.Equal(t, int64(3334), visible.RemainingCents)
		assert.Equal(t, Progress(units[0].Group, BasisPlan).RemainingCents, visible.RemainingCents)
	})

	t.Run("Counts and remainder stay within bounds", func(t *testing.T) {
		g := &entity.InstallmentGroup{
			PlanInstallments: 2, PlanPaidInstallments: 5,
			TotalAmountCents: 100, InstallmentAmountCents: 80,
		}

		p := Progress(g, BasisPlan)

		assert.LessOrEqual(t, p.PaidCount, p.TotalCount)
		assert.GreaterOrEqual(t, p.RemainingCents, int64(0))
	})

	t.Run("Remainder is clamped at zero", func(t *testing.T) {
		g := &entity.InstallmentGroup{
			PlanInstallments: 3, PlanPaidInstallments: 2,
			TotalAmountCents: 100, InstallmentAmountCents: 80,
		}

		assert.Equal(t, int64(0), Progress(g, BasisPlan).RemainingCents)
	})

	t.Run("Nil group is neutral", func(t *testing.T) {
		assert.Equal(t, entity.TierNeutral, Progress(nil, BasisPlan).Tier)
	})
}
