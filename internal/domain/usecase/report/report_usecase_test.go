package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/repository/memory"
	coremocks "github.com/amirhossein-jamali/finance-dashboard/mocks/port/core"
)

const userID = "user-1"

var now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

type staticRecords struct {
	records []*entity.Transaction
	err     error
}

func (s staticRecords) Records(context.Context, string) ([]*entity.Transaction, error) {
	return s.records, s.err
}

func record(id string, txType entity.TransactionType, cents int64, category string, date time.Time, paid bool) *entity.Transaction {
	return &entity.Transaction{
		ID:          id,
		UserID:      userID,
		Description: id,
		AmountCents: cents,
		Type:        txType,
		Category:    category,
		Date:        date,
		IsPaid:      paid,
		Kind:        entity.KindStandalone,
	}
}

func ledger() []*entity.Transaction {
	return []*entity.Transaction{
		record("salary-jun", entity.TypeIncome, 500000, "Salário", time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), true),
		record("rent-jun", entity.TypeExpense, 120000, "Moradia", time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC), true),
		record("salary-may", entity.TypeIncome, 400000, "Salário", time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC), true),
		record("rent-may", entity.TypeExpense, 100000, "Moradia", time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), true),
		record("cinema-jun", entity.TypeExpense, 30000, "Lazer", time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), false),
	}
}

func newReportUseCase(t *testing.T, source RecordSource) (*ReportUseCase, *memory.CategoryRepository, *SettingsUseCase) {
	tp := coremocks.NewFixedTimeProvider(t, now)
	logger := coremocks.NewQuietLogger(t)
	categories := memory.NewCategoryRepository()
	settings := NewSettingsUseCase(memory.NewSettingsRepository(), tp, logger)
	return NewReportUseCase(source, categories, settings, tp, logger), categories, settings
}

func TestSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("Paid totals against the previous month", func(t *testing.T) {
		reports, _, _ := newReportUseCase(t, staticRecords{records: ledger()})

		summary, err := reports.Summary(ctx, userID)
		require.NoError(t, err)

		assert.Equal(t, int64(900000), summary.IncomeCents)
		assert.Equal(t, int64(220000), summary.ExpenseCents)
		assert.Equal(t, int64(680000), summary.BalanceCents)
		assert.Equal(t, int64(400000), summary.PreviousIncomeCents)
		assert.Equal(t, int64(100000), summary.PreviousExpenseCents)
		assert.Equal(t, int64(300000), summary.PreviousBalanceCents)
		assert.InDelta(t, 125.0, summary.IncomeChange, 0.001)
		assert.InDelta(t, 120.0, summary.ExpenseChange, 0.001)
		assert.InDelta(t, 126.667, summary.BalanceChange, 0.001)
		assert.Equal(t, entity.DefaultMonthlyGoalCents, summary.MonthlyGoalCents)
		assert.InDelta(t, 15.2, summary.GoalProgress, 0.001)
		assert.Equal(t, 20, summary.DaysRemaining)
		assert.Equal(t, int64(106000), summary.NeededPerDayCents)
	})

	t.Run("No previous month yields zero variation", func(t *testing.T) {
		reports, _, _ := newReportUseCase(t, staticRecords{records: ledger()[:2]})

		summary, err := reports.Summary(ctx, userID)
		require.NoError(t, err)
		assert.Zero(t, summary.IncomeChange)
		assert.Zero(t, summary.ExpenseChange)
		assert.Zero(t, summary.BalanceChange)
	})

	t.Run("Saved goal is used", func(t *testing.T) {
		reports, _, settings := newReportUseCase(t, staticRecords{records: ledger()})
		_, err := settings.SaveMonthlyGoal(ctx, userID, "7600")
		require.NoError(t, err)

		summary, err := reports.Summary(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(760000), summary.MonthlyGoalCents)
		assert.InDelta(t, 50.0, summary.GoalProgress, 0.001)
		assert.Equal(t, int64(19000), summary.NeededPerDayCents)
	})

	t.Run("Reached goal needs nothing per day", func(t *testing.T) {
		reports, _, settings := newReportUseCase(t, staticRecords{records: ledger()})
		_, err := settings.SaveMonthlyGoal(ctx, userID, "3000")
		require.NoError(t, err)

		summary, err := reports.Summary(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 20, summary.DaysRemaining)
		assert.Zero(t, summary.NeededPerDayCents)
	})

	t.Run("Ledger errors are returned", func(t *testing.T) {
		boom := errors.New("boom")
		reports, _, _ := newReportUseCase(t, staticRecords{err: boom})

		_, err := reports.Summary(ctx, userID)
		assert.ErrorIs(t, err, boom)
	})
}

func TestGoalPace(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		goal       int64
		balance    int64
		wantDays   int
		wantPerDay int64
	}{
		{"Rounds the daily amount up", time.Date(2024, 6, 27, 9, 0, 0, 0, time.UTC), 1000, 0, 3, 334},
		{"Negative balance widens the gap", time.Date(2024, 6, 28, 9, 0, 0, 0, time.UTC), 1000, -200, 2, 600},
		{"Leap February", time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC), 900, 0, 9, 100},
		{"Last day of the month has no pace", time.Date(2024, 6, 30, 23, 0, 0, 0, time.UTC), 1000, 0, 0, 0},
		{"No goal", time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), 0, 0, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, perDay := goalPace(tt.now, tt.goal, tt.balance)
			assert.Equal(t, tt.wantDays, days)
			assert.Equal(t, tt.wantPerDay, perDay)
		})
	}
}

func TestMonthlyEvolution(t *testing.T) {
	ctx := context.Background()

	t.Run("Totals per month, oldest first, without gaps", func(t *testing.T) {
		reports, _, _ := newReportUseCase(t, staticRecords{records: ledger()})

		series, err := reports.MonthlyEvolution(ctx, userID, 3)
		require.NoError(t, err)
		require.Len(t, series, 3)

		assert.Equal(t, entity.MonthTotals{Month: "2024-04"}, series[0])
		assert.Equal(t, entity.MonthTotals{Month: "2024-05", IncomeCents: 400000, ExpenseCents: 100000, BalanceCents: 300000}, series[1])
		assert.Equal(t, entity.MonthTotals{Month: "2024-06", IncomeCents: 500000, ExpenseCents: 150000, BalanceCents: 350000}, series[2])
	})

	t.Run("Defaults to six months across a year boundary", func(t *testing.T) {
		records := append(ledger(),
			record("bonus-jan", entity.TypeIncome, 10000, "Salário", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), true),
			record("gift-dec", entity.TypeExpense, 5000, "Lazer", time.Date(2023, 12, 24, 0, 0, 0, 0, time.UTC), true),
			record("future-jul", entity.TypeExpense, 5000, "Lazer", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), false),
		)
		reports, _, _ := newReportUseCase(t, staticRecords{records: records})

		series, err := reports.MonthlyEvolution(ctx, userID, 0)
		require.NoError(t, err)
		require.Len(t, series, 6)
		assert.Equal(t, "2024-01", series[0].Month)
		assert.Equal(t, int64(10000), series[0].BalanceCents)
		assert.Equal(t, "2024-06", series[5].Month)
	})

	t.Run("Out of range month counts are rejected", func(t *testing.T) {
		reports, _, _ := newReportUseCase(t, staticRecords{records: ledger()})

		for _, months := range []int{-1, 37} {
			_, err := reports.MonthlyEvolution(ctx, userID, months)
			assert.ErrorIs(t, err, errs.ErrInvalidPeriod)
		}
	})

	t.Run("Ledger errors are returned", func(t *testing.T) {
		boom := errors.New("boom")
		reports, _, _ := newReportUseCase(t, staticRecords{err: boom})

		_, err := reports.MonthlyEvolution(ctx, userID, 3)
		assert.ErrorIs(t, err, boom)
	})
}

func TestCategoryBreakdown(t *testing.T) {
	ctx := context.Background()
	reports, categories, _ := newReportUseCase(t, staticRecords{records: ledger()})
	require.NoError(t, categories.Create(ctx, &entity.Category{
		ID: "c1", UserID: userID, Name: "Moradia", Color: "#45B7D1", Icon: "🏠", Type: entity.CategoryExpense,
	}))

	totals, err := reports.CategoryBreakdown(ctx, userID, entity.PeriodThisMonth, "", "", entity.TypeExpense)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, "Moradia", totals[0].Category.Name)
	assert.Equal(t, "#45B7D1", totals[0].Category.Color)
	assert.Equal(t, int64(120000), totals[0].TotalCents)
	assert.InDelta(t, 80.0, totals[0].Share, 0.001)

	assert.Equal(t, "Lazer", totals[1].Category.Name)
	assert.True(t, totals[1].Category.Placeholder)

	_, err = reports.CategoryBreakdown(ctx, userID, "someday", "", "", entity.TypeExpense)
	assert.True(t, errs.IsValidationError(err))
	_, err = reports.CategoryBreakdown(ctx, userID, entity.PeriodAll, "", "", "gift")
	assert.True(t, errs.IsValidationError(err))
}

func TestTopTransactions(t *testing.T) {
	ctx := context.Background()
	reports, _, _ := newReportUseCase(t, staticRecords{records: ledger()})

	top, err := reports.TopTransactions(ctx, userID, entity.TypeExpense, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "rent-jun", top[0].ID)
	assert.Equal(t, "rent-may", top[1].ID)
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	settings := NewSettingsUseCase(memory.NewSettingsRepository(), coremocks.NewFixedTimeProvider(t, now), coremocks.NewQuietLogger(t))

	defaults, err := settings.GetSettings(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "25000.00", defaults.MonthlyGoal())

	saved, err := settings.SaveMonthlyGoal(ctx, userID, "3000,50")
	require.NoError(t, err)
	assert.Equal(t, int64(300050), saved.MonthlyGoalCents)

	reloaded, err := settings.GetSettings(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "3000.50", reloaded.MonthlyGoal())

	_, err = settings.SaveMonthlyGoal(ctx, userID, "muito")
	assert.True(t, errs.IsValidationError(err))
	_, err = settings.SaveMonthlyGoal(ctx, userID, "-10")
	assert.True(t, errs.IsValidationError(err))

	_, err = settings.GetSettings(ctx, "")
	assert.ErrorIs(t, err, errs.ErrInvalidUserID)
}
