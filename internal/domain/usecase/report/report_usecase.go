// Package report computes the dashboard aggregates over a user's ledger
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/reconcile"
)

// RecordSource reads a user's whole ledger
type RecordSource interface {
	Records(ctx context.Context, userID string) ([]*entity.Transaction, error)
}

// ReportUseCase computes the summary cards and breakdowns
type ReportUseCase struct {
	records      RecordSource
	categoryRepo persistence.CategoryRepository
	settings     usecase.SettingsUseCase
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.ReportUseCase = (*ReportUseCase)(nil)

// NewReportUseCase creates a new ReportUseCase
func NewReportUseCase(
	records RecordSource,
	categoryRepo persistence.CategoryRepository,
	settings usecase.SettingsUseCase,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		records:      records,
		categoryRepo: categoryRepo,
		settings:     settings,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

type paidTotals struct {
	income  int64
	expense int64
}

func (p paidTotals) balance() int64 {
	return p.income - p.expense
}

func sumPaid(records []*entity.Transaction, dateRange *entity.DateRange) paidTotals {
	var totals paidTotals
	for _, r := range records {
		if !r.IsPaid || !dateRange.Contains(r.Date) {
			continue
		}
		switch r.Type {
		case entity.TypeIncome:
			totals.income += r.AmountCents
		case entity.TypeExpense:
			totals.expense += r.AmountCents
		}
	}
	return totals
}

// Summary returns the paid totals of the whole ledger compared with the paid totals
// of the previous calendar month, and this month's balance against the monthly goal
func (u *ReportUseCase) Summary(ctx context.Context, userID string) (*entity.Summary, error) {
	records, err := u.records.Records(ctx, userID)
	if err != nil {
		return nil, err
	}
	settings, err := u.settings.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := u.timeProvider.Now()
	year, month, _ := now.Date()
	thisMonth := entity.MonthRange(year, month, now.Location())
	lastMonth := entity.MonthRange(year, month-1, now.Location())

	current := sumPaid(records, nil)
	previous := sumPaid(records, &lastMonth)
	monthToDate := sumPaid(records, &thisMonth)

	summary := &entity.Summary{
		IncomeCents:          current.income,
		ExpenseCents:         current.expense,
		BalanceCents:         current.balance(),
		PreviousIncomeCents:  previous.income,
		PreviousExpenseCents: previous.expense,
		PreviousBalanceCents: previous.balance(),
		IncomeChange:         entity.PercentageChange(current.income, previous.income),
		ExpenseChange:        entity.PercentageChange(current.expense, previous.expense),
		BalanceChange:        entity.PercentageChange(current.balance(), previous.balance()),
		MonthlyGoalCents:     settings.MonthlyGoalCents,
	}
	if settings.MonthlyGoalCents > 0 && monthToDate.balance() > 0 {
		summary.GoalProgress = float64(monthToDate.balance()) / float64(settings.MonthlyGoalCents) * 100
	}
	summary.DaysRemaining, summary.NeededPerDayCents = goalPace(now, settings.MonthlyGoalCents, monthToDate.balance())
	return summary, nil
}

// goalPace counts the days left in now's month, today excluded, and spreads the
// part of the goal not yet reached over them. The last day of a month has no pace.
func goalPace(now time.Time, goalCents, balanceCents int64) (int, int64) {
	year, month, day := now.Date()
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, now.Location()).Day()
	days := lastDay - day
	missing := goalCents - balanceCents
	if days <= 0 || missing <= 0 {
		return days, 0
	}
	return days, (missing + int64(days) - 1) / int64(days)
}

// CategoryBreakdown totals the records of txType per category for a period
func (u *ReportUseCase) CategoryBreakdown(
	ctx context.Context,
	userID string,
	period entity.PeriodToken,
	start, end string,
	txType entity.TransactionType,
) ([]entity.CategoryTotal, error) {
	if !entity.IsValidTransactionType(string(txType)) {
		return nil, errs.NewValidationError("type", string(txType), errs.ErrInvalidTransactionType)
	}
	dateRange, err := reconcile.ResolvePeriod(period, start, end, u.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	records, err := u.records.Records(ctx, userID)
	if err != nil {
		return nil, err
	}
	categories, err := u.categoryRepo.GetAllByUser(ctx, userID)
	if err != nil {
		u.logger.Warn("Category lookup failed, using placeholders", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		categories = nil
	}

	return reconcile.CategoryTotals(reconcile.FilterByRange(records, dateRange), categories, txType), nil
}

// TopTransactions returns the n largest records of txType
func (u *ReportUseCase) TopTransactions(ctx context.Context, userID string, txType entity.TransactionType, n int) ([]*entity.Transaction, error) {
	if !entity.IsValidTransactionType(string(txType)) {
		return nil, errs.NewValidationError("type", string(txType), errs.ErrInvalidTransactionType)
	}
	if n <= 0 {
		n = 5
	}

	records, err := u.records.Records(ctx, userID)
	if err != nil {
		return nil, err
	}
	return reconcile.TopByAmount(records, txType, n), nil
}

const (
	defaultEvolutionMonths = 6
	maxEvolutionMonths     = 36
)

// MonthlyEvolution totals every record, paid or planned, per calendar month for the
// last months ending with the current one. Months without records are kept as zeros
// so the series has no gaps.
func (u *ReportUseCase) MonthlyEvolution(ctx context.Context, userID string, months int) ([]entity.MonthTotals, error) {
	if months == 0 {
		months = defaultEvolutionMonths
	}
	if months < 0 || months > maxEvolutionMonths {
		return nil, errs.NewValidationError("months", fmt.Sprint(months), errs.ErrInvalidPeriod)
	}

	records, err := u.records.Records(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := u.timeProvider.Now()
	year, month, _ := now.Date()
	series := make([]entity.MonthTotals, months)
	index := make(map[string]int, months)
	for i := range series {
		first := time.Date(year, month-time.Month(months-1-i), 1, 0, 0, 0, 0, now.Location())
		key := first.Format("2006-01")
		series[i].Month = key
		index[key] = i
	}

	for _, r := range records {
		i, ok := index[r.Date.In(now.Location()).Format("2006-01")]
		if !ok {
			continue
		}
		switch r.Type {
		case entity.TypeIncome:
			series[i].IncomeCents += r.AmountCents
		case entity.TypeExpense:
			series[i].ExpenseCents += r.AmountCents
		}
	}
	for i := range series {
		series[i].BalanceCents = series[i].IncomeCents - series[i].ExpenseCents
	}
	return series, nil
}
