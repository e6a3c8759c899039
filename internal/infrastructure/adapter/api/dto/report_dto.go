package dto

import (
	"time"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
)

// SummaryResponse is the paid overview shown on the dashboard cards
type SummaryResponse struct {
	Income          string  `json:"income"`
	Expense         string  `json:"expense"`
	Balance         string  `json:"balance"`
	PreviousIncome  string  `json:"previousIncome"`
	PreviousExpense string  `json:"previousExpense"`
	PreviousBalance string  `json:"previousBalance"`
	IncomeChange    float64 `json:"incomeChange"`
	ExpenseChange   float64 `json:"expenseChange"`
	BalanceChange   float64 `json:"balanceChange"`
	MonthlyGoal     string  `json:"monthlyGoal"`
	GoalProgress    float64 `json:"goalProgress"`
	DaysRemaining   int     `json:"daysRemaining"`
	NeededPerDay    string  `json:"neededPerDay"`
}

// NewSummaryResponse maps a summary
func NewSummaryResponse(s *entity.Summary) SummaryResponse {
	return SummaryResponse{
		Income:          entity.AmountInCentsToString(s.IncomeCents),
		Expense:         entity.AmountInCentsToString(s.ExpenseCents),
		Balance:         entity.AmountInCentsToString(s.BalanceCents),
		PreviousIncome:  entity.AmountInCentsToString(s.PreviousIncomeCents),
		PreviousExpense: entity.AmountInCentsToString(s.PreviousExpenseCents),
		PreviousBalance: entity.AmountInCentsToString(s.PreviousBalanceCents),
		IncomeChange:    s.IncomeChange,
		ExpenseChange:   s.ExpenseChange,
		BalanceChange:   s.BalanceChange,
		MonthlyGoal:     entity.AmountInCentsToString(s.MonthlyGoalCents),
		GoalProgress:    s.GoalProgress,
		DaysRemaining:   s.DaysRemaining,
		NeededPerDay:    entity.AmountInCentsToString(s.NeededPerDayCents),
	}
}

// MonthTotalsResponse is one month of the evolution chart
type MonthTotalsResponse struct {
	Month   string `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

// NewMonthTotalsResponses maps the monthly evolution series
func NewMonthTotalsResponses(series []entity.MonthTotals) []MonthTotalsResponse {
	out := make([]MonthTotalsResponse, 0, len(series))
	for _, m := range series {
		out = append(out, MonthTotalsResponse{
			Month:   m.Month,
			Income:  entity.AmountInCentsToString(m.IncomeCents),
			Expense: entity.AmountInCentsToString(m.ExpenseCents),
			Balance: entity.AmountInCentsToString(m.BalanceCents),
		})
	}
	return out
}

// CategoryTotalResponse is the amount booked under one category
type CategoryTotalResponse struct {
	Category CategoryResponse `json:"category"`
	Total    string           `json:"total"`
	Count    int              `json:"count"`
	Share    float64          `json:"share"`
}

// NewCategoryTotalResponses maps a category breakdown
func NewCategoryTotalResponses(totals []entity.CategoryTotal) []CategoryTotalResponse {
	out := make([]CategoryTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, CategoryTotalResponse{
			Category: NewCategoryResponse(t.Category),
			Total:    entity.AmountInCentsToString(t.TotalCents),
			Count:    t.Count,
			Share:    t.Share,
		})
	}
	return out
}

// SaveMonthlyGoalRequest changes the monthly goal
type SaveMonthlyGoalRequest struct {
	MonthlyGoal string `json:"monthlyGoal" binding:"required"`
}

// SettingsResponse represents the user's settings
type SettingsResponse struct {
	MonthlyGoal string    `json:"monthlyGoal"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewSettingsResponse maps user settings
func NewSettingsResponse(s *entity.UserSettings) SettingsResponse {
	return SettingsResponse{
		MonthlyGoal: s.MonthlyGoal(),
		UpdatedAt:   s.UpdatedAt,
	}
}
