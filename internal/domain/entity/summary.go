package entity

// Summary is the paid income/expense overview of a user
type Summary struct {
	IncomeCents          int64
	ExpenseCents         int64
	BalanceCents         int64
	PreviousIncomeCents  int64
	PreviousExpenseCents int64
	PreviousBalanceCents int64
	IncomeChange         float64 // percent, relative to the previous month
	ExpenseChange        float64
	BalanceChange        float64
	MonthlyGoalCents     int64
	GoalProgress         float64 // month to date paid balance over the goal, in percent
	DaysRemaining        int     // days left in the month after today
	NeededPerDayCents    int64   // daily amount still missing to reach the goal, rounded up
}

// MonthTotals is one point of the monthly evolution series
type MonthTotals struct {
	Month        string // YYYY-MM
	IncomeCents  int64
	ExpenseCents int64
	BalanceCents int64
}

// CategoryTotal is the amount booked under one category in a period
type CategoryTotal struct {
	Category   Category
	TotalCents int64
	Count      int
	Share      float64 // percent of the period total
}
