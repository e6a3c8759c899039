package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
)

// DefaultMonthlyGoalCents is the monthly goal a user starts with (25000.00)
const DefaultMonthlyGoalCents int64 = 2_500_000

// UserSettings holds per user preferences
type UserSettings struct {
	UserID           string
	MonthlyGoalCents int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewUserSettings creates settings with the default monthly goal
func NewUserSettings(userID string, timeProvider coreport.TimeProvider) (*UserSettings, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}

	now := timeProvider.Now()
	return &UserSettings{
		UserID:           userID,
		MonthlyGoalCents: DefaultMonthlyGoalCents,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// MonthlyGoal returns the goal as a string with 2 decimal places
func (s *UserSettings) MonthlyGoal() string {
	return AmountInCentsToString(s.MonthlyGoalCents)
}

// SetMonthlyGoal updates the goal directly
func (s *UserSettings) SetMonthlyGoal(goalCents int64, timeProvider coreport.TimeProvider) error {
	if goalCents <= 0 {
		return errs.NewValidationError("monthlyGoal", AmountInCentsToString(goalCents), errs.ErrNegativeAmount)
	}
	s.MonthlyGoalCents = goalCents
	s.UpdatedAt = timeProvider.Now()
	return nil
}
