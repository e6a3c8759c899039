package usecase

import (
	"context"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
)

// CreateCategoryRequest represents a new user category
type CreateCategoryRequest struct {
	Name        string
	Description string
	Color       string
	Icon        string
	Type        string
}

// CategoryUseCase defines category operations
type CategoryUseCase interface {
	// List returns the user's categories sorted by name
	List(ctx context.Context, userID string) ([]*entity.Category, error)

	// Create stores a new category
	Create(ctx context.Context, userID string, req CreateCategoryRequest) (*entity.Category, error)

	// Delete removes a category
	Delete(ctx context.Context, userID, id string) error

	// Resolve returns the category for a name, or the placeholder when it does not exist
	Resolve(ctx context.Context, userID, name string) (entity.Category, error)

	// InitializeDefaults seeds the default categories for a user that has none.
	// It returns the number of categories created.
	InitializeDefaults(ctx context.Context, userID string) (int, error)
}

// ReportUseCase defines the dashboard aggregates
type ReportUseCase interface {
	// Summary returns paid totals with the variation against the previous month
	Summary(ctx context.Context, userID string) (*entity.Summary, error)

	// CategoryBreakdown totals records per category for a period
	CategoryBreakdown(ctx context.Context, userID string, period entity.PeriodToken, start, end string, txType entity.TransactionType) ([]entity.CategoryTotal, error)

	// TopTransactions returns the n largest records of a type
	TopTransactions(ctx context.Context, userID string, txType entity.TransactionType, n int) ([]*entity.Transaction, error)

	// MonthlyEvolution returns per-month totals for the last months, oldest first
	MonthlyEvolution(ctx context.Context, userID string, months int) ([]entity.MonthTotals, error)
}

// SettingsUseCase defines settings operations
type SettingsUseCase interface {
	// GetSettings returns the user's settings, with defaults when never saved
	GetSettings(ctx context.Context, userID string) (*entity.UserSettings, error)

	// SaveMonthlyGoal validates and stores a new monthly goal
	SaveMonthlyGoal(ctx context.Context, userID, goal string) (*entity.UserSettings, error)
}
