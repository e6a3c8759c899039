package persistence

import (
	"context"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
)

// CategoryRepository defines methods to interact with user categories
type CategoryRepository interface {
	// GetAllByUser returns the user's categories sorted by name
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	GetAllByUser(ctx context.Context, userID string) ([]*entity.Category, error)

	// Create saves a new category
	//
	// Possible errors:
	// - ErrDuplicateCategory: If the user already has a category with that name and type
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, category *entity.Category) error

	// Delete removes a category. Records keep referencing the name.
	//
	// Possible errors:
	// - ErrCategoryNotFound: If the category doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Delete(ctx context.Context, userID, id string) error
}

// SettingsRepository stores per user settings
type SettingsRepository interface {
	// Get returns the stored settings of the user
	//
	// Possible errors:
	// - ErrNotFound: If the user never saved settings
	// - ErrDatabaseConnection: If database connection fails
	Get(ctx context.Context, userID string) (*entity.UserSettings, error)

	// Save creates or replaces the settings of the user
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Save(ctx context.Context, settings *entity.UserSettings) error
}
