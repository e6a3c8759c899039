package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/model"
)

// SettingsRepository implements SettingsRepository interface using GORM
type SettingsRepository struct {
	db          *gorm.DB
	logger      coreport.Logger
	errorMapper *ErrorMapper
}

var _ persistence.SettingsRepository = (*SettingsRepository)(nil)

// NewSettingsRepository creates a new SettingsRepository instance
func NewSettingsRepository(db *gorm.DB, logger coreport.Logger) *SettingsRepository {
	return &SettingsRepository{
		db:          db,
		logger:      logger,
		errorMapper: NewErrorMapper(),
	}
}

// Get returns the stored settings of the user
func (r *SettingsRepository) Get(ctx context.Context, userID string) (*entity.UserSettings, error) {
	var m model.UserSettings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, r.errorMapper.MapEntityNotFoundError(err, EntityTypeSettings, userID, userID)
	}
	return &entity.UserSettings{
		UserID:           m.UserID,
		MonthlyGoalCents: m.MonthlyGoalCents,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}, nil
}

// Save upserts the settings row of the user
func (r *SettingsRepository) Save(ctx context.Context, settings *entity.UserSettings) error {
	m := model.UserSettings{
		UserID:           settings.UserID,
		MonthlyGoalCents: settings.MonthlyGoalCents,
		CreatedAt:        settings.CreatedAt,
		UpdatedAt:        settings.UpdatedAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"monthly_goal_cents", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		r.logger.Error("Failed to save settings", map[string]any{
			"user_id": settings.UserID,
			"error":   err.Error(),
		})
		return r.errorMapper.MapError(err, EntityTypeSettings, "save")
	}
	return nil
}
