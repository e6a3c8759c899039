package report

import (
	"context"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/usecase"
)

// SettingsUseCase handles per user settings
type SettingsUseCase struct {
	settingsRepo persistence.SettingsRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.SettingsUseCase = (*SettingsUseCase)(nil)

// NewSettingsUseCase creates a new SettingsUseCase
func NewSettingsUseCase(
	settingsRepo persistence.SettingsRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *SettingsUseCase {
	return &SettingsUseCase{
		settingsRepo: settingsRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetSettings returns the stored settings, or the defaults when none were saved
func (u *SettingsUseCase) GetSettings(ctx context.Context, userID string) (*entity.UserSettings, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}

	settings, err := u.settingsRepo.Get(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errs.IsNotFoundError(err) {
		return nil, err
	}
	return entity.NewUserSettings(userID, u.timeProvider)
}

// SaveMonthlyGoal validates and stores a new monthly goal
func (u *SettingsUseCase) SaveMonthlyGoal(ctx context.Context, userID, goal string) (*entity.UserSettings, error) {
	cents, err := entity.ValidateAndConvertAmount(goal)
	if err != nil {
		return nil, errs.NewValidationError("monthlyGoal", goal, err)
	}

	settings, err := u.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := settings.SetMonthlyGoal(cents, u.timeProvider); err != nil {
		return nil, err
	}
	if err := u.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}

	u.logger.Info("Monthly goal updated", map[string]any{
		"user_id": userID,
		"goal":    settings.MonthlyGoal(),
	})
	return settings, nil
}
