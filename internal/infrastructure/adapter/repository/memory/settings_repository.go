package memory

import (
	"context"
	"sync"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/persistence"
)

// SettingsRepository keeps user settings in process memory
type SettingsRepository struct {
	mu       sync.RWMutex
	settings map[string]entity.UserSettings
}

var _ persistence.SettingsRepository = (*SettingsRepository)(nil)

// NewSettingsRepository creates an empty repository
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{settings: make(map[string]entity.UserSettings)}
}

// Get returns the stored settings or ErrNotFound
func (r *SettingsRepository) Get(ctx context.Context, userID string) (*entity.UserSettings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.settings[userID]
	if !ok {
		return nil, errs.NewNotFoundError("settings", userID, userID, errs.ErrNotFound)
	}
	return &s, nil
}

// Save creates or replaces the settings of the user
func (r *SettingsRepository) Save(ctx context.Context, settings *entity.UserSettings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings[settings.UserID] = *settings
	return nil
}
