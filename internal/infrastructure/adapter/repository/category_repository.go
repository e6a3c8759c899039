package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/model"
)

// CategoryRepository implements CategoryRepository interface using GORM
type CategoryRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
	errorMapper     *ErrorMapper
}

var _ persistence.CategoryRepository = (*CategoryRepository)(nil)

// NewCategoryRepository creates a new CategoryRepository instance
func NewCategoryRepository(db *gorm.DB, logger coreport.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
		errorMapper:     NewErrorMapper(),
	}
}

func categoryToModel(c *entity.Category) model.Category {
	return model.Category{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
		Type:        string(c.Type),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func categoryToEntity(m *model.Category) *entity.Category {
	return &entity.Category{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		Color:       m.Color,
		Icon:        m.Icon,
		Type:        entity.CategoryType(m.Type),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *CategoryRepository) handleDatabaseError(operation string, err error, userID, id string) error {
	mapped := r.errorMapper.MapEntityNotFoundError(err, EntityTypeCategory, id, userID)
	r.logger.Error("Database error on categories", map[string]any{
		"operation":   operation,
		"user_id":     userID,
		"category_id": id,
		"error":       err.Error(),
	})
	return mapped
}

// GetAllByUser returns the user's categories sorted by name
func (r *CategoryRepository) GetAllByUser(ctx context.Context, userID string) ([]*entity.Category, error) {
	var models []model.Category
	err := RetryOnTransientError(ctx, DefaultRetryConfig(), func() error {
		return r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&models).Error
	}, r.errorClassifier, r.logger)
	if err != nil {
		return nil, r.handleDatabaseError("list", err, userID, "")
	}

	categories := make([]*entity.Category, 0, len(models))
	for i := range models {
		categories = append(categories, categoryToEntity(&models[i]))
	}
	return categories, nil
}

// Create saves a new category
func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	m := categoryToModel(category)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate category", map[string]any{
				"user_id": category.UserID,
				"name":    category.Name,
			})
			return errs.ErrDuplicateCategory
		}
		return r.handleDatabaseError("create", err, category.UserID, category.ID)
	}
	return nil
}

// Delete removes a category of the user
func (r *CategoryRepository) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&model.Category{})
	if result.Error != nil {
		return r.handleDatabaseError("delete", result.Error, userID, id)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFoundError(string(EntityTypeCategory), id, userID, errs.ErrCategoryNotFound)
	}

	r.logger.Info("Category deleted", map[string]any{
		"user_id":     userID,
		"category_id": id,
	})
	return nil
}
