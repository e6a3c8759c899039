package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/reconcile"
)

// CategoryUseCase handles category related business logic
type CategoryUseCase struct {
	categoryRepo persistence.CategoryRepository
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	newID        func() string
}

var _ usecase.CategoryUseCase = (*CategoryUseCase)(nil)

// NewCategoryUseCase creates a new CategoryUseCase. uow may be nil, in which case
// default categories are seeded one by one.
func NewCategoryUseCase(
	categoryRepo persistence.CategoryRepository,
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		newID:        uuid.NewString,
	}
}

// List returns the user's categories sorted by name
func (u *CategoryUseCase) List(ctx context.Context, userID string) ([]*entity.Category, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	categories, err := u.categoryRepo.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	reconcile.SortCategories(categories)
	return categories, nil
}

// Create stores a new category
func (u *CategoryUseCase) Create(ctx context.Context, userID string, req usecase.CreateCategoryRequest) (*entity.Category, error) {
	category, err := entity.NewCategory(u.newID(), userID, req.Name, req.Description, req.Color, req.Icon,
		entity.CategoryType(req.Type), u.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := u.categoryRepo.Create(ctx, category); err != nil {
		u.logger.Warn("Failed to create category", map[string]any{
			"user_id": userID,
			"name":    category.Name,
			"error":   err.Error(),
		})
		return nil, err
	}

	u.logger.Info("Category created", map[string]any{
		"user_id":     userID,
		"category_id": category.ID,
		"name":        category.Name,
	})
	return category, nil
}

// Delete removes a category. Records that use its name fall back to the placeholder.
func (u *CategoryUseCase) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return errs.ErrInvalidUserID
	}
	return u.categoryRepo.Delete(ctx, userID, id)
}

// Resolve returns the category for a name, or the placeholder when none matches
func (u *CategoryUseCase) Resolve(ctx context.Context, userID, name string) (entity.Category, error) {
	categories, err := u.List(ctx, userID)
	if err != nil {
		return entity.Category{}, err
	}
	return reconcile.ResolveCategory(categories, name), nil
}

// InitializeDefaults seeds entity.DefaultCategories for a user that has no categories
func (u *CategoryUseCase) InitializeDefaults(ctx context.Context, userID string) (int, error) {
	existing, err := u.List(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	categories := make([]*entity.Category, 0, len(entity.DefaultCategories))
	for _, d := range entity.DefaultCategories {
		category, err := entity.NewCategory(u.newID(), userID, d.Name, "", d.Color, d.Icon, d.Type, u.timeProvider)
		if err != nil {
			return 0, err
		}
		categories = append(categories, category)
	}

	if err := u.createAll(ctx, categories); err != nil {
		u.logger.Error("Failed to seed default categories", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return 0, err
	}

	u.logger.Info("Default categories created", map[string]any{
		"user_id": userID,
		"count":   len(categories),
	})
	return len(categories), nil
}

func (u *CategoryUseCase) createAll(ctx context.Context, categories []*entity.Category) error {
	if u.uow == nil {
		for _, c := range categories {
			if err := u.categoryRepo.Create(ctx, c); err != nil {
				return err
			}
		}
		return nil
	}

	txCtx, err := u.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	repo := u.uow.GetCategoryRepository(txCtx)
	for _, c := range categories {
		if err := repo.Create(txCtx, c); err != nil {
			if rbErr := u.uow.Rollback(txCtx); rbErr != nil {
				u.logger.Error("Failed to roll back transaction", map[string]any{
					"error":          rbErr.Error(),
					"original_error": err.Error(),
				})
			}
			return err
		}
	}
	if err := u.uow.Commit(txCtx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
