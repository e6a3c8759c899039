package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/persistence"
)

// CategoryRepository keeps categories in process memory
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[string][]*entity.Category
}

var _ persistence.CategoryRepository = (*CategoryRepository)(nil)

// NewCategoryRepository creates an empty repository
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[string][]*entity.Category)}
}

// GetAllByUser returns the user's categories sorted by name
func (r *CategoryRepository) GetAllByUser(ctx context.Context, userID string) ([]*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Category, 0, len(r.categories[userID]))
	for _, c := range r.categories[userID] {
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// Create saves a new category; name and type are unique per user
func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories[category.UserID] {
		if c.ID == category.ID || (strings.EqualFold(c.Name, category.Name) && c.Type == category.Type) {
			return fmt.Errorf("%w: %s", errs.ErrDuplicateCategory, category.Name)
		}
	}
	copied := *category
	r.categories[category.UserID] = append(r.categories[category.UserID], &copied)
	return nil
}

// Delete removes a category
func (r *CategoryRepository) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.categories[userID]
	for i, c := range list {
		if c.ID == id {
			r.categories[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return errs.NewNotFoundError("category", id, userID, errs.ErrCategoryNotFound)
}
