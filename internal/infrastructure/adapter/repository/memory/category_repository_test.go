package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
)

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository()

	require.NoError(t, repo.Create(ctx, &entity.Category{ID: "1", UserID: "u1", Name: "Viagem", Type: entity.CategoryExpense}))
	require.NoError(t, repo.Create(ctx, &entity.Category{ID: "2", UserID: "u1", Name: "academia", Type: entity.CategoryExpense}))
	require.NoError(t, repo.Create(ctx, &entity.Category{ID: "3", UserID: "u1", Name: "viagem", Type: entity.CategoryIncome}))

	err := repo.Create(ctx, &entity.Category{ID: "4", UserID: "u1", Name: "VIAGEM", Type: entity.CategoryExpense})
	assert.ErrorIs(t, err, errs.ErrDuplicateCategory)

	all, err := repo.GetAllByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "academia", all[0].Name)

	all[0].Name = "changed"
	again, err := repo.GetAllByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "academia", again[0].Name)

	none, err := repo.GetAllByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, repo.Delete(ctx, "u1", "2"))
	assert.ErrorIs(t, repo.Delete(ctx, "u1", "2"), errs.ErrCategoryNotFound)
	assert.True(t, errs.IsNotFoundError(repo.Delete(ctx, "u2", "1")))
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository()

	_, err := repo.Get(ctx, "u1")
	assert.True(t, errs.IsNotFoundError(err))

	require.NoError(t, repo.Save(ctx, &entity.UserSettings{UserID: "u1", MonthlyGoalCents: 150000}))
	saved, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(150000), saved.MonthlyGoalCents)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = repo.Get(cancelled, "u1")
	assert.ErrorIs(t, err, context.Canceled)
}
