package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
	mcore "github.com/amirhossein-jamali/finance-dashboard/mocks/port/core"
)

const pgUser = "user-pg"

var pgDate = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func standaloneRecord(id string) *entity.Transaction {
	return &entity.Transaction{
		ID:            id,
		UserID:        pgUser,
		Description:   "Mercado",
		AmountCents:   12345,
		Type:          entity.TypeExpense,
		Category:      "Alimentação",
		Date:          pgDate,
		PaymentMethod: entity.PaymentPix,
		Kind:          entity.KindStandalone,
		CreatedAt:     pgDate,
		UpdatedAt:     pgDate,
	}
}

func planRecords(groupID string) []*entity.Transaction {
	amounts := []int64{3333, 3333, 3334}
	members := make([]*entity.Transaction, 0, len(amounts))
	for i, amount := range amounts {
		number := i + 1
		members = append(members, &entity.Transaction{
			ID:          groupID + "-" + string(rune('0'+number)),
			UserID:      pgUser,
			Description: "Notebook",
			AmountCents: amount,
			Type:        entity.TypeExpense,
			Category:    "Compras",
			Date:        pgDate.AddDate(0, i, 0),
			Kind:        entity.KindInstallment,
			Installment: &entity.InstallmentInfo{
				GroupID:    groupID,
				Number:     number,
				Count:      len(amounts),
				TotalCents: 10000,
			},
			CreatedAt: pgDate,
			UpdatedAt: pgDate,
		})
	}
	return members
}

func TestTransactionRepositoryPostgres(t *testing.T) {
	testDB := NewTestDBManager(t, mcore.NewQuietLogger(t))
	repo := testDB.Manager.TransactionRepository()
	ctx := context.Background()

	t.Run("Standalone record round trips", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, standaloneRecord("solo-1")))

		got, err := repo.GetByID(ctx, pgUser, "solo-1")
		require.NoError(t, err)
		assert.Equal(t, entity.KindStandalone, got.Kind)
		assert.Nil(t, got.Installment)
		assert.Equal(t, int64(12345), got.AmountCents)
		assert.Equal(t, entity.PaymentPix, got.PaymentMethod)
		assert.WithinDuration(t, pgDate, got.Date, time.Second)
	})

	t.Run("Duplicate id is rejected", func(t *testing.T) {
		err := repo.Create(ctx, standaloneRecord("solo-1"))
		assert.ErrorIs(t, err, errs.ErrDuplicateTransaction)
	})

	t.Run("Plan members come back as installments in order", func(t *testing.T) {
		require.NoError(t, repo.CreateBatch(ctx, planRecords("plan-a")))

		members, err := repo.GetByGroupID(ctx, pgUser, "plan-a")
		require.NoError(t, err)
		require.Len(t, members, 3)
		for i, m := range members {
			assert.Equal(t, entity.KindInstallment, m.Kind)
			require.NotNil(t, m.Installment)
			assert.Equal(t, i+1, m.Installment.Number)
			assert.Equal(t, 3, m.Installment.Count)
			assert.Equal(t, int64(10000), m.Installment.TotalCents)
		}
		assert.Equal(t, int64(3334), members[2].AmountCents)
	})

	t.Run("Batch with a taken id writes nothing", func(t *testing.T) {
		batch := planRecords("plan-b")
		batch[2].ID = "solo-1"

		err := repo.CreateBatch(ctx, batch)
		assert.ErrorIs(t, err, errs.ErrDuplicateTransaction)

		members, err := repo.GetByGroupID(ctx, pgUser, "plan-b")
		require.NoError(t, err)
		assert.Empty(t, members)
	})

	t.Run("Update saves the patch and keeps other columns", func(t *testing.T) {
		paid := true
		notes := "boleto"
		updated, err := repo.Update(ctx, pgUser, "plan-a-1", entity.TransactionPatch{IsPaid: &paid, Notes: &notes})
		require.NoError(t, err)
		assert.True(t, updated.IsPaid)

		got, err := repo.GetByID(ctx, pgUser, "plan-a-1")
		require.NoError(t, err)
		assert.True(t, got.IsPaid)
		assert.Equal(t, "boleto", got.Notes)
		assert.Equal(t, "Compras", got.Category)
		require.NotNil(t, got.Installment)
		assert.Equal(t, "plan-a", got.Installment.GroupID)
	})

	t.Run("Missing records are not found", func(t *testing.T) {
		paid := true
		_, err := repo.Update(ctx, pgUser, "nope", entity.TransactionPatch{IsPaid: &paid})
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)

		_, err = repo.GetByID(ctx, "someone-else", "solo-1")
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, pgUser, "nope"), errs.ErrTransactionNotFound)
	})

	t.Run("Listing is scoped to the user and ordered by date", func(t *testing.T) {
		records, err := repo.GetAllByUser(ctx, pgUser)
		require.NoError(t, err)
		require.Len(t, records, 4)
		for i := 1; i < len(records); i++ {
			assert.False(t, records[i].Date.Before(records[i-1].Date))
		}

		others, err := repo.GetAllByUser(ctx, "someone-else")
		require.NoError(t, err)
		assert.Empty(t, others)
	})

	t.Run("DeleteByGroupID removes the whole plan", func(t *testing.T) {
		deleted, err := repo.DeleteByGroupID(ctx, pgUser, "plan-a")
		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)

		members, err := repo.GetByGroupID(ctx, pgUser, "plan-a")
		require.NoError(t, err)
		assert.Empty(t, members)

		_, err = repo.GetByID(ctx, pgUser, "solo-1")
		assert.NoError(t, err)
	})
}

func TestCategoryRepositoryPostgres(t *testing.T) {
	testDB := NewTestDBManager(t, mcore.NewQuietLogger(t))
	repo := testDB.Manager.CategoryRepository()
	ctx := context.Background()

	newCategory := func(id, name string, categoryType entity.CategoryType) *entity.Category {
		return &entity.Category{ID: id, UserID: pgUser, Name: name, Color: "#123456", Type: categoryType, CreatedAt: pgDate, UpdatedAt: pgDate}
	}

	require.NoError(t, repo.Create(ctx, newCategory("c-2", "Transporte", entity.CategoryExpense)))
	require.NoError(t, repo.Create(ctx, newCategory("c-1", "Moradia", entity.CategoryExpense)))
	require.NoError(t, repo.Create(ctx, newCategory("c-3", "Moradia", entity.CategoryIncome)))

	t.Run("Same name and type is a duplicate", func(t *testing.T) {
		err := repo.Create(ctx, newCategory("c-4", "Moradia", entity.CategoryExpense))
		assert.ErrorIs(t, err, errs.ErrDuplicateCategory)
	})

	t.Run("Listed by name", func(t *testing.T) {
		categories, err := repo.GetAllByUser(ctx, pgUser)
		require.NoError(t, err)
		require.Len(t, categories, 3)
		assert.Equal(t, "Moradia", categories[0].Name)
		assert.Equal(t, "Transporte", categories[2].Name)
		assert.Equal(t, "#123456", categories[2].Color)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, pgUser, "c-2"))
		assert.ErrorIs(t, repo.Delete(ctx, pgUser, "c-2"), errs.ErrCategoryNotFound)
	})
}

func TestSettingsRepositoryPostgres(t *testing.T) {
	testDB := NewTestDBManager(t, mcore.NewQuietLogger(t))
	repo := testDB.Manager.SettingsRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, pgUser)
	assert.True(t, errs.IsNotFoundError(err))

	require.NoError(t, repo.Save(ctx, &entity.UserSettings{UserID: pgUser, MonthlyGoalCents: 2500000, CreatedAt: pgDate, UpdatedAt: pgDate}))
	later := pgDate.Add(time.Hour)
	require.NoError(t, repo.Save(ctx, &entity.UserSettings{UserID: pgUser, MonthlyGoalCents: 760000, CreatedAt: later, UpdatedAt: later}))

	got, err := repo.Get(ctx, pgUser)
	require.NoError(t, err)
	assert.Equal(t, int64(760000), got.MonthlyGoalCents)
	assert.WithinDuration(t, pgDate, got.CreatedAt, time.Second)
	assert.WithinDuration(t, later, got.UpdatedAt, time.Second)
}

func TestUnitOfWorkPostgres(t *testing.T) {
	testDB := NewTestDBManager(t, mcore.NewQuietLogger(t))
	uow := testDB.Manager.CreateUnitOfWork()
	repo := testDB.Manager.TransactionRepository()
	ctx := context.Background()

	t.Run("Rollback discards the writes", func(t *testing.T) {
		txCtx, err := uow.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, uow.GetTransactionRepository(txCtx).CreateBatch(txCtx, planRecords("plan-rb")))
		require.NoError(t, uow.Rollback(txCtx))

		members, err := repo.GetByGroupID(ctx, pgUser, "plan-rb")
		require.NoError(t, err)
		assert.Empty(t, members)
	})

	t.Run("Commit publishes the writes", func(t *testing.T) {
		txCtx, err := uow.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, uow.GetTransactionRepository(txCtx).Create(txCtx, standaloneRecord("uow-1")))
		require.NoError(t, uow.Commit(txCtx))

		_, err = repo.GetByID(ctx, pgUser, "uow-1")
		assert.NoError(t, err)

		assert.NoError(t, uow.Rollback(txCtx))
	})

	t.Run("Pool was read at connect", func(t *testing.T) {
		assert.Equal(t, testDB.Config.MaxOpenConns, testDB.Manager.PoolUsage().MaxOpen)
	})

	t.Run("No transaction in context", func(t *testing.T) {
		assert.True(t, errors.Is(uow.Commit(ctx), errNoTransaction))
		assert.True(t, errors.Is(uow.Rollback(ctx), errNoTransaction))
	})
}
