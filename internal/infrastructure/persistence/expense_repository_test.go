package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/finance"
	"github.com/labakery/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func newTestExpense(t *testing.T, date string, amount int64, category finance.ExpenseCategory) *finance.Expense {
	t.Helper()
	e, err := finance.NewExpense(day(date), decimal.NewFromInt(amount), category, "expense on "+date)
	require.NoError(t, err)
	return e
}

func TestGormExpenseRepository(t *testing.T) {
	repo := NewGormExpenseRepository(newSQLiteDB(t))
	ctx := context.Background()

	feb := newTestExpense(t, "2024-02-28", 40, finance.ExpenseCategoryRawMaterials)
	mar1 := newTestExpense(t, "2024-03-01", 50, finance.ExpenseCategoryAdvertising)
	mar2 := newTestExpense(t, "2024-03-15", 30, finance.ExpenseCategoryRawMaterials)
	apr := newTestExpense(t, "2024-04-01", 10, finance.ExpenseCategoryShipping)
	for _, e := range []*finance.Expense{feb, mar1, mar2, apr} {
		require.NoError(t, repo.Create(ctx, e))
	}

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, mar1.ID)
		require.NoError(t, err)
		assert.Equal(t, "2024-03-01", found.Date.Format("2006-01-02"))
		assert.Equal(t, finance.ExpenseCategoryAdvertising, found.Category)
		assert.True(t, decimal.NewFromInt(50).Equal(found.Amount))

		_, err = repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("date range is inclusive by calendar day", func(t *testing.T) {
		found, err := repo.FindByDateRange(ctx, day("2024-03-01"), day("2024-03-31").Add(23*time.Hour))
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, mar1.ID, found[0].ID)
		assert.Equal(t, mar2.ID, found[1].ID)
	})

	t.Run("list newest date first with count", func(t *testing.T) {
		got, total, err := repo.List(ctx, finance.ExpenseFilter{Filter: shared.Filter{Page: 1, PageSize: 3}})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, got, 3)
		assert.Equal(t, apr.ID, got[0].ID)
		assert.Equal(t, mar1.ID, got[2].ID)
	})

	t.Run("list by category and range", func(t *testing.T) {
		from := day("2024-03-01")
		got, total, err := repo.List(ctx, finance.ExpenseFilter{
			Category: finance.ExpenseCategoryRawMaterials,
			From:     &from,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, got, 1)
		assert.Equal(t, mar2.ID, got[0].ID)
	})

	t.Run("update", func(t *testing.T) {
		amount := decimal.NewFromInt(75)
		require.NoError(t, mar2.Update(finance.ExpensePatch{Amount: &amount}))
		require.NoError(t, repo.Update(ctx, mar2))

		found, err := repo.FindByID(ctx, mar2.ID)
		require.NoError(t, err)
		assert.True(t, amount.Equal(found.Amount))
		assert.Equal(t, 2, found.Version)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, feb.ID))
		assert.ErrorIs(t, repo.Delete(ctx, feb.ID), shared.ErrNotFound)
	})
}
