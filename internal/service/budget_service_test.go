package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennyledger/backend/internal/model"
)

func TestBudgetCRUD(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	budget, err := svc.CreateBudget(ctx, CreateBudgetRequest{
		OwnerID:     "user-1",
		Name:        "Monthly food",
		AmountCents: 50000,
		Period:      model.BudgetPeriodMonthly,
	})
	require.NoError(t, err)
	assert.True(t, budget.IsActive)

	inactive := false
	updated, err := svc.UpdateBudget(ctx, "user-1", budget.ID, UpdateBudgetRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active, err := svc.ListBudgets(ctx, "user-1", false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.ListBudgets(ctx, "user-1", true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteBudget(ctx, "user-1", budget.ID))
}

func TestCreateBudgetValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreateBudget(ctx, CreateBudgetRequest{
		OwnerID: "user-1", Name: "Bad period", AmountCents: 100, Period: "fortnightly",
	})
	assert.Error(t, err)

	_, err = svc.CreateBudget(ctx, CreateBudgetRequest{
		OwnerID: "user-1", Name: "Zero", AmountCents: 0, Period: model.BudgetPeriodMonthly,
	})
	assert.Error(t, err)
}

func TestBudgetProgress(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	asOf := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	inPeriod := time.Date(2026, time.August, 5, 0, 0, 0, 0, time.UTC)
	outOfPeriod := time.Date(2026, time.July, 30, 0, 0, 0, 0, time.UTC)

	createTestTransaction(t, svc, "user-1", 15000, model.TransactionTypeExpense, inPeriod)
	createTestTransaction(t, svc, "user-1", 10000, model.TransactionTypeExpense, inPeriod)
	createTestTransaction(t, svc, "user-1", 9999, model.TransactionTypeExpense, outOfPeriod)
	createTestTransaction(t, svc, "user-1", 500000, model.TransactionTypeIncome, inPeriod)

	budget, err := svc.CreateBudget(ctx, CreateBudgetRequest{
		OwnerID:     "user-1",
		Name:        "August",
		AmountCents: 50000,
		Period:      model.BudgetPeriodMonthly,
		StartDate:   time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	progress, err := svc.GetBudgetProgress(ctx, "user-1", budget.ID, asOf)
	require.NoError(t, err)

	assert.Equal(t, int64(25000), progress.SpentCents, "only expenses inside the period count")
	assert.Equal(t, int64(25000), progress.RemainingCents)
	assert.InDelta(t, 50.0, progress.PercentUsed, 0.01)
	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), progress.PeriodStart)
	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), progress.PeriodEnd)
	assert.Equal(t, int32(11), progress.DaysRemaining)
}

func TestBudgetProgressCategoryScoped(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	asOf := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	date := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)

	groceries, err := svc.CreateTransaction(ctx, CreateTransactionRequest{
		OwnerID: "user-1", Type: model.TransactionTypeExpense,
		AmountCents: 8000, CategoryID: "cat-groceries", Date: date,
	})
	require.NoError(t, err)
	_, err = svc.CreateTransaction(ctx, CreateTransactionRequest{
		OwnerID: "user-1", Type: model.TransactionTypeExpense,
		AmountCents: 20000, CategoryID: "cat-rent", Date: date,
	})
	require.NoError(t, err)

	budget, err := svc.CreateBudget(ctx, CreateBudgetRequest{
		OwnerID:     "user-1",
		Name:        "Groceries only",
		AmountCents: 10000,
		Period:      model.BudgetPeriodMonthly,
		CategoryIDs: []string{"cat-groceries"},
	})
	require.NoError(t, err)

	progress, err := svc.GetBudgetProgress(ctx, "user-1", budget.ID, asOf)
	require.NoError(t, err)

	assert.Equal(t, int64(8000), progress.SpentCents)
	assert.Equal(t, int64(8000), progress.CategorySpend[groceries.CategoryID])
	_, hasRent := progress.CategorySpend["cat-rent"]
	assert.False(t, hasRent)
}

func TestBudgetPeriodBounds(t *testing.T) {
	// Wednesday 2026-08-19; the containing week starts Sunday the 16th.
	asOf := time.Date(2026, time.August, 19, 15, 30, 0, 0, time.UTC)

	start, end := budgetPeriodBounds(model.BudgetPeriodWeekly, asOf)
	assert.Equal(t, time.Date(2026, time.August, 16, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC), end)

	start, end = budgetPeriodBounds(model.BudgetPeriodMonthly, asOf)
	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), end)

	start, end = budgetPeriodBounds(model.BudgetPeriodYearly, asOf)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}
