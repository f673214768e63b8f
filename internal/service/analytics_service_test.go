package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennyledger/backend/internal/currency"
	"github.com/pennyledger/backend/internal/model"
	"github.com/pennyledger/backend/internal/store"
)

func TestGetDailyAggregates(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	day1 := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, time.March, 2, 18, 0, 0, 0, time.UTC)

	createTestTransaction(t, svc, "user-1", 1000, model.TransactionTypeExpense, day1)
	createTestTransaction(t, svc, "user-1", 2500, model.TransactionTypeExpense, day1)
	createTestTransaction(t, svc, "user-1", 300000, model.TransactionTypeIncome, day2)

	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
	aggs, err := svc.GetDailyAggregates(ctx, "user-1", start, end)
	require.NoError(t, err)

	require.Len(t, aggs, 2)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), aggs[0].Date)
	assert.Equal(t, int64(3500), aggs[0].ExpenseCents)
	assert.Equal(t, int64(-3500), aggs[0].NetCents)
	assert.Equal(t, int64(300000), aggs[1].IncomeCents)
	assert.Equal(t, int64(300000), aggs[1].NetCents)
}

func TestGetSpendingTrendsMonthly(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	now := time.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 12, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	createTestTransaction(t, svc, "user-1", 4000, model.TransactionTypeExpense, thisMonth)
	createTestTransaction(t, svc, "user-1", 7000, model.TransactionTypeExpense, lastMonth)
	createTestTransaction(t, svc, "user-1", 100000, model.TransactionTypeIncome, thisMonth)

	points, err := svc.GetSpendingTrends(ctx, "user-1", "month", 3)
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, int64(0), points[0].ExpenseCents)
	assert.Equal(t, int64(7000), points[1].ExpenseCents)
	assert.Equal(t, int64(4000), points[2].ExpenseCents)
	assert.Equal(t, int64(100000), points[2].IncomeCents)
}

func TestGetSpendingTrendsRejectsBadGranularity(t *testing.T) {
	svc := newTestService()
	_, err := svc.GetSpendingTrends(context.Background(), "user-1", "quarter", 4)
	assert.Error(t, err)
}

// staticRates is a RateSource pinned to a fixed table.
type staticRates map[string]float64

func (r staticRates) FetchRates(_ context.Context, _ string) (map[string]float64, error) {
	return r, nil
}

func TestGetCategoryBreakdownConvertsToBaseCurrency(t *testing.T) {
	conv := currency.NewConverter(staticRates{"AUD": 2.0}, 0)
	svc := NewFinanceService(store.NewMemoryStore(), conv, nil)
	ctx := context.Background()

	date := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateTransaction(ctx, CreateTransactionRequest{
		OwnerID: "user-1", Type: model.TransactionTypeExpense,
		AmountCents: 1000, CurrencyCode: "USD", CategoryID: "cat-a", Date: date,
	})
	require.NoError(t, err)
	_, err = svc.CreateTransaction(ctx, CreateTransactionRequest{
		OwnerID: "user-1", Type: model.TransactionTypeExpense,
		AmountCents: 500, CurrencyCode: "AUD", CategoryID: "cat-b", Date: date,
	})
	require.NoError(t, err)

	// Base currency AUD: the USD amount doubles, the AUD amount passes through.
	_, err = svc.UpdateUserSettings(ctx, "user-1", "AUD")
	require.NoError(t, err)

	start := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	breakdown, err := svc.GetCategoryBreakdown(ctx, "user-1", start, end)
	require.NoError(t, err)

	assert.Equal(t, "AUD", breakdown.BaseCurrencyCode)
	assert.Equal(t, int64(2500), breakdown.TotalCents)
	require.Len(t, breakdown.Entries, 2)
	assert.Equal(t, int64(2000), breakdown.Entries[0].AmountCents, "entries sorted largest first")
	assert.InDelta(t, 80.0, breakdown.Entries[0].Percent, 0.01)
}

func TestGetCategoryBreakdownNamesCategories(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, CreateCategoryRequest{
		OwnerID: "user-1", Name: "Books", Kind: model.TransactionTypeExpense,
	})
	require.NoError(t, err)

	date := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	_, err = svc.CreateTransaction(ctx, CreateTransactionRequest{
		OwnerID: "user-1", Type: model.TransactionTypeExpense,
		AmountCents: 3000, CategoryID: cat.ID, Date: date,
	})
	require.NoError(t, err)
	_, err = svc.CreateTransaction(ctx, CreateTransactionRequest{
		OwnerID: "user-1", Type: model.TransactionTypeExpense,
		AmountCents: 1000, Date: date,
	})
	require.NoError(t, err)

	start := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	breakdown, err := svc.GetCategoryBreakdown(ctx, "user-1", start, end)
	require.NoError(t, err)

	require.Len(t, breakdown.Entries, 2)
	assert.Equal(t, "Books", breakdown.Entries[0].CategoryName)
	assert.Equal(t, "Uncategorized", breakdown.Entries[1].CategoryName)
}
