package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennyledger/backend/internal/model"
	"github.com/pennyledger/backend/internal/store"
)

// newTestService wires the service over a fresh in-memory store.
func newTestService() *FinanceService {
	return NewFinanceService(store.NewMemoryStore(), nil, nil)
}

func createTestTransaction(t *testing.T, svc *FinanceService, ownerID string, amountCents int64, txType model.TransactionType, date time.Time) *model.Transaction {
	t.Helper()
	tx, err := svc.CreateTransaction(context.Background(), CreateTransactionRequest{
		OwnerID:     ownerID,
		Type:        txType,
		AmountCents: amountCents,
		Description: "test transaction",
		Date:        date,
	})
	require.NoError(t, err)
	return tx
}

func TestTransactionCRUD(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tx := createTestTransaction(t, svc, "user-1", 1299, model.TransactionTypeExpense, time.Now())
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, "USD", tx.CurrencyCode, "currency defaults to USD")

	got, err := svc.GetTransaction(ctx, "user-1", tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)

	newAmount := int64(1500)
	updated, err := svc.UpdateTransaction(ctx, "user-1", tx.ID, UpdateTransactionRequest{AmountCents: &newAmount})
	require.NoError(t, err)
	assert.Equal(t, int64(1500), updated.AmountCents)

	require.NoError(t, svc.DeleteTransaction(ctx, "user-1", tx.ID))
	_, err = svc.GetTransaction(ctx, "user-1", tx.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDefaultBaseCurrencyConfigurable(t *testing.T) {
	svc := NewFinanceService(store.NewMemoryStore(), nil, nil, WithDefaultBaseCurrency("EUR"))
	ctx := context.Background()

	settings, err := svc.GetUserSettings(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "EUR", settings.BaseCurrencyCode)

	tx, err := svc.CreateTransaction(ctx, CreateTransactionRequest{
		OwnerID:     "user-1",
		Type:        model.TransactionTypeExpense,
		AmountCents: 700,
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", tx.CurrencyCode)

	// Stored settings still win over the configured default.
	_, err = svc.UpdateUserSettings(ctx, "user-1", "GBP")
	require.NoError(t, err)
	settings, err = svc.GetUserSettings(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "GBP", settings.BaseCurrencyCode)
}

func TestTransactionOwnershipEnforced(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tx := createTestTransaction(t, svc, "user-1", 500, model.TransactionTypeExpense, time.Now())

	_, err := svc.GetTransaction(ctx, "user-2", tx.ID)
	assert.ErrorIs(t, err, store.ErrNotFound, "other users see not-found, not forbidden")

	err = svc.DeleteTransaction(ctx, "user-2", tx.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateTransactionValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreateTransaction(ctx, CreateTransactionRequest{
		OwnerID: "user-1", Type: "refund", AmountCents: 100,
	})
	assert.Error(t, err)

	_, err = svc.CreateTransaction(ctx, CreateTransactionRequest{
		OwnerID: "user-1", Type: model.TransactionTypeExpense, AmountCents: 0,
	})
	assert.Error(t, err)

	_, err = svc.CreateTransaction(ctx, CreateTransactionRequest{
		Type: model.TransactionTypeExpense, AmountCents: 100,
	})
	assert.Error(t, err, "ownerId is required")
}

func TestListTransactionsFilters(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	jan := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)
	createTestTransaction(t, svc, "user-1", 100, model.TransactionTypeExpense, jan)
	createTestTransaction(t, svc, "user-1", 200, model.TransactionTypeExpense, feb)
	createTestTransaction(t, svc, "user-1", 5000, model.TransactionTypeIncome, feb)
	createTestTransaction(t, svc, "user-2", 999, model.TransactionTypeExpense, feb)

	all, _, err := svc.ListTransactions(ctx, "user-1", ListTransactionsRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3, "only the owner's transactions")

	febStart := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	inFeb, _, err := svc.ListTransactions(ctx, "user-1", ListTransactionsRequest{StartDate: &febStart})
	require.NoError(t, err)
	assert.Len(t, inFeb, 2)

	expenses, _, err := svc.ListTransactions(ctx, "user-1", ListTransactionsRequest{Type: model.TransactionTypeExpense})
	require.NoError(t, err)
	assert.Len(t, expenses, 2)

	// Unauthenticated callers get an empty result, not an error.
	none, _, err := svc.ListTransactions(ctx, "", ListTransactionsRequest{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListCategoriesSeedsDefaults(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cats, err := svc.ListCategories(ctx, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, cats)

	names := make(map[string]bool)
	for _, cat := range cats {
		assert.True(t, cat.IsDefault)
		names[cat.Name] = true
	}
	assert.True(t, names["Groceries"])
	assert.True(t, names["Salary"])

	// Second call returns the same set, no re-seed.
	again, err := svc.ListCategories(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, again, len(cats))
}

func TestCategoryCRUD(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, CreateCategoryRequest{
		OwnerID: "user-1",
		Name:    "Pets",
		Kind:    model.TransactionTypeExpense,
		Color:   "#123456",
	})
	require.NoError(t, err)

	newName := "Pet Care"
	updated, err := svc.UpdateCategory(ctx, "user-1", cat.ID, UpdateCategoryRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Pet Care", updated.Name)

	_, err = svc.UpdateCategory(ctx, "user-2", cat.ID, UpdateCategoryRequest{Name: &newName})
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, svc.DeleteCategory(ctx, "user-1", cat.ID))
}

func TestSeriesLifecycle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	start := time.Now().AddDate(0, 0, 7)
	view, err := svc.CreateSeries(ctx, CreateSeriesRequest{
		OwnerID:     "user-1",
		Name:        "Salary",
		Type:        model.TransactionTypeIncome,
		AmountCents: 500000,
		Rule:        model.RecurringRule{Frequency: model.FrequencyMonthly, Interval: 1},
		StartDate:   start,
	})
	require.NoError(t, err)
	assert.Equal(t, "Monthly", view.Schedule)
	assert.True(t, view.IsActive)
	// Future start dates become the first occurrence as-is.
	assert.WithinDuration(t, start, view.NextOccurrenceDate, time.Second)

	paused, err := svc.PauseSeries(ctx, "user-1", view.ID)
	require.NoError(t, err)
	assert.False(t, paused.IsActive)

	resumed, err := svc.ResumeSeries(ctx, "user-1", view.ID)
	require.NoError(t, err)
	assert.True(t, resumed.IsActive)

	views, err := svc.ListSeries(ctx, "user-1", false)
	require.NoError(t, err)
	require.Len(t, views, 1)

	require.NoError(t, svc.DeleteSeries(ctx, "user-1", view.ID))
	_, err = svc.GetSeries(ctx, "user-1", view.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateSeriesRejectsBadRule(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateSeries(context.Background(), CreateSeriesRequest{
		OwnerID:     "user-1",
		Name:        "Broken",
		Type:        model.TransactionTypeExpense,
		AmountCents: 100,
		Rule:        model.RecurringRule{Frequency: "fortnightly", Interval: 1},
		StartDate:   time.Now(),
	})
	assert.Error(t, err)
}

func TestResumeFastForwardsStaleCursor(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	start := time.Now().AddDate(0, 0, -60)
	view, err := svc.CreateSeries(ctx, CreateSeriesRequest{
		OwnerID:     "user-1",
		Name:        "Rent",
		Type:        model.TransactionTypeExpense,
		AmountCents: 180000,
		Rule:        model.RecurringRule{Frequency: model.FrequencyWeekly, Interval: 1},
		StartDate:   start,
	})
	require.NoError(t, err)

	// Force a stale cursor, as if the series sat paused for weeks.
	view.NextOccurrenceDate = time.Now().AddDate(0, 0, -21)
	view.IsActive = false
	require.NoError(t, svc.store.UpdateSeries(ctx, view.RecurringSeries))

	resumed, err := svc.ResumeSeries(ctx, "user-1", view.ID)
	require.NoError(t, err)
	assert.True(t, resumed.NextOccurrenceDate.After(time.Now()), "missed occurrences are skipped on resume")
}
