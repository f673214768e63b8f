package service

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennyledger/backend/internal/model"
)

func TestExportTransactionsCSV(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	date := time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)
	createTestTransaction(t, svc, "user-1", 4550, model.TransactionTypeExpense, date)

	start := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	data, err := svc.ExportTransactionsCSV(ctx, "user-1", start, end)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "2026-04-02", records[1][1])
	assert.Equal(t, "expense", records[1][2])
	assert.Equal(t, "4550", records[1][3])
}

func TestImportTransactionsCSVRoundTrip(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	input := strings.Join([]string{
		"id,date,type,amount_cents,currency,category,description,tags",
		",2026-04-02,expense,4550,USD,Groceries,Weekly shop,food;weekly",
		",2026-04-03,income,500000,USD,Salary,April pay,",
		",not-a-date,expense,100,USD,,broken row,",
	}, "\n")

	result, err := svc.ImportTransactionsCSV(ctx, "user-1", []byte(input))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "row 4")

	txs, _, err := svc.ListTransactions(ctx, "user-1", ListTransactionsRequest{})
	require.NoError(t, err)
	require.Len(t, txs, 2)

	// Category names resolve against the seeded defaults.
	for _, tx := range txs {
		if tx.Type == model.TransactionTypeExpense {
			assert.NotEmpty(t, tx.CategoryID, "Groceries should match a seeded category")
			assert.Equal(t, []string{"food", "weekly"}, tx.Tags)
		}
	}
}

func TestImportTransactionsCSVNoRows(t *testing.T) {
	svc := newTestService()
	_, err := svc.ImportTransactionsCSV(context.Background(), "user-1", []byte("id,date\n"))
	assert.Error(t, err)
}

func TestExportTransactionsJSON(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	date := time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)
	tx := createTestTransaction(t, svc, "user-1", 999, model.TransactionTypeExpense, date)

	start := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	data, err := svc.ExportTransactionsJSON(ctx, "user-1", start, end)
	require.NoError(t, err)

	assert.Contains(t, string(data), tx.ID)
	assert.Contains(t, string(data), `"amountCents": 999`)
}
