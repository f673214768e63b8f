package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pennyledger/backend/internal/extraction"
	"github.com/pennyledger/backend/internal/model"
)

var csvHeader = []string{"id", "date", "type", "amount_cents", "currency", "category", "description", "tags"}

// ExportTransactionsCSV renders the owner's transactions in a date range as
// CSV in date order, with category names resolved.
func (s *FinanceService) ExportTransactionsCSV(ctx context.Context, ownerID string, start, end time.Time) ([]byte, error) {
	if ownerID == "" {
		return nil, nil
	}

	txs, err := s.transactionsInRange(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.ListCategories(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	nameByID := make(map[string]string, len(categories))
	for _, cat := range categories {
		nameByID[cat.ID] = cat.Name
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, tx := range txs {
		record := []string{
			tx.ID,
			tx.Date.Format("2006-01-02"),
			string(tx.Type),
			strconv.FormatInt(tx.AmountCents, 10),
			tx.CurrencyCode,
			nameByID[tx.CategoryID],
			tx.Description,
			strings.Join(tx.Tags, ";"),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportTransactionsJSON renders the owner's transactions in a date range as
// an indented JSON array.
func (s *FinanceService) ExportTransactionsJSON(ctx context.Context, ownerID string, start, end time.Time) ([]byte, error) {
	if ownerID == "" {
		return nil, nil
	}
	txs, err := s.transactionsInRange(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(txs, "", "  ")
}

// ImportResult reports the outcome of a bulk import.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportTransactionsCSV imports transactions from CSV in the export format
// (the id column is ignored; fresh IDs are assigned). Bad rows are skipped
// and reported, not fatal.
func (s *FinanceService) ImportTransactionsCSV(ctx context.Context, ownerID string, data []byte) (*ImportResult, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerId is required")
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv has no data rows")
	}

	categoryIDByName, err := s.categoryIDsByName(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i, record := range records[1:] {
		rowNum := i + 2
		if len(record) < 7 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: expected at least 7 columns", rowNum))
			continue
		}

		date, err := time.Parse("2006-01-02", record[1])
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: bad date %q", rowNum, record[1]))
			continue
		}
		txType := model.TransactionType(record[2])
		if !txType.Valid() {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: bad type %q", rowNum, record[2]))
			continue
		}
		amountCents, err := strconv.ParseInt(record[3], 10, 64)
		if err != nil || amountCents <= 0 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: bad amount %q", rowNum, record[3]))
			continue
		}

		var tags []string
		if len(record) > 7 && record[7] != "" {
			tags = strings.Split(record[7], ";")
		}

		req := CreateTransactionRequest{
			OwnerID:      ownerID,
			Type:         txType,
			AmountCents:  amountCents,
			CurrencyCode: record[4],
			CategoryID:   categoryIDByName[strings.ToLower(record[5])],
			Description:  record[6],
			Date:         date,
			Tags:         tags,
		}
		if _, err := s.CreateTransaction(ctx, req); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.Imported++
	}
	return result, nil
}

// ImportStatementPDF extracts transactions from an uploaded bank-statement
// PDF and stores them as expenses or income for the owner. Parsed lines get
// category suggestions matched against the owner's category names.
func (s *FinanceService) ImportStatementPDF(ctx context.Context, ownerID string, data []byte, currencyCode string) (*ImportResult, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerId is required")
	}
	if currencyCode == "" {
		currencyCode = s.defaultCurrency
	}

	analysis := extraction.AnalyzePDF(data)
	if analysis.Error != nil {
		log.Printf("[Service] PDF analysis degraded for user %s: %v", ownerID, analysis.Error)
	}
	parsed, err := extraction.ParseStatement(analysis)
	if err != nil {
		return nil, fmt.Errorf("statement extraction failed: %w", err)
	}

	categoryIDByName, err := s.categoryIDsByName(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := &ImportResult{}
	for _, p := range parsed {
		txType := model.TransactionTypeExpense
		if !p.IsDebit {
			txType = model.TransactionTypeIncome
		}
		tx := &model.Transaction{
			ID:           uuid.New().String(),
			OwnerID:      ownerID,
			Type:         txType,
			AmountCents:  p.AmountCents,
			CurrencyCode: currencyCode,
			CategoryID:   categoryIDByName[strings.ToLower(p.SuggestedCategory)],
			Description:  p.Merchant,
			Date:         p.Date,
			Tags:         []string{"imported"},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.store.CreateTransaction(ctx, tx); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("%s %s: %v", p.Date.Format("2006-01-02"), p.Merchant, err))
			continue
		}
		result.Imported++
	}

	log.Printf("[Service] statement import for user %s: %d imported, %d skipped", ownerID, result.Imported, result.Skipped)
	return result, nil
}

// categoryIDsByName maps lowercased category names to IDs, seeding the
// defaults on first use so suggestions have targets.
func (s *FinanceService) categoryIDsByName(ctx context.Context, ownerID string) (map[string]string, error) {
	categories, err := s.ListCategories(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]string, len(categories))
	for _, cat := range categories {
		byName[strings.ToLower(cat.Name)] = cat.ID
	}
	return byName, nil
}
