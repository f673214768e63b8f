package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/pennyledger/backend/internal/model"
	"github.com/pennyledger/backend/internal/store"
)

// DailyAggregate sums one day's income and expenses.
type DailyAggregate struct {
	Date         time.Time `json:"date"`
	IncomeCents  int64     `json:"incomeCents"`
	ExpenseCents int64     `json:"expenseCents"`
	NetCents     int64     `json:"netCents"`
}

// TrendPoint is one bucket in a spending trend.
type TrendPoint struct {
	PeriodStart  time.Time `json:"periodStart"`
	Label        string    `json:"label"`
	IncomeCents  int64     `json:"incomeCents"`
	ExpenseCents int64     `json:"expenseCents"`
}

// CategoryBreakdownEntry is one category's share of spend over a range,
// expressed in the owner's base currency.
type CategoryBreakdownEntry struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	AmountCents  int64   `json:"amountCents"`
	Percent      float64 `json:"percent"`
}

// CategoryBreakdown is the spend-by-category report.
type CategoryBreakdown struct {
	BaseCurrencyCode string                   `json:"baseCurrencyCode"`
	TotalCents       int64                    `json:"totalCents"`
	Entries          []CategoryBreakdownEntry `json:"entries"`
}

// maxReportTransactions caps how many transactions a report walks.
const maxReportTransactions = 5000

func (s *FinanceService) transactionsInRange(ctx context.Context, ownerID string, start, end time.Time) ([]*model.Transaction, error) {
	filter := store.TransactionFilter{StartDate: &start, EndDate: &end}
	var all []*model.Transaction
	token := ""
	for {
		txs, next, err := s.store.ListTransactions(ctx, ownerID, filter, 1000, token)
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions: %w", err)
		}
		all = append(all, txs...)
		if next == "" || len(all) >= maxReportTransactions {
			return all, nil
		}
		token = next
	}
}

// GetDailyAggregates buckets income and expense totals per calendar day over
// [start, end].
func (s *FinanceService) GetDailyAggregates(ctx context.Context, ownerID string, start, end time.Time) ([]DailyAggregate, error) {
	if ownerID == "" {
		return nil, nil
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end must not be before start")
	}

	txs, err := s.transactionsInRange(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}

	byDay := make(map[time.Time]*DailyAggregate)
	for _, tx := range txs {
		y, m, d := tx.Date.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		agg, ok := byDay[day]
		if !ok {
			agg = &DailyAggregate{Date: day}
			byDay[day] = agg
		}
		switch tx.Type {
		case model.TransactionTypeIncome:
			agg.IncomeCents += tx.AmountCents
		case model.TransactionTypeExpense:
			agg.ExpenseCents += tx.AmountCents
		}
	}

	out := make([]DailyAggregate, 0, len(byDay))
	for _, agg := range byDay {
		agg.NetCents = agg.IncomeCents - agg.ExpenseCents
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// GetSpendingTrends buckets income and expenses into the last n periods of
// the given granularity ("day", "week", or "month"), oldest first.
func (s *FinanceService) GetSpendingTrends(ctx context.Context, ownerID, granularity string, periods int) ([]TrendPoint, error) {
	if ownerID == "" {
		return nil, nil
	}
	if periods <= 0 || periods > 120 {
		periods = 12
	}

	now := time.Now()
	var bucketStart func(i int) time.Time
	var label func(t time.Time) string
	switch granularity {
	case "day":
		y, m, d := now.Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
		bucketStart = func(i int) time.Time { return today.AddDate(0, 0, -i) }
		label = func(t time.Time) string { return t.Format("Jan 2") }
	case "week":
		y, m, d := now.Date()
		week := time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, now.Location())
		bucketStart = func(i int) time.Time { return week.AddDate(0, 0, -7*i) }
		label = func(t time.Time) string { return "wk " + t.Format("Jan 2") }
	case "month", "":
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		bucketStart = func(i int) time.Time { return month.AddDate(0, -i, 0) }
		label = func(t time.Time) string { return t.Format("Jan 2006") }
	default:
		return nil, fmt.Errorf("granularity must be day, week, or month")
	}

	// Bucket i is [bucketStart(i), bucketStart(i-1)); bucket 0 ends at now.
	points := make([]TrendPoint, periods)
	for i := 0; i < periods; i++ {
		start := bucketStart(periods - 1 - i)
		points[i] = TrendPoint{PeriodStart: start, Label: label(start)}
	}

	rangeStart := points[0].PeriodStart
	txs, err := s.transactionsInRange(ctx, ownerID, rangeStart, now)
	if err != nil {
		return nil, err
	}

	for _, tx := range txs {
		// Find the last bucket starting at or before the transaction date.
		idx := sort.Search(len(points), func(i int) bool {
			return points[i].PeriodStart.After(tx.Date)
		}) - 1
		if idx < 0 {
			continue
		}
		switch tx.Type {
		case model.TransactionTypeIncome:
			points[idx].IncomeCents += tx.AmountCents
		case model.TransactionTypeExpense:
			points[idx].ExpenseCents += tx.AmountCents
		}
	}
	return points, nil
}

// GetCategoryBreakdown reports expense spend per category over [start, end],
// converted into the owner's base currency.
func (s *FinanceService) GetCategoryBreakdown(ctx context.Context, ownerID string, start, end time.Time) (*CategoryBreakdown, error) {
	if ownerID == "" {
		return &CategoryBreakdown{}, nil
	}

	settings, err := s.GetUserSettings(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	base := settings.BaseCurrencyCode

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

	totals := make(map[string]int64)
	var total int64
	for _, tx := range txs {
		if tx.Type != model.TransactionTypeExpense {
			continue
		}
		amount := tx.AmountCents
		if s.converter != nil && tx.CurrencyCode != base {
			converted, err := s.converter.ConvertCents(ctx, tx.AmountCents, tx.CurrencyCode, base)
			if err != nil {
				log.Printf("[Service] could not convert %s to %s for transaction %s, using raw amount: %v",
					tx.CurrencyCode, base, tx.ID, err)
			} else {
				amount = converted
			}
		}
		totals[tx.CategoryID] += amount
		total += amount
	}

	breakdown := &CategoryBreakdown{BaseCurrencyCode: base, TotalCents: total}
	for categoryID, cents := range totals {
		entry := CategoryBreakdownEntry{
			CategoryID:   categoryID,
			CategoryName: nameByID[categoryID],
			AmountCents:  cents,
		}
		if entry.CategoryName == "" {
			entry.CategoryName = "Uncategorized"
		}
		if total > 0 {
			entry.Percent = float64(cents) / float64(total) * 100
		}
		breakdown.Entries = append(breakdown.Entries, entry)
	}
	sort.Slice(breakdown.Entries, func(i, j int) bool {
		return breakdown.Entries[i].AmountCents > breakdown.Entries[j].AmountCents
	})
	return breakdown, nil
}
