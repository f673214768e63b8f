package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pennyledger/backend/internal/model"
)

// MemoryStore implements the Store interface with in-memory storage.
// Used for local development and tests.
type MemoryStore struct {
	mu sync.RWMutex

	transactions map[string]*model.Transaction
	categories   map[string]*model.Category
	budgets      map[string]*model.Budget
	series       map[string]*model.RecurringSeries
	userSettings map[string]*model.UserSettings
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string]*model.Transaction),
		categories:   make(map[string]*model.Category),
		budgets:      make(map[string]*model.Budget),
		series:       make(map[string]*model.RecurringSeries),
		userSettings: make(map[string]*model.UserSettings),
	}
}

// Transaction operations

func (m *MemoryStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	m.transactions[tx.ID] = tx
	return nil
}

func (m *MemoryStore) GetTransaction(ctx context.Context, txID string) (*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tx, ok := m.transactions[txID]
	if !ok {
		return nil, ErrNotFound
	}
	return tx, nil
}

func (m *MemoryStore) UpdateTransaction(ctx context.Context, tx *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transactions[tx.ID]; !ok {
		return ErrNotFound
	}
	m.transactions[tx.ID] = tx
	return nil
}

func (m *MemoryStore) DeleteTransaction(ctx context.Context, txID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transactions[txID]; !ok {
		return ErrNotFound
	}
	delete(m.transactions, txID)
	return nil
}

func (m *MemoryStore) ListTransactions(ctx context.Context, ownerID string, filter TransactionFilter, pageSize int32, pageToken string) ([]*model.Transaction, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []*model.Transaction
	for _, tx := range m.transactions {
		if !transactionMatches(tx, ownerID, filter) {
			continue
		}
		matches = append(matches, tx)
	}

	// Same page order as the Firestore store: (Date, ID) ascending, with the
	// cursor pointing at the last document of the previous page.
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].Date.Equal(matches[j].Date) {
			return matches[i].Date.Before(matches[j].Date)
		}
		return matches[i].ID < matches[j].ID
	})

	if pageSize <= 0 {
		pageSize = 100
	}

	if pageToken != "" {
		cursorID, err := DecodePageToken(pageToken)
		if err != nil {
			return nil, "", fmt.Errorf("invalid page token: %w", err)
		}
		start := -1
		for i, tx := range matches {
			if tx.ID == cursorID {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return nil, "", nil
		}
		matches = matches[start:]
	}

	var nextToken string
	if int32(len(matches)) > pageSize {
		matches = matches[:pageSize]
		nextToken = EncodePageToken(matches[len(matches)-1].ID)
	}

	return matches, nextToken, nil
}

func transactionMatches(tx *model.Transaction, ownerID string, filter TransactionFilter) bool {
	if ownerID != "" && tx.OwnerID != ownerID {
		return false
	}
	if filter.StartDate != nil && tx.Date.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && tx.Date.After(*filter.EndDate) {
		return false
	}
	if filter.CategoryID != "" && tx.CategoryID != filter.CategoryID {
		return false
	}
	if filter.Type != "" && tx.Type != filter.Type {
		return false
	}
	return true
}

// Category operations

func (m *MemoryStore) CreateCategory(ctx context.Context, category *model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	m.categories[category.ID] = category
	return nil
}

func (m *MemoryStore) GetCategory(ctx context.Context, categoryID string) (*model.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	category, ok := m.categories[categoryID]
	if !ok {
		return nil, ErrNotFound
	}
	return category, nil
}

func (m *MemoryStore) UpdateCategory(ctx context.Context, category *model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[category.ID]; !ok {
		return ErrNotFound
	}
	m.categories[category.ID] = category
	return nil
}

func (m *MemoryStore) DeleteCategory(ctx context.Context, categoryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[categoryID]; !ok {
		return ErrNotFound
	}
	delete(m.categories, categoryID)
	return nil
}

func (m *MemoryStore) ListCategories(ctx context.Context, ownerID string) ([]*model.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Category
	for _, category := range m.categories {
		if ownerID != "" && category.OwnerID != ownerID {
			continue
		}
		result = append(result, category)
	}

	sort.Slice(result, func(i, j int) bool {
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})
	return result, nil
}

// Budget operations

func (m *MemoryStore) CreateBudget(ctx context.Context, budget *model.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	m.budgets[budget.ID] = budget
	return nil
}

func (m *MemoryStore) GetBudget(ctx context.Context, budgetID string) (*model.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	budget, ok := m.budgets[budgetID]
	if !ok {
		return nil, ErrNotFound
	}
	return budget, nil
}

func (m *MemoryStore) UpdateBudget(ctx context.Context, budget *model.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.budgets[budget.ID]; !ok {
		return ErrNotFound
	}
	m.budgets[budget.ID] = budget
	return nil
}

func (m *MemoryStore) DeleteBudget(ctx context.Context, budgetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.budgets[budgetID]; !ok {
		return ErrNotFound
	}
	delete(m.budgets, budgetID)
	return nil
}

func (m *MemoryStore) ListBudgets(ctx context.Context, ownerID string, includeInactive bool) ([]*model.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Budget
	for _, budget := range m.budgets {
		if ownerID != "" && budget.OwnerID != ownerID {
			continue
		}
		if !includeInactive && !budget.IsActive {
			continue
		}
		result = append(result, budget)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Recurring series operations

func (m *MemoryStore) CreateSeries(ctx context.Context, series *model.RecurringSeries) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if series.ID == "" {
		series.ID = uuid.New().String()
	}
	m.series[series.ID] = series
	return nil
}

func (m *MemoryStore) GetSeries(ctx context.Context, seriesID string) (*model.RecurringSeries, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	series, ok := m.series[seriesID]
	if !ok {
		return nil, ErrNotFound
	}
	return series, nil
}

func (m *MemoryStore) UpdateSeries(ctx context.Context, series *model.RecurringSeries) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.series[series.ID]; !ok {
		return ErrNotFound
	}
	m.series[series.ID] = series
	return nil
}

func (m *MemoryStore) DeleteSeries(ctx context.Context, seriesID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.series[seriesID]; !ok {
		return ErrNotFound
	}
	delete(m.series, seriesID)
	return nil
}

func (m *MemoryStore) ListSeries(ctx context.Context, ownerID string, activeOnly bool) ([]*model.RecurringSeries, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.RecurringSeries
	for _, series := range m.series {
		if ownerID != "" && series.OwnerID != ownerID {
			continue
		}
		if activeOnly && !series.IsActive {
			continue
		}
		result = append(result, series)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].NextOccurrenceDate.Before(result[j].NextOccurrenceDate)
	})
	return result, nil
}

func (m *MemoryStore) ListActiveSeriesDueBefore(ctx context.Context, ownerID string, cutoff time.Time) ([]*model.RecurringSeries, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.RecurringSeries
	for _, series := range m.series {
		if ownerID != "" && series.OwnerID != ownerID {
			continue
		}
		if !series.IsActive || series.NextOccurrenceDate.After(cutoff) {
			continue
		}
		result = append(result, series)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].NextOccurrenceDate.Before(result[j].NextOccurrenceDate)
	})
	return result, nil
}

// User settings operations

func (m *MemoryStore) GetUserSettings(ctx context.Context, ownerID string) (*model.UserSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	settings, ok := m.userSettings[ownerID]
	if !ok {
		return nil, ErrNotFound
	}
	return settings, nil
}

func (m *MemoryStore) UpsertUserSettings(ctx context.Context, settings *model.UserSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.userSettings[settings.OwnerID] = settings
	return nil
}
