package store

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"github.com/pennyledger/backend/internal/model"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=store

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// TransactionFilter narrows a transaction listing. Zero values mean "no
// filter" for that dimension.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID string
	Type       model.TransactionType
}

// Store defines the interface for all database operations used by the service.
type Store interface {
	// Transaction operations
	CreateTransaction(ctx context.Context, tx *model.Transaction) error
	GetTransaction(ctx context.Context, txID string) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, tx *model.Transaction) error
	DeleteTransaction(ctx context.Context, txID string) error
	ListTransactions(ctx context.Context, ownerID string, filter TransactionFilter, pageSize int32, pageToken string) ([]*model.Transaction, string, error)

	// Category operations
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategory(ctx context.Context, categoryID string) (*model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
	ListCategories(ctx context.Context, ownerID string) ([]*model.Category, error)

	// Budget operations
	CreateBudget(ctx context.Context, budget *model.Budget) error
	GetBudget(ctx context.Context, budgetID string) (*model.Budget, error)
	UpdateBudget(ctx context.Context, budget *model.Budget) error
	DeleteBudget(ctx context.Context, budgetID string) error
	ListBudgets(ctx context.Context, ownerID string, includeInactive bool) ([]*model.Budget, error)

	// Recurring series operations
	CreateSeries(ctx context.Context, series *model.RecurringSeries) error
	GetSeries(ctx context.Context, seriesID string) (*model.RecurringSeries, error)
	UpdateSeries(ctx context.Context, series *model.RecurringSeries) error
	DeleteSeries(ctx context.Context, seriesID string) error
	ListSeries(ctx context.Context, ownerID string, activeOnly bool) ([]*model.RecurringSeries, error)
	// ListActiveSeriesDueBefore returns active series whose next occurrence is
	// at or before cutoff. Empty ownerID means all owners (maintenance path).
	ListActiveSeriesDueBefore(ctx context.Context, ownerID string, cutoff time.Time) ([]*model.RecurringSeries, error)

	// User settings operations
	GetUserSettings(ctx context.Context, ownerID string) (*model.UserSettings, error)
	UpsertUserSettings(ctx context.Context, settings *model.UserSettings) error
}

// EncodePageToken encodes a document ID into a page token.
func EncodePageToken(docID string) string {
	if docID == "" {
		return ""
	}
	return base64.URLEncoding.EncodeToString([]byte(docID))
}

// DecodePageToken decodes a page token back to a document ID.
func DecodePageToken(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
