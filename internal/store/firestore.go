package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pennyledger/backend/internal/model"
)

const (
	collectionTransactions = "transactions"
	collectionCategories   = "categories"
	collectionBudgets      = "budgets"
	collectionSeries       = "recurringSeries"
	collectionUserSettings = "userSettings"
)

// FirestoreStore implements the Store interface using Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) Store {
	return &FirestoreStore{
		client: client,
	}
}

// firestoreErr maps a Firestore lookup error onto the store's error surface.
func firestoreErr(op string, err error) error {
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// applyDateAwarePagination handles pagination for queries with date range
// filters. Firestore requires OrderBy on inequality fields first, so we use
// OrderBy("Date") + OrderBy(__name__); the cursor document supplies both
// values for the composite StartAfter.
func (s *FirestoreStore) applyDateAwarePagination(ctx context.Context, query firestore.Query, collection string, pageSize int32, pageToken string) (firestore.Query, error) {
	query = query.OrderBy("Date", firestore.Asc).OrderBy(firestore.DocumentID, firestore.Asc)

	if pageToken != "" {
		docID, err := DecodePageToken(pageToken)
		if err != nil {
			return query, fmt.Errorf("invalid page token: %w", err)
		}
		cursorDoc, err := s.client.Collection(collection).Doc(docID).Get(ctx)
		if err != nil {
			return query, fmt.Errorf("fetch cursor document: %w", err)
		}
		dateVal := cursorDoc.Data()["Date"]
		query = query.StartAfter(dateVal, docID)
	}

	if pageSize <= 0 {
		pageSize = 100
	}
	query = query.Limit(int(pageSize) + 1) // +1 to detect next page
	return query, nil
}

// Transaction operations

func (s *FirestoreStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	_, err := s.client.Collection(collectionTransactions).Doc(tx.ID).Set(ctx, tx)
	return err
}

func (s *FirestoreStore) GetTransaction(ctx context.Context, txID string) (*model.Transaction, error) {
	doc, err := s.client.Collection(collectionTransactions).Doc(txID).Get(ctx)
	if err != nil {
		return nil, firestoreErr("get transaction", err)
	}

	var tx model.Transaction
	if err := doc.DataTo(&tx); err != nil {
		return nil, fmt.Errorf("parse transaction: %w", err)
	}
	return &tx, nil
}

func (s *FirestoreStore) UpdateTransaction(ctx context.Context, tx *model.Transaction) error {
	_, err := s.client.Collection(collectionTransactions).Doc(tx.ID).Set(ctx, tx)
	return err
}

func (s *FirestoreStore) DeleteTransaction(ctx context.Context, txID string) error {
	_, err := s.client.Collection(collectionTransactions).Doc(txID).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListTransactions(ctx context.Context, ownerID string, filter TransactionFilter, pageSize int32, pageToken string) ([]*model.Transaction, string, error) {
	query := s.client.Collection(collectionTransactions).Query

	// NOTE: field names must match the firestore struct tags (PascalCase).
	if ownerID != "" {
		query = query.Where("OwnerID", "==", ownerID)
	}
	if filter.CategoryID != "" {
		query = query.Where("CategoryID", "==", filter.CategoryID)
	}
	if filter.Type != "" {
		query = query.Where("Type", "==", string(filter.Type))
	}
	if filter.StartDate != nil {
		query = query.Where("Date", ">=", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("Date", "<=", *filter.EndDate)
	}

	query, err := s.applyDateAwarePagination(ctx, query, collectionTransactions, pageSize, pageToken)
	if err != nil {
		return nil, "", err
	}

	if pageSize <= 0 {
		pageSize = 100
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var transactions []*model.Transaction
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("iterate transactions: %w", err)
		}

		var tx model.Transaction
		if err := doc.DataTo(&tx); err != nil {
			return nil, "", fmt.Errorf("parse transaction: %w", err)
		}
		transactions = append(transactions, &tx)
	}

	var nextToken string
	if int32(len(transactions)) > pageSize {
		transactions = transactions[:pageSize]
		nextToken = EncodePageToken(transactions[len(transactions)-1].ID)
	}

	return transactions, nextToken, nil
}

// Category operations

func (s *FirestoreStore) CreateCategory(ctx context.Context, category *model.Category) error {
	_, err := s.client.Collection(collectionCategories).Doc(category.ID).Set(ctx, category)
	return err
}

func (s *FirestoreStore) GetCategory(ctx context.Context, categoryID string) (*model.Category, error) {
	doc, err := s.client.Collection(collectionCategories).Doc(categoryID).Get(ctx)
	if err != nil {
		return nil, firestoreErr("get category", err)
	}

	var category model.Category
	if err := doc.DataTo(&category); err != nil {
		return nil, fmt.Errorf("parse category: %w", err)
	}
	return &category, nil
}

func (s *FirestoreStore) UpdateCategory(ctx context.Context, category *model.Category) error {
	_, err := s.client.Collection(collectionCategories).Doc(category.ID).Set(ctx, category)
	return err
}

func (s *FirestoreStore) DeleteCategory(ctx context.Context, categoryID string) error {
	_, err := s.client.Collection(collectionCategories).Doc(categoryID).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListCategories(ctx context.Context, ownerID string) ([]*model.Category, error) {
	query := s.client.Collection(collectionCategories).Query
	if ownerID != "" {
		query = query.Where("OwnerID", "==", ownerID)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var categories []*model.Category
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate categories: %w", err)
		}

		var category model.Category
		if err := doc.DataTo(&category); err != nil {
			return nil, fmt.Errorf("parse category: %w", err)
		}
		categories = append(categories, &category)
	}

	return categories, nil
}

// Budget operations

func (s *FirestoreStore) CreateBudget(ctx context.Context, budget *model.Budget) error {
	_, err := s.client.Collection(collectionBudgets).Doc(budget.ID).Set(ctx, budget)
	return err
}

func (s *FirestoreStore) GetBudget(ctx context.Context, budgetID string) (*model.Budget, error) {
	doc, err := s.client.Collection(collectionBudgets).Doc(budgetID).Get(ctx)
	if err != nil {
		return nil, firestoreErr("get budget", err)
	}

	var budget model.Budget
	if err := doc.DataTo(&budget); err != nil {
		return nil, fmt.Errorf("parse budget: %w", err)
	}
	return &budget, nil
}

func (s *FirestoreStore) UpdateBudget(ctx context.Context, budget *model.Budget) error {
	_, err := s.client.Collection(collectionBudgets).Doc(budget.ID).Set(ctx, budget)
	return err
}

func (s *FirestoreStore) DeleteBudget(ctx context.Context, budgetID string) error {
	_, err := s.client.Collection(collectionBudgets).Doc(budgetID).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListBudgets(ctx context.Context, ownerID string, includeInactive bool) ([]*model.Budget, error) {
	query := s.client.Collection(collectionBudgets).Query
	if ownerID != "" {
		query = query.Where("OwnerID", "==", ownerID)
	}
	if !includeInactive {
		query = query.Where("IsActive", "==", true)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var budgets []*model.Budget
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate budgets: %w", err)
		}

		var budget model.Budget
		if err := doc.DataTo(&budget); err != nil {
			return nil, fmt.Errorf("parse budget: %w", err)
		}
		budgets = append(budgets, &budget)
	}

	return budgets, nil
}

// Recurring series operations

func (s *FirestoreStore) CreateSeries(ctx context.Context, series *model.RecurringSeries) error {
	_, err := s.client.Collection(collectionSeries).Doc(series.ID).Set(ctx, series)
	return err
}

func (s *FirestoreStore) GetSeries(ctx context.Context, seriesID string) (*model.RecurringSeries, error) {
	doc, err := s.client.Collection(collectionSeries).Doc(seriesID).Get(ctx)
	if err != nil {
		return nil, firestoreErr("get series", err)
	}

	var series model.RecurringSeries
	if err := doc.DataTo(&series); err != nil {
		return nil, fmt.Errorf("parse series: %w", err)
	}
	return &series, nil
}

func (s *FirestoreStore) UpdateSeries(ctx context.Context, series *model.RecurringSeries) error {
	_, err := s.client.Collection(collectionSeries).Doc(series.ID).Set(ctx, series)
	return err
}

func (s *FirestoreStore) DeleteSeries(ctx context.Context, seriesID string) error {
	_, err := s.client.Collection(collectionSeries).Doc(seriesID).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListSeries(ctx context.Context, ownerID string, activeOnly bool) ([]*model.RecurringSeries, error) {
	query := s.client.Collection(collectionSeries).Query
	if ownerID != "" {
		query = query.Where("OwnerID", "==", ownerID)
	}
	if activeOnly {
		query = query.Where("IsActive", "==", true)
	}

	return s.collectSeries(ctx, query)
}

func (s *FirestoreStore) ListActiveSeriesDueBefore(ctx context.Context, ownerID string, cutoff time.Time) ([]*model.RecurringSeries, error) {
	query := s.client.Collection(collectionSeries).Query.
		Where("IsActive", "==", true).
		Where("NextOccurrenceDate", "<=", cutoff)
	if ownerID != "" {
		query = query.Where("OwnerID", "==", ownerID)
	}
	query = query.OrderBy("NextOccurrenceDate", firestore.Asc)

	return s.collectSeries(ctx, query)
}

func (s *FirestoreStore) collectSeries(ctx context.Context, query firestore.Query) ([]*model.RecurringSeries, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var result []*model.RecurringSeries
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate series: %w", err)
		}

		var series model.RecurringSeries
		if err := doc.DataTo(&series); err != nil {
			return nil, fmt.Errorf("parse series: %w", err)
		}
		result = append(result, &series)
	}

	return result, nil
}

// User settings operations

func (s *FirestoreStore) GetUserSettings(ctx context.Context, ownerID string) (*model.UserSettings, error) {
	doc, err := s.client.Collection(collectionUserSettings).Doc(ownerID).Get(ctx)
	if err != nil {
		return nil, firestoreErr("get user settings", err)
	}

	var settings model.UserSettings
	if err := doc.DataTo(&settings); err != nil {
		return nil, fmt.Errorf("parse user settings: %w", err)
	}
	return &settings, nil
}

func (s *FirestoreStore) UpsertUserSettings(ctx context.Context, settings *model.UserSettings) error {
	_, err := s.client.Collection(collectionUserSettings).Doc(settings.OwnerID).Set(ctx, settings)
	return err
}
