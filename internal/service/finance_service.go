// Package service implements the application logic of the finance backend on
// top of the store interface: transaction and category CRUD, budgets,
// recurring-series processing, reporting, import/export, and AI summaries.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pennyledger/backend/internal/currency"
	"github.com/pennyledger/backend/internal/model"
	"github.com/pennyledger/backend/internal/store"
)

// FinanceService carries the store plus the optional collaborators (currency
// conversion, AI summaries) the richer endpoints use.
type FinanceService struct {
	store      store.Store
	converter  *currency.Converter
	summarizer Summarizer

	// defaultCurrency is assumed when a user has no stored settings and a
	// request omits its currency code.
	defaultCurrency string
}

// Option configures optional service behavior.
type Option func(*FinanceService)

// WithDefaultBaseCurrency overrides the USD default used for users without
// stored settings and for requests that omit a currency code.
func WithDefaultBaseCurrency(code string) Option {
	return func(s *FinanceService) {
		if code != "" {
			s.defaultCurrency = code
		}
	}
}

// NewFinanceService creates the service. converter and summarizer may be nil;
// endpoints that need them degrade explicitly.
func NewFinanceService(st store.Store, converter *currency.Converter, summarizer Summarizer, opts ...Option) *FinanceService {
	s := &FinanceService{
		store:           st,
		converter:       converter,
		summarizer:      summarizer,
		defaultCurrency: "USD",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTransactionRequest carries the fields for a new transaction.
type CreateTransactionRequest struct {
	OwnerID      string                `json:"ownerId"`
	Type         model.TransactionType `json:"type"`
	AmountCents  int64                 `json:"amountCents"`
	CurrencyCode string                `json:"currencyCode"`
	CategoryID   string                `json:"categoryId"`
	Description  string                `json:"description"`
	Date         time.Time             `json:"date"`
	Tags         []string              `json:"tags"`
}

// CreateTransaction creates a new one-off transaction.
func (s *FinanceService) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*model.Transaction, error) {
	if req.OwnerID == "" {
		return nil, fmt.Errorf("ownerId is required")
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("type must be income or expense")
	}
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("amountCents must be positive")
	}
	if req.CurrencyCode == "" {
		req.CurrencyCode = s.defaultCurrency
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	now := time.Now()
	tx := &model.Transaction{
		ID:           uuid.New().String(),
		OwnerID:      req.OwnerID,
		Type:         req.Type,
		AmountCents:  req.AmountCents,
		CurrencyCode: req.CurrencyCode,
		CategoryID:   req.CategoryID,
		Description:  req.Description,
		Date:         req.Date,
		Tags:         req.Tags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return tx, nil
}

// GetTransaction fetches a transaction, enforcing ownership.
func (s *FinanceService) GetTransaction(ctx context.Context, ownerID, txID string) (*model.Transaction, error) {
	tx, err := s.store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	return tx, nil
}

// UpdateTransactionRequest carries the mutable transaction fields. Nil
// pointers leave the stored value untouched.
type UpdateTransactionRequest struct {
	AmountCents *int64     `json:"amountCents"`
	CategoryID  *string    `json:"categoryId"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Tags        *[]string  `json:"tags"`
}

// UpdateTransaction applies a partial update to an owned transaction.
func (s *FinanceService) UpdateTransaction(ctx context.Context, ownerID, txID string, req UpdateTransactionRequest) (*model.Transaction, error) {
	tx, err := s.GetTransaction(ctx, ownerID, txID)
	if err != nil {
		return nil, err
	}

	if req.AmountCents != nil {
		if *req.AmountCents <= 0 {
			return nil, fmt.Errorf("amountCents must be positive")
		}
		tx.AmountCents = *req.AmountCents
	}
	if req.CategoryID != nil {
		tx.CategoryID = *req.CategoryID
	}
	if req.Description != nil {
		tx.Description = *req.Description
	}
	if req.Date != nil {
		tx.Date = *req.Date
	}
	if req.Tags != nil {
		tx.Tags = *req.Tags
	}
	tx.UpdatedAt = time.Now()

	if err := s.store.UpdateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return tx, nil
}

// DeleteTransaction removes an owned transaction.
func (s *FinanceService) DeleteTransaction(ctx context.Context, ownerID, txID string) error {
	if _, err := s.GetTransaction(ctx, ownerID, txID); err != nil {
		return err
	}
	return s.store.DeleteTransaction(ctx, txID)
}

// ListTransactionsRequest narrows and pages a transaction listing.
type ListTransactionsRequest struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID string
	Type       model.TransactionType
	PageSize   int32
	PageToken  string
}

// ListTransactions lists an owner's transactions with optional filters.
func (s *FinanceService) ListTransactions(ctx context.Context, ownerID string, req ListTransactionsRequest) ([]*model.Transaction, string, error) {
	if ownerID == "" {
		return nil, "", nil
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	filter := store.TransactionFilter{
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		CategoryID: req.CategoryID,
		Type:       req.Type,
	}
	txs, nextToken, err := s.store.ListTransactions(ctx, ownerID, filter, pageSize, req.PageToken)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nextToken, nil
}
