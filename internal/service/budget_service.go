package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pennyledger/backend/internal/model"
	"github.com/pennyledger/backend/internal/store"
)

// CreateBudgetRequest carries the fields for a new budget.
type CreateBudgetRequest struct {
	OwnerID      string             `json:"ownerId"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	AmountCents  int64              `json:"amountCents"`
	CurrencyCode string             `json:"currencyCode"`
	Period       model.BudgetPeriod `json:"period"`
	CategoryIDs  []string           `json:"categoryIds"`
	StartDate    time.Time          `json:"startDate"`
}

// CreateBudget validates and stores a budget.
func (s *FinanceService) CreateBudget(ctx context.Context, req CreateBudgetRequest) (*model.Budget, error) {
	if req.OwnerID == "" {
		return nil, fmt.Errorf("ownerId is required")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("amountCents must be positive")
	}
	switch req.Period {
	case model.BudgetPeriodWeekly, model.BudgetPeriodMonthly, model.BudgetPeriodYearly:
	default:
		return nil, fmt.Errorf("period must be weekly, monthly, or yearly")
	}
	if req.CurrencyCode == "" {
		req.CurrencyCode = s.defaultCurrency
	}
	if req.StartDate.IsZero() {
		req.StartDate = time.Now()
	}

	now := time.Now()
	budget := &model.Budget{
		ID:           uuid.New().String(),
		OwnerID:      req.OwnerID,
		Name:         req.Name,
		Description:  req.Description,
		AmountCents:  req.AmountCents,
		CurrencyCode: req.CurrencyCode,
		Period:       req.Period,
		CategoryIDs:  req.CategoryIDs,
		StartDate:    req.StartDate,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return budget, nil
}

// GetBudget fetches a budget, enforcing ownership.
func (s *FinanceService) GetBudget(ctx context.Context, ownerID, budgetID string) (*model.Budget, error) {
	budget, err := s.store.GetBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	return budget, nil
}

// UpdateBudgetRequest carries the mutable budget fields.
type UpdateBudgetRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	AmountCents *int64    `json:"amountCents"`
	CategoryIDs *[]string `json:"categoryIds"`
	IsActive    *bool     `json:"isActive"`
}

// UpdateBudget applies a partial update to an owned budget.
func (s *FinanceService) UpdateBudget(ctx context.Context, ownerID, budgetID string, req UpdateBudgetRequest) (*model.Budget, error) {
	budget, err := s.GetBudget(ctx, ownerID, budgetID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		budget.Name = *req.Name
	}
	if req.Description != nil {
		budget.Description = *req.Description
	}
	if req.AmountCents != nil {
		if *req.AmountCents <= 0 {
			return nil, fmt.Errorf("amountCents must be positive")
		}
		budget.AmountCents = *req.AmountCents
	}
	if req.CategoryIDs != nil {
		budget.CategoryIDs = *req.CategoryIDs
	}
	if req.IsActive != nil {
		budget.IsActive = *req.IsActive
	}
	budget.UpdatedAt = time.Now()

	if err := s.store.UpdateBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return budget, nil
}

// DeleteBudget removes an owned budget.
func (s *FinanceService) DeleteBudget(ctx context.Context, ownerID, budgetID string) error {
	if _, err := s.GetBudget(ctx, ownerID, budgetID); err != nil {
		return err
	}
	return s.store.DeleteBudget(ctx, budgetID)
}

// ListBudgets returns the owner's budgets.
func (s *FinanceService) ListBudgets(ctx context.Context, ownerID string, includeInactive bool) ([]*model.Budget, error) {
	if ownerID == "" {
		return nil, nil
	}
	budgets, err := s.store.ListBudgets(ctx, ownerID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

// GetBudgetProgress computes spend against a budget for the period containing
// asOf. Only expense transactions count; when the budget names categories,
// only those categories count.
func (s *FinanceService) GetBudgetProgress(ctx context.Context, ownerID, budgetID string, asOf time.Time) (*model.BudgetProgress, error) {
	budget, err := s.GetBudget(ctx, ownerID, budgetID)
	if err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}

	periodStart, periodEnd := budgetPeriodBounds(budget.Period, asOf)

	filter := store.TransactionFilter{
		StartDate: &periodStart,
		EndDate:   &periodEnd,
		Type:      model.TransactionTypeExpense,
	}
	txs, _, err := s.store.ListTransactions(ctx, ownerID, filter, 1000, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for budget: %w", err)
	}

	inBudget := func(categoryID string) bool {
		if len(budget.CategoryIDs) == 0 {
			return true
		}
		for _, id := range budget.CategoryIDs {
			if id == categoryID {
				return true
			}
		}
		return false
	}

	var spent int64
	categorySpend := make(map[string]int64)
	for _, tx := range txs {
		if !inBudget(tx.CategoryID) {
			continue
		}
		spent += tx.AmountCents
		if tx.CategoryID != "" {
			categorySpend[tx.CategoryID] += tx.AmountCents
		}
	}

	progress := &model.BudgetProgress{
		BudgetID:       budget.ID,
		AllocatedCents: budget.AmountCents,
		SpentCents:     spent,
		RemainingCents: budget.AmountCents - spent,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		CategorySpend:  categorySpend,
	}
	if budget.AmountCents > 0 {
		progress.PercentUsed = float64(spent) / float64(budget.AmountCents) * 100
	}
	if remaining := periodEnd.Sub(asOf); remaining > 0 {
		progress.DaysRemaining = int32(remaining.Hours() / 24)
	}
	return progress, nil
}

// budgetPeriodBounds returns the calendar period containing asOf: weeks start
// Sunday, months and years on the first. The end bound is exclusive.
func budgetPeriodBounds(period model.BudgetPeriod, asOf time.Time) (time.Time, time.Time) {
	y, m, d := asOf.Date()
	loc := asOf.Location()
	switch period {
	case model.BudgetPeriodWeekly:
		start := time.Date(y, m, d-int(asOf.Weekday()), 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 7)
	case model.BudgetPeriodYearly:
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0)
	default:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	}
}
