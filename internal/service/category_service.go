package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pennyledger/backend/internal/model"
	"github.com/pennyledger/backend/internal/store"
)

// defaultCategories are seeded on a user's first category access so imports
// and budgets always have something to attach to.
var defaultCategories = []struct {
	Name  string
	Kind  model.TransactionType
	Color string
	Icon  string
}{
	{"Groceries", model.TransactionTypeExpense, "#4CAF50", "cart"},
	{"Dining", model.TransactionTypeExpense, "#FF9800", "utensils"},
	{"Transport", model.TransactionTypeExpense, "#2196F3", "car"},
	{"Housing", model.TransactionTypeExpense, "#795548", "home"},
	{"Utilities", model.TransactionTypeExpense, "#607D8B", "bolt"},
	{"Entertainment", model.TransactionTypeExpense, "#9C27B0", "film"},
	{"Shopping", model.TransactionTypeExpense, "#E91E63", "bag"},
	{"Health", model.TransactionTypeExpense, "#F44336", "heart"},
	{"Travel", model.TransactionTypeExpense, "#00BCD4", "plane"},
	{"Insurance", model.TransactionTypeExpense, "#3F51B5", "shield"},
	{"Salary", model.TransactionTypeIncome, "#8BC34A", "briefcase"},
	{"Other Income", model.TransactionTypeIncome, "#CDDC39", "coins"},
}

// CreateCategoryRequest carries the fields for a new category.
type CreateCategoryRequest struct {
	OwnerID string                `json:"ownerId"`
	Name    string                `json:"name"`
	Kind    model.TransactionType `json:"kind"`
	Color   string                `json:"color"`
	Icon    string                `json:"icon"`
}

// CreateCategory creates a user-defined category.
func (s *FinanceService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.Category, error) {
	if req.OwnerID == "" {
		return nil, fmt.Errorf("ownerId is required")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("kind must be income or expense")
	}

	now := time.Now()
	cat := &model.Category{
		ID:        uuid.New().String(),
		OwnerID:   req.OwnerID,
		Name:      req.Name,
		Kind:      req.Kind,
		Color:     req.Color,
		Icon:      req.Icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateCategory(ctx, cat); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return cat, nil
}

// GetCategory fetches a category, enforcing ownership.
func (s *FinanceService) GetCategory(ctx context.Context, ownerID, categoryID string) (*model.Category, error) {
	cat, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if cat.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	return cat, nil
}

// UpdateCategoryRequest carries the mutable category fields.
type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

// UpdateCategory applies a partial update to an owned category.
func (s *FinanceService) UpdateCategory(ctx context.Context, ownerID, categoryID string, req UpdateCategoryRequest) (*model.Category, error) {
	cat, err := s.GetCategory(ctx, ownerID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		cat.Name = *req.Name
	}
	if req.Color != nil {
		cat.Color = *req.Color
	}
	if req.Icon != nil {
		cat.Icon = *req.Icon
	}
	cat.UpdatedAt = time.Now()

	if err := s.store.UpdateCategory(ctx, cat); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return cat, nil
}

// DeleteCategory removes an owned category. Transactions that referenced it
// keep the dangling ID and render as uncategorized.
func (s *FinanceService) DeleteCategory(ctx context.Context, ownerID, categoryID string) error {
	if _, err := s.GetCategory(ctx, ownerID, categoryID); err != nil {
		return err
	}
	return s.store.DeleteCategory(ctx, categoryID)
}

// ListCategories returns the owner's categories, seeding the defaults on
// first access.
func (s *FinanceService) ListCategories(ctx context.Context, ownerID string) ([]*model.Category, error) {
	if ownerID == "" {
		return nil, nil
	}

	cats, err := s.store.ListCategories(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if len(cats) > 0 {
		return cats, nil
	}

	seeded, err := s.seedDefaultCategories(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return seeded, nil
}

func (s *FinanceService) seedDefaultCategories(ctx context.Context, ownerID string) ([]*model.Category, error) {
	log.Printf("[Service] seeding default categories for user %s", ownerID)

	now := time.Now()
	cats := make([]*model.Category, 0, len(defaultCategories))
	for _, d := range defaultCategories {
		cat := &model.Category{
			ID:        uuid.New().String(),
			OwnerID:   ownerID,
			Name:      d.Name,
			Kind:      d.Kind,
			Color:     d.Color,
			Icon:      d.Icon,
			IsDefault: true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.store.CreateCategory(ctx, cat); err != nil {
			return nil, fmt.Errorf("failed to seed category %q: %w", d.Name, err)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// GetUserSettings returns the owner's settings, defaulting the base currency
// to the service's configured default when nothing is stored yet.
func (s *FinanceService) GetUserSettings(ctx context.Context, ownerID string) (*model.UserSettings, error) {
	settings, err := s.store.GetUserSettings(ctx, ownerID)
	if err == store.ErrNotFound {
		return &model.UserSettings{OwnerID: ownerID, BaseCurrencyCode: s.defaultCurrency}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user settings: %w", err)
	}
	return settings, nil
}

// UpdateUserSettings stores the owner's settings.
func (s *FinanceService) UpdateUserSettings(ctx context.Context, ownerID, baseCurrencyCode string) (*model.UserSettings, error) {
	if baseCurrencyCode == "" {
		return nil, fmt.Errorf("baseCurrencyCode is required")
	}
	settings := &model.UserSettings{
		OwnerID:          ownerID,
		BaseCurrencyCode: baseCurrencyCode,
		UpdatedAt:        time.Now(),
	}
	if err := s.store.UpsertUserSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update user settings: %w", err)
	}
	return settings, nil
}
