package model

import "time"

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single dated money movement. Amounts are stored in integer
// minor units (cents) to avoid float drift; CurrencyCode is ISO 4217.
type Transaction struct {
	ID           string          `json:"id" firestore:"ID"`
	OwnerID      string          `json:"ownerId" firestore:"OwnerID"`
	Type         TransactionType `json:"type" firestore:"Type"`
	AmountCents  int64           `json:"amountCents" firestore:"AmountCents"`
	CurrencyCode string          `json:"currencyCode" firestore:"CurrencyCode"`
	CategoryID   string          `json:"categoryId" firestore:"CategoryID"`
	Description  string          `json:"description" firestore:"Description"`
	Date         time.Time       `json:"date" firestore:"Date"`
	Tags         []string        `json:"tags,omitempty" firestore:"Tags"`

	// RecurringSeriesID links a transaction materialized from a recurring
	// series back to its originating series. Empty for one-off entries.
	RecurringSeriesID string `json:"recurringSeriesId,omitempty" firestore:"RecurringSeriesID"`

	CreatedAt time.Time `json:"createdAt" firestore:"CreatedAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"UpdatedAt"`
}

// Category groups transactions for budgeting and reporting.
type Category struct {
	ID        string          `json:"id" firestore:"ID"`
	OwnerID   string          `json:"ownerId" firestore:"OwnerID"`
	Name      string          `json:"name" firestore:"Name"`
	Kind      TransactionType `json:"kind" firestore:"Kind"`
	Color     string          `json:"color,omitempty" firestore:"Color"`
	Icon      string          `json:"icon,omitempty" firestore:"Icon"`
	IsDefault bool            `json:"isDefault" firestore:"IsDefault"`
	CreatedAt time.Time       `json:"createdAt" firestore:"CreatedAt"`
	UpdatedAt time.Time       `json:"updatedAt" firestore:"UpdatedAt"`
}

// BudgetPeriod is the recurrence window a budget resets over.
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Budget caps expense spending for a set of categories over a rolling period.
type Budget struct {
	ID           string       `json:"id" firestore:"ID"`
	OwnerID      string       `json:"ownerId" firestore:"OwnerID"`
	Name         string       `json:"name" firestore:"Name"`
	Description  string       `json:"description,omitempty" firestore:"Description"`
	AmountCents  int64        `json:"amountCents" firestore:"AmountCents"`
	CurrencyCode string       `json:"currencyCode" firestore:"CurrencyCode"`
	Period       BudgetPeriod `json:"period" firestore:"Period"`
	CategoryIDs  []string     `json:"categoryIds,omitempty" firestore:"CategoryIDs"`
	StartDate    time.Time    `json:"startDate" firestore:"StartDate"`
	IsActive     bool         `json:"isActive" firestore:"IsActive"`
	CreatedAt    time.Time    `json:"createdAt" firestore:"CreatedAt"`
	UpdatedAt    time.Time    `json:"updatedAt" firestore:"UpdatedAt"`
}

// BudgetProgress is a computed view of spend against a budget for the period
// containing the as-of date. Never persisted.
type BudgetProgress struct {
	BudgetID       string           `json:"budgetId"`
	AllocatedCents int64            `json:"allocatedCents"`
	SpentCents     int64            `json:"spentCents"`
	RemainingCents int64            `json:"remainingCents"`
	PercentUsed    float64          `json:"percentUsed"`
	DaysRemaining  int32            `json:"daysRemaining"`
	PeriodStart    time.Time        `json:"periodStart"`
	PeriodEnd      time.Time        `json:"periodEnd"`
	CategorySpend  map[string]int64 `json:"categorySpend,omitempty"`
}

// UserSettings holds per-user preferences the backend needs server-side.
type UserSettings struct {
	OwnerID          string    `json:"ownerId" firestore:"OwnerID"`
	BaseCurrencyCode string    `json:"baseCurrencyCode" firestore:"BaseCurrencyCode"`
	UpdatedAt        time.Time `json:"updatedAt" firestore:"UpdatedAt"`
}
