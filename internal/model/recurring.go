package model

import "time"

// Frequency is the base unit a recurring rule repeats over.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// RecurringRule describes when a recurring series fires.
//
// Interval is the number of base units between occurrences and must be >= 1.
// DayOfWeek (0 = Sunday) applies to weekly rules; DayOfMonth (1-31) applies to
// monthly and yearly rules and is clamped to the last valid day of short
// months; MonthOfYear (1-12) applies to yearly rules.
type RecurringRule struct {
	Frequency   Frequency `json:"frequency" firestore:"Frequency"`
	Interval    int       `json:"interval" firestore:"Interval"`
	DayOfWeek   *int      `json:"dayOfWeek,omitempty" firestore:"DayOfWeek"`
	DayOfMonth  *int      `json:"dayOfMonth,omitempty" firestore:"DayOfMonth"`
	MonthOfYear *int      `json:"monthOfYear,omitempty" firestore:"MonthOfYear"`
}

// RecurringSeries is a recurring-transaction definition: the rule plus the
// transaction template it stamps out, and the advancing occurrence cursor.
type RecurringSeries struct {
	ID           string          `json:"id" firestore:"ID"`
	OwnerID      string          `json:"ownerId" firestore:"OwnerID"`
	Name         string          `json:"name" firestore:"Name"`
	Type         TransactionType `json:"type" firestore:"Type"`
	AmountCents  int64           `json:"amountCents" firestore:"AmountCents"`
	CurrencyCode string          `json:"currencyCode" firestore:"CurrencyCode"`
	CategoryID   string          `json:"categoryId" firestore:"CategoryID"`
	Description  string          `json:"description,omitempty" firestore:"Description"`
	Rule         RecurringRule   `json:"rule" firestore:"Rule"`

	StartDate time.Time  `json:"startDate" firestore:"StartDate"`
	EndDate   *time.Time `json:"endDate,omitempty" firestore:"EndDate"`

	// NextOccurrenceDate is always the earliest unprocessed occurrence at or
	// after StartDate and never before LastProcessedDate.
	NextOccurrenceDate time.Time  `json:"nextOccurrenceDate" firestore:"NextOccurrenceDate"`
	LastProcessedDate  *time.Time `json:"lastProcessedDate,omitempty" firestore:"LastProcessedDate"`

	IsActive  bool      `json:"isActive" firestore:"IsActive"`
	CreatedAt time.Time `json:"createdAt" firestore:"CreatedAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"UpdatedAt"`
}

// UpcomingOccurrence is a read-only projection of a future occurrence of a
// series within a preview horizon. Nothing is persisted for these.
type UpcomingOccurrence struct {
	SeriesID     string          `json:"seriesId"`
	SeriesName   string          `json:"seriesName"`
	Date         time.Time       `json:"date"`
	Type         TransactionType `json:"type"`
	AmountCents  int64           `json:"amountCents"`
	CurrencyCode string          `json:"currencyCode"`
	CategoryID   string          `json:"categoryId"`
}
