package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pennyledger/backend/internal/model"
	"github.com/pennyledger/backend/internal/recurrence"
	"github.com/pennyledger/backend/internal/store"
)

// CreateSeriesRequest carries the fields for a new recurring series.
type CreateSeriesRequest struct {
	OwnerID      string                `json:"ownerId"`
	Name         string                `json:"name"`
	Type         model.TransactionType `json:"type"`
	AmountCents  int64                 `json:"amountCents"`
	CurrencyCode string                `json:"currencyCode"`
	CategoryID   string                `json:"categoryId"`
	Description  string                `json:"description"`
	Rule         model.RecurringRule   `json:"rule"`
	StartDate    time.Time             `json:"startDate"`
	EndDate      *time.Time            `json:"endDate"`
}

// SeriesView is a series plus its human-readable schedule description.
type SeriesView struct {
	*model.RecurringSeries
	Schedule string `json:"schedule"`
}

// CreateSeries validates and stores a recurring series. The occurrence cursor
// starts at the first occurrence strictly after now, or at StartDate itself
// when that is still in the future.
func (s *FinanceService) CreateSeries(ctx context.Context, req CreateSeriesRequest) (*SeriesView, error) {
	if req.OwnerID == "" {
		return nil, fmt.Errorf("ownerId is required")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("type must be income or expense")
	}
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("amountCents must be positive")
	}
	if err := recurrence.ValidateRule(req.Rule); err != nil {
		return nil, fmt.Errorf("invalid rule: %w", err)
	}
	if req.StartDate.IsZero() {
		return nil, fmt.Errorf("startDate is required")
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("endDate must not be before startDate")
	}
	if req.CurrencyCode == "" {
		req.CurrencyCode = s.defaultCurrency
	}

	now := time.Now()
	series := &model.RecurringSeries{
		ID:                 uuid.New().String(),
		OwnerID:            req.OwnerID,
		Name:               req.Name,
		Type:               req.Type,
		AmountCents:        req.AmountCents,
		CurrencyCode:       req.CurrencyCode,
		CategoryID:         req.CategoryID,
		Description:        req.Description,
		Rule:               req.Rule,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		NextOccurrenceDate: recurrence.FirstOccurrenceAfter(req.StartDate, req.Rule, now),
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.store.CreateSeries(ctx, series); err != nil {
		return nil, fmt.Errorf("failed to create series: %w", err)
	}
	return &SeriesView{RecurringSeries: series, Schedule: recurrence.Describe(series.Rule)}, nil
}

// GetSeries fetches a series, enforcing ownership.
func (s *FinanceService) GetSeries(ctx context.Context, ownerID, seriesID string) (*SeriesView, error) {
	series, err := s.ownedSeries(ctx, ownerID, seriesID)
	if err != nil {
		return nil, err
	}
	return &SeriesView{RecurringSeries: series, Schedule: recurrence.Describe(series.Rule)}, nil
}

func (s *FinanceService) ownedSeries(ctx context.Context, ownerID, seriesID string) (*model.RecurringSeries, error) {
	series, err := s.store.GetSeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	if series.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	return series, nil
}

// UpdateSeriesRequest carries the mutable series fields. Changing the rule
// re-resolves the occurrence cursor from the series start.
type UpdateSeriesRequest struct {
	Name        *string              `json:"name"`
	AmountCents *int64               `json:"amountCents"`
	CategoryID  *string              `json:"categoryId"`
	Description *string              `json:"description"`
	Rule        *model.RecurringRule `json:"rule"`
	EndDate     *time.Time           `json:"endDate"`
	ClearEnd    bool                 `json:"clearEnd"`
}

// UpdateSeries applies a partial update to an owned series.
func (s *FinanceService) UpdateSeries(ctx context.Context, ownerID, seriesID string, req UpdateSeriesRequest) (*SeriesView, error) {
	series, err := s.ownedSeries(ctx, ownerID, seriesID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		series.Name = *req.Name
	}
	if req.AmountCents != nil {
		if *req.AmountCents <= 0 {
			return nil, fmt.Errorf("amountCents must be positive")
		}
		series.AmountCents = *req.AmountCents
	}
	if req.CategoryID != nil {
		series.CategoryID = *req.CategoryID
	}
	if req.Description != nil {
		series.Description = *req.Description
	}
	if req.Rule != nil {
		if err := recurrence.ValidateRule(*req.Rule); err != nil {
			return nil, fmt.Errorf("invalid rule: %w", err)
		}
		series.Rule = *req.Rule
		series.NextOccurrenceDate = recurrence.FirstOccurrenceAfter(series.StartDate, series.Rule, time.Now())
	}
	if req.ClearEnd {
		series.EndDate = nil
	} else if req.EndDate != nil {
		if req.EndDate.Before(series.StartDate) {
			return nil, fmt.Errorf("endDate must not be before startDate")
		}
		series.EndDate = req.EndDate
	}
	series.UpdatedAt = time.Now()

	if err := s.store.UpdateSeries(ctx, series); err != nil {
		return nil, fmt.Errorf("failed to update series: %w", err)
	}
	return &SeriesView{RecurringSeries: series, Schedule: recurrence.Describe(series.Rule)}, nil
}

// DeleteSeries removes an owned series. Already-materialized transactions
// stay, keeping their back-reference for history.
func (s *FinanceService) DeleteSeries(ctx context.Context, ownerID, seriesID string) error {
	if _, err := s.ownedSeries(ctx, ownerID, seriesID); err != nil {
		return err
	}
	return s.store.DeleteSeries(ctx, seriesID)
}

// PauseSeries deactivates a series without deleting it.
func (s *FinanceService) PauseSeries(ctx context.Context, ownerID, seriesID string) (*SeriesView, error) {
	return s.setSeriesActive(ctx, ownerID, seriesID, false)
}

// ResumeSeries reactivates a paused series. Occurrences that fell due while
// paused are skipped, not backfilled: the cursor fast-forwards past now.
func (s *FinanceService) ResumeSeries(ctx context.Context, ownerID, seriesID string) (*SeriesView, error) {
	return s.setSeriesActive(ctx, ownerID, seriesID, true)
}

func (s *FinanceService) setSeriesActive(ctx context.Context, ownerID, seriesID string, active bool) (*SeriesView, error) {
	series, err := s.ownedSeries(ctx, ownerID, seriesID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	series.IsActive = active
	if active && !series.NextOccurrenceDate.After(now) {
		series.NextOccurrenceDate = recurrence.FirstOccurrenceAfter(series.NextOccurrenceDate, series.Rule, now)
	}
	series.UpdatedAt = now

	if err := s.store.UpdateSeries(ctx, series); err != nil {
		return nil, fmt.Errorf("failed to update series: %w", err)
	}
	return &SeriesView{RecurringSeries: series, Schedule: recurrence.Describe(series.Rule)}, nil
}

// ListSeries returns the owner's series with schedule descriptions.
func (s *FinanceService) ListSeries(ctx context.Context, ownerID string, activeOnly bool) ([]*SeriesView, error) {
	if ownerID == "" {
		return nil, nil
	}

	series, err := s.store.ListSeries(ctx, ownerID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}

	views := make([]*SeriesView, 0, len(series))
	for _, sr := range series {
		views = append(views, &SeriesView{RecurringSeries: sr, Schedule: recurrence.Describe(sr.Rule)})
	}
	return views, nil
}
