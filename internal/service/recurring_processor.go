package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pennyledger/backend/internal/model"
	"github.com/pennyledger/backend/internal/recurrence"
)

// maxCatchUpOccurrences bounds how many missed occurrences a single pass will
// materialize for one series. A series left unprocessed for years should not
// stall the whole pass.
const maxCatchUpOccurrences = 400

// ProcessSummary reports what a processing pass did.
type ProcessSummary struct {
	SeriesProcessed    int32 `json:"seriesProcessed"`
	OccurrencesCreated int32 `json:"occurrencesCreated"`
	SeriesEnded        int32 `json:"seriesEnded"`
	SeriesSkipped      int32 `json:"seriesSkipped"`
	Errors             int32 `json:"errors"`
}

// ProcessDueSeries materializes transactions for every active series whose
// next occurrence is due. A series that missed several periods catches up in
// this pass, one transaction per missed occurrence. Failures are isolated per
// series so one bad document never blocks the rest.
//
// With allOwners set (the scheduler path), ownerID is ignored and every
// owner's due series are processed.
func (s *FinanceService) ProcessDueSeries(ctx context.Context, ownerID string, allOwners bool) (*ProcessSummary, error) {
	summary := &ProcessSummary{}
	if ownerID == "" && !allOwners {
		return summary, nil
	}
	if allOwners {
		ownerID = ""
	}

	now := time.Now()
	due, err := s.store.ListActiveSeriesDueBefore(ctx, ownerID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list due series: %w", err)
	}

	for _, series := range due {
		created, ended, err := s.processOneSeries(ctx, series, now)
		if err != nil {
			log.Printf("[Recurring] failed to process series %s (%s): %v", series.ID, series.Name, err)
			summary.Errors++
			continue
		}
		summary.OccurrencesCreated += created
		if ended {
			summary.SeriesEnded++
		}
		if created > 0 {
			summary.SeriesProcessed++
		} else if !ended {
			summary.SeriesSkipped++
		}
	}

	log.Printf("[Recurring] pass complete: %d series processed, %d occurrences created, %d ended, %d errors",
		summary.SeriesProcessed, summary.OccurrencesCreated, summary.SeriesEnded, summary.Errors)
	return summary, nil
}

// processOneSeries catches one series up to now. Each missed occurrence
// becomes a transaction dated at that occurrence; the cursor is persisted
// after every materialization so a crash mid-catch-up loses at most one
// advance.
func (s *FinanceService) processOneSeries(ctx context.Context, series *model.RecurringSeries, now time.Time) (created int32, ended bool, err error) {
	for !series.NextOccurrenceDate.After(now) {
		if series.EndDate != nil && series.NextOccurrenceDate.After(*series.EndDate) {
			break
		}
		if created >= maxCatchUpOccurrences {
			log.Printf("[Recurring] series %s hit catch-up cap at %d occurrences, resuming next pass", series.ID, created)
			break
		}

		tx := transactionFromSeries(series, series.NextOccurrenceDate, now)
		if err := s.store.CreateTransaction(ctx, tx); err != nil {
			return created, false, fmt.Errorf("create occurrence transaction: %w", err)
		}

		series.NextOccurrenceDate = recurrence.Advance(series.NextOccurrenceDate, series.Rule)
		series.LastProcessedDate = &now
		series.UpdatedAt = now
		if series.EndDate != nil && series.NextOccurrenceDate.After(*series.EndDate) {
			series.IsActive = false
			ended = true
		}
		if err := s.store.UpdateSeries(ctx, series); err != nil {
			return created, false, fmt.Errorf("advance occurrence cursor: %w", err)
		}
		created++

		if ended {
			break
		}
	}

	// Past its end without anything left to materialize.
	if !ended && series.EndDate != nil && series.NextOccurrenceDate.After(*series.EndDate) && series.IsActive {
		series.IsActive = false
		series.UpdatedAt = now
		if err := s.store.UpdateSeries(ctx, series); err != nil {
			return created, false, fmt.Errorf("deactivate ended series: %w", err)
		}
		ended = true
	}

	return created, ended, nil
}

// transactionFromSeries stamps the series template into a transaction dated
// at the given occurrence.
func transactionFromSeries(series *model.RecurringSeries, occurrence, now time.Time) *model.Transaction {
	return &model.Transaction{
		ID:                uuid.New().String(),
		OwnerID:           series.OwnerID,
		Type:              series.Type,
		AmountCents:       series.AmountCents,
		CurrencyCode:      series.CurrencyCode,
		CategoryID:        series.CategoryID,
		Description:       series.Description,
		Date:              occurrence,
		Tags:              []string{"recurring"},
		RecurringSeriesID: series.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// PreviewOccurrences projects the occurrences of the owner's active series
// falling within [now, now+horizonDays], inclusive at both ends. Nothing is
// persisted. Results are sorted by date, then series name for stability.
func (s *FinanceService) PreviewOccurrences(ctx context.Context, ownerID string, horizonDays int) ([]model.UpcomingOccurrence, error) {
	if ownerID == "" {
		return nil, nil
	}
	if horizonDays <= 0 {
		horizonDays = 30
	}

	series, err := s.store.ListSeries(ctx, ownerID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}

	now := time.Now()
	limit := now.AddDate(0, 0, horizonDays)

	var upcoming []model.UpcomingOccurrence
	for _, sr := range series {
		d := sr.NextOccurrenceDate
		for !d.After(limit) {
			if sr.EndDate != nil && d.After(*sr.EndDate) {
				break
			}
			if !d.Before(now) {
				upcoming = append(upcoming, model.UpcomingOccurrence{
					SeriesID:     sr.ID,
					SeriesName:   sr.Name,
					Date:         d,
					Type:         sr.Type,
					AmountCents:  sr.AmountCents,
					CurrencyCode: sr.CurrencyCode,
					CategoryID:   sr.CategoryID,
				})
			}
			d = recurrence.Advance(d, sr.Rule)
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		if !upcoming[i].Date.Equal(upcoming[j].Date) {
			return upcoming[i].Date.Before(upcoming[j].Date)
		}
		return upcoming[i].SeriesName < upcoming[j].SeriesName
	})
	return upcoming, nil
}
