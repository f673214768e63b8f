package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pennyledger/backend/internal/model"
	"github.com/pennyledger/backend/internal/store"
)

func dailySeries(id, ownerID string, next time.Time) *model.RecurringSeries {
	return &model.RecurringSeries{
		ID:                 id,
		OwnerID:            ownerID,
		Name:               "Gym membership",
		Type:               model.TransactionTypeExpense,
		AmountCents:        2500,
		CurrencyCode:       "USD",
		CategoryID:         "cat-health",
		Rule:               model.RecurringRule{Frequency: model.FrequencyDaily, Interval: 1},
		StartDate:          next.AddDate(0, 0, -30),
		NextOccurrenceDate: next,
		IsActive:           true,
	}
}

func TestProcessDueSeries_CatchUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := NewFinanceService(mockStore, nil, nil)

	now := time.Now()
	series := dailySeries("series-1", "user-1", now.AddDate(0, 0, -2))

	mockStore.EXPECT().
		ListActiveSeriesDueBefore(gomock.Any(), "user-1", gomock.Any()).
		Return([]*model.RecurringSeries{series}, nil)

	var created []*model.Transaction
	mockStore.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *model.Transaction) error {
			created = append(created, tx)
			return nil
		}).
		Times(3)
	mockStore.EXPECT().
		UpdateSeries(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(3)

	summary, err := svc.ProcessDueSeries(context.Background(), "user-1", false)
	require.NoError(t, err)

	assert.Equal(t, int32(1), summary.SeriesProcessed)
	assert.Equal(t, int32(3), summary.OccurrencesCreated)
	assert.Equal(t, int32(0), summary.Errors)

	// One transaction per missed day, dated at the occurrence, not at now.
	require.Len(t, created, 3)
	for i, tx := range created {
		assert.Equal(t, "series-1", tx.RecurringSeriesID)
		assert.Equal(t, "user-1", tx.OwnerID)
		assert.Equal(t, int64(2500), tx.AmountCents)
		assert.Contains(t, tx.Tags, "recurring")
		wantDate := now.AddDate(0, 0, -2+i)
		assert.WithinDuration(t, wantDate, tx.Date, time.Second)
	}

	// Cursor ends up strictly in the future.
	assert.True(t, series.NextOccurrenceDate.After(now))
	require.NotNil(t, series.LastProcessedDate)
}

func TestProcessDueSeries_EndDatePassedDeactivates(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := NewFinanceService(mockStore, nil, nil)

	now := time.Now()
	series := dailySeries("series-ended", "user-1", now.AddDate(0, 0, -5))
	end := now.AddDate(0, 0, -10)
	series.EndDate = &end

	mockStore.EXPECT().
		ListActiveSeriesDueBefore(gomock.Any(), "user-1", gomock.Any()).
		Return([]*model.RecurringSeries{series}, nil)
	mockStore.EXPECT().
		UpdateSeries(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *model.RecurringSeries) error {
			assert.False(t, s.IsActive)
			return nil
		})

	summary, err := svc.ProcessDueSeries(context.Background(), "user-1", false)
	require.NoError(t, err)

	assert.Equal(t, int32(0), summary.OccurrencesCreated)
	assert.Equal(t, int32(1), summary.SeriesEnded)
	assert.False(t, series.IsActive)
}

func TestProcessDueSeries_FinalOccurrenceThenEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := NewFinanceService(mockStore, nil, nil)

	now := time.Now()
	series := dailySeries("series-final", "user-1", now.Add(-time.Hour))
	end := now.Add(time.Hour)
	series.EndDate = &end

	mockStore.EXPECT().
		ListActiveSeriesDueBefore(gomock.Any(), "user-1", gomock.Any()).
		Return([]*model.RecurringSeries{series}, nil)
	mockStore.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		Return(nil)
	mockStore.EXPECT().
		UpdateSeries(gomock.Any(), gomock.Any()).
		Return(nil)

	summary, err := svc.ProcessDueSeries(context.Background(), "user-1", false)
	require.NoError(t, err)

	assert.Equal(t, int32(1), summary.OccurrencesCreated)
	assert.Equal(t, int32(1), summary.SeriesEnded)
	assert.False(t, series.IsActive)
}

func TestProcessDueSeries_ErrorIsolation(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := NewFinanceService(mockStore, nil, nil)

	now := time.Now()
	bad := dailySeries("series-bad", "user-1", now.Add(-time.Hour))
	good := dailySeries("series-good", "user-1", now.Add(-time.Hour))

	mockStore.EXPECT().
		ListActiveSeriesDueBefore(gomock.Any(), "user-1", gomock.Any()).
		Return([]*model.RecurringSeries{bad, good}, nil)
	mockStore.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *model.Transaction) error {
			if tx.RecurringSeriesID == "series-bad" {
				return fmt.Errorf("firestore unavailable")
			}
			return nil
		}).
		Times(2)
	mockStore.EXPECT().
		UpdateSeries(gomock.Any(), gomock.Any()).
		Return(nil)

	summary, err := svc.ProcessDueSeries(context.Background(), "user-1", false)
	require.NoError(t, err, "one bad series must not fail the pass")

	assert.Equal(t, int32(1), summary.Errors)
	assert.Equal(t, int32(1), summary.SeriesProcessed)
	assert.Equal(t, int32(1), summary.OccurrencesCreated)
}

func TestProcessDueSeries_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := NewFinanceService(mockStore, nil, nil)

	// No owner and not the scheduler path: empty result, no store calls.
	summary, err := svc.ProcessDueSeries(context.Background(), "", false)
	require.NoError(t, err)
	assert.Equal(t, &ProcessSummary{}, summary)
}

func TestProcessDueSeries_AllOwners(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := NewFinanceService(mockStore, nil, nil)

	mockStore.EXPECT().
		ListActiveSeriesDueBefore(gomock.Any(), "", gomock.Any()).
		Return(nil, nil)

	summary, err := svc.ProcessDueSeries(context.Background(), "ignored", true)
	require.NoError(t, err)
	assert.Equal(t, int32(0), summary.SeriesProcessed)
}

func TestPreviewOccurrences(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := NewFinanceService(mockStore, nil, nil)

	now := time.Now()
	weekly := &model.RecurringSeries{
		ID:                 "series-rent",
		OwnerID:            "user-1",
		Name:               "Rent",
		Type:               model.TransactionTypeExpense,
		AmountCents:        180000,
		CurrencyCode:       "USD",
		Rule:               model.RecurringRule{Frequency: model.FrequencyWeekly, Interval: 1},
		NextOccurrenceDate: now.AddDate(0, 0, 3),
		IsActive:           true,
	}

	mockStore.EXPECT().
		ListSeries(gomock.Any(), "user-1", true).
		Return([]*model.RecurringSeries{weekly}, nil)

	upcoming, err := svc.PreviewOccurrences(context.Background(), "user-1", 30)
	require.NoError(t, err)

	// Days 3, 10, 17, 24; day 31 is past the horizon.
	require.Len(t, upcoming, 4)
	for i, occ := range upcoming {
		assert.Equal(t, "series-rent", occ.SeriesID)
		assert.Equal(t, "Rent", occ.SeriesName)
		assert.WithinDuration(t, now.AddDate(0, 0, 3+7*i), occ.Date, time.Second)
	}
}

func TestPreviewOccurrences_DailyHorizonCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := NewFinanceService(mockStore, nil, nil)

	now := time.Now()
	daily := dailySeries("series-coffee", "user-1", now.AddDate(0, 0, 1))

	mockStore.EXPECT().
		ListSeries(gomock.Any(), "user-1", true).
		Return([]*model.RecurringSeries{daily}, nil)

	upcoming, err := svc.PreviewOccurrences(context.Background(), "user-1", 30)
	require.NoError(t, err)

	// A daily series starting tomorrow yields one entry per day of the
	// horizon, in strictly ascending order.
	require.Len(t, upcoming, 30)
	for i := 1; i < len(upcoming); i++ {
		assert.True(t, upcoming[i].Date.After(upcoming[i-1].Date))
	}
}

func TestPreviewOccurrences_OverdueSkipsToWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := NewFinanceService(mockStore, nil, nil)

	now := time.Now()
	series := dailySeries("series-late", "user-1", now.AddDate(0, 0, -10))
	series.Rule.Interval = 3

	mockStore.EXPECT().
		ListSeries(gomock.Any(), "user-1", true).
		Return([]*model.RecurringSeries{series}, nil)

	upcoming, err := svc.PreviewOccurrences(context.Background(), "user-1", 7)
	require.NoError(t, err)

	// Overdue occurrences (-10, -7, -4, -1) are not previewed; +2 and +5 are.
	require.Len(t, upcoming, 2)
	assert.WithinDuration(t, now.AddDate(0, 0, 2), upcoming[0].Date, time.Second)
	assert.WithinDuration(t, now.AddDate(0, 0, 5), upcoming[1].Date, time.Second)
}

func TestPreviewOccurrences_StopsAtEndDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := NewFinanceService(mockStore, nil, nil)

	now := time.Now()
	series := dailySeries("series-ending", "user-1", now.AddDate(0, 0, 2))
	end := now.AddDate(0, 0, 4)
	series.EndDate = &end

	mockStore.EXPECT().
		ListSeries(gomock.Any(), "user-1", true).
		Return([]*model.RecurringSeries{series}, nil)

	upcoming, err := svc.PreviewOccurrences(context.Background(), "user-1", 30)
	require.NoError(t, err)

	// Days 2, 3, 4 fit before the end date; day 5 does not.
	require.Len(t, upcoming, 3)
}

func TestPreviewOccurrences_SortedAcrossSeries(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := NewFinanceService(mockStore, nil, nil)

	now := time.Now()
	a := dailySeries("series-a", "user-1", now.AddDate(0, 0, 5))
	a.Name = "Streaming"
	a.Rule = model.RecurringRule{Frequency: model.FrequencyMonthly, Interval: 1}
	b := dailySeries("series-b", "user-1", now.AddDate(0, 0, 2))
	b.Name = "Payday"
	b.Rule = model.RecurringRule{Frequency: model.FrequencyMonthly, Interval: 1}

	mockStore.EXPECT().
		ListSeries(gomock.Any(), "user-1", true).
		Return([]*model.RecurringSeries{a, b}, nil)

	upcoming, err := svc.PreviewOccurrences(context.Background(), "user-1", 10)
	require.NoError(t, err)

	require.Len(t, upcoming, 2)
	assert.Equal(t, "Payday", upcoming[0].SeriesName)
	assert.Equal(t, "Streaming", upcoming[1].SeriesName)
}

func TestPreviewOccurrences_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	svc := NewFinanceService(mockStore, nil, nil)

	upcoming, err := svc.PreviewOccurrences(context.Background(), "", 30)
	require.NoError(t, err)
	assert.Empty(t, upcoming)
}
