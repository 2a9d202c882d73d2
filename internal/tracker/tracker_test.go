package tracker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MichalMitros/price-tracker/internal/alerts"
	"github.com/MichalMitros/price-tracker/internal/platform"
	"github.com/MichalMitros/price-tracker/internal/platform/cache"
	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/MichalMitros/price-tracker/internal/platform/models/modelstesting"
	"github.com/MichalMitros/price-tracker/internal/ranking"
	"github.com/MichalMitros/price-tracker/internal/search"
	searchmocks "github.com/MichalMitros/price-tracker/internal/search/mocks"
	"github.com/MichalMitros/price-tracker/internal/tracker"
	"github.com/MichalMitros/price-tracker/internal/tracker/mocks"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// reusable test data
var (
	alertID   = "0f8fad5b-d9cb-469f-a165-70867728950e"
	userID    = "user-1"
	createdAt = time.Date(2020, time.April, 1, 1, 1, 1, 0, time.UTC)
	now       = time.Date(2022, time.April, 1, 1, 1, 1, 0, time.UTC)
	runID     = 42

	errShouldContainAssertErrorMsg = "should return error containing assert.AnError"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() *time.Time {
	return &c.now
}

type fakeFactoryClock struct {
	now time.Time
}

func (c fakeFactoryClock) Now() time.Time {
	return c.now
}

type mocked struct {
	storage  *mocks.Storage
	searcher *mocks.Searcher
	notifier *mocks.Notifier
}

func newTracker(t *testing.T) (*tracker.Tracker, mocked) {
	t.Helper()

	r, err := ranking.NewRanker(ranking.DefaultConfig())
	require.NoError(t, err, "default ranking config should be valid")

	factory := alerts.NewFactory(
		alerts.NewFinder(r),
		alerts.WithClock(fakeFactoryClock{now: now}),
		alerts.WithIDGenerator(func() string { return alertID }),
	)

	m := mocked{
		storage:  mocks.NewStorage(t),
		searcher: mocks.NewSearcher(t),
		notifier: mocks.NewNotifier(t),
	}

	logger := zerolog.Nop()

	return tracker.NewTracker(
		m.storage,
		m.searcher,
		m.notifier,
		factory,
		&logger,
		tracker.WithClock(fakeClock{now: now}),
		tracker.WithParallelLimit(2),
	), m
}

func product(name, store, price, category string) models.Product {
	return modelstesting.FakeProduct(func(p *models.Product) {
		p.Name = name
		p.Store = store
		p.Price = price
		p.OriginalPrice = ""
		p.Category = category
		p.Rating = 4.0
		p.ReviewsCount = 50
		p.InStock = true
	})
}

// watched returns stored alert tracking name which fires on every price change.
func watched(name string, originalPrice int64) models.SmartAlert {
	return modelstesting.FakeSmartAlert(func(a *models.SmartAlert) {
		a.UserID = userID
		a.ProductName = name
		a.Category = ""
		a.AlertType = models.AlertTypeEveryChange
		a.OriginalPrice = originalPrice
		a.TargetPrice = originalPrice
		a.TrackedStores = []models.StoreSnapshot{{Store: "Daraz", Price: originalPrice, InStock: true, LastUpdated: createdAt}}
		a.BestCurrentPrice = originalPrice
		a.BestCurrentStore = "Daraz"
		a.CreatedAt = createdAt
		a.LastCheckedAt = createdAt
	})
}

func withID(id string) interface{} {
	return mock.MatchedBy(func(a models.SmartAlert) bool { return a.ID == id })
}

func TestUnitCreateAlert(t *testing.T) {
	tracked := product("Galaxy S24", "Daraz", "Rs. 300,000", "Phones")
	cheaper := product("Galaxy S24", "PriceOye", "Rs. 290,000", "Phones")
	alternative := product("Pixel 8", "Mega", "Rs. 200,000", "Phones")

	tr, m := newTracker(t)

	m.searcher.On("Candidates", mock.Anything, "galaxy s24").Return([]models.Product{tracked, cheaper}, nil).Once()
	m.searcher.On("Candidates", mock.Anything, "phones").Return([]models.Product{cheaper, alternative}, nil).Once()
	m.storage.On("Upsert", mock.Anything, withID(alertID)).Return(nil).Once()

	alert, err := tr.CreateAlert(context.TODO(), userID, tracked, models.AlertTypeEveryChange, nil)

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, alertID, alert.ID, "should return created alert")
	assert.Equal(t, userID, alert.UserID, "should set owner")
	assert.Len(t, alert.TrackedStores, 2, "should track every store of merged candidates once")
	assert.Equal(t, int64(290000), alert.BestCurrentPrice, "should find the best price")
	assert.Equal(t, "PriceOye", alert.BestCurrentStore, "should find the best store")
	require.Len(t, alert.Alternatives, 1, "should find alternative in category candidates")
	assert.Equal(t, alternative.ID, alert.Alternatives[0].ProductID, "should offer cheaper product")
}

func TestUnitCreateAlertWithSearchCandidates(t *testing.T) {
	galaxy := models.Listing{
		Name: "Galaxy A15", Price: 100000, Rating: 4, ReviewsCount: 20,
		Store: "Daraz", URL: "https://daraz.example/galaxy-a15", InStock: true,
	}
	redmi := models.Listing{
		Name: "Redmi 13", Price: 80000, Rating: 4.2, ReviewsCount: 20,
		Store: "PriceOye", URL: "https://priceoye.example/redmi-13", InStock: true,
	}

	// stores don't tell categories, both searches find both phones
	scraper := searchmocks.NewScraper(t)
	scraper.On("SearchAll", mock.Anything, "phones").Return([]models.Listing{galaxy, redmi}).Once()
	scraper.On("SearchAll", mock.Anything, "galaxy a15").Return([]models.Listing{galaxy, redmi}).Once()

	r, err := ranking.NewRanker(ranking.DefaultConfig())
	require.NoError(t, err, "default ranking config should be valid")

	logger := zerolog.Nop()
	searcher := search.NewService(scraper, r, cache.NewMemoryStore(), &logger)

	factory := alerts.NewFactory(
		alerts.NewFinder(r),
		alerts.WithClock(fakeFactoryClock{now: now}),
		alerts.WithIDGenerator(func() string { return alertID }),
	)
	storage := mocks.NewStorage(t)
	storage.On("Upsert", mock.Anything, withID(alertID)).Return(nil).Once()

	tr := tracker.NewTracker(storage, searcher, mocks.NewNotifier(t), factory, &logger, tracker.WithClock(fakeClock{now: now}))

	tracked := galaxy.Product()
	tracked.Category = "Phones"

	alert, err := tr.CreateAlert(context.TODO(), userID, tracked, models.AlertTypeEveryChange, nil)

	require.NoError(t, err, "shouldn't return any error")
	require.Len(t, alert.TrackedStores, 1, "should track the only store selling the product")
	assert.Equal(t, int64(100000), alert.BestCurrentPrice, "should find the best price")
	require.Len(t, alert.Alternatives, 1, "should offer cheaper product of the same category")
	assert.Equal(t, redmi.Product().ID, alert.Alternatives[0].ProductID, "should offer the cheaper phone")
	assert.Equal(t, "20% cheaper", alert.Alternatives[0].Reason, "should explain the price difference")
}

func TestUnitCreateAlertWithoutCategory(t *testing.T) {
	tracked := product("  Galaxy S24 ", "Daraz", "Rs. 300,000", "")

	tr, m := newTracker(t)

	m.searcher.On("Candidates", mock.Anything, "galaxy s24").Return([]models.Product{tracked}, nil).Once()
	m.storage.On("Upsert", mock.Anything, withID(alertID)).Return(nil).Once()

	alert, err := tr.CreateAlert(context.TODO(), userID, tracked, models.AlertTypeTargetPrice, lo.ToPtr(int64(250000)))

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, int64(250000), alert.TargetPrice, "should keep requested target price")
	assert.False(t, alert.IsTriggered, "shouldn't trigger on creation")
}

func TestUnitCreateAlertError(t *testing.T) {
	tracked := product("Galaxy S24", "Daraz", "Rs. 300,000", "")

	t.Run("searcher error", func(t *testing.T) {
		tr, m := newTracker(t)

		m.searcher.On("Candidates", mock.Anything, "galaxy s24").Return(nil, assert.AnError).Once()

		_, err := tr.CreateAlert(context.TODO(), userID, tracked, models.AlertTypeEveryChange, nil)

		require.ErrorContains(t, err, "can't create alert", "should return error about failed creation")
		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
	})

	t.Run("storage error", func(t *testing.T) {
		tr, m := newTracker(t)

		m.searcher.On("Candidates", mock.Anything, "galaxy s24").Return([]models.Product{tracked}, nil).Once()
		m.storage.On("Upsert", mock.Anything, withID(alertID)).Return(assert.AnError).Once()

		_, err := tr.CreateAlert(context.TODO(), userID, tracked, models.AlertTypeEveryChange, nil)

		require.ErrorContains(t, err, "can't save created alert", "should return error about failed saving")
		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
	})
}

func TestUnitRefreshAlert(t *testing.T) {
	t.Run("triggered alert is announced before saving", func(t *testing.T) {
		alert := watched("galaxy s24", 300000)
		pool := []models.Product{product("Galaxy S24", "Shophive", "Rs. 280,000", "")}

		tr, m := newTracker(t)

		var (
			mu    sync.Mutex
			calls []string
		)
		record := func(name string) func(mock.Arguments) {
			return func(mock.Arguments) {
				mu.Lock()
				defer mu.Unlock()
				calls = append(calls, name)
			}
		}

		m.storage.On("Get", mock.Anything, alert.ID).Return(alert, nil).Once()
		m.searcher.On("Candidates", mock.Anything, "galaxy s24").Return(pool, nil).Once()
		m.notifier.On("AlertTriggered", mock.Anything, mock.MatchedBy(func(a models.SmartAlert) bool {
			return a.ID == alert.ID && a.IsTriggered && a.BestCurrentPrice == 280000
		})).Run(record("notify")).Return(nil).Once()
		m.storage.On("Upsert", mock.Anything, mock.MatchedBy(func(a models.SmartAlert) bool {
			return a.ID == alert.ID && a.IsTriggered
		})).Run(record("upsert")).Return(nil).Once()

		refreshed, err := tr.RefreshAlert(context.TODO(), userID, alert.ID)

		require.NoError(t, err, "shouldn't return any error")
		assert.True(t, refreshed.IsTriggered, "should mark alert as triggered")
		assert.Equal(t, "Shophive", refreshed.BestCurrentStore, "should update best store")
		assert.Equal(t, now, refreshed.LastCheckedAt, "should update last check time")
		assert.Equal(t, []string{"notify", "upsert"}, calls, "should notify before saving")
	})

	t.Run("unchanged alert isn't announced", func(t *testing.T) {
		alert := watched("galaxy s24", 300000)
		pool := []models.Product{product("Galaxy S24", "Daraz", "Rs. 300,000", "")}

		tr, m := newTracker(t)

		m.storage.On("Get", mock.Anything, alert.ID).Return(alert, nil).Once()
		m.searcher.On("Candidates", mock.Anything, "galaxy s24").Return(pool, nil).Once()
		m.storage.On("Upsert", mock.Anything, withID(alert.ID)).Return(nil).Once()

		refreshed, err := tr.RefreshAlert(context.TODO(), userID, alert.ID)

		require.NoError(t, err, "shouldn't return any error")
		assert.False(t, refreshed.IsTriggered, "shouldn't trigger alert")
		m.notifier.AssertNotCalled(t, "AlertTriggered", mock.Anything, mock.Anything)
	})

	t.Run("already triggered alert isn't announced again", func(t *testing.T) {
		alert := watched("galaxy s24", 300000)
		alert.IsTriggered = true
		pool := []models.Product{product("Galaxy S24", "Shophive", "Rs. 250,000", "")}

		tr, m := newTracker(t)

		m.storage.On("Get", mock.Anything, alert.ID).Return(alert, nil).Once()
		m.searcher.On("Candidates", mock.Anything, "galaxy s24").Return(pool, nil).Once()
		m.storage.On("Upsert", mock.Anything, withID(alert.ID)).Return(nil).Once()

		refreshed, err := tr.RefreshAlert(context.TODO(), userID, alert.ID)

		require.NoError(t, err, "shouldn't return any error")
		assert.Equal(t, int64(250000), refreshed.BestCurrentPrice, "should still refresh prices")
		m.notifier.AssertNotCalled(t, "AlertTriggered", mock.Anything, mock.Anything)
	})
}

func TestUnitRefreshAlertError(t *testing.T) {
	alert := watched("galaxy s24", 300000)
	pool := []models.Product{product("Galaxy S24", "Shophive", "Rs. 280,000", "")}

	t.Run("alert of other user", func(t *testing.T) {
		tr, m := newTracker(t)

		m.storage.On("Get", mock.Anything, alert.ID).Return(alert, nil).Once()

		_, err := tr.RefreshAlert(context.TODO(), "user-2", alert.ID)

		require.ErrorIs(t, err, platform.ErrAlertNotFound, "should hide alerts of other users")
		assert.True(t, tracker.IsNotFound(err), "should report missing alert")
	})

	t.Run("storage get error", func(t *testing.T) {
		tr, m := newTracker(t)

		m.storage.On("Get", mock.Anything, alert.ID).Return(models.SmartAlert{}, assert.AnError).Once()

		_, err := tr.RefreshAlert(context.TODO(), userID, alert.ID)

		require.ErrorContains(t, err, "can't refresh alert", "should return error about failed refreshing")
		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
	})

	t.Run("notifier error", func(t *testing.T) {
		tr, m := newTracker(t)

		m.storage.On("Get", mock.Anything, alert.ID).Return(alert, nil).Once()
		m.searcher.On("Candidates", mock.Anything, "galaxy s24").Return(pool, nil).Once()
		m.notifier.On("AlertTriggered", mock.Anything, withID(alert.ID)).Return(assert.AnError).Once()

		_, err := tr.RefreshAlert(context.TODO(), userID, alert.ID)

		require.ErrorContains(t, err, "can't notify about triggered alert", "should return error about failed notifying")
		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
		m.storage.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("storage upsert error", func(t *testing.T) {
		tr, m := newTracker(t)

		m.storage.On("Get", mock.Anything, alert.ID).Return(alert, nil).Once()
		m.searcher.On("Candidates", mock.Anything, "galaxy s24").Return(pool, nil).Once()
		m.notifier.On("AlertTriggered", mock.Anything, withID(alert.ID)).Return(nil).Once()
		m.storage.On("Upsert", mock.Anything, withID(alert.ID)).Return(assert.AnError).Once()

		_, err := tr.RefreshAlert(context.TODO(), userID, alert.ID)

		require.ErrorContains(t, err, "can't save refreshed alert", "should return error about failed saving")
		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
	})
}

func TestUnitRefreshAll(t *testing.T) {
	dropped := watched("galaxy s24", 300000)
	steady := watched("pixel 8", 200000)
	broken := watched("iphone 15", 400000)

	run := &models.Run{ID: runID, CreatedAt: createdAt}
	wantRun := &models.Run{
		ID:              runID,
		CreatedAt:       createdAt,
		FinishedAt:      &now,
		IsSuccess:       lo.ToPtr(false),
		StatusMessage:   lo.ToPtr("1 of 3 alerts failed"),
		RefreshedAlerts: lo.ToPtr(int32(2)),
		TriggeredAlerts: lo.ToPtr(int32(1)),
		FailedAlerts:    lo.ToPtr(int32(1)),
	}

	tr, m := newTracker(t)

	m.storage.On("StartRun", mock.Anything).Return(run, nil).Once()
	m.storage.On("ListActive", mock.Anything).Return([]models.SmartAlert{dropped, steady, broken}, nil).Once()
	m.searcher.On("Candidates", mock.Anything, "galaxy s24").
		Return([]models.Product{product("Galaxy S24", "PriceOye", "Rs. 290,000", "")}, nil).Once()
	m.searcher.On("Candidates", mock.Anything, "pixel 8").
		Return([]models.Product{product("Pixel 8", "Daraz", "Rs. 200,000", "")}, nil).Once()
	m.searcher.On("Candidates", mock.Anything, "iphone 15").Return(nil, assert.AnError).Once()
	m.notifier.On("AlertTriggered", mock.Anything, withID(dropped.ID)).Return(nil).Once()
	m.storage.On("Upsert", mock.Anything, withID(dropped.ID)).Return(nil).Once()
	m.storage.On("Upsert", mock.Anything, withID(steady.ID)).Return(nil).Once()
	m.storage.On("FinishRun", mock.Anything, wantRun).Return(nil).Once()

	gotRun, err := tr.RefreshAll(context.TODO())

	require.ErrorContains(t, err, "1 of 3 alerts failed", "should report failed alerts")
	assert.Equal(t, wantRun, gotRun, "should return finished run")
}

func TestUnitRefreshAllSuccess(t *testing.T) {
	steady := watched("pixel 8", 200000)

	run := &models.Run{ID: runID, CreatedAt: createdAt}
	wantRun := &models.Run{
		ID:              runID,
		CreatedAt:       createdAt,
		FinishedAt:      &now,
		IsSuccess:       lo.ToPtr(true),
		RefreshedAlerts: lo.ToPtr(int32(1)),
		TriggeredAlerts: lo.ToPtr(int32(0)),
		FailedAlerts:    lo.ToPtr(int32(0)),
	}

	tr, m := newTracker(t)

	m.storage.On("StartRun", mock.Anything).Return(run, nil).Once()
	m.storage.On("ListActive", mock.Anything).Return([]models.SmartAlert{steady}, nil).Once()
	m.searcher.On("Candidates", mock.Anything, "pixel 8").
		Return([]models.Product{product("Pixel 8", "Daraz", "Rs. 200,000", "")}, nil).Once()
	m.storage.On("Upsert", mock.Anything, withID(steady.ID)).Return(nil).Once()
	m.storage.On("FinishRun", mock.Anything, wantRun).Return(nil).Once()

	gotRun, err := tr.RefreshAll(context.TODO())

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, wantRun, gotRun, "should return finished run")
}

func TestUnitRefreshAllStorageError(t *testing.T) {
	t.Run("start run error", func(t *testing.T) {
		tr, m := newTracker(t)

		m.storage.On("StartRun", mock.Anything).Return(nil, platform.ErrAlreadyRunning).Once()

		run, err := tr.RefreshAll(context.TODO())

		require.ErrorContains(t, err, "can't start refreshing", "should return error about failed refreshing start")
		require.ErrorIs(t, err, platform.ErrAlreadyRunning, "should keep storage error")
		assert.Nil(t, run, "shouldn't return run")
	})

	t.Run("list active error", func(t *testing.T) {
		run := &models.Run{ID: runID, CreatedAt: createdAt}
		wantRun := &models.Run{
			ID:            runID,
			CreatedAt:     createdAt,
			FinishedAt:    &now,
			IsSuccess:     lo.ToPtr(false),
			StatusMessage: lo.ToPtr("can't list active alerts: assert.AnError general error for testing"),
		}

		tr, m := newTracker(t)

		m.storage.On("StartRun", mock.Anything).Return(run, nil).Once()
		m.storage.On("ListActive", mock.Anything).Return(nil, assert.AnError).Once()
		m.storage.On("FinishRun", mock.Anything, wantRun).Return(nil).Once()

		_, err := tr.RefreshAll(context.TODO())

		require.ErrorContains(t, err, "can't list active alerts", "should return error about failed listing")
		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
	})

	t.Run("finish run error", func(t *testing.T) {
		run := &models.Run{ID: runID, CreatedAt: createdAt}
		wantRun := &models.Run{
			ID:              runID,
			CreatedAt:       createdAt,
			FinishedAt:      &now,
			IsSuccess:       lo.ToPtr(true),
			RefreshedAlerts: lo.ToPtr(int32(0)),
			TriggeredAlerts: lo.ToPtr(int32(0)),
			FailedAlerts:    lo.ToPtr(int32(0)),
		}

		tr, m := newTracker(t)

		m.storage.On("StartRun", mock.Anything).Return(run, nil).Once()
		m.storage.On("ListActive", mock.Anything).Return([]models.SmartAlert{}, nil).Once()
		m.storage.On("FinishRun", mock.Anything, wantRun).Return(assert.AnError).Once()

		_, err := tr.RefreshAll(context.TODO())

		require.ErrorContains(t, err, "can't finish refreshing", "should return error about failed run finishing")
		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
	})
}

func TestUnitRefreshAllCanceled(t *testing.T) {
	alert := watched("galaxy s24", 300000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run := &models.Run{ID: runID, CreatedAt: createdAt}
	wantRun := &models.Run{
		ID:              runID,
		CreatedAt:       createdAt,
		FinishedAt:      &now,
		IsSuccess:       lo.ToPtr(false),
		StatusMessage:   lo.ToPtr("refreshing interrupted: context canceled"),
		RefreshedAlerts: lo.ToPtr(int32(0)),
		TriggeredAlerts: lo.ToPtr(int32(0)),
		FailedAlerts:    lo.ToPtr(int32(1)),
	}

	tr, m := newTracker(t)

	m.storage.On("StartRun", mock.Anything).Return(run, nil).Once()
	m.storage.On("ListActive", mock.Anything).Return([]models.SmartAlert{alert}, nil).Once()
	m.storage.On("FinishRun", mock.Anything, wantRun).Return(nil).Once()

	_, err := tr.RefreshAll(ctx)

	require.ErrorIs(t, err, context.Canceled, "should report interrupted refreshing")
}

func TestUnitResetAlert(t *testing.T) {
	alert := watched("galaxy s24", 300000)
	alert.IsTriggered = true
	alert.IsActive = false

	tr, m := newTracker(t)

	m.storage.On("Get", mock.Anything, alert.ID).Return(alert, nil).Once()
	m.storage.On("Upsert", mock.Anything, mock.MatchedBy(func(a models.SmartAlert) bool {
		return a.ID == alert.ID && a.IsActive && !a.IsTriggered
	})).Return(nil).Once()

	reset, err := tr.ResetAlert(context.TODO(), userID, alert.ID)

	require.NoError(t, err, "shouldn't return any error")
	assert.True(t, reset.IsActive, "should activate alert")
	assert.False(t, reset.IsTriggered, "should rearm alert")
	assert.Equal(t, alert.TrackedStores, reset.TrackedStores, "shouldn't touch snapshots")
}

func TestUnitResetAlertError(t *testing.T) {
	alert := watched("galaxy s24", 300000)

	t.Run("alert of other user", func(t *testing.T) {
		tr, m := newTracker(t)

		m.storage.On("Get", mock.Anything, alert.ID).Return(alert, nil).Once()

		_, err := tr.ResetAlert(context.TODO(), "user-2", alert.ID)

		require.ErrorIs(t, err, platform.ErrAlertNotFound, "should hide alerts of other users")
	})

	t.Run("storage error", func(t *testing.T) {
		tr, m := newTracker(t)

		m.storage.On("Get", mock.Anything, alert.ID).Return(alert, nil).Once()
		m.storage.On("Upsert", mock.Anything, withID(alert.ID)).Return(assert.AnError).Once()

		_, err := tr.ResetAlert(context.TODO(), userID, alert.ID)

		require.ErrorContains(t, err, "can't save reset alert", "should return error about failed saving")
		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
	})
}

func TestUnitDeleteAlert(t *testing.T) {
	tests := map[string]struct {
		storageErr error
		wantErr    error
	}{
		"deleted":   {},
		"not found": {storageErr: platform.ErrAlertNotFound, wantErr: platform.ErrAlertNotFound},
		"failed":    {storageErr: assert.AnError, wantErr: assert.AnError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tr, m := newTracker(t)

			m.storage.On("Delete", mock.Anything, userID, alertID).Return(tt.storageErr).Once()

			err := tr.DeleteAlert(context.TODO(), userID, alertID)

			if tt.wantErr == nil {
				require.NoError(t, err, "shouldn't return any error")
				return
			}
			require.ErrorIs(t, err, tt.wantErr, "should keep storage error")
		})
	}
}

func TestUnitListAlerts(t *testing.T) {
	want := []models.SmartAlert{watched("galaxy s24", 300000), watched("pixel 8", 200000)}

	tr, m := newTracker(t)

	m.storage.On("ListByOwner", mock.Anything, userID).Return(want, nil).Once()

	got, err := tr.ListAlerts(context.TODO(), userID)

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, want, got, "should return alerts of user")
}
