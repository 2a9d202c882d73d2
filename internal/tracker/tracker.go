package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/MichalMitros/price-tracker/internal/alerts"
	"github.com/MichalMitros/price-tracker/internal/platform"
	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name Storage --filename storage.go
//go:generate mockery --name Searcher --filename searcher.go
//go:generate mockery --name Notifier --filename notifier.go

// DefaultParallelLimit is number of alerts refreshed at once.
const DefaultParallelLimit = 4

// Storage is smart alerts and refresh runs storage.
type Storage interface {
	// StartRun creates new refresh run if there is no run in progress.
	StartRun(ctx context.Context) (run *models.Run, err error)
	// FinishRun finishes provided run and updates its statistics.
	FinishRun(ctx context.Context, run *models.Run) error
	// ListByOwner returns alerts of user.
	ListByOwner(ctx context.Context, userID string) ([]models.SmartAlert, error)
	// ListActive returns alerts which should be refreshed.
	ListActive(ctx context.Context) ([]models.SmartAlert, error)
	// Get returns alert with id.
	Get(ctx context.Context, id string) (models.SmartAlert, error)
	// Upsert creates or replaces alert.
	Upsert(ctx context.Context, alert models.SmartAlert) error
	// Delete deletes alert of user.
	Delete(ctx context.Context, userID, id string) error
}

// Searcher searches candidate products in all stores.
type Searcher interface {
	Candidates(ctx context.Context, keyword string) ([]models.Product, error)
}

// Notifier notifies about triggered alerts.
type Notifier interface {
	AlertTriggered(ctx context.Context, alert models.SmartAlert) error
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
}

// Option is custom configuration of Tracker.
type Option func(t *Tracker)

// Tracker creates smart alerts and keeps them up to date with store prices.
type Tracker struct {
	storage       Storage
	searcher      Searcher
	notifier      Notifier
	factory       *alerts.Factory
	logger        *zerolog.Logger
	clock         Clock
	parallelLimit int
}

// NewTracker returns new Tracker.
func NewTracker(
	storage Storage,
	searcher Searcher,
	notifier Notifier,
	factory *alerts.Factory,
	logger *zerolog.Logger,
	ops ...Option,
) *Tracker {
	t := &Tracker{
		storage:       storage,
		searcher:      searcher,
		notifier:      notifier,
		factory:       factory,
		logger:        logger,
		clock:         systemClock{},
		parallelLimit: DefaultParallelLimit,
	}

	for _, op := range ops {
		op(t)
	}

	return t
}

// CreateAlert creates and stores new smart alert of userID tracking product in every store.
func (t *Tracker) CreateAlert(
	ctx context.Context,
	userID string,
	product models.Product,
	alertType models.AlertType,
	targetPrice *int64,
) (models.SmartAlert, error) {
	pool, err := t.pool(ctx, product.Name, product.Category)
	if err != nil {
		return models.SmartAlert{}, fmt.Errorf("can't create alert: %w", err)
	}

	alert := t.factory.Create(userID, product, alertType, targetPrice, pool)

	if err := t.storage.Upsert(ctx, alert); err != nil {
		return models.SmartAlert{}, fmt.Errorf("can't save created alert: %w", err)
	}

	return alert, nil
}

// ListAlerts returns alerts of userID.
func (t *Tracker) ListAlerts(ctx context.Context, userID string) ([]models.SmartAlert, error) {
	return t.storage.ListByOwner(ctx, userID)
}

// DeleteAlert deletes alert of userID.
func (t *Tracker) DeleteAlert(ctx context.Context, userID, id string) error {
	if err := t.storage.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("can't delete alert: %w", err)
	}
	return nil
}

// ResetAlert rearms triggered or deactivated alert of userID, so it can fire again.
func (t *Tracker) ResetAlert(ctx context.Context, userID, id string) (models.SmartAlert, error) {
	alert, err := t.owned(ctx, userID, id)
	if err != nil {
		return models.SmartAlert{}, fmt.Errorf("can't reset alert: %w", err)
	}

	alert.IsActive = true
	alert.IsTriggered = false

	if err := t.storage.Upsert(ctx, alert); err != nil {
		return models.SmartAlert{}, fmt.Errorf("can't save reset alert: %w", err)
	}

	return alert, nil
}

// RefreshAlert refreshes single alert of userID.
func (t *Tracker) RefreshAlert(ctx context.Context, userID, id string) (models.SmartAlert, error) {
	alert, err := t.owned(ctx, userID, id)
	if err != nil {
		return models.SmartAlert{}, fmt.Errorf("can't refresh alert: %w", err)
	}

	refreshed, _, err := t.refresh(ctx, alert)
	if err != nil {
		return models.SmartAlert{}, fmt.Errorf("can't refresh alert: %w", err)
	}

	return refreshed, nil
}

// RefreshAll refreshes every active alert within single run.
// Alerts are refreshed independently, failure of one alert is counted in run statistics
// and doesn't stop refreshing others.
func (t *Tracker) RefreshAll(ctx context.Context) (*models.Run, error) {
	run, err := t.storage.StartRun(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't start refreshing: %w", err)
	}

	active, err := t.storage.ListActive(ctx)
	if err != nil {
		return run, t.finishRun(ctx, run, fmt.Errorf("can't list active alerts: %w", err))
	}

	refreshed, triggered, failed := t.refreshAlerts(ctx, active)

	run.RefreshedAlerts = &refreshed
	run.TriggeredAlerts = &triggered
	run.FailedAlerts = &failed

	if err := ctx.Err(); err != nil {
		return run, t.finishRun(context.WithoutCancel(ctx), run, fmt.Errorf("refreshing interrupted: %w", err))
	}

	if failed > 0 {
		return run, t.finishRun(ctx, run, fmt.Errorf("%d of %d alerts failed", failed, len(active)))
	}

	return run, t.finishRun(ctx, run, nil)
}

func (t *Tracker) refreshAlerts(ctx context.Context, active []models.SmartAlert) (int32, int32, int32) {
	refreshedAlerts := int32(0)
	triggeredAlerts := int32(0)
	failedAlerts := int32(0)

	var errGroup errgroup.Group
	errGroup.SetLimit(t.parallelLimit)

	for _, alert := range active {
		errGroup.Go(func() error {
			if ctx.Err() != nil {
				_ = atomic.AddInt32(&failedAlerts, 1)
				return nil
			}

			_, triggered, err := t.refresh(ctx, alert)
			if err != nil {
				_ = atomic.AddInt32(&failedAlerts, 1)
				t.logger.Warn().
					Err(err).
					Str("alertId", alert.ID).
					Msg("can't refresh alert")
				return nil
			}

			_ = atomic.AddInt32(&refreshedAlerts, 1)
			if triggered {
				_ = atomic.AddInt32(&triggeredAlerts, 1)
			}

			return nil
		})
	}

	_ = errGroup.Wait()

	return refreshedAlerts, triggeredAlerts, failedAlerts
}

// refresh refreshes alert against current candidate pool, marks it as triggered when it fires
// and saves it. Triggered alerts are announced before being saved.
func (t *Tracker) refresh(ctx context.Context, alert models.SmartAlert) (models.SmartAlert, bool, error) {
	pool, err := t.pool(ctx, alert.ProductName, alert.Category)
	if err != nil {
		return models.SmartAlert{}, false, err
	}

	refreshed := t.factory.Refresh(alert, pool)

	triggered := alerts.ShouldTrigger(refreshed)
	if triggered {
		refreshed.IsTriggered = true

		if err := t.notifier.AlertTriggered(ctx, refreshed); err != nil {
			return models.SmartAlert{}, false, fmt.Errorf("can't notify about triggered alert %s: %w", alert.ID, err)
		}

		t.logger.Info().
			Str("alertId", refreshed.ID).
			Str("userId", refreshed.UserID).
			Int64("bestCurrentPrice", refreshed.BestCurrentPrice).
			Str("bestCurrentStore", refreshed.BestCurrentStore).
			Msg("alert triggered")
	}

	if err := t.storage.Upsert(ctx, refreshed); err != nil {
		return models.SmartAlert{}, false, fmt.Errorf("can't save refreshed alert %s: %w", alert.ID, err)
	}

	return refreshed, triggered, nil
}

// pool returns candidate products found by category and by product name.
// Category is searched first, so products found by both searches keep the category label.
func (t *Tracker) pool(ctx context.Context, productName, category string) ([]models.Product, error) {
	keywords := lo.Uniq(lo.Filter(
		[]string{normalize(category), normalize(productName)},
		func(k string, _ int) bool { return k != "" },
	))

	pool := make([]models.Product, 0)
	for _, keyword := range keywords {
		products, err := t.searcher.Candidates(ctx, keyword)
		if err != nil {
			return nil, fmt.Errorf("can't search candidates for %q: %w", keyword, err)
		}
		pool = append(pool, products...)
	}

	return lo.UniqBy(pool, func(p models.Product) string { return p.ID }), nil
}

// owned returns alert with id if it belongs to userID.
func (t *Tracker) owned(ctx context.Context, userID, id string) (models.SmartAlert, error) {
	alert, err := t.storage.Get(ctx, id)
	if err != nil {
		return models.SmartAlert{}, err
	}

	if alert.UserID != userID {
		return models.SmartAlert{}, fmt.Errorf("%w: %s", platform.ErrAlertNotFound, id)
	}

	return alert, nil
}

func (t *Tracker) finishRun(ctx context.Context, run *models.Run, status error) error {
	if status != nil {
		run.StatusMessage = lo.ToPtr(status.Error())
	}
	run.IsSuccess = lo.ToPtr(status == nil)
	run.FinishedAt = t.clock.Now()

	err := t.storage.FinishRun(ctx, run)
	if err != nil && status == nil {
		return fmt.Errorf("can't finish refreshing: %w", err)
	}

	if err != nil && status != nil {
		return fmt.Errorf("can't finish failed refreshing: %w (fail reason: %w)", err, status)
	}

	return status
}

func normalize(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// IsNotFound reports whether err means that alert doesn't exist.
func IsNotFound(err error) bool {
	return errors.Is(err, platform.ErrAlertNotFound)
}

// WithClock sets Tracker's custom Clock.
func WithClock(c Clock) Option {
	return func(t *Tracker) {
		t.clock = c
	}
}

// WithParallelLimit sets number of alerts refreshed at once.
func WithParallelLimit(limit int) Option {
	return func(t *Tracker) {
		t.parallelLimit = limit
	}
}
