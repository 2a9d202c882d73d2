package alerts

import (
	"time"

	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/MichalMitros/price-tracker/internal/price"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() time.Time
}

// Option is custom configuration of Factory.
type Option func(f *Factory)

// Factory builds new smart alerts and refreshes existing ones against candidate pool.
type Factory struct {
	finder          *Finder
	clock           Clock
	newID           func() string
	maxAlternatives int
}

// NewFactory returns new Factory.
func NewFactory(finder *Finder, ops ...Option) *Factory {
	f := &Factory{
		finder:          finder,
		clock:           systemClock{},
		newID:           uuid.NewString,
		maxAlternatives: DefaultMaxAlternatives,
	}

	for _, op := range ops {
		op(f)
	}

	return f
}

// Create returns new active smart alert of userID tracking product across stores found in pool.
// For every_change alerts target price is the current price. For other types missing or zero
// targetPrice falls back to the current price.
func (f *Factory) Create(
	userID string,
	product models.Product,
	alertType models.AlertType,
	targetPrice *int64,
	pool []models.Product,
) models.SmartAlert {
	now := f.clock.Now()
	currentPrice := price.Parse(product.Price)

	target := currentPrice
	if alertType != models.AlertTypeEveryChange && targetPrice != nil && *targetPrice != 0 {
		target = *targetPrice
	}

	snapshots := BuildSnapshots(product.Name, pool, currentPrice, now)
	if len(snapshots) == 0 {
		snapshots = []models.StoreSnapshot{
			newSnapshot(storeOrUnknown(product.Store), currentPrice, product.URL, true, currentPrice, now),
		}
	}

	alert := models.SmartAlert{
		ID:            f.newID(),
		UserID:        userID,
		ProductID:     product.ID,
		ProductName:   product.Name,
		ProductImage:  product.ImageURL,
		ProductStore:  product.Store,
		ProductURL:    product.URL,
		ProductRating: product.Rating,
		Category:      product.Category,
		OriginalPrice: currentPrice,
		TargetPrice:   target,
		AlertType:     alertType,
		TrackedStores: snapshots,
		Alternatives:  f.finder.FindAlternatives(product, pool, f.maxAlternatives),
		IsActive:      true,
		IsTriggered:   false,
		CreatedAt:     now,
		LastCheckedAt: now,
	}
	setBest(&alert)

	return alert
}

// Refresh returns alert with snapshots, best price and alternatives recomputed against pool.
// Identity, owner, prices set by user, alert type, creation time and state flags are preserved.
// When pool has no listing of tracked product previous snapshots are kept with recomputed price changes.
func (f *Factory) Refresh(alert models.SmartAlert, pool []models.Product) models.SmartAlert {
	now := f.clock.Now()

	snapshots := BuildSnapshots(alert.ProductName, pool, alert.OriginalPrice, now)
	if len(snapshots) == 0 {
		snapshots = f.previousSnapshots(alert, now)
	}

	refreshed := alert
	refreshed.TrackedStores = snapshots
	refreshed.LastCheckedAt = now
	setBest(&refreshed)

	tracked := models.Product{
		ID:       alert.ProductID,
		Name:     alert.ProductName,
		ImageURL: alert.ProductImage,
		URL:      alert.ProductURL,
		Price:    price.Format(refreshed.BestCurrentPrice),
		Store:    alert.ProductStore,
		Category: alert.Category,
		Rating:   alert.ProductRating,
	}
	refreshed.Alternatives = f.finder.FindAlternatives(tracked, pool, f.maxAlternatives)

	return refreshed
}

func (f *Factory) previousSnapshots(alert models.SmartAlert, now time.Time) []models.StoreSnapshot {
	if len(alert.TrackedStores) == 0 {
		return []models.StoreSnapshot{
			newSnapshot(
				storeOrUnknown(alert.ProductStore),
				alert.OriginalPrice,
				alert.ProductURL,
				true,
				alert.OriginalPrice,
				now,
			),
		}
	}

	snapshots := lo.Map(alert.TrackedStores, func(s models.StoreSnapshot, _ int) models.StoreSnapshot {
		withPriceChange(&s, alert.OriginalPrice)
		return s
	})

	return snapshots
}

// setBest points best price and store to the first cheapest snapshot.
func setBest(alert *models.SmartAlert) {
	if len(alert.TrackedStores) == 0 {
		return
	}

	best := alert.TrackedStores[0]
	for _, s := range alert.TrackedStores[1:] {
		if s.Price < best.Price {
			best = s
		}
	}

	alert.BestCurrentPrice = best.Price
	alert.BestCurrentStore = best.Store
}

func storeOrUnknown(store string) string {
	if store == "" {
		return unknownStore
	}
	return store
}

// WithClock sets Factory's custom Clock.
func WithClock(c Clock) Option {
	return func(f *Factory) {
		f.clock = c
	}
}

// WithIDGenerator sets Factory's custom alert ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(f *Factory) {
		f.newID = newID
	}
}

// WithMaxAlternatives sets maximal number of alternatives attached to alert.
func WithMaxAlternatives(n int) Option {
	return func(f *Factory) {
		f.maxAlternatives = n
	}
}
