package alerts

import (
	"sort"
	"strings"
	"time"

	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/MichalMitros/price-tracker/internal/price"
)

const unknownStore = "Unknown"

// BuildSnapshots returns price snapshots of pool products named exactly like productName (case-insensitive),
// cheapest first. Price changes are relative to originalPrice.
// It returns empty slice when nothing matches.
func BuildSnapshots(productName string, pool []models.Product, originalPrice int64, now time.Time) []models.StoreSnapshot {
	snapshots := make([]models.StoreSnapshot, 0)

	for ix := range pool {
		if !sameName(pool[ix].Name, productName) {
			continue
		}

		snapshots = append(snapshots, newSnapshot(
			storeOrUnknown(pool[ix].Store),
			price.Parse(pool[ix].Price),
			pool[ix].URL,
			pool[ix].InStock,
			originalPrice,
			now,
		))
	}

	sort.SliceStable(snapshots, func(a, b int) bool {
		return snapshots[a].Price < snapshots[b].Price
	})

	return snapshots
}

func newSnapshot(store string, p int64, url string, inStock bool, originalPrice int64, now time.Time) models.StoreSnapshot {
	snapshot := models.StoreSnapshot{
		Store:       store,
		Price:       p,
		URL:         url,
		InStock:     inStock,
		LastUpdated: now,
	}
	withPriceChange(&snapshot, originalPrice)

	return snapshot
}

func withPriceChange(s *models.StoreSnapshot, originalPrice int64) {
	change := s.Price - originalPrice
	percent := 0.0
	if originalPrice != 0 {
		percent = float64(change) / float64(originalPrice) * 100
	}

	s.PriceChange = &change
	s.PriceChangePercent = &percent
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
