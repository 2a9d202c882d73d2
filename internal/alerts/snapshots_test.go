package alerts_test

import (
	"testing"
	"time"

	"github.com/MichalMitros/price-tracker/internal/alerts"
	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/MichalMitros/price-tracker/internal/platform/models/modelstesting"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2022, time.April, 1, 1, 1, 1, 0, time.UTC)

func product(name, store, p string, ops ...func(p *models.Product)) models.Product {
	return modelstesting.FakeProduct(append([]func(*models.Product){func(pr *models.Product) {
		pr.Name = name
		pr.Store = store
		pr.Price = p
	}}, ops...)...)
}

func TestUnitBuildSnapshots(t *testing.T) {
	pool := []models.Product{
		product("Galaxy S24", "Telemart", "Rs. 310,000"),
		product("Galaxy S24 Ultra", "Daraz", "Rs. 400,000"),
		product("galaxy s24", "PriceOye", "Rs. 290,000"),
		product("  GALAXY S24 ", "", "Rs. 300,000"),
		product("Pixel 8", "Mega", "Rs. 200,000"),
	}

	snapshots := alerts.BuildSnapshots("Galaxy S24", pool, 300000, now)

	require.Len(t, snapshots, 3, "should match names case-insensitively")
	assert.Equal(t,
		[]string{"PriceOye", "Unknown", "Telemart"},
		lo.Map(snapshots, func(s models.StoreSnapshot, _ int) string { return s.Store }),
		"should sort snapshots by price and name missing store Unknown",
	)
	assert.Equal(t,
		[]int64{290000, 300000, 310000},
		lo.Map(snapshots, func(s models.StoreSnapshot, _ int) int64 { return s.Price }),
		"should parse prices",
	)

	cheapest := snapshots[0]
	require.NotNil(t, cheapest.PriceChange, "should set price change")
	require.NotNil(t, cheapest.PriceChangePercent, "should set price change percent")
	assert.Equal(t, int64(-10000), *cheapest.PriceChange, "should compute change relative to original price")
	assert.InDelta(t, -3.3333, *cheapest.PriceChangePercent, 1e-3, "should compute percent change")
	assert.Equal(t, now, cheapest.LastUpdated, "should set last update time")
	assert.Equal(t, pool[2].URL, cheapest.URL, "should keep listing url")
}

func TestUnitBuildSnapshotsZeroOriginalPrice(t *testing.T) {
	snapshots := alerts.BuildSnapshots("Pixel 8", []models.Product{
		product("Pixel 8", "Mega", "Rs. 200,000"),
	}, 0, now)

	require.Len(t, snapshots, 1, "should return matching snapshot")
	assert.Equal(t, int64(200000), *snapshots[0].PriceChange, "should compute change from zero")
	assert.Zero(t, *snapshots[0].PriceChangePercent, "should use zero percent for zero original price")
}

func TestUnitBuildSnapshotsNoMatches(t *testing.T) {
	tests := map[string][]models.Product{
		"nil pool":   nil,
		"empty pool": {},
		"no matching names": {
			product("Pixel 8", "Mega", "Rs. 200,000"),
			product("Galaxy S24 Ultra", "Daraz", "Rs. 400,000"),
		},
	}

	for name, pool := range tests {
		t.Run(name, func(t *testing.T) {
			snapshots := alerts.BuildSnapshots("Galaxy S24", pool, 300000, now)

			assert.NotNil(t, snapshots, "should return empty slice instead of nil")
			assert.Empty(t, snapshots, "shouldn't return any snapshot")
		})
	}
}
