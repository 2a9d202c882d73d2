package models_test

import (
	"testing"
	"time"

	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/MichalMitros/price-tracker/internal/platform/models/modelstesting"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitListingProduct(t *testing.T) {
	listing := modelstesting.FakeListing(func(l *models.Listing) {
		l.Price = 345000
		l.OriginalPrice = lo.ToPtr(int64(400000))
		l.Category = lo.ToPtr("Phones")
	})

	product := listing.Product()

	assert.Equal(t, "Rs. 345,000", product.Price, "should format price")
	assert.Equal(t, "Rs. 400,000", product.OriginalPrice, "should format original price")
	assert.Equal(t, "Phones", product.Category, "should copy category")
	assert.Equal(t, listing.Product().ID, product.ID, "should derive the same id for the same listing")

	other := listing
	other.Store = listing.Store + " Outlet"
	assert.NotEqual(t, product.ID, other.Product().ID, "should derive different id for different store")

	assert.Equal(t, listing, product.Listing(), "should convert back to the same listing")
}

func TestUnitProductListingWithoutOptionals(t *testing.T) {
	product := modelstesting.FakeProduct(func(p *models.Product) {
		p.Price = "garbage"
		p.OriginalPrice = ""
		p.Category = ""
	})

	listing := product.Listing()

	assert.Zero(t, listing.Price, "should parse unparseable price as zero")
	assert.Nil(t, listing.OriginalPrice, "shouldn't set original price")
	assert.Nil(t, listing.Category, "shouldn't set category")
}

func TestUnitAlertToSmartAlert(t *testing.T) {
	createdAt := time.Date(2022, time.April, 1, 1, 1, 1, 0, time.UTC)
	alert := models.Alert{
		ID:           "alert-1",
		UserID:       "user-1",
		ProductID:    "product-1",
		ProductName:  "Galaxy S24",
		ProductImage: "https://example.com/s24.png",
		CurrentPrice: 300000,
		TargetPrice:  250000,
		Store:        "Daraz",
		IsActive:     true,
		CreatedAt:    createdAt,
	}

	smart := alert.ToSmartAlert()

	assert.Equal(t, models.AlertTypeTargetPrice, smart.AlertType, "should convert into target price alert")
	assert.Equal(t, int64(300000), smart.OriginalPrice, "should use current price as original price")
	assert.Equal(t, int64(250000), smart.TargetPrice, "should keep target price")
	require.Len(t, smart.TrackedStores, 1, "should track exactly one store")
	assert.Equal(t, "Daraz", smart.TrackedStores[0].Store, "should track alert's store")
	assert.Equal(t, int64(300000), smart.BestCurrentPrice, "best price should be the single snapshot price")
	assert.Equal(t, "Daraz", smart.BestCurrentStore, "best store should be the single snapshot store")
	assert.NotNil(t, smart.Alternatives, "should have empty alternatives")
	assert.True(t, smart.IsActive, "should keep active flag")
	assert.False(t, smart.IsTriggered, "shouldn't be triggered")
	assert.Equal(t, createdAt, smart.CreatedAt, "should keep creation time")
}
