package testdata

import (
	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/samber/lo"
)

// Listings are listings decoded from catalog.json.
var Listings = []models.Listing{
	{
		Name:          "Samsung Galaxy S24",
		Price:         299999,
		OriginalPrice: lo.ToPtr(int64(345000)),
		URL:           "//www.daraz.pk/products/galaxy-s24-i100.html",
		ImageURL:      "https://static.daraz.pk/p/s24.jpg",
		Rating:        4.6,
		ReviewsCount:  128,
		InStock:       true,
	},
	{
		Name:         "Samsung Galaxy S24 Ultra",
		Price:        410000,
		URL:          "/products/galaxy-s24-ultra-i200.html",
		ImageURL:     "https://static.daraz.pk/p/s24u.jpg",
		Rating:       4.9,
		ReviewsCount: 12,
		InStock:      false,
	},
	{
		Name:    "Samsung Galaxy S24 Case",
		Price:   1299,
		URL:     "https://www.daraz.pk/products/case-i300.html",
		InStock: true,
	},
}
