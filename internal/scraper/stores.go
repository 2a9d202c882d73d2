package scraper

import (
	"fmt"
	"net/url"
	"strings"
)

// Definition describes how to search single store.
// Stores with JSON set are searched through catalog api, others by scraping html with Selectors.
type Definition struct {
	Name      string
	BaseURL   string
	SearchURL string
	JSON      bool
	Escape    func(string) string
	Selectors Selectors
}

// Rebase returns definition with base url replaced, search url included.
func (d Definition) Rebase(baseURL string) Definition {
	d.SearchURL = strings.Replace(d.SearchURL, d.BaseURL, baseURL, 1)
	d.BaseURL = baseURL
	return d
}

// DefaultDefinitions returns definitions of supported stores.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Name:      "Daraz",
			BaseURL:   "https://www.daraz.pk",
			SearchURL: "https://www.daraz.pk/catalog/?ajax=true&q={keyword}",
			JSON:      true,
		},
		{
			Name:      "PriceOye",
			BaseURL:   "https://priceoye.pk",
			SearchURL: "https://priceoye.pk/search?q={keyword}",
			Selectors: Selectors{
				Card:   ".product-card, .productBox, .product-item, .p-item",
				Name:   ".product-title, .p-title, h3, h4, .name",
				Price:  ".product-price, .p-price, .price",
				Link:   "a",
				Image:  "img",
				Rating: ".rating, .stars",
			},
		},
		{
			Name:      "Shophive",
			BaseURL:   "https://www.shophive.com",
			SearchURL: "https://www.shophive.com/catalogsearch/result/?q={keyword}",
			Selectors: Selectors{
				Card:            ".product-item, .item.product, .product-card",
				Name:            ".product-item-link, .product-name, .product-title",
				Price:           ".special-price .price, [data-price-type=\"finalPrice\"], .price",
				OriginalPrice:   ".old-price .price, [data-price-type=\"oldPrice\"]",
				Link:            "a.product-item-link, a",
				Image:           "img.product-image-photo, img",
				Rating:          ".rating-result",
				RatingFromWidth: true,
			},
		},
		{
			Name:      "Mega",
			BaseURL:   "https://www.mega.pk",
			SearchURL: "https://www.mega.pk/search/{keyword}",
			Escape:    url.PathEscape,
			Selectors: Selectors{
				Card:  ".product-card, .product-item, .pro-box, .product",
				Name:  ".product-title, .pro-title, h3, h4, .name",
				Price: ".product-price, .pro-price, .price",
				Link:  "a",
				Image: "img",
			},
		},
		{
			Name:      "Telemart",
			BaseURL:   "https://www.telemart.pk",
			SearchURL: "https://www.telemart.pk/search?q={keyword}",
			Selectors: Selectors{
				Card:          ".product-card, .product-item, .product-box",
				Name:          ".product-title, .product-name, h3, h4",
				Price:         ".product-price, .current-price, .price",
				OriginalPrice: ".old-price, .original-price, .was-price",
				Link:          "a",
				Image:         "img",
				Rating:        ".rating, .stars",
			},
		},
	}
}

// NewStores returns stores built from definitions.
func NewStores(definitions []Definition, fetcher Fetcher, decoder Decoder) ([]Store, error) {
	stores := make([]Store, 0, len(definitions))

	for _, def := range definitions {
		var (
			store Store
			err   error
		)

		if def.JSON {
			store, err = NewJSONStore(def.Name, def.BaseURL, def.SearchURL, fetcher, decoder)
		} else {
			store, err = NewHTMLStore(def.Name, def.BaseURL, def.SearchURL, def.Escape, def.Selectors, fetcher)
		}

		if err != nil {
			return nil, fmt.Errorf("can't create %s store: %w", def.Name, err)
		}

		stores = append(stores, store)
	}

	return stores, nil
}

// DefaultStores returns all supported stores.
func DefaultStores(fetcher Fetcher, decoder Decoder) ([]Store, error) {
	return NewStores(DefaultDefinitions(), fetcher, decoder)
}
