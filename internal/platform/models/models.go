package models

import (
	"time"

	"github.com/MichalMitros/price-tracker/internal/price"
	"github.com/google/uuid"
)

// AlertType decides when SmartAlert fires.
type AlertType string

const (
	// AlertTypeEveryChange fires on any best price deviation from the original price.
	AlertTypeEveryChange AlertType = "every_change"
	// AlertTypeTargetPrice fires when best price drops to the target price or below.
	AlertTypeTargetPrice AlertType = "target_price"
)

// productNamespace is used for deriving deterministic product IDs from listings.
var productNamespace = uuid.MustParse("6f0b4d3e-5c61-4b7a-9d1c-2f3e8a7b9c10")

// ParsingResult contains listing with decoding error if there is any.
type ParsingResult struct {
	Listing Listing
	Error   error
}

// Listing is single scraped store offer.
type Listing struct {
	Name          string  `json:"name"`
	Price         int64   `json:"price"`
	OriginalPrice *int64  `json:"originalPrice,omitempty"`
	URL           string  `json:"url"`
	ImageURL      string  `json:"imageUrl"`
	Rating        float64 `json:"rating"`
	ReviewsCount  int     `json:"reviewsCount"`
	Store         string  `json:"store"`
	InStock       bool    `json:"inStock"`
	Category      *string `json:"category,omitempty"`
}

// Product returns catalog product built from listing.
// Product ID is derived from store and url, so the same offer always gets the same ID.
func (l Listing) Product() Product {
	product := Product{
		ID:           uuid.NewSHA1(productNamespace, []byte(l.Store+"|"+l.URL)).String(),
		Name:         l.Name,
		ImageURL:     l.ImageURL,
		URL:          l.URL,
		Price:        price.Format(l.Price),
		Store:        l.Store,
		Rating:       l.Rating,
		ReviewsCount: l.ReviewsCount,
		InStock:      l.InStock,
	}

	if l.OriginalPrice != nil {
		product.OriginalPrice = price.Format(*l.OriginalPrice)
	}

	if l.Category != nil {
		product.Category = *l.Category
	}

	return product
}

// Product is catalog product which can be tracked or offered as an alternative.
// Prices are kept as display text.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ImageURL      string  `json:"imageUrl"`
	URL           string  `json:"url"`
	Price         string  `json:"price"`
	OriginalPrice string  `json:"originalPrice,omitempty"`
	Store         string  `json:"store"`
	Category      string  `json:"category,omitempty"`
	Rating        float64 `json:"rating"`
	ReviewsCount  int     `json:"reviewsCount"`
	InStock       bool    `json:"inStock"`
}

// Listing returns ranking view of product with parsed prices.
func (p Product) Listing() Listing {
	listing := Listing{
		Name:         p.Name,
		Price:        price.Parse(p.Price),
		URL:          p.URL,
		ImageURL:     p.ImageURL,
		Rating:       p.Rating,
		ReviewsCount: p.ReviewsCount,
		Store:        p.Store,
		InStock:      p.InStock,
	}

	if p.OriginalPrice != "" {
		original := price.Parse(p.OriginalPrice)
		listing.OriginalPrice = &original
	}

	if p.Category != "" {
		category := p.Category
		listing.Category = &category
	}

	return listing
}

// StoreSnapshot is price observation of tracked product in single store.
type StoreSnapshot struct {
	Store              string    `json:"store"`
	Price              int64     `json:"price"`
	URL                string    `json:"url"`
	InStock            bool      `json:"inStock"`
	LastUpdated        time.Time `json:"lastUpdated"`
	PriceChange        *int64    `json:"priceChange,omitempty"`
	PriceChangePercent *float64  `json:"priceChangePercent,omitempty"`
}

// AlternativeProduct is different product offered instead of the tracked one.
type AlternativeProduct struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage"`
	Price        int64   `json:"price"`
	Store        string  `json:"store"`
	URL          string  `json:"url"`
	Rating       float64 `json:"rating"`
	ReviewsCount int     `json:"reviewsCount"`
	Reason       string  `json:"reason"`
	Score        float64 `json:"score"`
}

// SmartAlert is user's cross-store price alert.
type SmartAlert struct {
	ID               string               `json:"id"`
	UserID           string               `json:"userId"`
	ProductID        string               `json:"productId"`
	ProductName      string               `json:"productName"`
	ProductImage     string               `json:"productImage"`
	ProductStore     string               `json:"productStore"`
	ProductURL       string               `json:"productUrl"`
	ProductRating    float64              `json:"productRating"`
	Category         string               `json:"category"`
	OriginalPrice    int64                `json:"originalPrice"`
	TargetPrice      int64                `json:"targetPrice"`
	AlertType        AlertType            `json:"alertType"`
	TrackedStores    []StoreSnapshot      `json:"trackedStores"`
	BestCurrentPrice int64                `json:"bestCurrentPrice"`
	BestCurrentStore string               `json:"bestCurrentStore"`
	Alternatives     []AlternativeProduct `json:"alternatives"`
	IsActive         bool                 `json:"isActive"`
	IsTriggered      bool                 `json:"isTriggered"`
	CreatedAt        time.Time            `json:"createdAt"`
	LastCheckedAt    time.Time            `json:"lastCheckedAt"`
}

// Alert is single-store price alert kept for records created before SmartAlert.
type Alert struct {
	ID           string
	UserID       string
	ProductID    string
	ProductName  string
	ProductImage string
	CurrentPrice int64
	TargetPrice  int64
	Store        string
	IsActive     bool
	CreatedAt    time.Time
}

// ToSmartAlert converts legacy alert into target price SmartAlert tracking exactly one store.
func (a Alert) ToSmartAlert() SmartAlert {
	return SmartAlert{
		ID:            a.ID,
		UserID:        a.UserID,
		ProductID:     a.ProductID,
		ProductName:   a.ProductName,
		ProductImage:  a.ProductImage,
		ProductStore:  a.Store,
		OriginalPrice: a.CurrentPrice,
		TargetPrice:   a.TargetPrice,
		AlertType:     AlertTypeTargetPrice,
		TrackedStores: []StoreSnapshot{
			{
				Store:       a.Store,
				Price:       a.CurrentPrice,
				InStock:     true,
				LastUpdated: a.CreatedAt,
			},
		},
		BestCurrentPrice: a.CurrentPrice,
		BestCurrentStore: a.Store,
		Alternatives:     []AlternativeProduct{},
		IsActive:         a.IsActive,
		CreatedAt:        a.CreatedAt,
		LastCheckedAt:    a.CreatedAt,
	}
}

// Run is single refresh of all active alerts.
type Run struct {
	ID              int
	CreatedAt       time.Time
	FinishedAt      *time.Time
	IsSuccess       *bool
	StatusMessage   *string
	RefreshedAlerts *int32
	TriggeredAlerts *int32
	FailedAlerts    *int32
}
