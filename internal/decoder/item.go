package decoder

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/MichalMitros/price-tracker/internal/price"
)

// Item is model of listing in catalog search response.
type Item struct {
	Name          string  `json:"name"`
	Price         Amount  `json:"price"`
	OriginalPrice Amount  `json:"originalPrice"`
	ItemURL       string  `json:"itemUrl"`
	ProductURL    string  `json:"productUrl"`
	Image         string  `json:"image"`
	RatingScore   Decimal `json:"ratingScore"`
	Review        Decimal `json:"review"`
	InStock       *bool   `json:"inStock"`
}

// Amount is price which catalogs send either as number or as text.
type Amount int64

// UnmarshalJSON decodes Amount from json number or string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	text, err := scalarText(data)
	if err != nil {
		return fmt.Errorf("can't decode amount: %w", err)
	}

	*a = Amount(price.ParseDecimal(text))

	return nil
}

// Decimal is number which catalogs send either as number or as text.
type Decimal float64

// UnmarshalJSON decodes Decimal from json number or string. Empty text decodes as 0.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	text, err := scalarText(data)
	if err != nil {
		return fmt.Errorf("can't decode decimal: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		*d = 0
		return nil
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("can't decode decimal: %w", err)
	}

	*d = Decimal(value)

	return nil
}

// scalarText returns text of json string or number. Null is returned as empty text.
func scalarText(data []byte) (string, error) {
	if string(data) == "null" {
		return "", nil
	}

	if len(data) > 0 && data[0] == '"' {
		var text string
		err := json.Unmarshal(data, &text)
		return text, err
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return "", err
	}

	return number.String(), nil
}

// URL returns item link, preferring item url over product url.
func (i Item) URL() string {
	if i.ItemURL != "" {
		return i.ItemURL
	}
	return i.ProductURL
}

func (i Item) toListing() models.Listing {
	listing := models.Listing{
		Name:         strings.TrimSpace(i.Name),
		Price:        int64(i.Price),
		URL:          i.URL(),
		ImageURL:     i.Image,
		Rating:       float64(i.RatingScore),
		ReviewsCount: int(i.Review),
		InStock:      i.InStock == nil || *i.InStock,
	}

	if i.OriginalPrice > i.Price {
		original := int64(i.OriginalPrice)
		listing.OriginalPrice = &original
	}

	return listing
}
