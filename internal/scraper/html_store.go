package scraper

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/MichalMitros/price-tracker/internal/fetcher"
	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/MichalMitros/price-tracker/internal/price"
	"github.com/PuerkitoBio/goquery"
)

var (
	ratingNumberRe = regexp.MustCompile(`\d+(\.\d+)?`)
	ratingWidthRe  = regexp.MustCompile(`(\d+(\.\d+)?)%`)
)

// Selectors are css selectors of listing parts on store search page.
// All selectors except Card are relative to the card.
type Selectors struct {
	Card          string
	Name          string
	Price         string
	OriginalPrice string
	Link          string
	Image         string
	Rating        string
	// RatingFromWidth reads rating from style width percentage (100% is 5 stars) instead of text.
	RatingFromWidth bool
}

// HTMLStore searches store by scraping its search results page.
type HTMLStore struct {
	name      string
	baseURL   *url.URL
	searchURL string
	escape    func(string) string
	selectors Selectors
	fetcher   Fetcher
}

// NewHTMLStore returns new HTMLStore.
// searchURL must contain "{keyword}" placeholder, keyword is escaped with escape.
func NewHTMLStore(
	name, baseURL, searchURL string,
	escape func(string) string,
	selectors Selectors,
	fetcher Fetcher,
) (*HTMLStore, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("can't parse %s base url: %w", name, err)
	}

	return &HTMLStore{
		name:      name,
		baseURL:   base,
		searchURL: searchURL,
		escape:    escape,
		selectors: selectors,
		fetcher:   fetcher,
	}, nil
}

// Name returns store name.
func (s *HTMLStore) Name() string {
	return s.name
}

// Search fetches search results page of keyword and scrapes its listing cards.
// Cards without name or price are skipped.
func (s *HTMLStore) Search(ctx context.Context, keyword string) ([]models.Listing, error) {
	page, err := s.fetcher.FetchFile(ctx, searchURL(s.searchURL, keyword, s.escape), fetcher.AcceptHTML)
	if err != nil {
		return nil, fmt.Errorf("can't fetch %s search page: %w", s.name, err)
	}
	defer page.Close()

	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("can't parse %s search page: %w", s.name, err)
	}

	listings := make([]models.Listing, 0)
	doc.Find(s.selectors.Card).Each(func(_ int, card *goquery.Selection) {
		if listing, ok := s.scrapeCard(card); ok {
			listings = append(listings, listing)
		}
	})

	return listings, nil
}

func (s *HTMLStore) scrapeCard(card *goquery.Selection) (models.Listing, bool) {
	name := text(card, s.selectors.Name)
	priceText := text(card, s.selectors.Price)
	if name == "" || priceText == "" {
		return models.Listing{}, false
	}

	listing := models.Listing{
		Name:     name,
		Price:    price.ParseDecimal(priceText),
		URL:      resolveURL(s.baseURL, attr(card, s.selectors.Link, "href")),
		ImageURL: resolveURL(s.baseURL, attr(card, s.selectors.Image, "data-src", "data-original", "src")),
		Rating:   s.rating(card),
		Store:    s.name,
		InStock:  true,
	}

	if s.selectors.OriginalPrice != "" {
		original := price.ParseDecimal(text(card, s.selectors.OriginalPrice))
		if original > listing.Price {
			listing.OriginalPrice = &original
		}
	}

	return listing, true
}

func (s *HTMLStore) rating(card *goquery.Selection) float64 {
	if s.selectors.Rating == "" {
		return 0
	}

	el := card.Find(s.selectors.Rating).First()
	if el.Length() == 0 {
		return 0
	}

	if s.selectors.RatingFromWidth {
		match := ratingWidthRe.FindStringSubmatch(el.AttrOr("style", ""))
		if match == nil {
			return 0
		}
		width, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return 0
		}
		return math.Round(width/20*10) / 10
	}

	rating, err := strconv.ParseFloat(ratingNumberRe.FindString(el.Text()), 64)
	if err != nil {
		return 0
	}

	return math.Min(rating, 5)
}

// text returns trimmed text of first element matching selector.
func text(card *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(card.Find(selector).First().Text())
}

// attr returns first non-empty attribute of first element matching selector.
func attr(card *goquery.Selection, selector string, names ...string) string {
	if selector == "" {
		return ""
	}

	el := card.Find(selector).First()
	for _, name := range names {
		if value := strings.TrimSpace(el.AttrOr(name, "")); value != "" {
			return value
		}
	}

	return ""
}
