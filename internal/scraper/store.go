package scraper

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/MichalMitros/price-tracker/internal/platform/models"
)

//go:generate mockery --name Store --filename store.go
//go:generate mockery --name Fetcher --filename fetcher.go

// Store searches single e-commerce store.
type Store interface {
	// Name returns store name set on every returned listing.
	Name() string
	// Search returns store listings found for keyword.
	Search(ctx context.Context, keyword string) ([]models.Listing, error)
}

// Fetcher fetches store pages.
type Fetcher interface {
	FetchFile(ctx context.Context, url string, accept string) (io.ReadCloser, error)
}

// Decoder decodes catalog json into parsing results.
type Decoder interface {
	Decode(context.Context, io.Reader, chan<- models.ParsingResult) error
}

// searchURL returns url of keyword search from template with "{keyword}" placeholder.
func searchURL(template string, keyword string, escape func(string) string) string {
	if escape == nil {
		escape = url.QueryEscape
	}
	return strings.ReplaceAll(template, "{keyword}", escape(keyword))
}

// resolveURL returns href resolved against store base url.
// Scheme-relative and root-relative links become absolute, unparseable links are returned as they are.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || base == nil {
		return href
	}

	ref, err := url.Parse(href)
	if err != nil {
		return href
	}

	return base.ResolveReference(ref).String()
}
