package scraper

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MichalMitros/price-tracker/internal/fetcher"
	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"golang.org/x/sync/errgroup"
)

// JSONStore searches store exposing catalog search as json.
type JSONStore struct {
	name      string
	baseURL   *url.URL
	searchURL string
	fetcher   Fetcher
	decoder   Decoder
}

// NewJSONStore returns new JSONStore.
// searchURL must contain "{keyword}" placeholder.
func NewJSONStore(name, baseURL, searchURL string, fetcher Fetcher, decoder Decoder) (*JSONStore, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("can't parse %s base url: %w", name, err)
	}

	return &JSONStore{
		name:      name,
		baseURL:   base,
		searchURL: searchURL,
		fetcher:   fetcher,
		decoder:   decoder,
	}, nil
}

// Name returns store name.
func (s *JSONStore) Name() string {
	return s.name
}

// Search fetches catalog of keyword and decodes its listings.
// Listings which can't be decoded are skipped.
func (s *JSONStore) Search(ctx context.Context, keyword string) ([]models.Listing, error) {
	catalog, err := s.fetcher.FetchFile(ctx, searchURL(s.searchURL, keyword, url.QueryEscape), fetcher.AcceptJSON)
	if err != nil {
		return nil, fmt.Errorf("can't fetch %s catalog: %w", s.name, err)
	}
	defer catalog.Close()

	results := make(chan models.ParsingResult)
	listings := make([]models.Listing, 0)

	errGroup, egCtx := errgroup.WithContext(ctx)

	// decode catalog.
	errGroup.Go(func() error {
		defer close(results)
		if err := s.decoder.Decode(egCtx, catalog, results); err != nil {
			return fmt.Errorf("can't decode %s catalog: %w", s.name, err)
		}
		return nil
	})

	// collect decoded listings.
	errGroup.Go(func() error {
		for result := range results {
			if result.Error != nil || result.Listing.Name == "" {
				continue
			}

			listing := result.Listing
			listing.Store = s.name
			listing.URL = resolveURL(s.baseURL, listing.URL)
			listings = append(listings, listing)
		}
		return nil
	})

	if err := errGroup.Wait(); err != nil {
		return nil, err
	}

	return listings, nil
}
