package scraper

import (
	"context"
	"time"

	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout is time budget of single store search.
const DefaultTimeout = 30 * time.Second

// Option is custom configuration of Scraper.
type Option func(s *Scraper)

// Scraper searches all stores at once.
type Scraper struct {
	stores  []Store
	timeout time.Duration
	logger  *zerolog.Logger
}

// NewScraper returns new Scraper.
func NewScraper(stores []Store, logger *zerolog.Logger, ops ...Option) *Scraper {
	s := &Scraper{
		stores:  stores,
		timeout: DefaultTimeout,
		logger:  logger,
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// SearchAll searches keyword in every store concurrently and returns found listings in stores order.
// Every store search has its own timeout. Store which fails or times out is logged
// and contributes no listings, other stores are not affected.
func (s *Scraper) SearchAll(ctx context.Context, keyword string) []models.Listing {
	results := make([][]models.Listing, len(s.stores))

	var errGroup errgroup.Group

	for ix, store := range s.stores {
		errGroup.Go(func() error {
			started := time.Now()
			listings, err := s.search(ctx, store, keyword)
			if err != nil {
				s.logger.Warn().
					Err(err).
					Str("store", store.Name()).
					Str("keyword", keyword).
					Dur("elapsed", time.Since(started)).
					Msg("store search failed")
				return nil
			}

			s.logger.Debug().
				Str("store", store.Name()).
				Str("keyword", keyword).
				Int("listings", len(listings)).
				Dur("elapsed", time.Since(started)).
				Msg("store search finished")

			results[ix] = listings
			return nil
		})
	}

	_ = errGroup.Wait()

	all := make([]models.Listing, 0)
	for ix := range results {
		all = append(all, results[ix]...)
	}

	return all
}

type searchResult struct {
	listings []models.Listing
	err      error
}

// search runs store search bounded by the timeout even if store doesn't respect context.
func (s *Scraper) search(ctx context.Context, store Store, keyword string) ([]models.Listing, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan searchResult, 1)
	go func() {
		listings, err := store.Search(storeCtx, keyword)
		done <- searchResult{listings: listings, err: err}
	}()

	select {
	case <-storeCtx.Done():
		return nil, storeCtx.Err()
	case result := <-done:
		return result.listings, result.err
	}
}

// WithTimeout sets time budget of single store search.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Scraper) {
		s.timeout = timeout
	}
}
