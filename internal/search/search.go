package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MichalMitros/price-tracker/internal/platform/cache"
	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/MichalMitros/price-tracker/internal/ranking"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Scraper --filename scraper.go

const (
	// DefaultSearchTTL is how long ranked search results are cached.
	DefaultSearchTTL = time.Hour
	// DefaultTrendingTTL is how long ranked trending listings are cached.
	DefaultTrendingTTL = 4 * time.Hour

	searchKeyPrefix = "search:"
	trendingKey     = "trending"
	trendingKeyword = "trending"
)

// Source tells where search results come from.
type Source string

const (
	SourceCache Source = "cache"
	SourceLive  Source = "live"
)

// Scraper searches keyword in all stores.
type Scraper interface {
	SearchAll(ctx context.Context, keyword string) []models.Listing
}

// Result is ranked search result.
type Result struct {
	Listings []models.Listing `json:"results"`
	Source   Source           `json:"source"`
	Count    int              `json:"count"`
}

// Option is custom configuration of Service.
type Option func(s *Service)

// Service searches stores through cache and ranks found listings.
type Service struct {
	scraper     Scraper
	ranker      *ranking.Ranker
	cache       cache.Store
	logger      *zerolog.Logger
	searchTTL   time.Duration
	trendingTTL time.Duration
}

// NewService returns new Service.
func NewService(
	scraper Scraper,
	ranker *ranking.Ranker,
	store cache.Store,
	logger *zerolog.Logger,
	ops ...Option,
) *Service {
	s := &Service{
		scraper:     scraper,
		ranker:      ranker,
		cache:       store,
		logger:      logger,
		searchTTL:   DefaultSearchTTL,
		trendingTTL: DefaultTrendingTTL,
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// Search returns ranked listings of keyword. Keyword is trimmed and lowercased before use.
// Cached results are returned when present, otherwise all stores are scraped and result is cached.
func (s *Service) Search(ctx context.Context, keyword string) (Result, error) {
	keyword = normalize(keyword)
	if keyword == "" {
		return Result{}, ErrEmptyKeyword
	}

	return s.search(ctx, searchKeyPrefix+keyword, keyword, s.searchTTL)
}

// Trending returns ranked trending listings of all stores.
func (s *Service) Trending(ctx context.Context) (Result, error) {
	return s.search(ctx, trendingKey, trendingKeyword, s.trendingTTL)
}

// Candidates returns ranked listings of keyword as catalog products.
// Listings without category are put into category named after the keyword.
func (s *Service) Candidates(ctx context.Context, keyword string) ([]models.Product, error) {
	result, err := s.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}

	category := normalize(keyword)
	products := lo.Map(result.Listings, func(l models.Listing, _ int) models.Product {
		if l.Category == nil || *l.Category == "" {
			l.Category = &category
		}
		return l.Product()
	})

	return products, nil
}

func (s *Service) search(ctx context.Context, key, keyword string, ttl time.Duration) (Result, error) {
	if listings, ok := s.load(ctx, key); ok {
		return Result{
			Listings: listings,
			Source:   SourceCache,
			Count:    len(listings),
		}, nil
	}

	listings := s.ranker.Rank(s.scraper.SearchAll(ctx, keyword))

	// partial results of canceled search are not cached.
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("can't search %q: %w", keyword, err)
	}

	s.save(ctx, key, listings, ttl)

	s.logger.Info().
		Str("keyword", keyword).
		Int("listings", len(listings)).
		Msg("live search finished")

	return Result{
		Listings: listings,
		Source:   SourceLive,
		Count:    len(listings),
	}, nil
}

// load returns listings cached under key. Cache failures are treated as cache misses.
func (s *Service) load(ctx context.Context, key string) ([]models.Listing, bool) {
	data, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("can't read search cache")
		return nil, false
	}
	if !found {
		return nil, false
	}

	listings := make([]models.Listing, 0)
	if err := json.Unmarshal(data, &listings); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("can't decode cached listings")
		return nil, false
	}

	return listings, true
}

func (s *Service) save(ctx context.Context, key string, listings []models.Listing, ttl time.Duration) {
	data, err := json.Marshal(listings)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("can't encode listings")
		return
	}

	if err := s.cache.Set(ctx, key, data, ttl); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("can't write search cache")
	}
}

func normalize(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// WithSearchTTL sets how long search results are cached.
func WithSearchTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.searchTTL = ttl
	}
}

// WithTrendingTTL sets how long trending listings are cached.
func WithTrendingTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.trendingTTL = ttl
	}
}
