package ranking

import (
	"fmt"
	"math"
	"sort"

	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/samber/lo"
)

// Context is batch-wide statistics every listing in batch is scored against.
type Context struct {
	MinPrice            int64
	MaxPrice            int64
	MaxReviewsCount     int
	GlobalAverageRating float64
}

// Score is composite score of a listing with its normalized components.
type Score struct {
	Rating     float64
	Price      float64
	Popularity float64
	Store      float64
	Discount   float64
	Total      float64
}

// Ranker orders listings by composite relevance score.
// Ranker is immutable and safe for concurrent use.
type Ranker struct {
	cfg Config
}

// NewRanker returns new Ranker or ErrInvalidConfig when configuration is invalid.
func NewRanker(cfg Config) (*Ranker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("can't create ranker: %w", err)
	}

	cfg.StoreReliability = lo.Assign(cfg.StoreReliability)

	return &Ranker{cfg: cfg}, nil
}

// Context computes scoring context of listings batch.
func (r *Ranker) Context(listings []models.Listing) Context {
	ctx := Context{
		MaxReviewsCount:     1,
		GlobalAverageRating: r.cfg.NeutralRating,
	}

	var (
		ratingSum   float64
		ratingCount float64
		pricesSeen  bool
	)

	for ix := range listings {
		l := &listings[ix]

		if l.Rating > 0 {
			w := float64(max(l.ReviewsCount, 1))
			ratingSum += l.Rating * w
			ratingCount += w
		}

		if l.Price > 0 {
			if !pricesSeen || l.Price < ctx.MinPrice {
				ctx.MinPrice = l.Price
			}
			if !pricesSeen || l.Price > ctx.MaxPrice {
				ctx.MaxPrice = l.Price
			}
			pricesSeen = true
		}

		ctx.MaxReviewsCount = max(ctx.MaxReviewsCount, l.ReviewsCount)
	}

	if ratingCount > 0 {
		ctx.GlobalAverageRating = ratingSum / ratingCount
	}

	return ctx
}

// Score computes composite score of listing within batch described by ctx.
func (r *Ranker) Score(l models.Listing, ctx Context) Score {
	var s Score

	reviews := float64(max(l.ReviewsCount, 0))
	c := r.cfg.ConfidenceThreshold
	bayesian := (c*ctx.GlobalAverageRating + reviews*l.Rating) / (c + reviews)
	s.Rating = clamp((bayesian - 1) / 4)

	if l.Price > 0 {
		priceRange := float64(ctx.MaxPrice - ctx.MinPrice)
		if priceRange <= 0 {
			priceRange = 1
		}
		s.Price = clamp(1 - float64(l.Price-ctx.MinPrice)/priceRange)
	}

	if ctx.MaxReviewsCount > 1 {
		s.Popularity = clamp(math.Log1p(reviews) / math.Log1p(float64(ctx.MaxReviewsCount)))
	}

	s.Store = r.reliability(l.Store)

	if l.OriginalPrice != nil && *l.OriginalPrice > l.Price && *l.OriginalPrice > 0 {
		s.Discount = clamp(float64(*l.OriginalPrice-l.Price) / float64(*l.OriginalPrice))
	}

	w := r.cfg.Weights
	s.Total = w.Rating*s.Rating +
		w.Price*s.Price +
		w.Popularity*s.Popularity +
		w.Store*s.Store +
		w.Discount*s.Discount

	return s
}

// Rank returns listings sorted descending by composite score.
// Listings with equal scores keep their input order. Input slice is not modified.
func (r *Ranker) Rank(listings []models.Listing) []models.Listing {
	return Order(r, listings, func(l models.Listing) models.Listing { return l })
}

// Ranked is item with its composite score.
type Ranked[T any] struct {
	Item  T
	Score Score
}

// RankBy scores items by their listing view and returns them sorted descending by total score.
// Items with equal scores keep their input order.
func RankBy[T any](r *Ranker, items []T, view func(T) models.Listing) []Ranked[T] {
	if len(items) == 0 {
		return []Ranked[T]{}
	}

	listings := lo.Map(items, func(item T, _ int) models.Listing { return view(item) })
	ctx := r.Context(listings)

	ranked := make([]Ranked[T], 0, len(items))
	for ix := range items {
		ranked = append(ranked, Ranked[T]{
			Item:  items[ix],
			Score: r.Score(listings[ix], ctx),
		})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score.Total > ranked[b].Score.Total
	})

	return ranked
}

// Order sorts any items by composite score of their listing view, the same way Rank does.
func Order[T any](r *Ranker, items []T, view func(T) models.Listing) []T {
	return lo.Map(RankBy(r, items, view), func(ranked Ranked[T], _ int) T { return ranked.Item })
}

func (r *Ranker) reliability(store string) float64 {
	if v, ok := r.cfg.StoreReliability[store]; ok {
		return v
	}
	return r.cfg.DefaultReliability
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
