package ranking

import (
	"fmt"
	"math"
)

const weightsTolerance = 1e-6

// Weights are composite score factors. They must sum to 1.
type Weights struct {
	Rating     float64
	Price      float64
	Popularity float64
	Store      float64
	Discount   float64
}

func (w Weights) sum() float64 {
	return w.Rating + w.Price + w.Popularity + w.Store + w.Discount
}

// Config is tunable configuration of Ranker.
type Config struct {
	// ConfidenceThreshold is number of reviews at which raw rating and global average weigh the same.
	ConfidenceThreshold float64
	Weights             Weights
	// StoreReliability is prior trust weight of known stores, keyed by store name.
	StoreReliability map[string]float64
	// DefaultReliability is used for stores missing in StoreReliability.
	DefaultReliability float64
	// NeutralRating is global average rating used when no listing in batch is rated.
	NeutralRating float64
}

// DefaultConfig returns configuration used by price comparison by default.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: 25,
		Weights: Weights{
			Rating:     0.30,
			Price:      0.30,
			Popularity: 0.20,
			Store:      0.10,
			Discount:   0.10,
		},
		StoreReliability: map[string]float64{
			"Daraz":    0.85,
			"PriceOye": 0.80,
			"Telemart": 0.80,
			"Shophive": 0.75,
			"Mega":     0.70,
		},
		DefaultReliability: 0.70,
		NeutralRating:      4.0,
	}
}

// Validate checks if configuration can be used for scoring.
func (c Config) Validate() error {
	weights := map[string]float64{
		"rating":     c.Weights.Rating,
		"price":      c.Weights.Price,
		"popularity": c.Weights.Popularity,
		"store":      c.Weights.Store,
		"discount":   c.Weights.Discount,
	}
	for name, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: negative %s weight %v", ErrInvalidConfig, name, w)
		}
	}

	if sum := c.Weights.sum(); math.Abs(sum-1) > weightsTolerance {
		return fmt.Errorf("%w: weights sum to %v instead of 1", ErrInvalidConfig, sum)
	}

	if c.ConfidenceThreshold <= 0 || math.IsNaN(c.ConfidenceThreshold) || math.IsInf(c.ConfidenceThreshold, 1) {
		return fmt.Errorf("%w: confidence threshold must be positive and finite, got %v", ErrInvalidConfig, c.ConfidenceThreshold)
	}

	if !isUnit(c.DefaultReliability) {
		return fmt.Errorf("%w: default reliability %v outside [0,1]", ErrInvalidConfig, c.DefaultReliability)
	}

	for store, r := range c.StoreReliability {
		if !isUnit(r) {
			return fmt.Errorf("%w: %s reliability %v outside [0,1]", ErrInvalidConfig, store, r)
		}
	}

	if c.NeutralRating < 1 || c.NeutralRating > 5 || math.IsNaN(c.NeutralRating) {
		return fmt.Errorf("%w: neutral rating %v outside [1,5]", ErrInvalidConfig, c.NeutralRating)
	}

	return nil
}

func isUnit(v float64) bool {
	return v >= 0 && v <= 1
}
