package alerts

import (
	"fmt"
	"math"
	"strings"

	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/MichalMitros/price-tracker/internal/price"
	"github.com/MichalMitros/price-tracker/internal/ranking"
	"github.com/samber/lo"
)

const (
	// DefaultMaxAlternatives is number of alternatives offered when not configured otherwise.
	DefaultMaxAlternatives = 3

	cheaperPercentThreshold = 10
	trustedReviewsThreshold = 100
)

// Finder discovers different products from the same category which are better deals than the tracked one.
type Finder struct {
	ranker *ranking.Ranker
}

// NewFinder returns new Finder ordering candidates with ranker.
func NewFinder(ranker *ranking.Ranker) *Finder {
	return &Finder{ranker: ranker}
}

// FindAlternatives returns at most limit products from pool which share alerted product's category,
// are not the same product and are either cheaper or higher rated.
// Candidates are visited in ranking order.
func (f *Finder) FindAlternatives(alerted models.Product, pool []models.Product, limit int) []models.AlternativeProduct {
	alternatives := make([]models.AlternativeProduct, 0)
	if limit <= 0 {
		return alternatives
	}

	alertedPrice := price.Parse(alerted.Price)

	candidates := lo.Filter(pool, func(p models.Product, _ int) bool {
		return p.ID != alerted.ID &&
			!sameName(p.Name, alerted.Name) &&
			p.Category != "" &&
			strings.EqualFold(p.Category, alerted.Category)
	})

	for _, ranked := range ranking.RankBy(f.ranker, candidates, models.Product.Listing) {
		if len(alternatives) >= limit {
			break
		}

		candidate := ranked.Item
		candidatePrice := price.Parse(candidate.Price)
		isCheaper := candidatePrice > 0 && candidatePrice < alertedPrice
		isHigherRated := candidate.Rating > alerted.Rating

		if !isCheaper && !isHigherRated {
			continue
		}

		alternatives = append(alternatives, models.AlternativeProduct{
			ProductID:    candidate.ID,
			ProductName:  candidate.Name,
			ProductImage: candidate.ImageURL,
			Price:        candidatePrice,
			Store:        candidate.Store,
			URL:          candidate.URL,
			Rating:       candidate.Rating,
			ReviewsCount: candidate.ReviewsCount,
			Reason:       reason(candidate, candidatePrice, isCheaper, alertedPrice, alerted.Rating),
			Score:        ranked.Score.Total,
		})
	}

	return alternatives
}

func reason(candidate models.Product, candidatePrice int64, isCheaper bool, alertedPrice int64, alertedRating float64) string {
	diff := alertedPrice - candidatePrice

	if isCheaper {
		pct := int64(math.Floor(float64(diff*100)/float64(alertedPrice) + 0.5))
		if pct >= cheaperPercentThreshold {
			return fmt.Sprintf("%d%% cheaper", pct)
		}
		return fmt.Sprintf("%s less", price.Format(diff))
	}

	if candidate.Rating > alertedRating {
		return "Higher rated"
	}

	if candidate.ReviewsCount > trustedReviewsThreshold {
		return fmt.Sprintf("More trusted (%d reviews)", candidate.ReviewsCount)
	}

	return "Better overall value"
}
