package modelstesting

import (
	"math/rand"
	"time"

	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var stores = []string{"Daraz", "PriceOye", "Telemart", "Shophive", "Mega"}

// FakeListing returns models.Listing with fake data.
func FakeListing(ops ...func(l *models.Listing)) models.Listing {
	listing := models.Listing{
		Name:         faker.Sentence(),
		Price:        rand.Int63n(500000) + 1,
		URL:          faker.URL(),
		ImageURL:     faker.URL(),
		Rating:       float64(rand.Intn(41)+10) / 10,
		ReviewsCount: rand.Intn(1000),
		Store:        stores[rand.Intn(len(stores))],
		InStock:      true,
		Category:     lo.ToPtr(faker.Word()),
	}

	for _, op := range ops {
		op(&listing)
	}

	return listing
}

// FakeProduct returns models.Product built from fake listing.
func FakeProduct(ops ...func(p *models.Product)) models.Product {
	product := FakeListing().Product()

	for _, op := range ops {
		op(&product)
	}

	return product
}

// FakeSnapshot returns models.StoreSnapshot with fake data.
func FakeSnapshot(ops ...func(s *models.StoreSnapshot)) models.StoreSnapshot {
	snapshot := models.StoreSnapshot{
		Store:       stores[rand.Intn(len(stores))],
		Price:       rand.Int63n(500000) + 1,
		URL:         faker.URL(),
		InStock:     true,
		LastUpdated: time.Now().UTC().Truncate(time.Second),
	}

	for _, op := range ops {
		op(&snapshot)
	}

	return snapshot
}

// FakeAlternative returns models.AlternativeProduct with fake data.
func FakeAlternative(ops ...func(a *models.AlternativeProduct)) models.AlternativeProduct {
	alternative := models.AlternativeProduct{
		ProductID:    uuid.NewString(),
		ProductName:  faker.Sentence(),
		ProductImage: faker.URL(),
		Price:        rand.Int63n(500000) + 1,
		Store:        stores[rand.Intn(len(stores))],
		URL:          faker.URL(),
		Rating:       float64(rand.Intn(41)+10) / 10,
		ReviewsCount: rand.Intn(1000),
		Reason:       "Higher rated",
		Score:        rand.Float64(),
	}

	for _, op := range ops {
		op(&alternative)
	}

	return alternative
}

// FakeSmartAlert returns active, not triggered models.SmartAlert with random number of fake snapshots.
// Best price and store always point to the cheapest snapshot.
func FakeSmartAlert(ops ...func(a *models.SmartAlert)) models.SmartAlert {
	createdAt := time.Now().UTC().Truncate(time.Second)
	originalPrice := rand.Int63n(500000) + 1

	snapshots := fakeSnapshots()
	best := lo.MinBy(snapshots, func(a, b models.StoreSnapshot) bool { return a.Price < b.Price })

	alert := models.SmartAlert{
		ID:               uuid.NewString(),
		UserID:           uuid.NewString(),
		ProductID:        uuid.NewString(),
		ProductName:      faker.Sentence(),
		ProductImage:     faker.URL(),
		ProductStore:     best.Store,
		ProductURL:       best.URL,
		ProductRating:    float64(rand.Intn(41)+10) / 10,
		Category:         faker.Word(),
		OriginalPrice:    originalPrice,
		TargetPrice:      originalPrice,
		AlertType:        models.AlertTypeEveryChange,
		TrackedStores:    snapshots,
		BestCurrentPrice: best.Price,
		BestCurrentStore: best.Store,
		Alternatives:     fakeAlternatives(),
		IsActive:         true,
		CreatedAt:        createdAt,
		LastCheckedAt:    createdAt,
	}

	for _, op := range ops {
		op(&alert)
	}

	return alert
}

func fakeSnapshots() []models.StoreSnapshot {
	snapshotsLen := rand.Intn(4) + 1
	snapshots := make([]models.StoreSnapshot, 0, snapshotsLen)
	for range snapshotsLen {
		snapshots = append(snapshots, FakeSnapshot())
	}

	return snapshots
}

func fakeAlternatives() []models.AlternativeProduct {
	alternativesLen := rand.Intn(4)
	alternatives := make([]models.AlternativeProduct, 0, alternativesLen)
	for range alternativesLen {
		alternatives = append(alternatives, FakeAlternative())
	}

	return alternatives
}
