package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/MichalMitros/price-tracker/internal/ranking"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig is an error returned when configuration values are out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds application configuration.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	ScraperTimeout   time.Duration `env:"SCRAPER_TIMEOUT" envDefault:"30s"`
	SearchCacheTTL   time.Duration `env:"SEARCH_CACHE_TTL" envDefault:"1h"`
	TrendingCacheTTL time.Duration `env:"TRENDING_CACHE_TTL" envDefault:"4h"`

	RefreshSchedule    string        `env:"REFRESH_SCHEDULE" envDefault:"*/30 * * * *"`
	RefreshParallelism int           `env:"REFRESH_PARALLELISM" envDefault:"4"`
	RefreshRunTimeout  time.Duration `env:"REFRESH_RUN_TIMEOUT" envDefault:"1h"`
	MaxAlternatives    int           `env:"MAX_ALTERNATIVES" envDefault:"3"`

	RabbitMQ RabbitMQ
	Ranking  Ranking
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL                string `env:"RABBITMQ_URL"`
	Exchange           string `env:"RABBITMQ_EXCHANGE" envDefault:"price-tracker-ex"`
	Queue              string `env:"RABBITMQ_QUEUE" envDefault:"price-tracker.commands"`
	CommandsRoutingKey string `env:"RABBITMQ_COMMANDS_ROUTING_KEY" envDefault:"price-tracker.cmd.alerts"`
	EventsRoutingKey   string `env:"RABBITMQ_EVENTS_ROUTING_KEY" envDefault:"price-tracker.events.alert-triggered"`
	Prefetch           int    `env:"RABBITMQ_PREFETCH" envDefault:"4"`
}

// Ranking holds ranking configuration.
type Ranking struct {
	WeightRating        float64            `env:"RANKING_WEIGHT_RATING" envDefault:"0.30"`
	WeightPrice         float64            `env:"RANKING_WEIGHT_PRICE" envDefault:"0.30"`
	WeightPopularity    float64            `env:"RANKING_WEIGHT_POPULARITY" envDefault:"0.20"`
	WeightStore         float64            `env:"RANKING_WEIGHT_STORE" envDefault:"0.10"`
	WeightDiscount      float64            `env:"RANKING_WEIGHT_DISCOUNT" envDefault:"0.10"`
	ConfidenceThreshold float64            `env:"RANKING_CONFIDENCE_THRESHOLD" envDefault:"25"`
	StoreReliability    map[string]float64 `env:"RANKING_STORE_RELIABILITY" envKeyValSeparator:":" envDefault:"Daraz:0.85,PriceOye:0.80,Telemart:0.80,Shophive:0.75,Mega:0.70"`
	DefaultReliability  float64            `env:"RANKING_DEFAULT_RELIABILITY" envDefault:"0.70"`
	NeutralRating       float64            `env:"RANKING_NEUTRAL_RATING" envDefault:"4.0"`
}

// Load loads variables from .env files when they exist and parses configuration from environment.
// Variables already set in environment take precedence over .env files.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("can't load env files: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("can't parse env variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks values which parse fine but can't be used.
// Ranking config is validated by ranking.NewRanker.
func (c Config) Validate() error {
	if c.RefreshParallelism < 1 {
		return fmt.Errorf("%w: REFRESH_PARALLELISM must be at least 1, got %d", ErrInvalidConfig, c.RefreshParallelism)
	}

	if c.MaxAlternatives < 0 {
		return fmt.Errorf("%w: MAX_ALTERNATIVES can't be negative, got %d", ErrInvalidConfig, c.MaxAlternatives)
	}

	if c.RabbitMQ.Prefetch < 0 {
		return fmt.Errorf("%w: RABBITMQ_PREFETCH can't be negative, got %d", ErrInvalidConfig, c.RabbitMQ.Prefetch)
	}

	return nil
}

// Config returns ranking.Config, it doesn't validate it.
func (r Ranking) Config() ranking.Config {
	return ranking.Config{
		ConfidenceThreshold: r.ConfidenceThreshold,
		Weights: ranking.Weights{
			Rating:     r.WeightRating,
			Price:      r.WeightPrice,
			Popularity: r.WeightPopularity,
			Store:      r.WeightStore,
			Discount:   r.WeightDiscount,
		},
		StoreReliability:   r.StoreReliability,
		DefaultReliability: r.DefaultReliability,
		NeutralRating:      r.NeutralRating,
	}
}
