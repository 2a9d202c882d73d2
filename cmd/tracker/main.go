package main

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MichalMitros/price-tracker/cmd/tracker/config"
	"github.com/MichalMitros/price-tracker/internal/alerts"
	"github.com/MichalMitros/price-tracker/internal/decoder"
	"github.com/MichalMitros/price-tracker/internal/fetcher"
	"github.com/MichalMitros/price-tracker/internal/handler"
	"github.com/MichalMitros/price-tracker/internal/notifier"
	"github.com/MichalMitros/price-tracker/internal/platform/cache"
	"github.com/MichalMitros/price-tracker/internal/platform/rabbitmq"
	"github.com/MichalMitros/price-tracker/internal/platform/storage"
	"github.com/MichalMitros/price-tracker/internal/ranking"
	"github.com/MichalMitros/price-tracker/internal/scheduler"
	"github.com/MichalMitros/price-tracker/internal/scraper"
	"github.com/MichalMitros/price-tracker/internal/search"
	"github.com/MichalMitros/price-tracker/internal/tracker"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	// UserAgent is user agent header value used when searching stores.
	UserAgent = "price-tracker/0.1.0"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	ranker, err := ranking.NewRanker(cfg.Ranking.Config())
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("invalid ranking configuration")
	}

	amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	conn, err := rabbitmq.NewRabbitMQ(
		amqpConnection,
		cfg.RabbitMQ.Exchange,
		rabbitmq.WithPrefetch(cfg.RabbitMQ.Prefetch),
	)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ channel")
	}

	if err := conn.Declare(cfg.RabbitMQ.Queue, cfg.RabbitMQ.CommandsRoutingKey); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't declare RabbitMQ topology")
	}

	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open Postgres connection")
	}

	cacheStore, err := cache.NewStore(cfg.RedisURL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open cache")
	}

	stores, err := scraper.DefaultStores(
		fetcher.NewFetcher(&http.Client{Timeout: cfg.HTTPTimeout}, UserAgent),
		decoder.Decoder{},
	)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't create stores")
	}

	searcher := search.NewService(
		scraper.NewScraper(stores, &logger, scraper.WithTimeout(cfg.ScraperTimeout)),
		ranker,
		cacheStore,
		&logger,
		search.WithSearchTTL(cfg.SearchCacheTTL),
		search.WithTrendingTTL(cfg.TrendingCacheTTL),
	)

	trk := tracker.NewTracker(
		storage.NewPostgres(pgDB, storage.WithRunTimeout(cfg.RefreshRunTimeout)),
		searcher,
		notifier.NewRabbitMQNotifier(conn, cfg.RabbitMQ.EventsRoutingKey),
		alerts.NewFactory(alerts.NewFinder(ranker), alerts.WithMaxAlternatives(cfg.MaxAlternatives)),
		&logger,
		tracker.WithParallelLimit(cfg.RefreshParallelism),
	)

	han := handler.NewHandler(conn, trk, &logger)

	// start consuming and handling messages
	err = han.Start(ctx, cfg.RabbitMQ.Queue)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start consuming")
	}

	sched := scheduler.NewScheduler(trk, &logger, scheduler.WithSchedule(cfg.RefreshSchedule))
	if err := sched.Start(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start scheduler")
	}

	logger.Info().Msg("price tracker up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	logger.Info().Msg("graceful shutdown start")

	// wait for running refresh and consumer to finish
	sched.Stop()
	<-conn.Done()

	// close connections
	closers := map[string]func() error{
		"Postgres": pgDB.Close,
		"RabbitMQ": amqpConnection.Close,
	}
	if closer, ok := cacheStore.(io.Closer); ok {
		closers["cache"] = closer.Close
	}

	wg := sync.WaitGroup{}
	wg.Add(len(closers))

	for name, closeFunc := range closers {
		go func() {
			defer wg.Done()
			if err := closeFunc(); err != nil {
				logger.Error().
					Err(err).
					Str("connection", name).
					Msg("can't close connection")
			}
		}()
	}

	wg.Wait()

	logger.Info().Msg("graceful shutdown successful")
}
