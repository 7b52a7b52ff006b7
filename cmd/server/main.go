package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/valeevte/PurchaseReport/internal/config"
	"github.com/valeevte/PurchaseReport/internal/database"
	"github.com/valeevte/PurchaseReport/internal/logging"
	"github.com/valeevte/PurchaseReport/internal/metrics"
	"github.com/valeevte/PurchaseReport/internal/purchases"
	"github.com/valeevte/PurchaseReport/internal/scheduler"
	"github.com/valeevte/PurchaseReport/internal/server"
	"github.com/valeevte/PurchaseReport/internal/supervisor"
	"github.com/valeevte/PurchaseReport/internal/upstream"
)

func main() {
	_ = godotenv.Load() // load .env if present; not fatal if missing

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	// graceful shutdown coordination
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("store unavailable")
	}
	logging.Info().Str("driver", cfg.Store.Driver).Msg("store connected")

	m := metrics.NewRegistry()
	fetcher := upstream.NewBreakerClient(upstream.NewClient(cfg.Upstream.URL, cfg.Upstream.Timeout), upstream.BreakerSettings{}, m)
	svc := purchases.NewService(fetcher, store, m)
	h := purchases.NewHandler(svc)

	port := strconv.Itoa(cfg.Server.Port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           server.NewRouter(cfg.Server, cfg.Security, h, m),
		ReadHeaderTimeout: 10 * time.Second,
	}

	root := supervisor.New("purchase-report", cfg.Server.ShutdownTimeout)
	root.Add(supervisor.NewHTTPService(srv, srv.Addr, cfg.Server.ShutdownTimeout))
	if cfg.Scheduler.Interval > 0 {
		// scheduler runs until ctx is cancelled
		root.Add(scheduler.New(svc, scheduler.Config{Interval: cfg.Scheduler.Interval}))
	}

	if err := root.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("supervisor stopped")
	}
	logging.Info().Msg("shutdown signal received")

	// close store (blocks until connections returned)
	closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := store.Close(closeCtx); err != nil {
		logging.Error().Err(err).Msg("store close")
	}

	logging.Info().Msg("graceful shutdown complete")
}

// openStore подключает хранилище, выбранное в store.driver.
func openStore(ctx context.Context, cfg *config.Config) (purchases.Store, error) {
	switch cfg.Store.Driver {
	case "mongo":
		client, err := database.ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return purchases.NewMongoStore(client, cfg.Mongo.Database, cfg.Mongo.Collection, cfg.Mongo.Transactions), nil
	case "postgres":
		pool, err := database.ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		s := purchases.NewPostgresStore(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return s, nil
	case "memory":
		return purchases.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
