package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/paylens/dashgate/core/config"
	"github.com/paylens/dashgate/core/cookie"
	"github.com/paylens/dashgate/core/gate"
	"github.com/paylens/dashgate/core/health"
	"github.com/paylens/dashgate/core/kpi"
	"github.com/paylens/dashgate/core/logger"
	"github.com/paylens/dashgate/core/server"
	"github.com/paylens/dashgate/core/session"
	"github.com/paylens/dashgate/integration/database/pg"
	"github.com/paylens/dashgate/integration/database/redis"
	"github.com/paylens/dashgate/middleware"
	"github.com/paylens/dashgate/migrations"
	"github.com/paylens/dashgate/storage/kpipg"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg appConfig
	config.MustLoad(&cfg)

	var log = logger.New(logger.WithProduction(cfg.AppName))
	if cfg.Development {
		log = logger.New(logger.WithDevelopment(cfg.AppName))
	}

	db, err := pg.Connect(ctx, cfg.DB)
	if err != nil {
		log.Error("failed to connect to database", logger.Component("database"), logger.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	if err := pg.Migrate(ctx, db, migrations.FS, log.With("component", "migration")); err != nil {
		log.Error("failed to migrate database", logger.Component("database.migration"), logger.Error(err))
		os.Exit(1)
	}

	cache, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", logger.Component("redis"), logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = cache.Close() }()

	validator, err := gate.NewHTTPValidator(cfg.Validator)
	if err != nil {
		log.Error("failed to create token validator", logger.Component("gate"), logger.Error(err))
		os.Exit(1)
	}

	sessions := session.NewRedisStoreFromConfig(cfg.Session, cache)
	authGate := gate.New(validator, gate.WithLogger(log.With("component", "gate")))
	store := kpipg.New(db)
	fetcher := kpi.NewFetcher(authGate, sessions, store, store,
		kpi.WithLogger(log.With("component", "kpi")))

	cookies := cookie.NewFromConfig(cfg.Cookie)
	cfg.Routes.Cookies = cookies
	cfg.Routes.Logger = log.With("component", "routeguard")

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health/live", health.Liveness)
	mux.HandleFunc("GET /health/ready", health.Readiness(log,
		pg.Healthcheck(db),
		redis.Healthcheck(cache),
	))
	mux.HandleFunc("GET /api/kpi", handleKPI(fetcher, log))

	handler := middleware.RequestID()(
		middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger: log,
			Skip: func(r *http.Request) bool {
				return r.URL.Path == "/health/live" || r.URL.Path == "/health/ready"
			},
		})(
			middleware.RouteGuard(cfg.Routes)(mux),
		),
	)

	srv, err := server.New(cfg.Server, server.WithLogger(log))
	if err != nil {
		log.Error("failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx, handler)
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
