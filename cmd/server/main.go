package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"lankaconnect/internal/effects"
	eventhandler "lankaconnect/internal/events/handler"
	eventmetrics "lankaconnect/internal/events/metrics"
	"lankaconnect/internal/events/service"
	eventstore "lankaconnect/internal/events/store/event"
	httpapi "lankaconnect/internal/http"
	"lankaconnect/internal/platform/config"
	"lankaconnect/internal/platform/httpserver"
	"lankaconnect/internal/platform/logger"
	"lankaconnect/internal/platform/metrics"
	"lankaconnect/internal/platform/postgres"
	platformredis "lankaconnect/internal/platform/redis"
	"lankaconnect/internal/refdata"
)

// main wires high-level dependencies, exposes the HTTP router, and supervises
// the server and the badge sweeper. Business logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage: Postgres when configured, otherwise the in-memory store for
	// local development.
	var (
		store service.EventStore
		opts  []service.Option
	)
	if cfg.PostgresDSN != "" {
		db, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres connection failed", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()
		if err := eventstore.EnsureSchema(ctx, db); err != nil {
			log.Error("schema migration failed", "error", err.Error())
			os.Exit(1)
		}
		store = eventstore.NewPostgres(db)
		opts = append(opts, service.WithTx(service.NewSQLTx(db)))
	} else {
		log.Warn("no postgres DSN configured, using in-memory store")
		store = eventstore.NewInMemory()
	}

	// Effects: Kafka when brokers are configured, otherwise in-process.
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := effects.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			log.Error("kafka connection failed", "error", err.Error())
			os.Exit(1)
		}
		defer publisher.Close()
		opts = append(opts, service.WithPublisher(publisher))
	} else {
		opts = append(opts, service.WithPublisher(effects.NewMemoryPublisher()))
	}

	evMetrics := eventmetrics.New()
	opts = append(opts, service.WithLogger(log), service.WithMetrics(evMetrics))
	svc := service.NewEventService(store, opts...)

	// Reference-data cache: Redis when configured, otherwise in-process.
	var refdataStore refdata.Store = refdata.NewMemoryStore()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		refdataStore = refdata.NewRedisStore(redisClient.Client)
	}
	refdataCache := refdata.NewCache(refdataStore, cfg.RefdataTTL)

	router := httpapi.NewRouter(httpapi.Deps{
		Events:  eventhandler.New(svc, log),
		Refdata: refdata.NewHandler(refdataCache, refdata.StaticSource{}, log),
		Logger:  log,
		HTTP:    metrics.NewHTTP(),
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting lankaconnect events service", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return svc.StartBadgeSweeper(gCtx, cfg.BadgeSweepInterval)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited with error", "error", err.Error())
		os.Exit(1)
	}
	log.Info("server stopped")
}
