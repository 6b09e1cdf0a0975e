package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"dutywire/internal/audit"
	auditkafka "dutywire/internal/audit/kafka"
	"dutywire/internal/gate"
	gatehandler "dutywire/internal/gate/handler"
	gatemetrics "dutywire/internal/gate/metrics"
	httpapi "dutywire/internal/http"
	"dutywire/internal/platform/config"
	"dutywire/internal/platform/httpserver"
	"dutywire/internal/platform/logger"
	platformredis "dutywire/internal/platform/redis"
	tenanthandler "dutywire/internal/tenant/handler"
	tenantmetrics "dutywire/internal/tenant/metrics"
	"dutywire/internal/tenant/service"
	"dutywire/internal/tenant/store"
	tenantpg "dutywire/internal/tenant/store/postgres"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the gate and the tenant service.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy, err := store.ParseDomainClaimPolicy(cfg.DomainClaimPolicy)
	if err != nil {
		log.Error("invalid domain claim policy", "error", err)
		os.Exit(1)
	}
	tenants := store.NewInMemory(policy)

	var serviceOpts []service.Option
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("connect postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		loader := tenantpg.NewLoader(pool)
		if err := loader.EnsureSchema(ctx); err != nil {
			log.Error("ensure tenant schema", "error", err)
			os.Exit(1)
		}
		records, err := loader.LoadAll(ctx)
		if err != nil {
			log.Error("load tenants", "error", err)
			os.Exit(1)
		}
		if err := tenants.LoadInitial(ctx, records); err != nil {
			log.Error("seed tenant store", "error", err)
			os.Exit(1)
		}
		serviceOpts = append(serviceOpts, service.WithPersistence(loader))
		log.Info("tenant store loaded from postgres", "tenants", len(records))
	} else {
		if err := store.SeedSampleTenants(ctx, tenants); err != nil {
			log.Error("seed sample tenants", "error", err)
			os.Exit(1)
		}
		log.Info("tenant store seeded with sample tenants")
	}

	// Audit pipeline: memory store always (backs the admin API), Redis stream
	// and Kafka topic when configured.
	auditLog := audit.NewInMemoryStore()
	auditStores := []audit.Store{auditLog}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		auditStores = append(auditStores, audit.NewRedisStore(redisClient.Client, cfg.Redis.AuditStream))
		log.Info("redis audit stream enabled", "stream", cfg.Redis.AuditStream)
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := auditkafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaAuditTopic, log)
		if err != nil {
			log.Error("create kafka publisher", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		if err := publisher.EnsureTopic(ctx, 3, 1); err != nil {
			log.Warn("ensure kafka audit topic", "error", err)
		}
		auditStores = append(auditStores, publisher)
		log.Info("kafka audit publisher enabled", "topic", cfg.KafkaAuditTopic)
	}

	recorder := audit.NewRecorder(cfg.AuditBufferSize, log)
	worker := audit.NewWorker(audit.NewFanOutStore(auditStores...), recorder.Inbox(), log)

	g := gate.New(tenants, recorder,
		gate.WithLogger(log),
		gate.WithMetrics(gatemetrics.New()))

	serviceOpts = append(serviceOpts,
		service.WithLogger(log),
		service.WithAuditSink(recorder),
		service.WithMetrics(tenantmetrics.New()))
	svc := service.New(tenants, serviceOpts...)

	router := httpapi.NewRouter(
		gatehandler.New(g, log),
		tenanthandler.New(svc, auditLog, log),
		cfg.AdminToken)
	srv := httpserver.New(cfg.Addr, router)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if err := worker.Run(egCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		log.Info("starting dutywire gate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
