// main wires high-level dependencies, exposes the HTTP router, and keeps
// the server lifecycle small. Business logic lives in internal services
// packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"importintel/internal/costing"
	"importintel/internal/eligibility"
	"importintel/internal/intelligence"
	intelligenceHandler "importintel/internal/intelligence/handler"
	intelligenceMetrics "importintel/internal/intelligence/metrics"
	"importintel/internal/journey"
	journeyHandler "importintel/internal/journey/handler"
	journeyMetrics "importintel/internal/journey/metrics"
	"importintel/internal/lookupcache"
	lookupcacheMetrics "importintel/internal/lookupcache/metrics"
	"importintel/internal/platform/config"
	"importintel/internal/platform/httpserver"
	"importintel/internal/platform/logger"
	platformRedis "importintel/internal/platform/redis"
	"importintel/internal/resolver"
	resolverHandler "importintel/internal/resolver/handler"
	resolverMetrics "importintel/internal/resolver/metrics"
	httptransport "importintel/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Lookup cache: Redis when configured, in-memory otherwise.
	var cacheStore lookupcache.Store
	redisClient, err := platformRedis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		cacheStore = lookupcache.NewRedisStore(redisClient.Client)
		log.Info("lookup cache backed by redis")
	} else {
		cacheStore = lookupcache.NewInMemoryStore()
		log.Info("lookup cache backed by memory")
	}
	cache := lookupcache.New(cacheStore,
		cfg.Cache.ResolutionTTL, cfg.Cache.IntelligenceTTL,
		log, lookupcacheMetrics.New())

	// Journey sessions: Postgres when configured, in-memory otherwise.
	var sessionStore journey.Store
	if cfg.PostgresDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		pgStore := journey.NewPostgresStore(pool)
		if err := pgStore.Migrate(ctx); err != nil {
			log.Error("postgres migration failed", "error", err)
			os.Exit(1)
		}
		sessionStore = pgStore
		log.Info("sessions backed by postgres")
	} else {
		sessionStore = journey.NewInMemoryStore()
		log.Info("sessions backed by memory")
	}

	// Each metrics set registers on the default registry, so it is created
	// once and shared between service and handler.
	resMetrics := resolverMetrics.New()
	intMetrics := intelligenceMetrics.New()
	jnyMetrics := journeyMetrics.New()

	// Domain services.
	resolverSvc := resolver.NewService(resolver.DefaultTables(), log, resMetrics)
	engine := eligibility.NewEngine(eligibility.DefaultRuleSet(), log)
	calculator := costing.NewCalculator(costing.DefaultRateCard(), log)
	intelligenceSvc := intelligence.NewService(
		resolverSvc, engine, calculator, cache,
		intelligence.NewStaticGeocoder(), intelligence.NewStaticRates(),
		log, intMetrics)
	journeySvc := journey.NewService(sessionStore,
		intelligenceSvc.ResolveVehicle,
		cfg.Session.IdleTimeout, cfg.Session.ReconstructWindow,
		log, jnyMetrics)

	// Background sweeps stop with the signal context.
	go cache.StartSweep(ctx, cfg.Cache.SweepInterval)
	go journeySvc.StartSweep(ctx, cfg.Session.SweepInterval)

	router := httptransport.NewRouter(log,
		resolverHandler.New(intelligenceSvc, log, resMetrics),
		intelligenceHandler.New(intelligenceSvc, log, intMetrics),
		journeyHandler.New(journeySvc, intelligenceSvc, intelligenceSvc, log, jnyMetrics),
	)
	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server starting", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
