package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"insertion-route-service/internal/adapters/cache"
	"insertion-route-service/internal/adapters/repositories"
	"insertion-route-service/internal/api"
	"insertion-route-service/internal/config"
	"insertion-route-service/internal/metrics"
	"insertion-route-service/internal/platform/db"
	"insertion-route-service/internal/platform/obs"
	"insertion-route-service/internal/ports"
	"insertion-route-service/internal/services"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// main is the application composition root.
// It wires concrete adapters (SQL, redis, prometheus) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	if err := obs.SetupLogger(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("cannot set up logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.Database.Driver, cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open database")
	}
	defer conn.Close()

	// Schema creation is idempotent, so local runs need no separate dbtool step.
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatal().Err(err).Msg("cannot init schema")
	}

	dialect := repositories.Dialect(cfg.Database.Driver)
	m := metrics.New()

	deps := api.Deps{
		Instances:    repositories.NewSQLInstanceRepository(conn, dialect),
		Plans:        repositories.NewSQLSolutionRepository(conn, dialect),
		Cache:        openCache(ctx, cfg),
		Metrics:      m,
		DefaultFleet: cfg.Fleet(),
		Options:      constructorOptions(cfg, m),
		PlansLimiter: rate.NewLimiter(rate.Limit(cfg.Server.PlansRateLimit), cfg.Server.PlansBurst),
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("db_driver", cfg.Database.Driver).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openCache connects to redis when REDIS_ADDR is set. An unreachable redis
// disables caching rather than failing startup.
func openCache(ctx context.Context, cfg *config.Config) ports.SolutionCache {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("REDIS_ADDR not set; plan cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable; plan cache disabled")
		_ = client.Close()
		return nil
	}

	return cache.NewRedisSolutionCache(client, cfg.Redis.TTL)
}

func constructorOptions(cfg *config.Config, m *metrics.Metrics) services.ConstructorOptions {
	observers := services.MultiObserver{m}
	if cfg.Construction.ShowDiagnostics {
		observers = append(observers, services.LogObserver{Logger: log.Logger})
	}

	return services.ConstructorOptions{
		Observer: observers,
		Recorder: m,
		Workers:  cfg.Construction.EvalWorkers,
	}
}
