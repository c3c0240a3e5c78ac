package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/metrics"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/cache"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/repository"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/service/query"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/transport"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type config struct {
	Storage repository.Options `group:"storage" env-namespace:"OPRETURN_API"`

	Addr           string        `long:"addr" env:"OPRETURN_API_ADDR" description:"HTTP listen address" default:":3001"`
	RateLimitRPS   float64       `long:"rate-limit-rps" env:"OPRETURN_API_RATE_LIMIT_RPS" description:"requests per second per client IP, 0 disables" default:"10"`
	RateLimitBurst int           `long:"rate-limit-burst" env:"OPRETURN_API_RATE_LIMIT_BURST" description:"burst per client IP" default:"20"`
	RedisAddrs     []string      `long:"redis-addr" env:"OPRETURN_API_REDIS_ADDRS" env-delim:"," description:"Redis address for the stats cache, repeatable; empty disables caching"`
	RedisPassword  string        `long:"redis-password" env:"OPRETURN_API_REDIS_PASSWORD" description:"Redis password"`
	RedisDB        int           `long:"redis-db" env:"OPRETURN_API_REDIS_DB" description:"Redis database"`
	StatsCacheTTL  time.Duration `long:"stats-cache-ttl" env:"OPRETURN_API_STATS_CACHE_TTL" description:"stats cache TTL, 0 disables" default:"30s"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("api gateway failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	repo, err := repository.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close repository", zap.Error(err))
		}
	}()

	var statsCache query.Cache
	if len(cfg.RedisAddrs) > 0 && cfg.StatsCacheTTL > 0 {
		rdb, err := cache.NewRedis(cache.Config{
			Addrs:    cfg.RedisAddrs,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   "opreturn",
		})
		if err != nil {
			return fmt.Errorf("init redis: %w", err)
		}
		defer func() {
			_ = rdb.Close()
		}()
		statsCache = rdb
	}

	apiMetrics := metrics.NewAPI()
	svc, err := query.NewService(repo, statsCache, cfg.StatsCacheTTL, apiMetrics, logger)
	if err != nil {
		return err
	}

	var limiter *transport.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = transport.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
		go limiter.Run(ctx.Done())
	}

	router := transport.NewRouter(transport.NewHandler(svc, logger), apiMetrics, limiter, logger)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", cfg.Addr), zap.String("storage", cfg.Storage.Storage))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}
