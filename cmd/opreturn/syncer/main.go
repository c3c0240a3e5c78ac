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
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/esplora"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/repository"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/service/syncer"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	Storage repository.Options `group:"storage" env-namespace:"OPRETURN_SYNCER"`

	Network       model.Network `long:"network" env:"OPRETURN_SYNCER_NETWORK" description:"network name" choice:"mainnet" choice:"testnet" choice:"signet" default:"mainnet"`
	EsploraURL    string        `long:"esplora-url" env:"OPRETURN_SYNCER_ESPLORA_URL" description:"Esplora API base URL (defaults to blockstream.info for the network)"`
	HTTPTimeout   time.Duration `long:"http-timeout" env:"OPRETURN_SYNCER_HTTP_TIMEOUT" description:"HTTP timeout for Esplora requests" default:"30s"`
	TxFetchDelay  time.Duration `long:"tx-fetch-delay" env:"OPRETURN_SYNCER_TX_FETCH_DELAY" description:"pause before every transaction fetch" default:"100ms"`
	EsploraRPS    int           `long:"esplora-rps" env:"OPRETURN_SYNCER_ESPLORA_RPS" description:"client-wide Esplora request cap per second, 0 disables"`
	InitialHeight uint64        `long:"initial-height" env:"OPRETURN_SYNCER_INITIAL_HEIGHT" description:"first height synced into an empty store" default:"905000"`
	BlockBatch    int           `long:"block-batch-size" env:"OPRETURN_SYNCER_BLOCK_BATCH_SIZE" description:"heights per progress batch" default:"5"`
	TxBatch       int           `long:"tx-batch-size" env:"OPRETURN_SYNCER_TX_BATCH_SIZE" description:"transactions fetched concurrently" default:"3"`
	SyncInterval  time.Duration `long:"sync-interval" env:"OPRETURN_SYNCER_SYNC_INTERVAL" description:"time between sync runs" default:"10m"`
	RepairGaps    bool          `long:"repair-gaps" env:"OPRETURN_SYNCER_REPAIR_GAPS" description:"re-process stored-range heights without a block row"`
	GapLimit      uint64        `long:"gap-repair-limit" env:"OPRETURN_SYNCER_GAP_REPAIR_LIMIT" description:"max gap heights repaired per run" default:"100"`
	MetricsAddr   string        `long:"metrics-addr" env:"OPRETURN_SYNCER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
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
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("op_return syncer failed", zap.Error(err))
	}
	logger.Info("op_return syncer stopped")
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := repository.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close repository", zap.Error(err))
		}
	}()

	baseURL := cfg.EsploraURL
	if baseURL == "" {
		if baseURL, err = esplora.DefaultBaseURL(cfg.Network); err != nil {
			return err
		}
	}
	source, err := esplora.NewClient(esplora.Config{
		BaseURL:           baseURL,
		Timeout:           cfg.HTTPTimeout,
		TxFetchDelay:      cfg.TxFetchDelay,
		RequestsPerSecond: cfg.EsploraRPS,
	}, metrics.NewEsploraClient(cfg.Network))
	if err != nil {
		return fmt.Errorf("init esplora client: %w", err)
	}

	svc, err := syncer.NewService(
		repo,
		source,
		metrics.NewSyncer(cfg.Network),
		cfg.Network,
		syncer.Config{
			InitialHeight:  cfg.InitialHeight,
			BlockBatchSize: cfg.BlockBatch,
			TxBatchSize:    cfg.TxBatch,
			RepairGaps:     cfg.RepairGaps,
			GapRepairLimit: cfg.GapLimit,
		},
		logger,
	)
	if err != nil {
		return err
	}

	scheduler, err := syncer.NewScheduler(svc, cfg.SyncInterval, logger)
	if err != nil {
		return err
	}

	logger.Info("starting op_return syncer",
		zap.String("network", string(cfg.Network)),
		zap.String("storage", cfg.Storage.Storage),
		zap.String("esplora_url", baseURL),
	)
	return scheduler.Run(ctx)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
