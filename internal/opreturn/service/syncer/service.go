// Package syncer walks the chain from the stored cursor to the tip and persists blocks,
// transactions and their OP_RETURN payloads.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
	"go.uber.org/zap"
)

// State is the run state of a Service.
type State int32

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

type Service struct {
	logger         *zap.Logger
	network        model.Network
	metrics        Metrics
	state          atomic.Int32
	repository     Repository
	resolver       HeightRangeResolver
	blockProcessor BlockProcessor
	blockBatchSize uint64
	initialHeight  uint64
	repairGaps     bool
	gapRepairLimit uint64
}

func NewService(
	repo Repository,
	source ChainSource,
	metrics Metrics,
	network model.Network,
	cfg Config,
	logger *zap.Logger,
) (*Service, error) {
	logger = logger.With(zap.String("network", string(network)))

	if metrics == nil {
		return nil, errors.New("syncer metrics is required")
	}
	if repo == nil {
		return nil, errors.New("syncer repository is required")
	}
	if source == nil {
		return nil, errors.New("syncer chain source is required")
	}

	cfg = cfg.withDefaults()

	return &Service{
		logger:         logger,
		network:        network,
		metrics:        metrics,
		repository:     repo,
		blockBatchSize: uint64(cfg.BlockBatchSize), //nolint:gosec // positive after withDefaults
		initialHeight:  cfg.InitialHeight,
		repairGaps:     cfg.RepairGaps,
		gapRepairLimit: cfg.GapRepairLimit,
		resolver: &heightRangeResolver{
			repository:    repo,
			source:        source,
			initialHeight: cfg.InitialHeight,
		},
		blockProcessor: &blockProcessor{
			txBatchSize: cfg.TxBatchSize,
			source:      source,
			repository:  repo,
			metrics:     metrics,
			logger:      logger.Named("blockProcessor"),
			txProcessor: &txProcessor{
				source:     source,
				repository: repo,
				metrics:    metrics,
				logger:     logger.Named("txProcessor"),
			},
		},
	}, nil
}

// State reports whether a sync pass is in progress.
func (s *Service) State() State {
	return State(s.state.Load())
}

// Sync runs one pass from the stored cursor to the current tip. A call made while a
// pass is running returns immediately without touching the upstream or the storage.
func (s *Service) Sync(ctx context.Context) {
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		s.logger.Debug("sync already running; skipping")
		s.metrics.ObserveSkippedRun()
		return
	}

	started := time.Now()
	defer s.state.Store(int32(StateIdle))
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("sync run panicked", zap.Any("panic", r), zap.Stack("stack"))
			s.metrics.ObserveRun(fmt.Errorf("panic: %v", r), 0, started)
		}
	}()

	s.logger.Info("starting sync run")
	heights, err := s.run(ctx)
	s.metrics.ObserveRun(err, heights, started)
	if err != nil {
		s.logger.Error("sync run failed", zap.Uint64("heights", heights), zap.Error(err))
		return
	}
	s.logger.Info("sync run completed", zap.Uint64("heights", heights), zap.Duration("elapsed", time.Since(started)))
}

func (s *Service) run(ctx context.Context) (uint64, error) {
	rng, err := s.resolver.Resolve(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolve height range: %w", err)
	}

	processed := s.repair(ctx, rng.Start)

	if rng.Empty() {
		s.logger.Info("already up to date", zap.Uint64("tip", rng.End))
		return processed, nil
	}

	total := rng.Len()
	s.logger.Info("syncing blocks",
		zap.Uint64("from", rng.Start),
		zap.Uint64("to", rng.End),
		zap.Uint64("count", total),
	)
	s.metrics.SetProgress(0)

	var completed uint64
	for batchStart := rng.Start; batchStart <= rng.End; batchStart += s.blockBatchSize {
		batchEnd := min(batchStart+s.blockBatchSize-1, rng.End)
		for height := batchStart; height <= batchEnd; height++ {
			if err := ctx.Err(); err != nil {
				return processed + completed, fmt.Errorf("sync interrupted before height %d: %w", height, err)
			}
			s.processHeight(ctx, height)
			completed++
		}

		percent := float64(completed) / float64(total) * 100
		s.metrics.SetProgress(percent)
		s.logger.Info("sync progress",
			zap.String("percent", fmt.Sprintf("%.1f", percent)),
			zap.Uint64("height", batchEnd),
			zap.Uint64("tip", rng.End),
		)
	}

	return processed + completed, nil
}

// repair re-processes heights below start that have no stored block.
func (s *Service) repair(ctx context.Context, start uint64) uint64 {
	if !s.repairGaps || start <= s.initialHeight {
		return 0
	}

	heights, err := s.repository.MissingBlockHeights(ctx, s.initialHeight, start-1, s.gapRepairLimit)
	if err != nil {
		s.logger.Warn("find missing block heights failed", zap.Error(err))
		return 0
	}
	if len(heights) == 0 {
		return 0
	}

	s.logger.Info("repairing block gaps", zap.Int("height_count", len(heights)))
	var repaired uint64
	for _, height := range heights {
		if ctx.Err() != nil {
			break
		}
		s.processHeight(ctx, height)
		repaired++
	}
	return repaired
}

func (s *Service) processHeight(ctx context.Context, height uint64) {
	if err := s.blockProcessor.Process(ctx, height); err != nil {
		s.logger.Error("process block failed", zap.Uint64("height", height), zap.Error(err))
	}
}
