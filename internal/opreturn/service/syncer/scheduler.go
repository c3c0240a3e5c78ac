package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/clock"
	"go.uber.org/zap"
)

// Scheduler triggers a sync pass at start and then once per interval.
type Scheduler struct {
	syncer    Syncer
	interval  time.Duration
	newTicker func(time.Duration) clock.Ticker
	logger    *zap.Logger
	wg        sync.WaitGroup
}

func NewScheduler(syncer Syncer, interval time.Duration, logger *zap.Logger) (*Scheduler, error) {
	if syncer == nil {
		return nil, errors.New("scheduler syncer is required")
	}
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	return &Scheduler{
		syncer:    syncer,
		interval:  interval,
		newTicker: clock.NewTicker,
		logger:    logger.Named("scheduler"),
	}, nil
}

// Run blocks until ctx is done, then waits for in-flight passes and returns ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := s.newTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started", zap.Duration("interval", s.interval))
	s.trigger(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopping; waiting for in-flight sync")
			s.wg.Wait()
			return ctx.Err()
		case <-ticker.C():
			s.trigger(ctx)
		}
	}
}

func (s *Scheduler) trigger(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.syncer.Sync(ctx)
	}()
}
