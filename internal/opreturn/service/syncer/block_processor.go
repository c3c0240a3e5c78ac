package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
	"github.com/goodnatureofminers/opreturn-explorer-backend/pkg/safe"
	"github.com/goodnatureofminers/opreturn-explorer-backend/pkg/workerpool"
	"go.uber.org/zap"
)

// ErrHeightMismatch is returned when the upstream block does not sit at the requested height.
var ErrHeightMismatch = errors.New("block height mismatch")

type blockProcessor struct {
	txBatchSize int
	source      ChainSource
	repository  Repository
	txProcessor TxProcessor
	metrics     Metrics
	logger      *zap.Logger
}

// Process persists the block at height and then its transactions. Transaction failures
// are absorbed; only failures before the block row is written are returned.
func (p *blockProcessor) Process(ctx context.Context, height uint64) (err error) {
	started := time.Now()
	defer func() {
		p.metrics.ObserveProcessHeight(err, height, started)
	}()

	hash, err := p.source.BlockHash(ctx, height)
	if err != nil {
		return fmt.Errorf("fetch block hash at height %d: %w", height, err)
	}

	block, err := p.source.Block(ctx, hash)
	if err != nil {
		return fmt.Errorf("fetch block %s: %w", hash, err)
	}
	if block.Height != height {
		return fmt.Errorf("block %s reports height %d, requested %d: %w", hash, block.Height, height, ErrHeightMismatch)
	}

	txids, err := p.source.BlockTxIDs(ctx, hash)
	if err != nil {
		return fmt.Errorf("fetch txids of block %s: %w", hash, err)
	}

	block.TransactionCount, err = safe.Uint32(len(txids))
	if err != nil {
		return fmt.Errorf("count transactions of block %s: %w", hash, err)
	}

	if err = p.repository.SaveBlock(ctx, block); err != nil {
		return fmt.Errorf("save block %d: %w", height, err)
	}

	p.logger.Debug("processing block", zap.Uint64("height", height), zap.Int("tx_count", len(txids)))

	found, failed, err := p.processTransactions(ctx, block, txids)
	if err != nil {
		return err
	}

	if found > 0 || failed > 0 {
		p.logger.Info("block processed",
			zap.Uint64("height", height),
			zap.Int("tx_count", len(txids)),
			zap.Int("op_return_count", found),
			zap.Int("failed_count", failed),
		)
	}

	return nil
}

func (p *blockProcessor) processTransactions(ctx context.Context, block model.Block, txids []string) (found, failed int, err error) {
	process := func(ctx context.Context, txid string) (bool, error) {
		return p.txProcessor.Process(ctx, block, txid)
	}

	for start := 0; start < len(txids); start += p.txBatchSize {
		if err = ctx.Err(); err != nil {
			return found, failed, fmt.Errorf("process transactions of block %d: %w", block.Height, err)
		}

		end := min(start+p.txBatchSize, len(txids))
		results := workerpool.Settle(ctx, end-start, txids[start:end], process)
		failed += workerpool.Failed(results)
		for _, res := range results {
			if res.Err == nil && res.Value {
				found++
			}
		}
	}

	return found, failed, nil
}
