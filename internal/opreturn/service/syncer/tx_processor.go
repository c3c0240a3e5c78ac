package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/chain"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/extract"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
	"github.com/goodnatureofminers/opreturn-explorer-backend/pkg/safe"
	"go.uber.org/zap"
)

type txProcessor struct {
	source     ChainSource
	repository Repository
	metrics    Metrics
	logger     *zap.Logger
}

// Process fetches txid, stores its row and, when it carries an OP_RETURN payload, the
// extracted data. The bool reports whether extracted data was stored.
func (p *txProcessor) Process(ctx context.Context, block model.Block, txid string) (found bool, err error) {
	started := time.Now()
	defer func() {
		p.metrics.ObserveProcessTransaction(err, found, started)
		if err != nil {
			p.logger.Warn("process transaction failed",
				zap.String("txid", txid),
				zap.Uint64("height", block.Height),
				zap.Error(err),
			)
		}
	}()

	tx, err := p.source.Transaction(ctx, txid)
	if err != nil {
		return false, fmt.Errorf("fetch transaction %s: %w", txid, err)
	}

	res, ok := extract.Extract(tx)

	row, err := newTransaction(block, tx, ok)
	if err != nil {
		return false, fmt.Errorf("build transaction %s: %w", txid, err)
	}
	if err = p.repository.SaveTransaction(ctx, row); err != nil {
		return false, fmt.Errorf("save transaction %s: %w", txid, err)
	}
	if !ok {
		return false, nil
	}

	err = p.repository.SaveExtractedData(ctx, extract.NewExtractedData(row.Hash, res))
	switch {
	case errors.Is(err, model.ErrDuplicateExtractedData):
		p.logger.Debug("extracted data already stored", zap.String("txid", txid))
	case err != nil:
		return false, fmt.Errorf("save extracted data %s: %w", txid, err)
	}

	p.logger.Debug("found op_return", zap.String("txid", txid), zap.Uint64("height", block.Height))
	return true, nil
}

func newTransaction(block model.Block, tx *chain.Transaction, hasOpReturn bool) (model.Transaction, error) {
	inputs, err := safe.Uint32(len(tx.Inputs))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("input count: %w", err)
	}
	outputs, err := safe.Uint32(len(tx.Outputs))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("output count: %w", err)
	}

	return model.Transaction{
		Hash:             tx.TxID,
		BlockHash:        block.Hash,
		BlockHeight:      block.Height,
		FeeSats:          tx.FeeSats,
		Size:             tx.Size,
		Weight:           tx.Weight,
		Version:          tx.Version,
		Locktime:         tx.Locktime,
		InputCount:       inputs,
		OutputCount:      outputs,
		HasOpReturn:      hasOpReturn,
		ConfirmationTime: tx.Status.BlockTime,
	}, nil
}
