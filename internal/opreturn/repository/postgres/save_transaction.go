package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
)

// SaveTransaction inserts tx unless a row with the same hash exists.
func (r *Repository) SaveTransaction(ctx context.Context, tx model.Transaction) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("save_transaction", err, start)
	}()

	const query = `
INSERT INTO transactions (
	hash,
	block_hash,
	block_height,
	fee_sats,
	size,
	weight,
	version,
	locktime,
	input_count,
	output_count,
	has_op_return,
	confirmation_time
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (hash) DO NOTHING`

	if _, err = r.db.Exec(ctx, query,
		tx.Hash,
		tx.BlockHash,
		tx.BlockHeight,
		tx.FeeSats,
		tx.Size,
		tx.Weight,
		tx.Version,
		tx.Locktime,
		tx.InputCount,
		tx.OutputCount,
		tx.HasOpReturn,
		tx.ConfirmationTime,
	); err != nil {
		return fmt.Errorf("insert transaction %s: %w", tx.Hash, err)
	}
	return nil
}
