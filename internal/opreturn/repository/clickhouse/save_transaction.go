package clickhouse

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

	const existsQuery = `
SELECT count()
FROM transactions
WHERE hash = ?`

	n, err := r.count(ctx, existsQuery, tx.Hash)
	if err != nil {
		return fmt.Errorf("check transaction %s exists: %w", tx.Hash, err)
	}
	if n > 0 {
		return nil
	}

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
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if err = r.conn.Exec(ctx, query,
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
