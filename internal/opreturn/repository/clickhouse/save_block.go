package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
)

// SaveBlock inserts block unless a row with the same hash or height exists.
func (r *Repository) SaveBlock(ctx context.Context, block model.Block) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("save_block", err, start)
	}()

	const existsQuery = `
SELECT count()
FROM blocks
WHERE hash = ? OR height = ?`

	n, err := r.count(ctx, existsQuery, block.Hash, block.Height)
	if err != nil {
		return fmt.Errorf("check block %d exists: %w", block.Height, err)
	}
	if n > 0 {
		return nil
	}

	const query = `
INSERT INTO blocks (
	hash,
	height,
	transaction_count,
	timestamp,
	size,
	weight,
	merkle_root,
	difficulty,
	nonce,
	version,
	previous_block_hash
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if err = r.conn.Exec(ctx, query,
		block.Hash,
		block.Height,
		block.TransactionCount,
		block.Timestamp,
		block.Size,
		block.Weight,
		block.MerkleRoot,
		block.Difficulty,
		block.Nonce,
		block.Version,
		block.PreviousBlockHash,
	); err != nil {
		return fmt.Errorf("insert block %d: %w", block.Height, err)
	}
	return nil
}
