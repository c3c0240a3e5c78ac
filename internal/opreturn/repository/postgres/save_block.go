package postgres

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
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT DO NOTHING`

	if _, err = r.db.Exec(ctx, query,
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
