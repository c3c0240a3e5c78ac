package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
	"github.com/jackc/pgx/v5"
)

// BlockInfo returns the stored block at height with its OP_RETURN transaction count.
// The bool is false when no block is stored at height.
func (r *Repository) BlockInfo(ctx context.Context, height uint64) (info *model.BlockInfo, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_info", err, start)
	}()

	const query = `
SELECT
	b.hash,
	b.height,
	b.transaction_count,
	b.timestamp,
	b.size,
	b.weight,
	b.merkle_root,
	b.difficulty,
	b.nonce,
	b.version,
	b.previous_block_hash,
	b.created_at,
	(SELECT COUNT(*) FROM transactions t WHERE t.block_height = b.height AND t.has_op_return)
FROM blocks b
WHERE b.height = $1`

	info = &model.BlockInfo{}
	if err = r.db.QueryRow(ctx, query, height).Scan(
		&info.Hash,
		&info.Height,
		&info.TransactionCount,
		&info.Timestamp,
		&info.Size,
		&info.Weight,
		&info.MerkleRoot,
		&info.Difficulty,
		&info.Nonce,
		&info.Version,
		&info.PreviousBlockHash,
		&info.CreatedAt,
		&info.OpReturnCount,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query block %d: %w", height, err)
	}
	return info, true, nil
}
