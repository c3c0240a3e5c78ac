package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
)

// BlockInfo returns the stored block at height with its OP_RETURN transaction count.
// The bool is false when no block is stored at height.
func (r *Repository) BlockInfo(ctx context.Context, height uint64) (info *model.BlockInfo, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_info", err, start)
	}()

	info, found, err = r.block(ctx, height)
	if err != nil || !found {
		return nil, false, err
	}

	info.OpReturnCount, err = r.count(ctx, `
SELECT count()
FROM transactions FINAL
WHERE block_height = ? AND has_op_return`, height)
	if err != nil {
		return nil, false, fmt.Errorf("count op returns in block %d: %w", height, err)
	}
	return info, true, nil
}

func (r *Repository) block(ctx context.Context, height uint64) (info *model.BlockInfo, found bool, err error) {
	const query = `
SELECT
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
	previous_block_hash,
	created_at
FROM blocks FINAL
WHERE height = ?
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, height)
	if err != nil {
		return nil, false, fmt.Errorf("query block %d: %w", height, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, false, fmt.Errorf("iterate block %d: %w", height, err)
		}
		return nil, false, nil
	}

	info = &model.BlockInfo{}
	if err = rows.Scan(
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
	); err != nil {
		return nil, false, fmt.Errorf("scan block %d: %w", height, err)
	}
	if err = rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate block %d: %w", height, err)
	}
	return info, true, nil
}
