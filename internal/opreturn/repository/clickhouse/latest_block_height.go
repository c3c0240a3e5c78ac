package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// LatestBlockHeight returns the highest stored block height. The bool is false when no
// blocks are stored yet.
func (r *Repository) LatestBlockHeight(ctx context.Context) (height uint64, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("latest_block_height", err, start)
	}()

	const query = `
SELECT height
FROM blocks
ORDER BY height DESC
LIMIT 1`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return 0, false, fmt.Errorf("query latest block height: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return 0, false, fmt.Errorf("iterate latest block height: %w", err)
		}
		return 0, false, nil
	}
	if err = rows.Scan(&height); err != nil {
		return 0, false, fmt.Errorf("scan latest block height: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, false, fmt.Errorf("iterate latest block height: %w", err)
	}
	return height, true, nil
}
