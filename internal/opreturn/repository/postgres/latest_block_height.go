package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
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

	if err = r.db.QueryRow(ctx, query).Scan(&height); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("query latest block height: %w", err)
	}
	return height, true, nil
}
