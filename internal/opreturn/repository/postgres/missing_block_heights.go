package postgres

import (
	"context"
	"fmt"
	"time"
)

// MissingBlockHeights returns up to limit heights in [from, to] that have no block row,
// in ascending order.
func (r *Repository) MissingBlockHeights(ctx context.Context, from, to, limit uint64) (heights []uint64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("missing_block_heights", err, start)
	}()

	if limit == 0 || from > to {
		return nil, nil
	}

	const query = `
SELECT g.height
FROM generate_series($1::BIGINT, $2::BIGINT) AS g(height)
LEFT JOIN blocks b ON b.height = g.height
WHERE b.height IS NULL
ORDER BY g.height
LIMIT $3`

	rows, err := r.db.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("query missing block heights: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var height uint64
		if err = rows.Scan(&height); err != nil {
			return nil, fmt.Errorf("scan missing block height: %w", err)
		}
		heights = append(heights, height)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate missing block heights: %w", err)
	}
	return heights, nil
}
