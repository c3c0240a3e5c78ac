package clickhouse

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
SELECT m.number AS height
FROM numbers(?, ?) AS m
LEFT ANTI JOIN (
	SELECT height
	FROM blocks
	WHERE height BETWEEN ? AND ?
) AS b ON b.height = m.number
ORDER BY height
LIMIT ?`

	rows, err := r.conn.Query(ctx, query, from, to-from+1, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("query missing block heights: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

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
