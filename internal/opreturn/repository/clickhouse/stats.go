package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
)

// Stats aggregates the indexed data set.
func (r *Repository) Stats(ctx context.Context) (stats model.Stats, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("stats", err, start)
	}()

	stats.TotalBlocks, err = r.count(ctx, `
SELECT count()
FROM blocks FINAL`)
	if err != nil {
		return model.Stats{}, fmt.Errorf("count blocks: %w", err)
	}

	const query = `
SELECT
	total_transactions,
	total_fees,
	average_fee,
	first_block,
	latest_block,
	total_data_size,
	average_data_size,
	blocks_with_op_return,
	text_data_count,
	hex_data_count,
	binary_data_count,
	json_data_count,
	other_data_count
FROM op_return_stats_view`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return model.Stats{}, fmt.Errorf("query stats: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Stats{}, fmt.Errorf("iterate stats: %w", err)
		}
		return model.Stats{}, errors.New("stats view returned no rows")
	}
	if err = rows.Scan(
		&stats.TotalTransactions,
		&stats.TotalFees,
		&stats.AverageFee,
		&stats.FirstBlock,
		&stats.LatestBlock,
		&stats.TotalDataSize,
		&stats.AverageDataSize,
		&stats.BlocksWithOpReturn,
		&stats.TextDataCount,
		&stats.HexDataCount,
		&stats.BinaryDataCount,
		&stats.JSONDataCount,
		&stats.OtherDataCount,
	); err != nil {
		return model.Stats{}, fmt.Errorf("scan stats: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.Stats{}, fmt.Errorf("iterate stats: %w", err)
	}
	return stats, nil
}
