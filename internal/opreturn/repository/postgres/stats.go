package postgres

import (
	"context"
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

	const query = `
SELECT
	s.total_transactions,
	s.total_fees,
	s.average_fee,
	(SELECT COUNT(*) FROM blocks),
	s.first_block,
	s.latest_block,
	s.total_data_size,
	s.average_data_size,
	s.blocks_with_op_return,
	s.text_data_count,
	s.hex_data_count,
	s.binary_data_count,
	s.json_data_count,
	s.other_data_count
FROM op_return_stats_view s`

	if err = r.db.QueryRow(ctx, query).Scan(
		&stats.TotalTransactions,
		&stats.TotalFees,
		&stats.AverageFee,
		&stats.TotalBlocks,
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
		return model.Stats{}, fmt.Errorf("query stats: %w", err)
	}
	return stats, nil
}
