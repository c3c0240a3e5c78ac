package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
)

const searchCondition = `
WHERE payload_text ILIKE $1 OR payload_hex ILIKE $1 OR tx_hash ILIKE $1`

// ListOpReturns returns one page of OP_RETURN records, newest block first, and the
// total number of records matching the filter.
func (r *Repository) ListOpReturns(ctx context.Context, filter model.OpReturnFilter) (records []model.OpReturnRecord, total uint64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("list_op_returns", err, start)
	}()

	var (
		where string
		args  []any
	)
	if filter.Search != "" {
		where = searchCondition
		args = []any{filter.SearchPattern()}
	}

	if err = r.db.QueryRow(ctx, `
SELECT COUNT(*)
FROM op_return_transactions_view`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count op returns: %w", err)
	}
	if total == 0 || filter.Limit == 0 {
		return []model.OpReturnRecord{}, total, nil
	}

	query := fmt.Sprintf(`
SELECT
	tx_hash,
	block_height,
	block_hash,
	block_timestamp,
	payload_text,
	payload_hex,
	fee_sats,
	sender_address,
	data_size_bytes,
	data_type,
	is_utf8_valid,
	created_at
FROM op_return_transactions_view%s
ORDER BY block_height DESC, created_at DESC
LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	rows, err := r.db.Query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query op returns: %w", err)
	}
	defer rows.Close()

	records = make([]model.OpReturnRecord, 0, filter.Limit)
	for rows.Next() {
		var (
			rec      model.OpReturnRecord
			dataType string
		)
		if err = rows.Scan(
			&rec.TxHash,
			&rec.BlockHeight,
			&rec.BlockHash,
			&rec.BlockTimestamp,
			&rec.PayloadText,
			&rec.PayloadHex,
			&rec.FeeSats,
			&rec.SenderAddress,
			&rec.DataSizeBytes,
			&dataType,
			&rec.IsUTF8Valid,
			&rec.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan op return: %w", err)
		}
		rec.DataType = model.DataType(dataType)
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate op returns: %w", err)
	}
	return records, total, nil
}
