package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
)

// SaveExtractedData inserts data. A second record for the same transaction is rejected
// with model.ErrDuplicateExtractedData.
func (r *Repository) SaveExtractedData(ctx context.Context, data model.ExtractedData) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("save_extracted_data", err, start)
	}()

	const query = `
INSERT INTO extracted_data (
	tx_hash,
	payload_text,
	payload_hex,
	fee_sats,
	sender_address,
	data_size_bytes,
	data_type,
	is_utf8_valid
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err = r.db.Exec(ctx, query,
		data.TxHash,
		data.PayloadText,
		data.PayloadHex,
		data.FeeSats,
		data.SenderAddress,
		data.DataSizeBytes,
		string(data.DataType),
		data.IsUTF8Valid,
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("save extracted data %s: %w", data.TxHash, model.ErrDuplicateExtractedData)
		}
		return fmt.Errorf("insert extracted data %s: %w", data.TxHash, err)
	}
	return nil
}
