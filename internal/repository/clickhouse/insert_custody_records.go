package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/transportdapp/transport-ledger-backend/internal/model"
)

// InsertCustodyRecords stores chain-of-custody entries in ClickHouse.
func (r *Repository) InsertCustodyRecords(ctx context.Context, records []model.CustodyRecord) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_custody_records", err, start)
	}()

	if len(records) == 0 {
		return nil
	}

	const query = `
INSERT INTO transport_custody_records (
	token_id,
	holder,
	holder_name,
	action,
	location,
	timestamp,
	is_verified
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare custody records batch: %w", err)
	}

	for _, record := range records {
		if err = batch.Append(
			record.TokenID,
			string(record.Holder),
			record.HolderName,
			record.Action,
			record.Location,
			record.Timestamp,
			record.IsVerified,
		); err != nil {
			return fmt.Errorf("append custody record: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert custody records: %w", err)
	}
	return nil
}
