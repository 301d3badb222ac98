package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// ArchivedTokenIDs returns the distinct token ids present in the shipment
// archive, ascending. The backfill diffs this against the ledger to find
// tokens that were never flushed.
func (r *Repository) ArchivedTokenIDs(ctx context.Context) ([]uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("archived_token_ids", err, start)
	}()

	const query = `
SELECT DISTINCT token_id
FROM transport_shipments
ORDER BY token_id`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query archived token ids: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan token id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token ids: %w", err)
	}

	return ids, nil
}
