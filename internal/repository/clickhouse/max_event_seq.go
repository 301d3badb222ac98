package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// MaxEventSeq returns the highest archived contract event sequence, or zero
// when the archive is empty.
func (r *Repository) MaxEventSeq(ctx context.Context) (uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("max_event_seq", err, start)
	}()

	const query = `
SELECT coalesce(max(seq), toUInt64(0)) AS max_seq
FROM transport_contract_events`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("query max event seq: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var seq uint64
	if !rows.Next() {
		return 0, fmt.Errorf("max event seq not found")
	}

	if err = rows.Scan(&seq); err != nil {
		return 0, fmt.Errorf("scan max event seq: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate max event seq: %w", err)
	}

	return seq, nil
}
