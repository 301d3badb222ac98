package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/transportdapp/transport-ledger-backend/internal/model"
)

// InsertTrackingEvents stores tracking log entries in ClickHouse.
func (r *Repository) InsertTrackingEvents(ctx context.Context, events []model.TrackingEvent) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_tracking_events", err, start)
	}()

	if len(events) == 0 {
		return nil
	}

	const query = `
INSERT INTO transport_tracking_events (
	token_id,
	event_type,
	description,
	location,
	timestamp,
	recorded_by
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare tracking events batch: %w", err)
	}

	for _, event := range events {
		if err = batch.Append(
			event.TokenID,
			event.EventType,
			event.Description,
			event.Location,
			event.Timestamp,
			string(event.RecordedBy),
		); err != nil {
			return fmt.Errorf("append tracking event: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert tracking events: %w", err)
	}
	return nil
}
