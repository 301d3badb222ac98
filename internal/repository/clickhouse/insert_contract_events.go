package clickhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/transportdapp/transport-ledger-backend/internal/model"
)

// InsertContractEvents stores contract event envelopes in ClickHouse. The
// typed payload is serialized to JSON so one table holds every event kind.
func (r *Repository) InsertContractEvents(ctx context.Context, events []model.ContractEvent) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_contract_events", err, start)
	}()

	if len(events) == 0 {
		return nil
	}

	const query = `
INSERT INTO transport_contract_events (
	seq,
	event_type,
	token_id,
	emitter,
	emitted_at,
	payload
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare contract events batch: %w", err)
	}

	for _, event := range events {
		var payload []byte
		payload, err = json.Marshal(event.Payload)
		if err != nil {
			return fmt.Errorf("marshal event payload: %w", err)
		}

		if err = batch.Append(
			event.Seq,
			string(event.Type),
			event.TokenID,
			string(event.Emitter),
			event.EmittedAt,
			string(payload),
		); err != nil {
			return fmt.Errorf("append contract event: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert contract events: %w", err)
	}
	return nil
}
