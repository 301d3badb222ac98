package clickhouse

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/transportdapp/transport-ledger-backend/internal/model"
)

// InsertShipments stores versioned shipment snapshots in ClickHouse.
func (r *Repository) InsertShipments(ctx context.Context, rows []model.ShipmentRow) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_shipments", err, start)
	}()

	if len(rows) == 0 {
		return nil
	}

	const query = `
INSERT INTO transport_shipments (
	token_id,
	shipment_number,
	customer,
	carrier,
	origin_address,
	destination_address,
	description,
	value_usd,
	expected_delivery,
	penalty_per_day_wei,
	status,
	progress,
	escrow_amount_wei,
	is_completed,
	created_at,
	seq
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare shipments batch: %w", err)
	}

	for _, row := range rows {
		sh := row.Shipment
		if err = batch.Append(
			sh.TokenID,
			sh.ShipmentNumber,
			string(sh.Customer),
			string(sh.Carrier),
			sh.OriginAddress,
			sh.DestinationAddress,
			sh.Description,
			sh.ValueUSD,
			sh.ExpectedDelivery,
			weiString(sh.PenaltyPerDay),
			uint8(sh.Status),
			sh.Progress,
			weiString(sh.EscrowAmount),
			sh.IsCompleted,
			sh.CreatedAt,
			row.Seq,
		); err != nil {
			return fmt.Errorf("append shipment: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert shipments: %w", err)
	}
	return nil
}

func weiString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
