package indexer

import (
	"context"
	"time"

	"github.com/transportdapp/transport-ledger-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Ledger exposes the contract views the indexer reads for backfill and
	// for snapshotting shipments after mutating events.
	Ledger interface {
		MintedTokenIDs() []uint64
		GetShipment(tokenID uint64) (model.Shipment, error)
		GetTrackingEvents(tokenID uint64) ([]model.TrackingEvent, error)
		GetCustodyChain(tokenID uint64) ([]model.CustodyRecord, error)
	}

	ClickhouseRepository interface {
		InsertShipments(ctx context.Context, rows []model.ShipmentRow) error
		InsertTrackingEvents(ctx context.Context, events []model.TrackingEvent) error
		InsertCustodyRecords(ctx context.Context, records []model.CustodyRecord) error
		InsertContractEvents(ctx context.Context, events []model.ContractEvent) error
		MaxEventSeq(ctx context.Context) (uint64, error)
		ArchivedTokenIDs(ctx context.Context) ([]uint64, error)
	}

	Metrics interface {
		ObserveFlush(table string, err error, rows int, started time.Time)
		ObserveBackfillToken(err error)
	}
)
