// Package indexer streams contract events into the ClickHouse archive.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/transportdapp/transport-ledger-backend/internal/clock"
	"github.com/transportdapp/transport-ledger-backend/internal/model"
	"github.com/transportdapp/transport-ledger-backend/pkg/batcher"
	"github.com/transportdapp/transport-ledger-backend/pkg/workerpool"
)

const (
	shipmentsTable      = "transport_shipments"
	trackingEventsTable = "transport_tracking_events"
	custodyRecordsTable = "transport_custody_records"
	contractEventsTable = "transport_contract_events"
)

const (
	defaultFlushSize     = 256
	defaultFlushInterval = time.Second
	defaultBatcherRPS    = 10
	defaultWorkerCount   = 4
	backfillRetryDelay   = 5 * time.Second
)

// Service consumes the contract event stream and keeps the archive current.
// On start it backfills tokens the archive has never seen, then follows the
// live stream, batching rows per destination table.
type Service struct {
	logger      *zap.Logger
	ledger      Ledger
	repo        ClickhouseRepository
	metrics     Metrics
	events      <-chan model.ContractEvent
	sleep       func(context.Context, time.Duration) error
	retryDelay  time.Duration
	workerCount int

	shipments      *batcher.Batcher[model.ShipmentRow]
	tracking       *batcher.Batcher[model.TrackingEvent]
	custody        *batcher.Batcher[model.CustodyRecord]
	contractEvents *batcher.Batcher[model.ContractEvent]
}

// New builds a Service with the given dependencies.
func New(
	ledger Ledger,
	repo ClickhouseRepository,
	events <-chan model.ContractEvent,
	metrics Metrics,
	logger *zap.Logger,
) (*Service, error) {
	if ledger == nil {
		return nil, errors.New("ledger is required")
	}
	if repo == nil {
		return nil, errors.New("clickhouse repository is required")
	}
	if events == nil {
		return nil, errors.New("event stream is required")
	}
	if metrics == nil {
		return nil, errors.New("indexer metrics is required")
	}

	s := &Service{
		logger:      logger,
		ledger:      ledger,
		repo:        repo,
		metrics:     metrics,
		events:      events,
		sleep:       clock.SleepWithContext,
		retryDelay:  backfillRetryDelay,
		workerCount: defaultWorkerCount,
	}

	s.shipments = batcher.New[model.ShipmentRow](
		logger.Named("shipmentsBatcher"),
		repo.InsertShipments,
		flushObserver(metrics, shipmentsTable),
		defaultFlushSize,
		defaultFlushInterval,
		defaultBatcherRPS,
	)
	s.tracking = batcher.New[model.TrackingEvent](
		logger.Named("trackingBatcher"),
		repo.InsertTrackingEvents,
		flushObserver(metrics, trackingEventsTable),
		defaultFlushSize,
		defaultFlushInterval,
		defaultBatcherRPS,
	)
	s.custody = batcher.New[model.CustodyRecord](
		logger.Named("custodyBatcher"),
		repo.InsertCustodyRecords,
		flushObserver(metrics, custodyRecordsTable),
		defaultFlushSize,
		defaultFlushInterval,
		defaultBatcherRPS,
	)
	s.contractEvents = batcher.New[model.ContractEvent](
		logger.Named("contractEventsBatcher"),
		repo.InsertContractEvents,
		flushObserver(metrics, contractEventsTable),
		defaultFlushSize,
		defaultFlushInterval,
		defaultBatcherRPS,
	)

	return s, nil
}

func flushObserver(metrics Metrics, table string) batcher.FlushObserver {
	return func(err error, rows int, started time.Time) {
		metrics.ObserveFlush(table, err, rows, started)
	}
}

// Run backfills the archive, then follows the live event stream until the
// context is canceled or the stream closes.
func (s *Service) Run(ctx context.Context) error {
	batcherCtx, batcherCancel := context.WithCancel(ctx)
	s.startBatchers(batcherCtx)
	defer func() {
		s.stopBatchers()
		batcherCancel()
	}()

	for {
		if err := s.backfill(ctx); err != nil {
			s.logger.Warn("backfill failed, backing off", zap.Error(err), zap.Duration("sleep", s.retryDelay))
			if sleepErr := s.sleep(ctx, s.retryDelay); sleepErr != nil {
				return sleepErr
			}
			continue
		}
		break
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-s.events:
			if !ok {
				s.logger.Info("event stream closed")
				return nil
			}
			if err := s.handle(ctx, event); err != nil {
				s.logger.Error("handle event failed",
					zap.Uint64("seq", event.Seq),
					zap.String("type", string(event.Type)),
					zap.Error(err))
			}
		}
	}
}

func (s *Service) startBatchers(ctx context.Context) {
	s.shipments.Start(ctx)
	s.tracking.Start(ctx)
	s.custody.Start(ctx)
	s.contractEvents.Start(ctx)
}

func (s *Service) stopBatchers() {
	s.shipments.Stop()
	s.tracking.Stop()
	s.custody.Stop()
	s.contractEvents.Stop()
}

func (s *Service) handle(ctx context.Context, event model.ContractEvent) error {
	if err := s.contractEvents.Add(ctx, event); err != nil {
		return fmt.Errorf("queue contract event: %w", err)
	}

	switch payload := event.Payload.(type) {
	case model.ShipmentCreatedPayload:
		return s.shipments.Add(ctx, model.ShipmentRow{Seq: event.Seq, Shipment: payload.Shipment})
	case model.TrackingEventAddedPayload:
		return s.tracking.Add(ctx, payload.Event)
	case model.CustodyRecordAddedPayload:
		return s.custody.Add(ctx, payload.Record)
	case model.StatusUpdatedPayload, model.ShipmentCompletedPayload, model.EscrowReleasedPayload:
		return s.queueShipmentSnapshot(ctx, event)
	default:
		s.logger.Warn("unhandled event payload",
			zap.Uint64("seq", event.Seq),
			zap.String("type", string(event.Type)))
		return nil
	}
}

// queueShipmentSnapshot re-reads the shipment so the archive row reflects the
// state after the event, versioned by the event sequence.
func (s *Service) queueShipmentSnapshot(ctx context.Context, event model.ContractEvent) error {
	sh, err := s.ledger.GetShipment(event.TokenID)
	if err != nil {
		return fmt.Errorf("snapshot shipment %d: %w", event.TokenID, err)
	}
	return s.shipments.Add(ctx, model.ShipmentRow{Seq: event.Seq, Shipment: sh})
}

// backfill writes tokens the archive is missing, versioned at the current
// archived sequence so later live events still win.
func (s *Service) backfill(ctx context.Context) error {
	archived, err := s.repo.ArchivedTokenIDs(ctx)
	if err != nil {
		return fmt.Errorf("list archived tokens: %w", err)
	}

	maxSeq, err := s.repo.MaxEventSeq(ctx)
	if err != nil {
		return fmt.Errorf("read max event seq: %w", err)
	}

	missing := missingTokens(s.ledger.MintedTokenIDs(), archived)
	if len(missing) == 0 {
		s.logger.Debug("archive is current, nothing to backfill")
		return nil
	}

	s.logger.Info("backfilling tokens", zap.Int("tokens", len(missing)))
	return workerpool.Process(ctx, s.workerCount, missing, func(ctx context.Context, tokenID uint64) error {
		err := s.backfillToken(ctx, tokenID, maxSeq)
		s.metrics.ObserveBackfillToken(err)
		return err
	}, nil)
}

func (s *Service) backfillToken(ctx context.Context, tokenID, seq uint64) error {
	sh, err := s.ledger.GetShipment(tokenID)
	if err != nil {
		return fmt.Errorf("read shipment %d: %w", tokenID, err)
	}
	if err = s.shipments.Add(ctx, model.ShipmentRow{Seq: seq, Shipment: sh}); err != nil {
		return fmt.Errorf("queue shipment %d: %w", tokenID, err)
	}

	tracking, err := s.ledger.GetTrackingEvents(tokenID)
	if err != nil {
		return fmt.Errorf("read tracking events %d: %w", tokenID, err)
	}
	for _, event := range tracking {
		if err = s.tracking.Add(ctx, event); err != nil {
			return fmt.Errorf("queue tracking event %d: %w", tokenID, err)
		}
	}

	custody, err := s.ledger.GetCustodyChain(tokenID)
	if err != nil {
		return fmt.Errorf("read custody chain %d: %w", tokenID, err)
	}
	for _, record := range custody {
		if err = s.custody.Add(ctx, record); err != nil {
			return fmt.Errorf("queue custody record %d: %w", tokenID, err)
		}
	}

	return nil
}

func missingTokens(minted, archived []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(archived))
	for _, id := range archived {
		seen[id] = struct{}{}
	}

	var missing []uint64
	for _, id := range minted {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
