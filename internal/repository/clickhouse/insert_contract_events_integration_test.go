package clickhouse

import (
	"time"

	"github.com/golang/mock/gomock"

	"github.com/transportdapp/transport-ledger-backend/internal/model"
)

func (s *RepositorySuite) TestInsertContractEvents() {
	now := time.Now().UTC().Truncate(time.Second)
	events := []model.ContractEvent{
		{
			Seq:       1,
			Type:      model.EventShipmentCreated,
			TokenID:   1,
			Emitter:   "0xcustomer",
			EmittedAt: now,
			Payload:   model.ShipmentCreatedPayload{Shipment: newShipmentRow(1, 1, "SHP-001", model.StatusActive).Shipment},
		},
		{
			Seq:       2,
			Type:      model.EventStatusUpdated,
			TokenID:   1,
			Emitter:   "0xcarrier",
			EmittedAt: now.Add(time.Second),
			Payload:   model.StatusUpdatedPayload{Status: model.StatusInTransit, Progress: 50},
		},
	}

	s.metrics.EXPECT().Observe("insert_contract_events", gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertContractEvents(s.testCtx, events))
	s.Equal(uint64(len(events)), s.countRows("transport_contract_events"))
}

func (s *RepositorySuite) TestMaxEventSeq() {
	s.metrics.EXPECT().Observe("max_event_seq", gomock.Nil(), gomock.Any()).Times(2)
	s.metrics.EXPECT().Observe("insert_contract_events", gomock.Nil(), gomock.Any()).Times(1)

	seq, err := s.repo.MaxEventSeq(s.testCtx)
	s.Require().NoError(err)
	s.Equal(uint64(0), seq)

	now := time.Now().UTC().Truncate(time.Second)
	s.Require().NoError(s.repo.InsertContractEvents(s.testCtx, []model.ContractEvent{
		{Seq: 5, Type: model.EventEscrowReleased, TokenID: 2, Emitter: "0xcarrier", EmittedAt: now},
		{Seq: 3, Type: model.EventShipmentCompleted, TokenID: 2, Emitter: "0xcarrier", EmittedAt: now},
	}))

	seq, err = s.repo.MaxEventSeq(s.testCtx)
	s.Require().NoError(err)
	s.Equal(uint64(5), seq)
}

func (s *RepositorySuite) TestArchivedTokenIDs() {
	s.metrics.EXPECT().Observe("archived_token_ids", gomock.Nil(), gomock.Any()).Times(1)
	s.metrics.EXPECT().Observe("insert_shipments", gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertShipments(s.testCtx, []model.ShipmentRow{
		newShipmentRow(3, 1, "SHP-003", model.StatusActive),
		newShipmentRow(1, 2, "SHP-001", model.StatusActive),
		newShipmentRow(3, 5, "SHP-003", model.StatusDelayed),
	}))

	ids, err := s.repo.ArchivedTokenIDs(s.testCtx)
	s.Require().NoError(err)
	s.Equal([]uint64{1, 3}, ids)
}
