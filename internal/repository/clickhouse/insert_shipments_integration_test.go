package clickhouse

import (
	"github.com/golang/mock/gomock"

	"github.com/transportdapp/transport-ledger-backend/internal/model"
)

func (s *RepositorySuite) TestInsertShipments() {
	rows := []model.ShipmentRow{
		newShipmentRow(1, 1, "SHP-001", model.StatusActive),
		newShipmentRow(2, 4, "SHP-002", model.StatusInTransit),
	}

	s.metrics.EXPECT().Observe("insert_shipments", gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertShipments(s.testCtx, rows))
	s.Equal(uint64(len(rows)), s.countRows("transport_shipments"))
}

func (s *RepositorySuite) TestInsertShipmentsLatestSeqWins() {
	active := newShipmentRow(1, 2, "SHP-001", model.StatusActive)
	delivered := newShipmentRow(1, 9, "SHP-001", model.StatusDelivered)
	delivered.Shipment.IsCompleted = true

	s.metrics.EXPECT().Observe("insert_shipments", gomock.Nil(), gomock.Any()).Times(2)

	s.Require().NoError(s.repo.InsertShipments(s.testCtx, []model.ShipmentRow{active}))
	s.Require().NoError(s.repo.InsertShipments(s.testCtx, []model.ShipmentRow{delivered}))

	rows, err := s.repo.conn.Query(s.testCtx, `
SELECT argMax(status, seq), argMax(is_completed, seq)
FROM transport_shipments
WHERE token_id = ?`, uint64(1))
	s.Require().NoError(err)
	defer func() {
		s.Require().NoError(rows.Close())
	}()

	var status uint8
	var completed bool
	s.Require().True(rows.Next())
	s.Require().NoError(rows.Scan(&status, &completed))
	s.Equal(uint8(model.StatusDelivered), status)
	s.True(completed)
}
