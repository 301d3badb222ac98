package model

// ShipmentRow is one versioned snapshot of a shipment written to the archive.
// Seq is the contract event sequence that produced the snapshot; the archive
// keeps the row with the highest Seq per token.
type ShipmentRow struct {
	Seq      uint64
	Shipment Shipment
}
