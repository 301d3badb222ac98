package model

import (
	"math/big"
	"time"
)

// EventType names a contract event.
type EventType string

const (
	EventShipmentCreated    EventType = "ShipmentCreated"
	EventStatusUpdated      EventType = "StatusUpdated"
	EventTrackingEventAdded EventType = "TrackingEventAdded"
	EventCustodyRecordAdded EventType = "CustodyRecordAdded"
	EventShipmentCompleted  EventType = "ShipmentCompleted"
	EventEscrowReleased     EventType = "EscrowReleased"
)

// ContractEvent is the envelope published after a mutating call commits.
// Seq is strictly increasing across the whole contract so consumers can
// detect gaps and order events without extra reads.
type ContractEvent struct {
	Seq       uint64
	Type      EventType
	TokenID   uint64
	Emitter   Address
	EmittedAt time.Time
	Payload   any
}

// ShipmentCreatedPayload carries the full minted record.
type ShipmentCreatedPayload struct {
	Shipment Shipment `json:"shipment"`
}

// StatusUpdatedPayload carries the overwritten status fields.
type StatusUpdatedPayload struct {
	Status   ShipmentStatus `json:"status"`
	Progress uint8          `json:"progress"`
}

// TrackingEventAddedPayload carries the appended tracking log entry.
type TrackingEventAddedPayload struct {
	Event TrackingEvent `json:"event"`
}

// CustodyRecordAddedPayload carries the appended custody record.
type CustodyRecordAddedPayload struct {
	Record CustodyRecord `json:"record"`
}

// ShipmentCompletedPayload carries terminal-state facts.
type ShipmentCompletedPayload struct {
	CompletedAt time.Time `json:"completedAt"`
	DaysLate    uint64    `json:"daysLate"`
}

// EscrowReleasedPayload carries the payout split of a completed escrow.
type EscrowReleasedPayload struct {
	Carrier        Address  `json:"carrier"`
	Customer       Address  `json:"customer"`
	CarrierAmount  *big.Int `json:"carrierAmount"`
	CustomerRefund *big.Int `json:"customerRefund"`
}
