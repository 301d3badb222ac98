package model

import (
	"math/big"
	"time"
)

// Address identifies an account on the ledger.
type Address string

// ZeroAddress is the empty account address.
const ZeroAddress Address = ""

// ShipmentStatus enumerates shipment lifecycle states.
type ShipmentStatus uint8

const (
	StatusDraft ShipmentStatus = iota
	StatusActive
	StatusInTransit
	StatusDelivered
	StatusDelayed
	StatusCancelled
)

// Valid reports whether the status is a known enum value.
func (s ShipmentStatus) Valid() bool {
	return s <= StatusCancelled
}

func (s ShipmentStatus) String() string {
	switch s {
	case StatusDraft:
		return "draft"
	case StatusActive:
		return "active"
	case StatusInTransit:
		return "in_transit"
	case StatusDelivered:
		return "delivered"
	case StatusDelayed:
		return "delayed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Shipment is the ledger record minted per token.
type Shipment struct {
	TokenID            uint64
	ShipmentNumber     string
	Customer           Address
	Carrier            Address
	OriginAddress      string
	DestinationAddress string
	Description        string
	ValueUSD           uint64
	ExpectedDelivery   time.Time
	PenaltyPerDay      *big.Int
	Status             ShipmentStatus
	Progress           uint8
	EscrowAmount       *big.Int
	IsCompleted        bool
	CreatedAt          time.Time
}

// Clone returns a deep copy so callers cannot mutate ledger state through
// shared big.Int pointers.
func (s Shipment) Clone() Shipment {
	out := s
	if s.PenaltyPerDay != nil {
		out.PenaltyPerDay = new(big.Int).Set(s.PenaltyPerDay)
	}
	if s.EscrowAmount != nil {
		out.EscrowAmount = new(big.Int).Set(s.EscrowAmount)
	}
	return out
}

// TrackingEvent is one entry of a shipment's append-only tracking log.
type TrackingEvent struct {
	TokenID     uint64
	EventType   string
	Description string
	Location    string
	Timestamp   time.Time
	RecordedBy  Address
}

// CustodyRecord is one entry of a shipment's chain-of-custody log.
type CustodyRecord struct {
	TokenID    uint64
	Holder     Address
	HolderName string
	Action     string
	Location   string
	Timestamp  time.Time
	IsVerified bool
}

// TrackingEventCreated is the event type of the automatic log entry appended
// when a shipment is minted.
const TrackingEventCreated = "shipment_created"

// CustodyActionCreated is the action of the automatic custody record appended
// when a shipment is minted.
const CustodyActionCreated = "created"
