package contract

import (
	"math/big"
	"time"

	"github.com/transportdapp/transport-ledger-backend/internal/bank"
	"github.com/transportdapp/transport-ledger-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Bank moves native currency between accounts. Disburse must be atomic:
	// a failed payout leaves every balance untouched.
	Bank interface {
		Transfer(from, to model.Address, amount *big.Int) error
		Disburse(from model.Address, credits []bank.Credit) error
	}

	// EventSink receives events after a mutating call commits.
	EventSink interface {
		Publish(event model.ContractEvent)
	}

	// Metrics observes contract operations.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// CreateShipmentParams are the caller-supplied fields of createShipment.
type CreateShipmentParams struct {
	ShipmentNumber     string
	Carrier            model.Address
	OriginAddress      string
	DestinationAddress string
	Description        string
	ValueUSD           uint64
	ExpectedDelivery   time.Time
	PenaltyPerDay      *big.Int
}
