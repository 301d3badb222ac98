// Package contract implements the TransportContract shipment ledger: an
// ownable, token-minting escrow with carrier-gated state transitions and
// append-only tracking and custody logs. Calls are serialized; every
// mutating call either commits fully or leaves no trace.
package contract

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/transportdapp/transport-ledger-backend/internal/bank"
	"github.com/transportdapp/transport-ledger-backend/internal/model"
)

const (
	// TokenName is the fixed NFT collection name.
	TokenName = "TransportNFT"
	// TokenSymbol is the fixed NFT collection symbol.
	TokenSymbol = "TNFT"

	secondsPerDay = 24 * 60 * 60
)

// Contract is the shipment ledger state machine. The mutex stands in for the
// host ledger's serialized transaction model.
type Contract struct {
	mu      sync.Mutex
	logger  *zap.Logger
	bank    Bank
	sink    EventSink
	metrics Metrics
	now     func() time.Time

	owner   model.Address
	account model.Address

	nextTokenID uint64
	eventSeq    uint64

	tokenOwner       map[uint64]model.Address
	shipments        map[uint64]*model.Shipment
	tracking         map[uint64][]model.TrackingEvent
	custody          map[uint64][]model.CustodyRecord
	tokenByNumber    map[string]uint64
	verifiedCarriers map[model.Address]bool
}

// New constructs the contract with owner set to the deploying address and
// account as the address holding pooled escrow funds.
func New(owner, account model.Address, b Bank, sink EventSink, metrics Metrics, logger *zap.Logger) (*Contract, error) {
	if owner == model.ZeroAddress {
		return nil, errors.New("contract owner is required")
	}
	if account == model.ZeroAddress {
		return nil, errors.New("contract account is required")
	}
	if b == nil {
		return nil, errors.New("contract bank is required")
	}
	if sink == nil {
		return nil, errors.New("contract event sink is required")
	}
	if metrics == nil {
		return nil, errors.New("contract metrics is required")
	}

	return &Contract{
		logger:           logger.With(zap.String("component", "contract")),
		bank:             b,
		sink:             sink,
		metrics:          metrics,
		now:              time.Now,
		owner:            owner,
		account:          account,
		nextTokenID:      1,
		tokenOwner:       make(map[uint64]model.Address),
		shipments:        make(map[uint64]*model.Shipment),
		tracking:         make(map[uint64][]model.TrackingEvent),
		custody:          make(map[uint64][]model.CustodyRecord),
		tokenByNumber:    make(map[string]uint64),
		verifiedCarriers: make(map[model.Address]bool),
	}, nil
}

// Name returns the fixed collection name.
func (c *Contract) Name() string { return TokenName }

// Symbol returns the fixed collection symbol.
func (c *Contract) Symbol() string { return TokenSymbol }

// Owner returns the administrative address.
func (c *Contract) Owner() model.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.owner
}

// Account returns the address pooling escrow funds.
func (c *Contract) Account() model.Address { return c.account }

// CreateShipment locks the attached value as escrow, mints the next token to
// the caller and stores the shipment record. Returns the new token id.
func (c *Contract) CreateShipment(caller model.Address, value *big.Int, p CreateShipmentParams) (tokenID uint64, err error) {
	started := time.Now()
	defer func() { c.metrics.Observe("create_shipment", err, started) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	if value == nil || value.Sign() <= 0 {
		return 0, ErrEscrowRequired
	}
	if p.Carrier == model.ZeroAddress {
		return 0, ErrCarrierRequired
	}
	if p.PenaltyPerDay != nil && p.PenaltyPerDay.Sign() < 0 {
		return 0, ErrInvalidPenalty
	}

	if err = c.bank.Transfer(caller, c.account, value); err != nil {
		return 0, fmt.Errorf("lock escrow: %w", err)
	}

	now := c.now()
	tokenID = c.nextTokenID
	c.nextTokenID++

	penalty := new(big.Int)
	if p.PenaltyPerDay != nil {
		penalty.Set(p.PenaltyPerDay)
	}

	sh := &model.Shipment{
		TokenID:            tokenID,
		ShipmentNumber:     p.ShipmentNumber,
		Customer:           caller,
		Carrier:            p.Carrier,
		OriginAddress:      p.OriginAddress,
		DestinationAddress: p.DestinationAddress,
		Description:        p.Description,
		ValueUSD:           p.ValueUSD,
		ExpectedDelivery:   p.ExpectedDelivery,
		PenaltyPerDay:      penalty,
		Status:             model.StatusActive,
		Progress:           0,
		EscrowAmount:       new(big.Int).Set(value),
		IsCompleted:        false,
		CreatedAt:          now,
	}

	c.tokenOwner[tokenID] = caller
	c.shipments[tokenID] = sh
	c.tokenByNumber[p.ShipmentNumber] = tokenID

	trackingEvent := model.TrackingEvent{
		TokenID:     tokenID,
		EventType:   model.TrackingEventCreated,
		Description: "Shipment created and escrow locked",
		Location:    p.OriginAddress,
		Timestamp:   now,
		RecordedBy:  caller,
	}
	c.tracking[tokenID] = []model.TrackingEvent{trackingEvent}

	custodyRecord := model.CustodyRecord{
		TokenID:    tokenID,
		Holder:     caller,
		HolderName: "",
		Action:     model.CustodyActionCreated,
		Location:   p.OriginAddress,
		Timestamp:  now,
		IsVerified: c.verifiedCarriers[caller],
	}
	c.custody[tokenID] = []model.CustodyRecord{custodyRecord}

	c.logger.Info("shipment minted",
		zap.Uint64("tokenID", tokenID),
		zap.String("shipmentNumber", p.ShipmentNumber),
		zap.String("escrowWei", value.String()),
	)

	c.publish(caller, tokenID, now,
		event(model.EventShipmentCreated, model.ShipmentCreatedPayload{Shipment: sh.Clone()}),
		event(model.EventTrackingEventAdded, model.TrackingEventAddedPayload{Event: trackingEvent}),
		event(model.EventCustodyRecordAdded, model.CustodyRecordAddedPayload{Record: custodyRecord}),
	)
	return tokenID, nil
}

// UpdateShipmentStatus overwrites status and progress in place. Carrier only.
func (c *Contract) UpdateShipmentStatus(caller model.Address, tokenID uint64, status model.ShipmentStatus, progress uint8) (err error) {
	started := time.Now()
	defer func() { c.metrics.Observe("update_status", err, started) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	sh, err := c.mutableShipment(caller, tokenID)
	if err != nil {
		return err
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if progress > 100 {
		return ErrInvalidProgress
	}

	sh.Status = status
	sh.Progress = progress

	c.publish(caller, tokenID, c.now(),
		event(model.EventStatusUpdated, model.StatusUpdatedPayload{Status: status, Progress: progress}),
	)
	return nil
}

// AddTrackingEvent appends to the tracking log. Carrier only.
func (c *Contract) AddTrackingEvent(caller model.Address, tokenID uint64, eventType, description, location string) (err error) {
	started := time.Now()
	defer func() { c.metrics.Observe("add_tracking_event", err, started) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err = c.mutableShipment(caller, tokenID); err != nil {
		return err
	}

	entry := model.TrackingEvent{
		TokenID:     tokenID,
		EventType:   eventType,
		Description: description,
		Location:    location,
		Timestamp:   c.now(),
		RecordedBy:  caller,
	}
	c.tracking[tokenID] = append(c.tracking[tokenID], entry)

	c.publish(caller, tokenID, entry.Timestamp,
		event(model.EventTrackingEventAdded, model.TrackingEventAddedPayload{Event: entry}),
	)
	return nil
}

// AddCustodyRecord appends to the custody chain. Carrier only; IsVerified
// snapshots the verified-carrier registry at record time.
func (c *Contract) AddCustodyRecord(caller model.Address, tokenID uint64, holderName, action, location string) (err error) {
	started := time.Now()
	defer func() { c.metrics.Observe("add_custody_record", err, started) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err = c.mutableShipment(caller, tokenID); err != nil {
		return err
	}

	record := model.CustodyRecord{
		TokenID:    tokenID,
		Holder:     caller,
		HolderName: holderName,
		Action:     action,
		Location:   location,
		Timestamp:  c.now(),
		IsVerified: c.verifiedCarriers[caller],
	}
	c.custody[tokenID] = append(c.custody[tokenID], record)

	c.publish(caller, tokenID, record.Timestamp,
		event(model.EventCustodyRecordAdded, model.CustodyRecordAddedPayload{Record: record}),
	)
	return nil
}

// CompleteShipment releases escrow to the carrier, net of the late penalty
// refunded to the customer, and marks the shipment terminal. The terminal
// state is applied before funds move; a failed payout rolls it back so the
// whole call reverts atomically.
func (c *Contract) CompleteShipment(caller model.Address, tokenID uint64) (err error) {
	started := time.Now()
	defer func() { c.metrics.Observe("complete_shipment", err, started) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	sh, err := c.mutableShipment(caller, tokenID)
	if err != nil {
		return err
	}

	completedAt := c.now()
	daysLate := lateDays(sh.ExpectedDelivery, completedAt)

	penalty := new(big.Int).Mul(sh.PenaltyPerDay, new(big.Int).SetUint64(daysLate))
	if penalty.Cmp(sh.EscrowAmount) > 0 {
		penalty.Set(sh.EscrowAmount)
	}
	carrierAmount := new(big.Int).Sub(sh.EscrowAmount, penalty)

	// Effects before interactions: a reentrant call during the payout sees
	// the shipment as already completed.
	snapshot := sh.Clone()
	sh.Status = model.StatusDelivered
	sh.IsCompleted = true

	credits := []bank.Credit{
		{To: sh.Carrier, Amount: carrierAmount},
		{To: sh.Customer, Amount: penalty},
	}
	if err = c.bank.Disburse(c.account, credits); err != nil {
		*sh = snapshot
		return fmt.Errorf("release escrow: %w", err)
	}

	c.logger.Info("shipment completed",
		zap.Uint64("tokenID", tokenID),
		zap.Uint64("daysLate", daysLate),
		zap.String("carrierWei", carrierAmount.String()),
		zap.String("refundWei", penalty.String()),
	)

	c.publish(caller, tokenID, completedAt,
		event(model.EventShipmentCompleted, model.ShipmentCompletedPayload{CompletedAt: completedAt, DaysLate: daysLate}),
		event(model.EventEscrowReleased, model.EscrowReleasedPayload{
			Carrier:        sh.Carrier,
			Customer:       sh.Customer,
			CarrierAmount:  carrierAmount,
			CustomerRefund: penalty,
		}),
	)
	return nil
}

// VerifyCarrier flags an address as trusted. Owner only.
func (c *Contract) VerifyCarrier(caller, carrier model.Address) error {
	return c.setCarrierVerification(caller, carrier, true)
}

// RevokeCarrier removes an address from the trusted set. Owner only.
func (c *Contract) RevokeCarrier(caller, carrier model.Address) error {
	return c.setCarrierVerification(caller, carrier, false)
}

func (c *Contract) setCarrierVerification(caller, carrier model.Address, verified bool) (err error) {
	operation := "revoke_carrier"
	if verified {
		operation = "verify_carrier"
	}
	started := time.Now()
	defer func() { c.metrics.Observe(operation, err, started) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	if caller != c.owner {
		return ErrOnlyOwner
	}
	if carrier == model.ZeroAddress {
		return ErrCarrierRequired
	}

	if verified {
		c.verifiedCarriers[carrier] = true
	} else {
		delete(c.verifiedCarriers, carrier)
	}
	return nil
}

// TransferOwnership hands the administrative role to a new address. Owner only.
func (c *Contract) TransferOwnership(caller, newOwner model.Address) (err error) {
	started := time.Now()
	defer func() { c.metrics.Observe("transfer_ownership", err, started) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	if caller != c.owner {
		return ErrOnlyOwner
	}
	if newOwner == model.ZeroAddress {
		return ErrOwnerRequired
	}

	c.logger.Info("ownership transferred",
		zap.String("from", string(c.owner)),
		zap.String("to", string(newOwner)),
	)
	c.owner = newOwner
	return nil
}

// VerifiedCarrier reports membership in the trusted-carrier set.
func (c *Contract) VerifiedCarrier(addr model.Address) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verifiedCarriers[addr]
}

// GetShipment returns the shipment record for a minted token.
func (c *Contract) GetShipment(tokenID uint64) (model.Shipment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sh, ok := c.shipments[tokenID]
	if !ok {
		return model.Shipment{}, ErrShipmentNotFound
	}
	return sh.Clone(), nil
}

// GetTrackingEvents returns the ordered tracking log for a minted token.
func (c *Contract) GetTrackingEvents(tokenID uint64) ([]model.TrackingEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.shipments[tokenID]; !ok {
		return nil, ErrShipmentNotFound
	}
	events := make([]model.TrackingEvent, len(c.tracking[tokenID]))
	copy(events, c.tracking[tokenID])
	return events, nil
}

// GetCustodyChain returns the ordered custody records for a minted token.
func (c *Contract) GetCustodyChain(tokenID uint64) ([]model.CustodyRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.shipments[tokenID]; !ok {
		return nil, ErrShipmentNotFound
	}
	records := make([]model.CustodyRecord, len(c.custody[tokenID]))
	copy(records, c.custody[tokenID])
	return records, nil
}

// OwnerOf returns the token holder.
func (c *Contract) OwnerOf(tokenID uint64) (model.Address, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	holder, ok := c.tokenOwner[tokenID]
	if !ok {
		return model.ZeroAddress, ErrShipmentNotFound
	}
	return holder, nil
}

// TokenIDByShipmentNumber resolves a shipment number to its most recent
// token id. Numbers are not required to be unique; the index keeps the
// latest mint.
func (c *Contract) TokenIDByShipmentNumber(number string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tokenID, ok := c.tokenByNumber[number]
	if !ok {
		return 0, ErrShipmentNotFound
	}
	return tokenID, nil
}

// MintedTokenIDs returns every minted token id in ascending order.
func (c *Contract) MintedTokenIDs() []uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]uint64, 0, len(c.shipments))
	for id := range c.shipments {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// mutableShipment looks up a shipment and applies the guard predicates shared
// by every carrier-gated mutating call. Callers must hold the mutex.
func (c *Contract) mutableShipment(caller model.Address, tokenID uint64) (*model.Shipment, error) {
	sh, ok := c.shipments[tokenID]
	if !ok {
		return nil, ErrShipmentNotFound
	}
	if caller != sh.Carrier {
		return nil, ErrOnlyCarrier
	}
	if sh.IsCompleted {
		return nil, ErrAlreadyCompleted
	}
	return sh, nil
}

// publish assigns sequence numbers and hands committed events to the sink.
// Callers must hold the mutex so the sequence stays gapless and ordered.
func (c *Contract) publish(emitter model.Address, tokenID uint64, at time.Time, events ...model.ContractEvent) {
	for _, ev := range events {
		c.eventSeq++
		ev.Seq = c.eventSeq
		ev.TokenID = tokenID
		ev.Emitter = emitter
		ev.EmittedAt = at
		c.sink.Publish(ev)
	}
}

func event(t model.EventType, payload any) model.ContractEvent {
	return model.ContractEvent{Type: t, Payload: payload}
}

// lateDays counts whole started days past the deadline.
func lateDays(expected, completed time.Time) uint64 {
	if !completed.After(expected) {
		return 0
	}
	secs := completed.Unix() - expected.Unix()
	return uint64((secs + secondsPerDay - 1) / secondsPerDay)
}
