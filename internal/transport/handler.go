// Package transport exposes the shipment ledger over HTTP.
package transport

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/transportdapp/transport-ledger-backend/internal/bank"
	"github.com/transportdapp/transport-ledger-backend/internal/contract"
	"github.com/transportdapp/transport-ledger-backend/internal/model"
	"github.com/transportdapp/transport-ledger-backend/pkg/safe"
)

// CallerHeader identifies the acting address. The facade is a trusted
// gateway, so the header is taken at face value.
const CallerHeader = "X-Caller-Address"

// Ledger is the contract surface the HTTP facade drives.
type Ledger interface {
	Name() string
	Symbol() string
	Owner() model.Address
	Account() model.Address
	CreateShipment(caller model.Address, value *big.Int, p contract.CreateShipmentParams) (uint64, error)
	UpdateShipmentStatus(caller model.Address, tokenID uint64, status model.ShipmentStatus, progress uint8) error
	AddTrackingEvent(caller model.Address, tokenID uint64, eventType, description, location string) error
	AddCustodyRecord(caller model.Address, tokenID uint64, holderName, action, location string) error
	CompleteShipment(caller model.Address, tokenID uint64) error
	VerifyCarrier(caller, carrier model.Address) error
	RevokeCarrier(caller, carrier model.Address) error
	TransferOwnership(caller, newOwner model.Address) error
	VerifiedCarrier(addr model.Address) bool
	GetShipment(tokenID uint64) (model.Shipment, error)
	GetTrackingEvents(tokenID uint64) ([]model.TrackingEvent, error)
	GetCustodyChain(tokenID uint64) ([]model.CustodyRecord, error)
	OwnerOf(tokenID uint64) (model.Address, error)
	TokenIDByShipmentNumber(number string) (uint64, error)
}

// Bank is the account book surface the facade uses for funding callers.
type Bank interface {
	Deposit(addr model.Address, amount *big.Int) error
	BalanceOf(addr model.Address) *big.Int
}

// Handler implements the HTTP API.
type Handler struct {
	ledger Ledger
	bank   Bank
	logger *zap.Logger
}

// NewHandler builds a Handler.
func NewHandler(ledger Ledger, bank Bank, logger *zap.Logger) *Handler {
	return &Handler{
		ledger: ledger,
		bank:   bank,
		logger: logger,
	}
}

type createShipmentRequest struct {
	ShipmentNumber     string    `json:"shipmentNumber"`
	Carrier            string    `json:"carrier"`
	OriginAddress      string    `json:"originAddress"`
	DestinationAddress string    `json:"destinationAddress"`
	Description        string    `json:"description"`
	ValueUSD           uint64    `json:"valueUsd"`
	ExpectedDelivery   time.Time `json:"expectedDelivery"`
	PenaltyPerDayWei   string    `json:"penaltyPerDayWei"`
	EscrowWei          string    `json:"escrowWei"`
}

type updateStatusRequest struct {
	Status   int `json:"status"`
	Progress int `json:"progress"`
}

type addTrackingEventRequest struct {
	EventType   string `json:"eventType"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type addCustodyRecordRequest struct {
	HolderName string `json:"holderName"`
	Action     string `json:"action"`
	Location   string `json:"location"`
}

type depositRequest struct {
	AmountWei string `json:"amountWei"`
}

type shipmentResponse struct {
	TokenID            uint64    `json:"tokenId"`
	ShipmentNumber     string    `json:"shipmentNumber"`
	Customer           string    `json:"customer"`
	Carrier            string    `json:"carrier"`
	OriginAddress      string    `json:"originAddress"`
	DestinationAddress string    `json:"destinationAddress"`
	Description        string    `json:"description"`
	ValueUSD           uint64    `json:"valueUsd"`
	ExpectedDelivery   time.Time `json:"expectedDelivery"`
	PenaltyPerDayWei   string    `json:"penaltyPerDayWei"`
	Status             string    `json:"status"`
	Progress           uint8     `json:"progress"`
	EscrowWei          string    `json:"escrowWei"`
	IsCompleted        bool      `json:"isCompleted"`
	CreatedAt          time.Time `json:"createdAt"`
}

type trackingEventResponse struct {
	TokenID     uint64    `json:"tokenId"`
	EventType   string    `json:"eventType"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Timestamp   time.Time `json:"timestamp"`
	RecordedBy  string    `json:"recordedBy"`
}

type custodyRecordResponse struct {
	TokenID    uint64    `json:"tokenId"`
	Holder     string    `json:"holder"`
	HolderName string    `json:"holderName"`
	Action     string    `json:"action"`
	Location   string    `json:"location"`
	Timestamp  time.Time `json:"timestamp"`
	IsVerified bool      `json:"isVerified"`
}

// CreateShipment mints a shipment token, locking the attached escrow.
func (h *Handler) CreateShipment(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req createShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	escrow, err := parseWei(req.EscrowWei)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid escrowWei")
		return
	}
	penalty, err := parseWei(req.PenaltyPerDayWei)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid penaltyPerDayWei")
		return
	}

	tokenID, err := h.ledger.CreateShipment(caller, escrow, contract.CreateShipmentParams{
		ShipmentNumber:     req.ShipmentNumber,
		Carrier:            model.Address(req.Carrier),
		OriginAddress:      req.OriginAddress,
		DestinationAddress: req.DestinationAddress,
		Description:        req.Description,
		ValueUSD:           req.ValueUSD,
		ExpectedDelivery:   req.ExpectedDelivery,
		PenaltyPerDay:      penalty,
	})
	if err != nil {
		h.writeContractError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]uint64{"tokenId": tokenID})
}

// GetShipment returns the current shipment record.
func (h *Handler) GetShipment(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}

	sh, err := h.ledger.GetShipment(tokenID)
	if err != nil {
		h.writeContractError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toShipmentResponse(sh))
}

// GetShipmentByNumber resolves a shipment number to its token id.
func (h *Handler) GetShipmentByNumber(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	tokenID, err := h.ledger.TokenIDByShipmentNumber(number)
	if err != nil {
		h.writeContractError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"tokenId":        tokenID,
		"shipmentNumber": number,
	})
}

// UpdateStatus overwrites the shipment status and progress.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := safe.Uint8(req.Status)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid status")
		return
	}
	progress, err := safe.Uint8(req.Progress)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid progress")
		return
	}

	if err := h.ledger.UpdateShipmentStatus(caller, tokenID, model.ShipmentStatus(status), progress); err != nil {
		h.writeContractError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddTrackingEvent appends a tracking log entry.
func (h *Handler) AddTrackingEvent(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}

	var req addTrackingEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.ledger.AddTrackingEvent(caller, tokenID, req.EventType, req.Description, req.Location); err != nil {
		h.writeContractError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetTrackingEvents returns the shipment's tracking log.
func (h *Handler) GetTrackingEvents(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}

	events, err := h.ledger.GetTrackingEvents(tokenID)
	if err != nil {
		h.writeContractError(w, err)
		return
	}

	out := make([]trackingEventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, trackingEventResponse{
			TokenID:     event.TokenID,
			EventType:   event.EventType,
			Description: event.Description,
			Location:    event.Location,
			Timestamp:   event.Timestamp,
			RecordedBy:  string(event.RecordedBy),
		})
	}
	h.writeJSON(w, http.StatusOK, out)
}

// AddCustodyRecord appends a chain-of-custody entry.
func (h *Handler) AddCustodyRecord(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}

	var req addCustodyRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.ledger.AddCustodyRecord(caller, tokenID, req.HolderName, req.Action, req.Location); err != nil {
		h.writeContractError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCustodyChain returns the shipment's custody log.
func (h *Handler) GetCustodyChain(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}

	records, err := h.ledger.GetCustodyChain(tokenID)
	if err != nil {
		h.writeContractError(w, err)
		return
	}

	out := make([]custodyRecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, custodyRecordResponse{
			TokenID:    record.TokenID,
			Holder:     string(record.Holder),
			HolderName: record.HolderName,
			Action:     record.Action,
			Location:   record.Location,
			Timestamp:  record.Timestamp,
			IsVerified: record.IsVerified,
		})
	}
	h.writeJSON(w, http.StatusOK, out)
}

// CompleteShipment releases the escrow and closes the shipment.
func (h *Handler) CompleteShipment(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	tokenID, ok := h.tokenID(w, r)
	if !ok {
		return
	}

	if err := h.ledger.CompleteShipment(caller, tokenID); err != nil {
		h.writeContractError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// VerifyCarrier marks a carrier as verified.
func (h *Handler) VerifyCarrier(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	carrier := model.Address(chi.URLParam(r, "address"))
	if err := h.ledger.VerifyCarrier(caller, carrier); err != nil {
		h.writeContractError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RevokeCarrier clears a carrier's verified flag.
func (h *Handler) RevokeCarrier(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	carrier := model.Address(chi.URLParam(r, "address"))
	if err := h.ledger.RevokeCarrier(caller, carrier); err != nil {
		h.writeContractError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCarrier reports a carrier's verification state.
func (h *Handler) GetCarrier(w http.ResponseWriter, r *http.Request) {
	addr := chi.URLParam(r, "address")
	h.writeJSON(w, http.StatusOK, map[string]any{
		"address":  addr,
		"verified": h.ledger.VerifiedCarrier(model.Address(addr)),
	})
}

// GetContract returns the token metadata and owner.
func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"name":    h.ledger.Name(),
		"symbol":  h.ledger.Symbol(),
		"owner":   string(h.ledger.Owner()),
		"account": string(h.ledger.Account()),
	})
}

// TransferOwnership hands the contract to a new owner.
func (h *Handler) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req struct {
		NewOwner string `json:"newOwner"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.ledger.TransferOwnership(caller, model.Address(req.NewOwner)); err != nil {
		h.writeContractError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Deposit credits an account. Operator faucet for funding test callers.
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	addr := model.Address(chi.URLParam(r, "address"))

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := parseWei(req.AmountWei)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid amountWei")
		return
	}

	if err := h.bank.Deposit(addr, amount); err != nil {
		h.writeContractError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"address":    string(addr),
		"balanceWei": h.bank.BalanceOf(addr).String(),
	})
}

func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (model.Address, bool) {
	addr := r.Header.Get(CallerHeader)
	if addr == "" {
		h.writeError(w, http.StatusBadRequest, "caller address required")
		return "", false
	}
	return model.Address(addr), true
}

func (h *Handler) tokenID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "tokenID"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid token id")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeContractError(w http.ResponseWriter, err error) {
	if rev, ok := contract.AsRevert(err); ok {
		status := http.StatusBadRequest
		switch rev {
		case contract.ErrOnlyCarrier, contract.ErrOnlyOwner:
			status = http.StatusForbidden
		case contract.ErrShipmentNotFound:
			status = http.StatusNotFound
		case contract.ErrAlreadyCompleted:
			status = http.StatusConflict
		}
		h.writeError(w, status, rev.Reason)
		return
	}

	switch {
	case errors.Is(err, bank.ErrInsufficientFunds):
		h.writeError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, bank.ErrInvalidAmount), errors.Is(err, bank.ErrInvalidAddress):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, reason string) {
	h.writeJSON(w, status, map[string]string{"error": reason})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response failed", zap.Error(err))
	}
}

func toShipmentResponse(sh model.Shipment) shipmentResponse {
	return shipmentResponse{
		TokenID:            sh.TokenID,
		ShipmentNumber:     sh.ShipmentNumber,
		Customer:           string(sh.Customer),
		Carrier:            string(sh.Carrier),
		OriginAddress:      sh.OriginAddress,
		DestinationAddress: sh.DestinationAddress,
		Description:        sh.Description,
		ValueUSD:           sh.ValueUSD,
		ExpectedDelivery:   sh.ExpectedDelivery,
		PenaltyPerDayWei:   weiOrZero(sh.PenaltyPerDay),
		Status:             sh.Status.String(),
		Progress:           sh.Progress,
		EscrowWei:          weiOrZero(sh.EscrowAmount),
		IsCompleted:        sh.IsCompleted,
		CreatedAt:          sh.CreatedAt,
	}
}

func weiOrZero(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func parseWei(s string) (*big.Int, error) {
	if s == "" {
		return big.NewInt(0), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, errors.New("invalid wei amount")
	}
	return v, nil
}
