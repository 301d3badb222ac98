package contract

import "errors"

// RevertError rejects a contract call with a human-readable reason. The
// reason strings are part of the external interface; callers match on them.
type RevertError struct {
	Reason string
}

func (e *RevertError) Error() string {
	return e.Reason
}

var (
	ErrEscrowRequired   = &RevertError{Reason: "Escrow amount required"}
	ErrOnlyCarrier      = &RevertError{Reason: "Only carrier can perform this action"}
	ErrOnlyOwner        = &RevertError{Reason: "Only owner can perform this action"}
	ErrAlreadyCompleted = &RevertError{Reason: "Shipment already completed"}
	ErrShipmentNotFound = &RevertError{Reason: "Shipment does not exist"}
	ErrInvalidStatus    = &RevertError{Reason: "Invalid status value"}
	ErrInvalidProgress  = &RevertError{Reason: "Invalid progress value"}
	ErrInvalidPenalty   = &RevertError{Reason: "Invalid penalty value"}
	ErrCarrierRequired  = &RevertError{Reason: "Carrier address required"}
	ErrOwnerRequired    = &RevertError{Reason: "New owner address required"}
)

// AsRevert unwraps a RevertError from an error chain.
func AsRevert(err error) (*RevertError, bool) {
	var rev *RevertError
	if errors.As(err, &rev) {
		return rev, true
	}
	return nil, false
}
