// Package bank keeps the native-currency account book backing escrow moves.
package bank

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/transportdapp/transport-ledger-backend/internal/model"
)

var (
	// ErrInsufficientFunds rejects a debit larger than the account balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidAmount rejects nil, zero or negative amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidAddress rejects the zero address.
	ErrInvalidAddress = errors.New("account address required")
)

// Credit is one recipient of a disbursement.
type Credit struct {
	To     model.Address
	Amount *big.Int
}

// Ledger is an in-process account book with atomic transfers. All amounts are
// denominated in wei.
type Ledger struct {
	mu       sync.Mutex
	balances map[model.Address]*big.Int
}

// NewLedger creates an empty account book.
func NewLedger() *Ledger {
	return &Ledger{balances: make(map[model.Address]*big.Int)}
}

// Deposit credits an account out of thin air. Used to fund callers; the
// contract never mints.
func (l *Ledger) Deposit(addr model.Address, amount *big.Int) error {
	if addr == model.ZeroAddress {
		return ErrInvalidAddress
	}
	if !validAmount(amount) {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.credit(addr, amount)
	return nil
}

// BalanceOf returns a copy of the account balance; unknown accounts hold zero.
func (l *Ledger) BalanceOf(addr model.Address) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.balances[addr]; ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

// Transfer moves amount between two accounts atomically.
func (l *Ledger) Transfer(from, to model.Address, amount *big.Int) error {
	return l.Disburse(from, []Credit{{To: to, Amount: amount}})
}

// Disburse moves funds from one account to several recipients as a single
// atomic operation: either every credit applies or none does. Zero-amount
// credits are skipped.
func (l *Ledger) Disburse(from model.Address, credits []Credit) error {
	if from == model.ZeroAddress {
		return ErrInvalidAddress
	}

	total := new(big.Int)
	for _, c := range credits {
		if c.Amount != nil && c.Amount.Sign() == 0 {
			continue
		}
		if c.To == model.ZeroAddress {
			return ErrInvalidAddress
		}
		if !validAmount(c.Amount) {
			return ErrInvalidAmount
		}
		total.Add(total, c.Amount)
	}
	if total.Sign() == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[from]
	if !ok || balance.Cmp(total) < 0 {
		return fmt.Errorf("debit %s from %s: %w", total, from, ErrInsufficientFunds)
	}

	balance.Sub(balance, total)
	for _, c := range credits {
		if c.Amount == nil || c.Amount.Sign() == 0 {
			continue
		}
		l.credit(c.To, c.Amount)
	}
	return nil
}

func (l *Ledger) credit(addr model.Address, amount *big.Int) {
	if b, ok := l.balances[addr]; ok {
		b.Add(b, amount)
		return
	}
	l.balances[addr] = new(big.Int).Set(amount)
}

func validAmount(amount *big.Int) bool {
	return amount != nil && amount.Sign() > 0
}
