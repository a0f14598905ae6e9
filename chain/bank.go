package chain

import (
	"fmt"
	"sync"

	"cosmossdk.io/math"
)

// Bank is the native-currency ledger the engines move funds through.
// Transfers are atomic: either the full amount moves or nothing does.
type Bank interface {
	// BalanceOf returns the current balance of addr in smallest units.
	BalanceOf(addr Address) math.Int

	// Transfer moves amount from one account to another. It fails with
	// ErrInsufficientFunds if the sender cannot cover the amount and with
	// ErrTransferRejected if the recipient refuses funds.
	Transfer(from, to Address, amount math.Int) error
}

// MockBank is an in-memory Bank for tests and embedders. Recipients can be
// marked as rejecting to exercise transfer-failure paths.
type MockBank struct {
	mu        sync.RWMutex
	balances  map[Address]math.Int
	rejecting map[Address]bool
}

// Compile-time interface check.
var _ Bank = (*MockBank)(nil)

// NewMockBank creates an empty in-memory bank.
func NewMockBank() *MockBank {
	return &MockBank{
		balances:  make(map[Address]math.Int),
		rejecting: make(map[Address]bool),
	}
}

// Mint credits amount to addr out of thin air (test setup only).
func (b *MockBank) Mint(addr Address, amount math.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[addr] = b.balance(addr).Add(amount)
}

// SetRejecting marks addr as refusing incoming transfers.
func (b *MockBank) SetRejecting(addr Address, rejecting bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rejecting[addr] = rejecting
}

// BalanceOf returns the current balance of addr.
func (b *MockBank) BalanceOf(addr Address) math.Int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.balance(addr)
}

// Transfer moves amount between accounts.
func (b *MockBank) Transfer(from, to Address, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.rejecting[to] {
		return fmt.Errorf("%w: %s", ErrTransferRejected, to)
	}
	fromBal := b.balance(from)
	if fromBal.LT(amount) {
		return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientFunds, from, fromBal, amount)
	}

	b.balances[from] = fromBal.Sub(amount)
	b.balances[to] = b.balance(to).Add(amount)
	return nil
}

// balance returns the balance of addr without locking. Callers hold b.mu.
func (b *MockBank) balance(addr Address) math.Int {
	if bal, ok := b.balances[addr]; ok {
		return bal
	}
	return math.ZeroInt()
}
