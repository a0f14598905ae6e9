package royalty

import (
	"fmt"

	"github.com/mintgateorg/libmintgate-go/chain"
)

// Handler is a deployed payout destination. Funds accumulate on the handler's
// bank account; Distribute disburses the full accumulated balance to the
// configured recipients. Distribution is idempotent: with no intervening
// deposits a second call is a no-op.
type Handler interface {
	// Address returns the handler's account address.
	Address() chain.Address

	// Recipients returns the configured split table. A single-receiver
	// handler reports one entry holding all 10000 bps.
	Recipients() []SplitEntry

	// Distribute disburses the handler's entire balance and returns the
	// payments made. A transfer failure reverts every payment already
	// made, leaving balances unchanged.
	Distribute(bank chain.Bank) ([]Payment, error)
}

// SingleReceiver forwards its whole balance to one receiver.
type SingleReceiver struct {
	addr     chain.Address
	receiver chain.Address
}

// Compile-time interface checks.
var (
	_ Handler = (*SingleReceiver)(nil)
	_ Handler = (*Splitter)(nil)
)

// NewSingleReceiver configures a single-receiver handler at addr.
func NewSingleReceiver(addr, receiver chain.Address) (*SingleReceiver, error) {
	if receiver.IsZero() {
		return nil, ErrZeroAddressRecipient
	}
	return &SingleReceiver{addr: addr, receiver: receiver}, nil
}

// Address returns the handler's account address.
func (h *SingleReceiver) Address() chain.Address { return h.addr }

// Recipients returns the one-row split table.
func (h *SingleReceiver) Recipients() []SplitEntry {
	return []SplitEntry{{Recipient: h.receiver, ShareBps: TotalBps}}
}

// Distribute forwards the entire balance to the receiver.
func (h *SingleReceiver) Distribute(bank chain.Bank) ([]Payment, error) {
	return distribute(bank, h.addr, h.Recipients())
}

// Splitter divides its balance among a configured share table.
type Splitter struct {
	addr    chain.Address
	entries []SplitEntry
}

// NewSplitter configures a splitter handler at addr. This is the handler's
// one-time initialization; the table is immutable afterward.
func NewSplitter(addr chain.Address, recipients []chain.Address, sharesBps []uint32) (*Splitter, error) {
	if err := ValidateSplitTable(recipients, sharesBps); err != nil {
		return nil, err
	}
	entries := make([]SplitEntry, len(recipients))
	for i := range recipients {
		entries[i] = SplitEntry{Recipient: recipients[i], ShareBps: sharesBps[i]}
	}
	return &Splitter{addr: addr, entries: entries}, nil
}

// Address returns the handler's account address.
func (h *Splitter) Address() chain.Address { return h.addr }

// Recipients returns the configured split table.
func (h *Splitter) Recipients() []SplitEntry {
	out := make([]SplitEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Distribute disburses the entire balance across the split table.
func (h *Splitter) Distribute(bank chain.Bank) ([]Payment, error) {
	return distribute(bank, h.addr, h.entries)
}

// distribute moves the handler's full balance out per the table. All
// transfers succeed or every completed one is reversed; if a reversal fails
// too, ErrDistributionInconsistent reports the stuck state.
func distribute(bank chain.Bank, from chain.Address, entries []SplitEntry) ([]Payment, error) {
	balance := bank.BalanceOf(from)
	if balance.IsZero() {
		// Nothing accumulated since the last distribution.
		return nil, nil
	}

	payments := SplitAmount(balance, entries)
	for i, p := range payments {
		if p.Amount.IsZero() {
			continue
		}
		if err := bank.Transfer(from, p.Recipient, p.Amount); err != nil {
			if rbErr := rollback(bank, from, payments[:i]); rbErr != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrDistributionInconsistent, p.Recipient, rbErr)
			}
			return nil, fmt.Errorf("%w: %s: %w", ErrDistributionFailed, p.Recipient, err)
		}
	}
	return payments, nil
}

// rollback reverses already-completed payments after a mid-distribution
// failure.
func rollback(bank chain.Bank, to chain.Address, done []Payment) error {
	for _, p := range done {
		if p.Amount.IsZero() {
			continue
		}
		if err := bank.Transfer(p.Recipient, to, p.Amount); err != nil {
			return err
		}
	}
	return nil
}
