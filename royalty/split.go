// Package royalty implements the payout side of the marketplace: the split
// registry that maps an edition or creator key to a deployed payout handler,
// and the handlers themselves (single receiver and multi-recipient splitter).
package royalty

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/mintgateorg/libmintgate-go/chain"
)

// TotalBps is the full share table, 100% in basis points.
const TotalBps = 10000

// SplitEntry is one recipient's row in a split table.
type SplitEntry struct {
	Recipient chain.Address `json:"recipient"`
	ShareBps  uint32        `json:"share_bps"`
}

// Payment is a single computed payout.
type Payment struct {
	Recipient chain.Address
	Amount    math.Int
}

// ValidateSplitTable checks a recipient/share table: equal lengths, at least
// one recipient, no zero addresses, no duplicates, shares summing to exactly
// TotalBps.
func ValidateSplitTable(recipients []chain.Address, sharesBps []uint32) error {
	if len(recipients) != len(sharesBps) {
		return fmt.Errorf("%w: %d recipients, %d shares", ErrLengthMismatch, len(recipients), len(sharesBps))
	}
	if len(recipients) == 0 {
		return ErrNoRecipients
	}

	seen := make(map[chain.Address]bool, len(recipients))
	var total uint64
	for i, r := range recipients {
		if r.IsZero() {
			return fmt.Errorf("%w: index %d", ErrZeroAddressRecipient, i)
		}
		if seen[r] {
			return fmt.Errorf("%w: %s", ErrDuplicateRecipient, r)
		}
		seen[r] = true
		total += uint64(sharesBps[i])
	}

	if total != TotalBps {
		return fmt.Errorf("%w: got %d", ErrSharesNotFull, total)
	}
	return nil
}

// SplitAmount computes per-recipient payouts for balance over the table.
// Each recipient gets balance × share / 10000 by integer division; the
// rounding remainder (at most len(entries)-1 smallest units) goes to the
// final recipient so the full balance is always disbursed.
func SplitAmount(balance math.Int, entries []SplitEntry) []Payment {
	payments := make([]Payment, len(entries))
	distributed := math.ZeroInt()

	for i, e := range entries {
		payments[i].Recipient = e.Recipient
		if i == len(entries)-1 {
			// Last recipient gets remainder
			payments[i].Amount = balance.Sub(distributed)
		} else {
			amount := balance.MulRaw(int64(e.ShareBps)).QuoRaw(TotalBps)
			payments[i].Amount = amount
			distributed = distributed.Add(amount)
		}
	}

	return payments
}
