// Package config holds the tunable parameters of the auction engine and
// their validation.
package config

import (
	"time"

	"cosmossdk.io/math"
)

// Params are the reserve auction engine's operating parameters.
type Params struct {
	// MinBidAmount is the floor every bid must meet, in smallest units.
	MinBidAmount math.Int

	// MinBidIncrement is the minimum amount a new bid must exceed the
	// current highest bid by, in smallest units.
	MinBidIncrement math.Int

	// BidLockupPeriod is how long a new highest bid is protected before
	// the auction can be resulted.
	BidLockupPeriod time.Duration

	// SnipeExtensionWindow is the tail of the lockup window; a bid landing
	// inside it restarts the lockup to deter last-second sniping.
	SnipeExtensionWindow time.Duration
}

// DefaultParams returns the stock parameter set: 0.01-unit minimum bid and
// increment at 18-decimal scale, 24h lockup, 15m snipe window.
func DefaultParams() Params {
	return Params{
		MinBidAmount:         math.NewInt(10_000_000_000_000_000), // 0.01 at 10^18 scale
		MinBidIncrement:      math.NewInt(10_000_000_000_000_000),
		BidLockupPeriod:      24 * time.Hour,
		SnipeExtensionWindow: 15 * time.Minute,
	}
}

// Validate checks that all parameters are within acceptable ranges and
// returns the first error encountered, or nil if valid.
func (p Params) Validate() error {
	if p.MinBidAmount.IsNil() {
		return ErrNilMinBid
	}
	if p.MinBidAmount.IsNegative() {
		return ErrNegativeMinBid
	}
	if p.MinBidIncrement.IsNil() || !p.MinBidIncrement.IsPositive() {
		return ErrNonPositiveIncrement
	}
	if p.BidLockupPeriod <= 0 {
		return ErrNonPositiveLockup
	}
	if p.SnipeExtensionWindow < 0 {
		return ErrNegativeSnipeWindow
	}
	if p.SnipeExtensionWindow > p.BidLockupPeriod {
		return ErrSnipeWindowTooLong
	}
	return nil
}
