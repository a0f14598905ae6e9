// Package ledger is the process-wide record store for the marketplace:
// sale records, auction records, royalty bindings, and the emitted event
// history. Records persist for the lifetime of the store and are never
// deleted; terminal states are flags.
package ledger

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/mintgateorg/libmintgate-go/chain"
)

// Phase is one time-boxed sub-sale of an edition. Counters are mutated only
// by successful purchases; the phase itself is append-only history.
type Phase struct {
	ID              uint64        `json:"id"`
	StartTime       int64         `json:"start_time"` // unix seconds, inclusive
	EndTime         int64         `json:"end_time"`   // unix seconds, exclusive
	WalletMintLimit uint64        `json:"wallet_mint_limit"`
	MintCap         uint64        `json:"mint_cap"`
	Price           math.Int      `json:"price"` // smallest units per asset
	MerkleRoot      []byte        `json:"merkle_root"`
	ProofRef        []byte        `json:"proof_ref"` // content address of the published proof pack

	TotalMinted uint64                   `json:"total_minted"`
	Claimed     map[chain.Address]uint64 `json:"claimed"`
}

// Open reports whether the phase window contains the unix time now.
// The window is half-open: [StartTime, EndTime).
func (p *Phase) Open(now int64) bool {
	return now >= p.StartTime && now < p.EndTime
}

// SaleRecord holds an edition's gated sale: the seller, the royalty key its
// proceeds resolve through, and the ordered phase list. Phase ids are
// assigned sequentially and never reused.
type SaleRecord struct {
	EditionID uint64        `json:"edition_id"`
	Seller    chain.Address `json:"seller"`
	FundsKey  string        `json:"funds_key"`
	Phases    []Phase       `json:"phases"`
}

// FindPhase returns the phase with the given id, or nil.
func (s *SaleRecord) FindPhase(phaseID uint64) *Phase {
	for i := range s.Phases {
		if s.Phases[i].ID == phaseID {
			return &s.Phases[i]
		}
	}
	return nil
}

// AuctionRecord holds an edition's reserve auction. Once Resulted or
// Cancelled is set the record is terminal.
type AuctionRecord struct {
	EditionID    uint64        `json:"edition_id"`
	Seller       chain.Address `json:"seller"`
	FundsKey     string        `json:"funds_key"`
	ReservePrice math.Int      `json:"reserve_price"`
	StartDate    int64         `json:"start_date"` // unix seconds; 0 = immediately biddable

	HighestBid    math.Int      `json:"highest_bid"`
	HighestBidder chain.Address `json:"highest_bidder"`
	BidCount      uint64        `json:"bid_count"`
	LockedUntil   int64         `json:"locked_until"` // unix seconds

	Resulted  bool `json:"resulted"`
	Cancelled bool `json:"cancelled"`

	// PendingReturns holds outbid bidders' withdrawable balances
	// (pull-based refunds).
	PendingReturns map[chain.Address]math.Int `json:"pending_returns"`
}

// Terminal reports whether the auction can accept no further bids.
func (a *AuctionRecord) Terminal() bool { return a.Resulted || a.Cancelled }

// PendingReturn returns addr's withdrawable balance.
func (a *AuctionRecord) PendingReturn(addr chain.Address) math.Int {
	if a.PendingReturns == nil {
		return math.ZeroInt()
	}
	if bal, ok := a.PendingReturns[addr]; ok {
		return bal
	}
	return math.ZeroInt()
}

// EditionKey returns the royalty registry key for an edition.
func EditionKey(editionID uint64) string {
	return fmt.Sprintf("edition/%d", editionID)
}

// CreatorKey returns the royalty registry key for a creator address.
func CreatorKey(creator chain.Address) string {
	return "creator/" + creator.String()
}
